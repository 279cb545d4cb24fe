package binder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/ratchetworks/ratchet"
	"github.com/ratchetworks/ratchet/internal/logging"
	"github.com/ratchetworks/ratchet/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Binder orchestrates access to stored subjects, ensuring that each subject
// is driven by at most one workflow at a time within this process. It uses
// reference counting to garbage collect unused locks. An optional
// distributed locker extends the exclusion across processes.
type Binder struct {
	factory *ratchet.Factory
	store   ports.SubjectStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.Locker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Binder.
type Option func(*Binder)

// WithLocker enables distributed locking with the given TTL.
func WithLocker(locker ports.Locker, ttl time.Duration) Option {
	return func(b *Binder) {
		b.locker = locker
		b.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Binder.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Binder) {
		b.logger = logger
	}
}

// New creates a Binder that binds subjects from store to workflows stamped
// out by factory.
func New(factory *ratchet.Factory, store ports.SubjectStore, opts ...Option) *Binder {
	b := &Binder{
		factory: factory,
		store:   store,
		locks:   make(map[string]*lockEntry),
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Factory returns the workflow factory subjects are bound with.
func (b *Binder) Factory() *ratchet.Factory {
	return b.factory
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after
// unlocking.
func (b *Binder) acquire(id string) *lockEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, exists := b.locks[id]
	if !exists {
		entry = &lockEntry{}
		b.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches
// zero.
func (b *Binder) release(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, exists := b.locks[id]
	if !exists {
		return // Should not happen if paired correctly
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(b.locks, id)
	}
}

// WithLock executes fn while holding the lock for the subject.
func (b *Binder) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := b.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		b.release(id)
	}()

	if b.locker != nil {
		unlock, err := b.locker.Lock(ctx, id, b.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				b.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"subject_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Do loads the subject, binds it to a fresh workflow and runs fn under the
// subject's lock. Extra options are applied to the bound workflow, so
// callers can attach per-request hooks.
func (b *Binder) Do(ctx context.Context, id string, fn func(context.Context, *ratchet.Workflow) error, extra ...ratchet.Option) error {
	return b.WithLock(ctx, id, func(ctx context.Context) error {
		subject, err := b.store.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("loading subject %s: %w", id, err)
		}
		return fn(ctx, b.factory.Bind(subject, extra...))
	})
}

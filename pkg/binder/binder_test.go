package binder_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratchetworks/ratchet"
	"github.com/ratchetworks/ratchet/pkg/adapters/memory"
	"github.com/ratchetworks/ratchet/pkg/binder"
	"github.com/ratchetworks/ratchet/pkg/domain"
	"github.com/ratchetworks/ratchet/pkg/ports"
)

func counterDefinition() domain.Definition {
	return domain.Definition{
		Name:    "counter",
		States:  []domain.State{"even", "odd"},
		Initial: "even",
		Transitions: []domain.Transition{
			{Name: "tick", Source: domain.From("even"), Destination: "odd"},
			{Name: "tock", Source: domain.From("odd"), Destination: "even"},
		},
	}
}

// slowSubject adds latency to state reads to provoke races if locking is
// missing.
type slowSubject struct {
	mu    sync.Mutex
	state domain.State
	saves int
}

func (s *slowSubject) State() domain.State {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *slowSubject) SetState(state domain.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *slowSubject) Save(ctx context.Context) error {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	return nil
}

func newBinder(t *testing.T, subject ports.Subject) *binder.Binder {
	t.Helper()

	factory, err := ratchet.NewFactory(counterDefinition())
	require.NoError(t, err)

	store := memory.NewSubjectStore()
	store.Put("subject-1", subject)
	return binder.New(factory, store)
}

func TestDoSerializesAccess(t *testing.T) {
	subject := &slowSubject{state: "even"}
	b := newBinder(t, subject)
	ctx := context.Background()

	// Each iteration alternates tick/tock. Without serialization the reads
	// race and some transitions would fail with invalid-source errors.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := b.Do(ctx, "subject-1", func(ctx context.Context, wf *ratchet.Workflow) error {
				return wf.Advance(ctx)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, domain.State("even"), subject.state)
	assert.Equal(t, 10, subject.saves)
}

func TestDoUnknownSubject(t *testing.T) {
	b := newBinder(t, &slowSubject{state: "even"})

	err := b.Do(context.Background(), "missing", func(ctx context.Context, wf *ratchet.Workflow) error {
		t.Fatal("fn must not run for unknown subjects")
		return nil
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSubjectNotFound))
}

func TestDoExtraOptions(t *testing.T) {
	subject := &slowSubject{state: "even"}
	b := newBinder(t, subject)

	var entered bool
	err := b.Do(context.Background(), "subject-1", func(ctx context.Context, wf *ratchet.Workflow) error {
		_, err := wf.Run(ctx, "tick", nil)
		return err
	}, ratchet.OnEnter("odd", func(ctx context.Context, tr domain.Transition) error {
		entered = true
		return nil
	}))
	require.NoError(t, err)
	assert.True(t, entered)
}

// blockingLocker hands out one lock at a time and records acquisitions.
type blockingLocker struct {
	mu       sync.Mutex
	held     bool
	acquired int
}

func (l *blockingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	for {
		l.mu.Lock()
		if !l.held {
			l.held = true
			l.acquired++
			l.mu.Unlock()
			return func(ctx context.Context) error {
				l.mu.Lock()
				defer l.mu.Unlock()
				l.held = false
				return nil
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
}

func TestWithLockUsesDistributedLocker(t *testing.T) {
	subject := &slowSubject{state: "even"}
	factory, err := ratchet.NewFactory(counterDefinition())
	require.NoError(t, err)

	store := memory.NewSubjectStore()
	store.Put("subject-1", subject)

	locker := &blockingLocker{}
	b := binder.New(factory, store, binder.WithLocker(locker, 30*time.Second))

	err = b.WithLock(context.Background(), "subject-1", func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, locker.acquired)
	assert.False(t, locker.held)
}

package memory

import (
	"context"
	"sync"

	"github.com/ratchetworks/ratchet/pkg/domain"
)

// AuditLog keeps audit entries in memory, in the order they were logged.
// Safe for concurrent use.
type AuditLog struct {
	mu      sync.RWMutex
	entries []domain.AuditEntry
}

// NewAuditLog creates an empty in-memory audit log.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Log appends an audit entry.
func (a *AuditLog) Log(ctx context.Context, entry domain.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
	return nil
}

// Entries returns a copy of the logged entries.
func (a *AuditLog) Entries() []domain.AuditEntry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]domain.AuditEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// EventRecorder keeps pushed events in memory, in the order they occurred.
// Safe for concurrent use.
type EventRecorder struct {
	mu     sync.RWMutex
	events []domain.Event
}

// NewEventRecorder creates an empty in-memory event recorder.
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

// PushEvent appends an event.
func (r *EventRecorder) PushEvent(ctx context.Context, event domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of the recorded events.
func (r *EventRecorder) Events() []domain.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Event, len(r.events))
	copy(out, r.events)
	return out
}

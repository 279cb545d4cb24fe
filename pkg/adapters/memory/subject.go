package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ratchetworks/ratchet/pkg/domain"
)

// Subject is an in-memory workflow subject. It tracks its current state,
// counts saves and records stamped dates. Safe for concurrent use.
type Subject struct {
	mu    sync.RWMutex
	state domain.State
	saves int
	dates map[string]time.Time
}

// NewSubject creates a subject starting in the given state.
func NewSubject(state domain.State) *Subject {
	return &Subject{
		state: state,
		dates: make(map[string]time.Time),
	}
}

// State returns the current state.
func (s *Subject) State() domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetState replaces the current state without persisting.
func (s *Subject) SetState(state domain.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// Save marks the subject as persisted. In-memory subjects have nowhere to
// write to, so Save only increments the save counter.
func (s *Subject) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	return nil
}

// StampDate records the time a transition completed under the given field.
func (s *Subject) StampDate(field string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dates[field] = t
}

// Saves returns how many times Save was called.
func (s *Subject) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Saved reports whether the subject was persisted at least once.
func (s *Subject) Saved() bool {
	return s.Saves() > 0
}

// Date returns the stamped time for a field, if any.
func (s *Subject) Date(field string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.dates[field]
	return t, ok
}

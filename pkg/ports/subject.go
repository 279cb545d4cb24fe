package ports

import (
	"context"
	"time"

	"github.com/ratchetworks/ratchet/pkg/domain"
)

// Subject is the external stateful entity a workflow manages. The engine
// never owns a subject: it holds a reference for the duration of a transition
// call and mutates exactly one thing, the state, at a single point in the
// pipeline. Save is invoked exactly once per successful transition, after the
// state mutation.
//
// A subject is used by one workflow call at a time by contract; the engine
// provides no mutual exclusion (see pkg/binder for an outer-caller utility
// that does).
type Subject interface {
	// State returns the subject's current state.
	State() domain.State

	// SetState replaces the subject's state in memory. It must not persist.
	SetState(state domain.State)

	// Save persists the subject.
	Save(ctx context.Context) error
}

// DateStamper is an optional Subject capability. When a transition declares a
// DateField and the subject implements DateStamper, the finalize step stamps
// the field with the transition time before calling Save.
type DateStamper interface {
	StampDate(field string, t time.Time)
}

// SubjectStore resolves subject identifiers for outer adapters (HTTP, CLI).
// The engine itself never loads subjects.
type SubjectStore interface {
	// Get returns the subject for id, or domain.ErrSubjectNotFound.
	Get(ctx context.Context, id string) (Subject, error)
}

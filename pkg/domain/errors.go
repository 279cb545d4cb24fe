package domain

import (
	"errors"
	"fmt"
)

// ErrSubjectNotFound is returned by subject stores when an identifier does
// not resolve to a subject.
var ErrSubjectNotFound = errors.New("subject not found")

// InvalidTransitionError reports a transition attempted from a state that
// does not match its declared source.
type InvalidTransitionError struct {
	Transition  string
	Current     State
	Destination State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s: %s -> %s", e.Transition, e.Current, e.Destination)
}

// ForbiddenTransitionError reports a guard denial: a transition condition,
// enter-state check or exit-state check returned false.
type ForbiddenTransitionError struct {
	Transition  string
	Current     State
	Destination State
}

func (e *ForbiddenTransitionError) Error() string {
	return fmt.Sprintf("transition forbidden %s: %s -> %s", e.Transition, e.Current, e.Destination)
}

// TransitionDoesNotExistError reports a transition name absent from the
// transition table.
type TransitionDoesNotExistError struct {
	Transition string
}

func (e *TransitionDoesNotExistError) Error() string {
	return fmt.Sprintf("transition %s does not exist", e.Transition)
}

// TransitionNotFoundError reports that no transition available from the
// current state reaches the requested target state.
type TransitionNotFoundError struct {
	Current State
	Target  State
}

func (e *TransitionNotFoundError) Error() string {
	return fmt.Sprintf("transition not found from %s to %s", e.Current, e.Target)
}

// TransitionUnavailableError reports that auto-advance found no eligible
// transition out of the current state.
type TransitionUnavailableError struct {
	Current State
}

func (e *TransitionUnavailableError) Error() string {
	return fmt.Sprintf("no transition available out of state %s", e.Current)
}

// TransitionAmbiguousError reports that auto-advance found more than one
// eligible transition.
type TransitionAmbiguousError struct {
	Current State
	Count   int
}

func (e *TransitionAmbiguousError) Error() string {
	return fmt.Sprintf("multiple possible transitions (got %d choices, expected 1)", e.Count)
}

// CircularWorkflowError reports that running a workflow to completion
// revisited a state, which would loop forever.
type CircularWorkflowError struct {
	State State
}

func (e *CircularWorkflowError) Error() string {
	return fmt.Sprintf("cannot advance circular workflow (state %s already visited)", e.State)
}

// WorkflowValidationError carries application-level validation failures. The
// engine never raises it; it is reserved for host applications that want a
// well-known error kind to signal domain validation failures from hooks.
type WorkflowValidationError struct {
	Errors []error
}

func (e *WorkflowValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "workflow validation failed"
	}
	return fmt.Sprintf("workflow validation failed: %d error(s)", len(e.Errors))
}

// Unwrap exposes the sub-errors to errors.Is and errors.As.
func (e *WorkflowValidationError) Unwrap() []error {
	return e.Errors
}

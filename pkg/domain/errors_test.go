package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{
			&InvalidTransitionError{Transition: "submit", Current: "completed", Destination: "submitted"},
			"invalid transition submit: completed -> submitted",
		},
		{
			&ForbiddenTransitionError{Transition: "submit", Current: "draft", Destination: "submitted"},
			"transition forbidden submit: draft -> submitted",
		},
		{
			&TransitionDoesNotExistError{Transition: "launch"},
			"transition launch does not exist",
		},
		{
			&TransitionNotFoundError{Current: "draft", Target: "completed"},
			"transition not found from draft to completed",
		},
		{
			&TransitionUnavailableError{Current: "completed"},
			"no transition available out of state completed",
		},
		{
			&TransitionAmbiguousError{Current: "draft", Count: 2},
			"multiple possible transitions (got 2 choices, expected 1)",
		},
		{
			&CircularWorkflowError{State: "draft"},
			"cannot advance circular workflow (state draft already visited)",
		},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWorkflowValidationErrorUnwrap(t *testing.T) {
	inner := errors.New("amount must be positive")
	err := &WorkflowValidationError{Errors: []error{inner}}

	wrapped := fmt.Errorf("saving order: %w", err)
	if !errors.Is(wrapped, inner) {
		t.Error("expected errors.Is to reach the sub-error through Unwrap")
	}

	var verr *WorkflowValidationError
	if !errors.As(wrapped, &verr) || len(verr.Errors) != 1 {
		t.Error("expected errors.As to recover the validation error")
	}
}

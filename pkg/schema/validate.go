package schema

import (
	"fmt"

	"github.com/ratchetworks/ratchet/pkg/domain"
)

// FieldError reports one definition field that failed validation.
type FieldError struct {
	Field  string
	Reason string
	Value  any
}

func (e *FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %v)", e.Field, e.Reason, e.Value)
}

// AggregateError collects every validation failure of a definition so callers
// can report them all at once.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is/As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns the individual failures when err is an
// AggregateError, or nil.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}

// ValidateDefinition checks the structural invariants of a definition: a
// non-empty state set without duplicates, a declared initial state, uniquely
// named transitions whose destinations and non-wildcard sources reference
// declared states, and an event map pointing at existing transitions.
func ValidateDefinition(def domain.Definition) error {
	var errs []error

	if len(def.States) == 0 {
		errs = append(errs, &FieldError{Field: "states", Reason: "at least one state is required"})
	}
	declared := make(map[domain.State]bool, len(def.States))
	for _, s := range def.States {
		if s == "" {
			errs = append(errs, &FieldError{Field: "states", Reason: "state names cannot be empty"})
			continue
		}
		if declared[s] {
			errs = append(errs, &FieldError{Field: "states", Reason: "duplicate state", Value: s})
		}
		declared[s] = true
	}

	if def.Initial != "" && !declared[def.Initial] {
		errs = append(errs, &FieldError{Field: "initial", Reason: "initial state is not declared", Value: def.Initial})
	}

	seen := make(map[string]bool, len(def.Transitions))
	for _, t := range def.Transitions {
		if t.Name == "" {
			errs = append(errs, &FieldError{Field: "transitions", Reason: "transition name cannot be empty"})
			continue
		}
		if seen[t.Name] {
			errs = append(errs, &FieldError{Field: "transitions", Reason: "duplicate transition name", Value: t.Name})
		}
		seen[t.Name] = true

		field := fmt.Sprintf("transitions.%s", t.Name)
		if t.Destination == "" {
			errs = append(errs, &FieldError{Field: field, Reason: "destination is required"})
		} else if !declared[t.Destination] {
			errs = append(errs, &FieldError{Field: field, Reason: "destination is not a declared state", Value: t.Destination})
		}

		if !t.Source.IsAny() {
			states := t.Source.States()
			if len(states) == 0 {
				errs = append(errs, &FieldError{Field: field, Reason: "source must name at least one state or be the wildcard"})
			}
			for _, s := range states {
				if !declared[s] {
					errs = append(errs, &FieldError{Field: field, Reason: "source is not a declared state", Value: s})
				}
			}
		}
	}

	for event, transition := range def.Events {
		if !seen[transition] {
			errs = append(errs, &FieldError{
				Field:  fmt.Sprintf("events.%s", event),
				Reason: "event maps to an unknown transition",
				Value:  transition,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

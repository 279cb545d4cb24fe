package runtime

import (
	"context"
	"errors"

	"github.com/ratchetworks/ratchet/pkg/domain"
)

// AvailableTransitions lists the transitions whose source matches the queried
// state, in declaration order. With q.Checked the guard evaluator additionally
// filters the candidates, in non-raising mode and without call parameters.
func (e *Engine) AvailableTransitions(ctx context.Context, q domain.Query) ([]domain.Transition, error) {
	from := q.From
	if from == "" {
		from = e.subject.State()
	}

	var out []domain.Transition
	for _, t := range e.def.Transitions {
		if !t.Source.Matches(from) {
			continue
		}
		if q.Checked {
			ok, err := e.checkTransition(ctx, t, from, nil, false)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		out = append(out, t)
	}
	return out, nil
}

// AvailableTransition returns the named transition if it is available from
// the queried state with guards enforced, or nil.
func (e *Engine) AvailableTransition(ctx context.Context, name string, from domain.State) (*domain.Transition, error) {
	candidates, err := e.AvailableTransitions(ctx, domain.Query{From: from, Checked: true})
	if err != nil {
		return nil, err
	}
	for _, t := range candidates {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, nil
}

// NextStates projects the available transitions onto their destinations.
func (e *Engine) NextStates(ctx context.Context, q domain.Query) ([]domain.NextState, error) {
	transitions, err := e.AvailableTransitions(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]domain.NextState, 0, len(transitions))
	for _, t := range transitions {
		out = append(out, domain.NextState{
			State:      t.Destination,
			Transition: t.Name,
			Label:      t.Label,
		})
	}
	return out, nil
}

// TransitionTo resolves the transition that reaches target from the current
// state and returns its bound executor. When several transitions reach the
// target, the first in declaration order wins.
func (e *Engine) TransitionTo(ctx context.Context, target domain.State) (domain.TransitionFunc, error) {
	current := e.subject.State()
	candidates, err := e.AvailableTransitions(ctx, domain.Query{From: current})
	if err != nil {
		return nil, err
	}
	for _, t := range candidates {
		if t.Destination == target {
			return e.dispatch[t.Name], nil
		}
	}
	return nil, &domain.TransitionNotFoundError{Current: current, Target: target}
}

// next resolves the single transition eligible from the current state with
// guards enforced.
func (e *Engine) next(ctx context.Context) (domain.Transition, error) {
	current := e.subject.State()
	eligible, err := e.AvailableTransitions(ctx, domain.Query{Checked: true})
	if err != nil {
		return domain.Transition{}, err
	}
	switch len(eligible) {
	case 0:
		return domain.Transition{}, &domain.TransitionUnavailableError{Current: current}
	case 1:
		return eligible[0], nil
	default:
		return domain.Transition{}, &domain.TransitionAmbiguousError{Current: current, Count: len(eligible)}
	}
}

// Advance performs the single unambiguous transition eligible from the
// current state.
func (e *Engine) Advance(ctx context.Context) error {
	t, err := e.next(ctx)
	if err != nil {
		return err
	}
	_, err = e.dispatch[t.Name](ctx, nil)
	return err
}

// RunToCompletion advances the workflow until no transition is eligible,
// which is not an error. Revisiting a state stops the loop with
// CircularWorkflowError; an ambiguous step propagates as is.
func (e *Engine) RunToCompletion(ctx context.Context) error {
	seen := map[domain.State]bool{e.subject.State(): true}
	for {
		t, err := e.next(ctx)
		if err != nil {
			var unavailable *domain.TransitionUnavailableError
			if errors.As(err, &unavailable) {
				return nil
			}
			return err
		}
		if seen[t.Destination] {
			return &domain.CircularWorkflowError{State: t.Destination}
		}
		if _, err := e.dispatch[t.Name](ctx, nil); err != nil {
			return err
		}
		seen[e.subject.State()] = true
	}
}

package runtime

import (
	"context"

	"github.com/ratchetworks/ratchet/pkg/domain"
)

// checkTransition aggregates the guard decision for t starting from current:
// the transition-scoped condition first, then every enter check of the
// destination, then every exit check of the current state. All must pass.
//
// In raising mode a denial becomes a ForbiddenTransitionError; otherwise it
// is reported as false so the query API can filter candidates. Errors
// returned by guard functions always propagate.
func (e *Engine) checkTransition(ctx context.Context, t domain.Transition, current domain.State, params domain.Params, raising bool) (bool, error) {
	allowed := true

	if cond := e.hooks.conditions[t.Name]; cond != nil {
		ok, err := cond(ctx, params)
		if err != nil {
			return false, err
		}
		allowed = ok
	}

	if allowed {
		for _, check := range e.hooks.enterChecks[t.Destination] {
			ok, err := check(ctx)
			if err != nil {
				return false, err
			}
			if !ok {
				allowed = false
				break
			}
		}
	}

	if allowed {
		for _, check := range e.hooks.exitChecks[current] {
			ok, err := check(ctx)
			if err != nil {
				return false, err
			}
			if !ok {
				allowed = false
				break
			}
		}
	}

	if allowed {
		return true, nil
	}
	if raising {
		return false, &domain.ForbiddenTransitionError{
			Transition:  t.Name,
			Current:     current,
			Destination: t.Destination,
		}
	}
	return false, nil
}

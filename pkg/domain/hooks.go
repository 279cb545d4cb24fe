package domain

import "context"

// Params carries the caller-supplied arguments of a transition invocation.
// They are forwarded verbatim to conditions, before hooks, bodies, audit
// entries and emitted events.
type Params map[string]any

// StateCheck is a guard predicate attached to entering or exiting a state.
// All checks registered for a state must return true for the transition to be
// allowed. Checks must be free of observable side effects (best-effort
// contract, not enforced).
type StateCheck func(ctx context.Context) (bool, error)

// StateHook is a side-effecting callback invoked when a state is entered or
// exited, receiving the transition being performed.
type StateHook func(ctx context.Context, t Transition) error

// Condition is a transition-scoped guard, invoked with the call parameters.
// In query mode (filtering candidate transitions) params is nil.
type Condition func(ctx context.Context, params Params) (bool, error)

// BeforeHook runs after the guard phase and before the current state is
// exited.
type BeforeHook func(ctx context.Context, params Params) error

// Body is a transition's own implementation. Its result is handed to the
// AfterHook and returned to the caller.
type Body func(ctx context.Context, params Params) (any, error)

// AfterHook runs after the state mutation, receiving the body's result.
type AfterHook func(ctx context.Context, result any) error

// TransitionFunc is a bound executor for a single named transition: calling
// it runs the full transition pipeline against the bound subject.
type TransitionFunc func(ctx context.Context, params Params) (any, error)

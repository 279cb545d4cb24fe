package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ratchetworks/ratchet/internal/logging"
	"github.com/ratchetworks/ratchet/pkg/domain"
	"github.com/ratchetworks/ratchet/pkg/ports"
)

// Engine drives a single subject through the transitions of a Definition.
// It is the only component that mutates the subject's state, and it does so
// exactly once per successful transition. The engine is purely synchronous:
// every call completes before returning, and it holds no locks.
type Engine struct {
	def     domain.Definition
	subject ports.Subject

	hooks    *Hooks
	dispatch map[string]domain.TransitionFunc

	audit    ports.AuditLogger
	managers []ports.EventManager
	uow      ports.UnitOfWork

	logger *slog.Logger
	now    func() time.Time
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the time source used for date stamping, audit entries
// and events. Meant for deterministic tests.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithAuditLogger enables audit logging of committed transitions.
func WithAuditLogger(a ports.AuditLogger) EngineOption {
	return func(e *Engine) { e.audit = a }
}

// WithEventManager registers an event manager. Managers are notified in
// registration order after every successful transition.
func WithEventManager(m ports.EventManager) EngineOption {
	return func(e *Engine) { e.managers = append(e.managers, m) }
}

// WithUnitOfWork wraps every transition call in the given scoped unit of
// work. Without one, transitions run unwrapped.
func WithUnitOfWork(u ports.UnitOfWork) EngineOption {
	return func(e *Engine) { e.uow = u }
}

// WithEnterCheck registers a guard that must pass before state is entered.
func WithEnterCheck(state domain.State, check domain.StateCheck) EngineOption {
	return func(e *Engine) {
		e.hooks.enterChecks[state] = append(e.hooks.enterChecks[state], check)
	}
}

// WithExitCheck registers a guard that must pass before state is exited.
func WithExitCheck(state domain.State, check domain.StateCheck) EngineOption {
	return func(e *Engine) {
		e.hooks.exitChecks[state] = append(e.hooks.exitChecks[state], check)
	}
}

// WithEnterHook registers a hook invoked after state becomes current.
func WithEnterHook(state domain.State, hook domain.StateHook) EngineOption {
	return func(e *Engine) {
		e.hooks.enterHooks[state] = append(e.hooks.enterHooks[state], hook)
	}
}

// WithExitHook registers a hook invoked while state is still current,
// before the mutation point.
func WithExitHook(state domain.State, hook domain.StateHook) EngineOption {
	return func(e *Engine) {
		e.hooks.exitHooks[state] = append(e.hooks.exitHooks[state], hook)
	}
}

// WithCondition sets the guard condition of a transition.
func WithCondition(transition string, cond domain.Condition) EngineOption {
	return func(e *Engine) { e.hooks.conditions[transition] = cond }
}

// WithBefore sets the before hook of a transition.
func WithBefore(transition string, hook domain.BeforeHook) EngineOption {
	return func(e *Engine) { e.hooks.befores[transition] = hook }
}

// WithAfter sets the after hook of a transition.
func WithAfter(transition string, hook domain.AfterHook) EngineOption {
	return func(e *Engine) { e.hooks.afters[transition] = hook }
}

// WithBody sets the transition's own implementation. Its result is passed to
// the after hook and returned to the caller.
func WithBody(transition string, body domain.Body) EngineOption {
	return func(e *Engine) { e.hooks.bodies[transition] = body }
}

// NewEngine binds a subject to a definition. The hook registry and the
// transition dispatch table are built here, once; the engine is stateless
// across calls apart from them.
func NewEngine(subject ports.Subject, def domain.Definition, opts ...EngineOption) *Engine {
	e := &Engine{
		def:     def,
		subject: subject,
		hooks:   newHooks(),
		logger:  logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.dispatch = make(map[string]domain.TransitionFunc, len(def.Transitions))
	for _, t := range def.Transitions {
		t := t
		e.dispatch[t.Name] = func(ctx context.Context, params domain.Params) (any, error) {
			return e.execute(ctx, t, params)
		}
	}
	return e
}

// State returns the subject's current state.
func (e *Engine) State() domain.State {
	return e.subject.State()
}

// Definition returns the bound workflow definition.
func (e *Engine) Definition() domain.Definition {
	return e.def
}

// Run performs the named transition with the given parameters, returning the
// body's result when the transition declares one.
func (e *Engine) Run(ctx context.Context, name string, params domain.Params) (any, error) {
	fn, ok := e.dispatch[name]
	if !ok {
		return nil, &domain.TransitionDoesNotExistError{Transition: name}
	}
	return fn(ctx, params)
}

// ProcessEvent maps a process-level event name to its configured transition
// and performs it with data as parameters. Unmapped events return (nil, nil).
func (e *Engine) ProcessEvent(ctx context.Context, name string, data domain.Params) (any, error) {
	transition, ok := e.def.Events[name]
	if !ok {
		return nil, nil
	}
	return e.Run(ctx, transition, data)
}

// Rollback resets the subject's in-memory state to previous. It is
// best-effort only: hook side effects already executed are not compensated,
// and nothing is persisted.
func (e *Engine) Rollback(ctx context.Context, previous, target domain.State, cause error) {
	e.logger.WarnContext(ctx, "rolling back state in memory",
		"workflow", e.def.Name, "from", target, "to", previous, "error", cause)
	e.subject.SetState(previous)
}

// execute runs the full pipeline for t, wrapped in the unit of work when one
// is configured.
func (e *Engine) execute(ctx context.Context, t domain.Transition, params domain.Params) (any, error) {
	var result any
	run := func(ctx context.Context) error {
		var err error
		result, err = e.pipeline(ctx, t, params)
		return err
	}

	if e.uow != nil {
		if err := e.uow.Atomic(ctx, run); err != nil {
			return nil, err
		}
		return result, nil
	}
	if err := run(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// pipeline is the state machine of one transition call: strictly sequential,
// no branching back. Steps before the mutation point leave the subject
// untouched on failure; steps after it run against the new state and their
// failures are the caller's transactional responsibility.
func (e *Engine) pipeline(ctx context.Context, t domain.Transition, params domain.Params) (any, error) {
	current := e.subject.State()

	// 1. Source check.
	if !t.Source.Matches(current) {
		return nil, &domain.InvalidTransitionError{
			Transition:  t.Name,
			Current:     current,
			Destination: t.Destination,
		}
	}

	// 2. Guard phase. A denial aborts with no side effect performed.
	if _, err := e.checkTransition(ctx, t, current, params, true); err != nil {
		return nil, err
	}

	// 3. Before-transition hook.
	if before := e.hooks.befores[t.Name]; before != nil {
		e.logger.DebugContext(ctx, "before transition", "transition", t.Name)
		if err := before(ctx, params); err != nil {
			return nil, fmt.Errorf("before %s: %w", t.Name, err)
		}
	}

	// 4. Exit hooks of the pre-transition state.
	e.logger.DebugContext(ctx, "leaving state", "state", current)
	for _, hook := range e.hooks.exitHooks[current] {
		if err := hook(ctx, t); err != nil {
			return nil, fmt.Errorf("exiting %s: %w", current, err)
		}
	}

	// 5. Transition body.
	var result any
	if body := e.hooks.bodies[t.Name]; body != nil {
		var err error
		if result, err = body(ctx, params); err != nil {
			return nil, fmt.Errorf("transition %s: %w", t.Name, err)
		}
	}

	// 6. The single mutation point.
	e.logger.DebugContext(ctx, "updating state", "from", current, "to", t.Destination)
	e.subject.SetState(t.Destination)

	// 7. Enter hooks of the destination state.
	e.logger.DebugContext(ctx, "entering state", "state", t.Destination)
	for _, hook := range e.hooks.enterHooks[t.Destination] {
		if err := hook(ctx, t); err != nil {
			return nil, fmt.Errorf("entering %s: %w", t.Destination, err)
		}
	}

	// 8. After-transition hook, fed with the body's result.
	if after := e.hooks.afters[t.Name]; after != nil {
		e.logger.DebugContext(ctx, "after transition", "transition", t.Name)
		if err := after(ctx, result); err != nil {
			return nil, fmt.Errorf("after %s: %w", t.Name, err)
		}
	}

	// 9. Finalize: stamp the date field, persist the subject.
	if err := e.finalize(ctx, t); err != nil {
		return nil, err
	}

	// 10-11. Audit log and event emission, with the exact source state.
	if err := e.report(ctx, t, current, params); err != nil {
		return nil, err
	}

	return result, nil
}

func (e *Engine) finalize(ctx context.Context, t domain.Transition) error {
	if t.DateField != "" {
		if stamper, ok := e.subject.(ports.DateStamper); ok {
			stamper.StampDate(t.DateField, e.now())
		} else {
			e.logger.WarnContext(ctx, "subject cannot stamp dates",
				"transition", t.Name, "date_field", t.DateField)
		}
	}

	e.logger.DebugContext(ctx, "saving subject", "workflow", e.def.Name)
	if err := e.subject.Save(ctx); err != nil {
		return fmt.Errorf("saving subject: %w", err)
	}
	return nil
}

func (e *Engine) report(ctx context.Context, t domain.Transition, from domain.State, params domain.Params) error {
	now := e.now()

	if e.audit != nil {
		entry := domain.AuditEntry{
			Workflow:   e.def.Name,
			Transition: t.Name,
			From:       from,
			To:         t.Destination,
			Subject:    e.subject,
			Params:     params,
			LoggedAt:   now,
		}
		if err := e.audit.Log(ctx, entry); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
	}

	if len(e.managers) == 0 {
		return nil
	}
	event := domain.Event{
		Workflow:   e.def.Name,
		Transition: t.Name,
		From:       from,
		To:         t.Destination,
		Params:     params,
		OccurredAt: now,
	}
	for _, m := range e.managers {
		if err := m.PushEvent(ctx, event); err != nil {
			return fmt.Errorf("pushing event for %s: %w", t.Name, err)
		}
	}
	return nil
}

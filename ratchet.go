package ratchet

import (
	"context"
	"log/slog"
	"time"

	"github.com/ratchetworks/ratchet/internal/logging"
	"github.com/ratchetworks/ratchet/internal/runtime"
	"github.com/ratchetworks/ratchet/pkg/domain"
	"github.com/ratchetworks/ratchet/pkg/ports"
	"github.com/ratchetworks/ratchet/pkg/schema"
)

// Workflow binds one subject to a workflow definition for the duration of an
// interaction. It wraps the core runtime and exposes the transition and query
// API. A Workflow is bound 1:1 to its subject; construct a fresh one per
// subject interaction (see Factory).
type Workflow struct {
	rt     *runtime.Engine
	logger *slog.Logger
}

// Option configures a Workflow at construction.
type Option func(*settings)

type settings struct {
	logger      *slog.Logger
	runtimeOpts []runtime.EngineOption
}

// WithLogger sets the structured logger used by the engine. Defaults to a
// no-op logger; there is no package-level logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithClock overrides the engine's time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithClock(now))
	}
}

// WithAuditLogger enables audit logging of every committed transition.
func WithAuditLogger(a ports.AuditLogger) Option {
	return func(s *settings) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithAuditLogger(a))
	}
}

// WithEventManager attaches an event manager, notified after every
// successful transition. May be given several times.
func WithEventManager(m ports.EventManager) Option {
	return func(s *settings) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithEventManager(m))
	}
}

// WithUnitOfWork wraps every transition call in the given scoped unit of
// work collaborator.
func WithUnitOfWork(u ports.UnitOfWork) Option {
	return func(s *settings) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithUnitOfWork(u))
	}
}

// OnEnterCheck registers a guard predicate evaluated before state may be
// entered. All checks registered for a state must pass.
func OnEnterCheck(state domain.State, check domain.StateCheck) Option {
	return func(s *settings) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithEnterCheck(state, check))
	}
}

// OnExitCheck registers a guard predicate evaluated before state may be
// exited.
func OnExitCheck(state domain.State, check domain.StateCheck) Option {
	return func(s *settings) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithExitCheck(state, check))
	}
}

// OnEnter registers a hook invoked right after state becomes current.
func OnEnter(state domain.State, hook domain.StateHook) Option {
	return func(s *settings) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithEnterHook(state, hook))
	}
}

// OnExit registers a hook invoked while state is still current, before the
// mutation point.
func OnExit(state domain.State, hook domain.StateHook) Option {
	return func(s *settings) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithExitHook(state, hook))
	}
}

// Condition sets the guard condition of the named transition. It receives
// the call parameters (nil when evaluated by the query API).
func Condition(transition string, cond domain.Condition) Option {
	return func(s *settings) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithCondition(transition, cond))
	}
}

// Before sets the hook invoked after guards pass and before the current
// state is exited.
func Before(transition string, hook domain.BeforeHook) Option {
	return func(s *settings) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithBefore(transition, hook))
	}
}

// After sets the hook invoked after the state mutation, receiving the body's
// result.
func After(transition string, hook domain.AfterHook) Option {
	return func(s *settings) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithAfter(transition, hook))
	}
}

// Body sets the transition's own implementation; its result is returned to
// the caller and handed to the After hook.
func Body(transition string, body domain.Body) Option {
	return func(s *settings) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithBody(transition, body))
	}
}

// New binds subject to def. The definition is validated and the hook
// registry is built here, once; the returned Workflow is immutable apart
// from the subject it drives.
func New(subject ports.Subject, def domain.Definition, opts ...Option) (*Workflow, error) {
	if err := schema.ValidateDefinition(def); err != nil {
		return nil, err
	}
	return newWorkflow(subject, def, opts), nil
}

// newWorkflow builds a Workflow without re-validating the definition.
func newWorkflow(subject ports.Subject, def domain.Definition, opts []Option) *Workflow {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}

	logger := s.logger
	if logger == nil {
		logger = logging.NewNop()
	}
	if def.Name != "" {
		logger = logger.With("workflow", def.Name)
	}

	runtimeOpts := append([]runtime.EngineOption{runtime.WithLogger(logger)}, s.runtimeOpts...)
	return &Workflow{
		rt:     runtime.NewEngine(subject, def, runtimeOpts...),
		logger: logger,
	}
}

// State returns the subject's current state.
func (w *Workflow) State() domain.State {
	return w.rt.State()
}

// Definition returns the bound workflow definition.
func (w *Workflow) Definition() domain.Definition {
	return w.rt.Definition()
}

// Run performs the named transition. See the package documentation for the
// exact pipeline and its failure semantics.
func (w *Workflow) Run(ctx context.Context, name string, params domain.Params) (any, error) {
	return w.rt.Run(ctx, name, params)
}

// Advance performs the single transition eligible from the current state
// with guards enforced. Zero eligible transitions yield
// TransitionUnavailableError, several yield TransitionAmbiguousError.
func (w *Workflow) Advance(ctx context.Context) error {
	return w.rt.Advance(ctx)
}

// RunToCompletion advances the workflow until no transition is eligible.
// Revisiting a state stops with CircularWorkflowError.
func (w *Workflow) RunToCompletion(ctx context.Context) error {
	return w.rt.RunToCompletion(ctx)
}

// AvailableTransitions lists the transitions available from the queried
// state, in declaration order.
func (w *Workflow) AvailableTransitions(ctx context.Context, q domain.Query) ([]domain.Transition, error) {
	return w.rt.AvailableTransitions(ctx, q)
}

// AvailableTransition returns the named transition if it is available from
// the queried state with guards enforced, or nil.
func (w *Workflow) AvailableTransition(ctx context.Context, name string, from domain.State) (*domain.Transition, error) {
	return w.rt.AvailableTransition(ctx, name, from)
}

// NextStates projects the available transitions onto their destinations.
func (w *Workflow) NextStates(ctx context.Context, q domain.Query) ([]domain.NextState, error) {
	return w.rt.NextStates(ctx, q)
}

// TransitionTo resolves the transition reaching target from the current
// state and returns its bound executor, or TransitionNotFoundError.
func (w *Workflow) TransitionTo(ctx context.Context, target domain.State) (domain.TransitionFunc, error) {
	return w.rt.TransitionTo(ctx, target)
}

// ProcessEvent maps a process-level event to its configured transition and
// performs it. Unmapped events return (nil, nil).
func (w *Workflow) ProcessEvent(ctx context.Context, name string, data domain.Params) (any, error) {
	return w.rt.ProcessEvent(ctx, name, data)
}

// Rollback resets the subject's in-memory state to previous. Best-effort
// only: it neither persists nor compensates hook side effects.
func (w *Workflow) Rollback(ctx context.Context, previous, target domain.State, cause error) {
	w.rt.Rollback(ctx, previous, target, cause)
}

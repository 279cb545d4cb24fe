package runtime

import "github.com/ratchetworks/ratchet/pkg/domain"

// Hooks is the per-instance hook registry. It is built once at engine
// construction from explicit registrations and is immutable afterwards.
// Multiple checks or hooks may attach to the same state; they are kept in
// registration order. Transition-scoped entries (condition, before, after,
// body) hold at most one function per transition.
type Hooks struct {
	enterChecks map[domain.State][]domain.StateCheck
	exitChecks  map[domain.State][]domain.StateCheck
	enterHooks  map[domain.State][]domain.StateHook
	exitHooks   map[domain.State][]domain.StateHook

	conditions map[string]domain.Condition
	befores    map[string]domain.BeforeHook
	afters     map[string]domain.AfterHook
	bodies     map[string]domain.Body
}

func newHooks() *Hooks {
	return &Hooks{
		enterChecks: make(map[domain.State][]domain.StateCheck),
		exitChecks:  make(map[domain.State][]domain.StateCheck),
		enterHooks:  make(map[domain.State][]domain.StateHook),
		exitHooks:   make(map[domain.State][]domain.StateHook),
		conditions:  make(map[string]domain.Condition),
		befores:     make(map[string]domain.BeforeHook),
		afters:      make(map[string]domain.AfterHook),
		bodies:      make(map[string]domain.Body),
	}
}

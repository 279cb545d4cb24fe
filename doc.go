/*
Package ratchet is a declarative workflow engine: it drives an external
mutable subject through a finite set of named states along explicitly
declared transitions, with guard conditions and a fixed side-effect order
around every move.

The engine owns nothing. The subject (any value implementing ports.Subject)
belongs to the caller; persistence, transactions, audit storage and event
delivery are collaborators injected through the interfaces in pkg/ports.

# Declaring a workflow

A workflow is a Definition: states, a transition table and an optional
process-level event map. Definitions are built in code, with the fluent
builder in pkg/dsl, or loaded from YAML with pkg/schema:

	def := domain.Definition{
		Name:   "order",
		States: []domain.State{"draft", "submitted", "completed", "rejected"},
		Transitions: []domain.Transition{
			{Name: "submit", Source: domain.From("draft"), Destination: "submitted"},
			{Name: "complete", Source: domain.From("submitted"), Destination: "completed"},
			{Name: "reject", Source: domain.FromAny(), Destination: "rejected"},
		},
	}

Hooks and guards are registered explicitly at construction; there is no
reflection and no naming convention:

	wf, err := ratchet.New(order, def,
		ratchet.Condition("submit", func(ctx context.Context, p domain.Params) (bool, error) {
			return order.CanSubmit(), nil
		}),
		ratchet.OnExit("draft", notifyLeavingDraft),
		ratchet.OnEnter("submitted", notifyArrival),
	)

# Running transitions

	result, err := wf.Run(ctx, "submit", domain.Params{"actor": "alice"})

A transition call is a strictly sequential pipeline: source check, guard
phase, before hook, exit-state hooks, transition body, the single state
mutation, enter-state hooks, after hook, finalize (date stamping plus
Subject.Save), audit logging and event emission. Failures before the
mutation point leave the subject untouched; failures after it leave the
in-memory state mutated and are the caller's transactional responsibility —
wrap calls in a ports.UnitOfWork to make storage effects atomic.

Auto-advancing workflows use Advance (exactly one eligible transition) or
RunToCompletion (advance until blocked); the query API lists available
transitions and reachable states for UIs.
*/
package ratchet

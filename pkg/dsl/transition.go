package dsl

import "github.com/ratchetworks/ratchet/pkg/domain"

// TransitionBuilder provides a fluent API for configuring one transition.
type TransitionBuilder struct {
	transition domain.Transition
	builder    *Builder
}

// From restricts the transition to the given source states.
func (t *TransitionBuilder) From(states ...domain.State) *TransitionBuilder {
	t.transition.Source = domain.From(states...)
	return t
}

// FromAny makes the transition available from every state.
func (t *TransitionBuilder) FromAny() *TransitionBuilder {
	t.transition.Source = domain.FromAny()
	return t
}

// To sets the destination state.
func (t *TransitionBuilder) To(state domain.State) *TransitionBuilder {
	t.transition.Destination = state
	return t
}

// Label sets the human-readable label shown alongside the transition.
func (t *TransitionBuilder) Label(label string) *TransitionBuilder {
	t.transition.Label = label
	return t
}

// StampInto names the subject field that receives the completion timestamp.
func (t *TransitionBuilder) StampInto(field string) *TransitionBuilder {
	t.transition.DateField = field
	return t
}

// Add declares the next transition on the underlying builder, so transition
// declarations can be chained.
func (t *TransitionBuilder) Add(name string) *TransitionBuilder {
	return t.builder.Add(name)
}

// Builder returns the workflow builder, to continue with workflow-level
// calls such as MapEvent or Build after a transition chain.
func (t *TransitionBuilder) Builder() *Builder {
	return t.builder
}

// Build returns the underlying transition. Primarily used by the Builder,
// but exposed for advanced usage.
func (t *TransitionBuilder) Build() domain.Transition {
	return t.transition
}

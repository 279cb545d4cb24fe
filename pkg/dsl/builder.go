package dsl

import (
	"github.com/ratchetworks/ratchet/pkg/domain"
	"github.com/ratchetworks/ratchet/pkg/schema"
)

// Builder manages workflow definition construction. Transitions keep the
// order in which they were added; that order drives query results and
// transition resolution.
type Builder struct {
	def         domain.Definition
	transitions []*TransitionBuilder
}

// New creates a builder for a workflow with the given name.
func New(name string) *Builder {
	return &Builder{
		def: domain.Definition{Name: name},
	}
}

// States declares the workflow's state set, in order.
func (b *Builder) States(states ...domain.State) *Builder {
	b.def.States = append(b.def.States, states...)
	return b
}

// Initial sets the workflow's initial state.
func (b *Builder) Initial(state domain.State) *Builder {
	b.def.Initial = state
	return b
}

// Add declares a new transition with the given name and returns its builder.
func (b *Builder) Add(name string) *TransitionBuilder {
	tb := &TransitionBuilder{
		transition: domain.Transition{Name: name},
		builder:    b,
	}
	b.transitions = append(b.transitions, tb)
	return tb
}

// MapEvent routes a process-level event to the named transition.
func (b *Builder) MapEvent(event, transition string) *Builder {
	if b.def.Events == nil {
		b.def.Events = make(map[string]string)
	}
	b.def.Events[event] = transition
	return b
}

// Build compiles and validates the definition.
func (b *Builder) Build() (domain.Definition, error) {
	def := b.def
	def.Transitions = make([]domain.Transition, 0, len(b.transitions))
	for _, tb := range b.transitions {
		def.Transitions = append(def.Transitions, tb.transition)
	}
	if err := schema.ValidateDefinition(def); err != nil {
		return domain.Definition{}, err
	}
	return def, nil
}

package domain

// Transition is a named, directed edge from one or more source states to a
// single destination state. Transitions are immutable once declared.
type Transition struct {
	// Name uniquely identifies the transition within a Definition.
	Name string

	// Source selects the states the transition may start from.
	Source Source

	// Destination is the state reached on success. It must be a declared
	// state and never the wildcard.
	Destination State

	// DateField, when set, names a timestamp field stamped on the subject
	// with the transition time, right before the subject is saved.
	// Subjects opt in by implementing ports.DateStamper.
	DateField string

	// Label is an optional human-readable caption (UI hint).
	Label string
}

// Definition is the static, declarative description of a workflow: its state
// set, its transition table and the optional process-level event map. It is
// read-only after construction.
type Definition struct {
	// Name identifies the workflow kind, used in logs, audit entries and
	// emitted events.
	Name string

	// States is the declared state set, in declaration order.
	States []State

	// Initial overrides the default initial state (the first declared one).
	Initial State

	// Transitions is the transition table, in declaration order.
	Transitions []Transition

	// Events maps process-level event names to transition names.
	Events map[string]string
}

// InitialState returns the configured initial state, falling back to the
// first declared state.
func (d Definition) InitialState() State {
	if d.Initial != "" {
		return d.Initial
	}
	if len(d.States) > 0 {
		return d.States[0]
	}
	return ""
}

// TransitionByName looks a transition up by its unique name.
func (d Definition) TransitionByName(name string) (Transition, bool) {
	for _, t := range d.Transitions {
		if t.Name == name {
			return t, true
		}
	}
	return Transition{}, false
}

// IsTransition reports whether name is declared in the transition table.
func (d Definition) IsTransition(name string) bool {
	_, ok := d.TransitionByName(name)
	return ok
}

// HasState reports whether s belongs to the declared state set.
func (d Definition) HasState(s State) bool {
	for _, declared := range d.States {
		if declared == s {
			return true
		}
	}
	return false
}

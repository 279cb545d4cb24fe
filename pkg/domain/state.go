package domain

import "strings"

// State identifies a single workflow state. States are opaque to the engine;
// they only need to be comparable and drawn from the declared state set.
type State string

// Source describes where a transition may start from. It is a tagged variant:
// either a specific set of states, or any state (wildcard). A Source is never
// a valid destination.
type Source struct {
	any    bool
	states []State
}

// From builds a Source matching the given states.
func From(states ...State) Source {
	return Source{states: states}
}

// FromAny builds the wildcard Source, matching every current state.
func FromAny() Source {
	return Source{any: true}
}

// IsAny reports whether the source is the wildcard.
func (s Source) IsAny() bool {
	return s.any
}

// States returns the declared source states. Empty for the wildcard.
func (s Source) States() []State {
	out := make([]State, len(s.states))
	copy(out, s.states)
	return out
}

// Matches reports whether a transition with this source may start from state.
func (s Source) Matches(state State) bool {
	if s.any {
		return true
	}
	for _, candidate := range s.states {
		if candidate == state {
			return true
		}
	}
	return false
}

func (s Source) String() string {
	if s.any {
		return "*"
	}
	parts := make([]string, len(s.states))
	for i, st := range s.states {
		parts[i] = string(st)
	}
	return strings.Join(parts, "|")
}

package domain

import "time"

// Event is the record pushed to every registered event manager after a
// transition has committed in-memory. From is always the exact pre-transition
// state, even when the transition's source is the wildcard or a set.
type Event struct {
	Workflow   string    `json:"workflow"`
	Transition string    `json:"transition"`
	From       State     `json:"from"`
	To         State     `json:"to"`
	Params     Params    `json:"params,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AuditEntry is the record handed to the audit logger at the end of a
// successful transition.
type AuditEntry struct {
	Workflow   string    `json:"workflow"`
	Transition string    `json:"transition"`
	From       State     `json:"from"`
	To         State     `json:"to"`
	Subject    any       `json:"subject,omitempty"`
	Params     Params    `json:"params,omitempty"`
	LoggedAt   time.Time `json:"logged_at"`
}

// NextState is the projection of an available transition onto its
// destination, as returned by the query API.
type NextState struct {
	State      State  `json:"state"`
	Transition string `json:"transition"`
	Label      string `json:"label,omitempty"`
}

// Query narrows the transitions considered by the query API.
type Query struct {
	// From is the state to query from. Empty means the subject's current
	// state.
	From State

	// Checked filters candidates through the guard evaluator (non-raising)
	// instead of returning every source-compatible transition. Guards can
	// only be meaningfully evaluated against the current state.
	Checked bool
}

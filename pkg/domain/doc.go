/*
Package domain contains the pure workflow model shared by the whole module.

It defines the fundamental entities of the engine — States, the tagged Source
variant, Transitions, the workflow Definition, hook function types and the
error taxonomy. This package is kept free of I/O, persistence and logging so
adapters and the runtime can depend on it without pulling anything else in.

# Key entities

  - State / Source: a state identifier and a transition origin, where the
    origin is either a specific state set or the wildcard (any state).
  - Transition: a named edge with one destination, optional timestamp field
    and label.
  - Definition: the immutable transition table plus declared states and the
    process-level event map.
  - Event / AuditEntry: records created, never mutated, at the end of a
    successful transition.
*/
package domain

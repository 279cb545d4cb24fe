// Package memory provides in-memory implementations of the workflow ports.
//
// They back tests and small programs that have no external persistence, and
// double as reference implementations of the port contracts.
package memory

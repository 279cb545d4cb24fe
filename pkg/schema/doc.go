/*
Package schema loads and validates declarative workflow definitions.

A definition can come from a YAML document (Load/Parse) or be built in code
and checked with ValidateDefinition. Validation failures are aggregated so a
single pass reports every problem in the document.
*/
package schema

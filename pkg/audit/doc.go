// Package audit decorates audit loggers with cross-cutting behavior such as
// PII masking.
package audit

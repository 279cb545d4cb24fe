// Package http serves the workflow API over HTTP, routing every
// subject-scoped request through the binder's per-subject lock.
package http

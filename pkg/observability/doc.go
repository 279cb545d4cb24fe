// Package observability exposes workflow activity as Prometheus metrics.
package observability

package audit

import (
	"context"
	"regexp"

	"github.com/ratchetworks/ratchet/pkg/domain"
	"github.com/ratchetworks/ratchet/pkg/ports"
)

// Middleware allows wrapping an AuditLogger to add behavior.
type Middleware func(ports.AuditLogger) ports.AuditLogger

// Chain applies middlewares to logger, outermost first.
func Chain(logger ports.AuditLogger, middlewares ...Middleware) ports.AuditLogger {
	for i := len(middlewares) - 1; i >= 0; i-- {
		logger = middlewares[i](logger)
	}
	return logger
}

type piiMiddleware struct {
	next     ports.AuditLogger
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks parameter values whose
// keys match the patterns before the entry reaches the underlying logger.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.AuditLogger) ports.AuditLogger {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Log(ctx context.Context, entry domain.AuditEntry) error {
	// Deep clone to avoid side effects on the params the caller still holds.
	if entry.Params != nil {
		cloned := deepCopyMap(entry.Params)
		maskMap(cloned, m.patterns)
		entry.Params = cloned
	}
	return m.next.Log(ctx, entry)
}

// Helpers

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		// Handle nested maps
		if subMap, ok := v.(map[string]any); ok {
			out[k] = deepCopyMap(subMap)
		} else {
			out[k] = v // shallow copy of value
		}
	}
	return out
}

func maskMap(m map[string]any, patterns []*regexp.Regexp) {
	for k, v := range m {
		// Check key against patterns
		for _, p := range patterns {
			if p.MatchString(k) {
				m[k] = "***"
				break
			}
		}

		// Recurse if map
		if subMap, ok := v.(map[string]any); ok {
			maskMap(subMap, patterns)
		}
	}
}

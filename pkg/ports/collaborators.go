package ports

import (
	"context"

	"github.com/ratchetworks/ratchet/pkg/domain"
)

// AuditLogger records committed transitions. It is invoked once per
// successful transition, after the subject has been saved, and only when the
// workflow was built with one.
type AuditLogger interface {
	Log(ctx context.Context, entry domain.AuditEntry) error
}

// EventManager receives a transition record after every successful
// transition. Zero or more managers may be attached to a workflow; they are
// notified in registration order.
type EventManager interface {
	PushEvent(ctx context.Context, event domain.Event) error
}

// UnitOfWork scopes a transition call so that its persistence effects either
// all commit or all roll back. The engine does not implement this capability:
// it is an injected collaborator (typically backed by a database
// transaction). In-memory side effects of hooks are NOT covered by the
// guarantee unless the implementation also reverts them.
type UnitOfWork interface {
	Atomic(ctx context.Context, fn func(ctx context.Context) error) error
}

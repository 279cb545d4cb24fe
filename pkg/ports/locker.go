package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// Locker provides distributed concurrency control for callers that drive the
// same subject from multiple processes. The engine is lock-free by design;
// serializing access is the caller's job and Locker is the boundary it can
// use for it.
type Locker interface {
	// Lock acquires a lock for key (typically a subject ID). It blocks
	// until the lock is acquired or ctx is canceled. The returned
	// UnlockFunc MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratchetworks/ratchet/pkg/adapters/redis"
	"github.com/ratchetworks/ratchet/pkg/domain"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestAuditLogRoundTrip(t *testing.T) {
	_, client := newTestClient(t)
	ctx := context.Background()

	audit := redis.NewAuditLog(client, "ratchet:audit")
	require.NoError(t, audit.Log(ctx, domain.AuditEntry{
		Workflow:   "order",
		Transition: "submit",
		From:       "draft",
		To:         "submitted",
	}))
	require.NoError(t, audit.Log(ctx, domain.AuditEntry{
		Workflow:   "order",
		Transition: "reject",
		From:       "submitted",
		To:         "rejected",
	}))

	entries, err := audit.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "submit", entries[0].Transition)
	assert.Equal(t, domain.State("draft"), entries[0].From)
	assert.Equal(t, "reject", entries[1].Transition)
}

func TestEventStreamAppends(t *testing.T) {
	_, client := newTestClient(t)
	ctx := context.Background()

	stream := redis.NewEventStream(client, "ratchet:events")
	require.NoError(t, stream.PushEvent(ctx, domain.Event{
		Workflow:   "order",
		Transition: "submit",
		From:       "draft",
		To:         "submitted",
		Params:     domain.Params{"by": "alice"},
		OccurredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}))

	entries, err := client.XRange(ctx, "ratchet:events", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "submit", entries[0].Values["transition"])
	assert.Equal(t, "draft", entries[0].Values["from"])
	assert.Contains(t, entries[0].Values["params"], "alice")
}

func TestLockerMutualExclusion(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()

	locker := redis.NewLocker(client, "ratchet:")
	unlock, err := locker.Lock(ctx, "order-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("ratchet:lock:order-1"))

	// A second acquisition blocks until the context gives up.
	blocked, cancel := context.WithTimeout(ctx, 400*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(blocked, "order-1", time.Minute)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("ratchet:lock:order-1"))

	// Released lock can be re-acquired.
	unlock2, err := locker.Lock(ctx, "order-1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

package observability

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratchetworks/ratchet/pkg/domain"
)

func TestCollectorCountsTransitions(t *testing.T) {
	collector := NewCollector()
	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(collector))

	ctx := context.Background()
	event := domain.Event{Workflow: "order", Transition: "submit", From: "draft", To: "submitted"}
	require.NoError(t, collector.PushEvent(ctx, event))
	require.NoError(t, collector.PushEvent(ctx, event))
	require.NoError(t, collector.PushEvent(ctx, domain.Event{
		Workflow: "order", Transition: "reject", From: "submitted", To: "rejected",
	}))

	expected := `
		# HELP workflow_transitions_total Total number of committed workflow transitions
		# TYPE workflow_transitions_total counter
		workflow_transitions_total{from="draft",to="submitted",transition="submit",workflow="order"} 2
		workflow_transitions_total{from="submitted",to="rejected",transition="reject",workflow="order"} 1
	`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "workflow_transitions_total"))
}

type failingManager struct{ err error }

func (f *failingManager) PushEvent(ctx context.Context, event domain.Event) error {
	return f.err
}

func TestInstrumentCountsPushErrors(t *testing.T) {
	collector := NewCollector()
	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(collector))

	boom := errors.New("broker down")
	wrapped := collector.Instrument(&failingManager{err: boom})

	err := wrapped.PushEvent(context.Background(), domain.Event{Workflow: "order", Transition: "submit"})
	assert.True(t, errors.Is(err, boom), "wrapped error must propagate")

	expected := `
		# HELP workflow_event_push_errors_total Total number of failed event pushes
		# TYPE workflow_event_push_errors_total counter
		workflow_event_push_errors_total{transition="submit",workflow="order"} 1
	`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "workflow_event_push_errors_total"))
}

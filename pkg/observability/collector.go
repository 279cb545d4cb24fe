package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ratchetworks/ratchet/pkg/domain"
	"github.com/ratchetworks/ratchet/pkg/ports"
)

// Collector is an event manager that exposes committed transitions as
// Prometheus counters. Attach it with ratchet.WithEventManager; it counts a
// transition only after it committed.
type Collector struct {
	transitions *prometheus.CounterVec
	pushErrors  *prometheus.CounterVec
}

// NewCollector creates a collector. Register it on a prometheus.Registerer
// before use.
func NewCollector() *Collector {
	return &Collector{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workflow_transitions_total",
				Help: "Total number of committed workflow transitions",
			},
			[]string{"workflow", "transition", "from", "to"},
		),
		pushErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workflow_event_push_errors_total",
				Help: "Total number of failed event pushes",
			},
			[]string{"workflow", "transition"},
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.transitions.Describe(ch)
	c.pushErrors.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.transitions.Collect(ch)
	c.pushErrors.Collect(ch)
}

// PushEvent implements ports.EventManager.
func (c *Collector) PushEvent(ctx context.Context, event domain.Event) error {
	c.transitions.WithLabelValues(
		event.Workflow,
		event.Transition,
		string(event.From),
		string(event.To),
	).Inc()
	return nil
}

type instrumented struct {
	next      ports.EventManager
	collector *Collector
}

// Instrument wraps another event manager so its push failures show up on the
// error counter. The wrapped manager's error still propagates.
func (c *Collector) Instrument(next ports.EventManager) ports.EventManager {
	return &instrumented{next: next, collector: c}
}

func (i *instrumented) PushEvent(ctx context.Context, event domain.Event) error {
	if err := i.next.PushEvent(ctx, event); err != nil {
		i.collector.pushErrors.WithLabelValues(event.Workflow, event.Transition).Inc()
		return err
	}
	return nil
}

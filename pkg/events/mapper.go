package events

import (
	"context"
	"fmt"

	"github.com/ratchetworks/ratchet/pkg/domain"
)

// Publisher delivers a typed event payload to an external system (message
// broker, webhook, outbox table).
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload map[string]any) error
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, eventType string, payload map[string]any) error

func (f PublisherFunc) Publish(ctx context.Context, eventType string, payload map[string]any) error {
	return f(ctx, eventType, payload)
}

// PayloadBuilder turns a committed transition into the payload published for
// it.
type PayloadBuilder func(event domain.Event) map[string]any

// Mapper is an event manager that publishes a typed event for each supported
// transition. Transitions without a mapping are silently skipped, so a
// workflow can expose only a subset of its transitions to the outside.
type Mapper struct {
	publisher Publisher
	types     map[string]string
	payload   PayloadBuilder
}

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

// WithPayloadBuilder overrides the default payload, which carries the
// workflow name, the transition and both states.
func WithPayloadBuilder(build PayloadBuilder) MapperOption {
	return func(m *Mapper) { m.payload = build }
}

// NewMapper builds a mapper publishing to publisher. types maps transition
// names to the event type published for them.
func NewMapper(publisher Publisher, types map[string]string, opts ...MapperOption) *Mapper {
	m := &Mapper{
		publisher: publisher,
		types:     make(map[string]string, len(types)),
		payload:   defaultPayload,
	}
	for name, eventType := range types {
		m.types[name] = eventType
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SupportedTransitions returns the transition names the mapper publishes
// events for.
func (m *Mapper) SupportedTransitions() []string {
	names := make([]string, 0, len(m.types))
	for name := range m.types {
		names = append(names, name)
	}
	return names
}

// PushEvent publishes the mapped event type for the committed transition.
// Unmapped transitions are a no-op.
func (m *Mapper) PushEvent(ctx context.Context, event domain.Event) error {
	eventType, ok := m.types[event.Transition]
	if !ok {
		return nil
	}
	if err := m.publisher.Publish(ctx, eventType, m.payload(event)); err != nil {
		return fmt.Errorf("publishing %s: %w", eventType, err)
	}
	return nil
}

func defaultPayload(event domain.Event) map[string]any {
	return map[string]any{
		"workflow":    event.Workflow,
		"transition":  event.Transition,
		"from":        string(event.From),
		"to":          string(event.To),
		"occurred_at": event.OccurredAt,
	}
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/ratchetworks/ratchet/pkg/domain"
)

// EventStream implements ports.EventManager on a Redis stream. Each committed
// transition becomes one XADD entry, so consumers can tail workflow activity
// with XREAD.
type EventStream struct {
	client *backend.Client
	stream string
}

// NewEventStream creates an event stream writing to the given stream key.
func NewEventStream(client *backend.Client, stream string) *EventStream {
	return &EventStream{
		client: client,
		stream: stream,
	}
}

// PushEvent appends the event to the stream.
func (s *EventStream) PushEvent(ctx context.Context, event domain.Event) error {
	values := map[string]any{
		"workflow":    event.Workflow,
		"transition":  event.Transition,
		"from":        string(event.From),
		"to":          string(event.To),
		"occurred_at": event.OccurredAt.Format(time.RFC3339Nano),
	}
	if len(event.Params) > 0 {
		params, err := json.Marshal(event.Params)
		if err != nil {
			return fmt.Errorf("encoding event params: %w", err)
		}
		values["params"] = string(params)
	}

	if err := s.client.XAdd(ctx, &backend.XAddArgs{
		Stream: s.stream,
		Values: values,
	}).Err(); err != nil {
		return fmt.Errorf("appending event to stream: %w", err)
	}
	return nil
}

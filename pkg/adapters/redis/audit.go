package redis

import (
	"context"
	"encoding/json"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/ratchetworks/ratchet/pkg/domain"
)

// AuditLog implements ports.AuditLogger on a Redis list. Entries are
// serialized as JSON and appended with RPUSH, so the list reads back in
// commit order.
type AuditLog struct {
	client *backend.Client
	key    string
}

// NewAuditLog creates an audit log writing to the given Redis key.
func NewAuditLog(client *backend.Client, key string) *AuditLog {
	return &AuditLog{
		client: client,
		key:    key,
	}
}

// Log appends the entry to the audit list.
func (a *AuditLog) Log(ctx context.Context, entry domain.AuditEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding audit entry: %w", err)
	}
	if err := a.client.RPush(ctx, a.key, payload).Err(); err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}
	return nil
}

// Entries reads back every logged entry, oldest first.
func (a *AuditLog) Entries(ctx context.Context) ([]domain.AuditEntry, error) {
	raw, err := a.client.LRange(ctx, a.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	entries := make([]domain.AuditEntry, 0, len(raw))
	for _, item := range raw {
		var entry domain.AuditEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("decoding audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

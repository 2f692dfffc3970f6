package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys outlive the calendar day they mark so a run just after midnight still
// sees yesterday's key, then expire.
const guardTTL = 48 * time.Hour

// NotifyGuard records which tools were reminded on which calendar day.
// Key format: notified:<tool_id>:<YYYY-MM-DD>
type NotifyGuard struct {
	client *redis.Client
}

// NewNotifyGuard creates a NotifyGuard wrapping the given Redis client.
func NewNotifyGuard(client *redis.Client) *NotifyGuard {
	return &NotifyGuard{client: client}
}

// AlreadySent reports whether a reminder for this tool went out on the given
// UTC calendar day.
func (g *NotifyGuard) AlreadySent(ctx context.Context, toolID string, day time.Time) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(toolID, day)).Result()
	if err != nil {
		return false, fmt.Errorf("day-guard check: %w", err)
	}
	return n > 0, nil
}

// Mark records that a reminder for this tool went out today.
func (g *NotifyGuard) Mark(ctx context.Context, toolID string, day time.Time) error {
	return g.client.Set(ctx, g.key(toolID, day), "1", guardTTL).Err()
}

func (g *NotifyGuard) key(toolID string, day time.Time) string {
	return fmt.Sprintf("notified:%s:%s", toolID, day.UTC().Format("2006-01-02"))
}

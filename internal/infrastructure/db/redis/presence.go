package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const presenceKey = "presence:connections"

// Tracker records realtime presence in a Redis hash keyed by user id, with a
// per-user open-connection count so multiple tabs of one user stay accurate.
type Tracker struct {
	client *redis.Client
}

// NewTracker creates a Tracker wrapping the given Redis client.
func NewTracker(client *redis.Client) *Tracker {
	return &Tracker{client: client}
}

// Connected increments the user's open-connection count.
func (t *Tracker) Connected(ctx context.Context, userID string) error {
	if err := t.client.HIncrBy(ctx, presenceKey, userID, 1).Err(); err != nil {
		return fmt.Errorf("presence incr: %w", err)
	}
	return nil
}

// Disconnected decrements the count and removes the field when it reaches zero.
func (t *Tracker) Disconnected(ctx context.Context, userID string) error {
	n, err := t.client.HIncrBy(ctx, presenceKey, userID, -1).Result()
	if err != nil {
		return fmt.Errorf("presence decr: %w", err)
	}
	if n <= 0 {
		if err := t.client.HDel(ctx, presenceKey, userID).Err(); err != nil {
			return fmt.Errorf("presence del: %w", err)
		}
	}
	return nil
}

// Online returns the ids of users with at least one open connection.
func (t *Tracker) Online(ctx context.Context) ([]string, error) {
	fields, err := t.client.HKeys(ctx, presenceKey).Result()
	if err != nil {
		return nil, fmt.Errorf("presence list: %w", err)
	}
	return fields, nil
}

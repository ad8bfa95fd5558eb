package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const presenceTTL = 5 * time.Minute

// PresenceTracker marks users online with self-expiring Redis keys.
// Key format: presence:<user_id>
type PresenceTracker struct {
	client *redis.Client
}

// NewPresenceTracker creates a PresenceTracker wrapping the given Redis client.
func NewPresenceTracker(client *redis.Client) *PresenceTracker {
	return &PresenceTracker{client: client}
}

// SetOnline marks the user online. Repeated calls refresh the TTL, so a
// connected client heartbeating stays online and a vanished one expires.
func (p *PresenceTracker) SetOnline(ctx context.Context, userID string) error {
	return p.client.Set(ctx, p.key(userID), "1", presenceTTL).Err()
}

// SetOffline removes the marker immediately.
func (p *PresenceTracker) SetOffline(ctx context.Context, userID string) error {
	return p.client.Del(ctx, p.key(userID)).Err()
}

// IsOnline reports whether the user currently holds a presence marker.
func (p *PresenceTracker) IsOnline(ctx context.Context, userID string) (bool, error) {
	n, err := p.client.Exists(ctx, p.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("presence check: %w", err)
	}
	return n > 0, nil
}

func (p *PresenceTracker) key(userID string) string {
	return fmt.Sprintf("presence:%s", userID)
}

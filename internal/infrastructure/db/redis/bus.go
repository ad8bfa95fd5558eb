package redis

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/xxtryitxx/horizontos/pkg/logger"
)

const busBuffer = 32

// Bus is a Redis pub/sub event bus. Each Subscribe holds its own
// PubSub connection so releasing one view never disturbs another.
type Bus struct {
	client *redis.Client
}

// NewBus creates a Bus wrapping the given Redis client.
func NewBus(client *redis.Client) *Bus {
	return &Bus{client: client}
}

// Publish sends payload to every current subscriber of channel.
func (b *Bus) Publish(ctx context.Context, channel string, payload []byte) error {
	return b.client.Publish(ctx, channel, payload).Err()
}

// Subscribe opens a dedicated subscription on channel. The returned release
// function closes the subscription and, eventually, the delivery channel.
// Calling release more than once is safe.
func (b *Bus) Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error) {
	sub := b.client.Subscribe(ctx, channel)
	// Force the SUBSCRIBE round-trip so a dead broker fails here, not later.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	out := make(chan []byte, busBuffer)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			select {
			case out <- []byte(msg.Payload):
			default:
				log := logger.Get()
				log.Warn().
					Str("channel", channel).
					Msg("event bus subscriber slow, dropping message")
			}
		}
	}()

	var once sync.Once
	release := func() {
		once.Do(func() {
			if err := sub.Close(); err != nil {
				log := logger.Get()
				log.Warn().
					Err(err).
					Str("channel", channel).
					Msg("closing event bus subscription")
			}
		})
	}
	return out, release, nil
}

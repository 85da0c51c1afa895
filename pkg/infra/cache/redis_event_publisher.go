package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/NeuralTrust/TrustChat/pkg/infra/cache/event"
)

// RedisMessage is the pubsub envelope; Type selects the concrete event.
type RedisMessage struct {
	Type  string          `json:"type"`
	Event json.RawMessage `json:"event"`
}

type redisEventPublisher struct {
	cache   Client
	channel Channel
}

func NewRedisEventPublisher(cache Client, channel Channel) EventPublisher {
	return &redisEventPublisher{
		cache:   cache,
		channel: channel,
	}
}

func (p *redisEventPublisher) Publish(ctx context.Context, ev event.Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	data, err := json.Marshal(RedisMessage{Type: ev.Type(), Event: b})
	if err != nil {
		return err
	}
	if err := p.cache.RedisClient().Publish(ctx, string(p.channel), data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s: %w", ev.Type(), err)
	}
	return nil
}

package channel

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisBroker fans out topic payloads through Redis pub/sub so multiple
// service instances share one broadcast.
type RedisBroker struct {
	client *redis.Client
}

// NewRedisBroker creates a broker backed by the given Redis client.
func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

// Publish sends the payload to the Redis channel named after the topic.
func (b *RedisBroker) Publish(ctx context.Context, topic string, payload []byte) error {
	if b == nil || b.client == nil {
		return fmt.Errorf("redis client is not configured")
	}
	if err := b.client.Publish(ctx, topic, payload).Err(); err != nil {
		return fmt.Errorf("publish to redis: %w", err)
	}
	return nil
}

// Subscribe attaches to the Redis channel named after the topic and relays
// payloads until the subscription is closed.
func (b *RedisBroker) Subscribe(ctx context.Context, topic string) (BrokerSubscription, error) {
	if b == nil || b.client == nil {
		return nil, fmt.Errorf("redis client is not configured")
	}

	pubsub := b.client.Subscribe(ctx, topic)
	// Force the subscription to be established before returning so a
	// publish immediately after Subscribe is not missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe to redis: %w", err)
	}

	sub := &redisSubscription{pubsub: pubsub, ch: make(chan []byte, defaultSubscriberBuffer)}
	go sub.relay()
	return sub, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	ch     chan []byte
	once   sync.Once
}

func (s *redisSubscription) relay() {
	for msg := range s.pubsub.Channel() {
		s.ch <- []byte(msg.Payload)
	}
	close(s.ch)
}

func (s *redisSubscription) Messages() <-chan []byte {
	return s.ch
}

func (s *redisSubscription) Close() error {
	var err error
	s.once.Do(func() {
		err = s.pubsub.Close()
	})
	return err
}

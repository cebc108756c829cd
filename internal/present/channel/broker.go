package channel

import "context"

// Broker is the managed pub/sub transport a Registry fans out on. Message
// order within one topic follows the broker's delivery order; no ordering is
// guaranteed across topics.
type Broker interface {
	// Publish sends a payload to every current subscriber of the topic.
	Publish(ctx context.Context, topic string, payload []byte) error
	// Subscribe starts delivery of all subsequently published payloads.
	// Payloads published before the subscription are never replayed.
	Subscribe(ctx context.Context, topic string) (BrokerSubscription, error)
}

// BrokerSubscription is one attachment to a broker topic.
type BrokerSubscription interface {
	// Messages yields published payloads in delivery order. The channel is
	// closed when the subscription is closed.
	Messages() <-chan []byte
	// Close detaches from the topic and releases transport resources.
	// Closing twice is safe.
	Close() error
}

package channel

import (
	"context"
	"sync"
)

const defaultSubscriberBuffer = 64

// Hub is an in-process Broker for single-instance deployments. Publishing
// never blocks: a subscriber whose buffer is full misses the payload, which
// the presenter's recurring full snapshots repair.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[int]chan []byte
	nextID int
	buffer int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[int]chan []byte),
		buffer: defaultSubscriberBuffer,
	}
}

// Publish delivers the payload to every current subscriber of the topic.
func (h *Hub) Publish(_ context.Context, topic string, payload []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.topics[topic] {
		select {
		case ch <- payload:
		default:
			// Slow subscriber; drop rather than block the publisher.
		}
	}
	return nil
}

// Subscribe attaches to a topic.
func (h *Hub) Subscribe(_ context.Context, topic string) (BrokerSubscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subscribers, ok := h.topics[topic]
	if !ok {
		subscribers = make(map[int]chan []byte)
		h.topics[topic] = subscribers
	}

	subID := h.nextID
	h.nextID++
	ch := make(chan []byte, h.buffer)
	subscribers[subID] = ch

	return &hubSubscription{hub: h, topic: topic, subID: subID, ch: ch}, nil
}

func (h *Hub) detach(topic string, subID int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subscribers, ok := h.topics[topic]
	if !ok {
		return
	}
	ch, ok := subscribers[subID]
	if !ok {
		return
	}
	delete(subscribers, subID)
	if len(subscribers) == 0 {
		delete(h.topics, topic)
	}
	close(ch)
}

type hubSubscription struct {
	hub   *Hub
	topic string
	subID int
	ch    chan []byte
	once  sync.Once
}

func (s *hubSubscription) Messages() <-chan []byte {
	return s.ch
}

func (s *hubSubscription) Close() error {
	s.once.Do(func() {
		s.hub.detach(s.topic, s.subID)
	})
	return nil
}

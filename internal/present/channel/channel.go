package channel

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/louisbranch/lectern/internal/errors"
	"github.com/louisbranch/lectern/internal/present/domain"
)

// topicPrefix namespaces broadcast topics on the shared broker.
const topicPrefix = "presentation:"

// Topic derives the broker topic for a session id.
func Topic(sessionID string) string {
	return topicPrefix + sessionID
}

// Registry binds broadcast channels to a broker and tracks the presence
// roster per topic. One Registry is constructed per application instance.
type Registry struct {
	broker  Broker
	nextSeq atomic.Int64

	mu      sync.Mutex
	rosters map[string]map[string]domain.Role
}

// NewRegistry creates a registry fanning out on the given broker.
func NewRegistry(broker Broker) *Registry {
	return &Registry{
		broker:  broker,
		rosters: make(map[string]map[string]domain.Role),
	}
}

// Channel returns a handle bound to the topic derived from the session id.
// Binding is idempotent: handles created with the same id share one topic
// and one presence roster. The only validation is a non-empty id.
func (r *Registry) Channel(sessionID string) (*Channel, error) {
	if err := domain.ValidateSessionID(sessionID); err != nil {
		return nil, err
	}
	return &Channel{registry: r, sessionID: sessionID, topic: Topic(sessionID)}, nil
}

// Channel is one participant's handle on a session's broadcast topic.
type Channel struct {
	registry  *Registry
	sessionID string
	topic     string

	mu      sync.Mutex
	closed  bool
	entryID string
	subs    []*Subscription
}

// SessionID returns the session this handle is bound to.
func (c *Channel) SessionID() string {
	return c.sessionID
}

// Subscribe joins the topic. All subsequently broadcast updates are
// delivered in transport order; updates sent before joining are never
// replayed, so late joiners rely on the presenter's next init snapshot.
func (c *Channel) Subscribe(ctx context.Context) (*Subscription, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, errors.New(errors.CodeSessionClosed, "channel is unsubscribed")
	}
	c.mu.Unlock()

	brokerSub, err := c.registry.broker.Subscribe(ctx, c.topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe to topic %s: %w", c.topic, err)
	}

	sub := &Subscription{
		ch:        make(chan domain.Update, defaultSubscriberBuffer),
		brokerSub: brokerSub,
		done:      make(chan struct{}),
	}
	go sub.decodeLoop()

	c.mu.Lock()
	if c.closed {
		// Lost the race with Unsubscribe; release immediately.
		c.mu.Unlock()
		sub.Cancel()
		return nil, errors.New(errors.CodeSessionClosed, "channel is unsubscribed")
	}
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	return sub, nil
}

// Track registers this handle's presence record with the given role,
// replacing any record tracked earlier through the same handle. Tracking on
// an unsubscribed handle is a silent no-op.
func (c *Channel) Track(role domain.Role) error {
	if !domain.ValidRole(role) {
		return errors.New(errors.CodeChannelInvalidRole, fmt.Sprintf("unknown presence role %q", role))
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if c.entryID == "" {
		c.entryID = fmt.Sprintf("%s#%d", c.topic, c.registry.nextSeq.Add(1))
	}
	entryID := c.entryID
	c.mu.Unlock()

	c.registry.trackPresence(c.topic, entryID, role)
	return nil
}

// Send publishes an update to every current subscriber, fire-and-forget.
// There is no acknowledgment and no delivery guarantee beyond the broker's
// best effort. Sending on an unsubscribed handle is a silent no-op so a
// presenter stopping twice does not error.
func (c *Channel) Send(ctx context.Context, update domain.Update) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil
	}

	payload, err := domain.EncodeUpdate(update)
	if err != nil {
		return err
	}
	return c.registry.broker.Publish(ctx, c.topic, payload)
}

// Unsubscribe detaches every subscription opened through this handle and
// releases its presence record. Calling it again is a no-op.
func (c *Channel) Unsubscribe() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	subs := c.subs
	c.subs = nil
	entryID := c.entryID
	c.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
	if entryID != "" {
		c.registry.untrackPresence(c.topic, entryID)
	}
}

// Subscription is one attachment to a channel. It is the cancellation token
// for the typed update stream.
type Subscription struct {
	ch        chan domain.Update
	brokerSub BrokerSubscription
	done      chan struct{}
	once      sync.Once
}

// Updates yields decoded updates in delivery order. The channel is closed
// once the subscription is canceled.
func (s *Subscription) Updates() <-chan domain.Update {
	return s.ch
}

// Cancel detaches from the topic. Canceling twice is safe.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		close(s.done)
		_ = s.brokerSub.Close()
	})
}

func (s *Subscription) decodeLoop() {
	defer close(s.ch)
	for payload := range s.brokerSub.Messages() {
		update, err := domain.DecodeUpdate(payload)
		if err != nil {
			log.Printf("channel: dropping malformed update: %v", err)
			continue
		}
		// A canceled subscriber may never drain its buffer; the done
		// signal keeps this loop from parking on the send forever.
		select {
		case s.ch <- update:
		case <-s.done:
			return
		}
	}
}

// Package live bridges HTTP clients onto presentation channel subscriptions
// over WebSocket. Audience connections are read-only mirrors of the topic;
// the presenter connection folds incoming updates into the session's
// authoritative state, which is re-broadcast as full snapshots.
package live

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/louisbranch/lectern/internal/present/channel"
	"github.com/louisbranch/lectern/internal/present/domain"
	"github.com/louisbranch/lectern/internal/present/service"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// sendBuffer bounds per-connection outgoing queue. A consumer that
	// falls this far behind is dropped; the presenter's next init snapshot
	// re-converges any client that reconnects.
	sendBuffer = 64

	maxMessageSize = 64 * 1024
)

// Service serves the WebSocket endpoints for live sessions.
type Service struct {
	registry *channel.Registry
	coalesce time.Duration
	upgrader websocket.Upgrader
}

// NewService creates the live transport over the channel registry. Presenter
// broadcasts are coalesced to at most one per interval; zero selects the
// default.
func NewService(registry *channel.Registry, coalesce time.Duration) *Service {
	return &Service{
		registry: registry,
		coalesce: coalesce,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Session ids are unguessable and the page is served
			// cross-origin in embedded use, so origin is not checked.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleAudience upgrades an audience connection for the session in the
// request path and mirrors every broadcast update onto it until either side
// disconnects.
func (s *Service) HandleAudience(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, domain.RoleAudience)
}

// HandlePresenter upgrades the presenter connection. Incoming messages are
// decoded as updates and folded into the session's authoritative state,
// whose full snapshot is re-broadcast per mutation; the connection also
// receives the broadcast stream so a reconnecting presenter observes its own
// last snapshot.
func (s *Service) HandlePresenter(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, domain.RolePresenter)
}

func (s *Service) serve(w http.ResponseWriter, r *http.Request, role domain.Role) {
	sessionID := r.PathValue("sessionId")
	ch, err := s.registry.Channel(sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sub, err := ch.Subscribe(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := ch.Track(role); err != nil {
		ch.Unsubscribe()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		ch.Unsubscribe()
		log.Printf("live: upgrade %s: %v", sessionID, err)
		return
	}

	client := &client{
		conn:    conn,
		channel: ch,
		sub:     sub,
		role:    role,
		send:    make(chan []byte, sendBuffer),
	}
	if role == domain.RolePresenter {
		client.presenter = service.Attach(s.registry, ch, service.Config{CoalesceInterval: s.coalesce})
	}
	go client.writePump()
	go client.relay()
	client.readPump(r.Context())
}

// client is one WebSocket connection attached to a session topic. Presenter
// connections additionally own the session's coalescing presenter.
type client struct {
	conn      *websocket.Conn
	channel   *channel.Channel
	sub       *channel.Subscription
	role      domain.Role
	send      chan []byte
	presenter *service.Presenter
}

// relay copies decoded topic updates onto the connection's send queue,
// re-encoding them for the wire. A full queue drops the message rather than
// blocking the topic fan-out.
func (c *client) relay() {
	for update := range c.sub.Updates() {
		payload, err := domain.EncodeUpdate(update)
		if err != nil {
			log.Printf("live: encode update for %s: %v", c.channel.SessionID(), err)
			continue
		}
		select {
		case c.send <- payload:
		default:
		}
	}
	close(c.send)
}

// readPump consumes the connection until it closes. Presenter messages are
// applied to the session state and re-broadcast; audience messages are
// discarded.
func (c *client) readPump(ctx context.Context) {
	defer func() {
		if c.presenter != nil {
			c.presenter.Stop()
		} else {
			c.channel.Unsubscribe()
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("live: read %s: %v", c.channel.SessionID(), err)
			}
			return
		}
		if c.role != domain.RolePresenter {
			continue
		}

		update, err := domain.DecodeUpdate(payload)
		if err != nil {
			log.Printf("live: dropping malformed presenter message on %s: %v", c.channel.SessionID(), err)
			continue
		}
		c.presenter.Apply(ctx, update)
	}
}

// writePump drains the send queue onto the connection and keeps it alive
// with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Package service implements the presenter side of a live broadcast.
//
// The presenter holds the authoritative presentation state. Every
// state-affecting mutation re-broadcasts the full init snapshot rather than
// a delta: with no replay and no sequence numbers on the transport, the
// recurring snapshot is the sole mitigation for late joiners and missed
// messages. Rapid mutations are coalesced to at most one broadcast per
// configured interval so scrub-style UI interactions do not flood the topic.
package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/louisbranch/lectern/internal/present/channel"
	"github.com/louisbranch/lectern/internal/present/domain"
)

const defaultCoalesceInterval = 50 * time.Millisecond

// Config tunes a presenter. Zero values select defaults.
type Config struct {
	// CoalesceInterval caps broadcasts to one per interval.
	CoalesceInterval time.Duration
	// Clock overrides the time source, for tests.
	Clock func() time.Time
	// IDGenerator overrides session id generation, for tests.
	IDGenerator func() (string, error)
}

// Presenter owns the authoritative state of one live session.
type Presenter struct {
	registry *channel.Registry
	channel  *channel.Channel
	session  domain.Session
	clock    func() time.Time
	coalesce time.Duration

	mu             sync.Mutex
	state          domain.PresentationState
	stopped        bool
	lastSend       time.Time
	flushScheduled bool
	timer          *time.Timer
}

// Start opens a new session, tracks the presenter's presence, and broadcasts
// the initial snapshot.
func Start(ctx context.Context, registry *channel.Registry, initial domain.PresentationState, cfg Config) (*Presenter, error) {
	if cfg.CoalesceInterval <= 0 {
		cfg.CoalesceInterval = defaultCoalesceInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	session, err := domain.StartSession(cfg.Clock, cfg.IDGenerator)
	if err != nil {
		return nil, err
	}
	ch, err := registry.Channel(session.ID)
	if err != nil {
		return nil, err
	}
	if err := ch.Track(domain.RolePresenter); err != nil {
		return nil, err
	}

	p := &Presenter{
		registry: registry,
		channel:  ch,
		session:  session,
		clock:    cfg.Clock,
		coalesce: cfg.CoalesceInterval,
		state:    initial.Clone(),
		lastSend: cfg.Clock(),
	}
	if err := ch.Send(ctx, domain.InitUpdate(p.state)); err != nil {
		ch.Unsubscribe()
		return nil, err
	}
	return p, nil
}

// Attach wraps an already-joined session channel in a presenter, so updates
// decoded off a transport flow through the same snapshot and coalescing path
// as direct mutations. The caller has tracked presence on the channel
// itself; Stop releases it. No snapshot has gone out yet, so the first
// update broadcasts immediately.
func Attach(registry *channel.Registry, ch *channel.Channel, cfg Config) *Presenter {
	if cfg.CoalesceInterval <= 0 {
		cfg.CoalesceInterval = defaultCoalesceInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Presenter{
		registry: registry,
		channel:  ch,
		session:  domain.Session{ID: ch.SessionID()},
		clock:    cfg.Clock,
		coalesce: cfg.CoalesceInterval,
		lastSend: cfg.Clock().Add(-cfg.CoalesceInterval),
	}
}

// Apply folds a decoded wire update into the authoritative state and
// re-broadcasts the resulting full snapshot, subject to coalescing. Invalid
// updates are dropped.
func (p *Presenter) Apply(ctx context.Context, update domain.Update) {
	if err := update.Validate(); err != nil {
		log.Printf("present: dropping invalid update: %v", err)
		return
	}
	p.mutate(ctx, func(state *domain.PresentationState) {
		*state = domain.Apply(*state, update)
	})
}

// Session returns the broadcast session.
func (p *Presenter) Session() domain.Session {
	return p.session
}

// State returns a copy of the authoritative state.
func (p *Presenter) State() domain.PresentationState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Clone()
}

// AudienceSize reports how many non-presenter participants are tracked.
func (p *Presenter) AudienceSize() int {
	return p.registry.AudienceSize(p.session.ID)
}

// SetSpotlight replaces the spotlighted excerpt.
func (p *Presenter) SetSpotlight(ctx context.Context, spotlight domain.Spotlight) {
	p.mutate(ctx, func(state *domain.PresentationState) {
		state.Spotlight = &spotlight
	})
}

// SetEmphases replaces the emphasis ranges.
func (p *Presenter) SetEmphases(ctx context.Context, emphases []domain.EmphasisRange) {
	ranges := make([]domain.EmphasisRange, len(emphases))
	copy(ranges, emphases)
	p.mutate(ctx, func(state *domain.PresentationState) {
		state.Emphases = ranges
	})
}

// SetPage moves to another page.
func (p *Presenter) SetPage(ctx context.Context, page domain.Pagination) {
	p.mutate(ctx, func(state *domain.PresentationState) {
		state.Page = page
	})
}

// SetSettings replaces the display settings.
func (p *Presenter) SetSettings(ctx context.Context, settings domain.DisplaySettings) {
	p.mutate(ctx, func(state *domain.PresentationState) {
		state.Settings = settings
	})
}

// Clear drops the spotlight and emphasis ranges.
func (p *Presenter) Clear(ctx context.Context) {
	p.mutate(ctx, func(state *domain.PresentationState) {
		state.Spotlight = nil
		state.Emphases = nil
	})
}

// Stop releases presence and transport resources. The session's topic is
// abandoned; stopping twice is a no-op, and mutations after Stop are
// silently ignored.
func (p *Presenter) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	if p.timer != nil {
		p.timer.Stop()
	}
	p.mu.Unlock()

	p.channel.Unsubscribe()
}

// mutate applies a state change and broadcasts the resulting full snapshot,
// coalescing bursts into one broadcast per interval. The snapshot taken at
// flush time includes every mutation made during the window.
func (p *Presenter) mutate(ctx context.Context, apply func(*domain.PresentationState)) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	apply(&p.state)

	now := p.clock()
	if now.Sub(p.lastSend) >= p.coalesce {
		p.lastSend = now
		snapshot := p.state.Clone()
		p.mu.Unlock()
		if err := p.channel.Send(ctx, domain.InitUpdate(snapshot)); err != nil {
			log.Printf("present: broadcast failed: %v", err)
		}
		return
	}

	if !p.flushScheduled {
		p.flushScheduled = true
		delay := p.coalesce - now.Sub(p.lastSend)
		p.timer = time.AfterFunc(delay, p.flush)
	}
	p.mu.Unlock()
}

func (p *Presenter) flush() {
	p.mu.Lock()
	p.flushScheduled = false
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.lastSend = p.clock()
	snapshot := p.state.Clone()
	p.mu.Unlock()

	if err := p.channel.Send(context.Background(), domain.InitUpdate(snapshot)); err != nil {
		log.Printf("present: coalesced broadcast failed: %v", err)
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/louisbranch/lectern/internal/present/channel"
	"github.com/louisbranch/lectern/internal/present/domain"
)

func startPresenter(t *testing.T, registry *channel.Registry, cfg Config) *Presenter {
	t.Helper()
	initial := domain.PresentationState{
		DocumentID: "doc-1",
		Title:      "Sunday Notes",
		Page:       domain.Pagination{CurrentPage: 1, TotalPages: 4},
	}
	p, err := Start(context.Background(), registry, initial, cfg)
	if err != nil {
		t.Fatalf("start presenter: %v", err)
	}
	t.Cleanup(p.Stop)
	return p
}

func subscribeAudience(t *testing.T, registry *channel.Registry, sessionID string) *channel.Subscription {
	t.Helper()
	audience, err := registry.Channel(sessionID)
	if err != nil {
		t.Fatalf("audience channel: %v", err)
	}
	sub, err := audience.Subscribe(context.Background())
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	t.Cleanup(audience.Unsubscribe)
	return sub
}

func nextUpdate(t *testing.T, sub *channel.Subscription) domain.Update {
	t.Helper()
	select {
	case update, ok := <-sub.Updates():
		if !ok {
			t.Fatal("subscription closed")
		}
		return update
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
		return domain.Update{}
	}
}

func TestStartBroadcastsInitialSnapshot(t *testing.T) {
	registry := channel.NewRegistry(channel.NewHub())

	// Subscribe on a pre-agreed session id via the id generator so the
	// audience is attached before the initial snapshot goes out.
	cfg := Config{IDGenerator: func() (string, error) { return "fixed-session", nil }}
	audienceSub := subscribeAudience(t, registry, "fixed-session")
	p := startPresenter(t, registry, cfg)

	update := nextUpdate(t, audienceSub)
	if update.Kind != domain.KindInit {
		t.Fatalf("kind = %q, want %q", update.Kind, domain.KindInit)
	}
	if update.Init.DocumentID != "doc-1" {
		t.Errorf("document = %q, want %q", update.Init.DocumentID, "doc-1")
	}
	if p.Session().ID != "fixed-session" {
		t.Errorf("session id = %q, want %q", p.Session().ID, "fixed-session")
	}
}

func TestEveryMutationRebroadcastsFullSnapshot(t *testing.T) {
	registry := channel.NewRegistry(channel.NewHub())
	cfg := Config{
		IDGenerator:      func() (string, error) { return "fixed-session", nil },
		CoalesceInterval: time.Nanosecond,
	}
	audienceSub := subscribeAudience(t, registry, "fixed-session")
	p := startPresenter(t, registry, cfg)
	nextUpdate(t, audienceSub) // initial snapshot

	ctx := context.Background()
	p.SetSpotlight(ctx, domain.Spotlight{Start: 3, End: 20, Text: "excerpt"})
	update := nextUpdate(t, audienceSub)
	if update.Kind != domain.KindInit {
		t.Fatalf("kind = %q, want %q", update.Kind, domain.KindInit)
	}
	if update.Init.Spotlight == nil || update.Init.Spotlight.Text != "excerpt" {
		t.Errorf("snapshot spotlight = %+v, want excerpt", update.Init.Spotlight)
	}

	p.SetPage(ctx, domain.Pagination{CurrentPage: 3, TotalPages: 4})
	update = nextUpdate(t, audienceSub)
	if update.Init.Page.CurrentPage != 3 {
		t.Errorf("snapshot page = %d, want 3", update.Init.Page.CurrentPage)
	}
	if update.Init.Spotlight == nil {
		t.Error("snapshot should retain the earlier spotlight")
	}
}

func TestRapidMutationsCoalesceIntoOneBroadcast(t *testing.T) {
	registry := channel.NewRegistry(channel.NewHub())
	cfg := Config{
		IDGenerator:      func() (string, error) { return "fixed-session", nil },
		CoalesceInterval: 100 * time.Millisecond,
	}
	audienceSub := subscribeAudience(t, registry, "fixed-session")
	p := startPresenter(t, registry, cfg)
	nextUpdate(t, audienceSub) // initial snapshot

	ctx := context.Background()
	for page := 2; page <= 4; page++ {
		p.SetPage(ctx, domain.Pagination{CurrentPage: page, TotalPages: 4})
	}

	update := nextUpdate(t, audienceSub)
	if update.Init.Page.CurrentPage != 4 {
		t.Errorf("coalesced snapshot page = %d, want 4", update.Init.Page.CurrentPage)
	}

	select {
	case extra := <-audienceSub.Updates():
		t.Fatalf("unexpected extra broadcast %+v", extra)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestClearDropsSpotlight(t *testing.T) {
	registry := channel.NewRegistry(channel.NewHub())
	p := startPresenter(t, registry, Config{CoalesceInterval: time.Nanosecond})

	ctx := context.Background()
	p.SetSpotlight(ctx, domain.Spotlight{Start: 0, End: 4, Text: "word"})
	p.Clear(ctx)

	state := p.State()
	if state.Spotlight != nil {
		t.Error("spotlight should be cleared")
	}
	if state.Emphases != nil {
		t.Error("emphases should be cleared")
	}
}

func TestStopReleasesPresenceAndIgnoresLaterMutations(t *testing.T) {
	registry := channel.NewRegistry(channel.NewHub())
	p := startPresenter(t, registry, Config{CoalesceInterval: time.Nanosecond})

	if got := len(registry.Roster(p.Session().ID)); got != 1 {
		t.Fatalf("roster size = %d, want 1", got)
	}

	p.Stop()
	p.Stop() // double stop from a UI race must not panic

	if got := len(registry.Roster(p.Session().ID)); got != 0 {
		t.Errorf("roster size after stop = %d, want 0", got)
	}

	before := p.State()
	p.SetPage(context.Background(), domain.Pagination{CurrentPage: 9, TotalPages: 9})
	after := p.State()
	if after.Page != before.Page {
		t.Errorf("page mutated after stop: %+v", after.Page)
	}
}

func TestAttachAppliesWireUpdatesAsSnapshots(t *testing.T) {
	registry := channel.NewRegistry(channel.NewHub())
	audienceSub := subscribeAudience(t, registry, "sess-1")

	ch, err := registry.Channel("sess-1")
	if err != nil {
		t.Fatalf("presenter channel: %v", err)
	}
	if err := ch.Track(domain.RolePresenter); err != nil {
		t.Fatalf("track presenter: %v", err)
	}
	p := Attach(registry, ch, Config{CoalesceInterval: time.Nanosecond})
	t.Cleanup(p.Stop)

	ctx := context.Background()
	initial := domain.PresentationState{
		DocumentID: "doc-9",
		Page:       domain.Pagination{CurrentPage: 1, TotalPages: 2},
	}
	p.Apply(ctx, domain.InitUpdate(initial))

	update := nextUpdate(t, audienceSub)
	if update.Kind != domain.KindInit || update.Init.DocumentID != "doc-9" {
		t.Fatalf("first delivery = %+v, want doc-9 snapshot", update)
	}

	spot := domain.Spotlight{Start: 1, End: 5, Text: "grace"}
	p.Apply(ctx, domain.Update{Kind: domain.KindSpotlight, Spotlight: &spot})

	update = nextUpdate(t, audienceSub)
	if update.Kind != domain.KindInit {
		t.Fatalf("kind = %q, want %q", update.Kind, domain.KindInit)
	}
	if update.Init.Spotlight == nil || update.Init.Spotlight.Text != "grace" {
		t.Errorf("snapshot spotlight = %+v, want grace", update.Init.Spotlight)
	}
	if update.Init.DocumentID != "doc-9" {
		t.Error("snapshot should retain document identity")
	}
	if p.Session().ID != "sess-1" {
		t.Errorf("session id = %q, want %q", p.Session().ID, "sess-1")
	}
}

func TestApplyDropsInvalidUpdate(t *testing.T) {
	registry := channel.NewRegistry(channel.NewHub())
	ch, err := registry.Channel("sess-1")
	if err != nil {
		t.Fatalf("presenter channel: %v", err)
	}
	p := Attach(registry, ch, Config{CoalesceInterval: time.Nanosecond})
	t.Cleanup(p.Stop)

	before := p.State()
	p.Apply(context.Background(), domain.Update{Kind: domain.KindSpotlight})
	after := p.State()
	if after.Spotlight != nil {
		t.Errorf("spotlight set by invalid update: %+v", after.Spotlight)
	}
	if after.Page != before.Page || after.DocumentID != before.DocumentID {
		t.Errorf("state mutated by invalid update: %+v", after)
	}
}

func TestAudienceSize(t *testing.T) {
	registry := channel.NewRegistry(channel.NewHub())
	p := startPresenter(t, registry, Config{})

	for i := 0; i < 2; i++ {
		viewer, err := registry.Channel(p.Session().ID)
		if err != nil {
			t.Fatalf("viewer channel: %v", err)
		}
		if err := viewer.Track(domain.RoleAudience); err != nil {
			t.Fatalf("track viewer: %v", err)
		}
		t.Cleanup(viewer.Unsubscribe)
	}

	if got := p.AudienceSize(); got != 2 {
		t.Errorf("audience size = %d, want 2", got)
	}
}

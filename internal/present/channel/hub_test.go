package channel

import (
	"context"
	"testing"
	"time"
)

func TestHubDeliversInPublishOrder(t *testing.T) {
	hub := NewHub()
	ctx := context.Background()

	sub, err := hub.Subscribe(ctx, "t")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer func() {
		_ = sub.Close()
	}()

	payloads := []string{"a", "b", "c"}
	for _, p := range payloads {
		if err := hub.Publish(ctx, "t", []byte(p)); err != nil {
			t.Fatalf("publish %q: %v", p, err)
		}
	}

	for i, want := range payloads {
		select {
		case got := <-sub.Messages():
			if string(got) != want {
				t.Errorf("message %d = %q, want %q", i, got, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for message %d", i)
		}
	}
}

func TestHubNoReplayForLateSubscriber(t *testing.T) {
	hub := NewHub()
	ctx := context.Background()

	if err := hub.Publish(ctx, "t", []byte("early")); err != nil {
		t.Fatalf("publish: %v", err)
	}

	sub, err := hub.Subscribe(ctx, "t")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer func() {
		_ = sub.Close()
	}()

	select {
	case got := <-sub.Messages():
		t.Fatalf("unexpected replayed message %q", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubCloseStopsDeliveryAndClosesChannel(t *testing.T) {
	hub := NewHub()
	ctx := context.Background()

	sub, err := hub.Subscribe(ctx, "t")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := sub.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := sub.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	if err := hub.Publish(ctx, "t", []byte("late")); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case got, ok := <-sub.Messages():
		if ok {
			t.Fatalf("received %q after close", got)
		}
	case <-time.After(time.Second):
		t.Fatal("messages channel never closed")
	}
}

func TestHubSlowSubscriberDoesNotBlockPublisher(t *testing.T) {
	hub := NewHub()
	hub.buffer = 1
	ctx := context.Background()

	sub, err := hub.Subscribe(ctx, "t")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer func() {
		_ = sub.Close()
	}()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			_ = hub.Publish(ctx, "t", []byte("x"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on slow subscriber")
	}
}

package domain

import (
	"testing"
	"time"
)

func TestStartSessionUsesInjectedDependencies(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	session, err := StartSession(
		func() time.Time { return fixed },
		func() (string, error) { return "1234567890-abcdefg", nil },
	)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if session.ID != "1234567890-abcdefg" {
		t.Errorf("id = %q, want %q", session.ID, "1234567890-abcdefg")
	}
	if !session.StartedAt.Equal(fixed) {
		t.Errorf("started at = %s, want %s", session.StartedAt, fixed)
	}
}

func TestStartSessionDefaults(t *testing.T) {
	session, err := StartSession(nil, nil)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if session.ID == "" {
		t.Error("expected generated session id")
	}
	if session.StartedAt.IsZero() {
		t.Error("expected started timestamp")
	}
}

func TestValidateSessionID(t *testing.T) {
	if err := ValidateSessionID("  "); err == nil {
		t.Error("expected error for blank session id")
	}
	if err := ValidateSessionID("1234-abc"); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestURLPaths(t *testing.T) {
	if got := AudiencePath("s1"); got != "/present/s1" {
		t.Errorf("audience path = %q, want %q", got, "/present/s1")
	}
	if got := PresenterPath("s1"); got != "/presenter/s1" {
		t.Errorf("presenter path = %q, want %q", got, "/presenter/s1")
	}
	if got := NotesLivePath("s1"); got != "/notes/live/s1" {
		t.Errorf("notes live path = %q, want %q", got, "/notes/live/s1")
	}
}

func TestValidRole(t *testing.T) {
	if !ValidRole(RolePresenter) || !ValidRole(RoleAudience) {
		t.Error("expected presenter and audience to be valid roles")
	}
	if ValidRole(Role("moderator")) {
		t.Error("unexpected valid role")
	}
}

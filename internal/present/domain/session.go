package domain

import (
	"strings"
	"time"

	"github.com/louisbranch/lectern/internal/errors"
	"github.com/louisbranch/lectern/internal/id"
)

// Role identifies a presence record on a broadcast session.
type Role string

const (
	// RolePresenter is the single producer of presentation state.
	RolePresenter Role = "presenter"
	// RoleAudience is a read-only consumer of broadcast state.
	RoleAudience Role = "audience"
)

// ValidRole reports whether the role is a known presence role.
func ValidRole(role Role) bool {
	return role == RolePresenter || role == RoleAudience
}

// Session names one live broadcast. It has no persisted identity: it exists
// only while the presenter's channel subscription is open.
type Session struct {
	ID        string
	StartedAt time.Time
}

// StartSession creates a session with a generated id. The id is self-chosen
// by the presenter and never authorized server-side; the URL is the only
// access control.
func StartSession(now func() time.Time, idGenerator func() (string, error)) (Session, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewSessionID
	}

	sessionID, err := idGenerator()
	if err != nil {
		return Session{}, err
	}
	return Session{ID: sessionID, StartedAt: now().UTC()}, nil
}

// ValidateSessionID checks the only constraint on session ids: a non-empty
// string.
func ValidateSessionID(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return errors.New(errors.CodeSessionEmptyID, "session id is required")
	}
	return nil
}

// AudiencePath returns the shareable audience URL path for a session.
func AudiencePath(sessionID string) string {
	return "/present/" + sessionID
}

// PresenterPath returns the privileged presenter URL path for a session. The
// privilege is by obscurity only; the presenter role is self-declared via
// presence tracking.
func PresenterPath(sessionID string) string {
	return "/presenter/" + sessionID
}

// NotesLivePath returns the audience URL path for the notes flow.
func NotesLivePath(sessionID string) string {
	return "/notes/live/" + sessionID
}

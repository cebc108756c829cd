package app

import (
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/louisbranch/lectern/internal/present/domain"
)

// pageTemplate is the minimal shell each presentation route serves. The
// embedding front end reads the data attributes and opens the WebSocket.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body data-session-id="{{.SessionID}}" data-role="{{.Role}}" data-ws-path="{{.WSPath}}">
<main id="lectern-root"></main>
</body>
</html>
`))

type pageParams struct {
	Title     string
	SessionID string
	Role      domain.Role
	WSPath    string
}

func renderPage(w http.ResponseWriter, params pageParams) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, params); err != nil {
		log.Printf("app: render page: %v", err)
	}
}

func (h *handler) handleAudiencePage(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if err := domain.ValidateSessionID(sessionID); err != nil {
		writeError(w, err)
		return
	}
	renderPage(w, pageParams{
		Title:     "Live Presentation",
		SessionID: sessionID,
		Role:      domain.RoleAudience,
		WSPath:    "/ws" + domain.AudiencePath(sessionID),
	})
}

func (h *handler) handlePresenterPage(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if err := domain.ValidateSessionID(sessionID); err != nil {
		writeError(w, err)
		return
	}
	renderPage(w, pageParams{
		Title:     "Presenter Console",
		SessionID: sessionID,
		Role:      domain.RolePresenter,
		WSPath:    "/ws" + domain.PresenterPath(sessionID),
	})
}

func (h *handler) handleNotesLivePage(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if err := domain.ValidateSessionID(sessionID); err != nil {
		writeError(w, err)
		return
	}
	renderPage(w, pageParams{
		Title:     "Live Notes",
		SessionID: sessionID,
		Role:      domain.RoleAudience,
		WSPath:    "/ws" + domain.AudiencePath(sessionID),
	})
}

// handleCreateSession mints a session id and returns the derived URLs. The
// id is never stored: the topic exists once anyone attaches to it.
func (h *handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := domain.StartSession(h.now, h.idGenerator)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"sessionId":     session.ID,
		"audiencePath":  domain.AudiencePath(session.ID),
		"presenterPath": domain.PresenterPath(session.ID),
		"notesLivePath": domain.NotesLivePath(session.ID),
		"startedAt":     session.StartedAt.Format(time.RFC3339),
	})
}

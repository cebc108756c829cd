// Package app hosts the HTTP surface: presentation page routes, the live
// WebSocket endpoints, the content CRUD API, settings, and the passage
// proxy.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/louisbranch/lectern/internal/auth"
	lecterrors "github.com/louisbranch/lectern/internal/errors"
	"github.com/louisbranch/lectern/internal/passage"
	"github.com/louisbranch/lectern/internal/services/live"
	"github.com/louisbranch/lectern/internal/settings"
	"github.com/louisbranch/lectern/internal/storage"
)

const defaultShutdownTimeout = 10 * time.Second

// Config defines the inputs for the app server.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Dependencies carries the wired services the handlers dispatch to.
type Dependencies struct {
	Verifier     *auth.Verifier
	Notes        storage.NoteStore
	Highlights   storage.HighlightStore
	BibleNotes   storage.BibleNoteStore
	Commentaries storage.CommentaryStore
	Settings     *settings.Service
	Passage      *passage.Handler
	Live         *live.Service
}

// Server hosts the HTTP server.
type Server struct {
	httpAddr        string
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

type handler struct {
	deps        Dependencies
	now         func() time.Time
	idGenerator func() (string, error)
}

// NewHandler assembles the route table. It is the test-oriented entrypoint;
// NewServer wraps it with tracing and server timeouts.
func NewHandler(deps Dependencies) http.Handler {
	h := &handler{deps: deps, now: time.Now}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /present/{sessionId}", h.handleAudiencePage)
	mux.HandleFunc("GET /presenter/{sessionId}", h.handlePresenterPage)
	mux.HandleFunc("GET /notes/live/{sessionId}", h.handleNotesLivePage)
	mux.HandleFunc("POST /api/sessions", h.handleCreateSession)

	if deps.Live != nil {
		mux.HandleFunc("GET /ws/present/{sessionId}", deps.Live.HandleAudience)
		mux.HandleFunc("GET /ws/presenter/{sessionId}", deps.Live.HandlePresenter)
	}

	mux.HandleFunc("GET /api/notes", h.handleListNotes)
	mux.HandleFunc("POST /api/notes", h.handleCreateNote)
	mux.HandleFunc("PATCH /api/notes/{id}", h.handlePatchNote)
	mux.HandleFunc("DELETE /api/notes/{id}", h.handleDeleteNote)

	mux.HandleFunc("GET /api/bible/highlights", h.handleListHighlights)
	mux.HandleFunc("POST /api/bible/highlights", h.handleCreateHighlight)
	mux.HandleFunc("PATCH /api/bible/highlights/{id}", h.handlePatchHighlight)
	mux.HandleFunc("DELETE /api/bible/highlights/{id}", h.handleDeleteHighlight)

	mux.HandleFunc("GET /api/bible/notes", h.handleListBibleNotes)
	mux.HandleFunc("POST /api/bible/notes", h.handleCreateBibleNote)
	mux.HandleFunc("PATCH /api/bible/notes/{id}", h.handlePatchBibleNote)
	mux.HandleFunc("DELETE /api/bible/notes/{id}", h.handleDeleteBibleNote)

	mux.HandleFunc("GET /api/commentaries", h.handleListCommentaries)
	mux.HandleFunc("POST /api/commentaries", h.handleCreateCommentary)
	mux.HandleFunc("PATCH /api/commentaries/{id}", h.handlePatchCommentary)
	mux.HandleFunc("DELETE /api/commentaries/{id}", h.handleDeleteCommentary)

	mux.HandleFunc("GET /api/settings", h.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", h.handlePutSettings)

	if deps.Passage != nil {
		mux.Handle("/api/passage", deps.Passage)
	}

	mux.HandleFunc("/up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return mux
}

// NewServer builds a configured app server.
func NewServer(config Config, deps Dependencies) (*Server, error) {
	httpAddr := strings.TrimSpace(config.Addr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           otelhttp.NewHandler(NewHandler(deps), "app"),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return &Server{
		httpAddr:        httpAddr,
		httpServer:      httpServer,
		shutdownTimeout: shutdownTimeout,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests are
// drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("app server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("app listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// principal resolves the request's authenticated user, anonymous when no
// valid token is present.
func (h *handler) principal(r *http.Request) auth.Principal {
	if h.deps.Verifier == nil {
		return auth.Principal{}
	}
	return h.deps.Verifier.FromRequest(r)
}

// writeJSON writes JSON responses with a consistent content type.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(payload)
}

// writeError maps a domain error to its HTTP status and a JSON body.
func writeError(w http.ResponseWriter, err error) {
	status := lecterrors.HTTPStatus(err)
	if errors.Is(err, storage.ErrNotFound) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// errUnauthenticated is returned by write endpoints hit without a token.
// Reads degrade to empty collections instead, matching the anonymous
// experience of the embedding UI.
var errUnauthenticated = lecterrors.New(lecterrors.CodeUnauthenticated, "authentication required")

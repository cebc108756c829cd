package app

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/louisbranch/lectern/internal/content/domain"
	lecterrors "github.com/louisbranch/lectern/internal/errors"
)

// chapterQuery reads the book/chapter scope for the Bible-scoped
// collections. A missing scope is reported under the caller's code so
// highlight and note clients each see their own.
func chapterQuery(r *http.Request, code lecterrors.Code) (string, int, error) {
	book := strings.TrimSpace(r.URL.Query().Get("book"))
	chapter, err := strconv.Atoi(r.URL.Query().Get("chapter"))
	if book == "" || err != nil || chapter <= 0 {
		return "", 0, lecterrors.New(code, "book and chapter query parameters are required")
	}
	return book, chapter, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return false
	}
	return true
}

func (h *handler) handleListNotes(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeJSON(w, http.StatusOK, []domain.Note{})
		return
	}
	notes, err := h.deps.Notes.ListNotes(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *handler) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeError(w, errUnauthenticated)
		return
	}

	var input domain.CreateNoteInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.OwnerID = principal.UserID

	note, err := domain.CreateNote(input, h.now, h.idGenerator)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.deps.Notes.PutNote(r.Context(), note); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *handler) handlePatchNote(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeError(w, errUnauthenticated)
		return
	}

	var patch domain.NotePatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if err := h.deps.Notes.PatchNote(r.Context(), principal.UserID, r.PathValue("id"), patch, h.now().UTC()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeError(w, errUnauthenticated)
		return
	}
	if err := h.deps.Notes.DeleteNote(r.Context(), principal.UserID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleListHighlights(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeJSON(w, http.StatusOK, []domain.BibleHighlight{})
		return
	}
	book, chapter, err := chapterQuery(r, lecterrors.CodeHighlightEmptyReference)
	if err != nil {
		writeError(w, err)
		return
	}
	highlights, err := h.deps.Highlights.ListHighlights(r.Context(), principal.UserID, book, chapter)
	if err != nil {
		writeError(w, err)
		return
	}
	if highlights == nil {
		highlights = []domain.BibleHighlight{}
	}
	writeJSON(w, http.StatusOK, highlights)
}

func (h *handler) handleCreateHighlight(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeError(w, errUnauthenticated)
		return
	}

	var input domain.CreateHighlightInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.OwnerID = principal.UserID

	highlight, err := domain.CreateHighlight(input, h.now, h.idGenerator)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.deps.Highlights.PutHighlight(r.Context(), highlight); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, highlight)
}

func (h *handler) handlePatchHighlight(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeError(w, errUnauthenticated)
		return
	}

	var patch domain.HighlightPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if err := h.deps.Highlights.PatchHighlight(r.Context(), principal.UserID, r.PathValue("id"), patch, h.now().UTC()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleDeleteHighlight(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeError(w, errUnauthenticated)
		return
	}
	if err := h.deps.Highlights.DeleteHighlight(r.Context(), principal.UserID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleListBibleNotes(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeJSON(w, http.StatusOK, []domain.BibleNote{})
		return
	}
	book, chapter, err := chapterQuery(r, lecterrors.CodeBibleNoteEmptyReference)
	if err != nil {
		writeError(w, err)
		return
	}
	notes, err := h.deps.BibleNotes.ListBibleNotes(r.Context(), principal.UserID, book, chapter)
	if err != nil {
		writeError(w, err)
		return
	}
	if notes == nil {
		notes = []domain.BibleNote{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *handler) handleCreateBibleNote(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeError(w, errUnauthenticated)
		return
	}

	var input domain.CreateBibleNoteInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.OwnerID = principal.UserID

	note, err := domain.CreateBibleNote(input, h.now, h.idGenerator)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.deps.BibleNotes.PutBibleNote(r.Context(), note); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *handler) handlePatchBibleNote(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeError(w, errUnauthenticated)
		return
	}

	var patch domain.BibleNotePatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if err := h.deps.BibleNotes.PatchBibleNote(r.Context(), principal.UserID, r.PathValue("id"), patch, h.now().UTC()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleDeleteBibleNote(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeError(w, errUnauthenticated)
		return
	}
	if err := h.deps.BibleNotes.DeleteBibleNote(r.Context(), principal.UserID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleListCommentaries(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeJSON(w, http.StatusOK, []domain.Commentary{})
		return
	}
	commentaries, err := h.deps.Commentaries.ListCommentaries(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if commentaries == nil {
		commentaries = []domain.Commentary{}
	}
	writeJSON(w, http.StatusOK, commentaries)
}

func (h *handler) handleCreateCommentary(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeError(w, errUnauthenticated)
		return
	}

	var input domain.CreateCommentaryInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.OwnerID = principal.UserID

	commentary, err := domain.CreateCommentary(input, h.now, h.idGenerator)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.deps.Commentaries.PutCommentary(r.Context(), commentary); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, commentary)
}

func (h *handler) handlePatchCommentary(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeError(w, errUnauthenticated)
		return
	}

	var patch domain.CommentaryPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if err := h.deps.Commentaries.PatchCommentary(r.Context(), principal.UserID, r.PathValue("id"), patch, h.now().UTC()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleDeleteCommentary(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeError(w, errUnauthenticated)
		return
	}
	if err := h.deps.Commentaries.DeleteCommentary(r.Context(), principal.UserID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

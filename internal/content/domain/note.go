package domain

import (
	"strings"
	"time"

	"github.com/louisbranch/lectern/internal/errors"
	"github.com/louisbranch/lectern/internal/id"
)

// Note is a sermon or study note owned by exactly one user.
type Note struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateNoteInput describes the fields needed to create a note.
type CreateNoteInput struct {
	OwnerID string
	Title   string
	Content string
}

// NotePatch carries the note fields an update may change. Nil fields are
// left untouched.
type NotePatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// CreateNote creates a note with a generated id and timestamps.
func CreateNote(input CreateNoteInput, now func() time.Time, idGenerator func() (string, error)) (Note, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return Note{}, errors.New(errors.CodeNoteEmptyTitle, "note title is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return Note{}, errors.New(errors.CodeNoteEmptyContent, "note content is required")
	}

	noteID, err := idGenerator()
	if err != nil {
		return Note{}, err
	}

	created := now().UTC()
	return Note{
		ID:        noteID,
		OwnerID:   input.OwnerID,
		Title:     title,
		Content:   input.Content,
		CreatedAt: created,
		UpdatedAt: created,
	}, nil
}

// ApplyPatch merges the patch into the note. The modification timestamp is
// stamped by the caller, not here, because stores use their local clock for
// immediate UI feedback.
func (n *Note) ApplyPatch(patch NotePatch) {
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
}

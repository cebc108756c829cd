package domain

import (
	"strings"
	"time"

	"github.com/louisbranch/lectern/internal/errors"
	"github.com/louisbranch/lectern/internal/id"
)

// BibleHighlight is a colored span over a chapter's text.
type BibleHighlight struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Book        string    `json:"book"`
	Chapter     int       `json:"chapter"`
	StartOffset int       `json:"startOffset"`
	EndOffset   int       `json:"endOffset"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateHighlightInput describes the fields needed to create a highlight.
type CreateHighlightInput struct {
	OwnerID     string
	Book        string
	Chapter     int
	StartOffset int
	EndOffset   int
	Color       string
}

// HighlightPatch carries the highlight fields an update may change.
type HighlightPatch struct {
	Color *string `json:"color,omitempty"`
}

// CreateHighlight creates a highlight with a generated id and timestamps.
func CreateHighlight(input CreateHighlightInput, now func() time.Time, idGenerator func() (string, error)) (BibleHighlight, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	book := strings.TrimSpace(input.Book)
	if book == "" || input.Chapter <= 0 {
		return BibleHighlight{}, errors.New(errors.CodeHighlightEmptyReference, "book and chapter are required")
	}
	if input.StartOffset < 0 || input.EndOffset <= input.StartOffset {
		return BibleHighlight{}, errors.New(errors.CodeHighlightInvalidRange, "end offset must follow start offset")
	}

	highlightID, err := idGenerator()
	if err != nil {
		return BibleHighlight{}, err
	}

	created := now().UTC()
	return BibleHighlight{
		ID:          highlightID,
		OwnerID:     input.OwnerID,
		Book:        book,
		Chapter:     input.Chapter,
		StartOffset: input.StartOffset,
		EndOffset:   input.EndOffset,
		Color:       input.Color,
		CreatedAt:   created,
		UpdatedAt:   created,
	}, nil
}

// ApplyPatch merges the patch into the highlight.
func (h *BibleHighlight) ApplyPatch(patch HighlightPatch) {
	if patch.Color != nil {
		h.Color = *patch.Color
	}
}

// BibleNote is a user's note anchored to a span of a chapter's text.
type BibleNote struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Book        string    `json:"book"`
	Chapter     int       `json:"chapter"`
	StartOffset int       `json:"startOffset"`
	EndOffset   int       `json:"endOffset"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateBibleNoteInput describes the fields needed to create a Bible note.
type CreateBibleNoteInput struct {
	OwnerID     string
	Book        string
	Chapter     int
	StartOffset int
	EndOffset   int
	Text        string
}

// BibleNotePatch carries the Bible note fields an update may change.
type BibleNotePatch struct {
	Text *string `json:"text,omitempty"`
}

// CreateBibleNote creates a Bible note with a generated id and timestamps.
func CreateBibleNote(input CreateBibleNoteInput, now func() time.Time, idGenerator func() (string, error)) (BibleNote, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	book := strings.TrimSpace(input.Book)
	if book == "" || input.Chapter <= 0 {
		return BibleNote{}, errors.New(errors.CodeBibleNoteEmptyReference, "book and chapter are required")
	}
	if strings.TrimSpace(input.Text) == "" {
		return BibleNote{}, errors.New(errors.CodeBibleNoteEmptyText, "note text is required")
	}

	noteID, err := idGenerator()
	if err != nil {
		return BibleNote{}, err
	}

	created := now().UTC()
	return BibleNote{
		ID:          noteID,
		OwnerID:     input.OwnerID,
		Book:        book,
		Chapter:     input.Chapter,
		StartOffset: input.StartOffset,
		EndOffset:   input.EndOffset,
		Text:        input.Text,
		CreatedAt:   created,
		UpdatedAt:   created,
	}, nil
}

// ApplyPatch merges the patch into the Bible note.
func (n *BibleNote) ApplyPatch(patch BibleNotePatch) {
	if patch.Text != nil {
		n.Text = *patch.Text
	}
}

package domain

import (
	"testing"
	"time"

	"github.com/louisbranch/lectern/internal/errors"
)

var (
	fixedClock = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	fixedID    = func() (string, error) { return "fixed-id", nil }
)

func TestCreateNote(t *testing.T) {
	note, err := CreateNote(CreateNoteInput{OwnerID: "u1", Title: " Grace ", Content: "body"}, fixedClock, fixedID)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if note.ID != "fixed-id" {
		t.Errorf("id = %q, want %q", note.ID, "fixed-id")
	}
	if note.Title != "Grace" {
		t.Errorf("title = %q, want trimmed %q", note.Title, "Grace")
	}
	if !note.CreatedAt.Equal(fixedClock()) || !note.UpdatedAt.Equal(fixedClock()) {
		t.Error("timestamps should come from the injected clock")
	}
}

func TestCreateNoteRequiresTitleAndContent(t *testing.T) {
	_, err := CreateNote(CreateNoteInput{OwnerID: "u1", Content: "body"}, fixedClock, fixedID)
	if !errors.IsCode(err, errors.CodeNoteEmptyTitle) {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.CodeNoteEmptyTitle)
	}

	_, err = CreateNote(CreateNoteInput{OwnerID: "u1", Title: "t", Content: "  "}, fixedClock, fixedID)
	if !errors.IsCode(err, errors.CodeNoteEmptyContent) {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.CodeNoteEmptyContent)
	}
}

func TestNoteApplyPatch(t *testing.T) {
	note := Note{Title: "old", Content: "old body"}
	title := "new"
	note.ApplyPatch(NotePatch{Title: &title})
	if note.Title != "new" {
		t.Errorf("title = %q, want %q", note.Title, "new")
	}
	if note.Content != "old body" {
		t.Error("nil patch field must leave content untouched")
	}
}

func TestCreateHighlightValidatesRange(t *testing.T) {
	_, err := CreateHighlight(CreateHighlightInput{OwnerID: "u1", Book: "John", Chapter: 3, StartOffset: 10, EndOffset: 10}, fixedClock, fixedID)
	if !errors.IsCode(err, errors.CodeHighlightInvalidRange) {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.CodeHighlightInvalidRange)
	}

	_, err = CreateHighlight(CreateHighlightInput{OwnerID: "u1", Chapter: 3, StartOffset: 0, EndOffset: 4}, fixedClock, fixedID)
	if !errors.IsCode(err, errors.CodeHighlightEmptyReference) {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.CodeHighlightEmptyReference)
	}

	highlight, err := CreateHighlight(CreateHighlightInput{OwnerID: "u1", Book: "John", Chapter: 3, StartOffset: 0, EndOffset: 4, Color: "amber"}, fixedClock, fixedID)
	if err != nil {
		t.Fatalf("create highlight: %v", err)
	}
	if highlight.Color != "amber" {
		t.Errorf("color = %q, want %q", highlight.Color, "amber")
	}
}

func TestCreateBibleNoteRequiresText(t *testing.T) {
	_, err := CreateBibleNote(CreateBibleNoteInput{OwnerID: "u1", Book: "John", Chapter: 3}, fixedClock, fixedID)
	if !errors.IsCode(err, errors.CodeBibleNoteEmptyText) {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.CodeBibleNoteEmptyText)
	}
}

func TestCreateCommentaryRequiresBody(t *testing.T) {
	_, err := CreateCommentary(CreateCommentaryInput{OwnerID: "u1", Passage: "John 3"}, fixedClock, fixedID)
	if !errors.IsCode(err, errors.CodeCommentaryEmptyBody) {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.CodeCommentaryEmptyBody)
	}

	commentary, err := CreateCommentary(CreateCommentaryInput{OwnerID: "u1", Passage: " John 3 ", Body: "b"}, fixedClock, fixedID)
	if err != nil {
		t.Fatalf("create commentary: %v", err)
	}
	if commentary.Passage != "John 3" {
		t.Errorf("passage = %q, want trimmed %q", commentary.Passage, "John 3")
	}
}

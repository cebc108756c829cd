package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/lectern/internal/content/domain"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// NoteStore persists sermon note records.
type NoteStore interface {
	ListNotes(ctx context.Context, ownerID string) ([]domain.Note, error)
	PutNote(ctx context.Context, note domain.Note) error
	PatchNote(ctx context.Context, ownerID, noteID string, patch domain.NotePatch, updatedAt time.Time) error
	DeleteNote(ctx context.Context, ownerID, noteID string) error
}

// HighlightStore persists Bible highlight records scoped by book and chapter.
type HighlightStore interface {
	ListHighlights(ctx context.Context, ownerID, book string, chapter int) ([]domain.BibleHighlight, error)
	PutHighlight(ctx context.Context, highlight domain.BibleHighlight) error
	PatchHighlight(ctx context.Context, ownerID, highlightID string, patch domain.HighlightPatch, updatedAt time.Time) error
	DeleteHighlight(ctx context.Context, ownerID, highlightID string) error
}

// BibleNoteStore persists Bible note records scoped by book and chapter.
type BibleNoteStore interface {
	ListBibleNotes(ctx context.Context, ownerID, book string, chapter int) ([]domain.BibleNote, error)
	PutBibleNote(ctx context.Context, note domain.BibleNote) error
	PatchBibleNote(ctx context.Context, ownerID, noteID string, patch domain.BibleNotePatch, updatedAt time.Time) error
	DeleteBibleNote(ctx context.Context, ownerID, noteID string) error
}

// CommentaryStore persists commentary records.
type CommentaryStore interface {
	ListCommentaries(ctx context.Context, ownerID string) ([]domain.Commentary, error)
	PutCommentary(ctx context.Context, commentary domain.Commentary) error
	PatchCommentary(ctx context.Context, ownerID, commentaryID string, patch domain.CommentaryPatch, updatedAt time.Time) error
	DeleteCommentary(ctx context.Context, ownerID, commentaryID string) error
}

// SettingsStore persists JSON-encoded setting blobs under fixed keys.
type SettingsStore interface {
	GetSetting(ctx context.Context, ownerID, key string) ([]byte, bool, error)
	PutSetting(ctx context.Context, ownerID, key string, payload []byte) error
}

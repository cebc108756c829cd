package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/lectern/internal/content/domain"
	"github.com/louisbranch/lectern/internal/storage"
)

// ListHighlights returns the owner's highlights for one chapter, ascending
// by start offset.
func (s *Store) ListHighlights(ctx context.Context, ownerID, book string, chapter int) ([]domain.BibleHighlight, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, owner_id, book, chapter, start_offset, end_offset, color, created_at, updated_at
		 FROM bible_highlights
		 WHERE owner_id = ? AND book = ? AND chapter = ?
		 ORDER BY start_offset, id`,
		ownerID, book, chapter,
	)
	if err != nil {
		return nil, fmt.Errorf("list highlights: %w", err)
	}
	defer rows.Close()

	var highlights []domain.BibleHighlight
	for rows.Next() {
		var h domain.BibleHighlight
		var createdAt, updatedAt int64
		if err := rows.Scan(&h.ID, &h.OwnerID, &h.Book, &h.Chapter, &h.StartOffset, &h.EndOffset, &h.Color, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan highlight: %w", err)
		}
		h.CreatedAt = unixMillisToTime(createdAt)
		h.UpdatedAt = unixMillisToTime(updatedAt)
		highlights = append(highlights, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate highlights: %w", err)
	}
	return highlights, nil
}

// PutHighlight inserts a highlight record.
func (s *Store) PutHighlight(ctx context.Context, highlight domain.BibleHighlight) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO bible_highlights (id, owner_id, book, chapter, start_offset, end_offset, color, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		highlight.ID, highlight.OwnerID, highlight.Book, highlight.Chapter,
		highlight.StartOffset, highlight.EndOffset, highlight.Color,
		timeToUnixMillis(highlight.CreatedAt), timeToUnixMillis(highlight.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put highlight: %w", err)
	}
	return nil
}

// PatchHighlight applies the non-nil patch fields to the owner's highlight.
func (s *Store) PatchHighlight(ctx context.Context, ownerID, highlightID string, patch domain.HighlightPatch, updatedAt time.Time) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	sets := []string{"updated_at = ?"}
	args := []any{timeToUnixMillis(updatedAt)}
	if patch.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *patch.Color)
	}
	args = append(args, ownerID, highlightID)

	result, err := s.sqlDB.ExecContext(
		ctx,
		"UPDATE bible_highlights SET "+strings.Join(sets, ", ")+" WHERE owner_id = ? AND id = ?",
		args...,
	)
	if err != nil {
		return fmt.Errorf("patch highlight: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("patch highlight rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteHighlight removes the owner's highlight.
func (s *Store) DeleteHighlight(ctx context.Context, ownerID, highlightID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM bible_highlights WHERE owner_id = ? AND id = ?", ownerID, highlightID)
	if err != nil {
		return fmt.Errorf("delete highlight: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete highlight rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListBibleNotes returns the owner's Bible notes for one chapter, ascending
// by start offset.
func (s *Store) ListBibleNotes(ctx context.Context, ownerID, book string, chapter int) ([]domain.BibleNote, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, owner_id, book, chapter, start_offset, end_offset, text, created_at, updated_at
		 FROM bible_notes
		 WHERE owner_id = ? AND book = ? AND chapter = ?
		 ORDER BY start_offset, id`,
		ownerID, book, chapter,
	)
	if err != nil {
		return nil, fmt.Errorf("list bible notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.BibleNote
	for rows.Next() {
		var note domain.BibleNote
		var createdAt, updatedAt int64
		if err := rows.Scan(&note.ID, &note.OwnerID, &note.Book, &note.Chapter, &note.StartOffset, &note.EndOffset, &note.Text, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan bible note: %w", err)
		}
		note.CreatedAt = unixMillisToTime(createdAt)
		note.UpdatedAt = unixMillisToTime(updatedAt)
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bible notes: %w", err)
	}
	return notes, nil
}

// PutBibleNote inserts a Bible note record.
func (s *Store) PutBibleNote(ctx context.Context, note domain.BibleNote) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO bible_notes (id, owner_id, book, chapter, start_offset, end_offset, text, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		note.ID, note.OwnerID, note.Book, note.Chapter,
		note.StartOffset, note.EndOffset, note.Text,
		timeToUnixMillis(note.CreatedAt), timeToUnixMillis(note.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put bible note: %w", err)
	}
	return nil
}

// PatchBibleNote applies the non-nil patch fields to the owner's Bible note.
func (s *Store) PatchBibleNote(ctx context.Context, ownerID, noteID string, patch domain.BibleNotePatch, updatedAt time.Time) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	sets := []string{"updated_at = ?"}
	args := []any{timeToUnixMillis(updatedAt)}
	if patch.Text != nil {
		sets = append(sets, "text = ?")
		args = append(args, *patch.Text)
	}
	args = append(args, ownerID, noteID)

	result, err := s.sqlDB.ExecContext(
		ctx,
		"UPDATE bible_notes SET "+strings.Join(sets, ", ")+" WHERE owner_id = ? AND id = ?",
		args...,
	)
	if err != nil {
		return fmt.Errorf("patch bible note: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("patch bible note rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteBibleNote removes the owner's Bible note.
func (s *Store) DeleteBibleNote(ctx context.Context, ownerID, noteID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM bible_notes WHERE owner_id = ? AND id = ?", ownerID, noteID)
	if err != nil {
		return fmt.Errorf("delete bible note: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bible note rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

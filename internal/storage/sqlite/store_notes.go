package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/lectern/internal/content/domain"
	"github.com/louisbranch/lectern/internal/storage"
)

// ListNotes returns the owner's notes, most recent first.
func (s *Store) ListNotes(ctx context.Context, ownerID string) ([]domain.Note, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, owner_id, title, content, created_at, updated_at
		 FROM notes
		 WHERE owner_id = ?
		 ORDER BY created_at DESC, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var note domain.Note
		var createdAt, updatedAt int64
		if err := rows.Scan(&note.ID, &note.OwnerID, &note.Title, &note.Content, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		note.CreatedAt = unixMillisToTime(createdAt)
		note.UpdatedAt = unixMillisToTime(updatedAt)
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

// PutNote inserts a note record.
func (s *Store) PutNote(ctx context.Context, note domain.Note) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO notes (id, owner_id, title, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID, note.OwnerID, note.Title, note.Content,
		timeToUnixMillis(note.CreatedAt), timeToUnixMillis(note.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put note: %w", err)
	}
	return nil
}

// PatchNote applies the non-nil patch fields to the owner's note.
func (s *Store) PatchNote(ctx context.Context, ownerID, noteID string, patch domain.NotePatch, updatedAt time.Time) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	sets := []string{"updated_at = ?"}
	args := []any{timeToUnixMillis(updatedAt)}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *patch.Content)
	}
	args = append(args, ownerID, noteID)

	result, err := s.sqlDB.ExecContext(
		ctx,
		"UPDATE notes SET "+strings.Join(sets, ", ")+" WHERE owner_id = ? AND id = ?",
		args...,
	)
	if err != nil {
		return fmt.Errorf("patch note: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("patch note rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteNote removes the owner's note.
func (s *Store) DeleteNote(ctx context.Context, ownerID, noteID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM notes WHERE owner_id = ? AND id = ?", ownerID, noteID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

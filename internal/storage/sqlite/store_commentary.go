package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/lectern/internal/content/domain"
	"github.com/louisbranch/lectern/internal/storage"
)

// ListCommentaries returns the owner's commentaries, most recent first.
func (s *Store) ListCommentaries(ctx context.Context, ownerID string) ([]domain.Commentary, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, owner_id, passage, body, created_at, updated_at
		 FROM commentaries
		 WHERE owner_id = ?
		 ORDER BY created_at DESC, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list commentaries: %w", err)
	}
	defer rows.Close()

	var commentaries []domain.Commentary
	for rows.Next() {
		var c domain.Commentary
		var createdAt, updatedAt int64
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Passage, &c.Body, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan commentary: %w", err)
		}
		c.CreatedAt = unixMillisToTime(createdAt)
		c.UpdatedAt = unixMillisToTime(updatedAt)
		commentaries = append(commentaries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commentaries: %w", err)
	}
	return commentaries, nil
}

// PutCommentary inserts a commentary record.
func (s *Store) PutCommentary(ctx context.Context, commentary domain.Commentary) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO commentaries (id, owner_id, passage, body, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		commentary.ID, commentary.OwnerID, commentary.Passage, commentary.Body,
		timeToUnixMillis(commentary.CreatedAt), timeToUnixMillis(commentary.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put commentary: %w", err)
	}
	return nil
}

// PatchCommentary applies the non-nil patch fields to the owner's commentary.
func (s *Store) PatchCommentary(ctx context.Context, ownerID, commentaryID string, patch domain.CommentaryPatch, updatedAt time.Time) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	sets := []string{"updated_at = ?"}
	args := []any{timeToUnixMillis(updatedAt)}
	if patch.Passage != nil {
		sets = append(sets, "passage = ?")
		args = append(args, *patch.Passage)
	}
	if patch.Body != nil {
		sets = append(sets, "body = ?")
		args = append(args, *patch.Body)
	}
	args = append(args, ownerID, commentaryID)

	result, err := s.sqlDB.ExecContext(
		ctx,
		"UPDATE commentaries SET "+strings.Join(sets, ", ")+" WHERE owner_id = ? AND id = ?",
		args...,
	)
	if err != nil {
		return fmt.Errorf("patch commentary: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("patch commentary rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteCommentary removes the owner's commentary.
func (s *Store) DeleteCommentary(ctx context.Context, ownerID, commentaryID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM commentaries WHERE owner_id = ? AND id = ?", ownerID, commentaryID)
	if err != nil {
		return fmt.Errorf("delete commentary: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete commentary rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

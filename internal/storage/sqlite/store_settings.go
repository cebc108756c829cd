package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// GetSetting loads a JSON setting blob by owner and key.
func (s *Store) GetSetting(ctx context.Context, ownerID, key string) ([]byte, bool, error) {
	if s == nil || s.sqlDB == nil {
		return nil, false, fmt.Errorf("storage is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, fmt.Errorf("setting key is required")
	}

	var payload []byte
	row := s.sqlDB.QueryRowContext(ctx, "SELECT payload FROM settings WHERE owner_id = ? AND key = ?", ownerID, key)
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get setting: %w", err)
	}
	return payload, true, nil
}

// PutSetting upserts a JSON setting blob by owner and key.
func (s *Store) PutSetting(ctx context.Context, ownerID, key string, payload []byte) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("setting key is required")
	}
	if len(payload) == 0 {
		return fmt.Errorf("setting payload is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO settings (owner_id, key, payload, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(owner_id, key) DO UPDATE SET
		    payload = excluded.payload,
		    updated_at = excluded.updated_at`,
		ownerID, key, payload, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put setting: %w", err)
	}
	return nil
}

// Package settings persists presentation display settings as a JSON blob
// under a fixed key, merging stored values over defaults on load.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/louisbranch/lectern/internal/present/domain"
	"github.com/louisbranch/lectern/internal/storage"
)

// settingsKey is the fixed key display settings live under. Changing it
// orphans every stored blob.
const settingsKey = "display_settings"

// Defaults returns the display settings used before a user saves anything,
// and the base every stored blob is merged over.
func Defaults() domain.DisplaySettings {
	return domain.DisplaySettings{
		Background:  "#000000",
		TextColor:   "#ffffff",
		TextAlign:   domain.AlignCenter,
		TextSize:    42,
		Padding:     48,
		LineSpacing: 1.4,
		WordSpacing: 1.0,
		Filmstrip:   true,
		Dim:         false,
	}
}

// Service loads and saves display settings for one user.
type Service struct {
	store storage.SettingsStore
}

// NewService creates a settings service over the given store.
func NewService(store storage.SettingsStore) *Service {
	return &Service{store: store}
}

// Load returns the user's display settings, merging the stored blob over
// defaults so fields added after the blob was written keep their default
// value. A missing or corrupt blob yields the defaults without error.
func (s *Service) Load(ctx context.Context, ownerID string) (domain.DisplaySettings, error) {
	merged := Defaults()
	if s == nil || s.store == nil {
		return merged, nil
	}

	payload, ok, err := s.store.GetSetting(ctx, ownerID, settingsKey)
	if err != nil {
		return Defaults(), fmt.Errorf("load settings: %w", err)
	}
	if !ok {
		return merged, nil
	}

	if err := json.Unmarshal(payload, &merged); err != nil {
		log.Printf("settings: discarding corrupt blob for %s: %v", ownerID, err)
		return Defaults(), nil
	}
	return merged, nil
}

// Save persists the user's display settings, replacing any stored blob.
func (s *Service) Save(ctx context.Context, ownerID string, settings domain.DisplaySettings) error {
	if s == nil || s.store == nil {
		return nil
	}

	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.store.PutSetting(ctx, ownerID, settingsKey, payload); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

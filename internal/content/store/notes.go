package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/louisbranch/lectern/internal/auth"
	"github.com/louisbranch/lectern/internal/content/domain"
	"github.com/louisbranch/lectern/internal/id"
	"github.com/louisbranch/lectern/internal/storage"
)

// Notes caches the sermon notes collection, most recent first.
type Notes struct {
	remote      storage.NoteStore
	clock       func() time.Time
	idGenerator func() (string, error)

	mu         sync.Mutex
	records    []domain.Note
	selectedID string
}

// NewNotes creates an empty notes store backed by the remote collection.
func NewNotes(remote storage.NoteStore) *Notes {
	return &Notes{remote: remote, clock: time.Now, idGenerator: id.NewID}
}

// Load replaces the cached collection with the principal's persisted notes.
// Anonymous principals get an empty collection and no error.
func (s *Notes) Load(ctx context.Context, principal auth.Principal) error {
	if principal.Anonymous() {
		s.mu.Lock()
		s.records = nil
		s.mu.Unlock()
		return nil
	}

	records, err := s.remote.ListNotes(ctx, principal.UserID)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	return nil
}

// Records returns a copy of the cached collection.
func (s *Notes) Records() []domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]domain.Note, len(s.records))
	copy(records, s.records)
	return records
}

// Create validates and persists a note, then prepends it to the cache. It
// returns nil without error for anonymous principals, and leaves the cache
// untouched on any failure.
func (s *Notes) Create(ctx context.Context, principal auth.Principal, input domain.CreateNoteInput) (*domain.Note, error) {
	if principal.Anonymous() {
		return nil, nil
	}

	input.OwnerID = principal.UserID
	note, err := domain.CreateNote(input, s.clock, s.idGenerator)
	if err != nil {
		return nil, err
	}
	if err := s.remote.PutNote(ctx, note); err != nil {
		return nil, fmt.Errorf("persist note: %w", err)
	}

	s.mu.Lock()
	s.records = append([]domain.Note{note}, s.records...)
	s.mu.Unlock()
	return &note, nil
}

// Update persists the patch and, only once persistence succeeds, merges it
// into the cached record. The modification timestamp is the local clock, not
// the server's, so the UI updates immediately.
func (s *Notes) Update(ctx context.Context, principal auth.Principal, noteID string, patch domain.NotePatch) error {
	if principal.Anonymous() {
		return nil
	}

	updatedAt := s.clock().UTC()
	if err := s.remote.PatchNote(ctx, principal.UserID, noteID, patch, updatedAt); err != nil {
		return fmt.Errorf("update note: %w", err)
	}

	s.mu.Lock()
	for i := range s.records {
		if s.records[i].ID == noteID {
			s.records[i].ApplyPatch(patch)
			s.records[i].UpdatedAt = updatedAt
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Delete persists the deletion and, only once it succeeds, removes the
// cached record, clearing the selection if it pointed at the record.
func (s *Notes) Delete(ctx context.Context, principal auth.Principal, noteID string) error {
	if principal.Anonymous() {
		return nil
	}

	if err := s.remote.DeleteNote(ctx, principal.UserID, noteID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	s.mu.Lock()
	for i := range s.records {
		if s.records[i].ID == noteID {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	if s.selectedID == noteID {
		s.selectedID = ""
	}
	s.mu.Unlock()
	return nil
}

// Select marks a cached note as the current selection.
func (s *Notes) Select(noteID string) {
	s.mu.Lock()
	s.selectedID = noteID
	s.mu.Unlock()
}

// Selected returns the currently selected note, or nil.
func (s *Notes) Selected() *domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == s.selectedID {
			note := s.records[i]
			return &note
		}
	}
	return nil
}

// Dispose clears the cache and selection.
func (s *Notes) Dispose() {
	s.mu.Lock()
	s.records = nil
	s.selectedID = ""
	s.mu.Unlock()
}

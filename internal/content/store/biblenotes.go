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

// BibleNotes caches one chapter's Bible notes, ascending by start offset.
type BibleNotes struct {
	remote      storage.BibleNoteStore
	clock       func() time.Time
	idGenerator func() (string, error)

	mu         sync.Mutex
	scope      ChapterScope
	records    []domain.BibleNote
	selectedID string
}

// NewBibleNotes creates an empty Bible notes store backed by the remote
// collection.
func NewBibleNotes(remote storage.BibleNoteStore) *BibleNotes {
	return &BibleNotes{remote: remote, clock: time.Now, idGenerator: id.NewID}
}

// Load replaces the cached collection with the principal's notes for the
// chapter. Anonymous principals get an empty collection and no error.
func (s *BibleNotes) Load(ctx context.Context, principal auth.Principal, scope ChapterScope) error {
	records, err := s.fetch(ctx, principal, scope)
	if err != nil {
		return err
	}
	s.apply(scope, records)
	return nil
}

func (s *BibleNotes) fetch(ctx context.Context, principal auth.Principal, scope ChapterScope) ([]domain.BibleNote, error) {
	if principal.Anonymous() {
		return nil, nil
	}
	records, err := s.remote.ListBibleNotes(ctx, principal.UserID, scope.Book, scope.Chapter)
	if err != nil {
		return nil, fmt.Errorf("load bible notes: %w", err)
	}
	return records, nil
}

func (s *BibleNotes) apply(scope ChapterScope, records []domain.BibleNote) {
	s.mu.Lock()
	s.scope = scope
	s.records = records
	s.mu.Unlock()
}

// Records returns a copy of the cached collection.
func (s *BibleNotes) Records() []domain.BibleNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]domain.BibleNote, len(s.records))
	copy(records, s.records)
	return records
}

// Create validates and persists a Bible note, then inserts it into the
// cache in offset order. It returns nil without error for anonymous
// principals, and leaves the cache untouched on any failure.
func (s *BibleNotes) Create(ctx context.Context, principal auth.Principal, input domain.CreateBibleNoteInput) (*domain.BibleNote, error) {
	if principal.Anonymous() {
		return nil, nil
	}

	input.OwnerID = principal.UserID
	note, err := domain.CreateBibleNote(input, s.clock, s.idGenerator)
	if err != nil {
		return nil, err
	}
	if err := s.remote.PutBibleNote(ctx, note); err != nil {
		return nil, fmt.Errorf("persist bible note: %w", err)
	}

	s.mu.Lock()
	inserted := false
	for i := range s.records {
		if note.StartOffset < s.records[i].StartOffset {
			s.records = append(s.records[:i], append([]domain.BibleNote{note}, s.records[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		s.records = append(s.records, note)
	}
	s.mu.Unlock()
	return &note, nil
}

// Update persists the patch and, only once persistence succeeds, merges it
// into the cached record with a local-clock modification timestamp.
func (s *BibleNotes) Update(ctx context.Context, principal auth.Principal, noteID string, patch domain.BibleNotePatch) error {
	if principal.Anonymous() {
		return nil
	}

	updatedAt := s.clock().UTC()
	if err := s.remote.PatchBibleNote(ctx, principal.UserID, noteID, patch, updatedAt); err != nil {
		return fmt.Errorf("update bible note: %w", err)
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
func (s *BibleNotes) Delete(ctx context.Context, principal auth.Principal, noteID string) error {
	if principal.Anonymous() {
		return nil
	}

	if err := s.remote.DeleteBibleNote(ctx, principal.UserID, noteID); err != nil {
		return fmt.Errorf("delete bible note: %w", err)
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
func (s *BibleNotes) Select(noteID string) {
	s.mu.Lock()
	s.selectedID = noteID
	s.mu.Unlock()
}

// Selected returns the currently selected note, or nil.
func (s *BibleNotes) Selected() *domain.BibleNote {
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
func (s *BibleNotes) Dispose() {
	s.mu.Lock()
	s.scope = ChapterScope{}
	s.records = nil
	s.selectedID = ""
	s.mu.Unlock()
}

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

// Commentaries caches the commentary collection, most recent first.
type Commentaries struct {
	remote      storage.CommentaryStore
	clock       func() time.Time
	idGenerator func() (string, error)

	mu      sync.Mutex
	records []domain.Commentary
}

// NewCommentaries creates an empty commentaries store backed by the remote
// collection.
func NewCommentaries(remote storage.CommentaryStore) *Commentaries {
	return &Commentaries{remote: remote, clock: time.Now, idGenerator: id.NewID}
}

// Load replaces the cached collection with the principal's commentaries.
// Anonymous principals get an empty collection and no error.
func (s *Commentaries) Load(ctx context.Context, principal auth.Principal) error {
	if principal.Anonymous() {
		s.mu.Lock()
		s.records = nil
		s.mu.Unlock()
		return nil
	}

	records, err := s.remote.ListCommentaries(ctx, principal.UserID)
	if err != nil {
		return fmt.Errorf("load commentaries: %w", err)
	}
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	return nil
}

// Records returns a copy of the cached collection.
func (s *Commentaries) Records() []domain.Commentary {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]domain.Commentary, len(s.records))
	copy(records, s.records)
	return records
}

// Create validates and persists a commentary, then prepends it to the
// cache. It returns nil without error for anonymous principals, and leaves
// the cache untouched on any failure.
func (s *Commentaries) Create(ctx context.Context, principal auth.Principal, input domain.CreateCommentaryInput) (*domain.Commentary, error) {
	if principal.Anonymous() {
		return nil, nil
	}

	input.OwnerID = principal.UserID
	commentary, err := domain.CreateCommentary(input, s.clock, s.idGenerator)
	if err != nil {
		return nil, err
	}
	if err := s.remote.PutCommentary(ctx, commentary); err != nil {
		return nil, fmt.Errorf("persist commentary: %w", err)
	}

	s.mu.Lock()
	s.records = append([]domain.Commentary{commentary}, s.records...)
	s.mu.Unlock()
	return &commentary, nil
}

// Update persists the patch and, only once persistence succeeds, merges it
// into the cached record with a local-clock modification timestamp.
func (s *Commentaries) Update(ctx context.Context, principal auth.Principal, commentaryID string, patch domain.CommentaryPatch) error {
	if principal.Anonymous() {
		return nil
	}

	updatedAt := s.clock().UTC()
	if err := s.remote.PatchCommentary(ctx, principal.UserID, commentaryID, patch, updatedAt); err != nil {
		return fmt.Errorf("update commentary: %w", err)
	}

	s.mu.Lock()
	for i := range s.records {
		if s.records[i].ID == commentaryID {
			s.records[i].ApplyPatch(patch)
			s.records[i].UpdatedAt = updatedAt
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Delete persists the deletion and, only once it succeeds, removes the
// cached record.
func (s *Commentaries) Delete(ctx context.Context, principal auth.Principal, commentaryID string) error {
	if principal.Anonymous() {
		return nil
	}

	if err := s.remote.DeleteCommentary(ctx, principal.UserID, commentaryID); err != nil {
		return fmt.Errorf("delete commentary: %w", err)
	}

	s.mu.Lock()
	for i := range s.records {
		if s.records[i].ID == commentaryID {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Dispose clears the cache.
func (s *Commentaries) Dispose() {
	s.mu.Lock()
	s.records = nil
	s.mu.Unlock()
}

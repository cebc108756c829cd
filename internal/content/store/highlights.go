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

// ChapterScope names the chapter a scoped store is loaded for.
type ChapterScope struct {
	Book    string
	Chapter int
}

// Highlights caches one chapter's Bible highlights, ascending by start
// offset.
type Highlights struct {
	remote      storage.HighlightStore
	clock       func() time.Time
	idGenerator func() (string, error)

	mu      sync.Mutex
	scope   ChapterScope
	records []domain.BibleHighlight
}

// NewHighlights creates an empty highlights store backed by the remote
// collection.
func NewHighlights(remote storage.HighlightStore) *Highlights {
	return &Highlights{remote: remote, clock: time.Now, idGenerator: id.NewID}
}

// Load replaces the cached collection with the principal's highlights for
// the chapter. Anonymous principals get an empty collection and no error.
func (s *Highlights) Load(ctx context.Context, principal auth.Principal, scope ChapterScope) error {
	records, err := s.fetch(ctx, principal, scope)
	if err != nil {
		return err
	}
	s.apply(scope, records)
	return nil
}

func (s *Highlights) fetch(ctx context.Context, principal auth.Principal, scope ChapterScope) ([]domain.BibleHighlight, error) {
	if principal.Anonymous() {
		return nil, nil
	}
	records, err := s.remote.ListHighlights(ctx, principal.UserID, scope.Book, scope.Chapter)
	if err != nil {
		return nil, fmt.Errorf("load highlights: %w", err)
	}
	return records, nil
}

func (s *Highlights) apply(scope ChapterScope, records []domain.BibleHighlight) {
	s.mu.Lock()
	s.scope = scope
	s.records = records
	s.mu.Unlock()
}

// Records returns a copy of the cached collection.
func (s *Highlights) Records() []domain.BibleHighlight {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]domain.BibleHighlight, len(s.records))
	copy(records, s.records)
	return records
}

// Scope returns the chapter the cache is loaded for.
func (s *Highlights) Scope() ChapterScope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

// Create validates and persists a highlight, then inserts it into the cache
// in offset order. It returns nil without error for anonymous principals,
// and leaves the cache untouched on any failure.
func (s *Highlights) Create(ctx context.Context, principal auth.Principal, input domain.CreateHighlightInput) (*domain.BibleHighlight, error) {
	if principal.Anonymous() {
		return nil, nil
	}

	input.OwnerID = principal.UserID
	highlight, err := domain.CreateHighlight(input, s.clock, s.idGenerator)
	if err != nil {
		return nil, err
	}
	if err := s.remote.PutHighlight(ctx, highlight); err != nil {
		return nil, fmt.Errorf("persist highlight: %w", err)
	}

	s.mu.Lock()
	inserted := false
	for i := range s.records {
		if highlight.StartOffset < s.records[i].StartOffset {
			s.records = append(s.records[:i], append([]domain.BibleHighlight{highlight}, s.records[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		s.records = append(s.records, highlight)
	}
	s.mu.Unlock()
	return &highlight, nil
}

// Update persists the patch and, only once persistence succeeds, merges it
// into the cached record with a local-clock modification timestamp.
func (s *Highlights) Update(ctx context.Context, principal auth.Principal, highlightID string, patch domain.HighlightPatch) error {
	if principal.Anonymous() {
		return nil
	}

	updatedAt := s.clock().UTC()
	if err := s.remote.PatchHighlight(ctx, principal.UserID, highlightID, patch, updatedAt); err != nil {
		return fmt.Errorf("update highlight: %w", err)
	}

	s.mu.Lock()
	for i := range s.records {
		if s.records[i].ID == highlightID {
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
func (s *Highlights) Delete(ctx context.Context, principal auth.Principal, highlightID string) error {
	if principal.Anonymous() {
		return nil
	}

	if err := s.remote.DeleteHighlight(ctx, principal.UserID, highlightID); err != nil {
		return fmt.Errorf("delete highlight: %w", err)
	}

	s.mu.Lock()
	for i := range s.records {
		if s.records[i].ID == highlightID {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Dispose clears the cache.
func (s *Highlights) Dispose() {
	s.mu.Lock()
	s.scope = ChapterScope{}
	s.records = nil
	s.mu.Unlock()
}

package store

import (
	"context"
	"sync"

	"github.com/louisbranch/lectern/internal/auth"
	"github.com/louisbranch/lectern/internal/content/domain"
	"github.com/louisbranch/lectern/internal/storage"
)

// Backend groups the storage interfaces the stores are built over.
type Backend struct {
	Notes        storage.NoteStore
	Highlights   storage.HighlightStore
	BibleNotes   storage.BibleNoteStore
	Commentaries storage.CommentaryStore
}

// Stores is the explicitly constructed container of per-domain caches for
// one application instance.
type Stores struct {
	Notes        *Notes
	Highlights   *Highlights
	BibleNotes   *BibleNotes
	Commentaries *Commentaries
}

// New creates the store container over the given backend.
func New(backend Backend) *Stores {
	return &Stores{
		Notes:        NewNotes(backend.Notes),
		Highlights:   NewHighlights(backend.Highlights),
		BibleNotes:   NewBibleNotes(backend.BibleNotes),
		Commentaries: NewCommentaries(backend.Commentaries),
	}
}

// Dispose clears every cache.
func (s *Stores) Dispose() {
	s.Notes.Dispose()
	s.Highlights.Dispose()
	s.BibleNotes.Dispose()
	s.Commentaries.Dispose()
}

// LoadChapter loads the highlights and Bible notes for one chapter through
// two concurrent fetches, joined before either cache is updated. If either
// fetch fails, neither cache changes.
func (s *Stores) LoadChapter(ctx context.Context, principal auth.Principal, scope ChapterScope) error {
	var wg sync.WaitGroup
	var highlightErr, noteErr error
	var highlights []domain.BibleHighlight
	var notes []domain.BibleNote

	wg.Add(2)
	go func() {
		defer wg.Done()
		highlights, highlightErr = s.Highlights.fetch(ctx, principal, scope)
	}()
	go func() {
		defer wg.Done()
		notes, noteErr = s.BibleNotes.fetch(ctx, principal, scope)
	}()
	wg.Wait()

	if highlightErr != nil {
		return highlightErr
	}
	if noteErr != nil {
		return noteErr
	}

	s.Highlights.apply(scope, highlights)
	s.BibleNotes.apply(scope, notes)
	return nil
}

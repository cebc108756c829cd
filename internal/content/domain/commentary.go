package domain

import (
	"strings"
	"time"

	"github.com/louisbranch/lectern/internal/errors"
	"github.com/louisbranch/lectern/internal/id"
)

// Commentary is a user-authored commentary on a passage or document.
type Commentary struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Passage   string    `json:"passage"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCommentaryInput describes the fields needed to create a commentary.
type CreateCommentaryInput struct {
	OwnerID string
	Passage string
	Body    string
}

// CommentaryPatch carries the commentary fields an update may change.
type CommentaryPatch struct {
	Passage *string `json:"passage,omitempty"`
	Body    *string `json:"body,omitempty"`
}

// CreateCommentary creates a commentary with a generated id and timestamps.
func CreateCommentary(input CreateCommentaryInput, now func() time.Time, idGenerator func() (string, error)) (Commentary, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	if strings.TrimSpace(input.Body) == "" {
		return Commentary{}, errors.New(errors.CodeCommentaryEmptyBody, "commentary body is required")
	}

	commentaryID, err := idGenerator()
	if err != nil {
		return Commentary{}, err
	}

	created := now().UTC()
	return Commentary{
		ID:        commentaryID,
		OwnerID:   input.OwnerID,
		Passage:   strings.TrimSpace(input.Passage),
		Body:      input.Body,
		CreatedAt: created,
		UpdatedAt: created,
	}, nil
}

// ApplyPatch merges the patch into the commentary.
func (c *Commentary) ApplyPatch(patch CommentaryPatch) {
	if patch.Passage != nil {
		c.Passage = *patch.Passage
	}
	if patch.Body != nil {
		c.Body = *patch.Body
	}
}

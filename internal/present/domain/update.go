package domain

import (
	"encoding/json"
	"fmt"

	"github.com/louisbranch/lectern/internal/errors"
)

// Kind discriminates the update payload carried by a broadcast message.
type Kind string

const (
	// KindInit carries a complete presentation state snapshot.
	KindInit Kind = "init"
	// KindSpotlight carries only the new spotlight span.
	KindSpotlight Kind = "spotlight"
	// KindEmphasis carries only the new emphasis ranges.
	KindEmphasis Kind = "emphasis"
	// KindPage carries only the new pagination.
	KindPage Kind = "page"
	// KindSettings carries only the new display settings.
	KindSettings Kind = "settings"
	// KindClear clears the spotlight and emphasis ranges.
	KindClear Kind = "clear"
)

// Update is a tagged broadcast message. An init update always carries a
// complete PresentationState; every other kind carries only the field that
// changed. Exactly one payload field matching the kind may be set.
type Update struct {
	Kind      Kind               `json:"kind"`
	Init      *PresentationState `json:"init,omitempty"`
	Spotlight *Spotlight         `json:"spotlight,omitempty"`
	Emphases  []EmphasisRange    `json:"emphases,omitempty"`
	Page      *Pagination        `json:"page,omitempty"`
	Settings  *DisplaySettings   `json:"settings,omitempty"`
}

// InitUpdate builds an init update from a snapshot.
func InitUpdate(state PresentationState) Update {
	snapshot := state.Clone()
	return Update{Kind: KindInit, Init: &snapshot}
}

// Validate checks the kind/payload invariant.
func (u Update) Validate() error {
	switch u.Kind {
	case KindInit:
		if u.Init == nil {
			return errors.New(errors.CodeChannelInvalidUpdate, "init update requires a full state snapshot")
		}
	case KindSpotlight:
		if u.Spotlight == nil {
			return errors.New(errors.CodeChannelInvalidUpdate, "spotlight update requires a spotlight span")
		}
	case KindEmphasis:
		if u.Emphases == nil {
			return errors.New(errors.CodeChannelInvalidUpdate, "emphasis update requires emphasis ranges")
		}
	case KindPage:
		if u.Page == nil {
			return errors.New(errors.CodeChannelInvalidUpdate, "page update requires pagination")
		}
	case KindSettings:
		if u.Settings == nil {
			return errors.New(errors.CodeChannelInvalidUpdate, "settings update requires display settings")
		}
	case KindClear:
		// clear carries no payload
	default:
		return errors.New(errors.CodeChannelInvalidUpdate, fmt.Sprintf("unknown update kind %q", u.Kind))
	}
	return nil
}

// Apply produces the audience-side state after receiving the update. The
// most recently delivered message defines current truth: init replaces the
// state wholesale, the other kinds merge their single field.
func Apply(state PresentationState, update Update) PresentationState {
	switch update.Kind {
	case KindInit:
		if update.Init != nil {
			return update.Init.Clone()
		}
	case KindSpotlight:
		spot := *update.Spotlight
		state.Spotlight = &spot
	case KindEmphasis:
		state.Emphases = make([]EmphasisRange, len(update.Emphases))
		copy(state.Emphases, update.Emphases)
	case KindPage:
		state.Page = *update.Page
	case KindSettings:
		state.Settings = *update.Settings
	case KindClear:
		state.Spotlight = nil
		state.Emphases = nil
	}
	return state
}

// EncodeUpdate serializes an update for the wire after validating it.
func EncodeUpdate(update Update) ([]byte, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("marshal update: %w", err)
	}
	return payload, nil
}

// DecodeUpdate parses a wire message, rejecting malformed payloads and
// unknown kinds.
func DecodeUpdate(payload []byte) (Update, error) {
	var update Update
	if err := json.Unmarshal(payload, &update); err != nil {
		return Update{}, fmt.Errorf("unmarshal update: %w", err)
	}
	if err := update.Validate(); err != nil {
		return Update{}, err
	}
	return update, nil
}

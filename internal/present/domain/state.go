package domain

// Spotlight is the currently emphasized excerpt of the presented text.
type Spotlight struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// EmphasisRange marks a colored emphasis span within the presented text.
type EmphasisRange struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Color string `json:"color"`
}

// Pagination locates the current page within the presented document.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// TextAlignment describes horizontal text alignment on the audience view.
type TextAlignment string

const (
	AlignLeft   TextAlignment = "left"
	AlignCenter TextAlignment = "center"
	AlignRight  TextAlignment = "right"
)

// DisplaySettings holds the presenter-controlled styling of the audience
// view. New fields must carry a JSON tag and a sensible zero-safe default in
// settings.Defaults so blobs persisted by older builds keep loading.
type DisplaySettings struct {
	Background  string        `json:"background"`
	TextColor   string        `json:"textColor"`
	TextAlign   TextAlignment `json:"textAlign"`
	TextSize    int           `json:"textSize"`
	Padding     int           `json:"padding"`
	LineSpacing float64       `json:"lineSpacing"`
	WordSpacing float64       `json:"wordSpacing"`
	Filmstrip   bool          `json:"filmstrip"`
	Dim         bool          `json:"dim"`
}

// PresentationState is the full snapshot a late-joining audience member
// needs. The presenter owns the authoritative copy; audience members hold a
// received copy, never mutate it, and overwrite it wholesale on every init
// message.
type PresentationState struct {
	DocumentID string          `json:"documentId"`
	Title      string          `json:"title"`
	Spotlight  *Spotlight      `json:"spotlight,omitempty"`
	Emphases   []EmphasisRange `json:"emphases,omitempty"`
	Settings   DisplaySettings `json:"settings"`
	Page       Pagination      `json:"page"`
}

// Clone returns a deep copy of the state so a broadcast snapshot cannot be
// mutated by later presenter edits.
func (s PresentationState) Clone() PresentationState {
	out := s
	if s.Spotlight != nil {
		spot := *s.Spotlight
		out.Spotlight = &spot
	}
	if s.Emphases != nil {
		out.Emphases = make([]EmphasisRange, len(s.Emphases))
		copy(out.Emphases, s.Emphases)
	}
	return out
}

package types

// CharRange is a half-open [Start, End) range. Search results measure
// it in runes of the note body; context results measure the relevant
// range in UTF-16 code units of the snippet text, matching what
// editing surfaces index by.
type CharRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r CharRange) Len() int { return r.End - r.Start }

// SearchResult is one matched chunk of a note. Lower distance means a
// closer match.
type SearchResult struct {
	Distance       float64   `json:"distance"`
	Title          string    `json:"title"`
	CharacterRange CharRange `json:"character_range"`
}

// ContextResult is a context-search hit: a snippet of a related note
// with the portion that actually matched marked out.
type ContextResult struct {
	Distance      float64   `json:"distance"`
	Title         string    `json:"title"`
	Text          string    `json:"text"`
	RelevantRange CharRange `json:"relevant_range"`
}

package app

import (
	"strings"

	"github.com/ealmloff/linknotes/internal/types"
)

const searchResultLimit = 10

// SearchFilter holds the free-text query and the set of active tag
// filters, plus the latest ranked results. Responses carry a sequence
// number so stale ones are dropped instead of flashing old results.
type SearchFilter struct {
	query   string
	tags    []string
	results []types.SearchResult
	seq     int
	open    bool
}

func NewSearchFilter() *SearchFilter {
	return &SearchFilter{}
}

func (f *SearchFilter) Query() string  { return f.query }
func (f *SearchFilter) Tags() []string { return f.tags }
func (f *SearchFilter) Open() bool     { return f.open }

func (f *SearchFilter) Results() []types.SearchResult {
	return f.results
}

// SetQuery records the query text and reports whether a new search
// should be issued. An empty query with no tag filters closes the
// dropdown and clears results.
func (f *SearchFilter) SetQuery(query string) bool {
	f.query = query
	if !f.Active() {
		f.open = false
		f.results = nil
		return false
	}
	f.open = true
	return true
}

// ToggleTag adds the tag to the filter set, or removes it if already
// present. Matching is case-insensitive on trimmed names. Reports
// whether a new search should be issued.
func (f *SearchFilter) ToggleTag(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for i, existing := range f.tags {
		if strings.EqualFold(existing, name) {
			f.tags = append(f.tags[:i], f.tags[i+1:]...)
			if !f.Active() {
				f.open = false
				f.results = nil
				return false
			}
			return true
		}
	}
	f.tags = append(f.tags, name)
	f.open = true
	return true
}

// Active reports whether any query text or tag filter is set.
func (f *SearchFilter) Active() bool {
	return strings.TrimSpace(f.query) != "" || len(f.tags) > 0
}

// Begin stamps a new outgoing search and returns its sequence number.
func (f *SearchFilter) Begin() int {
	f.seq++
	return f.seq
}

// Accept installs results for the given sequence number. Stale
// responses are discarded. Results are deduplicated by title, keeping
// the first (best-ranked) hit per note.
func (f *SearchFilter) Accept(seq int, results []types.SearchResult) bool {
	if seq != f.seq {
		return false
	}
	f.results = dedupeByTitle(results)
	if len(f.results) > searchResultLimit {
		f.results = f.results[:searchResultLimit]
	}
	return true
}

// IsCurrent reports whether seq matches the most recent Begin.
func (f *SearchFilter) IsCurrent(seq int) bool {
	return seq == f.seq
}

// Close hides the dropdown without touching the query or tag set.
func (f *SearchFilter) Close() {
	f.open = false
}

// Reopen shows the dropdown again if there is anything to show.
func (f *SearchFilter) Reopen() {
	if f.Active() {
		f.open = true
	}
}

// Clear drops the query, tag filters, and results.
func (f *SearchFilter) Clear() {
	f.query = ""
	f.tags = nil
	f.results = nil
	f.open = false
	f.seq++
}

func dedupeByTitle(results []types.SearchResult) []types.SearchResult {
	seen := make(map[string]struct{}, len(results))
	out := results[:0:0]
	for _, r := range results {
		if _, ok := seen[r.Title]; ok {
			continue
		}
		seen[r.Title] = struct{}{}
		out = append(out, r)
	}
	return out
}

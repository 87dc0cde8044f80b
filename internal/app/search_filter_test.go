package app

import (
	"testing"

	"github.com/ealmloff/linknotes/internal/types"
)

func TestFilterSetQuery(t *testing.T) {
	f := NewSearchFilter()
	if !f.SetQuery("calculus") {
		t.Fatal("non-empty query should trigger a search")
	}
	if !f.Open() {
		t.Fatal("dropdown should open with an active query")
	}

	if f.SetQuery("") {
		t.Fatal("empty query with no tags should not search")
	}
	if f.Open() || len(f.Results()) != 0 {
		t.Fatal("clearing the query should close and empty the dropdown")
	}
}

func TestFilterEmptyQueryWithTagsStaysActive(t *testing.T) {
	f := NewSearchFilter()
	f.ToggleTag("Math")
	if !f.SetQuery("") {
		t.Fatal("tag filters keep the search active without query text")
	}
	if !f.Active() {
		t.Fatal("filter should be active")
	}
}

func TestFilterToggleTag(t *testing.T) {
	f := NewSearchFilter()
	if !f.ToggleTag("Math") {
		t.Fatal("adding a tag should trigger a search")
	}
	if got := f.Tags(); len(got) != 1 || got[0] != "Math" {
		t.Fatalf("tags = %v", got)
	}

	// Case-insensitive removal; no query left so no new search.
	if f.ToggleTag("  math ") {
		t.Fatal("removing the last tag should not trigger a search")
	}
	if len(f.Tags()) != 0 {
		t.Fatalf("tags = %v after removal", f.Tags())
	}
	if f.ToggleTag("   ") {
		t.Fatal("blank tag accepted")
	}
}

func TestFilterAcceptDedupesAndTruncates(t *testing.T) {
	f := NewSearchFilter()
	f.SetQuery("x")
	seq := f.Begin()

	var results []types.SearchResult
	for i := 0; i < 15; i++ {
		title := string(rune('a' + i%12))
		results = append(results, types.SearchResult{Distance: float64(i), Title: title})
	}
	if !f.Accept(seq, results) {
		t.Fatal("current response rejected")
	}
	got := f.Results()
	if len(got) != searchResultLimit {
		t.Fatalf("len(results) = %d, want %d", len(got), searchResultLimit)
	}
	// First hit per title wins, in rank order.
	if got[0].Title != "a" || got[0].Distance != 0 {
		t.Fatalf("results[0] = %+v", got[0])
	}
	seen := map[string]bool{}
	for _, r := range got {
		if seen[r.Title] {
			t.Fatalf("duplicate title %q survived dedup", r.Title)
		}
		seen[r.Title] = true
	}
}

func TestFilterStaleResultsDropped(t *testing.T) {
	f := NewSearchFilter()
	f.SetQuery("first")
	stale := f.Begin()
	current := f.Begin()

	if f.Accept(stale, []types.SearchResult{{Title: "old"}}) {
		t.Fatal("stale results accepted")
	}
	if !f.IsCurrent(current) {
		t.Fatal("current seq not recognized")
	}
	if !f.Accept(current, []types.SearchResult{{Title: "new"}}) {
		t.Fatal("current results rejected")
	}
	if got := f.Results(); len(got) != 1 || got[0].Title != "new" {
		t.Fatalf("results = %+v", got)
	}
}

func TestFilterCloseAndReopen(t *testing.T) {
	f := NewSearchFilter()
	f.SetQuery("q")
	f.Close()
	if f.Open() {
		t.Fatal("Close left the dropdown open")
	}
	f.Reopen()
	if !f.Open() {
		t.Fatal("Reopen should show the dropdown while active")
	}

	f.Clear()
	f.Reopen()
	if f.Open() {
		t.Fatal("Reopen should stay closed with nothing to show")
	}
}

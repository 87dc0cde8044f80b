package app

import (
	"time"

	"github.com/ealmloff/linknotes/internal/types"
)

type workspaceResolvedMsg struct {
	id  int
	err error
}

// workspaceRetryMsg re-runs workspace resolution after a failed
// attempt, in case the daemon was still starting up.
type workspaceRetryMsg struct{}

type notesLoadedMsg struct {
	notes []types.ContextualDocument
	err   error
}

type noteSavedMsg struct {
	seq   int
	title string
	text  string
	err   error
}

type noteLoadedMsg struct {
	seq   int
	title string
	doc   types.ContextualDocument
	err   error
}

type noteDeletedMsg struct {
	title string
	err   error
}

type tagsLoadedMsg struct {
	title string
	tags  []types.Tag
	err   error
}

type tagsSavedMsg struct {
	title string
	err   error
}

type searchResultsMsg struct {
	seq     int
	results []types.SearchResult
	err     error
}

type contextResultsMsg struct {
	seq     int
	offset  int
	results []types.ContextResult
	err     error
}

type noteImportedMsg struct {
	title string
	text  string
	err   error
}

type tickMsg time.Time

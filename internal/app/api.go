package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/ealmloff/linknotes/internal/client"
	"github.com/ealmloff/linknotes/internal/types"
)

// The Model talks to the daemon through these seams so tests can swap
// in fakes without a network.

type WorkspaceAPI interface {
	GetWorkspaceID(ctx context.Context, path string) (int, error)
}

type NoteAPI interface {
	FilesInWorkspace(ctx context.Context, workspaceID int) ([]types.ContextualDocument, error)
	SaveNote(ctx context.Context, workspaceID int, title, text string) error
	ReadNote(ctx context.Context, workspaceID int, title string) (types.ContextualDocument, error)
	RemoveNote(ctx context.Context, workspaceID int, title string) error
	GetTags(ctx context.Context, workspaceID int, title string) ([]types.Tag, error)
	SetTags(ctx context.Context, workspaceID int, title string, tags []types.Tag) error
}

type SearchAPI interface {
	Search(ctx context.Context, workspaceID int, text string, tags []string, results int) ([]types.SearchResult, error)
	ContextSearch(ctx context.Context, workspaceID int, req client.ContextSearchRequest) ([]types.ContextResult, error)
}

// EditorCapabilities is the full set of session operations the editor
// surface can trigger. *Model is the only production implementation;
// the interface pins the contract down.
type EditorCapabilities interface {
	NewNote()
	SaveNote() tea.Cmd
	SelectNote(title string) tea.Cmd
	RequestDelete(title string)
	ConfirmDelete() tea.Cmd
	CancelDelete()
	AddTag(name string) tea.Cmd
	ToggleTagFilter(name string) tea.Cmd
}

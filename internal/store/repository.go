package store

import (
	"context"
	"errors"

	"github.com/ealmloff/linknotes/internal/types"
)

var (
	ErrNoteNotFound      = errors.New("note not found")
	ErrWorkspaceNotFound = errors.New("workspace not found")
)

type Repository interface {
	Workspaces() WorkspaceStore
	Notes() NoteStore
	Close() error
}

// WorkspaceStore is the path to id registry. Ids are handed out once
// per path and never reused.
type WorkspaceStore interface {
	GetOrCreate(ctx context.Context, path string) (*types.Workspace, error)
	Get(ctx context.Context, id int) (*types.Workspace, bool, error)
	List(ctx context.Context) ([]*types.Workspace, error)
	Delete(ctx context.Context, id int) error
}

type NoteStore interface {
	List(ctx context.Context, workspaceID int) ([]*types.NoteRecord, error)
	Get(ctx context.Context, workspaceID int, title string) (*types.NoteRecord, bool, error)
	Upsert(ctx context.Context, record *types.NoteRecord) (*types.NoteRecord, error)
	Delete(ctx context.Context, workspaceID int, title string) error
}

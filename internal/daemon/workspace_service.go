package daemon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/ealmloff/linknotes/internal/store"
	"github.com/ealmloff/linknotes/internal/types"
)

// WorkspaceService resolves directory paths to workspace ids and tears
// workspaces down again. Resolution is lookup-or-create: a path always
// maps to the same id once seen.
type WorkspaceService struct {
	stores  *Stores
	watcher *NoteWatcher
}

func NewWorkspaceService(stores *Stores, watcher *NoteWatcher) *WorkspaceService {
	return &WorkspaceService{stores: stores, watcher: watcher}
}

func (s *WorkspaceService) Resolve(ctx context.Context, path string) (*types.Workspace, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, invalidError("workspace path is required", nil)
	}
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, invalidError("workspace path could not be resolved", err)
		}
		path = abs
	}
	ws, err := s.stores.Workspaces.GetOrCreate(ctx, path)
	if err != nil {
		return nil, unavailableError("workspace registration failed", err)
	}
	if s.watcher != nil {
		if err := s.watcher.WatchWorkspace(ws); err != nil {
			return nil, unavailableError("workspace directory is not usable", err)
		}
	}
	return ws, nil
}

// Delete forgets the workspace's registration and indexed notes and
// removes its notes directory from disk.
func (s *WorkspaceService) Delete(ctx context.Context, id int) error {
	ws, ok, err := s.stores.Workspaces.Get(ctx, id)
	if err != nil {
		return unavailableError("workspace lookup failed", err)
	}
	if !ok {
		return notFoundError("workspace not found", nil)
	}
	if s.watcher != nil {
		s.watcher.UnwatchWorkspace(ws)
	}
	if err := s.stores.Workspaces.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrWorkspaceNotFound) {
			return notFoundError("workspace not found", err)
		}
		return unavailableError("workspace delete failed", err)
	}
	if err := os.RemoveAll(notesDir(ws.Path)); err != nil {
		return unavailableError("workspace directory cleanup failed", err)
	}
	return nil
}

package daemon

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/ealmloff/linknotes/internal/logging"
	"github.com/ealmloff/linknotes/internal/types"
)

// NoteWatcher keeps the store in sync with the on-disk notes mirror.
// Users can edit the .txt files with anything; changes land in the
// index without going through the API.
type NoteWatcher struct {
	notes  *NoteService
	stores *Stores
	fs     *fsnotify.Watcher
	logger logging.Logger

	mu     sync.Mutex
	dirs   map[string]int
	closed bool
}

func NewNoteWatcher(notes *NoteService, stores *Stores, logger logging.Logger) (*NoteWatcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &NoteWatcher{
		notes:  notes,
		stores: stores,
		fs:     fs,
		logger: logger,
		dirs:   map[string]int{},
	}, nil
}

// WatchWorkspace registers the workspace's notes directory, creating
// it if needed.
func (w *NoteWatcher) WatchWorkspace(ws *types.Workspace) error {
	dir := notesDir(ws.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	if _, ok := w.dirs[dir]; ok {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return err
	}
	w.dirs[dir] = ws.ID
	return nil
}

func (w *NoteWatcher) UnwatchWorkspace(ws *types.Workspace) {
	dir := notesDir(ws.Path)
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.dirs[dir]; !ok {
		return
	}
	_ = w.fs.Remove(dir)
	delete(w.dirs, dir)
}

func (w *NoteWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", logging.F("err", err))
		}
	}
}

func (w *NoteWatcher) Close() error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	return w.fs.Close()
}

func (w *NoteWatcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, ".txt") {
		return
	}
	dir := filepath.Dir(event.Name)

	w.mu.Lock()
	workspaceID, ok := w.dirs[dir]
	w.mu.Unlock()
	if !ok {
		return
	}

	title := strings.TrimSuffix(filepath.Base(event.Name), ".txt")
	switch {
	case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
		if err := w.notes.DropFromIndex(ctx, workspaceID, title); err != nil {
			w.logger.Warn("drop removed note failed", logging.F("title", title), logging.F("err", err))
		}
	case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
		data, err := os.ReadFile(event.Name)
		if err != nil {
			return
		}
		if err := w.notes.SyncFromFile(ctx, workspaceID, title, string(data)); err != nil {
			w.logger.Warn("sync note from file failed", logging.F("title", title), logging.F("err", err))
		}
	}
}

package daemon

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ealmloff/linknotes/internal/logging"
	"github.com/ealmloff/linknotes/internal/store"
	"github.com/ealmloff/linknotes/internal/types"
)

type Daemon struct {
	addr    string
	token   string
	version string
	server  *http.Server
	stores  *Stores
	logger  logging.Logger

	searchDefaults SearchDefaults
}

// SearchDefaults carries the tunables the search service falls back to
// when a request leaves them unset.
type SearchDefaults struct {
	Results          int
	ContextResults   int
	ContextSentences int
}

type Stores struct {
	Workspaces WorkspaceStore
	Notes      NoteStore
}

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

func NewStores(repo store.Repository) *Stores {
	return &Stores{
		Workspaces: repo.Workspaces(),
		Notes:      repo.Notes(),
	}
}

func New(addr, token, version string, stores *Stores, defaults SearchDefaults, logger logging.Logger) *Daemon {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Daemon{
		addr:           addr,
		token:          token,
		version:        version,
		stores:         stores,
		logger:         logger,
		searchDefaults: defaults,
	}
}

// Run serves the API until the context is cancelled. The notes-dir
// watcher runs alongside the server in the same group so either
// failing tears the daemon down.
func (d *Daemon) Run(ctx context.Context) error {
	suggester := NewTagSuggester(d.stores)
	notes := NewNoteService(d.stores, suggester, d.logger)

	watcher, err := NewNoteWatcher(notes, d.stores, d.logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	api := &API{
		Version:  d.version,
		Stores:   d.stores,
		Notes:    notes,
		Search:   NewSearchService(d.stores, d.searchDefaults),
		Watcher:  watcher,
		Logger:   d.logger,
		Defaults: d.searchDefaults,
	}

	// Pick up workspaces registered on previous runs.
	if workspaces, err := d.stores.Workspaces.List(ctx); err == nil {
		for _, ws := range workspaces {
			if err := watcher.WatchWorkspace(ws); err != nil {
				d.logger.Warn("watch workspace failed", logging.F("path", ws.Path), logging.F("err", err))
			}
		}
	}

	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	d.server = &http.Server{
		Addr:    d.addr,
		Handler: TokenAuthMiddleware(d.token, mux),
	}
	api.Shutdown = d.server.Shutdown

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		d.logger.Info("daemon listening", logging.F("addr", d.addr))
		err := d.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	group.Go(func() error {
		watcher.Run(groupCtx)
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return d.server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

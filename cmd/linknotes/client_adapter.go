package main

import (
	"context"

	"github.com/ealmloff/linknotes/internal/app"
	noteclient "github.com/ealmloff/linknotes/internal/client"
	"github.com/ealmloff/linknotes/internal/types"
)

type clientFactory func() (commandClient, error)

type commandClient interface {
	EnsureDaemon(ctx context.Context) error
	GetWorkspaceID(ctx context.Context, path string) (int, error)
	FilesInWorkspace(ctx context.Context, workspaceID int) ([]types.ContextualDocument, error)
	SaveNote(ctx context.Context, workspaceID int, title, text string) error
	RemoveNote(ctx context.Context, workspaceID int, title string) error
	Search(ctx context.Context, workspaceID int, text string, tags []string, results int) ([]types.SearchResult, error)
	ShutdownDaemon(ctx context.Context) error
	Health(ctx context.Context) (*noteclient.HealthResponse, error)
	RunUI(opts app.Options) error
}

type noteClientAdapter struct {
	client *noteclient.Client
}

func newNoteClient() (commandClient, error) {
	client, err := noteclient.New()
	if err != nil {
		return nil, err
	}
	return &noteClientAdapter{client: client}, nil
}

func (c *noteClientAdapter) EnsureDaemon(ctx context.Context) error {
	return c.client.EnsureDaemon(ctx)
}

func (c *noteClientAdapter) GetWorkspaceID(ctx context.Context, path string) (int, error) {
	return c.client.GetWorkspaceID(ctx, path)
}

func (c *noteClientAdapter) FilesInWorkspace(ctx context.Context, workspaceID int) ([]types.ContextualDocument, error) {
	return c.client.FilesInWorkspace(ctx, workspaceID)
}

func (c *noteClientAdapter) SaveNote(ctx context.Context, workspaceID int, title, text string) error {
	return c.client.SaveNote(ctx, workspaceID, title, text)
}

func (c *noteClientAdapter) RemoveNote(ctx context.Context, workspaceID int, title string) error {
	return c.client.RemoveNote(ctx, workspaceID, title)
}

func (c *noteClientAdapter) Search(ctx context.Context, workspaceID int, text string, tags []string, results int) ([]types.SearchResult, error) {
	return c.client.Search(ctx, workspaceID, text, tags, results)
}

func (c *noteClientAdapter) ShutdownDaemon(ctx context.Context) error {
	return c.client.ShutdownDaemon(ctx)
}

func (c *noteClientAdapter) Health(ctx context.Context) (*noteclient.HealthResponse, error) {
	return c.client.Health(ctx)
}

func (c *noteClientAdapter) RunUI(opts app.Options) error {
	return app.Run(c.client, opts)
}

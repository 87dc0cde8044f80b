package main

import (
	"context"
	"flag"
	"io"

	"github.com/ealmloff/linknotes/internal/app"
	"github.com/ealmloff/linknotes/internal/config"
)

type UICommand struct {
	stderr    io.Writer
	newClient clientFactory
	version   string
}

func NewUICommand(stderr io.Writer, newClient clientFactory, version string) *UICommand {
	return &UICommand{
		stderr:    stderr,
		newClient: newClient,
		version:   version,
	}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	workspace := fs.String("workspace", "", "workspace directory (defaults to the current directory)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, err := workspaceArg(*workspace)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cl, err := c.newClient()
	if err != nil {
		return err
	}
	if err := cl.EnsureDaemon(context.Background()); err != nil {
		return err
	}

	return cl.RunUI(app.Options{
		Version:          c.version,
		WorkspacePath:    path,
		SearchResults:    cfg.SearchResults(),
		ContextResults:   cfg.ContextResults(),
		ContextSentences: cfg.ContextSentences(),
		CursorThreshold:  cfg.CursorThreshold(),
		DarkTheme:        cfg.DarkTheme(),
	})
}

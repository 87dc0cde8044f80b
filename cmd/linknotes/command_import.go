package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type ImportCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewImportCommand(stdout, stderr io.Writer, newClient clientFactory) *ImportCommand {
	return &ImportCommand{stdout: stdout, stderr: stderr, newClient: newClient}
}

func (c *ImportCommand) Run(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	workspace := fs.String("workspace", "", "workspace directory (defaults to the current directory)")
	title := fs.String("title", "", "note title (defaults to the file name)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: linknotes import [flags] <file.txt>")
	}
	file := fs.Arg(0)
	if !strings.EqualFold(filepath.Ext(file), ".txt") {
		return fmt.Errorf("only .txt files can be imported: %s", file)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	noteTitle := strings.TrimSpace(*title)
	if noteTitle == "" {
		noteTitle = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}

	path, err := workspaceArg(*workspace)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cl, err := c.newClient()
	if err != nil {
		return err
	}
	if err := cl.EnsureDaemon(ctx); err != nil {
		return err
	}
	workspaceID, err := cl.GetWorkspaceID(ctx, path)
	if err != nil {
		return err
	}
	if err := cl.SaveNote(ctx, workspaceID, noteTitle, string(data)); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "imported %s\n", noteTitle)
	return nil
}

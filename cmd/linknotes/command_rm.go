package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"
)

type RMCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewRMCommand(stdout, stderr io.Writer, newClient clientFactory) *RMCommand {
	return &RMCommand{stdout: stdout, stderr: stderr, newClient: newClient}
}

func (c *RMCommand) Run(args []string) error {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	workspace := fs.String("workspace", "", "workspace directory (defaults to the current directory)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: linknotes rm [--workspace dir] <title>")
	}
	title := fs.Arg(0)

	path, err := workspaceArg(*workspace)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
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
	if err := cl.RemoveNote(ctx, workspaceID, title); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "removed %s\n", title)
	return nil
}

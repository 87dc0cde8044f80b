package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
)

type SearchCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewSearchCommand(stdout, stderr io.Writer, newClient clientFactory) *SearchCommand {
	return &SearchCommand{stdout: stdout, stderr: stderr, newClient: newClient}
}

type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func (c *SearchCommand) Run(args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	workspace := fs.String("workspace", "", "workspace directory (defaults to the current directory)")
	results := fs.Int("results", 10, "maximum number of results")
	var tags stringList
	fs.Var(&tags, "tag", "only match notes carrying this tag (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: linknotes search [flags] <query>")
	}
	query := fs.Arg(0)

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
	found, err := cl.Search(ctx, workspaceID, query, tags, *results)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Fprintln(c.stdout, "no matches")
		return nil
	}
	for _, res := range found {
		fmt.Fprintf(c.stdout, "%.3f  %s  [%d..%d]\n", res.Distance, res.Title, res.CharacterRange.Start, res.CharacterRange.End)
	}
	return nil
}

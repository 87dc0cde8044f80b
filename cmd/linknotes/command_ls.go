package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mattn/go-runewidth"
)

const lsTitleWidth = 48

type LSCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewLSCommand(stdout, stderr io.Writer, newClient clientFactory) *LSCommand {
	return &LSCommand{stdout: stdout, stderr: stderr, newClient: newClient}
}

func (c *LSCommand) Run(args []string) error {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	workspace := fs.String("workspace", "", "workspace directory (defaults to the current directory)")
	if err := fs.Parse(args); err != nil {
		return err
	}

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
	notes, err := cl.FilesInWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(c.stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "TITLE\tTAGS\tSIZE")
	for _, note := range notes {
		names := make([]string, 0, len(note.Tags))
		for _, tag := range note.Tags {
			names = append(names, tag.Name)
		}
		tags := "-"
		if len(names) > 0 {
			tags = strings.Join(names, ",")
		}
		title := runewidth.Truncate(note.Title, lsTitleWidth, "…")
		fmt.Fprintf(writer, "%s\t%s\t%d\n", title, tags, len(note.Body))
	}
	return writer.Flush()
}

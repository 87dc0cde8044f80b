package main

import (
	"flag"
	"fmt"
	"io"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/ealmloff/linknotes/internal/config"
)

type ConfigCommand struct {
	stdout io.Writer
	stderr io.Writer
}

func NewConfigCommand(stdout, stderr io.Writer) *ConfigCommand {
	return &ConfigCommand{stdout: stdout, stderr: stderr}
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	defaults := fs.Bool("defaults", false, "print built-in defaults instead of the effective config")
	showPath := fs.Bool("path", false, "print the config file path and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showPath {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, path)
		return nil
	}

	cfg := config.Default()
	if !*defaults {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
	}

	encoded, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = c.stdout.Write(encoded)
	return err
}

type VersionCommand struct {
	stdout  io.Writer
	version string
}

func NewVersionCommand(stdout io.Writer, version string) *VersionCommand {
	return &VersionCommand{stdout: stdout, version: version}
}

func (c *VersionCommand) Run(args []string) error {
	fmt.Fprintf(c.stdout, "linknotes %s\n", c.version)
	return nil
}

package main

import (
	"io"
	"os"
)

type commandRunner interface {
	Run(args []string) error
}

type commandWiring struct {
	stdout     io.Writer
	stderr     io.Writer
	newClient  clientFactory
	runDaemon  func(background bool) error
	killDaemon func() error
	version    string
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newNoteClient,
		runDaemon: runDaemonProcess,
		killDaemon: func() error {
			return killDaemonWithFactory(newNoteClient)
		},
		version: buildVersion(),
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"daemon":  NewDaemonCommand(wiring.stderr, wiring.runDaemon, wiring.killDaemon),
		"ui":      NewUICommand(wiring.stderr, wiring.newClient, wiring.version),
		"ls":      NewLSCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"rm":      NewRMCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"search":  NewSearchCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"import":  NewImportCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"config":  NewConfigCommand(wiring.stdout, wiring.stderr),
		"version": NewVersionCommand(wiring.stdout, wiring.version),
	}
}

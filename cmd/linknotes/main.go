package main

import (
	"fmt"
	"os"
)

const usageText = `linknotes is a note-taking editor with semantic linking.

Usage:
  linknotes <command> [flags]

Commands:
  ui       open the editor for a workspace
  daemon   run the background daemon
  ls       list notes in a workspace
  rm       remove a note
  search   search notes from the command line
  import   import a .txt file as a note
  config   print configuration (effective or defaults)
  version  print version
  help     show help

Flags:
  -h, --help   show help

Daemon flags:
  --background    run in background (logs to file)
  --kill          stop any running daemon and exit

Examples:
  linknotes ui
  linknotes ls --workspace ~/notes
  linknotes search "graph theory" --tag Math
  linknotes import lecture.txt
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}

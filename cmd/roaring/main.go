// Package main provides roaring, a CLI for building, querying, and
// combining compressed bitsets persisted in the Roaring binary format.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/feb29/compacts/internal/cli"
)

func main() {
	env := cli.EnvMap(os.Environ())

	if len(os.Args) >= 2 && os.Args[1] == "repl" {
		os.Exit(runREPL(os.Args[2:], env))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	exitCode := cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env, sigCh)

	os.Exit(exitCode)
}

// Package main provides the entry point for the maprecon CLI tool.
package main

import (
	"context"
	"os"

	"maprecon/cmd/maprecon/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	application, err := app.New(version, commit, date)
	if err != nil {
		app.ExitOnError(err)
	}

	// Create context with signal handling for graceful shutdown
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	err = application.Execute(ctx, os.Args[1:])
	os.Exit(app.ExitCode(err))
}

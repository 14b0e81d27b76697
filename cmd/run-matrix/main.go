// Package main provides the entry point for the run-matrix CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/runmatrix/internal/cli"
)

// Build information set via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=$(git rev-parse HEAD) -X main.date=$(date -u +%Y-%m-%d)"
var (
	version string //nolint:gochecknoglobals // set at build time
	commit  string //nolint:gochecknoglobals // set at build time
	date    string //nolint:gochecknoglobals // set at build time
)

func main() {
	ctx := context.Background()

	err := cli.Execute(ctx, cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	cli.CloseLogFile()

	os.Exit(cli.ExitCodeForError(err))
}

// Command rxnmap maps the atoms of chemical reactions from the command line
// or over HTTP (rxnmap serve).
package main

import (
	"context"
	"os"

	"github.com/turtacn/ReactionMapper/internal/interfaces/cli"
)

// Build-time variables injected via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=$(git rev-parse --short HEAD)"
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}

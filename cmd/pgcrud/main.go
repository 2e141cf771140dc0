// Package main is the entry point for the pgcrud CLI.
package main

import (
	"os"

	"github.com/satishbabariya/pgcrud/cmd/pgcrud/commands"
	"github.com/satishbabariya/pgcrud/internal/ui"
)

var (
	// Version information (set by build)
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := commands.NewRootCommand(Version, Commit).Execute(); err != nil {
		ui.PrintError(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

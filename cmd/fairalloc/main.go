// Command fairalloc allocates indivisible items among agents from a
// valuation file.
package main

import (
	"os"

	"github.com/katalvlaran/fairalloc/cmd/fairalloc/commands"
)

// Overridden with -ldflags "-X main.version=..." by release builds.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// Execute has already reported the failure on stderr.
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

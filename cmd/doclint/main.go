// Command doclint lints and fixes .NET XML documentation comments.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/doclint/internal/cli"
	"github.com/yaklabco/doclint/internal/logging"
)

// Set with -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // ldflags targets
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date}).Execute()
	// Lint findings are already on stdout; only the exit code remains.
	if err != nil && !errors.Is(err, cli.ErrLintIssuesFound) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	os.Exit(cli.ExitCodeFromError(err))
}

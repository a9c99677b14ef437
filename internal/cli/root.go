// Package cli wires the doclint commands onto cobra.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/doclint/internal/logging"
)

// BuildInfo is stamped into the binary through ldflags.
type BuildInfo struct {
	Version, Commit, Date string
}

const rootLong = `doclint checks the XML documentation comments of C#, F# and Visual Basic
source files.

It reports inline text that belongs in paragraphs, inconsistent use of block
elements, HTML entities that should be plain characters, and <c> elements that
should be <see langword/>, <paramref/> or <typeparamref/> references. Fixable
issues are rewritten in place with conflict detection, dry-run diffs and
optional backups.`

// NewRootCommand returns the doclint command tree. Subcommands read the
// persistent --config and --color flags by name.
func NewRootCommand(info BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:           "doclint",
		Short:         "A self-fixing linter for .NET XML documentation comments",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if on, _ := cmd.Flags().GetBool("debug"); on {
				logging.SetLevel("debug")
			}
		},
	}

	flags := root.PersistentFlags()
	flags.Bool("debug", false, "enable debug logging")
	flags.String("config", "", "path to config file")
	flags.String("color", "auto", "colorize output: auto, always, never")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExitCode(ExitInvalidUsage, err)
	})
	root.AddCommand(
		newLintCommand(info),
		newRulesCommand(),
		newInitCommand(),
		newVersionCommand(info),
	)
	return root
}

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/doclint/internal/logging"
	"github.com/yaklabco/doclint/pkg/config"
)

//nolint:gochecknoglobals // Read-only lookup table.
var initDefaultPaths = map[string]string{
	config.TemplateYAML: ".doclint.yml",
	config.TemplateTOML: ".doclint.toml",
}

type initFlags struct {
	force, full    bool
	format, output string
}

func newInitCommand() *cobra.Command {
	var flags initFlags

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new doclint configuration file",
		Long: `Write a starter configuration to .doclint.yml in the current directory.

Examples:
  doclint init                      Minimal .doclint.yml
  doclint init --full               Every rule and option, documented
  doclint init --format toml        .doclint.toml instead
  doclint init --output custom.yml  Custom destination`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return flags.run(cmd)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing file")
	f.BoolVar(&flags.full, "full", false, "Document every rule and option")
	f.StringVar(&flags.format, "format", config.TemplateYAML, "Output format: yaml or toml")
	f.StringVarP(&flags.output, "output", "o", "", "Output path (default .doclint.yml or .doclint.toml)")
	return cmd
}

func (f initFlags) run(cmd *cobra.Command) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	path, ok := initDefaultPaths[f.format]
	if !ok {
		return withExitCode(ExitInvalidUsage,
			fmt.Errorf("invalid format %q: must be yaml or toml", f.format))
	}
	if f.output != "" {
		path = f.output
	}

	switch _, err := os.Stat(path); {
	case err == nil && !f.force:
		return fmt.Errorf("file %q already exists; use --force to overwrite", path)
	case err == nil:
		logger.Warn("overwriting existing file", logging.FieldPath, path)
	case !errors.Is(err, fs.ErrNotExist):
		return withExitCode(ExitIOError, fmt.Errorf("stat %s: %w", path, err))
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: f.full, Format: f.format})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil { //nolint:gosec // Config files are meant to be shared.
		return withExitCode(ExitIOError, fmt.Errorf("write file: %w", err))
	}

	logger.Info("created configuration file", logging.FieldPath, path)
	logger.Info("run 'doclint rules' to list the available rules")
	return nil
}

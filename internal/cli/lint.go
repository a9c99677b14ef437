package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/doclint/internal/configloader"
	"github.com/yaklabco/doclint/internal/logging"
	"github.com/yaklabco/doclint/pkg/cache"
	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/langdetect"
	"github.com/yaklabco/doclint/pkg/lint"
	_ "github.com/yaklabco/doclint/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/doclint/pkg/reporter"
	"github.com/yaklabco/doclint/pkg/runner"
	"github.com/yaklabco/doclint/pkg/source"
)

type lintFlags struct {
	format         string
	language       string
	ruleFormat     string
	ignore         []string
	include        []string
	enable         []string
	disable        []string
	fixRules       []string
	cache          bool
	cacheDir       string
	strict         bool
	noContext      bool
	compact        bool
	showRules      bool
	followSymlinks bool
}

func newLintCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint XML documentation comments",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags, info)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Lint the XML documentation comments of .NET source files.

By default, lints every .cs, .csx, .fs, .fsi, .fsx and .vb file in the current
directory and subdirectories. Specify paths to lint specific files or directories.

Examples:
  doclint lint                       # Lint current directory
  doclint lint src/                  # Lint src directory
  doclint lint Widget.cs             # Lint single file
  doclint lint --fix                 # Lint and auto-fix issues
  doclint lint --fix --dry-run       # Show fixes as a diff without applying
  doclint lint --format sarif        # Output SARIF for code scanning
  doclint lint --cache               # Reuse results for unchanged files
  doclint lint --strict              # Treat warnings as errors`

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags, info BuildInfo) error {
	logger := logging.Default()
	started := time.Now()

	// Only set values that were explicitly provided via CLI flags.
	changed := cmd.Flags().Changed
	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	if changed("language") {
		cfg.Language = flags.language
	}
	cfg.Ignore = flags.ignore
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.FixRules = flags.fixRules
	cfg.Cache.Enabled = flags.cache
	cfg.Cache.Dir = flags.cacheDir

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	// The explicit config path is the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	})
	if err != nil {
		return withExitCode(ExitConfigError, errors.Join(errors.New("failed to load configuration"), err))
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldLanguage, finalCfg.Language,
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid format: %w", err))
	}

	parser := source.NewParser()
	if finalCfg.Language != "" {
		lang, ok := langdetect.Lookup(finalCfg.Language)
		if !ok {
			return withExitCode(ExitInvalidUsage, fmt.Errorf("unknown language %q", finalCfg.Language))
		}
		parser.Language = &lang
	}

	lintRunner := runner.New(lint.NewPipeline(lint.NewEngine(parser, lint.DefaultRegistry)))

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     finalCfg.Extensions,
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   finalCfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           finalCfg.Jobs,
		Config:         finalCfg,
		Cache:          openCache(logger, finalCfg, info),
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return withExitCode(ExitIOError, errors.Join(errors.New("lint run failed"), err))
	}

	for _, runErr := range result.Errors {
		logger.Warn("cache update failed", logging.FieldError, runErr)
	}

	logger.Debug("lint run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldCacheHits, result.Stats.CacheHits,
		logging.FieldDuration, time.Since(started),
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		ShowRules:   flags.showRules,
		GroupByFile: true,
		Compact:     flags.compact,
		RuleFormat:  finalCfg.RuleFormat,
		WorkingDir:  workDir,
		ToolVersion: info.Version,
		Rules:       ruleInfos(lint.DefaultRegistry),
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return withExitCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	if exitCode := ExitCodeFromResult(result, flags.strict); exitCode != ExitSuccess {
		return withExitCode(exitCode, ErrLintIssuesFound)
	}

	return nil
}

// openCache opens the result cache when enabled. Failures disable caching
// for the run instead of failing it.
func openCache(logger *log.Logger, cfg *config.Config, info BuildInfo) *cache.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}

	c, err := cache.Open(cache.Options{
		Dir:         cfg.Cache.Dir,
		Fingerprint: cfg.Fingerprint(),
		Version:     info.Version,
	})
	if err != nil {
		logger.Warn("cache disabled", logging.FieldError, err)
		return nil
	}

	logger.Debug("cache enabled", logging.FieldCacheDir, c.Dir())
	return c
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "automatically fix issues")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, diff")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only lint files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit auto-fix to specific rules")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().StringVar(&flags.language, "language", "",
		`force the source language: "C#", "F#" or "Visual Basic .NET" (default: detect per file)`)
	cmd.Flags().BoolVar(&flags.cache, "cache", false, "reuse results for unchanged files")
	cmd.Flags().StringVar(&flags.cacheDir, "cache-dir", "", "cache directory (default: user cache dir)")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.showRules, "show-rules", false, "append issue counts per rule to text output")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
}

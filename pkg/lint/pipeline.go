package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/fix"
	"github.com/yaklabco/doclint/pkg/fsutil"
)

// DefaultMaxFixPasses bounds the lint-fix loop. Rules whose fixes keep
// producing new findings are cut off here.
const DefaultMaxFixPasses = 10

// Sentinel errors returned by the pipeline. Match them with errors.Is.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
	ErrWriteFailure     = errors.New("write failure")
)

// IsPipelineError reports whether err carries one of the pipeline sentinels.
func IsPipelineError(err error) bool {
	for _, sentinel := range []error{ErrFileNotFound, ErrPermissionDenied, ErrParseFailure, ErrWriteFailure} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// PipelineResult is the outcome of one file. The embedded FileResult is the
// last lint pass, so after a successful fix it holds only what remains.
type PipelineResult struct {
	*FileResult

	Path         string
	OriginalInfo *fsutil.FileInfo

	// Modified reports that at least one edit was applied in memory.
	Modified        bool
	ModifiedContent []byte

	// Diff is set in dry-run mode when the content changed.
	Diff *fix.Diff

	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool

	FixPasses         int
	TotalEditsApplied int
}

// Summary describes the result in a few words.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	}
	return "ok"
}

// PipelineOptions controls fixing and writing.
type PipelineOptions struct {
	Fix    bool
	DryRun bool
	Backup fsutil.BackupConfig

	// StrictRaceDetection compares content hashes before writing, not only
	// size and modification time.
	StrictRaceDetection bool

	// MaxFixPasses of 0 means DefaultMaxFixPasses.
	MaxFixPasses int
}

// DefaultPipelineOptions lints without fixing, with sidecar backups and
// strict race detection for when fixing is turned on.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// BackupConfigFromConfig maps the backups section and --no-backups.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig derives pipeline options from a resolved config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := DefaultPipelineOptions()
	if cfg == nil {
		return opts
	}
	opts.Fix = cfg.Fix
	opts.DryRun = cfg.DryRun
	opts.Backup = BackupConfigFromConfig(cfg)
	return opts
}

// Pipeline lints one file at a time and, when fixing, writes the result back
// safely.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline returns a pipeline over engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads path, lints it and applies fixes. A fixed file is only
// written when it is unchanged on disk since it was read; otherwise the
// result is marked skipped. Dry runs never write.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, classifyReadError(err)
	}

	result, err := p.process(ctx, path, content, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if result.Modified && !opts.DryRun {
		if err := p.write(ctx, result, opts); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ProcessContent lints in-memory content. Fixes are applied to the returned
// content only.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	return p.process(ctx, path, content, cfg, opts)
}

func (p *Pipeline) process(
	ctx context.Context,
	path string,
	original []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	passes := opts.MaxFixPasses
	if passes <= 0 {
		passes = DefaultMaxFixPasses
	}

	result := &PipelineResult{Path: path}
	content := original
	for pass := 0; pass < passes; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		fr, err := p.Engine.LintFile(ctx, path, content, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		result.FileResult = fr

		if !opts.Fix || len(fr.Edits) == 0 {
			break
		}
		content = fix.ApplyEdits(content, fr.Edits)
		result.FixPasses++
		result.TotalEditsApplied += len(fr.Edits)
		result.Modified = true
	}

	if result.Modified {
		result.ModifiedContent = content
		if opts.DryRun {
			result.Diff = fix.GenerateDiff(path, original, content)
		}
	}
	return result, nil
}

// write stores result.ModifiedContent unless the file changed underneath us.
func (p *Pipeline) write(ctx context.Context, result *PipelineResult, opts PipelineOptions) error {
	info := result.OriginalInfo

	changed, err := fsutil.CheckModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, result.Path, opts.Backup)
		if err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, result.Path, result.ModifiedContent, info.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	return nil
}

func classifyReadError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

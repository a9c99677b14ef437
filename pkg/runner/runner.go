package runner

import (
	"context"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/doclint/internal/logging"
	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/fsutil"
	"github.com/yaklabco/doclint/pkg/lint"
	"github.com/yaklabco/doclint/pkg/source"
)

// Runner orchestrates multi-file linting using a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently, at
// most opts.Jobs at a time. Outcomes are returned in discovery order. A file
// that fails does not stop the others; only cancellation ends the run early.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)
	useCache := opts.Cache != nil && !pipelineOpts.Fix

	outcomes := make([]FileOutcome, len(files))
	cacheErrs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			if useCache {
				outcomes[i], cacheErrs[i] = r.processCached(gctx, path, opts, pipelineOpts)
			} else {
				outcomes[i] = r.process(gctx, path, opts.Config, pipelineOpts)
			}
			return nil
		})
	}
	_ = g.Wait()

	logger := logging.FromContext(ctx)
	for i, outcome := range outcomes {
		if outcome.Path == "" {
			// Not started before cancellation.
			continue
		}
		logOutcome(logger, outcome)
		result.accumulate(outcome)
		if cacheErrs[i] != nil {
			result.Errors = append(result.Errors, cacheErrs[i])
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) process(ctx context.Context, path string, cfg *config.Config, opts lint.PipelineOptions) FileOutcome {
	outcome := FileOutcome{Path: path}
	pr, err := r.Pipeline.ProcessFile(ctx, path, cfg, opts)
	if err != nil {
		outcome.Error = err
	} else {
		outcome.Result = pr
	}
	return outcome
}

// processCached serves a lint-only result from the cache, or lints the file
// and stores the result. The returned error only reports cache failures.
func (r *Runner) processCached(
	ctx context.Context,
	path string,
	opts Options,
	pipelineOpts lint.PipelineOptions,
) (FileOutcome, error) {
	outcome := FileOutcome{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return r.process(ctx, path, opts.Config, pipelineOpts), nil
	}

	diags, hit, cacheErr := opts.Cache.Get(path, content)
	if hit {
		outcome.Cached = true
		outcome.Result = &lint.PipelineResult{
			Path:         path,
			OriginalInfo: info,
			FileResult: &lint.FileResult{
				Snapshot:    source.NewSnapshot(path, content),
				Diagnostics: diags,
				RuleErrors:  map[string]error{},
			},
		}
		return outcome, nil
	}

	pr, err := r.Pipeline.ProcessContent(ctx, path, content, opts.Config, pipelineOpts)
	if err != nil {
		outcome.Error = err
		return outcome, cacheErr
	}
	pr.OriginalInfo = info
	outcome.Result = pr

	// Results with rule failures are not stable and are never stored.
	if len(pr.RuleErrors) == 0 {
		if err := opts.Cache.Put(ctx, path, content, pr.Diagnostics); err != nil {
			cacheErr = err
		}
	}
	return outcome, cacheErr
}

func logOutcome(logger *log.Logger, outcome FileOutcome) {
	if outcome.Error != nil {
		logger.Debug("file failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
		return
	}
	if outcome.Result == nil || outcome.Result.FileResult == nil {
		return
	}
	logger.Debug("file linted",
		logging.FieldPath, outcome.Path,
		logging.FieldDiagnostics, len(outcome.Result.Diagnostics),
		logging.FieldCached, outcome.Cached,
	)
}

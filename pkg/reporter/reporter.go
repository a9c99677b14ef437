// Package reporter renders a runner.Result as text, JSON, SARIF or a diff.
package reporter

import (
	"cmp"
	"context"
	"fmt"

	"github.com/yaklabco/doclint/pkg/runner"
)

// Reporter writes a run result and returns how many issues it reported.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

var (
	_ Reporter = (*TextReporter)(nil)
	_ Reporter = (*JSONReporter)(nil)
	_ Reporter = (*SARIFReporter)(nil)
	_ Reporter = (*DiffReporter)(nil)
)

// New returns the reporter for opts.Format, filling unset writers and the
// tool version from DefaultOptions. An empty format means text.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}
	opts.ToolVersion = cmp.Or(opts.ToolVersion, defaults.ToolVersion)

	switch format := cmp.Or(opts.Format, FormatText); format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

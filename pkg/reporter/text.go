package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/doclint/internal/ui/pretty"
	"github.com/yaklabco/doclint/pkg/analysis"
	"github.com/yaklabco/doclint/pkg/lint"
	"github.com/yaklabco/doclint/pkg/runner"
	"github.com/yaklabco/doclint/pkg/source"
)

// sourceIndent is the width consumed by the source context indent.
const sourceIndent = 8

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
	width  int
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	width := pretty.TerminalWidth(opts.Writer)
	if width > sourceIndent {
		width -= sourceIndent
	}
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
		width:  width,
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report: %w", err)
		}
		total += r.reportFile(file)
	}

	if r.opts.ShowRules {
		report := analysis.Analyze(result, r.opts.analysisOptions())
		fmt.Fprint(r.bw, r.styles.FormatRuleBreakdown(report.ByRule))
	}

	if r.opts.ShowSummary {
		if r.opts.ShowRules || !r.opts.GroupByFile {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes one file's diagnostics and returns how many were written.
func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	displayPath := analysis.DisplayPath(file.Path, r.opts.WorkingDir)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(displayPath),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	if file.Result == nil {
		return 0
	}
	if file.Result.Skipped {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(displayPath),
			r.styles.Dim.Render("skipped: "+file.Result.SkipReason),
		)
		return 0
	}
	if file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
		return 0
	}

	diagnostics := file.Result.Diagnostics
	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(displayPath, len(diagnostics)))
	}

	for i := range diagnostics {
		diag := diagnostics[i]
		diag.FilePath = displayPath
		fmt.Fprint(r.bw, r.styles.FormatDiagnosticWithFormat(
			&diag, r.opts.ShowContext, r.sourceLine(file.Result.Snapshot, &diag), r.opts.RuleFormat))
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw)
	}

	return len(diagnostics)
}

// sourceLine returns the line a diagnostic starts on, clipped to the
// terminal width when the caret still fits.
func (r *TextReporter) sourceLine(snapshot *source.Snapshot, diag *lint.Diagnostic) string {
	if !r.opts.ShowContext || snapshot == nil {
		return ""
	}
	content := snapshot.LineContent(diag.StartLine)
	if content == nil {
		return ""
	}
	line := string(content)
	if r.width > 0 && diag.StartColumn < r.width {
		line = pretty.TruncateLine(line, r.width)
	}
	return line
}

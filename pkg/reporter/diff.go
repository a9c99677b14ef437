package reporter

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/doclint/internal/ui/pretty"
	"github.com/yaklabco/doclint/pkg/analysis"
	"github.com/yaklabco/doclint/pkg/fix"
	"github.com/yaklabco/doclint/pkg/runner"
)

// DiffReporter prints the pending fixes of a dry run as git-style unified
// diffs, followed by a diffstat line.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewDiffReporter returns a DiffReporter writing to opts.Writer.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// Report prints one diff per changed file and returns the number of files
// with changes. Files that failed are reported inline.
func (r *DiffReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	out := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)

	changed, added, removed := 0, 0, 0
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return changed, err
		}

		if file.Error != nil {
			fmt.Fprintf(out, "%s: %s\n",
				r.styles.FilePath.Render(r.path(file.Path)),
				r.styles.Error.Render("error: "+file.Error.Error()))
			continue
		}
		if file.Result == nil {
			continue
		}
		diff := file.Result.Diff
		if diff == nil || !diff.HasChanges() {
			continue
		}

		changed++
		added += diff.Additions
		removed += diff.Deletions
		r.printDiff(out, diff)
	}

	if changed > 0 && r.opts.ShowSummary {
		fmt.Fprintln(out, r.diffstat(changed, added, removed))
	}

	return changed, out.Flush()
}

func (r *DiffReporter) printDiff(out *bufio.Writer, diff *fix.Diff) {
	path := r.path(diff.Path)

	fmt.Fprintln(out, r.styles.DiffHeader.Render("diff --git a/"+path+" b/"+path))
	fmt.Fprintln(out, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(out, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range diff.Hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount, hunk.ModifiedStart, hunk.ModifiedCount)
		fmt.Fprintln(out, r.styles.DiffHunk.Render(header))

		for _, line := range hunk.Lines {
			switch line.Kind {
			case fix.DiffLineAdd:
				fmt.Fprintln(out, r.styles.DiffAdd.Render("+"+line.Content))
			case fix.DiffLineRemove:
				fmt.Fprintln(out, r.styles.DiffRemove.Render("-"+line.Content))
			case fix.DiffLineContext:
				fmt.Fprintln(out, r.styles.DiffContext.Render(" "+line.Content))
			}
		}
	}
	fmt.Fprintln(out)
}

// diffstat renders e.g. "2 files changed, 3 insertions(+), 1 deletion(-)".
func (r *DiffReporter) diffstat(files, added, removed int) string {
	count := func(n int, one, many string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, one)
		}
		return fmt.Sprintf("%d %s", n, many)
	}

	parts := []string{count(files, "file", "files") + " changed"}
	if added > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(count(added, "insertion", "insertions")+"(+)"))
	}
	if removed > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(count(removed, "deletion", "deletions")+"(-)"))
	}
	return strings.Join(parts, ", ")
}

// path is relative to WorkingDir when set, otherwise to the process
// directory. Paths far outside the process directory collapse to their base
// name.
func (r *DiffReporter) path(p string) string {
	if r.opts.WorkingDir != "" {
		return filepath.ToSlash(analysis.DisplayPath(p, r.opts.WorkingDir))
	}
	if !filepath.IsAbs(p) {
		return filepath.ToSlash(p)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Base(p)
	}
	rel, err := filepath.Rel(cwd, p)
	if err != nil || strings.Count(rel, "..") > 2 {
		return filepath.Base(p)
	}
	return filepath.ToSlash(rel)
}

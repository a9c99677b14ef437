package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/doclint/pkg/analysis"
	"github.com/yaklabco/doclint/pkg/runner"
)

const (
	summaryDividerWidth = 40
	summaryLabelWidth   = 21
)

// plural picks singular when n is 1.
func plural(n int, singular, many string) string {
	if n == 1 {
		return singular
	}
	return many
}

// severityCounts renders the non-zero per-severity counts, most severe first.
func (s *Styles) severityCounts(bySeverity map[string]int) []string {
	var out []string
	for _, sev := range []struct {
		key, label string
		style      lipgloss.Style
	}{
		{"error", "errors", s.Error},
		{"warning", "warnings", s.Warning},
		{"info", "info", s.Info},
	} {
		if n := bySeverity[sev.key]; n > 0 {
			out = append(out, sev.style.Render(fmt.Sprintf("%d %s", n, sev.label)))
		}
	}
	return out
}

// FormatSummaryOneLine condenses a run into one line, e.g.
// "12 issues (8 errors, 4 warnings) in 3 files, 6 fixable, 2 cached".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.DiagnosticsTotal == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesProcessed)))
	} else {
		head := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
		if counts := s.severityCounts(stats.DiagnosticsBySeverity); len(counts) > 0 {
			head += " (" + strings.Join(counts, ", ") + ")"
		}
		parts = append(parts, head,
			fmt.Sprintf("in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, "file", "files")))

		if stats.DiagnosticsFixable > 0 {
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
		}
	}

	if stats.DiagnosticsFixed > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixed in %d %s",
			stats.DiagnosticsFixed, stats.FilesModified, plural(stats.FilesModified, "file", "files"))))
	}
	if stats.CacheHits > 0 {
		parts = append(parts, s.Cached.Render(fmt.Sprintf("%d cached", stats.CacheHits)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// summaryRow writes "label: value" with values aligned in one column.
func summaryRow(b *strings.Builder, indent int, label string, value int, style lipgloss.Style) {
	fmt.Fprintf(b, "%s%-*s%s\n",
		strings.Repeat(" ", indent), summaryLabelWidth-indent, label+":", style.Render(strconv.Itoa(value)))
}

// FormatSummary renders the verbose multi-line summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	b.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	summaryRow(&b, 2, "Files checked", stats.FilesProcessed, s.SummaryValue)
	optional := []struct {
		label string
		value int
		style lipgloss.Style
	}{
		{"Files with issues", stats.FilesWithIssues, s.Failure},
		{"Files modified", stats.FilesModified, s.Success},
		{"Files errored", stats.FilesErrored, s.Failure},
		{"Served from cache", stats.CacheHits, s.Cached},
	}
	for _, row := range optional {
		if row.value > 0 {
			summaryRow(&b, 2, row.label, row.value, row.style)
		}
	}

	b.WriteString("\n")
	summaryRow(&b, 2, "Total issues", stats.DiagnosticsTotal, s.SummaryValue)

	errs := stats.DiagnosticsBySeverity["error"]
	warns := stats.DiagnosticsBySeverity["warning"]
	infos := stats.DiagnosticsBySeverity["info"]
	if errs > 0 {
		summaryRow(&b, 4, "Errors", errs, s.Error)
	}
	if warns > 0 {
		summaryRow(&b, 4, "Warnings", warns, s.Warning)
	}
	if infos > 0 {
		summaryRow(&b, 4, "Info", infos, s.Info)
	}
	b.WriteString("\n")

	// Info-level findings do not fail a run.
	switch {
	case errs > 0:
		b.WriteString(s.Failure.Render("Lint failed with errors"))
	case warns > 0:
		b.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		b.WriteString(s.Success.Render("Lint passed"))
	}
	b.WriteString("\n")

	return b.String()
}

// FormatRuleBreakdown lists the per-rule issue counts, or "" when there are
// none.
func (s *Styles) FormatRuleBreakdown(rules []analysis.RuleAnalysis) string {
	if len(rules) == 0 {
		return ""
	}

	width := 0
	for _, rule := range rules {
		width = max(width, len(rule.Rule))
	}

	var b strings.Builder
	b.WriteString("\n" + s.SummaryTitle.Render("Issues by rule") + "\n")
	for _, rule := range rules {
		fmt.Fprintf(&b, "  %-*s  %s", width, rule.Rule, s.SummaryValue.Render(strconv.Itoa(rule.Issues)))
		if rule.Fixable {
			b.WriteString("  " + s.Dim.Render("(fixable)"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/lint"
)

// contextIndent aligns source context under the diagnostic line.
const contextIndent = "        "

// FormatDiagnostic formats a single diagnostic for terminal output using rule IDs.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, showContext bool, sourceLine string) string {
	return s.FormatDiagnosticWithFormat(diag, showContext, sourceLine, config.RuleFormatID)
}

// FormatDiagnosticWithFormat formats a diagnostic with configurable rule identifier format.
func (s *Styles) FormatDiagnosticWithFormat(
	diag *lint.Diagnostic,
	showContext bool,
	sourceLine string,
	ruleFormat config.RuleFormat,
) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
	)

	ruleIdentifier := config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+ruleIdentifier+")"),
	)

	if showContext && sourceLine != "" {
		width := 0
		if diag.EndLine == diag.StartLine && diag.EndColumn > diag.StartColumn {
			width = diag.EndColumn - diag.StartColumn
		}
		builder.WriteString(s.FormatSourceSpan(sourceLine, diag.StartColumn, width))
	}

	if diag.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret under a 1-based byte column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	return s.FormatSourceSpan(line, column, 0)
}

// FormatSourceSpan formats the source line and underlines byteLen bytes
// starting at the 1-based byte column. A zero length draws a single caret.
// Wide runes take two cells and tabs are kept so the marker lines up.
func (s *Styles) FormatSourceSpan(line string, column, byteLen int) string {
	var builder strings.Builder

	builder.WriteString(contextIndent + s.SourceLine.Render(line) + "\n")

	if column <= 0 || column-1 > len(line) {
		return builder.String()
	}

	prefix := line[:column-1]
	marker := "^"
	if byteLen > 1 {
		end := min(column-1+byteLen, len(line))
		if cells := runewidth.StringWidth(line[column-1 : end]); cells > 1 {
			marker = "^" + strings.Repeat("~", cells-1)
		}
	}

	builder.WriteString(contextIndent + padding(prefix) + s.Caret.Render(marker) + "\n")
	return builder.String()
}

// padding returns blank cells covering the display width of prefix.
func padding(prefix string) string {
	var builder strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			builder.WriteByte('\t')
			continue
		}
		builder.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return builder.String()
}

// TruncateLine shortens line to at most width display cells. A width of
// zero or less returns line unchanged.
func TruncateLine(line string, width int) string {
	if width <= 0 {
		return line
	}
	return runewidth.Truncate(line, width, "…")
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

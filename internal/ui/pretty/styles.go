// Package pretty renders diagnostics, diffs and summaries for terminals
// using lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ANSI 256 palette indexes.
const (
	colorRed     = "9"
	colorGreen   = "10"
	colorYellow  = "11"
	colorBlue    = "12"
	colorMagenta = "13"
	colorCyan    = "14"
	colorSilver  = "7"
	colorGray    = "8"
)

// Styles holds one renderer per visual element of the text and diff output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style
	Cached       lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns the styles for colored output, or plain pass-through
// styles when color is false.
func NewStyles(color bool) *Styles {
	plain := lipgloss.NewStyle()

	fg := func(c string) lipgloss.Style {
		if !color {
			return plain
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	strong := func(s lipgloss.Style) lipgloss.Style {
		if !color {
			return s
		}
		return s.Bold(true)
	}

	suggestion := fg(colorGreen)
	if color {
		suggestion = suggestion.Italic(true)
	}

	return &Styles{
		Error:   strong(fg(colorRed)),
		Warning: strong(fg(colorYellow)),
		Info:    strong(fg(colorBlue)),

		FilePath:   strong(plain),
		Location:   fg(colorGray),
		RuleID:     fg(colorGray),
		Message:    plain,
		Suggestion: suggestion,
		SourceLine: fg(colorSilver),
		Caret:      fg(colorRed),

		DiffHeader:  strong(plain),
		DiffHunk:    fg(colorCyan),
		DiffAdd:     fg(colorGreen),
		DiffRemove:  fg(colorRed),
		DiffContext: fg(colorGray),

		SummaryTitle: strong(plain),
		SummaryValue: plain,
		Success:      strong(fg(colorGreen)),
		Failure:      strong(fg(colorRed)),
		Cached:       fg(colorMagenta),

		Dim:  fg(colorGray),
		Bold: strong(plain),
	}
}

// IsColorEnabled resolves a --color mode ("auto", "always" or "never") for
// writer. Anything other than always or never is treated as auto, which
// colors only terminals and honors NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	if mode == "always" {
		return true
	}
	if mode == "never" || os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TerminalWidth reports the width of the terminal behind writer, or 0.
func TerminalWidth(writer io.Writer) int {
	f, ok := writer.(*os.File)
	if !ok {
		return 0
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	if width, _, err := term.GetSize(fd); err == nil {
		return width
	}
	return 0
}

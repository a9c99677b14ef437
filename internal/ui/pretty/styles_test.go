package pretty_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/doclint/internal/ui/pretty"
)

func TestNewStyles_PlainIsPassThrough(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for name, style := range map[string]lipgloss.Style{
		"bold":    styles.Bold,
		"error":   styles.Error,
		"diffAdd": styles.DiffAdd,
		"caret":   styles.Caret,
		"cached":  styles.Cached,
	} {
		assert.Equal(t, "DOC104", style.Render("DOC104"), name)
	}
}

func TestNewStyles_ColorRendersEveryElement(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	all := []lipgloss.Style{
		styles.Error, styles.Warning, styles.Info,
		styles.FilePath, styles.Location, styles.RuleID, styles.Message,
		styles.Suggestion, styles.SourceLine, styles.Caret,
		styles.DiffHeader, styles.DiffHunk, styles.DiffAdd, styles.DiffRemove, styles.DiffContext,
		styles.SummaryTitle, styles.SummaryValue, styles.Success, styles.Failure, styles.Cached,
		styles.Dim, styles.Bold,
	}
	for i, style := range all {
		assert.Contains(t, style.Render("x"), "x", "style %d", i)
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	tests := []struct {
		mode   string
		writer io.Writer
		want   bool
	}{
		{"always", &buf, true},
		{"never", os.Stdout, false},
		{"auto", &buf, false},
		{"", &buf, false},
		{"sometimes", &buf, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, tt.writer), "mode %q", tt.mode)
	}
}

func TestIsColorEnabled_NoColorOverridesAuto(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout))
}

func TestTerminalWidth_NonTerminal(t *testing.T) {
	t.Parallel()

	assert.Zero(t, pretty.TerminalWidth(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	assert.Zero(t, pretty.TerminalWidth(f))
}

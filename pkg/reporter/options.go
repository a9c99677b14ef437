package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/doclint/pkg/analysis"
	"github.com/yaklabco/doclint/pkg/config"
)

const bufWriterSize = 64 << 10

// Options is shared by every reporter. Fields a format has no use for are
// ignored.
type Options struct {
	Writer      io.Writer // findings
	ErrorWriter io.Writer // file errors and warnings
	Format      Format
	Color       string // auto, always or never

	ShowContext bool // echo the offending source line
	ShowSummary bool
	ShowRules   bool // per-rule breakdown after text output

	// GroupByFile prints one header per file instead of repeating the path
	// on every diagnostic line.
	GroupByFile bool

	// Compact disables indentation of JSON and SARIF documents.
	Compact bool

	RuleFormat config.RuleFormat

	// WorkingDir makes reported paths relative. Empty keeps them as given.
	WorkingDir string

	ToolVersion string

	// Rules become SARIF driver rules. Without them the driver lists only
	// the rules that produced results.
	Rules []config.RuleInfo
}

// DefaultOptions is grouped, colored-when-possible text on stdout.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		GroupByFile: true,
		RuleFormat:  config.RuleFormatName,
		ToolVersion: "dev",
	}
}

func (o Options) analysisOptions() analysis.Options {
	return analysis.Options{RuleFormat: o.RuleFormat, WorkingDir: o.WorkingDir}
}

package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/doclint/pkg/analysis"
	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/lint"
	"github.com/yaklabco/doclint/pkg/runner"
)

// JSONOutput is the document written by --format json. Version is the
// schema version of the document, not of doclint.
type JSONOutput struct {
	Version     string                  `json:"version"`
	ToolVersion string                  `json:"toolVersion"`
	Files       []JSONFileResult        `json:"files"`
	Rules       []analysis.RuleAnalysis `json:"rules"`
	Summary     analysis.Totals         `json:"summary"`
}

// JSONFileResult holds one file. Skipped carries the skip reason.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Modified    bool             `json:"modified,omitempty"`
	Cached      bool             `json:"cached,omitempty"`
	Skipped     string           `json:"skipped,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic carries both rule identifiers plus Rule, which follows
// --rule-format.
type JSONDiagnostic struct {
	RuleID      string    `json:"ruleId"`
	RuleName    string    `json:"ruleName"`
	Rule        string    `json:"rule"`
	Severity    string    `json:"severity"`
	Message     string    `json:"message"`
	StartLine   int       `json:"startLine"`
	StartColumn int       `json:"startColumn"`
	EndLine     int       `json:"endLine"`
	EndColumn   int       `json:"endColumn"`
	Suggestion  string    `json:"suggestion,omitempty"`
	Fixable     bool      `json:"fixable"`
	Fixes       []JSONFix `json:"fixes,omitempty"`
}

// JSONFix is a byte-offset replacement.
type JSONFix struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// JSONReporter writes one JSON document per run.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter returns a JSONReporter writing to opts.Writer.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// Report encodes result and returns the issue count. A nil result yields an
// empty document.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	doc := r.document(result)

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	enc := json.NewEncoder(bw)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return doc.Summary.Issues, bw.Flush()
}

func (r *JSONReporter) document(result *runner.Result) *JSONOutput {
	report := analysis.Analyze(result, r.opts.analysisOptions())
	doc := &JSONOutput{
		Version:     analysis.ReportVersion,
		ToolVersion: r.opts.ToolVersion,
		Files:       []JSONFileResult{},
		Rules:       report.ByRule,
		Summary:     report.Totals,
	}
	if result != nil {
		for _, outcome := range result.Files {
			doc.Files = append(doc.Files, r.file(outcome))
		}
	}
	return doc
}

func (r *JSONReporter) file(outcome runner.FileOutcome) JSONFileResult {
	out := JSONFileResult{
		Path:        analysis.DisplayPath(outcome.Path, r.opts.WorkingDir),
		Diagnostics: []JSONDiagnostic{},
		Cached:      outcome.Cached,
	}

	res := outcome.Result
	switch {
	case outcome.Error != nil:
		out.Error = outcome.Error.Error()
		return out
	case res == nil:
		return out
	}

	out.Modified = res.Written
	if res.Skipped {
		out.Skipped = res.SkipReason
	}
	if res.FileResult != nil {
		for i := range res.Diagnostics {
			out.Diagnostics = append(out.Diagnostics, r.diagnostic(&res.Diagnostics[i]))
		}
	}
	return out
}

func (r *JSONReporter) diagnostic(d *lint.Diagnostic) JSONDiagnostic {
	severity := d.Severity
	if severity == "" {
		severity = config.SeverityWarning
	}

	out := JSONDiagnostic{
		RuleID:      d.RuleID,
		RuleName:    d.RuleName,
		Rule:        config.FormatRuleID(r.opts.RuleFormat, d.RuleID, d.RuleName),
		Severity:    string(severity),
		Message:     d.Message,
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
		Suggestion:  d.Suggestion,
		Fixable:     d.HasFix(),
	}
	for _, e := range d.FixEdits {
		out.Fixes = append(out.Fixes, JSONFix{StartOffset: e.StartOffset, EndOffset: e.EndOffset, NewText: e.NewText})
	}
	return out
}

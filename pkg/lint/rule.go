// Package lint runs documentation rules over source snapshots and collects
// their diagnostics and fixes.
package lint

import (
	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/fix"
	"github.com/yaklabco/doclint/pkg/source"
)

// Diagnostic is one finding. Offsets are bytes into the file; lines and
// columns are 1-based and EndColumn is exclusive.
type Diagnostic struct {
	RuleID   string
	RuleName string
	Message  string
	Severity config.Severity
	FilePath string

	StartOffset int
	EndOffset   int
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	// Suggestion tells the reader how to resolve the finding.
	Suggestion string

	// FixEdits are only set by fixable rules.
	FixEdits []fix.TextEdit
}

// HasFix reports whether d carries edits.
func (d *Diagnostic) HasFix() bool {
	return len(d.FixEdits) > 0
}

// SourcePosition returns the line/column range of d.
func (d *Diagnostic) SourcePosition() source.SourcePosition {
	return source.SourcePosition{
		StartLine: d.StartLine, StartColumn: d.StartColumn,
		EndLine: d.EndLine, EndColumn: d.EndColumn,
	}
}

// Rule is a single documentation check.
//
// Apply returns one diagnostic per violation and an error only when the rule
// itself failed. Only rules with CanFix may attach edits. Long-running rules
// should check ctx.Cancelled.
type Rule interface {
	ID() string // e.g. "DOC104"
	Name() string
	Description() string
	Tags() []string
	CanFix() bool
	DefaultEnabled() bool
	DefaultSeverity() config.Severity
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}

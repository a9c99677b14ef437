package lint

import (
	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/fix"
	"github.com/yaklabco/doclint/pkg/source"
	"github.com/yaklabco/doclint/pkg/xmldoc"
)

// DiagnosticBuilder assembles a Diagnostic fluently:
//
//	diag := ctx.Diagnostic(rule, span, "use <see langword>").
//		WithSuggestion(`replace with <see langword="null"/>`).
//		WithEdit(edit).
//		Build()
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts a diagnostic covering span of file. Line and column
// fields stay zero when file is nil.
func NewDiagnostic(ruleID string, file *source.Snapshot, span xmldoc.Span, message string) *DiagnosticBuilder {
	d := Diagnostic{
		RuleID:      ruleID,
		Message:     message,
		StartOffset: span.Start,
		EndOffset:   span.End,
	}
	if file != nil {
		pos := file.Position(span)
		d.FilePath = file.Path
		d.StartLine, d.StartColumn = pos.StartLine, pos.StartColumn
		d.EndLine, d.EndColumn = pos.EndLine, pos.EndColumn
	}
	return &DiagnosticBuilder{diag: d}
}

func (b *DiagnosticBuilder) WithRuleName(name string) *DiagnosticBuilder {
	b.diag.RuleName = name
	return b
}

// WithSeverity is normally left to the engine, which overwrites it with the
// configured severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithFix appends every edit recorded by builder. A nil builder is a no-op.
func (b *DiagnosticBuilder) WithFix(builder *fix.EditBuilder) *DiagnosticBuilder {
	if builder != nil {
		b.diag.FixEdits = append(b.diag.FixEdits, builder.Edits...)
	}
	return b
}

func (b *DiagnosticBuilder) WithEdit(edit fix.TextEdit) *DiagnosticBuilder {
	b.diag.FixEdits = append(b.diag.FixEdits, edit)
	return b
}

// Build returns a copy of the diagnostic built so far.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}

package source

import "github.com/yaklabco/doclint/pkg/xmldoc"

// SourcePosition is a 1-based line/column range. EndColumn is exclusive.
type SourcePosition struct {
	StartLine, StartColumn int
	EndLine, EndColumn     int
}

func (sp SourcePosition) IsSingleLine() bool { return sp.StartLine == sp.EndLine }

// Position maps span onto lines and columns.
func (s *Snapshot) Position(span xmldoc.Span) SourcePosition {
	var sp SourcePosition
	sp.StartLine, sp.StartColumn = s.LineAt(span.Start)
	sp.EndLine, sp.EndColumn = s.LineAt(span.End)
	return sp
}

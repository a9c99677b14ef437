// Package source provides the file-level view that doclint rules operate on:
// the raw content, a line index, the detected language, and every parsed XML
// documentation comment found in the file.
package source

import (
	"github.com/yaklabco/doclint/pkg/langdetect"
	"github.com/yaklabco/doclint/pkg/xmldoc"
)

// Snapshot is an immutable view of a source file at a specific time.
type Snapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Language is the detected source language.
	Language langdetect.Language

	// Comments are the documentation comments of the file in source order.
	Comments []*xmldoc.Comment
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewSnapshot creates a Snapshot with its line index built. Comments are not
// extracted; use Parser for that.
func NewSnapshot(path string, content []byte) *Snapshot {
	return &Snapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// Text returns the source bytes covered by span, clamped to the content.
func (s *Snapshot) Text(span xmldoc.Span) []byte {
	start := max(span.Start, 0)
	end := min(span.End, len(s.Content))
	if start >= end {
		return nil
	}
	return s.Content[start:end]
}

// Package fix provides text edits, their validation and application, and
// unified diffs of the result.
package fix

import (
	"fmt"

	"github.com/yaklabco/doclint/pkg/xmldoc"
)

// TextEdit replaces the bytes [StartOffset, EndOffset) with NewText.
type TextEdit struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// IsDeletion reports whether the edit removes bytes without inserting any.
func (e TextEdit) IsDeletion() bool {
	return e.NewText == "" && e.EndOffset > e.StartOffset
}

// String formats the edit for logs and test failures.
func (e TextEdit) String() string {
	return fmt.Sprintf("[%d:%d]->%q", e.StartOffset, e.EndOffset, e.NewText)
}

// EditBuilder collects the edits of one diagnostic in the order they are
// added.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{
		Edits: []TextEdit{},
	}
}

// ReplaceRange replaces the bytes [start, end) with text.
func (b *EditBuilder) ReplaceRange(start, end int, text string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     text,
	})
}

// ReplaceSpan replaces the bytes covered by span with text.
func (b *EditBuilder) ReplaceSpan(span xmldoc.Span, text string) {
	b.ReplaceRange(span.Start, span.End, text)
}

// ReplaceNode swaps the source of node for the markup of replacement,
// leaving surrounding whitespace alone.
func (b *EditBuilder) ReplaceNode(node, replacement xmldoc.Node) {
	b.ReplaceSpan(node.Span(), xmldoc.Render(replacement))
}

// Insert adds text at offset without removing anything.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete removes the bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}

// ApplyEdits returns content with edits applied. The edits must be sorted
// and non-overlapping, as returned by Prepare.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	grow := 0
	for _, e := range edits {
		grow += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}
	out := make([]byte, 0, max(len(content)+grow, 0))

	prev := 0
	for _, e := range edits {
		out = append(out, content[prev:e.StartOffset]...)
		out = append(out, e.NewText...)
		prev = e.EndOffset
	}
	return append(out, content[prev:]...)
}

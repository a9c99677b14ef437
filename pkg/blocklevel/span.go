package blocklevel

import (
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/doclint/pkg/xmldoc"
)

// EffectiveStart returns the offset of the first meaningful character of node.
// For text this skips leading whitespace; other nodes start at their span.
func EffectiveStart(node xmldoc.Node) int {
	text, ok := node.(*xmldoc.Text)
	if !ok {
		return node.Span().Start
	}

	for _, tok := range text.Tokens {
		if tok.IsWhitespace() {
			continue
		}
		for i, r := range tok.Text {
			if !unicode.IsSpace(r) {
				return tok.Span.Start + i
			}
		}
	}
	return node.Span().Start
}

// EffectiveEnd returns the offset just past the last meaningful character of
// node. For text this drops trailing whitespace; other nodes end at their span.
func EffectiveEnd(node xmldoc.Node) int {
	text, ok := node.(*xmldoc.Text)
	if !ok {
		return node.Span().End
	}

	for i := len(text.Tokens) - 1; i >= 0; i-- {
		tok := text.Tokens[i]
		if tok.IsWhitespace() {
			continue
		}
		for end := len(tok.Text); end > 0; {
			r, size := utf8.DecodeLastRuneInString(tok.Text[:end])
			if !unicode.IsSpace(r) {
				return tok.Span.Start + end
			}
			end -= size
		}
	}
	return node.Span().End
}

// EffectiveSpan returns the trimmed span of node.
func EffectiveSpan(node xmldoc.Node) xmldoc.Span {
	return xmldoc.Span{Start: EffectiveStart(node), End: EffectiveEnd(node)}
}

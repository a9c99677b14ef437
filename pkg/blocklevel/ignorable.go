package blocklevel

import (
	"fmt"

	"github.com/yaklabco/doclint/pkg/xmldoc"
)

// IgnorableFunc decides whether a node contributes no meaningful content.
// Ignorable nodes are invisible to run detection.
type IgnorableFunc func(node xmldoc.Node) bool

// IsIgnorable is the default emptiness predicate: a nil node, or text made
// only of whitespace tokens.
func IsIgnorable(node xmldoc.Node) bool {
	if node == nil {
		return true
	}
	switch n := node.(type) {
	case *xmldoc.Text:
		for _, tok := range n.Tokens {
			if !tok.IsWhitespace() {
				return false
			}
		}
		return true
	case *xmldoc.Element, *xmldoc.EmptyElement:
		return false
	default:
		panic(fmt.Sprintf("blocklevel: unhandled node type %T", node))
	}
}

// IgnoreEmptyElements extends IsIgnorable to elements whose children are all
// ignorable, such as an empty <para></para> used as a spacer.
func IgnoreEmptyElements(node xmldoc.Node) bool {
	if IsIgnorable(node) {
		return true
	}
	el, ok := node.(*xmldoc.Element)
	if !ok {
		return false
	}
	for _, child := range el.Children {
		if !IgnoreEmptyElements(child) {
			return false
		}
	}
	return true
}

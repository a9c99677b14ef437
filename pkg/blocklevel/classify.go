// Package blocklevel decides which content of a documentation element must be
// wrapped in block-level markup and locates the runs of children that are not.
//
// Everything in this package is a pure function of an immutable node tree and
// is safe for concurrent use.
package blocklevel

import (
	"fmt"

	"github.com/yaklabco/doclint/pkg/xmldoc"
)

// Classification is the block-level category of a single markup node.
type Classification int

const (
	// RequiresWrapping marks inline content that is not allowed directly inside
	// a container requiring block content.
	RequiresWrapping Classification = iota

	// DefiniteBlock marks elements that are always block-level.
	DefiniteBlock

	// PotentialBlock marks elements that may expand to block-level content.
	PotentialBlock

	// Allowed marks block-level HTML, prefixed names and anything the
	// classifier cannot recognize.
	Allowed
)

func (c Classification) String() string {
	switch c {
	case RequiresWrapping:
		return "RequiresWrapping"
	case DefiniteBlock:
		return "DefiniteBlock"
	case PotentialBlock:
		return "PotentialBlock"
	case Allowed:
		return "Allowed"
	default:
		return fmt.Sprintf("Classification(%d)", int(c))
	}
}

// IsBlockLevel reports whether c closes a pending run of inline content.
func (c Classification) IsBlockLevel() bool {
	return c != RequiresWrapping
}

// Element names by category.
const (
	TagCode       = "code"
	TagList       = "list"
	TagNote       = "note"
	TagPara       = "para"
	TagInheritdoc = "inheritdoc"
	TagInclude    = "include"
	TagQuote      = "quote"
	TagToken      = "token"
)

//nolint:gochecknoglobals // Read-only lookup table.
var classByName = map[string]Classification{
	TagCode: DefiniteBlock,
	TagList: DefiniteBlock,
	TagNote: DefiniteBlock,
	TagPara: DefiniteBlock,

	TagInheritdoc: PotentialBlock,
	TagInclude:    PotentialBlock,
	TagQuote:      PotentialBlock,
	TagToken:      PotentialBlock,

	// Block-level HTML.
	"div": Allowed,
	"h1":  Allowed,
	"h2":  Allowed,
	"h3":  Allowed,
	"h4":  Allowed,
	"h5":  Allowed,
	"h6":  Allowed,
	"p":   Allowed,
}

// Classify returns the classification of node from its kind and name alone.
//
// Text is always RequiresWrapping; callers filter ignorable text first.
func Classify(node xmldoc.Node) Classification {
	switch n := node.(type) {
	case *xmldoc.Element:
		return classifyName(n.Name)
	case *xmldoc.EmptyElement:
		return classifyName(n.Name)
	case *xmldoc.Text:
		return RequiresWrapping
	default:
		panic(fmt.Sprintf("blocklevel: unhandled node type %T", node))
	}
}

// IsDefiniteBlock reports whether node is an element that is always block-level.
func IsDefiniteBlock(node xmldoc.Node) bool {
	if node == nil {
		return false
	}
	return Classify(node) == DefiniteBlock
}

func classifyName(name xmldoc.QualifiedName) Classification {
	if name.HasPrefix || name.Missing() {
		return Allowed
	}
	if class, ok := classByName[name.Local]; ok {
		return class
	}
	return RequiresWrapping
}

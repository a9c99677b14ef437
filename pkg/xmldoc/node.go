// Package xmldoc provides a lossless, offset-preserving model of XML
// documentation comments together with a tolerant parser for them.
//
// A documentation comment is represented as an ordered sequence of nodes. The
// node set is closed: every Node is exactly one of *Element, *EmptyElement or
// *Text. Consumers switch on the concrete type and panic on anything else, so
// introducing a new kind is a visible break rather than a silent default.
package xmldoc

import "strings"

// Node is a single markup node inside a documentation comment.
type Node interface {
	// Span returns the node's absolute source range, excluding trivia.
	Span() Span

	node()
}

// QualifiedName is an XML name with an optional namespace prefix.
type QualifiedName struct {
	// Prefix is the namespace prefix (the part before ':').
	Prefix string

	// HasPrefix is true when the source name contained a ':' separator.
	// A name such as ":x" has a prefix even though Prefix is empty.
	HasPrefix bool

	// Local is the local part of the name. Empty when the parser could not
	// determine a name (for example "< >").
	Local string
}

// ParseName splits a raw name on its first ':'.
func ParseName(raw string) QualifiedName {
	prefix, local, found := strings.Cut(raw, ":")
	if !found {
		return QualifiedName{Local: raw}
	}
	return QualifiedName{Prefix: prefix, HasPrefix: true, Local: local}
}

// Missing reports whether the local part could not be determined.
func (n QualifiedName) Missing() bool {
	return n.Local == ""
}

// String returns the name as written in source.
func (n QualifiedName) String() string {
	if n.HasPrefix {
		return n.Prefix + ":" + n.Local
	}
	return n.Local
}

// Is reports whether the name is unprefixed and has the given local part.
func (n QualifiedName) Is(local string) bool {
	return !n.HasPrefix && n.Local == local
}

// Attribute is a name="value" pair on an element.
type Attribute struct {
	Name QualifiedName

	// Value is the raw attribute value without quotes. Entities are not decoded.
	Value string

	// Quote is the quote character used in source ('"' or '\''). Zero means '"'.
	Quote byte

	// Span covers the attribute from the first byte of its name to the closing quote.
	Span Span
}

// Element is a start tag, its content and its end tag.
type Element struct {
	Name       QualifiedName
	Attributes []Attribute
	Children   []Node

	// StartTag covers "<name ...>".
	StartTag Span

	// EndTag covers "</name>". It is empty (Start == End) for unclosed elements.
	EndTag Span

	// Closed is false when the parser reached the end of the comment, or a
	// mismatched end tag, before finding this element's end tag.
	Closed bool

	// LeadingTrivia and TrailingTrivia hold formatting that belongs to the
	// element but lies outside its span, such as a line exterior ("///").
	LeadingTrivia  string
	TrailingTrivia string

	span Span
}

// Span implements Node.
func (e *Element) Span() Span { return e.span }

func (*Element) node() {}

// Attr returns the value of the unprefixed attribute with the given name.
func (e *Element) Attr(name string) (string, bool) {
	return lookupAttr(e.Attributes, name)
}

// TextContent returns the concatenated, untrimmed text of the element's
// direct text children. Non-text children contribute nothing.
func (e *Element) TextContent() string {
	var b strings.Builder
	for _, child := range e.Children {
		if text, ok := child.(*Text); ok {
			b.WriteString(text.String())
		}
	}
	return b.String()
}

// HasOnlyText reports whether every child of the element is a Text node.
func (e *Element) HasOnlyText() bool {
	for _, child := range e.Children {
		if _, ok := child.(*Text); !ok {
			return false
		}
	}
	return true
}

// ContentSpan returns the range between the end of the start tag and the
// beginning of the end tag.
func (e *Element) ContentSpan() Span {
	end := e.EndTag.Start
	if !e.Closed {
		end = e.span.End
	}
	return Span{Start: e.StartTag.End, End: end}
}

// EmptyElement is a self-closing element such as <see langword="null"/>.
type EmptyElement struct {
	Name       QualifiedName
	Attributes []Attribute

	LeadingTrivia  string
	TrailingTrivia string

	span Span
}

// NewEmptyElement creates a detached self-closing element. Its span is empty;
// detached nodes are rendered with Render before being spliced into source.
func NewEmptyElement(name string, attrs ...Attribute) *EmptyElement {
	return &EmptyElement{Name: ParseName(name), Attributes: attrs}
}

// Span implements Node.
func (e *EmptyElement) Span() Span { return e.span }

func (*EmptyElement) node() {}

// Attr returns the value of the unprefixed attribute with the given name.
func (e *EmptyElement) Attr(name string) (string, bool) {
	return lookupAttr(e.Attributes, name)
}

// TextToken is one lexical piece of a Text node. Text is split at line
// breaks: a newline token holds just the line terminator, and the line
// exterior that follows it ("///") belongs to no token.
type TextToken struct {
	Text    string
	Span    Span
	NewLine bool

	// CDATA marks a token holding a whole <![CDATA[...]]> section, markers
	// included. Its content is literal: entities in it are not references.
	CDATA bool
}

// IsWhitespace reports whether the token consists only of whitespace. An empty
// token counts as whitespace.
func (t TextToken) IsWhitespace() bool {
	return strings.TrimSpace(t.Text) == ""
}

// Text is a run of character data between markup.
type Text struct {
	Tokens []TextToken

	span Span
}

// NewText creates a detached text node from a single literal token.
func NewText(s string) *Text {
	return &Text{Tokens: []TextToken{{Text: s}}}
}

// Span implements Node.
func (t *Text) Span() Span { return t.span }

func (*Text) node() {}

// String returns the token texts concatenated in order.
func (t *Text) String() string {
	var b strings.Builder
	for _, tok := range t.Tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}

func lookupAttr(attrs []Attribute, name string) (string, bool) {
	for _, attr := range attrs {
		if attr.Name.Is(name) {
			return attr.Value, true
		}
	}
	return "", false
}

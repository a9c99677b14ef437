package xmldoc

import (
	"fmt"
	"strings"
)

// Render returns the markup for n without its leading or trailing trivia.
//
// Rendering is intended for synthesized nodes that will be spliced over the
// span of an existing node. Text is rendered from its tokens, so a parsed
// multi-line Text loses its line exteriors.
func Render(n Node) string {
	var b strings.Builder
	render(&b, n)
	return b.String()
}

// RenderWithTrivia returns the markup for n surrounded by its trivia.
func RenderWithTrivia(n Node) string {
	switch node := n.(type) {
	case *Element:
		return node.LeadingTrivia + Render(node) + node.TrailingTrivia
	case *EmptyElement:
		return node.LeadingTrivia + Render(node) + node.TrailingTrivia
	case *Text:
		return Render(node)
	default:
		panic(fmt.Sprintf("xmldoc: unhandled node type %T", n))
	}
}

func render(b *strings.Builder, n Node) {
	switch node := n.(type) {
	case *Element:
		b.WriteByte('<')
		b.WriteString(node.Name.String())
		renderAttrs(b, node.Attributes)
		b.WriteByte('>')
		for _, child := range node.Children {
			render(b, child)
		}
		b.WriteString("</")
		b.WriteString(node.Name.String())
		b.WriteByte('>')
	case *EmptyElement:
		b.WriteByte('<')
		b.WriteString(node.Name.String())
		renderAttrs(b, node.Attributes)
		b.WriteString("/>")
	case *Text:
		b.WriteString(node.String())
	default:
		panic(fmt.Sprintf("xmldoc: unhandled node type %T", n))
	}
}

func renderAttrs(b *strings.Builder, attrs []Attribute) {
	for _, attr := range attrs {
		quote := attr.Quote
		if quote == 0 {
			quote = '"'
		}
		b.WriteByte(' ')
		b.WriteString(attr.Name.String())
		b.WriteByte('=')
		b.WriteByte(quote)
		writeAttrValue(b, attr.Value, quote)
		b.WriteByte(quote)
	}
}

// writeAttrValue writes value escaping the characters that would end or
// break a quoted attribute. Entity and character references already in value
// are kept as they are, since attribute values hold raw markup.
func writeAttrValue(b *strings.Builder, value string, quote byte) {
	for i := 0; i < len(value); i++ {
		switch c := value[i]; {
		case c == quote && c == '"':
			b.WriteString("&quot;")
		case c == quote:
			b.WriteString("&apos;")
		case c == '<':
			b.WriteString("&lt;")
		case c == '&' && !startsReference(value[i:]):
			b.WriteString("&amp;")
		default:
			b.WriteByte(c)
		}
	}
}

// startsReference reports whether s begins with an entity or character
// reference such as &amp;, &#228; or &#xE4;.
func startsReference(s string) bool {
	end := strings.IndexByte(s, ';')
	if end < 2 {
		return false
	}
	name := s[1:end]
	if hex, ok := strings.CutPrefix(name, "#x"); ok {
		return hex != "" && strings.Trim(hex, "0123456789abcdefABCDEF") == ""
	}
	if dec, ok := strings.CutPrefix(name, "#"); ok {
		return dec != "" && strings.Trim(dec, "0123456789") == ""
	}
	if !isNameStart(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isNameChar(name[i]) {
			return false
		}
	}
	return true
}

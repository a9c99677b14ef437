package xmldoc

import (
	"bytes"
	"strings"
)

// Region locates one documentation comment inside a source file.
type Region struct {
	// Span covers the comment from the first exterior to the end of its last line
	// (excluding the final line terminator).
	Span Span

	// Exteriors are the per-line prefixes (indentation plus "///") that are not
	// part of the markup. They are sorted and lie inside Span.
	Exteriors []Span
}

// Comment is one parsed documentation comment.
type Comment struct {
	Region Region

	// Nodes are the top-level nodes of the comment in source order.
	Nodes []Node
}

// Parse tokenizes the bytes of region and builds its node tree.
//
// The parser never fails. Malformed markup degrades to the closest structure
// that keeps offsets intact: unclosed elements extend to the end of their last
// child, stray end tags are dropped, and a '<' that does not start a name
// becomes an EmptyElement with a missing name. XML comments, processing
// instructions and line exteriors are trivia and produce no nodes.
func Parse(content []byte, region Region) *Comment {
	p := &parser{
		src:       content,
		pos:       max(region.Span.Start, 0),
		end:       min(region.Span.End, len(content)),
		ext:       region.Exteriors,
		triviaEnd: -1,
	}
	p.run()
	return &Comment{Region: region, Nodes: p.root}
}

// ParseFragment parses a standalone markup fragment with no line exteriors.
// Offsets are relative to the start of s.
func ParseFragment(s string) []Node {
	return Parse([]byte(s), Region{Span: Span{Start: 0, End: len(s)}}).Nodes
}

type parser struct {
	src    []byte
	pos    int
	end    int
	ext    []Span
	extIdx int

	trivia    strings.Builder
	triviaEnd int

	root  []Node
	stack []*Element
}

func (p *parser) run() {
	for {
		p.skipTrivia()
		if p.pos >= p.end {
			break
		}
		if p.src[p.pos] == '<' {
			p.parseMarkup()
			continue
		}
		p.appendNode(p.parseText())
	}

	for len(p.stack) > 0 {
		p.closeUnterminated()
	}
}

// skipTrivia consumes line exteriors, XML comments, processing instructions
// and declarations at the current position.
func (p *parser) skipTrivia() {
	for p.pos < p.end {
		if ext, ok := p.exteriorAt(); ok {
			start := p.pos
			p.pos = min(ext.End, p.end)
			p.addTrivia(start, p.pos)
			continue
		}

		start := p.pos
		switch {
		case p.hasPrefix("<!--"):
			p.skipPast("-->", len("<!--"))
		case p.hasPrefix("<?"):
			p.skipPast("?>", len("<?"))
		case p.hasPrefix("<!") && !p.hasPrefix("<![CDATA["):
			p.skipPast(">", len("<!"))
		default:
			return
		}
		p.addTrivia(start, p.pos)
	}
}

func (p *parser) parseMarkup() {
	switch {
	case p.hasPrefix("</"):
		p.parseEndTag()
	case p.hasPrefix("<![CDATA["):
		start := p.pos
		p.skipPast("]]>", len("<![CDATA["))
		p.takeTrivia()
		p.appendNode(&Text{
			Tokens: []TextToken{{Text: string(p.src[start:p.pos]), Span: Span{Start: start, End: p.pos}, CDATA: true}},
			span:   Span{Start: start, End: p.pos},
		})
	case p.pos+1 < p.end && isNameStart(p.src[p.pos+1]):
		p.parseStartTag()
	default:
		// A bare '<' that does not begin a name.
		leading := p.takeTrivia()
		start := p.pos
		p.pos++
		p.appendNode(&EmptyElement{LeadingTrivia: leading, span: Span{Start: start, End: p.pos}})
	}
}

func (p *parser) parseStartTag() {
	leading := p.takeTrivia()
	start := p.pos
	p.pos++

	name := ParseName(p.scanName())
	attrs := p.parseAttributes()

	if p.hasPrefix("/>") {
		p.pos += 2
		p.appendNode(&EmptyElement{
			Name:          name,
			Attributes:    attrs,
			LeadingTrivia: leading,
			span:          Span{Start: start, End: p.pos},
		})
		return
	}
	if p.pos < p.end && p.src[p.pos] == '>' {
		p.pos++
	}

	el := &Element{
		Name:          name,
		Attributes:    attrs,
		StartTag:      Span{Start: start, End: p.pos},
		LeadingTrivia: leading,
		span:          Span{Start: start, End: p.pos},
	}
	p.appendNode(el)
	p.stack = append(p.stack, el)
}

func (p *parser) parseAttributes() []Attribute {
	var attrs []Attribute
	for {
		p.skipTagSpace()
		if p.pos >= p.end || p.src[p.pos] == '>' || p.hasPrefix("/>") {
			return attrs
		}
		if !isNameStart(p.src[p.pos]) {
			return attrs
		}

		start := p.pos
		attr := Attribute{Name: ParseName(p.scanName())}
		p.skipTagSpace()
		if p.pos < p.end && p.src[p.pos] == '=' {
			p.pos++
			p.skipTagSpace()
			attr.Value, attr.Quote = p.scanAttrValue()
		}
		attr.Span = Span{Start: start, End: p.pos}
		attrs = append(attrs, attr)
	}
}

func (p *parser) scanAttrValue() (string, byte) {
	if p.pos >= p.end {
		return "", 0
	}
	quote := p.src[p.pos]
	if quote == '"' || quote == '\'' {
		p.pos++
		start := p.pos
		idx := bytes.IndexByte(p.src[p.pos:p.end], quote)
		if idx < 0 {
			p.pos = p.end
			return string(p.src[start:p.end]), quote
		}
		p.pos += idx + 1
		return string(p.src[start : p.pos-1]), quote
	}

	start := p.pos
	for p.pos < p.end && !isSpace(p.src[p.pos]) && p.src[p.pos] != '>' && !p.hasPrefix("/>") {
		p.pos++
	}
	return string(p.src[start:p.pos]), 0
}

func (p *parser) parseEndTag() {
	start := p.pos
	p.pos += len("</")
	raw := p.scanName()
	p.skipTagSpace()
	if p.pos < p.end && p.src[p.pos] == '>' {
		p.pos++
	}
	tag := Span{Start: start, End: p.pos}

	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.stack[i].Name.String() != raw {
			continue
		}
		for len(p.stack)-1 > i {
			p.closeUnterminated()
		}
		el := p.stack[i]
		p.stack = p.stack[:i]
		el.EndTag = tag
		el.Closed = true
		el.span.End = tag.End
		p.takeTrivia()
		return
	}

	// Stray end tag with no matching start tag.
	p.addTrivia(start, p.pos)
}

// closeUnterminated pops the innermost open element, ending it at its last child.
func (p *parser) closeUnterminated() {
	el := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	end := el.StartTag.End
	if n := len(el.Children); n > 0 {
		end = max(end, el.Children[n-1].Span().End)
	}
	el.span.End = end
	el.EndTag = Span{Start: end, End: end}
}

func (p *parser) parseText() *Text {
	p.takeTrivia()
	text := &Text{}
	segStart := p.pos

	flush := func() {
		if p.pos > segStart {
			text.Tokens = append(text.Tokens, TextToken{
				Text: string(p.src[segStart:p.pos]),
				Span: Span{Start: segStart, End: p.pos},
			})
		}
	}

	for p.pos < p.end {
		c := p.src[p.pos]
		if c == '<' {
			break
		}
		if c != '\n' && !(c == '\r' && p.pos+1 < p.end && p.src[p.pos+1] == '\n') {
			p.pos++
			continue
		}

		flush()
		nlStart := p.pos
		if c == '\r' {
			p.pos++
		}
		p.pos++
		text.Tokens = append(text.Tokens, TextToken{
			Text:    string(p.src[nlStart:p.pos]),
			Span:    Span{Start: nlStart, End: p.pos},
			NewLine: true,
		})
		if ext, ok := p.exteriorAt(); ok {
			extStart := p.pos
			p.pos = min(ext.End, p.end)
			p.addTrivia(extStart, p.pos)
		}
		segStart = p.pos
	}
	flush()

	text.span = Span{Start: text.Tokens[0].Span.Start, End: text.Tokens[len(text.Tokens)-1].Span.End}
	return text
}

func (p *parser) appendNode(n Node) {
	if len(p.stack) == 0 {
		p.root = append(p.root, n)
		return
	}
	top := p.stack[len(p.stack)-1]
	top.Children = append(top.Children, n)
}

func (p *parser) exteriorAt() (Span, bool) {
	for p.extIdx < len(p.ext) && p.ext[p.extIdx].End <= p.pos {
		p.extIdx++
	}
	if p.extIdx < len(p.ext) && p.ext[p.extIdx].Start <= p.pos {
		return p.ext[p.extIdx], true
	}
	return Span{}, false
}

func (p *parser) addTrivia(start, end int) {
	if p.triviaEnd != start {
		p.trivia.Reset()
	}
	p.trivia.Write(p.src[start:end])
	p.triviaEnd = end
}

// takeTrivia returns the trivia that ends exactly at the current position and
// clears the pending trivia.
func (p *parser) takeTrivia() string {
	var s string
	if p.triviaEnd == p.pos {
		s = p.trivia.String()
	}
	p.trivia.Reset()
	p.triviaEnd = -1
	return s
}

func (p *parser) skipTagSpace() {
	for p.pos < p.end {
		if ext, ok := p.exteriorAt(); ok {
			p.pos = min(ext.End, p.end)
			continue
		}
		if !isSpace(p.src[p.pos]) {
			return
		}
		p.pos++
	}
}

func (p *parser) scanName() string {
	start := p.pos
	for p.pos < p.end && isNameChar(p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *parser) hasPrefix(s string) bool {
	return bytes.HasPrefix(p.src[p.pos:p.end], []byte(s))
}

// skipPast advances beyond the next occurrence of terminator, searching from
// skip bytes ahead. Without a terminator it advances to the end.
func (p *parser) skipPast(terminator string, skip int) {
	from := min(p.pos+skip, p.end)
	idx := bytes.Index(p.src[from:p.end], []byte(terminator))
	if idx < 0 {
		p.pos = p.end
		return
	}
	p.pos = from + idx + len(terminator)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isNameStart(c byte) bool {
	return c == '_' || c == ':' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c == '-' || c == '.' || (c >= '0' && c <= '9')
}

package source

import (
	"bytes"

	"github.com/yaklabco/doclint/pkg/xmldoc"
)

// ExtractRegions finds the documentation comments in content. A comment is a
// maximal run of consecutive lines whose first non-blank characters are
// prefix. Lines that continue with a further prefix character, such as "////"
// for a "///" prefix, are ordinary comments and end the run.
//
// Each region spans from its first exterior to the end of its last line,
// excluding the line terminator.
func ExtractRegions(content []byte, prefix string) []xmldoc.Region {
	if prefix == "" {
		return nil
	}

	var (
		regions []xmldoc.Region
		current *xmldoc.Region
	)

	flush := func() {
		if current != nil {
			regions = append(regions, *current)
			current = nil
		}
	}

	for _, line := range BuildLines(content) {
		ext, ok := docExterior(content, line, prefix)
		if !ok {
			flush()
			continue
		}
		if current == nil {
			current = &xmldoc.Region{Span: xmldoc.Span{Start: ext.Start}}
		}
		current.Exteriors = append(current.Exteriors, ext)
		current.Span.End = line.NewlineStart
	}
	flush()

	return regions
}

// docExterior returns the span of the indentation plus prefix of line when the
// line is a documentation line.
func docExterior(content []byte, line LineInfo, prefix string) (xmldoc.Span, bool) {
	text := content[line.StartOffset:line.NewlineStart]
	indent := len(text) - len(bytes.TrimLeft(text, " \t"))
	rest := text[indent:]

	if !bytes.HasPrefix(rest, []byte(prefix)) {
		return xmldoc.Span{}, false
	}
	if len(rest) > len(prefix) && rest[len(prefix)] == prefix[len(prefix)-1] {
		return xmldoc.Span{}, false
	}

	return xmldoc.Span{Start: line.StartOffset, End: line.StartOffset + indent + len(prefix)}, true
}

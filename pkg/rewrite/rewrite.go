// Package rewrite converts inline text elements into self-closing reference
// elements, e.g. <c>null</c> into <see langword="null"/>.
package rewrite

import (
	"fmt"

	"github.com/yaklabco/doclint/pkg/xmldoc"
)

// Rewriter builds a reference element named Tag whose Attribute holds the
// text content of the rewritten element.
type Rewriter struct {
	Tag       string
	Attribute string
}

var (
	// Reference rewrites an element into <see langword="..."/>.
	Reference = Rewriter{Tag: "see", Attribute: "langword"}

	// ParamRef rewrites an element into <paramref name="..."/>.
	ParamRef = Rewriter{Tag: "paramref", Attribute: "name"}

	// TypeParamRef rewrites an element into <typeparamref name="..."/>.
	TypeParamRef = Rewriter{Tag: "typeparamref", Attribute: "name"}
)

// Rewrite returns a new empty element carrying el's untrimmed text content in
// the configured attribute. The trivia of el is copied to the result; el is
// not modified.
//
// el must contain only text children. Callers check this before deciding to
// rewrite, so any other child panics.
func (r Rewriter) Rewrite(el *xmldoc.Element) *xmldoc.EmptyElement {
	checkTextOnly(el)
	return r.build(el, el.TextContent())
}

// RewriteSource is Rewrite with the attribute value taken verbatim from the
// bytes of el's content in src. The line exteriors of a multi-line element
// stay inside the value, so the result can replace el's span in src without
// ending the comment early.
func (r Rewriter) RewriteSource(el *xmldoc.Element, src []byte) *xmldoc.EmptyElement {
	checkTextOnly(el)
	content := el.ContentSpan()
	if content.Start < 0 || content.End > len(src) || content.Start > content.End {
		panic(fmt.Sprintf("rewrite: content span %s of <%s> outside source", content, el.Name))
	}
	return r.build(el, string(src[content.Start:content.End]))
}

func (r Rewriter) build(el *xmldoc.Element, value string) *xmldoc.EmptyElement {
	out := xmldoc.NewEmptyElement(r.Tag, xmldoc.Attribute{
		Name:  xmldoc.ParseName(r.Attribute),
		Value: value,
		Quote: '"',
	})
	out.LeadingTrivia = el.LeadingTrivia
	out.TrailingTrivia = el.TrailingTrivia
	return out
}

func checkTextOnly(el *xmldoc.Element) {
	if el == nil {
		panic("rewrite: nil element")
	}
	for _, child := range el.Children {
		if _, ok := child.(*xmldoc.Text); !ok {
			panic(fmt.Sprintf("rewrite: <%s> has non-text child %T", el.Name, child))
		}
	}
}

// ToReference rewrites el with the see/langword rewriter.
func ToReference(el *xmldoc.Element) *xmldoc.EmptyElement {
	return Reference.Rewrite(el)
}

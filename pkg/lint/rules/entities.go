package rules

import (
	"fmt"
	"regexp"

	"golang.org/x/net/html"

	"github.com/yaklabco/doclint/pkg/fix"
	"github.com/yaklabco/doclint/pkg/lint"
	"github.com/yaklabco/doclint/pkg/xmldoc"
)

var namedEntityPattern = regexp.MustCompile(`&([A-Za-z][A-Za-z0-9]*);`)

// xmlEntities are the named entities XML defines itself.
//
//nolint:gochecknoglobals // Read-only lookup table.
var xmlEntities = map[string]bool{
	"amp":  true,
	"lt":   true,
	"gt":   true,
	"quot": true,
	"apos": true,
}

// UseUnicodeCharactersRule reports HTML named entities such as &auml; that
// are not defined by XML and would break the documentation file.
type UseUnicodeCharactersRule struct {
	lint.BaseRule
}

// NewUseUnicodeCharactersRule creates the DOC103 rule.
func NewUseUnicodeCharactersRule() *UseUnicodeCharactersRule {
	return &UseUnicodeCharactersRule{
		BaseRule: lint.NewBaseRule(
			"DOC103",
			"use-unicode-characters",
			"HTML named entities must be written as the characters they represent",
			[]string{"text"},
			true,
		),
	}
}

// Apply checks every text token of every documentation comment.
func (r *UseUnicodeCharactersRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic

	for _, comment := range ctx.Comments {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}
		for _, text := range commentTexts(comment) {
			for _, tok := range text.Tokens {
				if tok.NewLine || tok.CDATA {
					continue
				}
				diags = append(diags, r.checkToken(ctx, tok)...)
			}
		}
	}

	return diags, nil
}

func (r *UseUnicodeCharactersRule) checkToken(ctx *lint.RuleContext, tok xmldoc.TextToken) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, m := range namedEntityPattern.FindAllStringSubmatchIndex(tok.Text, -1) {
		entity := tok.Text[m[0]:m[1]]
		if xmlEntities[tok.Text[m[2]:m[3]]] {
			continue
		}
		decoded := html.UnescapeString(entity)
		if decoded == entity {
			// Not an HTML entity either; nothing to suggest.
			continue
		}

		span := xmldoc.Span{Start: tok.Span.Start + m[0], End: tok.Span.Start + m[1]}
		builder := fix.NewEditBuilder()
		builder.ReplaceSpan(span, decoded)

		diags = append(diags, ctx.Diagnostic(r, span, fmt.Sprintf("Use the character %q instead of %s", decoded, entity)).
			WithSuggestion(fmt.Sprintf("Replace %s with %s", entity, decoded)).
			WithFix(builder).
			Build())
	}
	return diags
}

// commentTexts returns every text node of comment in document order.
func commentTexts(comment *xmldoc.Comment) []*xmldoc.Text {
	var texts []*xmldoc.Text
	var visit func(nodes []xmldoc.Node)
	visit = func(nodes []xmldoc.Node) {
		for _, n := range nodes {
			switch node := n.(type) {
			case *xmldoc.Text:
				texts = append(texts, node)
			case *xmldoc.Element:
				visit(node.Children)
			case *xmldoc.EmptyElement:
			default:
				panic(fmt.Sprintf("rules: unhandled node type %T", n))
			}
		}
	}
	visit(comment.Nodes)
	return texts
}

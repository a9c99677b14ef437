package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/doclint/pkg/fix"
	"github.com/yaklabco/doclint/pkg/lint"
	"github.com/yaklabco/doclint/pkg/rewrite"
	"github.com/yaklabco/doclint/pkg/xmldoc"
)

// optionKeywords overrides the keyword list of DOC104.
const optionKeywords = "keywords"

// DefaultKeywords are the language keywords DOC104 expects to be written as
// <see langword="..."/>.
func DefaultKeywords() []string {
	return []string{"null", "true", "false", "static", "abstract", "virtual", "sealed", "async", "await"}
}

// referenceMatcher reports whether the trimmed body of a <c> element should be
// a reference. It is called once per comment to build the set of names.
type referenceMatcher func(ctx *lint.RuleContext, comment *xmldoc.Comment) func(body string) bool

// ReferenceRule reports <c> elements that should be reference elements and
// fixes them with a rewrite.Rewriter.
type ReferenceRule struct {
	lint.BaseRule
	rewriter rewrite.Rewriter
	match    referenceMatcher
}

// NewUseSeeLangwordRule creates the DOC104 rule.
func NewUseSeeLangwordRule() *ReferenceRule {
	return &ReferenceRule{
		BaseRule: lint.NewBaseRule(
			"DOC104",
			"use-see-langword",
			"Language keywords must be referenced with see langword instead of code formatting",
			[]string{"references"},
			true,
		),
		rewriter: rewrite.Reference,
		match: func(ctx *lint.RuleContext, _ *xmldoc.Comment) func(string) bool {
			keywords := ctx.OptionStringSlice(optionKeywords, DefaultKeywords())
			return func(body string) bool { return slices.Contains(keywords, body) }
		},
	}
}

// NewUseParamrefRule creates the DOC105 rule.
func NewUseParamrefRule() *ReferenceRule {
	return &ReferenceRule{
		BaseRule: lint.NewBaseRule(
			"DOC105",
			"use-paramref",
			"Parameters must be referenced with paramref instead of code formatting",
			[]string{"references"},
			true,
		),
		rewriter: rewrite.ParamRef,
		match:    declaredNames("param"),
	}
}

// NewUseTypeparamrefRule creates the DOC106 rule.
func NewUseTypeparamrefRule() *ReferenceRule {
	return &ReferenceRule{
		BaseRule: lint.NewBaseRule(
			"DOC106",
			"use-typeparamref",
			"Type parameters must be referenced with typeparamref instead of code formatting",
			[]string{"references"},
			true,
		),
		rewriter: rewrite.TypeParamRef,
		match:    declaredNames("typeparam"),
	}
}

func declaredNames(element string) referenceMatcher {
	return func(_ *lint.RuleContext, comment *xmldoc.Comment) func(string) bool {
		names := comment.NamedValues(element)
		return func(body string) bool { return names[body] }
	}
}

// Apply checks every <c> element that contains only text.
func (r *ReferenceRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic

	for _, comment := range ctx.Comments {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		matches := r.match(ctx, comment)
		xmldoc.Walk(comment.Nodes, func(el, _ *xmldoc.Element) bool {
			if !el.Name.Is("c") || !el.HasOnlyText() {
				return true
			}
			body := strings.TrimSpace(el.TextContent())
			if body == "" || !matches(body) {
				return true
			}

			// The edit keeps the raw content so a body that
			// crosses a line keeps its "///" exteriors.
			builder := fix.NewEditBuilder()
			builder.ReplaceNode(el, r.rewriter.RewriteSource(el, ctx.File.Content))

			rendered := xmldoc.Render(r.rewriter.Rewrite(el))
			diags = append(diags, ctx.Diagnostic(r, el.Span(), fmt.Sprintf("Use %s", rendered)).
				WithSuggestion(fmt.Sprintf("Replace %s with %s", xmldoc.Render(el), rendered)).
				WithFix(builder).
				Build())
			return true
		})
	}

	return diags, nil
}

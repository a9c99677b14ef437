package rules

import (
	"fmt"

	"github.com/yaklabco/doclint/pkg/blocklevel"
	"github.com/yaklabco/doclint/pkg/lint"
	"github.com/yaklabco/doclint/pkg/xmldoc"
)

// optionConsiderEmptyElements treats elements with only whitespace content as
// ignorable, so an empty <b></b> next to a paragraph is not reported.
const optionConsiderEmptyElements = "consider_empty_elements"

// BlockLevelRule reports runs of inline content inside containers that its
// policy says must hold block content. DOC100 to DOC102 differ only in policy.
type BlockLevelRule struct {
	lint.BaseRule
	policy  blocklevel.Policy
	message string
}

// NewPlaceTextInParagraphsRule creates the DOC100 rule.
func NewPlaceTextInParagraphsRule() *BlockLevelRule {
	return &BlockLevelRule{
		BaseRule: lint.NewBaseRule(
			"DOC100",
			"place-text-in-paragraphs",
			"Inline content in remarks and note elements must be wrapped in a block element",
			[]string{"blocks"},
			false,
		),
		policy:  placeTextInParagraphs,
		message: "Place text in paragraphs",
	}
}

// NewUseChildBlocksConsistentlyRule creates the DOC101 rule.
func NewUseChildBlocksConsistentlyRule() *BlockLevelRule {
	return &BlockLevelRule{
		BaseRule: lint.NewBaseRule(
			"DOC101",
			"use-child-blocks-consistently",
			"An element that contains a block element must not also contain bare inline content",
			[]string{"blocks"},
			false,
		),
		policy:  useChildBlocksConsistently,
		message: "Use child blocks consistently",
	}
}

// NewUseChildBlocksConsistentlyAcrossElementsRule creates the DOC102 rule.
// It is disabled by default.
func NewUseChildBlocksConsistentlyAcrossElementsRule() *BlockLevelRule {
	return &BlockLevelRule{
		BaseRule: lint.NewBaseRule(
			"DOC102",
			"use-child-blocks-consistently-across-elements",
			"Sibling elements with the same name must use block content consistently",
			[]string{"blocks"},
			false,
		).DisabledByDefault(),
		policy:  useChildBlocksConsistentlyAcrossElements,
		message: "Use child blocks consistently across elements of the same kind",
	}
}

// Apply runs the rule's policy over every documentation comment in the file.
func (r *BlockLevelRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	analyzer := &blocklevel.Analyzer{RuleID: r.ID(), Policy: r.policy}
	if ctx.OptionBool(optionConsiderEmptyElements, false) {
		analyzer.Ignorable = blocklevel.IgnoreEmptyElements
	}

	var diags []lint.Diagnostic
	sink := func(span xmldoc.Span, _ string) {
		diags = append(diags, ctx.Diagnostic(r, span, r.message).Build())
	}

	for _, comment := range ctx.Comments {
		if err := analyzer.Analyze(ctx.Ctx, comment, sink); err != nil {
			return diags, fmt.Errorf("rule cancelled: %w", err)
		}
	}

	return diags, nil
}

func placeTextInParagraphs(c blocklevel.Container) bool {
	name := c.Element.Name
	return (c.Parent == nil && name.Is("remarks")) || name.Is(blocklevel.TagNote)
}

func useChildBlocksConsistently(c blocklevel.Container) bool {
	name := c.Element.Name
	if name.HasPrefix || name.Is(blocklevel.TagCode) || name.Is("c") {
		return false
	}
	return hasDefiniteBlockChild(c.Element)
}

// useChildBlocksConsistentlyAcrossElements flags a top-level element without
// block children when another top-level element of the same name has them.
// Elements that do have block children are left to DOC101.
func useChildBlocksConsistentlyAcrossElements(c blocklevel.Container) bool {
	el := c.Element
	if c.Parent != nil || c.Comment == nil || el.Name.HasPrefix || el.Name.Missing() {
		return false
	}
	if hasDefiniteBlockChild(el) {
		return false
	}
	for _, sibling := range c.Comment.TopLevel(el.Name.Local) {
		if sibling != el && !sibling.Name.HasPrefix && hasDefiniteBlockChild(sibling) {
			return true
		}
	}
	return false
}

func hasDefiniteBlockChild(el *xmldoc.Element) bool {
	for _, child := range el.Children {
		if blocklevel.IsDefiniteBlock(child) {
			return true
		}
	}
	return false
}

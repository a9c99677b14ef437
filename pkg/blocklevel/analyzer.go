package blocklevel

import (
	"context"
	"fmt"

	"github.com/yaklabco/doclint/pkg/xmldoc"
)

// Container is a documentation element whose content policy is evaluated.
type Container struct {
	// Element is the container itself.
	Element *xmldoc.Element

	// Parent is the enclosing element, or nil for top-level elements.
	Parent *xmldoc.Element

	// Comment is the documentation comment the element belongs to.
	Comment *xmldoc.Comment
}

// Policy decides whether a container's content must be block-level.
// Each rule variant supplies its own Policy.
type Policy func(c Container) bool

// Sink receives one reportable location per run.
type Sink func(span xmldoc.Span, ruleID string)

// Analyzer runs block-level run detection for one rule over parsed comments.
type Analyzer struct {
	// RuleID is passed to the sink with every location.
	RuleID string

	// Policy selects the containers that require block content.
	Policy Policy

	// Ignorable overrides the emptiness predicate. Nil means IsIgnorable.
	Ignorable IgnorableFunc
}

// Analyze visits every element of comment and reports each run of inline
// content inside containers that require block content.
//
// Cancellation is checked between containers; a single container is always
// analyzed to completion.
func (a *Analyzer) Analyze(ctx context.Context, comment *xmldoc.Comment, sink Sink) error {
	if a.Policy == nil {
		return fmt.Errorf("analyzer %s: nil policy", a.RuleID)
	}
	if comment == nil {
		return nil
	}

	var err error
	xmldoc.Walk(comment.Nodes, func(el, parent *xmldoc.Element) bool {
		if err != nil {
			return false
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("analyze %s: %w", a.RuleID, ctxErr)
			return false
		}
		a.AnalyzeContainer(Container{Element: el, Parent: parent, Comment: comment}, sink)
		return true
	})
	return err
}

// AnalyzeContainer checks a single container and returns the number of runs reported.
func (a *Analyzer) AnalyzeContainer(c Container, sink Sink) int {
	if c.Element == nil || !a.Policy(c) {
		return 0
	}

	children := c.Element.Children
	runs := FindViolationRunsFunc(children, a.Ignorable)
	for _, run := range runs {
		sink(run.Location(children), a.RuleID)
	}
	return len(runs)
}

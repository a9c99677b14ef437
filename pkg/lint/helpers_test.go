package lint_test

import "github.com/yaklabco/doclint/pkg/xmldoc"

func spanOf(start, end int) xmldoc.Span {
	return xmldoc.Span{Start: start, End: end}
}

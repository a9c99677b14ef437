package blocklevel

import "github.com/yaklabco/doclint/pkg/xmldoc"

// Run is a maximal sequence of children that require wrapping, bounded by
// indices into the children slice. Ignorable children inside the bounds are
// part of the run.
type Run struct {
	Start int
	End   int
}

// Len returns the number of children covered by the run, including ignorable ones.
func (r Run) Len() int {
	return r.End - r.Start + 1
}

// Location returns the trimmed source span of the run within children.
func (r Run) Location(children []xmldoc.Node) xmldoc.Span {
	return xmldoc.Span{
		Start: EffectiveStart(children[r.Start]),
		End:   EffectiveEnd(children[r.End]),
	}
}

// FindViolationRuns returns the runs of inline content in children, in order,
// using the default emptiness predicate.
func FindViolationRuns(children []xmldoc.Node) []Run {
	return FindViolationRunsFunc(children, IsIgnorable)
}

// FindViolationRunsFunc is FindViolationRuns with a custom emptiness predicate.
func FindViolationRunsFunc(children []xmldoc.Node, ignorable IgnorableFunc) []Run {
	if ignorable == nil {
		ignorable = IsIgnorable
	}

	var runs []Run
	start, end := -1, -1

	for i, child := range children {
		if ignorable(child) {
			continue
		}

		if Classify(child).IsBlockLevel() {
			if start >= 0 && end >= start {
				runs = append(runs, Run{Start: start, End: end})
			}
			start = -1
			continue
		}

		end = i
		if start < 0 {
			start = i
		}
	}

	if start >= 0 && end >= start {
		runs = append(runs, Run{Start: start, End: end})
	}

	return runs
}

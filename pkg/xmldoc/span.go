package xmldoc

import "fmt"

// Span is a half-open byte range [Start, End) in the source file.
type Span struct {
	// Start is the byte index where the range begins (inclusive).
	Start int

	// End is the byte index where the range ends (exclusive).
	End int
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)", s.Start, s.End)
}

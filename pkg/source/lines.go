package source

import (
	"bytes"
	"sort"
)

// BuildLines indexes the lines of content. LF and CRLF endings are both
// recognized; a trailing newline yields a final empty line.
func BuildLines(content []byte) []LineInfo {
	lines := []LineInfo{}
	if len(content) == 0 {
		return lines
	}

	for start := 0; ; {
		i := bytes.IndexByte(content[start:], '\n')
		if i < 0 {
			return append(lines, LineInfo{StartOffset: start, NewlineStart: len(content), EndOffset: len(content)})
		}
		nl := start + i
		next := nl + 1
		if nl > start && content[nl-1] == '\r' {
			nl--
		}
		lines = append(lines, LineInfo{StartOffset: start, NewlineStart: nl, EndOffset: next})
		start = next
	}
}

func (s *Snapshot) LineCount() int { return len(s.Lines) }

// LineAt maps a byte offset to a 1-based line and byte column. Offsets past
// the end land on the last line; negative offsets give (0, 0).
func (s *Snapshot) LineAt(offset int) (line, col int) {
	n := len(s.Lines)
	if offset < 0 || n == 0 {
		return 0, 0
	}

	idx := n - 1
	if offset < len(s.Content) {
		idx = min(sort.Search(n, func(i int) bool { return s.Lines[i].EndOffset > offset }), n-1)
	}
	li := s.Lines[idx]
	if offset < li.StartOffset {
		return 0, 0
	}
	return idx + 1, offset - li.StartOffset + 1
}

// Offset is the inverse of LineAt. It reports false for positions outside
// the file or past the end of their line.
func (s *Snapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(s.Lines) || col < 1 {
		return 0, false
	}
	li := s.Lines[line-1]
	if off := li.StartOffset + col - 1; off <= li.EndOffset {
		return off, true
	}
	return 0, false
}

// LineContent returns line without its terminator, or nil when out of range.
func (s *Snapshot) LineContent(line int) []byte {
	if line < 1 || line > len(s.Lines) {
		return nil
	}
	li := s.Lines[line-1]
	return s.Content[li.StartOffset:li.NewlineStart]
}

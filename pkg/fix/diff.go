package fix

import (
	"fmt"
	"strings"
)

// Diff is a line-based unified diff of one file.
type Diff struct {
	Path               string
	Original, Modified []byte
	Hunks              []DiffHunk
	Additions          int
	Deletions          int
}

// DiffHunk is one @@ block. Starts are 1-based line numbers.
type DiffHunk struct {
	OriginalStart, OriginalCount int
	ModifiedStart, ModifiedCount int
	Lines                        []DiffLine
}

// DiffLine is a line of a hunk without its marker.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

func (k DiffLineKind) prefix() byte {
	return " +-"[k]
}

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// GenerateDiff diffs original against modified with three lines of context.
// Identical inputs give nil.
func GenerateDiff(path string, original, modified []byte) *Diff {
	origLines := splitLines(original)
	modLines := splitLines(modified)

	hunks := groupHunks(diffOps(origLines, modLines))
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{Path: path, Original: original, Modified: modified, Hunks: hunks}
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				d.Additions++
			case DiffLineRemove:
				d.Deletions++
			case DiffLineContext:
			}
		}
	}
	return d
}

func (d *Diff) slashPath() string { return strings.TrimPrefix(d.Path, "/") }

// GitHeader is the "diff --git a/... b/..." line, empty for a nil diff.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("diff --git a/%[1]s b/%[1]s", d.slashPath())
}

// String renders the ---/+++ headers and hunks.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%[1]s\n+++ b/%[1]s\n", d.slashPath())
	for _, h := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
		for _, line := range h.Lines {
			sb.WriteByte(line.Kind.prefix())
			sb.WriteString(line.Content)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// FullString is String preceded by GitHeader.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

func (d *Diff) HasChanges() bool { return d != nil && len(d.Hunks) > 0 }

// splitLines splits content into lines, dropping the empty element after a
// final newline.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// diffOps returns the edit script turning a into b. Common leading and
// trailing lines are matched directly; only the middle is aligned with a
// longest common subsequence table.
func diffOps(a, b []string) []DiffLine {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix &&
		a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}

	ops := make([]DiffLine, 0, len(a)+len(b)-prefix-suffix)
	for _, line := range a[:prefix] {
		ops = append(ops, DiffLine{Kind: DiffLineContext, Content: line})
	}
	ops = appendAligned(ops, a[prefix:len(a)-suffix], b[prefix:len(b)-suffix])
	for _, line := range a[len(a)-suffix:] {
		ops = append(ops, DiffLine{Kind: DiffLineContext, Content: line})
	}
	return ops
}

// appendAligned appends the LCS alignment of a and b to ops. Removals are
// emitted before additions at each point of divergence.
func appendAligned(ops []DiffLine, a, b []string) []DiffLine {
	// table[i][j] is the LCS length of a[i:] and b[j:].
	table := make([][]int, len(a)+1)
	for i := range table {
		table[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else {
				table[i][j] = max(table[i+1][j], table[i][j+1])
			}
		}
	}

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			ops = append(ops, DiffLine{Kind: DiffLineContext, Content: a[i]})
			i++
			j++
		case table[i+1][j] >= table[i][j+1]:
			ops = append(ops, DiffLine{Kind: DiffLineRemove, Content: a[i]})
			i++
		default:
			ops = append(ops, DiffLine{Kind: DiffLineAdd, Content: b[j]})
			j++
		}
	}
	for ; i < len(a); i++ {
		ops = append(ops, DiffLine{Kind: DiffLineRemove, Content: a[i]})
	}
	for ; j < len(b); j++ {
		ops = append(ops, DiffLine{Kind: DiffLineAdd, Content: b[j]})
	}
	return ops
}

// groupHunks splits ops into hunks. Changes separated by no more than twice
// the context size share a hunk.
func groupHunks(ops []DiffLine) []DiffHunk {
	// origAt[k] and modAt[k] are the 1-based line numbers of ops[k].
	origAt := make([]int, len(ops)+1)
	modAt := make([]int, len(ops)+1)
	origLine, modLine := 1, 1
	for k, op := range ops {
		origAt[k], modAt[k] = origLine, modLine
		if op.Kind != DiffLineAdd {
			origLine++
		}
		if op.Kind != DiffLineRemove {
			modLine++
		}
	}

	var hunks []DiffHunk
	for k := 0; k < len(ops); {
		if ops[k].Kind == DiffLineContext {
			k++
			continue
		}

		end := k
		for {
			for end < len(ops) && ops[end].Kind != DiffLineContext {
				end++
			}
			next := end
			for next < len(ops) && ops[next].Kind == DiffLineContext {
				next++
			}
			if next == len(ops) || next-end > 2*contextLines {
				break
			}
			end = next
		}

		start := max(k-contextLines, 0)
		stop := min(end+contextLines, len(ops))

		hunk := DiffHunk{OriginalStart: origAt[start], ModifiedStart: modAt[start]}
		for _, op := range ops[start:stop] {
			hunk.Lines = append(hunk.Lines, op)
			if op.Kind != DiffLineAdd {
				hunk.OriginalCount++
			}
			if op.Kind != DiffLineRemove {
				hunk.ModifiedCount++
			}
		}
		hunks = append(hunks, hunk)
		k = stop
	}
	return hunks
}

package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError describes an edit whose range does not fit the content.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// Validate checks that every edit has a valid range within contentLen bytes.
func Validate(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// Sort orders edits by start offset, then end offset.
func Sort(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		return cmp.Or(
			cmp.Compare(a.StartOffset, b.StartOffset),
			cmp.Compare(a.EndOffset, b.EndOffset),
		)
	})
}

// Prepared is the outcome of Prepare.
type Prepared struct {
	// Accepted are sorted, non-overlapping edits ready for ApplyEdits.
	Accepted []TextEdit

	// Skipped are edits dropped because they overlap an earlier edit.
	// A later fix pass may still apply them.
	Skipped []TextEdit

	// Merged counts deletions folded into an overlapping deletion.
	Merged int
}

// HasConflicts reports whether any edit was skipped.
func (p Prepared) HasConflicts() bool {
	return len(p.Skipped) > 0
}

// Prepare validates and sorts edits and resolves overlaps. Overlapping
// deletions are merged into one covering their union; any other overlap keeps
// the edit that starts first. The input slice is not modified.
func Prepare(edits []TextEdit, contentLen int) (Prepared, error) {
	if len(edits) == 0 {
		return Prepared{}, nil
	}
	if err := Validate(edits, contentLen); err != nil {
		return Prepared{}, err
	}

	sorted := slices.Clone(edits)
	Sort(sorted)

	var result Prepared
	current := sorted[0]
	for _, edit := range sorted[1:] {
		switch {
		case edit == current:
			// Identical edits proposed by different diagnostics.
			result.Merged++
		case edit.StartOffset >= current.EndOffset:
			result.Accepted = append(result.Accepted, current)
			current = edit
		case current.IsDeletion() && edit.IsDeletion():
			current.EndOffset = max(current.EndOffset, edit.EndOffset)
			result.Merged++
		default:
			result.Skipped = append(result.Skipped, edit)
		}
	}
	result.Accepted = append(result.Accepted, current)

	return result, nil
}

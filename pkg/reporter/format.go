package reporter

import (
	"fmt"
	"slices"
)

// Format names an output format.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
	FormatDiff  Format = "diff"
)

var formats = []Format{FormatText, FormatJSON, FormatSARIF, FormatDiff}

// ParseFormat accepts the --format values; "" means text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	if f := Format(s); f.IsValid() {
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q; valid formats: text, json, sarif, diff", s)
}

func (f Format) String() string { return string(f) }

// IsValid reports whether f is one of the supported formats.
func (f Format) IsValid() bool {
	return slices.Contains(formats, f)
}

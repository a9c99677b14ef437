package source

import (
	"context"
	"fmt"

	"github.com/yaklabco/doclint/pkg/langdetect"
	"github.com/yaklabco/doclint/pkg/xmldoc"
)

// Parser builds snapshots from source files. The zero value detects the
// language of every file; Language forces one.
//
// Parser is safe for concurrent use.
type Parser struct {
	Language *langdetect.Language
}

// NewParser creates a Parser that detects languages automatically.
func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts and parses every documentation comment in content.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	snapshot := NewSnapshot(path, content)
	if p != nil && p.Language != nil {
		snapshot.Language = *p.Language
	} else {
		snapshot.Language = langdetect.Detect(path, content)
	}

	regions := ExtractRegions(content, snapshot.Language.DocPrefix)
	snapshot.Comments = make([]*xmldoc.Comment, 0, len(regions))
	for _, region := range regions {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		snapshot.Comments = append(snapshot.Comments, xmldoc.Parse(content, region))
	}

	return snapshot, nil
}

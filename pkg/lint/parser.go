package lint

import (
	"context"

	"github.com/yaklabco/doclint/pkg/source"
)

// Parser turns source bytes into a Snapshot with its documentation comments
// parsed. The lint package owns the interface; source.Parser implements it.
//
// Implementations must be deterministic for a given (path, content) pair and
// must not perform I/O or mutate content. Parse returns either a complete
// snapshot whose Path and Content equal the inputs, or nil and an error.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*source.Snapshot, error)
}

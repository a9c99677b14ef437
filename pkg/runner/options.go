// Package runner lints many files concurrently through a lint.Pipeline.
package runner

import (
	"github.com/yaklabco/doclint/pkg/cache"
	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/langdetect"
)

// Options selects the files of a run and how they are processed.
type Options struct {
	Paths      []string // files or directories; empty means "."
	WorkingDir string   // base for relative paths and globs; empty means the process directory

	// Extensions, with the leading dot, filter directory walks. Explicit
	// file arguments are linted regardless.
	Extensions []string

	IncludeGlobs []string
	ExcludeGlobs []string // config ignore and --ignore patterns

	FollowSymlinks bool

	// Jobs caps concurrent files. Values below 1 mean runtime.NumCPU().
	Jobs int

	Config *config.Config

	// Cache serves lint-only runs. Fix runs bypass it.
	Cache *cache.Cache
}

// DefaultExtensions lists every extension with a known doc comment syntax.
func DefaultExtensions() []string { return langdetect.Extensions() }

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	return DefaultExtensions()
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) > 0 {
		return o.Paths
	}
	return []string{"."}
}

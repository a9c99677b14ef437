package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Discover returns the sorted, de-duplicated absolute paths of the source
// files selected by opts.
//
// Explicit file paths are kept when their extension matches, even if they are
// hidden. Directories are walked recursively, skipping hidden entries and
// anything matched by ExcludeGlobs.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := discoverer{opts: opts, workDir: workDir, extensions: opts.effectiveExtensions()}
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if d.selects(abs) {
				add(abs)
			}
			continue
		}

		found, err := d.walk(ctx, abs)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

type discoverer struct {
	opts       Options
	workDir    string
	extensions []string
}

func (d *discoverer) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := p != root && strings.HasPrefix(entry.Name(), ".")
		if entry.IsDir() {
			if hidden || (p != root && matchAny(d.rel(p), d.opts.ExcludeGlobs)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(p)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks {
					return nil
				}
				// Walk the target; WalkDir does not descend through a symlinked root.
				sub, err := d.walk(ctx, target)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if d.selects(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// selects reports whether a file passes the extension and glob filters.
func (d *discoverer) selects(p string) bool {
	ext := filepath.Ext(p)
	if !slices.ContainsFunc(d.extensions, func(e string) bool { return strings.EqualFold(e, ext) }) {
		return false
	}

	rel := d.rel(p)
	if matchAny(rel, d.opts.ExcludeGlobs) {
		return false
	}
	return len(d.opts.IncludeGlobs) == 0 || matchAny(rel, d.opts.IncludeGlobs)
}

func (d *discoverer) rel(p string) string {
	rel, err := filepath.Rel(d.workDir, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

func matchAny(rel string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return matchGlob(rel, filepath.ToSlash(pattern))
	})
}

// matchGlob matches a slash separated path against pattern. "**" matches any
// number of path segments. A pattern without a slash also matches the base
// name, so "*.g.cs" skips generated files in every directory.
func matchGlob(rel, pattern string) bool {
	if !strings.Contains(pattern, "/") && !strings.Contains(pattern, "**") {
		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}
	return matchSegments(strings.Split(rel, "/"), strings.Split(strings.TrimSuffix(pattern, "/"), "/"))
}

func matchSegments(parts, pattern []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			if len(rest) == 0 {
				return true
			}
			for i := range len(parts) + 1 {
				if matchSegments(parts[i:], rest) {
					return true
				}
			}
			return false
		}
		if len(parts) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], parts[0]); err != nil || !ok {
			return false
		}
		parts, pattern = parts[1:], pattern[1:]
	}
	return len(parts) == 0
}

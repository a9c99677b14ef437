package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode applies when WriteAtomic is called with mode 0.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content through a synced sibling temp file
// and a rename. Readers see the old or the new file, never a mix. On error
// the temp file is gone and path is untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	steps := []struct {
		what string
		do   func() error
	}{
		{"write", func() error { _, err := tmp.Write(content); return err }},
		{"sync", tmp.Sync},
		{"close", tmp.Close},
		{"chmod", func() error { return os.Chmod(tmp.Name(), mode) }},
		{"rename", func() error { return os.Rename(tmp.Name(), path) }},
	}
	for _, step := range steps {
		if err := step.do(); err != nil {
			return fmt.Errorf("%s temp file: %w", step.what, err)
		}
	}
	return nil
}

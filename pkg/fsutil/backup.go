package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// BackupMode selects where CreateBackup puts the copy.
type BackupMode string

const (
	// BackupModeSidecar stores the backup next to the original with BackupSuffix appended.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is the suffix used for sidecar backup files.
const BackupSuffix = ".doclint.bak"

// BackupConfig is the backup policy used when fixes are written.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns the backup defaults: disabled, sidecar mode.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath returns the backup location for path, or "" when mode disables
// backups. Unknown modes behave like sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies path to its backup location with the same mode and
// reports whether a backup was written. The first backup wins: an existing
// one is kept across repeated fix runs. A missing original is not an error.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	target := BackupPath(path, cfg.Mode)
	if !cfg.Enabled || target == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	switch _, err := os.Lstat(target); {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("stat backup %s: %w", target, err)
	}

	original, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("open original for backup: %w", err)
	}
	defer original.Close()

	info, err := original.Stat()
	if err != nil {
		return false, fmt.Errorf("stat original for backup: %w", err)
	}
	content, err := io.ReadAll(original)
	if err != nil {
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, target, content, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

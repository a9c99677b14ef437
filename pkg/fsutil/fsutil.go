// Package fsutil holds what doclint needs to rewrite files in place safely:
// content digests, change detection, sidecar backups and atomic writes.
package fsutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

var (
	ErrNilFileInfo      = errors.New("nil FileInfo")
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
)

// Hash is a SHA-256 content digest.
type Hash [sha256.Size]byte

func HashContent(content []byte) Hash { return sha256.Sum256(content) }

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// FileInfo is the state of a file at the moment ReadFile returned it.
type FileInfo struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    Hash
}

// ReadFile returns the content of path with the FileInfo that CheckModified
// later compares against. Missing and unreadable files wrap ErrNotFound and
// ErrPermissionDenied.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	info := &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    HashContent(content),
	}
	return content, info, nil
}

// CheckModified reports whether info.Path changed after it was read. A
// changed mod time or size is enough; with strict, an unchanged stat is
// confirmed by hashing the content again. Deleted files count as modified.
func CheckModified(ctx context.Context, info *FileInfo, strict bool) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}

	stat, err := os.Stat(info.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	case err != nil:
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	case stat.Size() != info.Size || !stat.ModTime().Equal(info.ModTime):
		return true, nil
	case !strict:
		return false, nil
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}
	return HashContent(content) != info.Hash, nil
}

func classify(path string, err error) error {
	var kind error
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = ErrPermissionDenied
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
	return fmt.Errorf("%w: %s: %w", kind, path, err)
}

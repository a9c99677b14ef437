// Package cache stores lint results on disk so unchanged files are not
// re-linted. Entries are keyed by the file content, its extension, the
// configuration fingerprint and the doclint version, and are encoded with
// msgpack.
package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/fsutil"
	"github.com/yaklabco/doclint/pkg/lint"
)

// schemaVersion changes whenever the entry layout changes.
const schemaVersion uint16 = 1

// ErrCorrupt is returned by Get when an entry cannot be decoded.
var ErrCorrupt = errors.New("corrupt cache entry")

// Options configures a Cache.
type Options struct {
	// Dir is the cache directory. Empty means <user cache dir>/doclint.
	Dir string

	// Fingerprint identifies the configuration that produced the results.
	Fingerprint string

	// Version is the doclint version; results from other versions are ignored.
	Version string
}

// Stats counts cache lookups.
type Stats struct {
	Hits   int64
	Misses int64
}

// Cache is a directory of msgpack encoded lint results.
// It is safe for concurrent use; writes go through fsutil.WriteAtomic.
type Cache struct {
	dir         string
	fingerprint string
	version     string

	hits   atomic.Int64
	misses atomic.Int64
}

// entry is the on-disk form of one file's results.
type entry struct {
	Schema      uint16   `msgpack:"v"`
	Diagnostics []record `msgpack:"d"`
}

// record is a diagnostic without its path and fix edits. Fixing always
// bypasses the cache, so edits are never needed from it.
type record struct {
	RuleID      string `msgpack:"id"`
	RuleName    string `msgpack:"n"`
	Message     string `msgpack:"m"`
	Severity    string `msgpack:"s"`
	Suggestion  string `msgpack:"h,omitempty"`
	StartOffset uint32 `msgpack:"so"`
	EndOffset   uint32 `msgpack:"eo"`
	StartLine   uint32 `msgpack:"sl"`
	StartColumn uint32 `msgpack:"sc"`
	EndLine     uint32 `msgpack:"el"`
	EndColumn   uint32 `msgpack:"ec"`
}

// Open creates the cache directory if needed.
func Open(opts Options) (*Cache, error) {
	dir := opts.Dir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("locate user cache dir: %w", err)
		}
		dir = filepath.Join(base, "doclint")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir, fingerprint: opts.Fingerprint, version: opts.Version}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Stats returns the lookup counters.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// Key returns the cache key for a file. The extension takes part because it
// selects the documentation comment language.
func (c *Cache) Key(path string, content []byte) fsutil.Hash {
	h := sha256.New()
	fmt.Fprintf(h, "doclint/%d\x00%s\x00%s\x00%s\x00", schemaVersion, c.version, c.fingerprint,
		strings.ToLower(filepath.Ext(path)))
	h.Write(content)

	var key fsutil.Hash
	copy(key[:], h.Sum(nil))
	return key
}

func (c *Cache) pathFor(key fsutil.Hash) string {
	hexKey := key.String()
	return filepath.Join(c.dir, hexKey[:2], hexKey+".mp")
}

// Get returns the cached diagnostics for path with the given content.
// The returned diagnostics carry path as their FilePath.
func (c *Cache) Get(path string, content []byte) ([]lint.Diagnostic, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	data, err := os.ReadFile(c.pathFor(c.Key(path, content)))
	if errors.Is(err, fs.ErrNotExist) {
		c.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		c.misses.Add(1)
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}

	var e entry
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&e); err != nil {
		c.misses.Add(1)
		return nil, false, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if e.Schema != schemaVersion {
		c.misses.Add(1)
		return nil, false, nil
	}

	diags := make([]lint.Diagnostic, len(e.Diagnostics))
	for i, r := range e.Diagnostics {
		diags[i] = r.diagnostic(path)
	}
	c.hits.Add(1)
	return diags, true, nil
}

// Put stores diagnostics for path with the given content.
func (c *Cache) Put(ctx context.Context, path string, content []byte, diags []lint.Diagnostic) error {
	if c == nil {
		return nil
	}

	e := entry{Schema: schemaVersion, Diagnostics: make([]record, 0, len(diags))}
	for i := range diags {
		r, err := newRecord(&diags[i])
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		e.Diagnostics = append(e.Diagnostics, r)
	}

	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&e); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	target := c.pathFor(c.Key(path, content))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create cache shard: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, target, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("read cache dir: %w", err)
	}
	var errs []error
	for _, de := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, de.Name())); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func newRecord(d *lint.Diagnostic) (record, error) {
	var errs []error
	narrow := func(v int) uint32 {
		n, err := safecast.Conv[uint32](v)
		if err != nil {
			errs = append(errs, err)
		}
		return n
	}

	r := record{
		RuleID:      d.RuleID,
		RuleName:    d.RuleName,
		Message:     d.Message,
		Severity:    string(d.Severity),
		Suggestion:  d.Suggestion,
		StartOffset: narrow(d.StartOffset),
		EndOffset:   narrow(d.EndOffset),
		StartLine:   narrow(d.StartLine),
		StartColumn: narrow(d.StartColumn),
		EndLine:     narrow(d.EndLine),
		EndColumn:   narrow(d.EndColumn),
	}
	return r, errors.Join(errs...)
}

func (r record) diagnostic(path string) lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:      r.RuleID,
		RuleName:    r.RuleName,
		Message:     r.Message,
		Severity:    config.Severity(r.Severity),
		FilePath:    path,
		Suggestion:  r.Suggestion,
		StartOffset: int(r.StartOffset),
		EndOffset:   int(r.EndOffset),
		StartLine:   int(r.StartLine),
		StartColumn: int(r.StartColumn),
		EndLine:     int(r.EndLine),
		EndColumn:   int(r.EndColumn),
	}
}

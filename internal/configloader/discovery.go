package configloader

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths lists the configuration files that apply to a run. Empty
// fields mean no file was found at that level.
type ConfigPaths struct {
	System   string // /etc/doclint/config.yaml or %ProgramData%\doclint
	User     string // $XDG_CONFIG_HOME/doclint/config.yaml
	Project  string // nearest .doclint.yml above the working directory
	Explicit string // --config
}

// Preferred first.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	projectConfigFiles = []string{
		".doclint.yml", ".doclint.yaml", ".doclint.toml",
		"doclint.yml", "doclint.yaml", "doclint.toml",
	}
	levelConfigFiles = []string{"config.yaml", "config.yml", "config.toml"}
	vcsRootMarkers   = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths resolves the system, user and project configuration files
// for workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := findProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	paths := &ConfigPaths{
		System:  firstFile(systemConfigDir(), levelConfigFiles),
		Project: project,
	}
	if dir := userConfigDir(); dir != "" {
		paths.User = firstFile(dir, levelConfigFiles)
	}
	return paths, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/doclint"
	}
	if programData := os.Getenv("ProgramData"); programData != "" {
		return filepath.Join(programData, "doclint")
	}
	return `C:\ProgramData\doclint`
}

// userConfigDir honors XDG_CONFIG_HOME and falls back to ~/.config.
func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "doclint")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "doclint")
}

// findProjectConfig walks up from startDir and returns the first project
// config file. The walk ends at a VCS root or the home directory, whichever
// comes first.
func findProjectConfig(ctx context.Context, startDir string) (string, error) {
	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for dir := range ancestors(start) {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}
		if path := firstFile(dir, projectConfigFiles); path != "" {
			return path, nil
		}
		if dir == home || hasVCSMarker(dir) {
			break
		}
	}
	return "", nil
}

// ancestors yields dir and each of its parents up to the filesystem root.
func ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

func hasVCSMarker(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// IsTOMLConfig reports whether path is decoded as TOML. Everything else is
// YAML.
func IsTOMLConfig(path string) bool {
	return filepath.Ext(path) == ".toml"
}

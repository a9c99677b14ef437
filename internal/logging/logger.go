// Package logging configures the charmbracelet/log loggers used by doclint.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Process-wide logger shared by the CLI.
var (
	mu  sync.Mutex
	std *log.Logger
)

// New returns a logger writing to stderr at level.
// Unknown levels fall back to info; "warning" is accepted for "warn".
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger writing to w at level.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: parseLevel(level)})
}

func parseLevel(level string) log.Level {
	if strings.EqualFold(level, "warning") {
		return log.WarnLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Default returns the process-wide logger, creating it at info level on
// first use.
func Default() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if std == nil {
		std = New("info")
	}
	return std
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	mu.Lock()
	std = logger
	mu.Unlock()
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(parseLevel(level))
}

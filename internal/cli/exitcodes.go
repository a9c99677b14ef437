package cli

import (
	"errors"

	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/runner"
)

// Process exit codes. The 6x/7x values follow sysexits.h.
const (
	ExitSuccess       = 0
	ExitLintErrors    = 1  // error-severity findings
	ExitLintWarnings  = 2  // warnings under --strict
	ExitInvalidUsage  = 64 // EX_USAGE
	ExitConfigError   = 65 // EX_DATAERR
	ExitInternalError = 70 // EX_SOFTWARE
	ExitIOError       = 74 // EX_IOERR
)

// ErrLintIssuesFound fails the lint command after findings were printed.
var ErrLintIssuesFound = errors.New("lint issues found")

// ExitError attaches an exit code to Err.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

func withExitCode(code int, err error) error { return &ExitError{Code: code, Err: err} }

// ExitCodeFromResult is 1 with any error finding, 2 with warnings under
// strict, 0 otherwise.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}
	counts := result.Stats.DiagnosticsBySeverity
	switch {
	case counts[string(config.SeverityError)] > 0:
		return ExitLintErrors
	case strict && counts[string(config.SeverityWarning)] > 0:
		return ExitLintWarnings
	default:
		return ExitSuccess
	}
}

// ExitCodeFromError maps the error returned by Execute. Errors without a
// code are internal failures.
func ExitCodeFromError(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, ErrLintIssuesFound):
		return ExitLintErrors
	default:
		return ExitInternalError
	}
}

package runner

import (
	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/lint"
)

// FileOutcome is what happened to one discovered file. Exactly one of Result
// and Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error

	// Cached marks results replayed from the cache without linting.
	Cached bool
}

// Stats are the run totals shown in summaries and reports.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int // changed on disk before a fix could be written
	FilesErrored    int
	FilesWithIssues int
	FilesModified   int

	DiagnosticsTotal   int
	DiagnosticsFixable int
	DiagnosticsFixed   int

	// DiagnosticsBySeverity is keyed by config.Severity values. Diagnostics
	// without a severity count as warnings.
	DiagnosticsBySeverity map[string]int

	CacheHits int
}

// Result collects every outcome of a run, sorted by path.
type Result struct {
	Files []FileOutcome
	Stats Stats

	// Errors are non-fatal problems, such as a cache entry that could not be
	// stored.
	Errors []error
}

// HasFailures reports whether any error-severity diagnostic was produced.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0
}

// HasIssues reports whether any diagnostic was produced.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: map[string]int{}}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	st := &r.Stats
	res := outcome.Result
	switch {
	case outcome.Error != nil:
		st.FilesErrored++
		return
	case res == nil:
		return
	}

	st.FilesProcessed++
	if outcome.Cached {
		st.CacheHits++
	}
	if res.Skipped {
		st.FilesSkipped++
	}
	if res.Written {
		st.FilesModified++
	}
	st.DiagnosticsFixed += res.TotalEditsApplied

	if res.FileResult == nil || len(res.Diagnostics) == 0 {
		return
	}
	st.FilesWithIssues++
	st.DiagnosticsTotal += len(res.Diagnostics)
	st.DiagnosticsFixable += res.FixableCount()
	for _, diag := range res.Diagnostics {
		severity := diag.Severity
		if severity == "" {
			severity = config.SeverityWarning
		}
		st.DiagnosticsBySeverity[string(severity)]++
	}
}

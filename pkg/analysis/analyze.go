package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"

	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/lint"
	"github.com/yaklabco/doclint/pkg/runner"
)

// Options controls how rules and paths are labelled.
type Options struct {
	RuleFormat config.RuleFormat

	// WorkingDir makes paths relative. Empty keeps them as they are.
	WorkingDir string
}

// DisplayPath returns absPath relative to workDir, or absPath unchanged when
// workDir is empty or the paths cannot be related.
func DisplayPath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	if rel, err := filepath.Rel(workDir, absPath); err == nil {
		return rel
	}
	return absPath
}

// Analyze aggregates result in a single pass. A nil result yields an empty
// report with a non-nil ByRule.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{ByRule: []RuleAnalysis{}}
	if result == nil {
		return report
	}

	rules := make(map[string]*RuleAnalysis)
	ruleFiles := make(map[string]map[string]struct{})

	for _, file := range result.Files {
		report.Totals.addFile(file)
		if file.Error != nil || file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		path := DisplayPath(file.Path, opts.WorkingDir)
		for i := range file.Result.Diagnostics {
			diag := &file.Result.Diagnostics[i]
			sev := severityOf(diag)
			fixable := diag.HasFix()
			report.Totals.addIssue(sev, fixable)

			ra, ok := rules[diag.RuleID]
			if !ok {
				ra = &RuleAnalysis{
					RuleID:   diag.RuleID,
					RuleName: diag.RuleName,
					Rule:     config.FormatRuleID(opts.RuleFormat, diag.RuleID, diag.RuleName),
				}
				rules[diag.RuleID] = ra
				ruleFiles[diag.RuleID] = make(map[string]struct{})
			}
			ra.Issues++
			tally(sev, &ra.Errors, &ra.Warnings, &ra.Infos)
			ra.Fixable = ra.Fixable || fixable
			ruleFiles[diag.RuleID][path] = struct{}{}
		}
	}

	for id, ra := range rules {
		ra.Files = slices.Sorted(maps.Keys(ruleFiles[id]))
		report.ByRule = append(report.ByRule, *ra)
	}
	slices.SortFunc(report.ByRule, func(a, b RuleAnalysis) int {
		return cmp.Or(cmp.Compare(b.Issues, a.Issues), cmp.Compare(a.RuleID, b.RuleID))
	})

	return report
}

func (t *Totals) addFile(file runner.FileOutcome) {
	t.Files++
	if file.Error != nil {
		t.FilesErrored++
		return
	}
	if file.Result == nil || file.Result.FileResult == nil {
		return
	}
	if file.Cached {
		t.FilesCached++
	}
	if file.Result.Written {
		t.FilesModified++
	}
	t.Fixed += file.Result.TotalEditsApplied
	if len(file.Result.Diagnostics) > 0 {
		t.FilesWithIssues++
	}
}

func (t *Totals) addIssue(sev config.Severity, fixable bool) {
	t.Issues++
	tally(sev, &t.Errors, &t.Warnings, &t.Infos)
	if fixable {
		t.Fixable++
	}
}

// severityOf treats a diagnostic without a severity as a warning.
func severityOf(diag *lint.Diagnostic) config.Severity {
	if diag.Severity == "" {
		return config.SeverityWarning
	}
	return diag.Severity
}

func tally(sev config.Severity, errors, warnings, infos *int) {
	switch sev {
	case config.SeverityError:
		*errors++
	case config.SeverityWarning:
		*warnings++
	case config.SeverityInfo:
		*infos++
	}
}

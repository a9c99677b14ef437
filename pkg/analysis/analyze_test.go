package analysis_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/doclint/pkg/analysis"
	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/fix"
	"github.com/yaklabco/doclint/pkg/lint"
	"github.com/yaklabco/doclint/pkg/runner"
)

func outcome(path string, diags ...lint.Diagnostic) runner.FileOutcome {
	return runner.FileOutcome{
		Path:   path,
		Result: &lint.PipelineResult{Path: path, FileResult: &lint.FileResult{Diagnostics: diags}},
	}
}

func diag(id, name string, sev config.Severity, fixable bool) lint.Diagnostic {
	d := lint.Diagnostic{RuleID: id, RuleName: name, Severity: sev, Message: name}
	if fixable {
		d.FixEdits = []fix.TextEdit{{StartOffset: 0, EndOffset: 1, NewText: "x"}}
	}
	return d
}

func TestAnalyze_EmptyResult(t *testing.T) {
	t.Parallel()

	for _, result := range []*runner.Result{nil, {}} {
		report := analysis.Analyze(result, analysis.Options{})

		require.NotNil(t, report)
		assert.Zero(t, report.Totals)
		assert.NotNil(t, report.ByRule)
		assert.Empty(t, report.ByRule)
	}
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	cached := outcome("/src/C.cs")
	cached.Cached = true
	written := outcome("/src/D.cs")
	written.Result.Written = true
	written.Result.TotalEditsApplied = 3

	result := &runner.Result{
		Files: []runner.FileOutcome{
			outcome("/src/A.cs",
				diag("DOC100", "place-text-in-paragraphs", config.SeverityError, false),
				diag("DOC100", "place-text-in-paragraphs", config.SeverityError, false),
				diag("DOC104", "use-see-langword", config.SeverityWarning, true),
			),
			outcome("/src/B.cs", diag("DOC103", "use-unicode-characters", "", true)),
			cached,
			written,
			{Path: "/src/E.cs", Error: errors.New("permission denied")},
		},
	}

	report := analysis.Analyze(result, analysis.Options{})

	assert.Equal(t, analysis.Totals{
		Files:           5,
		FilesWithIssues: 2,
		FilesErrored:    1,
		FilesModified:   1,
		FilesCached:     1,
		Issues:          4,
		Errors:          2,
		Warnings:        2,
		Fixable:         2,
		Fixed:           3,
	}, report.Totals, "a missing severity counts as a warning")
}

func TestAnalyze_ByRule(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			outcome("/src/A.cs",
				diag("DOC101", "use-child-blocks-consistently", config.SeverityWarning, false),
				diag("DOC104", "use-see-langword", config.SeverityWarning, true),
			),
			outcome("/src/B.cs", diag("DOC104", "use-see-langword", config.SeverityInfo, true)),
		},
	}

	report := analysis.Analyze(result, analysis.Options{
		RuleFormat: config.RuleFormatCombined,
		WorkingDir: "/src",
	})

	require.Len(t, report.ByRule, 2)
	assert.Equal(t, analysis.RuleAnalysis{
		RuleID:   "DOC104",
		RuleName: "use-see-langword",
		Rule:     "DOC104/use-see-langword",
		Issues:   2,
		Warnings: 1,
		Infos:    1,
		Fixable:  true,
		Files:    []string{"A.cs", "B.cs"},
	}, report.ByRule[0])

	assert.Equal(t, "DOC101", report.ByRule[1].RuleID)
	assert.Equal(t, 1, report.ByRule[1].Issues)
	assert.False(t, report.ByRule[1].Fixable)
}

func TestAnalyze_ByRuleTiesOrderedByID(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			outcome("z.cs", diag("DOC105", "", config.SeverityWarning, true)),
			outcome("a.cs", diag("DOC100", "", config.SeverityError, false)),
			outcome("m.cs",
				diag("DOC103", "", config.SeverityWarning, true),
				diag("DOC103", "", config.SeverityWarning, true),
			),
		},
	}

	report := analysis.Analyze(result, analysis.Options{})

	var ids []string
	for _, rule := range report.ByRule {
		ids = append(ids, rule.RuleID)
	}
	assert.Equal(t, []string{"DOC103", "DOC100", "DOC105"}, ids)
	assert.Equal(t, "DOC100", report.ByRule[1].Rule, "empty names render as the ID")
}

func TestDisplayPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/abs/A.cs", analysis.DisplayPath("/abs/A.cs", ""))
	assert.Equal(t, "A.cs", analysis.DisplayPath("/abs/A.cs", "/abs"))
	assert.Equal(t, "rel/A.cs", analysis.DisplayPath("rel/A.cs", "/abs"))
}

// Package analysis aggregates a runner.Result into the totals and per-rule
// breakdown printed by the reporters.
package analysis

// ReportVersion is the version of the JSON report layout.
const ReportVersion = "1.0.0"

// Report is the aggregate view of one run.
type Report struct {
	Totals Totals

	// ByRule is ordered by issue count, highest first, then by rule ID.
	ByRule []RuleAnalysis
}

// Totals are the run-wide counts. Errored files count as checked.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	FilesModified   int `json:"filesModified"`
	FilesCached     int `json:"filesCached"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
	Fixable         int `json:"fixable"`
	Fixed           int `json:"fixed"`
}

// RuleAnalysis is the breakdown for one rule. Files holds display paths.
type RuleAnalysis struct {
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Rule     string   `json:"rule"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Fixable  bool     `json:"fixable"`
	Files    []string `json:"files,omitempty"`
}

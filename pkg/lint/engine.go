package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/fix"
	"github.com/yaklabco/doclint/pkg/source"
)

// FileResult is one lint pass over one file.
type FileResult struct {
	Snapshot    *source.Snapshot
	Diagnostics []Diagnostic

	// Edits are the non-overlapping fixes of rules with auto-fix on, sorted
	// by offset. Overlapping edits lose to the one starting first and end up
	// in SkippedEdits.
	Edits         []fix.TextEdit
	SkippedEdits  []fix.TextEdit
	EditConflicts bool

	// RuleErrors maps rule IDs to internal rule failures. A failing rule does
	// not stop the others.
	RuleErrors map[string]error
}

// HasIssues reports whether the pass found anything.
func (fr *FileResult) HasIssues() bool { return len(fr.Diagnostics) > 0 }

// HasFixes reports whether there are edits to apply.
func (fr *FileResult) HasFixes() bool { return len(fr.Edits) > 0 }

// IssueCount is len(fr.Diagnostics).
func (fr *FileResult) IssueCount() int { return len(fr.Diagnostics) }

// FixableCount counts diagnostics that carry edits.
func (fr *FileResult) FixableCount() int {
	n := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].HasFix() {
			n++
		}
	}
	return n
}

// Engine parses files and runs the enabled rules from its registry.
type Engine struct {
	Parser   Parser
	Registry *Registry
}

// NewEngine returns an Engine.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{Parser: parser, Registry: registry}
}

// LintFile runs one pass over content. Rules run in registry order; each
// diagnostic gets the resolved severity of its rule.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	result := &FileResult{Snapshot: snapshot, RuleErrors: map[string]error{}}

	var pending []fix.TextEdit
	for _, resolved := range ResolveRules(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("linting cancelled: %w", err)
		}

		rule := resolved.Rule
		diags, err := rule.Apply(NewRuleContext(ctx, snapshot, cfg, resolved.Config))
		if err != nil {
			result.RuleErrors[rule.ID()] = err
			continue
		}

		for i := range diags {
			d := &diags[i]
			d.Severity = resolved.Severity
			if d.FilePath == "" {
				d.FilePath = path
			}
			if d.RuleName == "" {
				d.RuleName = rule.Name()
			}
			if resolved.AutoFix {
				pending = append(pending, d.FixEdits...)
			}
		}
		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	if len(pending) == 0 {
		return result, nil
	}

	prepared, err := fix.Prepare(pending, len(content))
	if err != nil {
		// Out-of-range edits: report, but fix nothing in this file.
		result.EditConflicts = true
		return result, nil
	}
	result.Edits = prepared.Accepted
	result.SkippedEdits = prepared.Skipped
	result.EditConflicts = prepared.HasConflicts()
	return result, nil
}

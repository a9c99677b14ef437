package rules_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/fix"
	"github.com/yaklabco/doclint/pkg/lint"
	"github.com/yaklabco/doclint/pkg/source"
)

// csharp joins lines into a C# source file with a trailing declaration.
func csharp(lines ...string) string {
	return strings.Join(lines, "\n") + "\npublic void M() { }\n"
}

// applyRule parses content as C# and runs rule over it.
func applyRule(t *testing.T, rule lint.Rule, content string, options map[string]any) ([]lint.Diagnostic, *source.Snapshot) {
	t.Helper()

	snapshot, err := source.NewParser().Parse(context.Background(), "Sample.cs", []byte(content))
	require.NoError(t, err)

	var ruleCfg *config.RuleConfig
	if options != nil {
		ruleCfg = &config.RuleConfig{Options: options}
	}
	ctx := lint.NewRuleContext(context.Background(), snapshot, config.NewConfig(), ruleCfg)

	diags, err := rule.Apply(ctx)
	require.NoError(t, err)
	return diags, snapshot
}

// flagged returns the source text covered by each diagnostic.
func flagged(diags []lint.Diagnostic, snapshot *source.Snapshot) []string {
	var out []string
	for _, d := range diags {
		out = append(out, string(snapshot.Content[d.StartOffset:d.EndOffset]))
	}
	return out
}

// fixed applies the fix edits of every diagnostic.
func fixed(t *testing.T, diags []lint.Diagnostic, content string) string {
	t.Helper()

	var edits []fix.TextEdit
	for _, d := range diags {
		edits = append(edits, d.FixEdits...)
	}
	prepared, err := fix.Prepare(edits, len(content))
	require.NoError(t, err)
	require.False(t, prepared.HasConflicts())
	return string(fix.ApplyEdits([]byte(content), prepared.Accepted))
}

// commentLines returns the first and last line of every documentation comment
// found in content.
func commentLines(t *testing.T, content string) [][2]int {
	t.Helper()

	snapshot, err := source.NewParser().Parse(context.Background(), "Sample.cs", []byte(content))
	require.NoError(t, err)

	out := make([][2]int, 0, len(snapshot.Comments))
	for _, comment := range snapshot.Comments {
		first, _ := snapshot.LineAt(comment.Region.Span.Start)
		last, _ := snapshot.LineAt(comment.Region.Span.End)
		out = append(out, [2]int{first, last})
	}
	return out
}

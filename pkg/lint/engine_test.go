package lint_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/fix"
	"github.com/yaklabco/doclint/pkg/lint"
	"github.com/yaklabco/doclint/pkg/source"
)

// mockParser implements lint.Parser for testing.
type mockParser struct {
	parseFunc func(ctx context.Context, path string, content []byte) (*source.Snapshot, error)
}

func (p *mockParser) Parse(ctx context.Context, path string, content []byte) (*source.Snapshot, error) {
	if p.parseFunc != nil {
		return p.parseFunc(ctx, path, content)
	}
	return source.NewSnapshot(path, content), nil
}

// diagnosticRule returns fixed diagnostics.
type diagnosticRule struct {
	lint.BaseRule
	diags []lint.Diagnostic
	err   error
}

func (r *diagnosticRule) Apply(_ *lint.RuleContext) ([]lint.Diagnostic, error) {
	return r.diags, r.err
}

// replaceRule reports and fixes every occurrence of from. It stops matching
// once the content has been fixed, like a real rule would.
type replaceRule struct {
	lint.BaseRule
	from, to string
}

func (r *replaceRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	content := ctx.File.Content
	offset := 0
	for {
		idx := bytes.Index(content[offset:], []byte(r.from))
		if idx < 0 {
			return diags, nil
		}
		start := offset + idx
		end := start + len(r.from)
		diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.File, spanOf(start, end), "replace "+r.from).
			WithEdit(fix.TextEdit{StartOffset: start, EndOffset: end, NewText: r.to}).
			Build())
		offset = end
	}
}

func registryWith(rules ...lint.Rule) *lint.Registry {
	registry := lint.NewRegistry()
	for _, rule := range rules {
		registry.Register(rule)
	}
	return registry
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := lint.NewRegistry()
	engine := lint.NewEngine(parser, registry)

	assert.Same(t, parser, engine.Parser)
	assert.Same(t, registry, engine.Registry)
}

func TestEngine_LintFile_Basic(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(&mockParser{}, lint.NewRegistry())
	result, err := engine.LintFile(context.Background(), "Widget.cs", []byte("/// <summary/>"), config.NewConfig())
	require.NoError(t, err)

	require.NotNil(t, result.Snapshot)
	assert.Equal(t, "Widget.cs", result.Snapshot.Path)
	assert.False(t, result.HasIssues())
	assert.False(t, result.HasFixes())
	assert.Empty(t, result.RuleErrors)
}

func TestEngine_LintFile_ParseError(t *testing.T) {
	t.Parallel()

	parseErr := errors.New("parse failed")
	parser := &mockParser{
		parseFunc: func(context.Context, string, []byte) (*source.Snapshot, error) {
			return nil, parseErr
		},
	}
	engine := lint.NewEngine(parser, lint.NewRegistry())

	_, err := engine.LintFile(context.Background(), "Widget.cs", nil, config.NewConfig())
	require.ErrorIs(t, err, parseErr)
}

func TestEngine_LintFile_FillsDiagnosticDefaults(t *testing.T) {
	t.Parallel()

	rule := &diagnosticRule{
		BaseRule: lint.NewBaseRule("DOC900", "test-rule", "", nil, false),
		diags:    []lint.Diagnostic{{RuleID: "DOC900", Message: "issue"}},
	}
	engine := lint.NewEngine(&mockParser{}, registryWith(rule))

	cfg := config.NewConfig()
	sev := string(config.SeverityError)
	cfg.Rules["DOC900"] = config.RuleConfig{Severity: &sev}

	result, err := engine.LintFile(context.Background(), "Widget.cs", []byte("x"), cfg)
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)

	diag := result.Diagnostics[0]
	assert.Equal(t, "Widget.cs", diag.FilePath)
	assert.Equal(t, "test-rule", diag.RuleName)
	assert.Equal(t, config.SeverityError, diag.Severity)
	assert.Equal(t, 1, result.IssueCount())
	assert.Equal(t, 0, result.FixableCount())
}

func TestEngine_LintFile_RuleErrorDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	ruleErr := errors.New("boom")
	failing := &diagnosticRule{BaseRule: lint.NewBaseRule("DOC901", "failing", "", nil, false), err: ruleErr}
	working := &diagnosticRule{
		BaseRule: lint.NewBaseRule("DOC902", "working", "", nil, false),
		diags:    []lint.Diagnostic{{RuleID: "DOC902", Message: "found"}},
	}
	engine := lint.NewEngine(&mockParser{}, registryWith(failing, working))

	result, err := engine.LintFile(context.Background(), "Widget.cs", []byte("x"), config.NewConfig())
	require.NoError(t, err)
	require.ErrorIs(t, result.RuleErrors["DOC901"], ruleErr)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "DOC902", result.Diagnostics[0].RuleID)
}

func TestEngine_LintFile_DisabledRuleSkipped(t *testing.T) {
	t.Parallel()

	base := lint.NewBaseRule("DOC903", "opt-in", "", nil, false).DisabledByDefault()
	rule := &diagnosticRule{BaseRule: base, diags: []lint.Diagnostic{{RuleID: "DOC903"}}}
	engine := lint.NewEngine(&mockParser{}, registryWith(rule))

	cfg := config.NewConfig()
	result, err := engine.LintFile(context.Background(), "Widget.cs", []byte("x"), cfg)
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)

	cfg.EnableRules = []string{"doc903"}
	result, err = engine.LintFile(context.Background(), "Widget.cs", []byte("x"), cfg)
	require.NoError(t, err)
	assert.Len(t, result.Diagnostics, 1)
}

func TestEngine_LintFile_EditsOnlyInFixMode(t *testing.T) {
	t.Parallel()

	rule := &replaceRule{BaseRule: lint.NewBaseRule("DOC904", "replace", "", nil, true), from: "null", to: "nothing"}
	engine := lint.NewEngine(&mockParser{}, registryWith(rule))
	content := []byte("a null b null")

	cfg := config.NewConfig()
	result, err := engine.LintFile(context.Background(), "Widget.cs", content, cfg)
	require.NoError(t, err)
	assert.Len(t, result.Diagnostics, 2)
	assert.Equal(t, 2, result.FixableCount())
	assert.Empty(t, result.Edits, "edits are collected only with fix enabled")

	cfg.Fix = true
	result, err = engine.LintFile(context.Background(), "Widget.cs", content, cfg)
	require.NoError(t, err)
	require.Len(t, result.Edits, 2)
	assert.False(t, result.EditConflicts)
	assert.Equal(t, "a nothing b nothing", string(fix.ApplyEdits(content, result.Edits)))
}

func TestEngine_LintFile_ConflictingEdits(t *testing.T) {
	t.Parallel()

	rule := &diagnosticRule{
		BaseRule: lint.NewBaseRule("DOC905", "conflict", "", nil, true),
		diags: []lint.Diagnostic{
			{RuleID: "DOC905", FixEdits: []fix.TextEdit{{StartOffset: 0, EndOffset: 4, NewText: "A"}}},
			{RuleID: "DOC905", FixEdits: []fix.TextEdit{{StartOffset: 2, EndOffset: 6, NewText: "B"}}},
		},
	}
	engine := lint.NewEngine(&mockParser{}, registryWith(rule))

	cfg := config.NewConfig()
	cfg.Fix = true
	result, err := engine.LintFile(context.Background(), "Widget.cs", []byte("0123456789"), cfg)
	require.NoError(t, err)
	assert.True(t, result.EditConflicts)
	require.Len(t, result.Edits, 1)
	assert.Equal(t, "A", result.Edits[0].NewText)
	assert.Len(t, result.SkippedEdits, 1)
}

func TestEngine_LintFile_OutOfRangeEditDropsFixes(t *testing.T) {
	t.Parallel()

	rule := &diagnosticRule{
		BaseRule: lint.NewBaseRule("DOC906", "bad-edit", "", nil, true),
		diags: []lint.Diagnostic{
			{RuleID: "DOC906", FixEdits: []fix.TextEdit{{StartOffset: 0, EndOffset: 100, NewText: "x"}}},
		},
	}
	engine := lint.NewEngine(&mockParser{}, registryWith(rule))

	cfg := config.NewConfig()
	cfg.Fix = true
	result, err := engine.LintFile(context.Background(), "Widget.cs", []byte("short"), cfg)
	require.NoError(t, err)
	assert.Len(t, result.Diagnostics, 1)
	assert.Empty(t, result.Edits)
	assert.True(t, result.EditConflicts)
}

func TestEngine_LintFile_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rule := &diagnosticRule{BaseRule: lint.NewBaseRule("DOC907", "any", "", nil, false)}
	engine := lint.NewEngine(&mockParser{}, registryWith(rule))

	_, err := engine.LintFile(ctx, "Widget.cs", []byte("x"), config.NewConfig())
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngine_LintFile_RealParser(t *testing.T) {
	t.Parallel()

	content := []byte("/// <summary>Adds.</summary>\npublic int Add() => 0;\n")
	engine := lint.NewEngine(source.NewParser(), lint.NewRegistry())

	result, err := engine.LintFile(context.Background(), "Calc.cs", content, config.NewConfig())
	require.NoError(t, err)
	assert.Len(t, result.Snapshot.Comments, 1)
}

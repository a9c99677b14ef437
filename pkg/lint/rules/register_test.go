package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/lint"
	"github.com/yaklabco/doclint/pkg/lint/rules"
	"github.com/yaklabco/doclint/pkg/source"
)

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)

	assert.Equal(t,
		[]string{"DOC100", "DOC101", "DOC102", "DOC103", "DOC104", "DOC105", "DOC106"},
		registry.IDs())

	rule, ok := registry.Get("use-see-langword")
	require.True(t, ok)
	assert.Equal(t, "DOC104", rule.ID())
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	assert.Len(t, lint.DefaultRegistry.IDs(), 7)

	require.NotNil(t, config.DefaultRuleInfoProvider)
	infos := config.DefaultRuleInfoProvider()
	require.Len(t, infos, 7)
	assert.Equal(t, "DOC102", infos[2].ID)
	assert.False(t, infos[2].Enabled)
	assert.True(t, infos[4].CanFix)
}

func TestRules_EndToEnd(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	pipeline := lint.NewPipeline(lint.NewEngine(source.NewParser(), registry))

	input := csharp(
		"/// <summary>Finds <c>item</c>; returns <c>null</c> if missing.</summary>",
		"/// <remarks>",
		"/// Na&iuml;ve scan.",
		"/// <para>Linear.</para>",
		"/// </remarks>",
		"/// <param name=\"item\">The item.</param>",
	)

	cfg := config.NewConfig()
	cfg.Fix = true
	opts := lint.DefaultPipelineOptions()
	opts.Fix = true

	result, err := pipeline.ProcessContent(context.Background(), "Finder.cs", []byte(input), cfg, opts)
	require.NoError(t, err)

	assert.Equal(t, csharp(
		`/// <summary>Finds <paramref name="item"/>; returns <see langword="null"/> if missing.</summary>`,
		"/// <remarks>",
		"/// Naïve scan.",
		"/// <para>Linear.</para>",
		"/// </remarks>",
		"/// <param name=\"item\">The item.</param>",
	), string(result.ModifiedContent))

	// The block rules have no fix, so the remarks text is still reported.
	require.Len(t, result.Diagnostics, 2)
	assert.Equal(t, "DOC100", result.Diagnostics[0].RuleID)
	assert.Equal(t, "DOC101", result.Diagnostics[1].RuleID)
	assert.Equal(t, 1, result.FixPasses)
}

func TestRules_VisualBasic(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	engine := lint.NewEngine(source.NewParser(), registry)

	input := "''' <summary>Returns <c>Nothing</c> or <c>true</c>.</summary>\nPublic Sub M()\nEnd Sub\n"
	result, err := engine.LintFile(context.Background(), "Module.vb", []byte(input), config.NewConfig())
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "DOC104", result.Diagnostics[0].RuleID)
}

package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/doclint/pkg/cache"
	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/lint"
	"github.com/yaklabco/doclint/pkg/lint/rules"
	"github.com/yaklabco/doclint/pkg/runner"
	"github.com/yaklabco/doclint/pkg/source"
)

const nullDoc = "/// Returns <c>null</c>.\npublic object M() => null;\n"

func newRunner() *runner.Runner {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	return runner.New(lint.NewPipeline(lint.NewEngine(source.NewParser(), registry)))
}

func project(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	root := project(t, map[string]string{
		"A.cs":      nullDoc,
		"B.cs":      "/// Returns nothing.\npublic void M() { }\n",
		"lib/C.vb":  "''' Returns <c>true</c> on success.\nPublic Sub M()\nEnd Sub\n",
		"notes.txt": nullDoc,
	})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: root,
		Jobs:       2,
		Config:     config.NewConfig(),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesProcessed)
	assert.Equal(t, 2, result.Stats.FilesWithIssues)
	assert.Equal(t, 2, result.Stats.DiagnosticsTotal)
	assert.Equal(t, 2, result.Stats.DiagnosticsFixable)
	assert.Equal(t, 2, result.Stats.DiagnosticsBySeverity[string(config.SeverityWarning)])
	assert.True(t, result.HasIssues())
	assert.False(t, result.HasFailures())

	require.Len(t, result.Files, 3)
	assert.Equal(t, filepath.Join(root, "A.cs"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(root, "B.cs"), result.Files[1].Path)
	assert.Equal(t, filepath.Join(root, "lib", "C.vb"), result.Files[2].Path)

	diag := result.Files[0].Result.Diagnostics[0]
	assert.Equal(t, "DOC104", diag.RuleID)
	assert.Equal(t, 1, diag.StartLine)
	assert.Equal(t, 13, diag.StartColumn)
	assert.Equal(t, "DOC104", result.Files[2].Result.Diagnostics[0].RuleID)
}

func TestRunner_Run_ErrorSeverity(t *testing.T) {
	t.Parallel()

	root := project(t, map[string]string{"A.cs": nullDoc})
	cfg := config.NewConfig()
	cfg.SeverityDefault = string(config.SeverityError)

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Config: cfg})
	require.NoError(t, err)
	assert.True(t, result.HasFailures())
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: project(t, map[string]string{"README.md": "# x\n"}),
		Config:     config.NewConfig(),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.False(t, result.HasIssues())
}

func TestRunner_Run_Fix(t *testing.T) {
	t.Parallel()

	root := project(t, map[string]string{"A.cs": nullDoc})
	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.NoBackups = true

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesModified)
	assert.Equal(t, 1, result.Stats.DiagnosticsFixed)

	got, err := os.ReadFile(filepath.Join(root, "A.cs"))
	require.NoError(t, err)
	assert.Equal(t, "/// Returns <see langword=\"null\"/>.\npublic object M() => null;\n", string(got))

	_, err = os.Stat(filepath.Join(root, "A.cs.doclint.bak"))
	assert.True(t, os.IsNotExist(err), "backups were disabled")
}

func TestRunner_Run_Cache(t *testing.T) {
	t.Parallel()

	root := project(t, map[string]string{"A.cs": nullDoc, "B.cs": "/// Fine.\n"})
	c, err := cache.Open(cache.Options{Dir: t.TempDir(), Fingerprint: "test", Version: "v0"})
	require.NoError(t, err)

	opts := runner.Options{WorkingDir: root, Config: config.NewConfig(), Cache: c}

	first, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Zero(t, first.Stats.CacheHits)
	assert.Empty(t, first.Errors)

	second, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Stats.CacheHits)
	assert.Equal(t, first.Stats.DiagnosticsTotal, second.Stats.DiagnosticsTotal)

	require.Len(t, second.Files, 2)
	assert.True(t, second.Files[0].Cached)
	cached := second.Files[0].Result.Diagnostics
	require.Len(t, cached, 1)
	assert.Equal(t, first.Files[0].Result.Diagnostics[0].Message, cached[0].Message)
	assert.Equal(t, filepath.Join(root, "A.cs"), cached[0].FilePath)

	assert.Equal(t, cache.Stats{Hits: 2, Misses: 2}, c.Stats())
}

func TestRunner_Run_CacheInvalidatedByContent(t *testing.T) {
	t.Parallel()

	root := project(t, map[string]string{"A.cs": nullDoc})
	c, err := cache.Open(cache.Options{Dir: t.TempDir()})
	require.NoError(t, err)
	opts := runner.Options{WorkingDir: root, Config: config.NewConfig(), Cache: c}

	_, err = newRunner().Run(context.Background(), opts)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "A.cs"), []byte("/// Fine.\n"), 0o644))

	result, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Zero(t, result.Stats.CacheHits)
	assert.Zero(t, result.Stats.DiagnosticsTotal)
}

func TestRunner_Run_FixBypassesCache(t *testing.T) {
	t.Parallel()

	root := project(t, map[string]string{"A.cs": nullDoc})
	c, err := cache.Open(cache.Options{Dir: t.TempDir()})
	require.NoError(t, err)

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.NoBackups = true

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Config: cfg, Cache: c})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesModified)
	assert.Zero(t, result.Stats.CacheHits)
	assert.Equal(t, cache.Stats{}, c.Stats())
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	root := project(t, map[string]string{"A.cs": nullDoc})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{WorkingDir: root, Config: config.NewConfig()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Run_DiscoveryError(t *testing.T) {
	t.Parallel()

	_, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing.cs"},
		Config:     config.NewConfig(),
	})
	require.Error(t, err)
}

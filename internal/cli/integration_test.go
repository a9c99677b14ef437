package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/doclint/internal/cli"
	"github.com/yaklabco/doclint/pkg/reporter"
)

// testSourceWithKeyword triggers DOC104/use-see-langword on line 1.
const testSourceWithKeyword = "/// <summary>Returns <c>null</c> when empty.</summary>\npublic object M() => null;\n"

const testSourceFixed = "/// <summary>Returns <see langword=\"null\"/> when empty.</summary>\npublic object M() => null;\n"

// workspace writes Widget.cs and a config file into a temp dir and returns both paths.
func workspace(t *testing.T, configName, configContent string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "Widget.cs")
	require.NoError(t, os.WriteFile(file, []byte(testSourceWithKeyword), 0o644))
	cfgFile := filepath.Join(dir, configName)
	require.NoError(t, os.WriteFile(cfgFile, []byte(configContent), 0o644))
	return file, cfgFile
}

// execute runs the root command and returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_RuleFormatFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		ruleFormat     string
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:           "format name shows rule name only",
			ruleFormat:     "name",
			wantContains:   []string{"(use-see-langword)"},
			wantNotContain: []string{"DOC104"},
		},
		{
			name:           "format id shows rule ID only",
			ruleFormat:     "id",
			wantContains:   []string{"(DOC104)"},
			wantNotContain: []string{"use-see-langword"},
		},
		{
			name:         "format combined shows both ID and name",
			ruleFormat:   "combined",
			wantContains: []string{"(DOC104/use-see-langword)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file, cfgFile := workspace(t, ".doclint.yml", "severity_default: warning\n")
			stdout, _, _ := execute(t,
				"lint",
				"--config", cfgFile,
				"--rule-format", tt.ruleFormat,
				"--no-context",
				"--color", "never",
				file,
			)

			for _, want := range tt.wantContains {
				assert.Contains(t, stdout, want, "rule-format=%s", tt.ruleFormat)
			}
			for _, notWant := range tt.wantNotContain {
				assert.NotContains(t, stdout, notWant, "rule-format=%s", tt.ruleFormat)
			}
		})
	}
}

func TestIntegration_DefaultOutput(t *testing.T) {
	t.Parallel()

	file, cfgFile := workspace(t, ".doclint.yml", "severity_default: warning\n")
	stdout, _, err := execute(t, "lint", "--config", cfgFile, "--color", "never", file)
	require.NoError(t, err, "warnings alone do not fail the run")

	assert.Contains(t, stdout, "Widget.cs:1:22")
	assert.Contains(t, stdout, `Use <see langword="null"/>`)
	assert.Contains(t, stdout, "(use-see-langword)")
	assert.Contains(t, stdout, "1 issue (1 warnings) in 1 file, 1 fixable")
}

func TestIntegration_DisableRuleInConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config string
		file   string
	}{
		{"yaml rule name", "rules:\n  use-see-langword:\n    enabled: false\n", ".doclint.yml"},
		{"yaml rule id", "rules:\n  DOC104:\n    enabled: false\n", ".doclint.yml"},
		{"toml rule id", "[rules.DOC104]\nenabled = false\n", ".doclint.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file, cfgFile := workspace(t, tt.file, tt.config)
			stdout, _, err := execute(t, "lint", "--config", cfgFile, "--color", "never", file)
			require.NoError(t, err)
			assert.NotContains(t, stdout, "use-see-langword")
			assert.Contains(t, stdout, "No issues found")
		})
	}
}

func TestIntegration_EnableDisableFlags(t *testing.T) {
	t.Parallel()

	file, cfgFile := workspace(t, ".doclint.yml", "severity_default: warning\n")

	stdout, _, err := execute(t, "lint", "--config", cfgFile, "--disable", "DOC104", "--color", "never", file)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No issues found")
}

func TestIntegration_ExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config string
		args   []string
		want   int
	}{
		{"warnings pass", "severity_default: warning\n", nil, cli.ExitSuccess},
		{"warnings fail in strict mode", "severity_default: warning\n", []string{"--strict"}, cli.ExitLintWarnings},
		{"errors fail", "severity_default: error\n", nil, cli.ExitLintErrors},
		{"invalid config", "severity_default: loud\n", nil, cli.ExitConfigError},
		{"unknown language", "severity_default: warning\n", []string{"--language", "Cobol"}, cli.ExitConfigError},
		{"unknown format", "severity_default: warning\n", []string{"--format", "xml"}, cli.ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file, cfgFile := workspace(t, ".doclint.yml", tt.config)
			args := append([]string{"lint", "--config", cfgFile, "--color", "never"}, tt.args...)
			_, _, err := execute(t, append(args, file)...)
			assert.Equal(t, tt.want, cli.ExitCodeFromError(err), "error: %v", err)
		})
	}
}

func TestIntegration_JSONOutputIncludesBothIDAndName(t *testing.T) {
	t.Parallel()

	file, cfgFile := workspace(t, ".doclint.yml", "severity_default: warning\n")
	stdout, _, err := execute(t, "lint", "--config", cfgFile, "--format", "json", file)
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	assert.Equal(t, "test", output.ToolVersion)
	require.Len(t, output.Files, 1)
	assert.Equal(t, "Widget.cs", filepath.Base(output.Files[0].Path))
	require.Len(t, output.Files[0].Diagnostics, 1)
	assert.Equal(t, "DOC104", output.Files[0].Diagnostics[0].RuleID)
	assert.Equal(t, "use-see-langword", output.Files[0].Diagnostics[0].RuleName)
	assert.Equal(t, 1, output.Summary.Issues)
}

func TestIntegration_SARIFOutputListsAllRules(t *testing.T) {
	t.Parallel()

	file, cfgFile := workspace(t, ".doclint.yml", "severity_default: warning\n")
	stdout, _, err := execute(t, "lint", "--config", cfgFile, "--format", "sarif", file)
	require.NoError(t, err)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	require.Len(t, output.Runs, 1)

	driver := output.Runs[0].Tool.Driver
	assert.Equal(t, "doclint", driver.Name)
	assert.Equal(t, "test", driver.Version)
	assert.Len(t, driver.Rules, 7)

	require.Len(t, output.Runs[0].Results, 1)
	assert.Equal(t, "DOC104", output.Runs[0].Results[0].RuleID)
	assert.Equal(t, 4, output.Runs[0].Results[0].RuleIndex)
}

func TestIntegration_Fix(t *testing.T) {
	t.Parallel()

	file, cfgFile := workspace(t, ".doclint.yml", "severity_default: error\n")
	stdout, _, err := execute(t, "lint", "--config", cfgFile, "--fix", "--no-backups", "--color", "never", file)
	require.NoError(t, err, "all issues are fixed")

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, testSourceFixed, string(content))
	assert.Contains(t, stdout, "1 fixed in 1 file")

	_, err = os.Stat(file + ".bak")
	assert.True(t, os.IsNotExist(err), "no backup expected")
}

func TestIntegration_DryRunDiff(t *testing.T) {
	t.Parallel()

	file, cfgFile := workspace(t, ".doclint.yml", "severity_default: warning\n")
	stdout, _, err := execute(t,
		"lint", "--config", cfgFile, "--fix", "--dry-run", "--format", "diff", "--color", "never", file)
	require.NoError(t, err)

	assert.Contains(t, stdout, "-/// <summary>Returns <c>null</c> when empty.</summary>\n")
	assert.Contains(t, stdout, "+/// <summary>Returns <see langword=\"null\"/> when empty.</summary>\n")
	assert.Contains(t, stdout, "1 file changed, 1 insertion(+), 1 deletion(-)")

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, testSourceWithKeyword, string(content), "dry run must not modify the file")
}

func TestIntegration_Cache(t *testing.T) {
	t.Parallel()

	file, cfgFile := workspace(t, ".doclint.yml", "severity_default: warning\n")
	cacheDir := t.TempDir()
	args := []string{"lint", "--config", cfgFile, "--cache", "--cache-dir", cacheDir, "--format", "json", file}

	first, _, err := execute(t, args...)
	require.NoError(t, err)
	second, _, err := execute(t, args...)
	require.NoError(t, err)

	var cold, warm reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(first), &cold))
	require.NoError(t, json.Unmarshal([]byte(second), &warm))

	assert.Equal(t, 0, cold.Summary.FilesCached)
	assert.Equal(t, 1, warm.Summary.FilesCached)
	require.Len(t, warm.Files, 1)
	assert.True(t, warm.Files[0].Cached)
	require.Len(t, warm.Files[0].Diagnostics, 1)
	assert.Equal(t, cold.Files[0].Diagnostics[0].RuleID, warm.Files[0].Diagnostics[0].RuleID)
	assert.Equal(t, cold.Files[0].Diagnostics[0].StartColumn, warm.Files[0].Diagnostics[0].StartColumn)

	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestIntegration_RulesCommand(t *testing.T) {
	t.Parallel()

	for _, ruleFormat := range []string{"name", "id", "combined"} {
		_, _, err := execute(t, "rules", "--rule-format", ruleFormat)
		require.NoError(t, err, "rules command should succeed with --rule-format=%s", ruleFormat)
	}

	stdout, _, err := execute(t, "rules", "--format", "json")
	require.NoError(t, err)

	var rules []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &rules))
	require.Len(t, rules, 7)
	assert.Equal(t, "DOC100", rules[0]["id"])
	assert.Equal(t, "place-text-in-paragraphs", rules[0]["name"])

	text, _, err := execute(t, "rules", "--rule-format", "combined")
	require.NoError(t, err)
	assert.Contains(t, text, "DOC104/use-see-langword")

	_, _, err = execute(t, "rules", "--format", "xml")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}

func TestIntegration_InitWritesLoadableConfig(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			cfgFile := filepath.Join(dir, "doclint."+format)
			_, _, err := execute(t, "init", "--format", format, "--full", "--output", cfgFile)
			require.NoError(t, err)

			content, err := os.ReadFile(cfgFile)
			require.NoError(t, err)
			assert.Contains(t, string(content), "DOC104")

			_, _, err = execute(t, "init", "--format", format, "--output", cfgFile)
			require.Error(t, err, "existing file requires --force")

			_, _, err = execute(t, "init", "--format", format, "--output", cfgFile, "--force")
			require.NoError(t, err)

			file := filepath.Join(dir, "Widget.cs")
			require.NoError(t, os.WriteFile(file, []byte(testSourceWithKeyword), 0o644))
			_, _, err = execute(t, "lint", "--config", cfgFile, "--color", "never", file)
			assert.NotEqual(t, cli.ExitConfigError, cli.ExitCodeFromError(err), "generated config must load: %v", err)
		})
	}

	_, _, err := execute(t, "init", "--format", "json", "--output", filepath.Join(t.TempDir(), "x.json"))
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}

func TestIntegration_UnknownFlag(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "lint", "--no-such-flag")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}

package config

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// TemplateOptions selects what `doclint init` writes.
type TemplateOptions struct {
	Full         bool     // document every rule instead of the commented starter file
	Format       string   // TemplateYAML (default) or TemplateTOML
	IncludeRules []string // restrict Full output to these IDs
}

// RuleInfo is the rule metadata shown in templates, `doclint rules` and the
// SARIF driver.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	CanFix      bool
}

// RuleInfoProvider lists the registered rules. It is a hook because the
// lint packages import config, not the other way round.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is installed by package rules at init.
//
//nolint:gochecknoglobals // Set once by the rules package.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate renders a configuration file in opts.Format.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var d dialect
	switch opts.Format {
	case "", TemplateYAML:
		d = yamlDialect
	case TemplateTOML:
		d = tomlDialect
	default:
		return nil, fmt.Errorf("unknown template format %q (want yaml or toml)", opts.Format)
	}
	if !opts.Full {
		return []byte(d.minimal), nil
	}
	return d.full(ruleInfos(opts.IncludeRules)), nil
}

// dialect holds the format specific pieces of a template.
type dialect struct {
	minimal string
	header  string
	rule    func(b *strings.Builder, r RuleInfo)
}

func (d dialect) full(rules []RuleInfo) []byte {
	var b strings.Builder
	b.WriteString(d.header)
	for _, r := range rules {
		d.rule(&b, r)
	}
	return []byte(b.String())
}

const templateIntro = `# doclint configuration
# See: https://github.com/yaklabco/doclint
`

const fullIntro = `# doclint configuration - Full Template
# See: https://github.com/yaklabco/doclint
#
# Every rule is listed with its default settings. Edit as needed.
`

//nolint:gochecknoglobals // Read-only.
var yamlDialect = dialect{
	minimal: templateIntro + `
# Source language, detected per file when unset: "C#", "F#" or "Visual Basic .NET"
# language: "C#"

# Severity of rules without their own: error, warning or info
# severity_default: warning

# Extensions linted when walking directories
# extensions: [".cs", ".vb", ".fs"]

# Glob patterns to skip
# ignore:
#   - "bin/**"
#   - "obj/**"

# Per-rule settings, keyed by rule ID or name
# rules:
#   DOC100:
#     enabled: true
#     severity: error
#   DOC104:
#     options:
#       keywords: [null, true, false]
`,
	header: fullIntro + `
severity_default: warning

extensions:
  - ".cs"
  - ".vb"
  - ".fs"

# Sidecar backups written before a fix replaces a file
backups:
  enabled: true
  mode: sidecar

# Lint result cache (also --cache)
cache:
  enabled: false

ignore:
  - "bin/**"
  - "obj/**"
  - ".git/**"

rules:
`,
	rule: func(b *strings.Builder, r RuleInfo) {
		writeRuleDoc(b, "  ", r)
		fmt.Fprintf(b, "  %s:\n    enabled: %t\n    severity: %s\n", r.ID, r.Enabled, r.Severity)
		b.WriteString("    # options:\n    #   key: value\n")
	},
}

//nolint:gochecknoglobals // Read-only.
var tomlDialect = dialect{
	minimal: templateIntro + `
# Source language, detected per file when unset: "C#", "F#" or "Visual Basic .NET"
# language = "C#"

# Severity of rules without their own: error, warning or info
# severity_default = "warning"

# Extensions linted when walking directories
# extensions = [".cs", ".vb", ".fs"]

# Glob patterns to skip
# ignore = ["bin/**", "obj/**"]

# Per-rule settings, keyed by rule ID or name
# [rules.DOC100]
# enabled = true
# severity = "error"
#
# [rules.DOC104.options]
# keywords = ["null", "true", "false"]
`,
	header: fullIntro + `
severity_default = "warning"
extensions = [".cs", ".vb", ".fs"]
ignore = ["bin/**", "obj/**", ".git/**"]

# Sidecar backups written before a fix replaces a file
[backups]
enabled = true
mode = "sidecar"

# Lint result cache (also --cache)
[cache]
enabled = false
`,
	rule: func(b *strings.Builder, r RuleInfo) {
		b.WriteByte('\n')
		writeRuleDoc(b, "", r)
		fmt.Fprintf(b, "[rules.%s]\nenabled = %t\nseverity = %q\n", r.ID, r.Enabled, r.Severity)
	},
}

// writeRuleDoc writes the comment block above a rule section.
func writeRuleDoc(b *strings.Builder, indent string, r RuleInfo) {
	comment := func(text string) { fmt.Fprintf(b, "%s# %s\n", indent, text) }

	b.WriteByte('\n')
	comment(r.ID + ": " + r.Name)
	for _, line := range wrapWords(r.Description, 70) {
		comment(line)
	}
	if len(r.Tags) > 0 {
		comment("Tags: " + strings.Join(r.Tags, ", "))
	}
	if r.CanFix {
		comment("Auto-fix: yes")
	}
}

// wrapWords breaks text into lines of at most width bytes. Longer words get
// a line of their own.
func wrapWords(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// ruleInfos returns the known rules sorted by ID, limited to include when
// it is non-empty.
func ruleInfos(include []string) []RuleInfo {
	var rules []RuleInfo
	if DefaultRuleInfoProvider != nil {
		rules = DefaultRuleInfoProvider()
	} else {
		rules = slices.Clone(builtinRules)
	}
	if len(include) > 0 {
		rules = slices.DeleteFunc(rules, func(r RuleInfo) bool { return !slices.Contains(include, r.ID) })
	}
	slices.SortFunc(rules, func(a, b RuleInfo) int { return cmp.Compare(a.ID, b.ID) })
	return rules
}

// builtinRules backs templates when package rules is not linked in.
//
//nolint:gochecknoglobals // Read-only.
var builtinRules = []RuleInfo{
	{
		ID: "DOC100", Name: "place-text-in-paragraphs", Enabled: true, Severity: SeverityWarning,
		Description: "Inline content in remarks and note elements must be wrapped in a block element",
		Tags:        []string{"blocks"},
	},
	{
		ID: "DOC101", Name: "use-child-blocks-consistently", Enabled: true, Severity: SeverityWarning,
		Description: "An element that contains a block element must not also contain bare inline content",
		Tags:        []string{"blocks"},
	},
	{
		ID: "DOC102", Name: "use-child-blocks-consistently-across-elements", Severity: SeverityWarning,
		Description: "Sibling elements with the same name must use block content consistently",
		Tags:        []string{"blocks"},
	},
	{
		ID: "DOC103", Name: "use-unicode-characters", Enabled: true, Severity: SeverityWarning,
		Description: "HTML named entities must be written as the characters they represent",
		Tags:        []string{"text"}, CanFix: true,
	},
	{
		ID: "DOC104", Name: "use-see-langword", Enabled: true, Severity: SeverityWarning,
		Description: "Language keywords must be referenced with see langword instead of code formatting",
		Tags:        []string{"references"}, CanFix: true,
	},
	{
		ID: "DOC105", Name: "use-paramref", Enabled: true, Severity: SeverityWarning,
		Description: "Parameters must be referenced with paramref instead of code formatting",
		Tags:        []string{"references"}, CanFix: true,
	},
	{
		ID: "DOC106", Name: "use-typeparamref", Enabled: true, Severity: SeverityWarning,
		Description: "Type parameters must be referenced with typeparamref instead of code formatting",
		Tags:        []string{"references"}, CanFix: true,
	},
}

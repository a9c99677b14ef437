package configloader

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/langdetect"
	"github.com/yaklabco/doclint/pkg/lint"
)

// ValidationError is one problem found in a configuration, formatted as
// "file: field: message".
type ValidationError struct {
	Field    string // dotted key, e.g. rules.DOC104.severity
	Value    any
	Message  string
	FilePath string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.FilePath, e.Field} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(append(parts, e.Message), ": ")
}

// ValidationResult separates fatal errors from warnings. Unknown rules and
// bad rule severities only warn because they are ignored at resolve time.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

// AllMessages prefixes every finding with "error: " or "warning: ".
func (r *ValidationResult) AllMessages() []string {
	out := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		out = append(out, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		out = append(out, "warning: "+w.Error())
	}
	return out
}

func finding(field string, value any, format string, args ...any) ValidationError {
	return ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)}
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, finding(field, value, format, args...))
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, finding(field, value, format, args...))
}

// oneOf fails field when value is set and not among allowed.
func oneOf[T ~string](r *ValidationResult, field, what string, value T, allowed ...T) {
	if value == "" || slices.Contains(allowed, value) {
		return
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	r.fail(field, value, "invalid %s %q; must be one of: %s", what, value, strings.Join(names, ", "))
}

// Validate checks cfg against lint.DefaultRegistry.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateWithRegistry(cfg, lint.DefaultRegistry)
}

// ValidateWithRegistry checks cfg. Rule keys are resolved through registry;
// a nil registry skips the unknown rule checks.
func ValidateWithRegistry(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	r := &ValidationResult{}
	if cfg == nil {
		return r
	}

	if cfg.Language != "" {
		if _, ok := langdetect.Lookup(cfg.Language); !ok {
			r.fail("language", cfg.Language,
				"invalid language %q; must be one of: C#, F#, Visual Basic .NET", cfg.Language)
		}
	}
	oneOf(r, "severity_default", "severity", config.Severity(cfg.SeverityDefault),
		config.SeverityError, config.SeverityWarning, config.SeverityInfo)
	oneOf(r, "format", "format", cfg.Format,
		config.FormatText, config.FormatJSON, config.FormatSARIF, config.FormatDiff)
	oneOf(r, "rule_format", "rule format", cfg.RuleFormat,
		config.RuleFormatName, config.RuleFormatID, config.RuleFormatCombined)
	oneOf(r, "backups.mode", "backup mode", cfg.Backups.Mode, "sidecar", "none")

	if cfg.Jobs < 0 {
		r.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	for i, ext := range cfg.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			r.fail(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}
	for i, pattern := range cfg.Ignore {
		if err := checkGlob(pattern); err != nil {
			r.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	r.checkRules(cfg, registry)
	return r
}

func (r *ValidationResult) checkRules(cfg *config.Config, registry *lint.Registry) {
	known := func(key string) bool {
		if registry == nil {
			return true
		}
		_, ok := registry.Get(key)
		return ok
	}

	for key, rc := range cfg.Rules {
		if !known(key) {
			r.warn("rules."+key, key, "unknown rule %q; it will be ignored", key)
		}
		if rc.Severity != nil && !config.Severity(*rc.Severity).IsValid() {
			r.warn("rules."+key+".severity", *rc.Severity, "invalid severity %q; it will be ignored", *rc.Severity)
		}
	}

	lists := map[string][]string{"enable": cfg.EnableRules, "disable": cfg.DisableRules, "fix-rules": cfg.FixRules}
	for _, field := range []string{"enable", "disable", "fix-rules"} {
		for _, key := range lists[field] {
			if !known(key) {
				r.warn(field, key, "unknown rule %q; it will be ignored", key)
			}
		}
	}
}

// checkGlob rejects malformed patterns. "**" segments are accepted as is.
func checkGlob(pattern string) error {
	for segment := range strings.SplitSeq(pattern, "/") {
		if segment == "**" {
			continue
		}
		if _, err := path.Match(segment, ""); err != nil {
			return err
		}
	}
	return nil
}

// ValidateWithFile is Validate with every finding attributed to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	r := Validate(cfg)
	for _, list := range [][]ValidationError{r.Errors, r.Warnings} {
		for i := range list {
			list[i].FilePath = filePath
		}
	}
	return r
}

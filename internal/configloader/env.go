package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/doclint/pkg/config"
)

const envVarPrefix = "DOCLINT_"

// envMapping binds one DOCLINT_* variable to a configuration field.
type envMapping struct {
	field string // dotted config key, e.g. "cache.dir"
	help  string
	set   func(cfg *config.Config, raw string) error
}

func stringEnv(field, help string, assign func(*config.Config, string)) envMapping {
	return envMapping{field: field, help: help, set: func(cfg *config.Config, raw string) error {
		assign(cfg, raw)
		return nil
	}}
}

func boolEnv(field, help string, assign func(*config.Config, bool)) envMapping {
	return envMapping{field: field, help: help, set: func(cfg *config.Config, raw string) error {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", raw)
		}
		assign(cfg, b)
		return nil
	}}
}

func intEnv(field, help string, assign func(*config.Config, int)) envMapping {
	return envMapping{field: field, help: help, set: func(cfg *config.Config, raw string) error {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		assign(cfg, n)
		return nil
	}}
}

func listEnv(field, help string, assign func(*config.Config, []string)) envMapping {
	return envMapping{field: field, help: help, set: func(cfg *config.Config, raw string) error {
		assign(cfg, parseSliceValue(raw))
		return nil
	}}
}

// envMappings is keyed by the variable name without DOCLINT_.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"LANGUAGE": stringEnv("language", "Force the source language: C#, F#, or Visual Basic .NET",
		func(c *config.Config, v string) { c.Language = v }),
	"SEVERITY_DEFAULT": stringEnv("severity_default", "Default severity: error, warning, or info",
		func(c *config.Config, v string) { c.SeverityDefault = v }),
	"FORMAT": stringEnv("format", "Output format: text, json, sarif, or diff",
		func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
	"RULE_FORMAT": stringEnv("rule_format", "Rule identifiers in output: name, id, or combined",
		func(c *config.Config, v string) { c.RuleFormat = config.RuleFormat(v) }),
	"CACHE_DIR": stringEnv("cache.dir", "Result cache directory",
		func(c *config.Config, v string) { c.Cache.Dir = v }),
	"BACKUPS_MODE": stringEnv("backups.mode", "Backup mode: sidecar or none",
		func(c *config.Config, v string) { c.Backups.Mode = v }),

	"FIX": boolEnv("fix", "Enable auto-fix: true or false",
		func(c *config.Config, v bool) { c.Fix = v }),
	"DRY_RUN": boolEnv("dry_run", "Dry-run mode: true or false",
		func(c *config.Config, v bool) { c.DryRun = v }),
	"CACHE": boolEnv("cache.enabled", "Enable the result cache: true or false",
		func(c *config.Config, v bool) { c.Cache.Enabled = v }),
	"BACKUPS_ENABLED": boolEnv("backups.enabled", "Enable backups when fixing: true or false",
		func(c *config.Config, v bool) { c.Backups.Enabled = v }),
	"NO_BACKUPS": boolEnv("no_backups", "Disable backups: true or false",
		func(c *config.Config, v bool) { c.NoBackups = v }),

	"JOBS": intEnv("jobs", "Number of parallel workers (0 = auto)",
		func(c *config.Config, v int) { c.Jobs = v }),

	"EXTENSIONS": listEnv("extensions", "Comma-separated list of file extensions to lint",
		func(c *config.Config, v []string) { c.Extensions = v }),
	"IGNORE": listEnv("ignore", "Comma-separated list of ignore patterns",
		func(c *config.Config, v []string) { c.Ignore = v }),
}

// LoadFromEnv overlays every non-empty DOCLINT_* variable onto cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for suffix, mapping := range envMappings {
		name := envVarPrefix + suffix
		if raw := os.Getenv(name); raw != "" {
			if err := applyEnvValue(cfg, mapping, raw, name); err != nil {
				return err
			}
		}
	}
	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, raw, name string) error {
	if err := mapping.set(cfg, raw); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// parseSliceValue splits a comma list, dropping blank items.
func parseSliceValue(raw string) []string {
	var out []string
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// GetEnvVarName returns the variable that sets the dotted config key field,
// or "".
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars maps each supported variable to its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		out[envVarPrefix+suffix] = mapping.help
	}
	return out
}

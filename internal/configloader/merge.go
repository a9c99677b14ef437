package configloader

import (
	"maps"

	"github.com/yaklabco/doclint/pkg/config"
)

// overlay returns over unless it is the zero value.
func overlay[T comparable](base, over T) T {
	var zero T
	if over == zero {
		return base
	}
	return over
}

// overlaySlice replaces base with over when over was set at all, so an
// explicit empty list clears inherited entries.
func overlaySlice(base, over []string) []string {
	if over == nil {
		return base
	}
	return over
}

// merge layers override on top of base. Zero scalars and nil slices in
// override leave base untouched. Booleans can only be switched on, so a
// higher layer cannot unset a lower one. Rule entries merge field by field.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := *base

	out.Language = overlay(base.Language, override.Language)
	out.SeverityDefault = overlay(base.SeverityDefault, override.SeverityDefault)
	out.Format = overlay(base.Format, override.Format)
	out.RuleFormat = overlay(base.RuleFormat, override.RuleFormat)
	out.Jobs = overlay(base.Jobs, override.Jobs)

	out.Fix = base.Fix || override.Fix
	out.DryRun = base.DryRun || override.DryRun
	out.NoBackups = base.NoBackups || override.NoBackups

	out.Backups.Enabled = base.Backups.Enabled || override.Backups.Enabled
	out.Backups.Mode = overlay(base.Backups.Mode, override.Backups.Mode)
	out.Cache.Enabled = base.Cache.Enabled || override.Cache.Enabled
	out.Cache.Dir = overlay(base.Cache.Dir, override.Cache.Dir)

	out.Ignore = overlaySlice(base.Ignore, override.Ignore)
	out.Extensions = overlaySlice(base.Extensions, override.Extensions)
	out.EnableRules = overlaySlice(base.EnableRules, override.EnableRules)
	out.DisableRules = overlaySlice(base.DisableRules, override.DisableRules)
	out.FixRules = overlaySlice(base.FixRules, override.FixRules)

	out.Rules = mergeRules(base.Rules, override.Rules)

	return &out
}

// mergeRules returns a fresh map so neither input is aliased by the result.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	out := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(out, base)
	for key, rc := range override {
		if existing, ok := out[key]; ok {
			rc = mergeRuleConfig(existing, rc)
		}
		out[key] = rc
	}
	return out
}

func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	out := base
	if override.Enabled != nil {
		out.Enabled = override.Enabled
	}
	if override.Severity != nil {
		out.Severity = override.Severity
	}
	if override.AutoFix != nil {
		out.AutoFix = override.AutoFix
	}

	if override.Options != nil {
		options := make(map[string]any, len(base.Options)+len(override.Options))
		maps.Copy(options, base.Options)
		maps.Copy(options, override.Options)
		out.Options = options
	}
	return out
}

// MergeAll folds configs left to right; later entries win. Nil entries are
// skipped.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for _, cfg := range configs {
		out = merge(out, cfg)
	}
	return out
}

package lint

import (
	"slices"
	"strings"

	"github.com/yaklabco/doclint/pkg/config"
)

// ResolvedRule is a rule with its effective settings for one run.
type ResolvedRule struct {
	Rule     Rule
	Enabled  bool
	Severity config.Severity
	AutoFix  bool
	Config   *config.RuleConfig // nil when the rule has no section
}

// ResolveRules returns the enabled rules of registry under cfg, ordered by
// ID. A nil cfg leaves every rule at its defaults.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var out []ResolvedRule
	for _, rule := range registry.Rules() {
		rr := ResolvedRule{
			Rule:     rule,
			Enabled:  rule.DefaultEnabled(),
			Severity: rule.DefaultSeverity(),
			AutoFix:  rule.CanFix(),
		}
		if cfg != nil {
			rr.apply(cfg)
		}
		if rr.Enabled {
			out = append(out, rr)
		}
	}
	return out
}

// apply layers severity_default, the rule section, --enable/--disable,
// --fix-rules and finally --fix over the rule defaults.
func (rr *ResolvedRule) apply(cfg *config.Config) {
	rule := rr.Rule
	if sev := config.Severity(cfg.SeverityDefault); sev.IsValid() {
		rr.Severity = sev
	}

	if rc, ok := ruleSection(cfg.Rules, rule); ok {
		rr.Config = &rc
		if rc.Enabled != nil {
			rr.Enabled = *rc.Enabled
		}
		if rc.Severity != nil && config.Severity(*rc.Severity).IsValid() {
			rr.Severity = config.Severity(*rc.Severity)
		}
		if rc.AutoFix != nil {
			rr.AutoFix = *rc.AutoFix && rule.CanFix()
		}
	}

	names := func(key string) bool { return refersTo(key, rule) }
	switch {
	case slices.ContainsFunc(cfg.DisableRules, names):
		rr.Enabled = false
	case slices.ContainsFunc(cfg.EnableRules, names):
		rr.Enabled = true
	}

	if len(cfg.FixRules) > 0 {
		rr.AutoFix = rule.CanFix() && slices.ContainsFunc(cfg.FixRules, names)
	}
	rr.AutoFix = rr.AutoFix && cfg.Fix
}

func ruleSection(rules map[string]config.RuleConfig, rule Rule) (config.RuleConfig, bool) {
	if rc, ok := rules[rule.ID()]; ok {
		return rc, true
	}
	for key, rc := range rules {
		if refersTo(key, rule) {
			return rc, true
		}
	}
	return config.RuleConfig{}, false
}

// refersTo matches IDs case-insensitively and names exactly.
func refersTo(key string, rule Rule) bool {
	return strings.EqualFold(key, rule.ID()) || key == rule.Name()
}

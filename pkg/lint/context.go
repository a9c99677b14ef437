package lint

import (
	"context"

	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/source"
	"github.com/yaklabco/doclint/pkg/xmldoc"
)

// RuleContext is handed to Rule.Apply. A new one is created for every rule
// run, so it holds the context.Context directly.
type RuleContext struct {
	Ctx      context.Context
	File     *source.Snapshot
	Comments []*xmldoc.Comment // File.Comments, or nil without a file
	Config   *config.Config

	// RuleConfig is the rule's own section of the configuration, if any.
	RuleConfig *config.RuleConfig
}

// NewRuleContext builds the context for one rule run over file.
func NewRuleContext(
	ctx context.Context,
	file *source.Snapshot,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	rc := &RuleContext{Ctx: ctx, File: file, Config: cfg, RuleConfig: ruleCfg}
	if file != nil {
		rc.Comments = file.Comments
	}
	return rc
}

// Cancelled reports whether the run should stop.
func (rc *RuleContext) Cancelled() bool {
	return rc.Ctx.Err() != nil
}

// Diagnostic starts a finding of rule covering span.
func (rc *RuleContext) Diagnostic(rule Rule, span xmldoc.Span, message string) *DiagnosticBuilder {
	return NewDiagnostic(rule.ID(), rc.File, span, message).WithRuleName(rule.Name())
}

// Option returns the raw value of a rule option, or fallback when unset.
func (rc *RuleContext) Option(key string, fallback any) any {
	if rc.RuleConfig == nil {
		return fallback
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return fallback
}

func optionAs[T any](rc *RuleContext, key string, fallback T) T {
	if v, ok := rc.Option(key, fallback).(T); ok {
		return v
	}
	return fallback
}

// OptionString returns a string option, or fallback when unset or mistyped.
func (rc *RuleContext) OptionString(key, fallback string) string {
	return optionAs(rc, key, fallback)
}

// OptionBool returns a boolean option, or fallback when unset or mistyped.
func (rc *RuleContext) OptionBool(key string, fallback bool) bool {
	return optionAs(rc, key, fallback)
}

// OptionInt returns an integer option. TOML yields int64 and JSON float64,
// both are accepted.
func (rc *RuleContext) OptionInt(key string, fallback int) int {
	switch v := rc.Option(key, fallback).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

// OptionStringSlice returns a list option. Decoded YAML and TOML lists arrive
// as []any; their non-string items are dropped, and a list without strings
// yields fallback.
func (rc *RuleContext) OptionStringSlice(key string, fallback []string) []string {
	switch v := rc.Option(key, fallback).(type) {
	case []string:
		return v
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}

package lint

import "github.com/yaklabco/doclint/pkg/config"

// BaseRule carries the static metadata of a rule. Rules embed it and
// implement Apply.
type BaseRule struct {
	meta struct {
		id, name, description string
		tags                  []string
		fixable, optIn        bool
	}
}

// NewBaseRule describes a rule that is on by default with warning severity.
func NewBaseRule(id, name, description string, tags []string, fixable bool) BaseRule {
	var b BaseRule
	b.meta.id = id
	b.meta.name = name
	b.meta.description = description
	b.meta.tags = tags
	b.meta.fixable = fixable
	return b
}

// DisabledByDefault returns a copy that only runs when enabled explicitly.
func (b BaseRule) DisabledByDefault() BaseRule {
	b.meta.optIn = true
	return b
}

func (b *BaseRule) ID() string { return b.meta.id }
func (b *BaseRule) Name() string { return b.meta.name }
func (b *BaseRule) Description() string { return b.meta.description }
func (b *BaseRule) Tags() []string { return b.meta.tags }
func (b *BaseRule) CanFix() bool { return b.meta.fixable }
func (b *BaseRule) DefaultEnabled() bool {
	return !b.meta.optIn
}

// DefaultSeverity is warning for every built-in rule.
func (b *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityWarning
}

// Apply reports nothing. Embedding rules shadow it.
func (b *BaseRule) Apply(*RuleContext) ([]Diagnostic, error) {
	return nil, nil
}

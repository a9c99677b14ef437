package rules

import (
	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/lint"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Block content rules
	registry.Register(NewPlaceTextInParagraphsRule())                    // DOC100
	registry.Register(NewUseChildBlocksConsistentlyRule())               // DOC101
	registry.Register(NewUseChildBlocksConsistentlyAcrossElementsRule()) // DOC102

	// Text rules
	registry.Register(NewUseUnicodeCharactersRule()) // DOC103

	// Reference rules
	registry.Register(NewUseSeeLangwordRule())  // DOC104
	registry.Register(NewUseParamrefRule())     // DOC105
	registry.Register(NewUseTypeparamrefRule()) // DOC106
}

// RuleInfos describes the rules of registry for configuration templates.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Tags:        rule.Tags(),
			CanFix:      rule.CanFix(),
		})
	}
	return infos
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(lint.DefaultRegistry)
	}
}

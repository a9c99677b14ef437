package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/doclint/pkg/config"
)

func TestFormatRuleID(t *testing.T) {
	tests := []struct {
		name     string
		format   config.RuleFormat
		ruleID   string
		ruleName string
		want     string
	}{
		{"name format", config.RuleFormatName, "DOC104", "use-see-langword", "use-see-langword"},
		{"id format", config.RuleFormatID, "DOC104", "use-see-langword", "DOC104"},
		{"combined format", config.RuleFormatCombined, "DOC104", "use-see-langword", "DOC104/use-see-langword"},
		{"name format empty name", config.RuleFormatName, "DOC104", "", "DOC104"},
		{"default to name", config.RuleFormat(""), "DOC104", "use-see-langword", "use-see-langword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FormatRuleID(tt.format, tt.ruleID, tt.ruleName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := config.NewConfig()
	assert.Equal(t, config.RuleFormatName, cfg.RuleFormat)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.DefaultExtensions(), cfg.Extensions)
	assert.True(t, config.Severity(cfg.SeverityDefault).IsValid())
}

func TestSeverity_IsValid(t *testing.T) {
	assert.True(t, config.SeverityError.IsValid())
	assert.True(t, config.SeverityWarning.IsValid())
	assert.True(t, config.SeverityInfo.IsValid())
	assert.False(t, config.Severity("fatal").IsValid())
}

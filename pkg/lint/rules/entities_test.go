package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/doclint/pkg/lint/rules"
)

func TestUseUnicodeCharactersRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
		fixed string
	}{
		{
			name:  "html entity",
			input: csharp("/// <summary>Caf&eacute; menu.</summary>"),
			want:  []string{"&eacute;"},
			fixed: csharp("/// <summary>Café menu.</summary>"),
		},
		{
			name:  "xml entities are fine",
			input: csharp("/// <summary>a &amp; b &lt; c &gt; d &quot;e&quot; &apos;</summary>"),
		},
		{
			name:  "unknown entity is left alone",
			input: csharp("/// <summary>&bogus;</summary>"),
		},
		{
			name:  "numeric references are fine",
			input: csharp("/// <summary>&#228; &#xE4;</summary>"),
		},
		{
			name:  "several entities across lines",
			input: csharp("/// <summary>", "/// &auml;&ouml;", "/// <c>&nbsp;</c>", "/// </summary>"),
			want:  []string{"&auml;", "&ouml;", "&nbsp;"},
			fixed: csharp("/// <summary>", "/// äö", "/// <c>\u00a0</c>", "/// </summary>"),
		},
		{
			name:  "cdata content is literal",
			input: csharp("/// <summary><![CDATA[&auml;]]> &ouml;</summary>"),
			want:  []string{"&ouml;"},
			fixed: csharp("/// <summary><![CDATA[&auml;]]> ö</summary>"),
		},
		{
			name:  "top level text",
			input: csharp("/// &copy; 2024"),
			want:  []string{"&copy;"},
			fixed: csharp("/// © 2024"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diags, snapshot := applyRule(t, rules.NewUseUnicodeCharactersRule(), tt.input, nil)
			assert.Equal(t, tt.want, flagged(diags, snapshot))
			if tt.fixed != "" {
				assert.Equal(t, tt.fixed, fixed(t, diags, tt.input))
			}
		})
	}
}

func TestUseUnicodeCharactersRule_Message(t *testing.T) {
	t.Parallel()

	diags, _ := applyRule(t, rules.NewUseUnicodeCharactersRule(), csharp("/// <summary>&auml;</summary>"), nil)
	require.Len(t, diags, 1)
	assert.Equal(t, "DOC103", diags[0].RuleID)
	assert.Contains(t, diags[0].Message, "ä")
	assert.True(t, diags[0].HasFix())
}

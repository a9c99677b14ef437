package config

// FormatRuleID renders a rule identifier for output. An empty name always
// renders as the ID; unknown formats render as the name.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	switch {
	case ruleName == "", format == RuleFormatID:
		return ruleID
	case format == RuleFormatCombined:
		return ruleID + "/" + ruleName
	}
	return ruleName
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/doclint/internal/logging"
	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleJSON represents a rule in JSON output.
type ruleJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Fixable     bool     `json:"fixable"`
	Tags        []string `json:"tags,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, descriptions,
default severity, and whether they support auto-fixing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := ruleInfos(lint.DefaultRegistry)

			switch flags.format {
			case formatJSON:
				return outputRulesJSON(cmd.OutOrStdout(), infos)
			case "", "text":
			default:
				return withExitCode(ExitInvalidUsage,
					fmt.Errorf("invalid format %q: must be text or json", flags.format))
			}

			logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")

			if len(infos) == 0 {
				logger.Info("no rules registered")
				return nil
			}

			logger.Info("available rules")

			ruleFormat := config.RuleFormat(flags.ruleFormat)
			for _, info := range infos {
				fixable := "-"
				if info.CanFix {
					fixable = "yes"
				}

				fields := []any{
					logging.FieldSeverity, info.Severity,
					logging.FieldFixable, fixable,
					logging.FieldDescription, info.Description,
				}
				if !info.Enabled {
					fields = append(fields, "default", "off")
				}
				if len(info.Tags) > 0 {
					fields = append(fields, "tags", strings.Join(info.Tags, ","))
				}

				logger.Info(config.FormatRuleID(ruleFormat, info.ID, info.Name), fields...)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

// ruleInfos describes every rule in registry, ordered by ID.
func ruleInfos(registry *lint.Registry) []config.RuleInfo {
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

// outputRulesJSON writes rules as a JSON array.
func outputRulesJSON(w io.Writer, infos []config.RuleInfo) error {
	out := make([]ruleJSON, 0, len(infos))
	for _, info := range infos {
		out = append(out, ruleJSON{
			ID:          info.ID,
			Name:        info.Name,
			Description: info.Description,
			Severity:    string(info.Severity),
			Enabled:     info.Enabled,
			Fixable:     info.CanFix,
			Tags:        info.Tags,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

package reporter

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/doclint/pkg/analysis"
	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/lint"
	"github.com/yaklabco/doclint/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	sarifToolURI   = "https://github.com/yaklabco/doclint"
)

// SARIFOutput is a SARIF 2.1.0 log with a single run. Only the subset of the
// format doclint emits is modeled.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

type SARIFRun struct {
	Tool struct {
		Driver SARIFDriver `json:"driver"`
	} `json:"tool"`
	Results []SARIFResult `json:"results"`
}

type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFText is SARIF's message and multiformatMessageString object.
type SARIFText struct {
	Text string `json:"text"`
}

type SARIFRule struct {
	ID               string    `json:"id"`
	Name             string    `json:"name,omitempty"`
	ShortDescription SARIFText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any   `json:"properties,omitempty"`
}

type SARIFRuleConfig struct {
	Level string `json:"level"`
}

type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFText       `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

type SARIFArtifact struct {
	URI string `json:"uri"`
}

type SARIFLocation struct {
	PhysicalLocation struct {
		ArtifactLocation SARIFArtifact `json:"artifactLocation"`
		Region           SARIFRegion   `json:"region"`
	} `json:"physicalLocation"`
}

// SARIFRegion uses 1-based lines and columns with an exclusive end column.
type SARIFRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFByteRegion addresses the bytes a replacement deletes.
type SARIFByteRegion struct {
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
}

type SARIFFix struct {
	Description     SARIFText             `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifact      `json:"artifactLocation"`
	Replacements     []SARIFReplacement `json:"replacements"`
}

type SARIFReplacement struct {
	DeletedRegion   SARIFByteRegion `json:"deletedRegion"`
	InsertedContent *SARIFText      `json:"insertedContent,omitempty"`
}

// SARIFReporter writes one SARIF log per run. Fixable diagnostics carry
// their edits as fixes.
type SARIFReporter struct {
	opts Options
}

func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts}
}

// Report returns the number of results written.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	doc := r.document(result)

	out := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	enc := json.NewEncoder(out)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}
	return len(doc.Runs[0].Results), out.Flush()
}

// driverRules assigns stable ruleIndex values: registered rules first, then
// any rule seen only in results.
type driverRules struct {
	list  []SARIFRule
	index map[string]int
}

func (d *driverRules) indexOf(id string, build func() SARIFRule) int {
	if i, ok := d.index[id]; ok {
		return i
	}
	d.index[id] = len(d.list)
	d.list = append(d.list, build())
	return len(d.list) - 1
}

func sarifRule(id, name, description string, sev config.Severity) SARIFRule {
	return SARIFRule{
		ID:               id,
		Name:             name,
		ShortDescription: SARIFText{Text: description},
		DefaultConfig:    &SARIFRuleConfig{Level: severityToSARIFLevel(sev)},
	}
}

func (r *SARIFReporter) document(result *runner.Result) *SARIFOutput {
	rules := &driverRules{index: make(map[string]int, len(r.opts.Rules))}
	for _, info := range r.opts.Rules {
		rules.indexOf(info.ID, func() SARIFRule {
			rule := sarifRule(info.ID, info.Name, info.Description, info.Severity)
			if len(info.Tags) > 0 || info.CanFix {
				rule.Properties = map[string]any{"tags": info.Tags, "fixable": info.CanFix}
			}
			return rule
		})
	}

	run := SARIFRun{Results: []SARIFResult{}}
	if result != nil {
		for _, file := range result.Files {
			if file.Result == nil || file.Result.FileResult == nil {
				continue
			}
			uri := filepath.ToSlash(analysis.DisplayPath(file.Path, r.opts.WorkingDir))
			for i := range file.Result.Diagnostics {
				diag := &file.Result.Diagnostics[i]
				idx := rules.indexOf(diag.RuleID, func() SARIFRule {
					return sarifRule(diag.RuleID, diag.RuleName, diag.Message, diag.Severity)
				})
				run.Results = append(run.Results, sarifResult(diag, uri, idx))
			}
		}
	}

	run.Tool.Driver = SARIFDriver{
		Name:           "doclint",
		Version:        r.opts.ToolVersion,
		InformationURI: sarifToolURI,
		Rules:          rules.list,
	}
	return &SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{run}}
}

func sarifResult(diag *lint.Diagnostic, uri string, ruleIndex int) SARIFResult {
	var loc SARIFLocation
	loc.PhysicalLocation.ArtifactLocation.URI = uri
	loc.PhysicalLocation.Region = SARIFRegion{
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
	}

	res := SARIFResult{
		RuleID:    diag.RuleID,
		RuleIndex: ruleIndex,
		Level:     severityToSARIFLevel(diag.Severity),
		Message:   SARIFText{Text: diag.Message},
		Locations: []SARIFLocation{loc},
	}
	if !diag.HasFix() {
		return res
	}

	change := SARIFArtifactChange{ArtifactLocation: SARIFArtifact{URI: uri}}
	for _, edit := range diag.FixEdits {
		change.Replacements = append(change.Replacements, SARIFReplacement{
			DeletedRegion:   SARIFByteRegion{ByteOffset: edit.StartOffset, ByteLength: edit.EndOffset - edit.StartOffset},
			InsertedContent: &SARIFText{Text: edit.NewText},
		})
	}
	res.Fixes = []SARIFFix{{
		Description:     SARIFText{Text: cmp.Or(diag.Suggestion, diag.Message)},
		ArtifactChanges: []SARIFArtifactChange{change},
	}}
	return res
}

// severityToSARIFLevel maps info to note. Anything unrecognized is a warning.
func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}

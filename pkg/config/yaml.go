package config

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// ToYAML encodes the file-level settings of c. CLI-only fields are omitted.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// FromYAML decodes a .doclint.yaml document.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	cfg.ensureRules()
	return &cfg, nil
}

// FromTOML decodes a .doclint.toml document. The returned keys are those
// that match no field; keys below rules.<id>.options are free-form and never
// reported.
func FromTOML(data []byte) (*Config, []string, error) {
	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("parse toml: %w", err)
	}
	cfg.ensureRules()

	var unknown []string
	for _, key := range meta.Undecoded() {
		if len(key) > 3 && key[0] == "rules" && key[2] == "options" {
			continue
		}
		unknown = append(unknown, key.String())
	}
	return &cfg, unknown, nil
}

func (c *Config) ensureRules() {
	if c.Rules == nil {
		c.Rules = map[string]RuleConfig{}
	}
}

// Fingerprint digests the settings that change which diagnostics a file
// gets: language, default severity, rule sections and the enable/disable
// lists. Output, fixing and concurrency settings do not contribute.
func (c *Config) Fingerprint() string {
	if c == nil {
		return ""
	}

	h := sha256.New()
	relevant := struct {
		Language        string                `yaml:"language"`
		SeverityDefault string                `yaml:"severity_default"`
		Rules           map[string]RuleConfig `yaml:"rules"`
	}{c.Language, c.SeverityDefault, c.Rules}
	// yaml.v3 sorts map keys, so the encoding is stable.
	if data, err := yaml.Marshal(relevant); err == nil {
		h.Write(data)
	}
	fmt.Fprintf(h, "enable=%s\ndisable=%s\n",
		strings.Join(slices.Sorted(slices.Values(c.EnableRules)), ","),
		strings.Join(slices.Sorted(slices.Values(c.DisableRules)), ","))

	return hex.EncodeToString(h.Sum(nil))
}

// Clone returns a deep copy of c, including rule options.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := *c
	out.Extensions = slices.Clone(c.Extensions)
	out.Ignore = slices.Clone(c.Ignore)
	out.EnableRules = slices.Clone(c.EnableRules)
	out.DisableRules = slices.Clone(c.DisableRules)
	out.FixRules = slices.Clone(c.FixRules)

	if c.Rules != nil {
		out.Rules = make(map[string]RuleConfig, len(c.Rules))
		for id, rc := range c.Rules {
			out.Rules[id] = rc.clone()
		}
	}
	return &out
}

func (rc RuleConfig) clone() RuleConfig {
	return RuleConfig{
		Enabled:  clonePtr(rc.Enabled),
		Severity: clonePtr(rc.Severity),
		AutoFix:  clonePtr(rc.AutoFix),
		Options:  cloneOptions(rc.Options),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneOptions(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := maps.Clone(m)
	for k, v := range out {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies the container shapes YAML and TOML decode into.
func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneOptions(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return slices.Clone(v)
	}
	return v
}

// Package config holds the doclint configuration types and their file
// encodings. Discovery and merging live in internal/configloader.
package config

// Severity of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

func (s Severity) IsValid() bool {
	return s == SeverityError || s == SeverityWarning || s == SeverityInfo
}

// RuleConfig is one entry under rules. Nil pointers leave the rule default
// in place.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled" toml:"enabled"`
	Severity *string        `yaml:"severity" toml:"severity"`
	AutoFix  *bool          `yaml:"auto_fix" toml:"auto_fix"`
	Options  map[string]any `yaml:"options" toml:"options"`
}

type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode" toml:"mode"` // sidecar or none
}

type CacheConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Dir     string `yaml:"dir" toml:"dir"` // empty: user cache directory
}

type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatSARIF OutputFormat = "sarif"
	FormatDiff  OutputFormat = "diff"
)

// RuleFormat selects how rules are named in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // use-see-langword
	RuleFormatID       RuleFormat = "id"       // DOC104
	RuleFormatCombined RuleFormat = "combined" // DOC104/use-see-langword
)

// Config is the effective configuration of a run. Fields tagged "-" come
// only from flags and DOCLINT_* variables.
type Config struct {
	// Language forces a linguist language name for every file. Empty means
	// detect per file.
	Language        string                `yaml:"language,omitempty" toml:"language"`
	SeverityDefault string                `yaml:"severity_default" toml:"severity_default"`
	Extensions      []string              `yaml:"extensions,omitempty" toml:"extensions"`
	Rules           map[string]RuleConfig `yaml:"rules" toml:"rules"` // keyed by rule ID after loading
	Ignore          []string              `yaml:"ignore" toml:"ignore"`
	Backups         BackupsConfig         `yaml:"backups" toml:"backups"`
	Cache           CacheConfig           `yaml:"cache" toml:"cache"`

	Fix          bool         `yaml:"-" toml:"-"`
	DryRun       bool         `yaml:"-" toml:"-"`
	Format       OutputFormat `yaml:"-" toml:"-"`
	RuleFormat   RuleFormat   `yaml:"-" toml:"-"`
	Jobs         int          `yaml:"-" toml:"-"` // 0: one per CPU
	EnableRules  []string     `yaml:"-" toml:"-"`
	DisableRules []string     `yaml:"-" toml:"-"`
	FixRules     []string     `yaml:"-" toml:"-"` // limit fixing to these rules
	NoBackups    bool         `yaml:"-" toml:"-"`
}

// DefaultExtensions are linted when no extensions are configured.
func DefaultExtensions() []string {
	return []string{".cs", ".csx", ".fs", ".fsi", ".fsx", ".vb"}
}

// NewConfig returns the built-in defaults: warnings, sidecar backups, text
// output with rule names.
func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityWarning),
		Extensions:      DefaultExtensions(),
		Rules:           map[string]RuleConfig{},
		Backups:         BackupsConfig{Enabled: true, Mode: "sidecar"},
		Format:          FormatText,
		RuleFormat:      RuleFormatName,
	}
}

// Package configloader resolves the effective doclint configuration from
// defaults, system, user and project files, DOCLINT_* variables and flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/doclint/pkg/config"
	"github.com/yaklabco/doclint/pkg/lint"
)

// LoadOptions selects the configuration sources of Load.
type LoadOptions struct {
	// WorkingDir anchors the project config search. Defaults to the process
	// directory.
	WorkingDir string

	// ExplicitPath is --config. It replaces the project config.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Registry resolves rule names used as keys under rules. Defaults to
	// lint.DefaultRegistry.
	Registry *lint.Registry

	// CLIConfig holds flag values and wins over every other source.
	CLIConfig *config.Config
}

// LoadResult is the effective configuration and where it came from.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string // files merged, lowest precedence first
	Warnings   []string
}

// layer is one configuration file in precedence order.
type layer struct {
	kind string
	path string
	skip bool
}

// Load merges, lowest precedence first: defaults, system file, user file,
// project file or --config, DOCLINT_* variables and flags. The result is
// validated; the first validation error is returned as *ValidationError.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath
	result := &LoadResult{Paths: paths}

	cfg := config.NewConfig()
	for _, l := range []layer{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig || opts.ExplicitPath != ""},
		{"explicit", paths.Explicit, false},
	} {
		if l.skip || l.path == "" {
			continue
		}
		fileCfg, err := result.readLayer(l, registry)
		if err != nil {
			return nil, err
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, l.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	cfg = merge(cfg, opts.CLIConfig)

	validation := ValidateWithRegistry(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// readLayer decodes one file by extension and canonicalizes its rule keys.
func (r *LoadResult) readLayer(l layer, registry *lint.Registry) (*config.Config, error) {
	content, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("load %s config: read file: %w", l.kind, err)
	}

	var (
		cfg     *config.Config
		unknown []string
	)
	if IsTOMLConfig(l.path) {
		cfg, unknown, err = config.FromTOML(content)
	} else {
		cfg, err = config.FromYAML(content)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s config: %s: %w", l.kind, l.path, err)
	}

	for _, key := range unknown {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%s: unknown key %q", l.path, key))
	}
	r.canonicalizeRules(cfg, registry, l.path)
	return cfg, nil
}

// canonicalizeRules rekeys rule sections by rule ID, so "use-see-langword"
// and "DOC104" address the same rule. Unknown keys are kept for validation
// to report. When a file names one rule twice, one section wins and a
// warning is recorded.
func (r *LoadResult) canonicalizeRules(cfg *config.Config, registry *lint.Registry, path string) {
	if len(cfg.Rules) == 0 {
		return
	}

	rules := make(map[string]config.RuleConfig, len(cfg.Rules))
	keyFor := map[string]string{}
	for key, rc := range cfg.Rules {
		id, _, ok := registry.Resolve(key)
		if !ok {
			rules[key] = rc
			continue
		}
		if prev, dup := keyFor[id]; dup {
			r.Warnings = append(r.Warnings, fmt.Sprintf(
				"%s: duplicate rule configuration: %q and %q both refer to %s", path, prev, key, id))
		}
		keyFor[id] = key
		rules[id] = rc
	}
	cfg.Rules = rules
}

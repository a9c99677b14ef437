package lint

import (
	"slices"
	"strings"
	"sync"
)

// Registry is a concurrency-safe set of rules addressable by ID or name.
// IDs match case-insensitively ("doc104" finds DOC104); names match exactly.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule   // upper-cased ID -> rule
	names map[string]string // name -> upper-cased ID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: map[string]Rule{}, names: map[string]string{}}
}

// Register adds rule, replacing any rule with the same ID.
func (r *Registry) Register(rule Rule) {
	key := strings.ToUpper(rule.ID())

	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.rules[key]; ok {
		delete(r.names, old.Name())
	}
	r.rules[key] = rule
	r.names[rule.Name()] = key
}

// Get finds a rule by ID, then by name.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.rules[strings.ToUpper(key)]; ok {
		return rule, true
	}
	if id, ok := r.names[key]; ok {
		return r.rules[id], true
	}
	return nil, false
}

// Resolve is Get plus the canonical ID of the rule found.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	rule, ok := r.Get(key)
	if !ok {
		return "", nil, false
	}
	return rule.ID(), rule, true
}

// Rules returns every rule ordered by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	out := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Rule) int { return strings.Compare(a.ID(), b.ID()) })
	return out
}

// IDs returns the rule IDs in the order of Rules.
func (r *Registry) IDs() []string {
	rules := r.Rules()
	ids := make([]string, 0, len(rules))
	for _, rule := range rules {
		ids = append(ids, rule.ID())
	}
	return ids
}

// DefaultRegistry receives the built-in rules from package rules.
//
//nolint:gochecknoglobals // Rules register here at init.
var DefaultRegistry = NewRegistry()

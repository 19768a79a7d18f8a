package lint

import (
	"sort"
	"sync"
)

// globalRegistry holds the rules registered from init functions.
var globalRegistry = NewRegistry()

// Registry stores lint rules keyed by id.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register adds a rule, replacing any rule with the same id.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID()] = rule
}

// GetAll returns every rule, sorted by id.
func (r *Registry) GetAll() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID() < rules[j].ID() })
	return rules
}

// GetByID returns a rule by its id.
func (r *Registry) GetByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

// GetByGroup returns the rules in group, sorted by id.
func (r *Registry) GetByGroup(group string) []Rule {
	var out []Rule
	for _, rule := range r.GetAll() {
		if rule.Group() == group {
			out = append(out, rule)
		}
	}
	return out
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// Register adds a rule to the global registry.
// Call this from init() functions in rule packages.
func Register(rule Rule) { globalRegistry.Register(rule) }

// GetAll returns all globally registered rules, sorted by id.
func GetAll() []Rule { return globalRegistry.GetAll() }

// GetByID returns a globally registered rule.
func GetByID(id string) (Rule, bool) { return globalRegistry.GetByID(id) }

// Count returns the number of globally registered rules.
func Count() int { return globalRegistry.Count() }

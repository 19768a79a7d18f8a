package lint

import "strings"

// Config switches rules off or moves them to another severity. Rule ids
// match without regard to case. The zero value and a nil *Config both run
// every rule at its own severity.
type Config struct {
	rules map[string]ruleSetting
}

type ruleSetting struct {
	off      bool
	severity Severity
	override bool
}

func NewConfig() *Config {
	return &Config{rules: make(map[string]ruleSetting)}
}

func ruleKey(id string) string { return strings.ToUpper(strings.TrimSpace(id)) }

func (c *Config) lookup(id string) ruleSetting {
	if c == nil {
		return ruleSetting{}
	}
	return c.rules[ruleKey(id)]
}

func (c *Config) update(id string, fn func(*ruleSetting)) *Config {
	if c.rules == nil {
		c.rules = make(map[string]ruleSetting)
	}
	key := ruleKey(id)
	s := c.rules[key]
	fn(&s)
	c.rules[key] = s
	return c
}

// IsDisabled reports whether the rule is switched off.
func (c *Config) IsDisabled(ruleID string) bool {
	return c.lookup(ruleID).off
}

// GetSeverity returns the overridden severity for the rule, or fallback.
func (c *Config) GetSeverity(ruleID string, fallback Severity) Severity {
	if s := c.lookup(ruleID); s.override {
		return s.severity
	}
	return fallback
}

// Disable switches the rule off. It returns c for chaining.
func (c *Config) Disable(ruleID string) *Config {
	return c.update(ruleID, func(s *ruleSetting) { s.off = true })
}

// SetSeverity reports the rule's findings at severity instead of its default.
func (c *Config) SetSeverity(ruleID string, severity Severity) *Config {
	return c.update(ruleID, func(s *ruleSetting) {
		s.severity = severity
		s.override = true
	})
}

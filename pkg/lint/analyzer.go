package lint

import "sort"

// Analyzer runs registered rules against a project.
type Analyzer struct {
	config   *Config
	registry *Registry
}

// NewAnalyzer creates an analyzer over the global registry.
func NewAnalyzer(config *Config) *Analyzer {
	return NewAnalyzerWithRegistry(config, globalRegistry)
}

// NewAnalyzerWithRegistry creates an analyzer over a specific registry.
func NewAnalyzerWithRegistry(config *Config, registry *Registry) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	return &Analyzer{config: config, registry: registry}
}

// Analyze runs every enabled rule and returns the findings ordered by
// severity, then rule id, then subject.
func (a *Analyzer) Analyze(p *Project) []Diagnostic {
	if p == nil {
		return nil
	}

	var diagnostics []Diagnostic
	for _, rule := range a.registry.GetAll() {
		if a.config.IsDisabled(rule.ID()) {
			continue
		}
		diags := rule.Check(p)
		for i := range diags {
			diags[i].Severity = a.config.GetSeverity(rule.ID(), diags[i].Severity)
		}
		diagnostics = append(diagnostics, diags...)
	}

	sort.SliceStable(diagnostics, func(i, j int) bool {
		di, dj := diagnostics[i], diagnostics[j]
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.RuleID != dj.RuleID {
			return di.RuleID < dj.RuleID
		}
		return di.Subject < dj.Subject
	})
	return diagnostics
}

package lint

// Rule is implemented by every lint rule.
type Rule interface {
	// ID returns the unique identifier, e.g. "GR02".
	ID() string

	// Name returns the human-readable name, e.g. "grammar.duplicate-rule".
	Name() string

	// Group returns the category: "grammar" or "world".
	Group() string

	Description() string
	DefaultSeverity() Severity

	// Check inspects the project. Diagnostics carry the rule's default
	// severity; the Analyzer applies overrides.
	Check(p *Project) []Diagnostic
}

// RuleInfo provides metadata about a rule for documentation and tooling.
type RuleInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Group           string   `json:"group"`
	Description     string   `json:"description"`
	DefaultSeverity Severity `json:"default_severity"`
}

// GetRuleInfo extracts metadata from a Rule.
func GetRuleInfo(r Rule) RuleInfo {
	return RuleInfo{
		ID:              r.ID(),
		Name:            r.Name(),
		Group:           r.Group(),
		Description:     r.Description(),
		DefaultSeverity: r.DefaultSeverity(),
	}
}

// RuleDef is a data-driven rule definition.
type RuleDef struct {
	ID          string
	Name        string
	Group       string
	Description string
	Severity    Severity
	Check       CheckFunc
}

// CheckFunc inspects a project and returns findings.
type CheckFunc func(p *Project) []Diagnostic

// Define wraps a RuleDef as a Rule.
func Define(def RuleDef) Rule {
	return &definedRule{def: def}
}

type definedRule struct {
	def RuleDef
}

func (r *definedRule) ID() string                { return r.def.ID }
func (r *definedRule) Name() string              { return r.def.Name }
func (r *definedRule) Group() string             { return r.def.Group }
func (r *definedRule) Description() string       { return r.def.Description }
func (r *definedRule) DefaultSeverity() Severity { return r.def.Severity }

// Check runs the definition's check, stamping each finding with the rule
// id and default severity.
func (r *definedRule) Check(p *Project) []Diagnostic {
	if r.def.Check == nil {
		return nil
	}
	diags := r.def.Check(p)
	for i := range diags {
		diags[i].RuleID = r.def.ID
		diags[i].Severity = r.def.Severity
	}
	return diags
}

package lint

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapverb/pkg/grammar"
	"github.com/leapstack-labs/leapverb/pkg/world"
)

// Severity indicates the importance of a diagnostic.
type Severity int

// Severity levels, most severe first.
const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseSeverity parses a severity name, case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	case "hint":
		return SeverityHint, nil
	}
	return 0, fmt.Errorf("unknown severity %q: expected error, warning, info or hint", s)
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(b []byte) error {
	v, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Diagnostic is a single lint finding.
type Diagnostic struct {
	RuleID   string   `json:"rule"`
	Severity Severity `json:"severity"`
	Subject  string   `json:"subject"` // verb, room or object the finding is about
	Message  string   `json:"message"`
}

// String renders the diagnostic on one line.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s", d.Severity, d.RuleID, d.Message)
}

// Project is everything a rule may inspect. Grammar may be nil when it failed
// to build; Rooms is empty when no world is configured.
type Project struct {
	Grammar *grammar.Grammar
	Start   string
	Rooms   []*world.Room
	Objects []*world.Object
}

// HasWorld reports whether the project carries a world definition.
func (p *Project) HasWorld() bool { return len(p.Rooms) > 0 }

// Articles returns the grammar's articles as a set.
func (p *Project) Articles() map[string]bool {
	set := make(map[string]bool)
	if p.Grammar == nil {
		return set
	}
	for _, a := range p.Grammar.Articles() {
		set[strings.ToLower(a)] = true
	}
	return set
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

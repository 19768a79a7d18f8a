// Package loader reads grammar and world definitions from YAML files.
package loader

import (
	"errors"

	"github.com/leapstack-labs/leapverb/pkg/grammar"
)

// GrammarFile is the on-disk grammar definition.
type GrammarFile struct {
	Path          string     `yaml:"-"`
	Articles      *[]string  `yaml:"articles"` // nil keeps the defaults
	NotUnderstood string     `yaml:"not_understood"`
	Verbs         []VerbSpec `yaml:"verbs"`
}

// VerbSpec is one verb and its rules.
type VerbSpec struct {
	Words []string   `yaml:"words"`
	Rules []RuleSpec `yaml:"rules"`
}

// RuleSpec binds a pattern to a named action.
type RuleSpec struct {
	Pattern string `yaml:"pattern"`
	Action  string `yaml:"action"`
}

var grammarSchema = schema{
	"articles":       nil,
	"not_understood": nil,
	"verbs": schema{
		"words": nil,
		"rules": schema{
			"pattern": nil,
			"action":  nil,
		},
	},
}

// ActionSource looks actions up by name.
type ActionSource interface {
	Lookup(name string) (grammar.Action, bool)
}

// LoadGrammarFile reads a grammar definition. Unknown keys are rejected.
func LoadGrammarFile(path string) (*GrammarFile, error) {
	f := &GrammarFile{}
	if err := readYAML(path, grammarSchema, f); err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

// ParseGrammar decodes a grammar definition from memory. name is used in
// error messages.
func ParseGrammar(name string, content []byte) (*GrammarFile, error) {
	f := &GrammarFile{}
	if err := decodeYAML(name, content, grammarSchema, f); err != nil {
		return nil, err
	}
	f.Path = name
	return f, nil
}

// Build assembles the grammar, binding rule actions through actions and
// symbols through reg. Every problem found is reported, joined.
func (f *GrammarFile) Build(reg *grammar.Registry, actions ActionSource) (*grammar.Grammar, error) {
	b := grammar.NewBuilder(reg).NotUnderstood(f.NotUnderstood)
	if f.Articles != nil {
		b.Articles(*f.Articles...)
	}

	var errs []error
	for _, v := range f.Verbs {
		b.Verb(v.Words...)
		for _, r := range v.Rules {
			a, ok := actions.Lookup(r.Action)
			if !ok {
				name := ""
				if len(v.Words) > 0 {
					name = v.Words[0]
				}
				errs = append(errs, &UnknownActionError{Verb: name, Pattern: r.Pattern, Action: r.Action})
				continue
			}
			b.Rule(r.Pattern, a)
		}
	}

	g, err := b.Build()
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return g, nil
}

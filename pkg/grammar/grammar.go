// Package grammar holds the immutable verb/rule table the parser matches
// commands against, along with the symbol resolver registry and action
// bindings.
package grammar

import (
	"errors"
	"slices"

	"github.com/leapstack-labs/leapverb/pkg/token"
)

// DefaultNotUnderstood is answered when no rule matches.
const DefaultNotUnderstood = "I don't understand that."

// DefaultArticles are dropped from input before matching.
var DefaultArticles = []string{"a", "an", "the"}

// Rule is one acceptable phrasing of a verb's arguments.
type Rule struct {
	Pattern string
	Tokens  []token.Token
	Action  Action
}

// Symbols returns the rule's symbol names, in order.
func (r Rule) Symbols() []string {
	return token.Symbols(r.Tokens)
}

// Verb is a set of synonyms and the rules tried for them, in order.
type Verb struct {
	Words []string
	Rules []Rule
}

// Name returns the verb's first synonym.
func (v Verb) Name() string {
	if len(v.Words) == 0 {
		return ""
	}
	return v.Words[0]
}

// Has reports whether word is one of the verb's synonyms.
func (v Verb) Has(word string) bool {
	return slices.Contains(v.Words, word)
}

// Grammar is a compiled, immutable grammar. It is safe for concurrent use.
type Grammar struct {
	verbs         []Verb
	registry      *Registry
	notUnderstood string
	articles      []string
}

// Verbs returns the verbs in declaration order. Callers must not modify
// the returned rules.
func (g *Grammar) Verbs() []Verb {
	return slices.Clone(g.verbs)
}

// Registry returns the symbol resolver registry.
func (g *Grammar) Registry() *Registry { return g.registry }

// NotUnderstood returns the fixed reply for unmatched commands.
func (g *Grammar) NotUnderstood() string { return g.notUnderstood }

// Articles returns the words dropped from input.
func (g *Grammar) Articles() []string { return slices.Clone(g.articles) }

// VerbWords returns every synonym of every verb, deduplicated, in
// declaration order.
func (g *Grammar) VerbWords() []string {
	seen := make(map[string]struct{})
	var words []string
	for _, v := range g.verbs {
		for _, w := range v.Words {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			words = append(words, w)
		}
	}
	return words
}

// Validate reports every rule symbol that has no registered resolver.
// Such rules can never match; the parser treats them as ordinary failures.
func (g *Grammar) Validate() error {
	var errs []error
	for _, v := range g.verbs {
		for _, r := range v.Rules {
			for _, sym := range r.Symbols() {
				if _, ok := g.registry.Lookup(sym); !ok {
					errs = append(errs, &UnregisteredSymbolError{
						Verb:    v.Name(),
						Pattern: r.Pattern,
						Symbol:  sym,
					})
				}
			}
		}
	}
	return errors.Join(errs...)
}

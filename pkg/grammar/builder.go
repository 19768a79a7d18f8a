package grammar

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/leapstack-labs/leapverb/pkg/pattern"
)

// Builder provides a fluent API for assembling a Grammar.
//
//	g, err := grammar.NewBuilder(reg).
//		Verb("take", "get").
//		Rule("single", take).
//		Rule(`"up" single`, take).
//		Verb("dance").
//		Rule("", dance).
//		Build()
type Builder struct {
	grammar *Grammar
	errs    []error
}

// NewBuilder creates a builder whose rules resolve symbols through reg.
func NewBuilder(reg *Registry) *Builder {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Builder{
		grammar: &Grammar{
			registry:      reg,
			notUnderstood: DefaultNotUnderstood,
			articles:      DefaultArticles,
		},
	}
}

// Verb starts a new verb with the given synonyms. Subsequent Rule calls
// attach to it.
func (b *Builder) Verb(words ...string) *Builder {
	v := Verb{}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			b.errs = append(b.errs, &DefinitionError{Verb: strings.Join(words, "/"), Message: ErrBlankVerbWord})
			continue
		}
		if strings.IndexFunc(w, notWordRune) >= 0 {
			b.errs = append(b.errs, &DefinitionError{Verb: strings.Join(words, "/"), Message: fmt.Sprintf(ErrVerbWordSplit, w)})
			continue
		}
		v.Words = append(v.Words, w)
	}
	if len(v.Words) == 0 {
		b.errs = append(b.errs, &DefinitionError{Message: ErrNoWords})
	}
	b.grammar.verbs = append(b.grammar.verbs, v)
	return b
}

// notWordRune reports runes that command input is split on.
func notWordRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Rule compiles pattern and appends it to the current verb.
func (b *Builder) Rule(pat string, action Action) *Builder {
	if len(b.grammar.verbs) == 0 {
		b.errs = append(b.errs, &DefinitionError{Message: ErrRuleOrphan})
		return b
	}
	v := &b.grammar.verbs[len(b.grammar.verbs)-1]

	toks, err := pattern.Compile(pat)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("verb %q: %w", v.Name(), err))
		return b
	}
	if action == nil {
		b.errs = append(b.errs, &DefinitionError{Verb: v.Name(), Message: fmt.Sprintf(ErrNilAction, pat)})
		return b
	}

	r := Rule{Pattern: pat, Tokens: toks, Action: action}
	if n := len(r.Symbols()); action.Arity() != Variadic && action.Arity() != n {
		b.errs = append(b.errs, &ArityError{
			Verb:    v.Name(),
			Pattern: pat,
			Action:  action.Name(),
			Want:    action.Arity(),
			Got:     n,
		})
		return b
	}

	v.Rules = append(v.Rules, r)
	return b
}

// NotUnderstood overrides the reply for unmatched commands.
func (b *Builder) NotUnderstood(msg string) *Builder {
	if msg != "" {
		b.grammar.notUnderstood = msg
	}
	return b
}

// Articles overrides the words dropped from input.
func (b *Builder) Articles(words ...string) *Builder {
	b.grammar.articles = make([]string, 0, len(words))
	for _, w := range words {
		b.grammar.articles = append(b.grammar.articles, strings.ToLower(w))
	}
	return b
}

// Build returns the grammar, or every definition error collected so far.
// Symbol registration is checked separately by Grammar.Validate.
func (b *Builder) Build() (*Grammar, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	src := b.grammar
	return &Grammar{
		verbs:         slices.Clone(src.verbs),
		registry:      src.registry,
		notUnderstood: src.notUnderstood,
		articles:      slices.Clone(src.articles),
	}, nil
}

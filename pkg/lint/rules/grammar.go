package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapverb/pkg/grammar"
	"github.com/leapstack-labs/leapverb/pkg/lint"
	"github.com/leapstack-labs/leapverb/pkg/resolve"
	"github.com/leapstack-labs/leapverb/pkg/token"
)

// SharedSynonym flags words listed by more than one verb.
var SharedSynonym = lint.Define(lint.RuleDef{
	ID:          "GR01",
	Name:        "grammar.shared-synonym",
	Group:       "grammar",
	Description: "A word is a synonym of several verbs; later verbs only see it after every earlier rule fails.",
	Severity:    lint.SeverityInfo,
	Check:       checkSharedSynonym,
})

func checkSharedSynonym(p *lint.Project) []lint.Diagnostic {
	if p.Grammar == nil {
		return nil
	}
	owners := make(map[string][]string)
	var order []string
	for _, v := range p.Grammar.Verbs() {
		for _, w := range v.Words {
			if _, ok := owners[w]; !ok {
				order = append(order, w)
			}
			owners[w] = append(owners[w], v.Name())
		}
	}

	var diags []lint.Diagnostic
	for _, w := range order {
		if len(owners[w]) < 2 {
			continue
		}
		diags = append(diags, lint.Diagnostic{
			Subject: w,
			Message: fmt.Sprintf("%q belongs to verbs %s; they are tried in that order",
				w, strings.Join(owners[w], ", ")),
		})
	}
	return diags
}

// DuplicateRule flags rules that can never be reached because an earlier
// rule for the same word has the same pattern.
var DuplicateRule = lint.Define(lint.RuleDef{
	ID:          "GR02",
	Name:        "grammar.duplicate-rule",
	Group:       "grammar",
	Description: "A rule repeats the pattern of an earlier rule for the same word and never runs.",
	Severity:    lint.SeverityWarning,
	Check:       checkDuplicateRule,
})

func checkDuplicateRule(p *lint.Project) []lint.Diagnostic {
	if p.Grammar == nil {
		return nil
	}
	verbs := p.Grammar.Verbs()

	type ruleRef struct{ verb, rule int }
	reported := make(map[ruleRef]bool)
	var diags []lint.Diagnostic

	for _, word := range p.Grammar.VerbWords() {
		// Patterns seen so far for this word, in the order the parser tries them.
		seen := make(map[string]string)
		for vi, v := range verbs {
			if !v.Has(word) {
				continue
			}
			for ri, r := range v.Rules {
				key := patternKey(r)
				first, dup := seen[key]
				if !dup {
					seen[key] = v.Name()
					continue
				}
				ref := ruleRef{vi, ri}
				if reported[ref] {
					continue
				}
				reported[ref] = true
				diags = append(diags, lint.Diagnostic{
					Subject: v.Name(),
					Message: fmt.Sprintf("verb %s rule %s is shadowed by an identical rule of %s when the player types %q",
						v.Name(), displayPattern(r), first, word),
				})
			}
		}
	}
	return diags
}

// ArticleLiteral flags rules with a literal word that input normalization
// always removes.
var ArticleLiteral = lint.Define(lint.RuleDef{
	ID:          "GR03",
	Name:        "grammar.article-literal",
	Group:       "grammar",
	Description: "A rule requires a literal article, which is stripped from input, so the rule never matches.",
	Severity:    lint.SeverityError,
	Check:       checkArticleLiteral,
})

func checkArticleLiteral(p *lint.Project) []lint.Diagnostic {
	if p.Grammar == nil {
		return nil
	}
	articles := p.Articles()
	var diags []lint.Diagnostic
	for _, v := range p.Grammar.Verbs() {
		for _, r := range v.Rules {
			for _, t := range r.Tokens {
				if t.IsLiteral() && articles[t.Value] {
					diags = append(diags, lint.Diagnostic{
						Subject: v.Name(),
						Message: fmt.Sprintf("verb %s rule %s requires article %q", v.Name(), displayPattern(r), t.Value),
					})
					break
				}
			}
		}
	}
	return diags
}

// ArticleVerb flags verb synonyms that are articles.
var ArticleVerb = lint.Define(lint.RuleDef{
	ID:          "GR04",
	Name:        "grammar.article-verb",
	Group:       "grammar",
	Description: "A verb synonym is an article; it is stripped from input and can never select the verb.",
	Severity:    lint.SeverityError,
	Check:       checkArticleVerb,
})

func checkArticleVerb(p *lint.Project) []lint.Diagnostic {
	if p.Grammar == nil {
		return nil
	}
	articles := p.Articles()
	var diags []lint.Diagnostic
	for _, v := range p.Grammar.Verbs() {
		for _, w := range v.Words {
			if articles[w] {
				diags = append(diags, lint.Diagnostic{
					Subject: v.Name(),
					Message: fmt.Sprintf("verb %s synonym %q is an article", v.Name(), w),
				})
			}
		}
	}
	return diags
}

// AfterText flags rules that expect more input after a text symbol, which
// consumes everything that remains.
var AfterText = lint.Define(lint.RuleDef{
	ID:          "GR05",
	Name:        "grammar.after-text",
	Group:       "grammar",
	Description: "A rule has elements after a text symbol; text takes the rest of the input, so the rule never matches.",
	Severity:    lint.SeverityWarning,
	Check:       checkAfterText,
})

func checkAfterText(p *lint.Project) []lint.Diagnostic {
	if p.Grammar == nil {
		return nil
	}
	var diags []lint.Diagnostic
	for _, v := range p.Grammar.Verbs() {
		for _, r := range v.Rules {
			i := slices.IndexFunc(r.Tokens, func(t token.Token) bool {
				return t.IsSymbol() && t.Value == resolve.SymbolText
			})
			if i >= 0 && i < len(r.Tokens)-1 {
				diags = append(diags, lint.Diagnostic{
					Subject: v.Name(),
					Message: fmt.Sprintf("verb %s rule %s has %s after %s",
						v.Name(), displayPattern(r), r.Tokens[i+1], resolve.SymbolText),
				})
			}
		}
	}
	return diags
}

// patternKey identifies a rule by its compiled tokens, so spelling
// differences in the source pattern do not hide duplicates.
func patternKey(r grammar.Rule) string {
	parts := make([]string, len(r.Tokens))
	for i, t := range r.Tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func displayPattern(r grammar.Rule) string {
	if r.Pattern == "" {
		return "(no arguments)"
	}
	return "`" + r.Pattern + "`"
}

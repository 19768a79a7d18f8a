package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalizer turns raw command text into lowercase words with articles
// removed.
type Normalizer struct {
	articles map[string]struct{}
}

// NewNormalizer creates a normalizer that drops the given article words.
func NewNormalizer(articles []string) *Normalizer {
	n := &Normalizer{articles: make(map[string]struct{}, len(articles))}
	for _, a := range articles {
		n.articles[strings.ToLower(a)] = struct{}{}
	}
	return n
}

// Normalize lowercases raw, splits it on any run of characters that are
// neither letters nor digits and removes standalone articles. It never
// fails; empty input yields no words. Normalizing the joined output again
// reproduces it.
func (n *Normalizer) Normalize(raw string) []string {
	// Casers carry state, so each call gets its own.
	lower := cases.Lower(language.Und).String(raw)

	fields := strings.FieldsFunc(lower, isSeparator)
	words := fields[:0]
	for _, f := range fields {
		if _, ok := n.articles[f]; ok {
			continue
		}
		words = append(words, f)
	}
	return words
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Package rules holds the built-in lint rules. Importing it registers them.
package rules

import "github.com/leapstack-labs/leapverb/pkg/lint"

func init() {
	for _, r := range []lint.Rule{
		SharedSynonym,
		DuplicateRule,
		ArticleLiteral,
		ArticleVerb,
		AfterText,
		UnreachableRoom,
		DeadEnd,
		OneWayExit,
		IndistinguishableObjects,
	} {
		lint.Register(r)
	}
}

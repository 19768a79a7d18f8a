// Package resolve provides the symbol resolvers bundled with the parser,
// most importantly the entity disambiguator behind generic references.
package resolve

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/leapverb/pkg/grammar"
	"github.com/leapstack-labs/leapverb/pkg/token"
	"github.com/leapstack-labs/leapverb/pkg/world"
)

// Entity resolves a reference to one of the provider's entities.
type Entity struct {
	provider world.Provider
}

// NewEntity creates an entity resolver. The provider is queried on every
// resolution; candidates are never cached.
func NewEntity(p world.Provider) *Entity {
	return &Entity{provider: p}
}

// Resolve implements grammar.Resolver.
func (r *Entity) Resolve(ctx context.Context, in token.Cursor[string]) (grammar.Outcome, error) {
	candidates, err := r.provider.EntitiesInScope(ctx)
	if err != nil {
		return grammar.Outcome{}, fmt.Errorf("loading entities in scope: %w", err)
	}
	e, next, err := Disambiguate(in, candidates)
	if err != nil {
		return grammar.Outcome{}, err
	}
	return grammar.Outcome{Value: e, Next: next}, nil
}

// Disambiguate picks the candidate best described by the words at the
// cursor.
//
// Each candidate is scored from the same starting position: while the next
// word is one of the candidate's words the score grows and the cursor
// advances. Membership decides, not position, so "key rusty" describes an
// "old rusty key" as well as "rusty key" does. Candidates scoring zero are
// dropped. A unique top score wins and the returned cursor sits past its
// run; a tie is an ambiguous reference.
func Disambiguate(in token.Cursor[string], candidates []world.Entity) (world.Entity, token.Cursor[string], error) {
	var (
		best    int
		winners []world.Entity
		winEnd  token.Cursor[string]
	)

	for _, c := range candidates {
		set := wordSet(c.Words())
		cur := in
		score := 0
		for {
			w, ok := cur.Peek()
			if !ok {
				break
			}
			if _, member := set[w]; !member {
				break
			}
			score++
			cur.Advance()
		}

		switch {
		case score == 0 || score < best:
			continue
		case score > best:
			best = score
			winners = []world.Entity{c}
			winEnd = cur
		default:
			winners = append(winners, c)
		}
	}

	switch len(winners) {
	case 0:
		var words []string
		if w, ok := in.Peek(); ok {
			words = []string{w}
		}
		return nil, in, &ReferenceError{Err: ErrNoMatchingReference, Words: words}
	case 1:
		return winners[0], winEnd, nil
	default:
		return nil, in, &ReferenceError{
			Err:        ErrAmbiguousReference,
			Words:      winEnd.Consumed(in),
			Candidates: winners,
		}
	}
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

package resolve

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapverb/pkg/grammar"
	"github.com/leapstack-labs/leapverb/pkg/token"
	"github.com/leapstack-labs/leapverb/pkg/world"
)

// Symbol names registered by Builtins.
const (
	SymbolSingle    = "single"
	SymbolHeld      = "held"
	SymbolDirection = "direction"
	SymbolNumber    = "number"
	SymbolWord      = "word"
	SymbolText      = "text"
)

// directions maps accepted direction words to their canonical form.
var directions = map[string]string{
	"north": "north", "n": "north",
	"south": "south", "s": "south",
	"east": "east", "e": "east",
	"west": "west", "w": "west",
	"up": "up", "u": "up",
	"down": "down", "d": "down",
}

// Builtins returns a registry with every bundled resolver:
//
//	single     an entity in scope
//	held       a carried entity
//	direction  a compass direction (n, s, e, w, u, d and full names)
//	number     an integer
//	word       any one word
//	text       every remaining word, joined by spaces
func Builtins(w world.World) *grammar.Registry {
	reg := grammar.NewRegistry()
	reg.Register(SymbolSingle, NewEntity(w))
	reg.Register(SymbolHeld, NewEntity(world.ProviderFunc(w.Inventory)))
	reg.Register(SymbolDirection, grammar.ResolverFunc(Direction))
	reg.Register(SymbolNumber, grammar.ResolverFunc(Number))
	reg.Register(SymbolWord, grammar.ResolverFunc(Word))
	reg.Register(SymbolText, grammar.ResolverFunc(Text))
	return reg
}

// Word consumes exactly one word.
func Word(_ context.Context, in token.Cursor[string]) (grammar.Outcome, error) {
	w, ok := in.Advance()
	if !ok {
		return grammar.Outcome{}, ErrNoInput
	}
	return grammar.Outcome{Value: w, Next: in}, nil
}

// Direction consumes one direction word and yields its canonical name.
func Direction(_ context.Context, in token.Cursor[string]) (grammar.Outcome, error) {
	w, ok := in.Advance()
	if !ok {
		return grammar.Outcome{}, ErrNoInput
	}
	dir, ok := CanonicalDirection(w)
	if !ok {
		return grammar.Outcome{}, fmt.Errorf("%w: %q", ErrNotADirection, w)
	}
	return grammar.Outcome{Value: dir, Next: in}, nil
}

// CanonicalDirection maps a direction word or abbreviation to its full
// name.
func CanonicalDirection(word string) (string, bool) {
	dir, ok := directions[word]
	return dir, ok
}

// Number consumes one integer word.
func Number(_ context.Context, in token.Cursor[string]) (grammar.Outcome, error) {
	w, ok := in.Advance()
	if !ok {
		return grammar.Outcome{}, ErrNoInput
	}
	n, err := strconv.Atoi(w)
	if err != nil {
		return grammar.Outcome{}, fmt.Errorf("%w: %q", ErrNotANumber, w)
	}
	return grammar.Outcome{Value: n, Next: in}, nil
}

// Text consumes the rest of the input.
func Text(_ context.Context, in token.Cursor[string]) (grammar.Outcome, error) {
	start := in
	for !in.Done() {
		in.Advance()
	}
	words := in.Consumed(start)
	if len(words) == 0 {
		return grammar.Outcome{}, ErrNoInput
	}
	return grammar.Outcome{Value: strings.Join(words, " "), Next: in}, nil
}

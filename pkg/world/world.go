// Package world defines the world-model collaborator the parser resolves
// references against, plus a small in-memory implementation.
package world

import (
	"context"
	"errors"
	"strings"
	"unicode"
)

// Inventory is the location of carried objects.
const Inventory = "@inventory"

// Errors returned by World implementations.
var (
	ErrNotFound = errors.New("not found")
	ErrNoExit   = errors.New("no exit in that direction")
)

// Entity is a candidate for reference resolution. The parser only looks at
// its descriptive words; order is irrelevant to matching.
type Entity interface {
	Words() []string
}

// Object is the concrete entity stored by the world implementations.
type Object struct {
	ID          string
	Name        string
	Keywords    []string // descriptive words; derived from Name when empty
	Location    string   // room id or Inventory
	Description string
	Fixed       bool // cannot be picked up
}

// Words returns the object's descriptive words, lowercased. Without
// keywords, the name is split the way command input is.
func (o *Object) Words() []string {
	if len(o.Keywords) > 0 {
		words := make([]string, len(o.Keywords))
		for i, k := range o.Keywords {
			words[i] = strings.ToLower(k)
		}
		return words
	}
	return strings.FieldsFunc(strings.ToLower(o.Name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Carried reports whether the object is in the inventory.
func (o *Object) Carried() bool { return o.Location == Inventory }

// Room is a location the player can stand in.
type Room struct {
	ID          string
	Description string
	Exits       map[string]string // direction -> room id
}

// Provider supplies the entities currently in scope.
type Provider interface {
	EntitiesInScope(ctx context.Context) ([]Entity, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) ([]Entity, error)

// EntitiesInScope calls f.
func (f ProviderFunc) EntitiesInScope(ctx context.Context) ([]Entity, error) {
	return f(ctx)
}

// World is a mutable world model used by the built-in actions.
type World interface {
	Provider

	// Inventory returns the carried objects.
	Inventory(ctx context.Context) ([]Entity, error)

	// CurrentRoom returns the room the player is in.
	CurrentRoom(ctx context.Context) (*Room, error)

	// MoveObject relocates an object to a room id or Inventory.
	MoveObject(ctx context.Context, id, location string) error

	// MovePlayer follows the exit in direction and returns the new room.
	MovePlayer(ctx context.Context, direction string) (*Room, error)
}

// ObjectsHere filters scope down to objects lying in room (not carried).
func ObjectsHere(scope []Entity, room string) []*Object {
	var out []*Object
	for _, e := range scope {
		if o, ok := e.(*Object); ok && o.Location == room {
			out = append(out, o)
		}
	}
	return out
}

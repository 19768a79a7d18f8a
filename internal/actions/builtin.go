package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapverb/pkg/grammar"
	"github.com/leapstack-labs/leapverb/pkg/world"
)

// SourceBuiltin marks actions registered by RegisterBuiltins.
const SourceBuiltin = "builtin"

// Builtins returns the standard adventure actions operating on w.
func Builtins(w world.World) []grammar.Action {
	b := &builtins{world: w}
	return []grammar.Action{
		grammar.NewAction("look", 0, b.look),
		grammar.NewAction("inventory", 0, b.inventory),
		grammar.NewAction("take", 1, b.take),
		grammar.NewAction("drop", 1, b.drop),
		grammar.NewAction("put", 2, b.put),
		grammar.NewAction("go", 1, b.goDirection),
		grammar.NewAction("examine", 1, b.examine),
		grammar.NewAction("say", 1, b.say),
		grammar.Reply("dance", "You dance a little jig."),
	}
}

// RegisterBuiltins adds Builtins(w) to c.
func RegisterBuiltins(c *Catalog, w world.World) error {
	for _, a := range Builtins(w) {
		if err := c.Register(a, SourceBuiltin); err != nil {
			return err
		}
	}
	return nil
}

type builtins struct {
	world world.World
}

func (b *builtins) look(ctx context.Context, _ []any) (string, error) {
	room, err := b.world.CurrentRoom(ctx)
	if err != nil {
		return "", err
	}
	scope, err := b.world.EntitiesInScope(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(cases.Title(language.English).String(strings.ReplaceAll(room.ID, "_", " ")))
	if room.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(room.Description)
	}
	if here := world.ObjectsHere(scope, room.ID); len(here) > 0 {
		names := make([]string, len(here))
		for i, o := range here {
			names[i] = indefinite(displayName(o))
		}
		sb.WriteString("\nYou can see ")
		sb.WriteString(joinList(names))
		sb.WriteString(".")
	}
	if exits := exitList(room); exits != "" {
		sb.WriteString("\nExits: ")
		sb.WriteString(exits)
	}
	return sb.String(), nil
}

func (b *builtins) inventory(ctx context.Context, _ []any) (string, error) {
	held, err := b.world.Inventory(ctx)
	if err != nil {
		return "", err
	}
	if len(held) == 0 {
		return "You are empty-handed.", nil
	}
	names := make([]string, len(held))
	for i, e := range held {
		names[i] = indefinite(displayName(e))
	}
	return "You are carrying " + joinList(names) + ".", nil
}

func (b *builtins) take(ctx context.Context, params []any) (string, error) {
	o, err := object(params[0])
	if err != nil {
		return "", err
	}
	switch {
	case o.Carried():
		return fmt.Sprintf("You already have the %s.", displayName(o)), nil
	case o.Fixed:
		return fmt.Sprintf("The %s won't budge.", displayName(o)), nil
	}
	if err := b.world.MoveObject(ctx, o.ID, world.Inventory); err != nil {
		return "", err
	}
	return "Taken.", nil
}

func (b *builtins) drop(ctx context.Context, params []any) (string, error) {
	o, err := object(params[0])
	if err != nil {
		return "", err
	}
	if !o.Carried() {
		return fmt.Sprintf("You aren't carrying the %s.", displayName(o)), nil
	}
	room, err := b.world.CurrentRoom(ctx)
	if err != nil {
		return "", err
	}
	if err := b.world.MoveObject(ctx, o.ID, room.ID); err != nil {
		return "", err
	}
	return "Dropped.", nil
}

func (b *builtins) put(ctx context.Context, params []any) (string, error) {
	what, err := object(params[0])
	if err != nil {
		return "", err
	}
	onto, err := object(params[1])
	if err != nil {
		return "", err
	}
	if what.ID == onto.ID {
		return fmt.Sprintf("You can't put the %s on itself.", displayName(what)), nil
	}
	if what.Fixed {
		return fmt.Sprintf("The %s won't budge.", displayName(what)), nil
	}
	room, err := b.world.CurrentRoom(ctx)
	if err != nil {
		return "", err
	}
	if err := b.world.MoveObject(ctx, what.ID, room.ID); err != nil {
		return "", err
	}
	return fmt.Sprintf("You put the %s on the %s.", displayName(what), displayName(onto)), nil
}

func (b *builtins) goDirection(ctx context.Context, params []any) (string, error) {
	dir, ok := params[0].(string)
	if !ok {
		return "", fmt.Errorf("go: expected a direction, got %T", params[0])
	}
	if _, err := b.world.MovePlayer(ctx, dir); err != nil {
		if errors.Is(err, world.ErrNoExit) {
			return "You can't go that way.", nil
		}
		return "", err
	}
	return b.look(ctx, nil)
}

func (b *builtins) examine(_ context.Context, params []any) (string, error) {
	o, err := object(params[0])
	if err != nil {
		return "", err
	}
	if o.Description == "" {
		return fmt.Sprintf("You see nothing special about the %s.", displayName(o)), nil
	}
	return o.Description, nil
}

func (b *builtins) say(_ context.Context, params []any) (string, error) {
	return fmt.Sprintf("You say, %q.", fmt.Sprint(params[0])), nil
}

func object(v any) (*world.Object, error) {
	o, ok := v.(*world.Object)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %T", v)
	}
	return o, nil
}

func displayName(e world.Entity) string {
	if o, ok := e.(*world.Object); ok && o.Name != "" {
		return strings.ToLower(o.Name)
	}
	return strings.Join(e.Words(), " ")
}

func indefinite(name string) string {
	if name != "" && strings.ContainsRune("aeiou", rune(name[0])) {
		return "an " + name
	}
	return "a " + name
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}

var compass = []string{"north", "south", "east", "west", "up", "down"}

func exitList(r *world.Room) string {
	var dirs []string
	for _, d := range compass {
		if _, ok := r.Exits[d]; ok {
			dirs = append(dirs, d)
		}
	}
	return strings.Join(dirs, " ")
}

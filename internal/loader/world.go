package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapverb/pkg/resolve"
	"github.com/leapstack-labs/leapverb/pkg/world"
)

// InventoryLocation is the location keyword for carried objects in world
// files.
const InventoryLocation = "inventory"

// WorldFile is the on-disk world definition.
type WorldFile struct {
	Path    string       `yaml:"-"`
	Start   string       `yaml:"start"`
	Rooms   []RoomSpec   `yaml:"rooms"`
	Objects []ObjectSpec `yaml:"objects"`
}

// RoomSpec describes a room.
type RoomSpec struct {
	ID          string            `yaml:"id"`
	Description string            `yaml:"description"`
	Exits       map[string]string `yaml:"exits"`
}

// ObjectSpec describes an object.
type ObjectSpec struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Keywords    []string `yaml:"keywords"`
	Location    string   `yaml:"location"`
	Description string   `yaml:"description"`
	Fixed       bool     `yaml:"fixed"`
}

var worldSchema = schema{
	"start": nil,
	"rooms": schema{
		"id":          nil,
		"description": nil,
		"exits":       nil,
	},
	"objects": schema{
		"id":          nil,
		"name":        nil,
		"keywords":    nil,
		"location":    nil,
		"description": nil,
		"fixed":       nil,
	},
}

// LoadWorldFile reads and validates a world definition.
func LoadWorldFile(path string) (*WorldFile, error) {
	f := &WorldFile{}
	if err := readYAML(path, worldSchema, f); err != nil {
		return nil, err
	}
	f.Path = path
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// ParseWorld decodes and validates a world definition from memory.
func ParseWorld(name string, content []byte) (*WorldFile, error) {
	f := &WorldFile{}
	if err := decodeYAML(name, content, worldSchema, f); err != nil {
		return nil, err
	}
	f.Path = name
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks ids are unique and every reference names a room.
func (f *WorldFile) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, &ParseError{File: f.Path, Message: fmt.Sprintf(format, args...)})
	}

	rooms := make(map[string]bool, len(f.Rooms))
	for _, r := range f.Rooms {
		if r.ID == "" {
			fail("room without id")
			continue
		}
		if rooms[r.ID] {
			fail("duplicate room %q", r.ID)
		}
		rooms[r.ID] = true
	}

	if f.Start == "" {
		fail("no start room")
	} else if !rooms[f.Start] {
		fail("start room %q is not defined", f.Start)
	}

	for _, r := range f.Rooms {
		for dir, dest := range r.Exits {
			if _, ok := resolve.CanonicalDirection(strings.ToLower(dir)); !ok {
				fail("room %q: %q is not a direction", r.ID, dir)
			}
			if !rooms[dest] {
				fail("room %q: exit %s leads to undefined room %q", r.ID, dir, dest)
			}
		}
	}

	objects := make(map[string]bool, len(f.Objects))
	for _, o := range f.Objects {
		if o.Name == "" {
			fail("object %q has no name", o.ID)
		}
		id := o.objectID()
		if objects[id] {
			fail("duplicate object %q", id)
		}
		objects[id] = true
		if o.Location != InventoryLocation && !rooms[o.Location] {
			fail("object %q: location %q is not a room", o.Name, o.Location)
		}
	}

	return errors.Join(errs...)
}

// WorldRooms converts the room specs, canonicalizing exit directions.
func (f *WorldFile) WorldRooms() []*world.Room {
	out := make([]*world.Room, 0, len(f.Rooms))
	for _, r := range f.Rooms {
		room := &world.Room{ID: r.ID, Description: strings.TrimSpace(r.Description), Exits: make(map[string]string, len(r.Exits))}
		for dir, dest := range r.Exits {
			canon, ok := resolve.CanonicalDirection(strings.ToLower(dir))
			if !ok {
				canon = dir
			}
			room.Exits[canon] = dest
		}
		out = append(out, room)
	}
	return out
}

// WorldObjects converts the object specs, in file order.
func (f *WorldFile) WorldObjects() []*world.Object {
	out := make([]*world.Object, 0, len(f.Objects))
	for _, o := range f.Objects {
		obj := &world.Object{
			ID:          o.objectID(),
			Name:        o.Name,
			Location:    o.Location,
			Description: strings.TrimSpace(o.Description),
			Fixed:       o.Fixed,
		}
		for _, k := range o.Keywords {
			obj.Keywords = append(obj.Keywords, strings.ToLower(k))
		}
		if obj.Location == InventoryLocation {
			obj.Location = world.Inventory
		}
		out = append(out, obj)
	}
	return out
}

// objectID is the declared id, or the object's words joined by dashes.
func (o ObjectSpec) objectID() string {
	if o.ID != "" {
		return o.ID
	}
	obj := world.Object{Name: o.Name, Keywords: o.Keywords}
	return strings.Join(obj.Words(), "-")
}

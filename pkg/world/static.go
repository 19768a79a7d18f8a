package world

import (
	"context"
	"fmt"
	"sync"
)

// Static is an in-memory World.
type Static struct {
	mu      sync.RWMutex
	rooms   map[string]*Room
	objects []*Object // declaration order is scope order
	player  string
}

// NewStatic creates a world with the player standing in start.
func NewStatic(start string, rooms []*Room, objects []*Object) *Static {
	s := &Static{
		rooms:  make(map[string]*Room, len(rooms)),
		player: start,
	}
	for _, r := range rooms {
		s.rooms[r.ID] = r
	}
	for _, o := range objects {
		cp := *o
		s.objects = append(s.objects, &cp)
	}
	return s
}

// EntitiesInScope returns the objects in the current room and the inventory.
func (s *Static) EntitiesInScope(_ context.Context) ([]Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(o *Object) bool {
		return o.Location == s.player || o.Location == Inventory
	}), nil
}

// Inventory returns the carried objects.
func (s *Static) Inventory(_ context.Context) ([]Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(o *Object) bool { return o.Location == Inventory }), nil
}

// Objects returns a snapshot of every object.
func (s *Static) Objects(_ context.Context) ([]*Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Object, 0, len(s.objects))
	for _, o := range s.objects {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

// collect copies matching objects so callers never alias internal state.
func (s *Static) collect(keep func(*Object) bool) []Entity {
	var out []Entity
	for _, o := range s.objects {
		if keep(o) {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out
}

// CurrentRoom returns the room the player is in.
func (s *Static) CurrentRoom(_ context.Context) (*Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[s.player]
	if !ok {
		return nil, fmt.Errorf("room %q: %w", s.player, ErrNotFound)
	}
	return r, nil
}

// MoveObject relocates an object.
func (s *Static) MoveObject(_ context.Context, id, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.objects {
		if o.ID == id {
			o.Location = location
			return nil
		}
	}
	return fmt.Errorf("object %q: %w", id, ErrNotFound)
}

// MovePlayer follows an exit from the current room.
func (s *Static) MovePlayer(_ context.Context, direction string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	here, ok := s.rooms[s.player]
	if !ok {
		return nil, fmt.Errorf("room %q: %w", s.player, ErrNotFound)
	}
	dest, ok := here.Exits[direction]
	if !ok {
		return nil, ErrNoExit
	}
	next, ok := s.rooms[dest]
	if !ok {
		return nil, fmt.Errorf("room %q: %w", dest, ErrNotFound)
	}
	s.player = dest
	return next, nil
}

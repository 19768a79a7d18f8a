package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapverb/pkg/world"
)

const objectColumns = `id, name, keywords, location, description, fixed`

// EntitiesInScope returns the objects in the player's room and the
// inventory, in seed order.
func (s *Store) EntitiesInScope(ctx context.Context) ([]world.Entity, error) {
	if s.db == nil {
		return nil, errNotOpened
	}
	rows, err := s.query(ctx, `
		SELECT `+objectColumns+` FROM objects
		WHERE location = ? OR location = (SELECT room_id FROM player WHERE id = 1)
		ORDER BY seq`, world.Inventory)
	if err != nil {
		return nil, fmt.Errorf("failed to query scope: %w", err)
	}
	return scanEntities(rows)
}

// Inventory returns the carried objects.
func (s *Store) Inventory(ctx context.Context) ([]world.Entity, error) {
	if s.db == nil {
		return nil, errNotOpened
	}
	rows, err := s.query(ctx, `SELECT `+objectColumns+` FROM objects WHERE location = ? ORDER BY seq`, world.Inventory)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	return scanEntities(rows)
}

// Objects returns every object in seed order.
func (s *Store) Objects(ctx context.Context) ([]*world.Object, error) {
	if s.db == nil {
		return nil, errNotOpened
	}
	rows, err := s.query(ctx, `SELECT `+objectColumns+` FROM objects ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query objects: %w", err)
	}
	return scanObjects(rows)
}

// CurrentRoom returns the room the player stands in.
func (s *Store) CurrentRoom(ctx context.Context) (*world.Room, error) {
	if s.db == nil {
		return nil, errNotOpened
	}
	var id string
	err := s.queryRow(ctx, `SELECT room_id FROM player WHERE id = 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player: %w", world.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return s.room(ctx, id)
}

// Rooms returns every room ordered by id.
func (s *Store) Rooms(ctx context.Context) ([]*world.Room, error) {
	if s.db == nil {
		return nil, errNotOpened
	}
	rows, err := s.query(ctx, `SELECT id FROM rooms ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rooms := make([]*world.Room, 0, len(ids))
	for _, id := range ids {
		r, err := s.room(ctx, id)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	return rooms, nil
}

func (s *Store) room(ctx context.Context, id string) (*world.Room, error) {
	r := &world.Room{ID: id, Exits: make(map[string]string)}
	err := s.queryRow(ctx, `SELECT description FROM rooms WHERE id = ?`, id).Scan(&r.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("room %q: %w", id, world.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	rows, err := s.query(ctx, `SELECT direction, destination FROM exits WHERE room_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query exits: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var dir, dest string
		if err := rows.Scan(&dir, &dest); err != nil {
			return nil, fmt.Errorf("failed to scan exit: %w", err)
		}
		r.Exits[dir] = dest
	}
	return r, rows.Err()
}

// MoveObject relocates an object to a room id or world.Inventory.
func (s *Store) MoveObject(ctx context.Context, id, location string) error {
	if s.db == nil {
		return errNotOpened
	}
	res, err := s.exec(ctx, `UPDATE objects SET location = ? WHERE id = ?`, location, id)
	if err != nil {
		return fmt.Errorf("failed to move object: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to move object: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("object %q: %w", id, world.ErrNotFound)
	}
	s.logger.Debug("object moved", slog.String("id", id), slog.String("location", location))
	return nil
}

// MovePlayer follows the exit in direction from the current room.
func (s *Store) MovePlayer(ctx context.Context, direction string) (*world.Room, error) {
	here, err := s.CurrentRoom(ctx)
	if err != nil {
		return nil, err
	}
	dest, ok := here.Exits[direction]
	if !ok {
		return nil, world.ErrNoExit
	}
	next, err := s.room(ctx, dest)
	if err != nil {
		return nil, err
	}
	if _, err := s.exec(ctx, `UPDATE player SET room_id = ? WHERE id = 1`, dest); err != nil {
		return nil, fmt.Errorf("failed to move player: %w", err)
	}
	s.logger.Debug("player moved", slog.String("from", here.ID), slog.String("to", dest))
	return next, nil
}

func scanObjects(rows *sql.Rows) ([]*world.Object, error) {
	defer func() { _ = rows.Close() }()

	var out []*world.Object
	for rows.Next() {
		var (
			o        world.Object
			keywords string
		)
		if err := rows.Scan(&o.ID, &o.Name, &keywords, &o.Location, &o.Description, &o.Fixed); err != nil {
			return nil, fmt.Errorf("failed to scan object: %w", err)
		}
		o.Keywords = strings.Fields(keywords)
		out = append(out, &o)
	}
	return out, rows.Err()
}

func scanEntities(rows *sql.Rows) ([]world.Entity, error) {
	objs, err := scanObjects(rows)
	if err != nil {
		return nil, err
	}
	out := make([]world.Entity, len(objs))
	for i, o := range objs {
		out[i] = o
	}
	return out, nil
}

package state

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

// Seed replaces the world content with seed inside one transaction.
func (s *Store) Seed(ctx context.Context, seed Seed) error {
	if s.db == nil {
		return errNotOpened
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	exec := func(query string, args ...any) error {
		_, err := tx.ExecContext(ctx, s.rebind(query), args...)
		return err
	}

	for _, table := range []string{"player", "objects", "exits", "rooms"} {
		if err := exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, r := range seed.Rooms {
		if err := exec(`INSERT INTO rooms (id, description) VALUES (?, ?)`, r.ID, r.Description); err != nil {
			return fmt.Errorf("failed to insert room %q: %w", r.ID, err)
		}
	}
	// Exits go in after every room so forward references are fine.
	for _, r := range seed.Rooms {
		for dir, dest := range r.Exits {
			if err := exec(`INSERT INTO exits (room_id, direction, destination) VALUES (?, ?, ?)`, r.ID, dir, dest); err != nil {
				return fmt.Errorf("failed to insert exit %s from %q: %w", dir, r.ID, err)
			}
		}
	}

	for i, o := range seed.Objects {
		id := o.ID
		if id == "" {
			id = generateID()
		}
		if err := exec(`INSERT INTO objects (id, seq, name, keywords, location, description, fixed) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, i, o.Name, strings.Join(o.Keywords, " "), o.Location, o.Description, o.Fixed); err != nil {
			return fmt.Errorf("failed to insert object %q: %w", o.Name, err)
		}
	}

	if err := exec(`INSERT INTO player (id, room_id) VALUES (1, ?)`, seed.Start); err != nil {
		return fmt.Errorf("failed to place player: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	s.logger.Info("world seeded",
		slog.Int("rooms", len(seed.Rooms)),
		slog.Int("objects", len(seed.Objects)),
		slog.String("start", seed.Start))
	return nil
}

// Seeded reports whether the world has been seeded.
func (s *Store) Seeded(ctx context.Context) (bool, error) {
	if s.db == nil {
		return false, errNotOpened
	}
	var n int
	err := s.queryRow(ctx, `SELECT COUNT(*) FROM player`).Scan(&n)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to check seed: %w", err)
	}
	return n > 0, nil
}

package state

import (
	"context"
	"fmt"
	"time"
)

// RecordTurn appends a command and its outcome to session's transcript.
func (s *Store) RecordTurn(ctx context.Context, turn *Turn) error {
	if s.db == nil {
		return errNotOpened
	}
	if turn.SessionID == "" {
		return fmt.Errorf("turn has no session id")
	}

	var seq int
	err := s.queryRow(ctx, `SELECT COALESCE(MAX(seq), 0) FROM transcript WHERE session_id = ?`, turn.SessionID).Scan(&seq)
	if err != nil {
		return fmt.Errorf("failed to read transcript position: %w", err)
	}

	if turn.ID == "" {
		turn.ID = generateID()
	}
	turn.Seq = seq + 1
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	_, err = s.exec(ctx, `
		INSERT INTO transcript (id, session_id, seq, command, output, understood, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		turn.ID, turn.SessionID, turn.Seq, turn.Command, turn.Output, turn.Understood, turn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record turn: %w", err)
	}
	return nil
}

// Transcript returns a session's turns in order.
func (s *Store) Transcript(ctx context.Context, sessionID string) ([]*Turn, error) {
	if s.db == nil {
		return nil, errNotOpened
	}
	rows, err := s.query(ctx, `
		SELECT id, session_id, seq, command, output, understood, created_at
		FROM transcript WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var turns []*Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Seq, &t.Command, &t.Output, &t.Understood, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, &t)
	}
	return turns, rows.Err()
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/nono/internal/event"
)

const eventColumns = `id, session_id, seq, kind, category, target, timestamp, fields`

// ReadSession retrieves a session by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadSession(ctx context.Context, id string) (Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, robot_version, trace_version
		FROM sessions
		WHERE id = ?
	`, id).Scan(&sess.ID, &sess.Name, &sess.RobotVersion, &sess.TraceVersion)
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

// ListSessions returns every session in insertion order.
// Returns an empty slice (not nil) for an empty log.
func (s *Store) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, robot_version, trace_version
		FROM sessions
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Name, &sess.RobotVersion, &sess.TraceVersion); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// ReadEvents returns the session's events ordered by seq ASC, id ASC.
// Returns an empty slice (not nil) if the session has no events.
func (s *Store) ReadEvents(ctx context.Context, sessionID string) ([]Record, error) {
	return s.queryEvents(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE session_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, sessionID)
}

// ReadEventsByKind returns the session's events of one kind, in seq order.
func (s *Store) ReadEventsByKind(ctx context.Context, sessionID string, kind event.Kind) ([]Record, error) {
	return s.QueryEvents(ctx, sessionID, Filter{Kinds: []event.Kind{kind}})
}

// ReadEvent retrieves a single event by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadEvent(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE id = ?
	`, id)
	return scanRecord(row)
}

// CountEvents returns the number of events recorded for a session.
func (s *Store) CountEvents(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

func (s *Store) queryEvents(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec      Record
		kind     string
		category string
	)
	err := row.Scan(&rec.ID, &rec.SessionID, &rec.Seq, &kind, &category, &rec.Target, &rec.TimeStamp, &rec.Fields)
	if err == sql.ErrNoRows {
		return Record{}, err
	}
	if err != nil {
		return Record{}, fmt.Errorf("scan event: %w", err)
	}
	rec.Kind = event.Kind(kind)
	rec.Category = event.Category(category)
	return rec, nil
}

package store

import (
	"context"
	"fmt"

	"github.com/roach88/nono/internal/event"
)

// BeginSession inserts a session record.
// Uses ON CONFLICT(id) DO NOTHING - reopening a session is not an error.
func (s *Store) BeginSession(ctx context.Context, sess Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, name, robot_version, trace_version)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		sess.ID,
		sess.Name,
		sess.RobotVersion,
		sess.TraceVersion,
	)
	if err != nil {
		return fmt.Errorf("begin session: %w", err)
	}
	return nil
}

// WriteEvent appends ev to the session's log and returns its ID.
// Uses ON CONFLICT(id) DO NOTHING for idempotency: writing the same event
// twice is silently ignored. A different event with a seq already taken in
// the session is an error.
//
// The session must exist (foreign key constraint).
func (s *Store) WriteEvent(ctx context.Context, sessionID string, ev *event.Event) (string, error) {
	id, err := event.ID(sessionID, ev)
	if err != nil {
		return "", fmt.Errorf("write event: %w", err)
	}

	fields, err := event.MarshalCanonical(ev.Fields())
	if err != nil {
		return "", fmt.Errorf("write event: marshal fields: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO events
		(id, session_id, seq, kind, category, target, timestamp, fields)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		sessionID,
		ev.Seq,
		string(ev.Kind),
		string(ev.Category()),
		event.LabelOf(ev.Target),
		ev.TimeStamp,
		string(fields),
	)
	if err != nil {
		return "", fmt.Errorf("write event: %w", err)
	}

	return id, nil
}

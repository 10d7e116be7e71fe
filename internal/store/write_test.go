package store

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nono/internal/event"
)

func TestBeginSession_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()

	require.NoError(t, s.BeginSession(ctx, NewSession("s1", "first")))
	require.NoError(t, s.BeginSession(ctx, NewSession("s1", "renamed")))

	sess, err := s.ReadSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "first", sess.Name, "first write wins")
	assert.Equal(t, event.RobotVersion, sess.RobotVersion)
	assert.Equal(t, event.TraceVersion, sess.TraceVersion)
}

func TestWriteEvent_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	createTestSession(t, s, "s1")

	ev := createTestEvent(1, "a")
	id, err := s.WriteEvent(ctx, "s1", ev)
	require.NoError(t, err)
	assert.Equal(t, event.MustID("s1", ev), id)

	rec, err := s.ReadEvent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "s1", rec.SessionID)
	assert.Equal(t, int64(1), rec.Seq)
	assert.Equal(t, event.KindKeyDown, rec.Kind)
	assert.Equal(t, event.CategoryKeyboard, rec.Category)
	assert.Equal(t, "input#name", rec.Target)
	assert.Equal(t, 10.0, rec.TimeStamp)

	want, err := event.MarshalCanonical(ev.Fields())
	require.NoError(t, err)
	assert.Equal(t, string(want), rec.Fields)
}

func TestWriteEvent_TraceMatchesEventRecord(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	createTestSession(t, s, "s1")

	ev := createTestEvent(3, "z")
	id, err := s.WriteEvent(ctx, "s1", ev)
	require.NoError(t, err)
	rec, err := s.ReadEvent(ctx, id)
	require.NoError(t, err)

	fromStore, err := rec.JSON()
	require.NoError(t, err)
	fromEvent, err := event.MarshalCanonical(ev.Record())
	require.NoError(t, err)

	assert.Equal(t, string(fromEvent), fromStore)
}

func TestWriteEvent_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	createTestSession(t, s, "s1")

	ev := createTestEvent(1, "a")
	_, err := s.WriteEvent(ctx, "s1", ev)
	require.NoError(t, err)
	_, err = s.WriteEvent(ctx, "s1", ev)
	require.NoError(t, err)

	n, err := s.CountEvents(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWriteEvent_SeqConflict(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	createTestSession(t, s, "s1")

	_, err := s.WriteEvent(ctx, "s1", createTestEvent(1, "a"))
	require.NoError(t, err)
	_, err = s.WriteEvent(ctx, "s1", createTestEvent(1, "b"))
	assert.Error(t, err, "a different event cannot reuse a seq")
}

func TestWriteEvent_UnknownSession(t *testing.T) {
	s := createTestStore(t)

	_, err := s.WriteEvent(t.Context(), "nope", createTestEvent(1, "a"))
	assert.Error(t, err, "foreign key on session_id")
}

func TestReadEvent_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadEvent(t.Context(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

package store

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nono/internal/event"
)

func TestReadEvents_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	createTestSession(t, s, "s1")
	createTestSession(t, s, "s2")

	for _, seq := range []int64{3, 1, 2} {
		_, err := s.WriteEvent(ctx, "s1", createTestEvent(seq, "k"))
		require.NoError(t, err)
	}
	_, err := s.WriteEvent(ctx, "s2", createTestEvent(1, "other"))
	require.NoError(t, err)

	records, err := s.ReadEvents(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, int64(i+1), rec.Seq)
		assert.Equal(t, "s1", rec.SessionID)
	}
}

func TestReadEvents_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	records, err := s.ReadEvents(t.Context(), "none")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestReadEventsByKind(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	createTestSession(t, s, "s1")

	_, err := s.WriteEvent(ctx, "s1", createTestEvent(1, "a"))
	require.NoError(t, err)
	up := createTestEvent(2, "a")
	up.Kind = event.KindKeyUp
	_, err = s.WriteEvent(ctx, "s1", up)
	require.NoError(t, err)

	records, err := s.ReadEventsByKind(ctx, "s1", event.KindKeyUp)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(2), records[0].Seq)
}

func TestListSessions_InsertionOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()

	for _, id := range []string{"zeta", "alpha", "mid"} {
		createTestSession(t, s, id)
	}

	sessions, err := s.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "zeta", sessions[0].ID)
	assert.Equal(t, "alpha", sessions[1].ID)
	assert.Equal(t, "mid", sessions[2].ID)
}

func TestReadSession_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadSession(t.Context(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

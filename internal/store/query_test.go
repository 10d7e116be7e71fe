package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nono/internal/event"
)

func TestFilterCompile(t *testing.T) {
	tests := []struct {
		name       string
		filter     Filter
		wantWhere  string
		wantParams []any
	}{
		{
			name:       "zero filter",
			filter:     Filter{},
			wantWhere:  "WHERE session_id = ? ORDER BY",
			wantParams: []any{"s1"},
		},
		{
			name:       "kinds set",
			filter:     Filter{Kinds: []event.Kind{event.KindKeyDown, event.KindKeyUp}},
			wantWhere:  "WHERE session_id = ? AND kind IN (?, ?) ORDER BY",
			wantParams: []any{"s1", "keydown", "keyup"},
		},
		{
			name:       "everything",
			filter:     Filter{Category: event.CategoryTouch, Target: "div#app", FromSeq: 2, ToSeq: 9},
			wantWhere:  "WHERE session_id = ? AND category = ? AND target = ? AND seq >= ? AND seq <= ? ORDER BY",
			wantParams: []any{"s1", "touch", "div#app", int64(2), int64(9)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, params := tt.filter.compile("s1")
			assert.Contains(t, query, tt.wantWhere)
			assert.Contains(t, query, "ORDER BY seq ASC, id COLLATE BINARY ASC")
			assert.Equal(t, tt.wantParams, params)
		})
	}
}

func TestFilterNeverInterpolates(t *testing.T) {
	query, params := Filter{Target: "x' OR '1'='1"}.compile("s1")

	assert.NotContains(t, query, "OR '1'")
	assert.Equal(t, "x' OR '1'='1", params[1])
}

func TestQueryEvents(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	createTestSession(t, s, "s1")

	for seq := int64(1); seq <= 5; seq++ {
		ev := createTestEvent(seq, "k")
		if seq%2 == 0 {
			ev.Kind = event.KindKeyUp
		}
		_, err := s.WriteEvent(ctx, "s1", ev)
		require.NoError(t, err)
	}

	seqs := func(records []Record) []int64 {
		out := make([]int64, len(records))
		for i, r := range records {
			out[i] = r.Seq
		}
		return out
	}

	all, err := s.QueryEvents(ctx, "s1", Filter{})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, seqs(all))

	ups, err := s.QueryEvents(ctx, "s1", Filter{Kinds: []event.Kind{event.KindKeyUp}})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, seqs(ups))

	window, err := s.QueryEvents(ctx, "s1", Filter{FromSeq: 2, ToSeq: 4, Category: event.CategoryKeyboard})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 4}, seqs(window))

	none, err := s.QueryEvents(ctx, "s1", Filter{Target: "div#other"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/nono/internal/event"
)

// Filter narrows the events of one session. The zero Filter matches every
// event. Conditions are combined with AND; Kinds is a set.
type Filter struct {
	Kinds    []event.Kind
	Category event.Category
	Target   string
	FromSeq  int64 // inclusive, 0 means from the first event
	ToSeq    int64 // inclusive, 0 means to the last event
}

// compile renders the filter as parameterized SQL. Values are never
// interpolated, and every query ends in the seq/id order used by ReadEvents.
func (f Filter) compile(sessionID string) (string, []any) {
	where := []string{"session_id = ?"}
	params := []any{sessionID}

	if len(f.Kinds) > 0 {
		marks := make([]string, len(f.Kinds))
		for i, k := range f.Kinds {
			marks[i] = "?"
			params = append(params, string(k))
		}
		where = append(where, "kind IN ("+strings.Join(marks, ", ")+")")
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		params = append(params, string(f.Category))
	}
	if f.Target != "" {
		where = append(where, "target = ?")
		params = append(params, f.Target)
	}
	if f.FromSeq > 0 {
		where = append(where, "seq >= ?")
		params = append(params, f.FromSeq)
	}
	if f.ToSeq > 0 {
		where = append(where, "seq <= ?")
		params = append(params, f.ToSeq)
	}

	query := fmt.Sprintf("SELECT %s FROM events WHERE %s ORDER BY seq ASC, id COLLATE BINARY ASC",
		eventColumns, strings.Join(where, " AND "))
	return query, params
}

// QueryEvents returns the session's events matching f, in seq order.
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) QueryEvents(ctx context.Context, sessionID string, f Filter) ([]Record, error) {
	query, params := f.compile(sessionID)
	return s.queryEvents(ctx, query, params...)
}

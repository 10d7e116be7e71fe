package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/roach88/nono/internal/event"
)

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSession opens a session with the given id.
func createTestSession(t *testing.T, s *Store, id string) {
	t.Helper()
	if err := s.BeginSession(context.Background(), NewSession(id, "test")); err != nil {
		t.Fatalf("BeginSession() failed: %v", err)
	}
}

type labelSink string

func (l labelSink) Label() string { return string(l) }

// createTestEvent builds a keydown event with the given seq and code.
func createTestEvent(seq int64, code string) *event.Event {
	init := event.KeyboardInit{Code: event.Some(code)}.WithDefaults()
	return &event.Event{
		Kind:      event.KindKeyDown,
		Seq:       seq,
		TimeStamp: float64(seq) * 10,
		Target:    labelSink("input#name"),
		Keyboard:  &init,
	}
}

func getTableIndexes(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='index' AND tbl_name=?", table)
	if err != nil {
		t.Fatalf("query indexes: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan index: %v", err)
		}
		names = append(names, name)
	}
	return names
}

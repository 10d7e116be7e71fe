package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedDB runs the passing scenario into a fresh database file.
func recordedDB(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := writeScenario(t, dir, "click", passingScenario)
	db := filepath.Join(dir, "trace.db")

	_, err := execute(NewRunCommand(&RootOptions{Format: "text"}), path, "--db", db)
	require.NoError(t, err)
	return db
}

func TestTraceCommandRequiresDB(t *testing.T) {
	_, err := execute(NewTraceCommand(&RootOptions{Format: "text"}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestTraceCommandText(t *testing.T) {
	db := recordedDB(t)

	out, err := execute(NewTraceCommand(&RootOptions{Format: "text"}), "--db", db, "--session", "cli-session")

	require.NoError(t, err)
	assert.Contains(t, out, "Session: cli-session (click_button)")
	assert.Contains(t, out, "Robot 0.1.0, trace format 1")
	assert.Contains(t, out, "[1] click")
	assert.Contains(t, out, "[2] keydown")
	assert.Contains(t, out, "button#go")
	assert.Contains(t, out, "Total Events: 2")
	assert.Contains(t, out, "keyboard:")
	assert.NotContains(t, out, "Fields:")
}

func TestTraceCommandVerbose(t *testing.T) {
	db := recordedDB(t)

	out, err := execute(NewTraceCommand(&RootOptions{Format: "text", Verbose: true}), "--db", db, "--session", "cli-session")

	require.NoError(t, err)
	assert.Contains(t, out, "Fields: {")
	assert.Contains(t, out, "key=a")
}

func TestTraceCommandKindFilter(t *testing.T) {
	db := recordedDB(t)

	out, err := execute(NewTraceCommand(&RootOptions{Format: "text"}), "--db", db, "--session", "cli-session", "--kind", "keydown")

	require.NoError(t, err)
	assert.Contains(t, out, "[2] keydown")
	assert.NotContains(t, out, "[1] click")
	assert.Contains(t, out, "Total Events: 1")
}

func TestTraceCommandJSON(t *testing.T) {
	db := recordedDB(t)

	out, err := execute(NewTraceCommand(&RootOptions{Format: "json"}), "--db", db, "--session", "cli-session")
	require.NoError(t, err)

	var resp struct {
		Status  string      `json:"status"`
		Session string      `json:"session"`
		Data    TraceResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "cli-session", resp.Session)
	assert.Equal(t, 2, resp.Data.Session.Events)
	require.Len(t, resp.Data.Timeline, 2)
	assert.Equal(t, "click", resp.Data.Timeline[0].Kind)
	assert.Equal(t, true, resp.Data.Timeline[0].Fields["bubbles"])
	assert.Equal(t, 1.0, resp.Data.Timeline[1].TimeStamp)
	assert.Equal(t, map[string]int{"mouse": 1, "keyboard": 1}, resp.Data.Stats.ByCategory)
}

func TestTraceCommandListsSessions(t *testing.T) {
	db := recordedDB(t)

	out, err := execute(NewTraceCommand(&RootOptions{Format: "text"}), "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "cli-session  click_button  (2 events)")

	empty := filepath.Join(t.TempDir(), "empty.db")
	out, err = execute(NewTraceCommand(&RootOptions{Format: "text"}), "--db", empty)
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded.")
}

func TestTraceCommandErrors(t *testing.T) {
	db := recordedDB(t)

	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{"unknown session", []string{"--db", db, "--session", "nope"}, ErrCodeNotFound},
		{"unknown kind", []string{"--db", db, "--session", "cli-session", "--kind", "tap"}, ErrCodeGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(NewTraceCommand(&RootOptions{Format: "text"}), tt.args...)

			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.wantCode+"]")
		})
	}
}

func TestTraceCommandKindsAndTarget(t *testing.T) {
	db := recordedDB(t)

	out, err := execute(NewTraceCommand(&RootOptions{Format: "text"}), "--db", db, "--session", "cli-session", "--kind", "click,keydown")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Events: 2")

	out, err = execute(NewTraceCommand(&RootOptions{Format: "text"}), "--db", db, "--session", "cli-session", "--target", "div#app")
	require.NoError(t, err)
	assert.Contains(t, out, "(no events)")
	assert.Contains(t, out, "Total Events: 0")
}

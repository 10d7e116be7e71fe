package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nono/internal/event"
	"github.com/roach88/nono/internal/store"
)

// recordFixture runs a fixture into an in-memory store and returns the
// stored records.
func recordFixture(t *testing.T, name string) (*Scenario, []store.Record) {
	t.Helper()
	st, err := store.OpenMemory()
	require.NoError(t, err)
	defer st.Close()

	scenario := loadFixture(t, name)
	result, err := Run(scenario, WithStore(st))
	require.NoError(t, err)

	records, err := st.ReadEvents(t.Context(), result.Session)
	require.NoError(t, err)
	return scenario, records
}

func TestReplay_Reproducible(t *testing.T) {
	for _, name := range []string{"change_and_key", "pan_list", "typing", "rejected_click"} {
		t.Run(name, func(t *testing.T) {
			scenario, recorded := recordFixture(t, name)
			session := recorded[0].SessionID

			result, div, err := Replay(scenario, session, recorded)

			require.NoError(t, err)
			assert.Nil(t, div)
			assert.Equal(t, session, result.Session)
			assert.Len(t, result.Trace, len(recorded))
		})
	}
}

func TestReplay_ShorterRun(t *testing.T) {
	scenario, recorded := recordFixture(t, "change_and_key")
	scenario.Steps = scenario.Steps[:1]
	scenario.Assertions = nil

	_, div, err := Replay(scenario, "golden-session", recorded)

	require.NoError(t, err)
	require.NotNil(t, div)
	assert.Equal(t, int64(2), div.Seq)
	assert.Empty(t, div.Replayed)
	assert.Contains(t, div.Error(), "replay stopped before recorded event")
}

func TestReplay_ChangedField(t *testing.T) {
	scenario, recorded := recordFixture(t, "change_and_key")
	steps := append([]Step(nil), scenario.Steps...)
	steps[1].Keyboard.Key = event.Some("b")
	scenario.Steps = steps

	_, div, err := Replay(scenario, "golden-session", recorded)

	require.NoError(t, err)
	require.NotNil(t, div)
	assert.Equal(t, int64(2), div.Seq)
	assert.Contains(t, div.Recorded, `"key":"a"`)
	assert.Contains(t, div.Replayed, `"key":"b"`)
}

func TestReplay_DifferentSessionDiverges(t *testing.T) {
	scenario, recorded := recordFixture(t, "change_and_key")

	_, div, err := Replay(scenario, "another-session", recorded)

	require.NoError(t, err)
	require.NotNil(t, div, "ids are scoped to the session")
	assert.Equal(t, int64(1), div.Seq)
}

func TestCompare(t *testing.T) {
	_, recorded := recordFixture(t, "change_and_key")
	trace, err := newTraceEvents(recorded)
	require.NoError(t, err)

	div, err := Compare(recorded, trace)
	require.NoError(t, err)
	assert.Nil(t, div)

	div, err = Compare(recorded[:1], trace)
	require.NoError(t, err)
	require.NotNil(t, div)
	assert.Empty(t, div.Recorded)
	assert.Contains(t, div.Error(), "extra event")

	div, err = Compare(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, div)
}

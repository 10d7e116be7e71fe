package harness

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nono/internal/event"
	"github.com/roach88/nono/internal/store"
)

func loadFixture(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return s
}

func TestRun_Fixtures(t *testing.T) {
	for _, name := range []string{"change_and_key", "pan_list", "typing", "rejected_click"} {
		t.Run(name, func(t *testing.T) {
			result, err := Run(loadFixture(t, name))
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestRun_MinimalScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "minimal",
		Description: "Minimal test scenario",
		Document:    `<button id="b">go</button>`,
		Target:      "#b",
		Steps:       []Step{{Do: "click"}},
		Assertions: []Assertion{
			{Type: AssertTraceCount, Kind: event.KindClick, Count: 1, Target: "button#b"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass)
	assert.Equal(t, "test-session-default", result.Session)
	require.Len(t, result.Trace, 1)
	assert.Equal(t, int64(1), result.Trace[0].Seq)
	assert.Equal(t, event.CategoryMouse, result.Trace[0].Category)
	assert.Contains(t, result.Trace[0].Doc, `"kind":"click"`)
}

func TestRun_Deterministic(t *testing.T) {
	scenario := loadFixture(t, "typing")

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := Snapshot(scenario.Name, first)
	require.NoError(t, err)
	b, err := Snapshot(scenario.Name, second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRun_ClickCountAndPressRelease(t *testing.T) {
	count := event.Some(2)
	scenario := &Scenario{
		Name:        "press_release",
		Description: "d",
		Document:    `<button id="b"></button>`,
		Target:      "#b",
		Steps: []Step{
			{Do: "click", Count: count, PressRelease: true},
			{Do: "dblclick"},
			{Do: "auxclick", Count: count},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)

	assert.Equal(t, []event.Kind{
		event.KindMouseDown, event.KindMouseUp,
		event.KindMouseDown, event.KindMouseUp,
		event.KindDblClick,
		event.KindAuxClick, event.KindAuxClick,
	}, KindsOf(result.Trace))
}

func TestRun_CountRepeatsOtherSteps(t *testing.T) {
	scenario := &Scenario{
		Name:        "repeat",
		Description: "d",
		Document:    `<div id="d"></div>`,
		Target:      "#d",
		Steps: []Step{
			{Do: "wheel", Count: event.Some(3)},
			{Do: "scroll", Count: event.Some(0)},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.Equal(t, []event.Kind{event.KindWheel, event.KindWheel, event.KindWheel}, KindsOf(result.Trace))
}

func TestRun_EveryKind(t *testing.T) {
	steps := make([]Step, 0, len(event.Kinds()))
	for _, k := range event.Kinds() {
		steps = append(steps, Step{Do: string(k)})
	}
	scenario := &Scenario{
		Name:        "every_kind",
		Description: "d",
		Document:    `<div id="d"></div>`,
		Target:      "#d",
		Steps:       steps,
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, event.Kinds(), KindsOf(result.Trace))
}

func TestRun_UnexpectedErrorStopsSteps(t *testing.T) {
	scenario := &Scenario{
		Name:        "stops",
		Description: "d",
		Document:    `<div id="d"></div>`,
		Steps: []Step{
			{Do: "click"},
			{Do: "click", Target: "#d"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "steps[0] (click)")
	assert.Empty(t, result.Trace, "the second step never ran")
}

func TestRun_ExpectedErrorMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "d",
		Document:    `<div id="d"></div>`,
		Target:      "#d",
		Steps: []Step{
			{Do: "click", ExpectError: "MISSING_TARGET"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected error MISSING_TARGET, got <nil>")
}

func TestRun_DefaultsFromOptions(t *testing.T) {
	scenario := &Scenario{
		Name:        "defaults",
		Description: "d",
		Document:    `<div id="d"></div>`,
		Target:      "#d",
		Steps: []Step{
			{Do: "pan", Pan: &Pan{IDs: []int{1}, Distance: 9, Direction: "right"}},
			{Do: "write", Text: "ok"},
		},
	}

	result, err := Run(scenario,
		WithPanSteps(3),
		WithWriteDelay(10*time.Millisecond),
		WithSessionGenerator(store.NewFixedGenerator("from-option")),
	)
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)

	assert.Equal(t, "from-option", result.Session)
	moves := 0
	for _, ev := range result.Trace {
		if ev.Kind == event.KindTouchMove {
			moves++
		}
	}
	assert.Equal(t, 3, moves)
}

func TestRun_WithStoreKeepsTrace(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "trace.db"))
	require.NoError(t, err)
	defer st.Close()

	scenario := loadFixture(t, "change_and_key")
	result, err := Run(scenario, WithStore(st))
	require.NoError(t, err)
	require.True(t, result.Pass)

	sess, err := st.ReadSession(t.Context(), "golden-session")
	require.NoError(t, err)
	assert.Equal(t, "change_and_key", sess.Name)

	n, err := st.CountEvents(t.Context(), "golden-session")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Re-running into the same store writes the same content-addressed events.
	_, err = Run(scenario, WithStore(st))
	require.NoError(t, err)
	n, err = st.CountEvents(t.Context(), "golden-session")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRun_InvalidRejectSelector(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad_reject",
		Description: "d",
		Document:    `<div></div>`,
		Reject:      []Reject{{Selector: "[[", Kind: event.KindClick}},
		Steps:       []Step{{Do: "keep_data"}},
	}

	_, err := Run(scenario)
	assert.Error(t, err)
}

package robot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nono/internal/event"
	"github.com/roach88/nono/internal/testutil"
)

func TestRetentionRepeatsStoredFields(t *testing.T) {
	r, capture := newTestRobot(t, WithTarget(testutil.NewSink("div")))

	r.KeepData().
		Click(event.MouseInit{Button: event.Some(1)}).
		Click(event.MouseInit{})

	require.NoError(t, r.Err())
	require.Len(t, capture.Events, 2)
	assert.Equal(t, 1, capture.Events[0].Fields()["button"])
	assert.Equal(t, 1, capture.Events[1].Fields()["button"])
}

func TestRetentionOffDoesNotInherit(t *testing.T) {
	r, capture := newTestRobot(t, WithTarget(testutil.NewSink("div")))

	r.Click(event.MouseInit{Button: event.Some(1)}).
		FlushData().
		Click(event.MouseInit{})

	require.Len(t, capture.Events, 2)
	assert.Equal(t, 1, capture.Events[0].Fields()["button"])
	assert.Equal(t, 0, capture.Events[1].Fields()["button"])
}

func TestFlushDataClearsStoredFields(t *testing.T) {
	r, capture := newTestRobot(t, WithTarget(testutil.NewSink("div")))

	r.KeepData().
		Click(event.MouseInit{Button: event.Some(1)}).
		FlushData().
		KeepData().
		Click(event.MouseInit{})

	require.Len(t, capture.Events, 2)
	assert.Equal(t, 0, capture.Events[1].Fields()["button"])
	assert.True(t, r.Retaining())
}

func TestRetentionMergesFields(t *testing.T) {
	r, capture := newTestRobot(t, WithTarget(testutil.NewSink("div")))

	r.KeepData().
		Click(event.MouseInit{Button: event.Some(1), ClientY: event.Some(22.0)}).
		Click(event.MouseInit{Button: event.Some(2), ClientX: event.Some(11.0)})

	require.Len(t, capture.Events, 2)
	fields := capture.Events[1].Fields()
	assert.Equal(t, 2, fields["button"])
	assert.Equal(t, 11.0, fields["clientX"])
	assert.Equal(t, 22.0, fields["clientY"])
}

func TestRetentionSharedAcrossMouseKinds(t *testing.T) {
	r, capture := newTestRobot(t, WithTarget(testutil.NewSink("div")))

	r.KeepData().
		MouseDown(event.MouseInit{Buttons: event.Some(1)}).
		MouseMove(event.MouseInit{ClientX: event.Some(5.0)}).
		AuxClick(event.MouseInit{})

	require.Len(t, capture.Events, 3)
	assert.Equal(t, 1, capture.Events[1].Fields()["buttons"])
	assert.Equal(t, 1, capture.Events[2].Fields()["buttons"])
	assert.Equal(t, 5.0, capture.Events[2].Fields()["clientX"])
}

func TestRetentionCategoriesAreIndependent(t *testing.T) {
	r, capture := newTestRobot(t, WithTarget(testutil.NewSink("div")))

	var shifted event.MouseInit
	shifted.ShiftKey = event.Some(true)

	r.KeepData().
		Click(shifted).
		KeyDown(event.KeyboardInit{Key: event.Some("a")}).
		Wheel(event.WheelInit{}).
		KeyUp(event.KeyboardInit{})

	require.Len(t, capture.Events, 4)
	assert.Equal(t, false, capture.Events[1].Fields()["shiftKey"], "keyboard does not see mouse fields")
	assert.Equal(t, false, capture.Events[2].Fields()["shiftKey"], "wheel has its own slot")
	assert.Equal(t, "a", capture.Events[3].Fields()["key"])
}

func TestBubblesDefaultsBeforeMerge(t *testing.T) {
	r, capture := newTestRobot(t, WithTarget(testutil.NewSink("div")))

	var quiet event.MouseInit
	quiet.Bubbles = event.Some(false)

	r.KeepData().Click(quiet).Click(event.MouseInit{})

	require.Len(t, capture.Events, 2)
	assert.False(t, capture.Events[0].Bubbles())
	assert.True(t, capture.Events[1].Bubbles(), "default is applied to raw fields before the merge")
}

func TestRetentionOtherCategories(t *testing.T) {
	r, capture := newTestRobot(t, WithTarget(testutil.NewSink("input")))

	var detailed event.UIInit
	detailed.Detail = event.Some(2)
	var cancelable event.EventInit
	cancelable.Cancelable = event.Some(true)

	r.KeepData().
		Input(event.InputInit{Data: event.Some("x"), InputType: event.Some("insertText")}).
		Input(event.InputInit{Data: event.Some("y")}).
		Scroll(detailed).
		Scroll(event.UIInit{}).
		Change(cancelable).
		Change(event.EventInit{}).
		Wheel(event.WheelInit{DeltaY: event.Some(-3.0)}).
		Wheel(event.WheelInit{DeltaMode: event.Some(1)})

	require.NoError(t, r.Err())
	require.Len(t, capture.Events, 8)
	assert.Equal(t, "y", capture.Events[1].Fields()["data"])
	assert.Equal(t, "insertText", capture.Events[1].Fields()["inputType"])
	assert.Equal(t, 2, capture.Events[3].Fields()["detail"])
	assert.Equal(t, true, capture.Events[5].Fields()["cancelable"])
	assert.Equal(t, -3.0, capture.Events[7].Fields()["deltaY"])
	assert.Equal(t, 1, capture.Events[7].Fields()["deltaMode"])
}

func TestRetentionTouchMergesPositionally(t *testing.T) {
	div := testutil.NewSink("div")
	r, capture := newTestRobot(t, WithTarget(div))

	r.KeepData().
		TouchStart(event.TouchInit{}, Points(event.TouchPointInit{Identifier: event.Some(1), ClientX: event.Some(10.0), Force: event.Some(0.5)})).
		TouchMove(event.TouchInit{}, Points(event.TouchPointInit{ClientX: event.Some(20.0)}))

	require.NoError(t, r.Err())
	require.Len(t, capture.Events, 2)
	move := capture.Events[1].Touch
	require.Len(t, move.ChangedTouches, 1)
	assert.Equal(t, 1, move.ChangedTouches[0].Identifier, "identifier inherited from slot 0")
	assert.Equal(t, 20.0, move.ChangedTouches[0].ClientX)
	assert.Equal(t, 0.5, move.ChangedTouches[0].Force)
}

func TestFlushDataClearsTouchFields(t *testing.T) {
	div := testutil.NewSink("div")
	r, capture := newTestRobot(t, WithTarget(div))

	r.KeepData().
		TouchStart(event.TouchInit{}, Points(event.TouchPointInit{Identifier: event.Some(1)})).
		FlushData().
		TouchMove(event.TouchInit{}, Points(event.TouchPointInit{Identifier: event.Some(2)})).
		TouchMove(event.TouchInit{})

	require.Len(t, capture.Events, 3)
	assert.Len(t, capture.Events[1].Touch.ChangedTouches, 1)
	assert.Empty(t, capture.Events[2].Touch.ChangedTouches, "nothing retained after FlushData")
}

func TestRetentionFailedResolveStoresNothing(t *testing.T) {
	r, capture := newTestRobot(t)
	div := testutil.NewSink("div")

	r.KeepData().Click(event.MouseInit{Button: event.Some(2)})
	require.True(t, IsMissingTarget(r.ResetErr()))

	r.On(div).Click(event.MouseInit{})

	require.Len(t, capture.Events, 1)
	assert.Equal(t, 0, capture.Events[0].Fields()["button"])
}

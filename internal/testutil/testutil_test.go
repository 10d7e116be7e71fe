package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nono/internal/event"
)

func TestStepClock_Ticks(t *testing.T) {
	clock := NewStepClock(100, 16)

	assert.Equal(t, 100.0, clock.Now())
	assert.Equal(t, 116.0, clock.Now())
	assert.Equal(t, 132.0, clock.Now())
	assert.Equal(t, int64(3), clock.Ticks())

	clock.Reset()
	assert.Equal(t, 100.0, clock.Now())
}

func TestFixedSessionGenerator(t *testing.T) {
	gen := NewFixedSessionGenerator("s-1")
	assert.Equal(t, "s-1", gen.Generate())
	assert.Equal(t, "s-1", gen.Generate())

	assert.Equal(t, "test-session-default", NewFixedSessionGenerator("").Generate())
}

func TestManualTimer_Advance(t *testing.T) {
	timer := NewManualTimer()
	var fired []string

	timer.AfterFunc(20*time.Millisecond, func() { fired = append(fired, "b") })
	timer.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	timer.AfterFunc(50*time.Millisecond, func() { fired = append(fired, "c") })
	require.Equal(t, 3, timer.Pending())

	assert.Equal(t, 2, timer.Advance(25*time.Millisecond))
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, 1, timer.Pending())

	assert.Equal(t, 1, timer.RunAll())
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Equal(t, 0, timer.Pending())
}

func TestManualTimer_Stop(t *testing.T) {
	timer := NewManualTimer()
	ran := false

	stop := timer.AfterFunc(time.Second, func() { ran = true })
	assert.Equal(t, []time.Duration{time.Second}, timer.Due())

	assert.True(t, stop())
	assert.False(t, stop(), "second stop reports nothing pending")
	timer.RunAll()
	assert.False(t, ran)
}

func TestCapture(t *testing.T) {
	c := &Capture{}
	sink := NewSink("div")
	ctx := context.Background()

	require.NoError(t, c.Dispatch(ctx, sink, &event.Event{Kind: event.KindKeyDown}))
	require.NoError(t, c.Dispatch(ctx, sink, &event.Event{Kind: event.KindKeyUp}))
	require.NoError(t, c.Dispatch(ctx, sink, &event.Event{Kind: event.KindKeyDown}))

	assert.Equal(t, []event.Kind{event.KindKeyDown, event.KindKeyUp, event.KindKeyDown}, c.Kinds())
	assert.Len(t, c.OfKind(event.KindKeyDown), 2)
	assert.Equal(t, event.KindKeyDown, c.Last().Kind)
	assert.Equal(t, "div", sink.Label())

	c.Err = errors.New("boom")
	assert.Error(t, c.Dispatch(ctx, sink, &event.Event{Kind: event.KindKeyUp}))
	assert.Len(t, c.Events, 3)

	c.Reset()
	assert.Nil(t, c.Last())
}

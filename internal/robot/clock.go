package robot

import "sync/atomic"

// Clock is a monotonic logical clock. Every emitted event is stamped with
// the next value, so traces have a total order independent of wall time.
//
// Clock is safe for concurrent use; a clock may be shared by several
// robots writing into the same trace.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock that resumes after start.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last issued sequence number.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}

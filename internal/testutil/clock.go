package testutil

import "sync"

// StepClock is a deterministic timestamp source for tests.
//
// Each call to Now returns the next tick: start, start+step, start+2*step...
// Pass clock.Now to robot.WithNow so recorded timestamps do not depend on
// wall time.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu    sync.Mutex
	start float64
	step  float64
	ticks int64
}

// NewStepClock creates a clock whose first reading is start.
func NewStepClock(start, step float64) *StepClock {
	return &StepClock{start: start, step: step}
}

// Now returns the current reading and advances the clock by one step.
func (c *StepClock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.start + float64(c.ticks)*c.step
	c.ticks++
	return v
}

// Ticks returns how many readings have been taken.
func (c *StepClock) Ticks() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// Reset rewinds the clock to its first reading.
func (c *StepClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks = 0
}

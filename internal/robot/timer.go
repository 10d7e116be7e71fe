package robot

import "time"

// Timer schedules callbacks. The returned stop function cancels the
// callback and reports whether it was still pending.
type Timer interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// SystemTimer schedules callbacks with time.AfterFunc.
type SystemTimer struct{}

// AfterFunc implements Timer.
func (SystemTimer) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// NowFunc returns the current event timestamp in milliseconds.
type NowFunc func() float64

// SinceStart returns a NowFunc counting milliseconds from its creation.
func SinceStart() NowFunc {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}

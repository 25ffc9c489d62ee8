// Package loop provides the frame-rate-independent game loop and its timing
// utilities: a capped delta-time calculator, a rolling FPS counter, and the
// clock/scheduler abstractions that bind the loop to a host.
package loop

import "time"

// Clock provides monotonic time in milliseconds. The loop never reads the
// wall clock directly so tests and replays can substitute their own time
// source.
type Clock interface {
	Now() float64
}

// systemClock measures milliseconds since its creation using the monotonic
// clock carried by time.Time.
type systemClock struct {
	start time.Time
}

// NewSystemClock returns a Clock backed by the process monotonic clock.
func NewSystemClock() Clock {
	return systemClock{start: time.Now()}
}

func (c systemClock) Now() float64 {
	return float64(time.Since(c.start)) / float64(time.Millisecond)
}

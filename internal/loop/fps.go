package loop

import "math"

// DefaultFPSWindow is the number of inter-frame samples retained by the
// FPS counter.
const DefaultFPSWindow = 60

// FPSCounter is a rolling-window frame-rate estimator. It keeps a bounded
// sliding window of inter-tick durations and reports the rate implied by
// their average.
type FPSCounter struct {
	window   int
	samples  []float64
	previous float64
	primed   bool
}

// NewFPSCounter creates a counter with the given window size.
// Non-positive windows fall back to DefaultFPSWindow.
func NewFPSCounter(window int) *FPSCounter {
	if window <= 0 {
		window = DefaultFPSWindow
	}
	return &FPSCounter{
		window:  window,
		samples: make([]float64, 0, window),
	}
}

// Tick records the duration since the previous tick. The very first tick
// only establishes the baseline.
func (c *FPSCounter) Tick(now float64) {
	if !c.primed {
		c.primed = true
		c.previous = now
		return
	}

	c.samples = append(c.samples, now-c.previous)
	c.previous = now
	if len(c.samples) > c.window {
		c.samples = c.samples[1:]
	}
}

// FPS returns the rounded frame rate implied by the average retained frame
// time, or 0 before the first full interval has been recorded.
func (c *FPSCounter) FPS() int {
	avg := c.averageFrameTime()
	if avg <= 0 {
		return 0
	}
	return int(math.Round(1000 / avg))
}

// AverageFPS is the rate over the full retained window; with a single
// rolling window it coincides with FPS.
func (c *FPSCounter) AverageFPS() int {
	return c.FPS()
}

// Reset discards all samples and the baseline.
func (c *FPSCounter) Reset() {
	c.samples = c.samples[:0]
	c.primed = false
}

func (c *FPSCounter) averageFrameTime() float64 {
	if len(c.samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range c.samples {
		sum += s
	}
	return sum / float64(len(c.samples))
}

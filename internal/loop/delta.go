package loop

// DefaultMaxDeltaMS bounds how much simulated time a single frame can carry,
// preventing a runaway burst of updates after the host was suspended.
const DefaultMaxDeltaMS = 100

// DeltaTimer converts successive clock timestamps into a bounded per-frame
// duration.
type DeltaTimer struct {
	maxDelta float64
	previous float64
	primed   bool
	raw      float64
	capped   float64
}

// NewDeltaTimer creates a timer capping deltas at maxDeltaMS.
// Non-positive caps fall back to DefaultMaxDeltaMS.
func NewDeltaTimer(maxDeltaMS float64) *DeltaTimer {
	if maxDeltaMS <= 0 {
		maxDeltaMS = DefaultMaxDeltaMS
	}
	return &DeltaTimer{maxDelta: maxDeltaMS}
}

// Calculate returns the capped milliseconds elapsed since the previous call
// and records now as the new baseline. The first call after construction or
// Reset returns exactly 0: no delta is meaningful without a prior sample.
func (t *DeltaTimer) Calculate(now float64) float64 {
	if !t.primed {
		t.primed = true
		t.previous = now
		t.raw = 0
		t.capped = 0
		return 0
	}

	t.raw = now - t.previous
	t.capped = t.raw
	if t.capped > t.maxDelta {
		t.capped = t.maxDelta
	}
	t.previous = now
	return t.capped
}

// Reset discards the baseline so the next Calculate returns 0.
func (t *DeltaTimer) Reset() {
	t.primed = false
	t.raw = 0
	t.capped = 0
}

// SetMaxDelta updates the cap for subsequent calls only.
// Non-positive values are ignored.
func (t *DeltaTimer) SetMaxDelta(maxDeltaMS float64) {
	if maxDeltaMS > 0 {
		t.maxDelta = maxDeltaMS
	}
}

// MaxDelta returns the current cap in milliseconds.
func (t *DeltaTimer) MaxDelta() float64 { return t.maxDelta }

// Raw returns the uncapped delta from the most recent Calculate, kept for
// diagnostics.
func (t *DeltaTimer) Raw() float64 { return t.raw }

// Capped returns the capped delta from the most recent Calculate.
func (t *DeltaTimer) Capped() float64 { return t.capped }

package loop

import "testing"

func TestDeltaTimerFirstCallReturnsZero(t *testing.T) {
	dt := NewDeltaTimer(100)

	if got := dt.Calculate(1234.5); got != 0 {
		t.Errorf("first Calculate() = %v, expected 0", got)
	}
	if got := dt.Calculate(1250.5); got != 16 {
		t.Errorf("second Calculate() = %v, expected 16", got)
	}
}

func TestDeltaTimerCapsLargeDeltas(t *testing.T) {
	dt := NewDeltaTimer(100)
	dt.Calculate(0)

	if got := dt.Calculate(5000); got != 100 {
		t.Errorf("Calculate() after 5s gap = %v, expected cap 100", got)
	}
	if dt.Raw() != 5000 {
		t.Errorf("Raw() = %v, expected 5000", dt.Raw())
	}
	if dt.Capped() != 100 {
		t.Errorf("Capped() = %v, expected 100", dt.Capped())
	}

	// The baseline advances by the real timestamp, not the capped value.
	if got := dt.Calculate(5016); got != 16 {
		t.Errorf("Calculate() = %v, expected 16", got)
	}
}

func TestDeltaTimerNeverExceedsCap(t *testing.T) {
	dt := NewDeltaTimer(50)
	timestamps := []float64{0, 10, 200, 201, 1000, 1001.5, 99999}

	for _, ts := range timestamps {
		if got := dt.Calculate(ts); got > 50 {
			t.Errorf("Calculate(%v) = %v, exceeds cap 50", ts, got)
		}
	}
}

func TestDeltaTimerReset(t *testing.T) {
	dt := NewDeltaTimer(100)
	dt.Calculate(0)
	dt.Calculate(16)

	dt.Reset()
	if got := dt.Calculate(1000); got != 0 {
		t.Errorf("Calculate() after Reset() = %v, expected 0", got)
	}
}

func TestDeltaTimerSetMaxDelta(t *testing.T) {
	dt := NewDeltaTimer(100)
	dt.Calculate(0)

	dt.SetMaxDelta(20)
	if got := dt.Calculate(50); got != 20 {
		t.Errorf("Calculate() = %v, expected new cap 20", got)
	}

	// Non-positive caps are ignored.
	dt.SetMaxDelta(0)
	if dt.MaxDelta() != 20 {
		t.Errorf("MaxDelta() = %v, expected 20", dt.MaxDelta())
	}
}

func TestDeltaTimerDefaultCap(t *testing.T) {
	dt := NewDeltaTimer(0)
	if dt.MaxDelta() != DefaultMaxDeltaMS {
		t.Errorf("MaxDelta() = %v, expected default %v", dt.MaxDelta(), DefaultMaxDeltaMS)
	}
}

package input

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/arcadekit/engine/internal/core"
)

func testBuffer(opts BufferOptions) *Buffer {
	opts.Logger = log.New(io.Discard)
	if opts.Now == nil {
		opts.Now = func() float64 { return 0 }
	}
	return NewBuffer(opts)
}

func TestCaptureFrameDeepCopies(t *testing.T) {
	b := testBuffer(BufferOptions{})

	in := core.NewGameInput()
	in.SetDirection(core.DirLeft, true)
	in.Action = true
	b.CaptureFrame(5, in)

	// Mutating the source after capture must not leak into the snapshot.
	in.SetDirection(core.DirLeft, false)
	in.SetDirection(core.DirRight, true)
	in.Action = false

	got, ok := b.BufferedAt(5)
	if !ok {
		t.Fatal("frame 5 not buffered")
	}
	if !got.Input.Has(core.DirLeft) || got.Input.Has(core.DirRight) || !got.Input.Action {
		t.Errorf("snapshot mutated after capture: %+v", got.Input)
	}
}

func TestEventFrameCorrelation(t *testing.T) {
	b := testBuffer(BufferOptions{})

	b.AddEvent(3, core.ActionPrimary, true)
	b.AddEvent(4, core.ActionPrimary, false)

	b.CaptureFrame(3, core.NewGameInput())
	got, _ := b.BufferedAt(3)
	if len(got.Events) != 1 || got.Events[0].Frame != 3 || !got.Events[0].Pressed {
		t.Fatalf("frame 3 events = %+v, expected one press", got.Events)
	}

	// The frame-4 event stayed pending and lands on its own frame.
	b.CaptureFrame(4, core.NewGameInput())
	got, _ = b.BufferedAt(4)
	if len(got.Events) != 1 || got.Events[0].Pressed {
		t.Fatalf("frame 4 events = %+v, expected one release", got.Events)
	}
}

func TestActionPressedWindow(t *testing.T) {
	const pressFrame = 20
	const window = 3

	b := testBuffer(BufferOptions{FrameWindow: window, MaxBufferFrames: 100})
	empty := core.NewGameInput()
	for f := uint64(15); f <= pressFrame+window+2; f++ {
		if f == pressFrame {
			b.AddEvent(f, core.ActionPrimary, true)
		}
		b.CaptureFrame(f, empty)
	}

	tests := []struct {
		name    string
		frame   uint64
		pressed bool
	}{
		{"before press", pressFrame - 1, false},
		{"exact frame", pressFrame, true},
		{"window interior", pressFrame + 2, true},
		{"window edge", pressFrame + window, true},
		{"past window", pressFrame + window + 1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.WasActionPressedInWindow(core.ActionPrimary, tc.frame); got != tc.pressed {
				t.Errorf("frame %d: pressed = %v, expected %v", tc.frame, got, tc.pressed)
			}
		})
	}
}

func TestActionReleasedWindow(t *testing.T) {
	b := testBuffer(BufferOptions{})
	b.AddEvent(10, core.ActionSecondary, false)
	b.CaptureFrame(10, core.NewGameInput())

	if !b.WasActionReleasedInWindow(core.ActionSecondary, 12) {
		t.Error("release edge not found in window")
	}
	if b.WasActionPressedInWindow(core.ActionSecondary, 12) {
		t.Error("release edge answered a press query")
	}
}

func TestWindowQueryNearFrameZero(t *testing.T) {
	b := testBuffer(BufferOptions{})
	b.AddEvent(0, core.ActionPrimary, true)
	b.CaptureFrame(0, core.NewGameInput())

	// currentFrame smaller than the window must not underflow.
	if !b.WasActionPressedInWindow(core.ActionPrimary, 1) {
		t.Error("press at frame 0 not visible from frame 1")
	}
}

func TestCleanupEvictsOldFrames(t *testing.T) {
	b := testBuffer(BufferOptions{MaxBufferFrames: 10})
	empty := core.NewGameInput()
	for f := uint64(0); f <= 25; f++ {
		b.CaptureFrame(f, empty)
	}

	b.Cleanup(25)

	if _, ok := b.BufferedAt(14); ok {
		t.Error("frame 14 survived cleanup at frame 25")
	}
	if _, ok := b.BufferedAt(15); !ok {
		t.Error("frame 15 evicted, expected it retained")
	}
	if _, ok := b.BufferedAt(25); !ok {
		t.Error("current frame evicted")
	}
}

func TestRecordingLifecycle(t *testing.T) {
	now := 0.0
	b := testBuffer(BufferOptions{Now: func() float64 { return now }})
	empty := core.NewGameInput()

	b.CaptureFrame(0, empty) // Pre-recording frames are not included.

	now = 100
	b.StartRecording("pong", 60)
	if !b.IsRecording() {
		t.Fatal("recording not active after StartRecording")
	}
	for f := uint64(1); f <= 5; f++ {
		now += 16
		b.CaptureFrame(f, empty)
	}

	now = 500
	rec := b.StopRecording()
	if rec == nil {
		t.Fatal("StopRecording returned nil for an active recording")
	}
	if rec.TotalFrames != 5 || len(rec.Frames) != 5 {
		t.Errorf("recorded %d/%d frames, expected 5", rec.TotalFrames, len(rec.Frames))
	}
	if _, ok := rec.Frames[0]; ok {
		t.Error("pre-recording frame leaked into the recording")
	}
	if rec.StartTimestamp != 100 || rec.Metadata.Duration != 400 {
		t.Errorf("start = %v duration = %v, expected 100/400", rec.StartTimestamp, rec.Metadata.Duration)
	}
	if rec.Metadata.GameType != "pong" || rec.Metadata.TargetFPS != 60 {
		t.Errorf("metadata = %+v", rec.Metadata)
	}

	// Stopping again is a harmless no-op.
	if b.StopRecording() != nil {
		t.Error("second StopRecording returned a recording")
	}
}

func TestRecordingFrameCapAutoStops(t *testing.T) {
	b := testBuffer(BufferOptions{MaxRecordFrames: 3, MaxBufferFrames: 100})
	empty := core.NewGameInput()

	b.StartRecording("snake", 60)
	for f := uint64(0); f < 10; f++ {
		b.CaptureFrame(f, empty)
	}

	if b.IsRecording() {
		t.Error("recording still active past the frame cap")
	}
	// The buffer itself keeps capturing after the recording stops.
	if _, ok := b.BufferedAt(9); !ok {
		t.Error("buffer stopped capturing after recording auto-stop")
	}
}

func TestResetAbandonsRecording(t *testing.T) {
	b := testBuffer(BufferOptions{})
	b.StartRecording("pong", 60)
	b.CaptureFrame(0, core.NewGameInput())

	b.Reset()

	if b.IsRecording() {
		t.Error("recording survived Reset")
	}
	if b.Len() != 0 {
		t.Errorf("buffered frames after Reset = %d, expected 0", b.Len())
	}
}

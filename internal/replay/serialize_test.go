package replay

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/arcadekit/engine/internal/core"
	"github.com/arcadekit/engine/internal/input"
)

func testBuffer(opts input.BufferOptions) *input.Buffer {
	opts.Logger = log.New(io.Discard)
	if opts.Now == nil {
		opts.Now = func() float64 { return 0 }
	}
	return input.NewBuffer(opts)
}

// syntheticInput produces a deterministic input pattern for frame f.
func syntheticInput(f uint64) core.GameInput {
	in := core.NewGameInput()
	switch f % 4 {
	case 0:
		in.SetDirection(core.DirLeft, true)
	case 1:
		in.SetDirection(core.DirRight, true)
		in.SetDirection(core.DirUp, true)
	case 2:
		in.Action = true
	case 3:
		in.SecondaryAction = true
		in.Pointer = &core.Vec2{X: float64(f), Y: float64(f) * 2}
		in.PointerDown = true
	}
	return in
}

func recordingsEqual(t *testing.T, a, b *input.Recording) {
	t.Helper()
	if a.StartTimestamp != b.StartTimestamp || a.TotalFrames != b.TotalFrames {
		t.Errorf("header mismatch: %v/%d vs %v/%d",
			a.StartTimestamp, a.TotalFrames, b.StartTimestamp, b.TotalFrames)
	}
	if a.Metadata != b.Metadata {
		t.Errorf("metadata mismatch: %+v vs %+v", a.Metadata, b.Metadata)
	}
	if len(a.Frames) != len(b.Frames) {
		t.Fatalf("frame counts differ: %d vs %d", len(a.Frames), len(b.Frames))
	}
	for f, fa := range a.Frames {
		fb, ok := b.Frames[f]
		if !ok {
			t.Fatalf("frame %d missing", f)
		}
		if fa.Frame != fb.Frame || fa.Timestamp != fb.Timestamp {
			t.Errorf("frame %d header mismatch: %+v vs %+v", f, fa, fb)
		}
		if !fa.Input.Equal(fb.Input) {
			t.Errorf("frame %d input mismatch: %+v vs %+v", f, fa.Input, fb.Input)
		}
		if len(fa.Events) != len(fb.Events) {
			t.Fatalf("frame %d event counts differ: %d vs %d", f, len(fa.Events), len(fb.Events))
		}
		for i := range fa.Events {
			if fa.Events[i] != fb.Events[i] {
				t.Errorf("frame %d event %d mismatch: %+v vs %+v", f, i, fa.Events[i], fb.Events[i])
			}
		}
	}
}

func TestRecordingRoundTrip(t *testing.T) {
	frameCounts := []int{0, 1, 7}
	for _, n := range frameCounts {
		t.Run(string(rune('0'+n))+" frames", func(t *testing.T) {
			now := 0.0
			b := testBuffer(input.BufferOptions{
				MaxBufferFrames: 100,
				Now:             func() float64 { return now },
			})
			b.StartRecording("pong", 60)
			for f := uint64(0); f < uint64(n); f++ {
				now += 16
				if f%3 == 0 {
					b.AddEvent(f, core.ActionPrimary, true)
				}
				b.CaptureFrame(f, syntheticInput(f))
			}
			rec := b.StopRecording()

			data, err := SerializeRecording(rec)
			if err != nil {
				t.Fatalf("SerializeRecording() failed: %v", err)
			}
			got, err := DeserializeRecording(data)
			if err != nil {
				t.Fatalf("DeserializeRecording() failed: %v", err)
			}
			recordingsEqual(t, rec, got)
		})
	}
}

func TestSerializeDeterministicOrder(t *testing.T) {
	b := testBuffer(input.BufferOptions{MaxBufferFrames: 100})
	b.StartRecording("snake", 30)
	for f := uint64(0); f < 20; f++ {
		b.CaptureFrame(f, syntheticInput(f))
	}
	rec := b.StopRecording()

	first, err := SerializeRecording(rec)
	if err != nil {
		t.Fatalf("SerializeRecording() failed: %v", err)
	}
	second, err := SerializeRecording(rec)
	if err != nil {
		t.Fatalf("SerializeRecording() failed: %v", err)
	}
	if string(first) != string(second) {
		t.Error("serializing the same recording twice produced different bytes")
	}
}

func TestDeserializeMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"truncated", `{"startTimestamp": 1, "frames": [`},
		{"wrong type", `{"totalFrames": "many"}`},
		{"not json", `replay data`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DeserializeRecording([]byte(tc.data)); err == nil {
				t.Error("DeserializeRecording() accepted malformed input")
			}
		})
	}
}

func TestSerializeNilRecording(t *testing.T) {
	if _, err := SerializeRecording(nil); err == nil {
		t.Error("SerializeRecording(nil) succeeded, expected an error")
	}
}

// Record a fixed synthetic pattern, round-trip it through serialization and
// replay it: every replayed input must match the original field for field.
func TestRecordSerializeReplayEndToEnd(t *testing.T) {
	const frames = 50

	now := 0.0
	b := testBuffer(input.BufferOptions{
		MaxBufferFrames: frames + 1,
		Now:             func() float64 { return now },
	})

	originals := make([]core.GameInput, 0, frames)
	b.StartRecording("pong", 60)
	for f := uint64(0); f < frames; f++ {
		now += 16.67
		in := syntheticInput(f)
		originals = append(originals, in)
		b.CaptureFrame(f, in)
	}
	rec := b.StopRecording()

	data, err := SerializeRecording(rec)
	if err != nil {
		t.Fatalf("SerializeRecording() failed: %v", err)
	}
	restored, err := DeserializeRecording(data)
	if err != nil {
		t.Fatalf("DeserializeRecording() failed: %v", err)
	}

	r := NewReplayer(restored)
	if r.TotalFrames() != frames {
		t.Fatalf("TotalFrames() = %d, expected %d", r.TotalFrames(), frames)
	}
	for i := 0; i < frames; i++ {
		got, ok := r.NextInput()
		if !ok {
			t.Fatalf("replay exhausted at frame %d", i)
		}
		if !got.Equal(originals[i]) {
			t.Fatalf("frame %d: replayed input %+v, expected %+v", i, got, originals[i])
		}
	}
	if _, ok := r.NextInput(); ok {
		t.Error("replay produced more frames than were recorded")
	}
	if !r.Done() {
		t.Error("Done() = false after exhausting the recording")
	}
}

func TestSaveAndLoadRecordingFile(t *testing.T) {
	b := testBuffer(input.BufferOptions{MaxBufferFrames: 20})
	b.StartRecording("snake", 30)
	for f := uint64(0); f < 5; f++ {
		b.CaptureFrame(f, syntheticInput(f))
	}
	rec := b.StopRecording()

	path := filepath.Join(t.TempDir(), "session.json")
	if err := SaveRecording(path, rec); err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}

	r, err := LoadReplayer(path)
	if err != nil {
		t.Fatalf("LoadReplayer() failed: %v", err)
	}
	if r.TotalFrames() != 5 {
		t.Errorf("TotalFrames() = %d, expected 5", r.TotalFrames())
	}
	if r.Metadata().GameType != "snake" || r.Metadata().TargetFPS != 30 {
		t.Errorf("metadata mismatch: %+v", r.Metadata())
	}

	if _, err := LoadReplayer(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadReplayer() on a missing file should fail")
	}
}

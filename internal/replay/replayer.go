package replay

import (
	"fmt"
	"os"
	"sort"

	"github.com/arcadekit/engine/internal/core"
	"github.com/arcadekit/engine/internal/input"
)

// Replayer plays a sealed recording back frame by frame, in the frame order
// the recording was captured in.
type Replayer struct {
	frames []input.BufferedInput
	cursor int
	meta   input.RecordingMetadata
}

// NewReplayer creates a replayer positioned at the recording's first frame.
func NewReplayer(rec *input.Recording) *Replayer {
	frames := make([]input.BufferedInput, 0, len(rec.Frames))
	for _, bi := range rec.Frames {
		frames = append(frames, bi)
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i].Frame < frames[j].Frame })

	return &Replayer{frames: frames, meta: rec.Metadata}
}

// SaveRecording serializes a recording and writes it to a file.
func SaveRecording(filename string, rec *input.Recording) error {
	data, err := SerializeRecording(rec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("replay: save recording: %w", err)
	}
	return nil
}

// LoadReplayer reads a serialized recording from a file.
func LoadReplayer(filename string) (*Replayer, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("replay: open recording: %w", err)
	}
	rec, err := DeserializeRecording(data)
	if err != nil {
		return nil, err
	}
	return NewReplayer(rec), nil
}

// Next returns the buffered input for the next recorded frame and advances.
// The second return is false once the recording is exhausted.
func (r *Replayer) Next() (input.BufferedInput, bool) {
	if r.cursor >= len(r.frames) {
		return input.BufferedInput{}, false
	}
	bi := r.frames[r.cursor]
	r.cursor++
	return bi, true
}

// NextInput is Next reduced to the input snapshot, for games that only
// consume GameInput.
func (r *Replayer) NextInput() (core.GameInput, bool) {
	bi, ok := r.Next()
	if !ok {
		return core.GameInput{}, false
	}
	return bi.Input, true
}

// Done reports whether every recorded frame has been consumed.
func (r *Replayer) Done() bool {
	return r.cursor >= len(r.frames)
}

// CurrentFrame returns the playback cursor position.
func (r *Replayer) CurrentFrame() int {
	return r.cursor
}

// TotalFrames returns the number of recorded frames.
func (r *Replayer) TotalFrames() int {
	return len(r.frames)
}

// Metadata returns the recording's metadata.
func (r *Replayer) Metadata() input.RecordingMetadata {
	return r.meta
}

// Reset rewinds the replayer to the first frame.
func (r *Replayer) Reset() {
	r.cursor = 0
}

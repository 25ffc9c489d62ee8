package replay

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/arcadekit/engine/internal/input"
)

// DefaultMaxSnapshots bounds state history to about ten seconds at 60fps.
const DefaultMaxSnapshots = 600

// GameStateSnapshot is one captured game-state blob tagged with its frame,
// capture time and the buffered input (if any) active that frame.
type GameStateSnapshot struct {
	Frame     uint64          `json:"frame"`
	Timestamp float64         `json:"timestamp"`
	State     json.RawMessage `json:"state"`
	Input     *wireFrame      `json:"input,omitempty"`
}

// StateRecorder captures arbitrary per-frame game state alongside the
// input buffer's per-frame input. Snapshots are deep-cloned on capture so
// later game mutation cannot corrupt history, and trimmed to the most
// recent MaxSnapshots. This is the substrate for time-travel debugging and
// bug-report capture.
type StateRecorder struct {
	maxSnapshots int
	buffer       *input.Buffer
	now          func() float64

	snapshots []GameStateSnapshot
}

// StateRecorderOptions configures a StateRecorder. Zero values select
// defaults; Buffer may be nil when input cross-referencing is not wanted.
type StateRecorderOptions struct {
	MaxSnapshots int
	Buffer       *input.Buffer
	Now          func() float64
}

// NewStateRecorder creates an empty recorder.
func NewStateRecorder(opts StateRecorderOptions) *StateRecorder {
	if opts.MaxSnapshots <= 0 {
		opts.MaxSnapshots = DefaultMaxSnapshots
	}
	if opts.Now == nil {
		start := time.Now()
		opts.Now = func() float64 {
			return float64(time.Since(start)) / float64(time.Millisecond)
		}
	}
	return &StateRecorder{
		maxSnapshots: opts.MaxSnapshots,
		buffer:       opts.Buffer,
		now:          opts.Now,
	}
}

// Capture clones the given game state via JSON round-trip and stores it
// tagged with the frame, cross-referencing the input buffered for the same
// frame. Unserializable state is an error; nothing is stored.
func (r *StateRecorder) Capture(frame uint64, state any) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("replay: capture state for frame %d: %w", frame, err)
	}

	snap := GameStateSnapshot{
		Frame:     frame,
		Timestamp: r.now(),
		State:     blob,
	}
	if r.buffer != nil {
		if bi, ok := r.buffer.BufferedAt(frame); ok {
			wf := wireFrame{
				Frame:     bi.Frame,
				Timestamp: bi.Timestamp,
				Input:     toWireInput(bi.Input),
				Events:    bi.Events,
			}
			snap.Input = &wf
		}
	}

	r.snapshots = append(r.snapshots, snap)
	if excess := len(r.snapshots) - r.maxSnapshots; excess > 0 {
		r.snapshots = append(r.snapshots[:0], r.snapshots[excess:]...)
	}
	return nil
}

// At returns the snapshot captured for the given frame, if retained.
func (r *StateRecorder) At(frame uint64) (GameStateSnapshot, bool) {
	for i := len(r.snapshots) - 1; i >= 0; i-- {
		if r.snapshots[i].Frame == frame {
			return r.snapshots[i], true
		}
	}
	return GameStateSnapshot{}, false
}

// History returns all retained snapshots in capture order.
func (r *StateRecorder) History() []GameStateSnapshot {
	out := make([]GameStateSnapshot, len(r.snapshots))
	copy(out, r.snapshots)
	return out
}

// Len returns the number of retained snapshots.
func (r *StateRecorder) Len() int {
	return len(r.snapshots)
}

// Decode unmarshals a snapshot's state blob into dst.
func (s GameStateSnapshot) Decode(dst any) error {
	if err := json.Unmarshal(s.State, dst); err != nil {
		return fmt.Errorf("replay: decode state snapshot for frame %d: %w", s.Frame, err)
	}
	return nil
}

// Serialize encodes the retained history as a flat JSON array in capture
// order.
func (r *StateRecorder) Serialize() ([]byte, error) {
	snaps := r.snapshots
	if snaps == nil {
		snaps = []GameStateSnapshot{}
	}
	data, err := json.Marshal(snaps)
	if err != nil {
		return nil, fmt.Errorf("replay: serialize state history: %w", err)
	}
	return data, nil
}

// Reset discards all retained snapshots.
func (r *StateRecorder) Reset() {
	r.snapshots = nil
}

// Package replay serializes input recordings to a flat JSON representation,
// plays them back frame by frame, and captures per-frame game-state
// snapshots for time-travel debugging.
package replay

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/arcadekit/engine/internal/core"
	"github.com/arcadekit/engine/internal/input"
)

// Wire shapes. The in-memory frame map flattens to an array sorted by frame
// number, and direction sets flatten to arrays of direction names; both are
// reconstructed on deserialize.

type wireRecording struct {
	StartTimestamp float64      `json:"startTimestamp"`
	TotalFrames    int          `json:"totalFrames"`
	Frames         []wireFrame  `json:"frames"`
	Metadata       wireMetadata `json:"metadata"`
}

type wireMetadata struct {
	GameType  string  `json:"gameType"`
	Duration  float64 `json:"duration"`
	TargetFPS int     `json:"targetFps"`
}

type wireFrame struct {
	Frame     uint64        `json:"frame"`
	Timestamp float64       `json:"timestamp"`
	Input     wireInput     `json:"input"`
	Events    []input.Event `json:"events,omitempty"`
}

type wireInput struct {
	Directions      []core.Direction `json:"directions"`
	Action          bool             `json:"action"`
	SecondaryAction bool             `json:"secondaryAction"`
	Pause           bool             `json:"pause"`
	Pointer         *core.Vec2       `json:"pointer,omitempty"`
	PointerDown     bool             `json:"pointerDown"`
}

func toWireInput(in core.GameInput) wireInput {
	w := wireInput{
		Directions:      []core.Direction{},
		Action:          in.Action,
		SecondaryAction: in.SecondaryAction,
		Pause:           in.Pause,
		PointerDown:     in.PointerDown,
	}
	for _, d := range core.Directions {
		if in.Has(d) {
			w.Directions = append(w.Directions, d)
		}
	}
	if in.Pointer != nil {
		p := *in.Pointer
		w.Pointer = &p
	}
	return w
}

func fromWireInput(w wireInput) core.GameInput {
	in := core.NewGameInput()
	for _, d := range w.Directions {
		in.SetDirection(d, true)
	}
	in.Action = w.Action
	in.SecondaryAction = w.SecondaryAction
	in.Pause = w.Pause
	in.PointerDown = w.PointerDown
	if w.Pointer != nil {
		p := *w.Pointer
		in.Pointer = &p
	}
	return in
}

// SerializeRecording encodes a recording as JSON. Frames are emitted sorted
// by frame number so equal recordings serialize identically.
func SerializeRecording(rec *input.Recording) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("replay: cannot serialize a nil recording")
	}

	w := wireRecording{
		StartTimestamp: rec.StartTimestamp,
		TotalFrames:    rec.TotalFrames,
		Frames:         make([]wireFrame, 0, len(rec.Frames)),
		Metadata: wireMetadata{
			GameType:  rec.Metadata.GameType,
			Duration:  rec.Metadata.Duration,
			TargetFPS: rec.Metadata.TargetFPS,
		},
	}

	frames := make([]uint64, 0, len(rec.Frames))
	for f := range rec.Frames {
		frames = append(frames, f)
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i] < frames[j] })

	for _, f := range frames {
		bi := rec.Frames[f]
		w.Frames = append(w.Frames, wireFrame{
			Frame:     bi.Frame,
			Timestamp: bi.Timestamp,
			Input:     toWireInput(bi.Input),
			Events:    bi.Events,
		})
	}

	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("replay: serialize recording: %w", err)
	}
	return data, nil
}

// DeserializeRecording decodes a recording from its JSON representation.
// Malformed input propagates as a parse error; a corrupted recording must
// not be treated as valid.
func DeserializeRecording(data []byte) (*input.Recording, error) {
	var w wireRecording
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("replay: deserialize recording: %w", err)
	}

	rec := &input.Recording{
		StartTimestamp: w.StartTimestamp,
		TotalFrames:    w.TotalFrames,
		Frames:         make(map[uint64]input.BufferedInput, len(w.Frames)),
		Metadata: input.RecordingMetadata{
			GameType:  w.Metadata.GameType,
			Duration:  w.Metadata.Duration,
			TargetFPS: w.Metadata.TargetFPS,
		},
	}
	for _, wf := range w.Frames {
		rec.Frames[wf.Frame] = input.BufferedInput{
			Frame:     wf.Frame,
			Timestamp: wf.Timestamp,
			Input:     fromWireInput(wf.Input),
			Events:    wf.Events,
		}
	}
	return rec, nil
}

// Package input provides per-frame input capture: a manager that aggregates
// keyboard, pointer and touch sources into one normalized snapshot, and a
// ring buffer of captured frames supporting frame-perfect window queries and
// full-session recording.
package input

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/arcadekit/engine/internal/core"
)

// Defaults for buffer sizing.
const (
	DefaultMaxBufferFrames = 10
	DefaultFrameWindow     = 3

	// DefaultMaxRecordFrames caps a recording at about ten minutes of
	// gameplay at 60fps.
	DefaultMaxRecordFrames = 36000
)

// Event is a discrete press or release edge on a named input channel.
// Immutable once created.
type Event struct {
	Frame     uint64      `json:"frame"`
	Timestamp float64     `json:"timestamp"`
	Action    core.Action `json:"action"`
	Pressed   bool        `json:"pressed"`
}

// BufferedInput is the captured input state for one frame: a deep-copied
// snapshot plus the discrete events that occurred during that frame.
type BufferedInput struct {
	Frame     uint64
	Timestamp float64
	Input     core.GameInput
	Events    []Event
}

// RecordingMetadata describes a sealed recording.
type RecordingMetadata struct {
	GameType  string
	Duration  float64 // Milliseconds, computed by StopRecording
	TargetFPS int
}

// Recording is a session-scoped aggregate of captured frames.
// It grows by one entry per captured frame while active and is sealed by
// StopRecording.
type Recording struct {
	StartTimestamp float64
	TotalFrames    int
	Frames         map[uint64]BufferedInput
	Metadata       RecordingMetadata
}

// BufferOptions configures a Buffer. Zero values select the documented
// defaults.
type BufferOptions struct {
	MaxBufferFrames int // Frames retained for window queries, default 10
	FrameWindow     int // Frame-perfect tolerance, default 3
	MaxRecordFrames int // Recording cap, default 36000

	// Now supplies timestamps in milliseconds. Defaults to wall-clock
	// milliseconds since the buffer was created.
	Now func() float64

	// Logger receives recording lifecycle warnings. Defaults to
	// log.Default().
	Logger *log.Logger
}

// Buffer retains the last MaxBufferFrames of captured input and answers
// frame-window queries over them. Not safe for concurrent use; it is owned
// by the per-frame callback chain.
type Buffer struct {
	maxBufferFrames int
	frameWindow     int
	maxRecordFrames int
	now             func() float64
	logger          *log.Logger

	frames  map[uint64]BufferedInput
	pending []Event

	recording *Recording
}

// NewBuffer creates an empty buffer.
func NewBuffer(opts BufferOptions) *Buffer {
	if opts.MaxBufferFrames <= 0 {
		opts.MaxBufferFrames = DefaultMaxBufferFrames
	}
	if opts.FrameWindow <= 0 {
		opts.FrameWindow = DefaultFrameWindow
	}
	if opts.MaxRecordFrames <= 0 {
		opts.MaxRecordFrames = DefaultMaxRecordFrames
	}
	if opts.Now == nil {
		start := time.Now()
		opts.Now = func() float64 {
			return float64(time.Since(start)) / float64(time.Millisecond)
		}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &Buffer{
		maxBufferFrames: opts.MaxBufferFrames,
		frameWindow:     opts.FrameWindow,
		maxRecordFrames: opts.MaxRecordFrames,
		now:             opts.Now,
		logger:          opts.Logger,
		frames:          make(map[uint64]BufferedInput),
	}
}

// AddEvent queues a press or release edge for the given frame. The event is
// attached to that frame's snapshot when it is captured.
func (b *Buffer) AddEvent(frame uint64, action core.Action, pressed bool) {
	b.pending = append(b.pending, Event{
		Frame:     frame,
		Timestamp: b.now(),
		Action:    action,
		Pressed:   pressed,
	})
}

// CaptureFrame snapshots the input state for one frame, deep-copying it and
// attaching the events queued for exactly that frame number. Captured
// frames also extend the active recording, if any.
func (b *Buffer) CaptureFrame(frame uint64, in core.GameInput) {
	buffered := BufferedInput{
		Frame:     frame,
		Timestamp: b.now(),
		Input:     in.Clone(),
	}

	// Correlate pending events by exact frame number; matched events are
	// consumed, the rest stay queued for their own frames.
	remaining := b.pending[:0]
	for _, e := range b.pending {
		if e.Frame == frame {
			buffered.Events = append(buffered.Events, e)
		} else {
			remaining = append(remaining, e)
		}
	}
	b.pending = remaining

	b.frames[frame] = buffered

	if b.recording != nil {
		if len(b.recording.Frames) >= b.maxRecordFrames {
			b.logger.Warn("recording frame cap reached, auto-stopping",
				"frames", len(b.recording.Frames))
			b.StopRecording()
			return
		}
		b.recording.Frames[frame] = buffered
		b.recording.TotalFrames++
	}
}

// BufferedAt returns the captured input for a frame, if still retained.
func (b *Buffer) BufferedAt(frame uint64) (BufferedInput, bool) {
	bi, ok := b.frames[frame]
	return bi, ok
}

// WasActionPressedInWindow reports whether a press edge on the action
// occurred within the frame-perfect window [currentFrame-frameWindow,
// currentFrame]. This is what forgives input landing a few frames away
// from the exact frame game logic checks it.
func (b *Buffer) WasActionPressedInWindow(action core.Action, currentFrame uint64) bool {
	return b.edgeInWindow(action, currentFrame, true)
}

// WasActionReleasedInWindow is the release-edge counterpart of
// WasActionPressedInWindow.
func (b *Buffer) WasActionReleasedInWindow(action core.Action, currentFrame uint64) bool {
	return b.edgeInWindow(action, currentFrame, false)
}

func (b *Buffer) edgeInWindow(action core.Action, currentFrame uint64, pressed bool) bool {
	start := uint64(0)
	if currentFrame >= uint64(b.frameWindow) {
		start = currentFrame - uint64(b.frameWindow)
	}
	for f := start; f <= currentFrame; f++ {
		bi, ok := b.frames[f]
		if !ok {
			continue
		}
		for _, e := range bi.Events {
			if e.Action == action && e.Pressed == pressed {
				return true
			}
		}
	}
	return false
}

// Cleanup evicts every buffered frame older than currentFrame -
// maxBufferFrames. The owner calls this once per frame, after the
// frame-perfect checks that need recent history have run.
func (b *Buffer) Cleanup(currentFrame uint64) {
	if currentFrame < uint64(b.maxBufferFrames) {
		return
	}
	oldest := currentFrame - uint64(b.maxBufferFrames)
	for f := range b.frames {
		if f < oldest {
			delete(b.frames, f)
		}
	}
}

// Reset discards all buffered frames and pending events. An active
// recording is abandoned.
func (b *Buffer) Reset() {
	b.frames = make(map[uint64]BufferedInput)
	b.pending = nil
	if b.recording != nil {
		b.logger.Warn("buffer reset abandoned an active recording",
			"frames", len(b.recording.Frames))
		b.recording = nil
	}
}

// StartRecording opens a new recording anchored at the current time.
// Starting while a recording is active discards the active one.
func (b *Buffer) StartRecording(gameType string, targetFPS int) {
	if b.recording != nil {
		b.logger.Warn("recording restarted, discarding active recording",
			"game", b.recording.Metadata.GameType)
	}
	b.recording = &Recording{
		StartTimestamp: b.now(),
		Frames:         make(map[uint64]BufferedInput),
		Metadata: RecordingMetadata{
			GameType:  gameType,
			TargetFPS: targetFPS,
		},
	}
}

// StopRecording seals the active recording, computing its duration, and
// returns it. Returns nil when nothing was recording, so it is safe to call
// unconditionally.
func (b *Buffer) StopRecording() *Recording {
	if b.recording == nil {
		return nil
	}
	rec := b.recording
	b.recording = nil
	rec.Metadata.Duration = b.now() - rec.StartTimestamp
	return rec
}

// IsRecording reports whether a recording is active.
func (b *Buffer) IsRecording() bool {
	return b.recording != nil
}

// FrameWindow returns the configured frame-perfect window size.
func (b *Buffer) FrameWindow() int { return b.frameWindow }

// Len returns the number of currently retained frames.
func (b *Buffer) Len() int { return len(b.frames) }

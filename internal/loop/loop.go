package loop

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/arcadekit/engine/internal/core"
)

// DefaultFixedTimestepMS is the fixed physics step used when none is
// configured, one step per frame at 60fps.
const DefaultFixedTimestepMS = 1000.0 / 60.0

type state int

const (
	stateStopped state = iota
	stateRunning
	statePaused
)

// Options configures a Loop. Zero values select the documented defaults.
type Options struct {
	TargetFPS         int     // Default 60
	FixedTimestep     float64 // Fixed update step in ms, default 1000/60
	MaxDeltaTime      float64 // Per-frame delta cap in ms, default 100
	UseFixedTimestep  bool    // Enable the fixed-update accumulator
	AutoPauseOnHidden bool    // Pause when the host reports hidden
	FPSWindow         int     // FPS counter sample window, default 60

	// Scheduler binds the loop to the host's frame callback facility.
	// Defaults to a TimerScheduler at TargetFPS.
	Scheduler Scheduler

	// Clock supplies monotonic milliseconds. Defaults to the system clock.
	Clock Clock

	// Logger receives loop lifecycle warnings. Defaults to log.Default().
	Logger *log.Logger
}

// Loop schedules frames and drives fixed-timestep updates, variable-timestep
// updates and render callbacks in that order within each frame.
//
// Callback exceptions are not contained by the loop: update and render
// callbacks must not panic, or the session is lost. The frame chain itself
// survives a late panic because the next frame is always scheduled before
// any frame work runs.
type Loop struct {
	mu sync.Mutex

	targetFPS int
	fixedStep float64
	useFixed  bool
	autoPause bool
	scheduler Scheduler
	clock     Clock
	logger    *log.Logger

	delta *DeltaTimer
	fps   *FPSCounter

	onFixedUpdate func(dtMS float64)
	onUpdate      func(core.FrameInfo)
	onRender      func(core.FrameInfo)

	state       state
	selfPaused  bool // Paused by visibility loss, not by the user
	frameNumber uint64
	totalTime   float64
	accumulator float64
	cancelFrame func()
	destroyed   bool
}

// New creates a stopped loop with the given options.
func New(opts Options) *Loop {
	if opts.TargetFPS <= 0 {
		opts.TargetFPS = 60
	}
	if opts.FixedTimestep <= 0 {
		opts.FixedTimestep = DefaultFixedTimestepMS
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewTimerScheduler(opts.TargetFPS)
	}
	if opts.Clock == nil {
		opts.Clock = NewSystemClock()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &Loop{
		targetFPS: opts.TargetFPS,
		fixedStep: opts.FixedTimestep,
		useFixed:  opts.UseFixedTimestep,
		autoPause: opts.AutoPauseOnHidden,
		scheduler: opts.Scheduler,
		clock:     opts.Clock,
		logger:    opts.Logger,
		delta:     NewDeltaTimer(opts.MaxDeltaTime),
		fps:       NewFPSCounter(opts.FPSWindow),
	}
}

// OnFixedUpdate registers the deterministic physics callback, invoked zero
// or more times per frame with the fixed timestep in milliseconds.
func (l *Loop) OnFixedUpdate(fn func(dtMS float64)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onFixedUpdate = fn
}

// OnUpdate registers the variable-timestep logic callback, invoked once per
// frame after all fixed updates.
func (l *Loop) OnUpdate(fn func(core.FrameInfo)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onUpdate = fn
}

// OnRender registers the render callback, invoked once per frame after the
// update callback with the same FrameInfo.
func (l *Loop) OnRender(fn func(core.FrameInfo)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onRender = fn
}

// Start resets all timing state and begins scheduling frames.
// It is a no-op while the loop is already running or after Destroy.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.destroyed || l.state == stateRunning {
		return
	}

	l.state = stateRunning
	l.selfPaused = false
	l.frameNumber = 0
	l.totalTime = 0
	l.accumulator = 0
	l.delta.Reset()
	l.fps.Reset()
	l.cancelFrame = l.scheduler.Schedule(l.frame)
}

// Pause suspends update and render work while keeping the frame chain
// alive. No-op unless running.
func (l *Loop) Pause() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pauseLocked(false)
}

func (l *Loop) pauseLocked(self bool) {
	if l.state != stateRunning {
		return
	}
	l.state = statePaused
	l.selfPaused = self
}

// Resume continues a paused loop. The delta baseline is discarded so the
// pause gap never reaches the simulation as one huge delta.
func (l *Loop) Resume() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resumeLocked()
}

func (l *Loop) resumeLocked() {
	if l.state != statePaused {
		return
	}
	l.state = stateRunning
	l.selfPaused = false
	l.delta.Reset()
}

// SetVisible feeds the host's visibility signal into the loop.
// Hiding auto-pauses a running loop; showing resumes only loops that paused
// themselves, never a user-initiated pause.
func (l *Loop) SetVisible(visible bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.autoPause {
		return
	}
	if !visible {
		if l.state == stateRunning {
			l.pauseLocked(true)
			l.logger.Debug("loop auto-paused", "frame", l.frameNumber)
		}
		return
	}
	if l.state == statePaused && l.selfPaused {
		l.resumeLocked()
		l.logger.Debug("loop auto-resumed", "frame", l.frameNumber)
	}
}

// Stop halts the loop and unschedules any pending frame. A frame callback
// already in flight runs to completion; no new frames follow it.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
}

func (l *Loop) stopLocked() {
	if l.state == stateStopped {
		return
	}
	l.state = stateStopped
	l.selfPaused = false
	if l.cancelFrame != nil {
		l.cancelFrame()
		l.cancelFrame = nil
	}
}

// Destroy stops the loop and clears all registered callbacks.
// Safe to call multiple times; the loop cannot be restarted afterwards.
func (l *Loop) Destroy() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopLocked()
	l.destroyed = true
	l.onFixedUpdate = nil
	l.onUpdate = nil
	l.onRender = nil
}

// Running reports whether the loop is running and not paused.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == stateRunning
}

// Paused reports whether the loop is paused (by the user or by visibility).
func (l *Loop) Paused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == statePaused
}

// FrameNumber returns the number of completed frames since Start.
func (l *Loop) FrameNumber() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frameNumber
}

// FPS returns the current rolling frame-rate estimate.
func (l *Loop) FPS() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fps.FPS()
}

// frame is the per-frame callback given to the scheduler.
func (l *Loop) frame() {
	l.mu.Lock()

	if l.state == stateStopped {
		l.mu.Unlock()
		return
	}

	// Reschedule before any frame work so a slow or crashing frame cannot
	// starve future scheduling.
	l.cancelFrame = l.scheduler.Schedule(l.frame)

	if l.state == statePaused {
		l.mu.Unlock()
		return
	}

	now := l.clock.Now()
	dt := l.delta.Calculate(now)
	if dt == 0 {
		// First frame after a reset only establishes the time baseline.
		l.mu.Unlock()
		return
	}

	l.fps.Tick(now)
	l.totalTime += dt

	var fixedSteps int
	if l.useFixed {
		l.accumulator += dt
		for l.accumulator >= l.fixedStep {
			l.accumulator -= l.fixedStep
			fixedSteps++
		}
	}

	info := core.FrameInfo{
		DeltaTime:   dt,
		TotalTime:   l.totalTime,
		FrameNumber: l.frameNumber,
		FPS:         l.fps.FPS(),
		TargetFPS:   l.targetFPS,
	}
	l.frameNumber++

	fixedFn := l.onFixedUpdate
	updateFn := l.onUpdate
	renderFn := l.onRender
	fixedStep := l.fixedStep
	l.mu.Unlock()

	// Ordering guarantee: fixed updates, then the variable update, then
	// render, all within this frame.
	if fixedFn != nil {
		for i := 0; i < fixedSteps; i++ {
			fixedFn(fixedStep)
		}
	}
	if updateFn != nil {
		updateFn(info)
	}
	if renderFn != nil {
		renderFn(info)
	}
}

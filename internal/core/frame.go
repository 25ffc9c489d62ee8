package core

// FrameInfo is the per-frame snapshot handed to update and render callbacks.
// It is created fresh by the game loop each frame and is read-only to
// consumers; it is never persisted.
type FrameInfo struct {
	DeltaTime   float64 // Milliseconds since the previous frame, capped
	TotalTime   float64 // Milliseconds since the loop started
	FrameNumber uint64  // Monotonic frame counter
	FPS         int     // Rolling frame-rate estimate
	TargetFPS   int     // Configured target frame rate
}

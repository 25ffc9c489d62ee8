// Package config provides YAML-based configuration loading for the engine
// runtime and the bundled games.
package config

// EngineConfig contains runtime configuration for the engine core.
type EngineConfig struct {
	Loop   LoopConfig   `yaml:"loop"`
	Input  InputConfig  `yaml:"input"`
	Replay ReplayConfig `yaml:"replay"`
	Screen ScreenConfig `yaml:"screen"`
}

// LoopConfig defines game loop timing parameters.
type LoopConfig struct {
	TargetFPS         int     `yaml:"target_fps"`
	UseFixedTimestep  bool    `yaml:"use_fixed_timestep"`
	FixedTimestepMS   float64 `yaml:"fixed_timestep_ms"` // 0 derives from target_fps
	MaxDeltaMS        float64 `yaml:"max_delta_ms"`
	AutoPauseOnHidden bool    `yaml:"auto_pause_on_hidden"`
	FPSWindow         int     `yaml:"fps_window"`
}

// InputConfig defines input buffer sizing.
type InputConfig struct {
	FrameWindow     int `yaml:"frame_window"`
	MaxBufferFrames int `yaml:"max_buffer_frames"`
}

// ReplayConfig defines recording and state history limits.
type ReplayConfig struct {
	MaxRecordFrames int `yaml:"max_record_frames"`
	MaxSnapshots    int `yaml:"max_snapshots"`
}

// ScreenConfig defines the default playfield dimensions in cells.
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PongConfig contains all configuration for the Pong game.
type PongConfig struct {
	Paddle   PongPaddle `yaml:"paddle"`
	Ball     PongBall   `yaml:"ball"`
	WinScore int        `yaml:"win_score"`
}

// PongPaddle defines paddle parameters for Pong.
type PongPaddle struct {
	Height int     `yaml:"height"`
	Speed  float64 `yaml:"speed"` // Cells per second
	Inset  int     `yaml:"inset"` // Distance from the side wall
}

// PongBall defines ball parameters for Pong.
type PongBall struct {
	Speed       float64 `yaml:"speed"` // Cells per second
	Restitution float64 `yaml:"restitution"`
}

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	InitialLength int     `yaml:"initial_length"`
	Speed         float64 `yaml:"speed"`           // Cells per second
	GrowthPerFood int     `yaml:"growth_per_food"` // Segments gained per food
	WinLength     int     `yaml:"win_length"`      // 0 disables the victory condition
}

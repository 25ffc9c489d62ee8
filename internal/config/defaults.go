package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Loop: LoopConfig{
			TargetFPS:         60,
			UseFixedTimestep:  true,
			MaxDeltaMS:        100,
			AutoPauseOnHidden: true,
			FPSWindow:         60,
		},
		Input: InputConfig{
			FrameWindow:     3,
			MaxBufferFrames: 10,
		},
		Replay: ReplayConfig{
			MaxRecordFrames: 36000,
			MaxSnapshots:    600,
		},
		Screen: ScreenConfig{
			Width:  80,
			Height: 24,
		},
	}
}

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Paddle: PongPaddle{
			Height: 5,
			Speed:  30,
			Inset:  2,
		},
		Ball: PongBall{
			Speed:       25,
			Restitution: 1.0,
		},
		WinScore: 5,
	}
}

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		InitialLength: 3,
		Speed:         8,
		GrowthPerFood: 1,
		WinLength:     0,
	}
}

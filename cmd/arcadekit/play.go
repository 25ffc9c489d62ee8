package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcadekit/engine/internal/config"
	"github.com/arcadekit/engine/internal/core"
	"github.com/arcadekit/engine/internal/games/pong"
	"github.com/arcadekit/engine/internal/games/snake"
	"github.com/arcadekit/engine/internal/platform/tui"
	"github.com/arcadekit/engine/internal/registry"
	"github.com/arcadekit/engine/internal/storage"
)

var (
	flagConfig string
	flagRecord bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move
  Space        - Primary action
  X            - Secondary action
  P/Esc        - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Examples:
  arcadekit play pong
  arcadekit play snake --record
  arcadekit play pong --config ./my-pong.yaml
  arcadekit play pong --seed 42 --fps 30`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Record this session's inputs for replay")
}

// loadEngineConfig resolves the engine config and applies global flag overrides.
func loadEngineConfig() config.EngineConfig {
	engineCfg, err := config.LoadEngine(flagEngineCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load engine config: %v\n", err)
		engineCfg = config.DefaultEngineConfig()
	}
	if flagFPS > 0 {
		engineCfg.Loop.TargetFPS = flagFPS
	}
	return engineCfg
}

// terminalRuntime builds a runtime config sized to the current terminal,
// reserving one row for the status line.
func terminalRuntime(engineCfg config.EngineConfig) core.RuntimeConfig {
	width, height := engineCfg.Screen.Width, engineCfg.Screen.Height
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h - 1
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: engineCfg.Loop.TargetFPS,
		Seed:     flagSeed,
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcadekit list' to see available games.")
		os.Exit(1)
	}

	engineCfg := loadEngineConfig()
	cfg := terminalRuntime(engineCfg)

	// Set config path for games before creation
	switch gameID {
	case "pong":
		pong.SetConfigPath(flagConfig)
	case "snake":
		snake.SetConfigPath(flagConfig)
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(tui.Options{
		Game:      game,
		Store:     store,
		Runtime:   cfg,
		EngineCfg: engineCfg,
		Record:    flagRecord,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

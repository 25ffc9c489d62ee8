// arcadekit is a terminal arcade engine with frame-perfect input capture,
// deterministic replays, and an SSH server for remote play.
//
// Usage:
//
//	arcadekit list               - List available games
//	arcadekit play <game>        - Play a game
//	arcadekit replay <id|file>   - Replay a recorded session
//	arcadekit recordings         - Browse stored recordings
//	arcadekit scores <game>      - Show high scores for a game
//	arcadekit serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.arcadekit/arcadekit.db)
//	--engine <path>    - Path to custom engine config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/arcadekit/engine/internal/games/pong"
	_ "github.com/arcadekit/engine/internal/games/snake"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagEngineCfg string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcadekit",
	Short: "ArcadeKit - A deterministic terminal game engine",
	Long: `ArcadeKit runs retro-style games in your terminal on a fixed-timestep
loop with frame-perfect input capture. Sessions can be recorded and
replayed deterministically, and the whole thing can be served over SSH.

Available commands:
  list        - Show all available games
  play        - Play a specific game directly
  replay      - Replay a recorded session
  recordings  - Browse stored recordings interactively
  scores      - View high scores
  serve       - Start SSH server for remote play

Examples:
  arcadekit list
  arcadekit play pong
  arcadekit play snake --record
  arcadekit replay 3
  arcadekit serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = engine config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcadekit/arcadekit.db", "Path to scores and recordings database")
	rootCmd.PersistentFlags().StringVar(&flagEngineCfg, "engine", "", "Path to custom engine config YAML")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(recordingsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

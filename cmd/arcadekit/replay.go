package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arcadekit/engine/internal/input"
	"github.com/arcadekit/engine/internal/platform/tui"
	"github.com/arcadekit/engine/internal/registry"
	"github.com/arcadekit/engine/internal/replay"
	"github.com/arcadekit/engine/internal/storage"
)

var flagExport string

var replayCmd = &cobra.Command{
	Use:   "replay <id|file>",
	Short: "Replay a recorded session",
	Long: `Play back a recorded session frame by frame.

The argument is either a numeric recording ID from the database or a
path to a recording JSON file. The game and tick rate come from the
recording's metadata, so playback is deterministic.

Examples:
  arcadekit replay 3
  arcadekit replay ./pong-session.json
  arcadekit replay 3 --export ./pong-session.json`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagExport, "export", "", "Write the recording to a file instead of playing it")
}

func runReplay(cmd *cobra.Command, args []string) {
	rec, err := loadRecordingSource(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading recording: %v\n", err)
		os.Exit(1)
	}

	if flagExport != "" {
		if err := replay.SaveRecording(flagExport, rec); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting recording: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Recording written to %s\n", flagExport)
		return
	}

	gameID := rec.Metadata.GameType
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: recording references unknown game %q\n", gameID)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	engineCfg := loadEngineConfig()
	if rec.Metadata.TargetFPS > 0 {
		engineCfg.Loop.TargetFPS = rec.Metadata.TargetFPS
	}
	cfg := terminalRuntime(engineCfg)

	runErr := tui.Run(tui.Options{
		Game:      game,
		Runtime:   cfg,
		EngineCfg: engineCfg,
		Replayer:  replay.NewReplayer(rec),
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running replay: %v\n", runErr)
		os.Exit(1)
	}
}

// loadRecordingSource resolves the argument as a database recording ID first,
// then falls back to reading it as a file path.
func loadRecordingSource(arg string) (*input.Recording, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		defer store.Close()

		entry, err := store.LoadRecording(id)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			return nil, fmt.Errorf("recording %d not found", id)
		}
		return replay.DeserializeRecording(entry.Data)
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	return replay.DeserializeRecording(data)
}

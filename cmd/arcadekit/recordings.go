package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arcadekit/engine/internal/platform/tui"
	"github.com/arcadekit/engine/internal/storage"
)

var flagRecordingsGame string

var recordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "Browse stored recordings",
	Long: `Open an interactive browser over stored session recordings.

Select a recording with Enter to replay it, or press X to delete it.
Use --game to filter by game.

Examples:
  arcadekit recordings
  arcadekit recordings --game pong`,
	Run: runRecordings,
}

func init() {
	recordingsCmd.Flags().StringVar(&flagRecordingsGame, "game", "", "Filter recordings by game ID")
}

func runRecordings(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}

	id, err := tui.BrowseRecordings(store, flagRecordingsGame)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Chain straight into playback when a recording was chosen.
	if id > 0 {
		runReplay(cmd, []string{strconv.FormatInt(id, 10)})
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper"
	"github.com/vovakirdan/tui-sweeper/internal/platform/tui"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: minesweeper).

Controls:
  Arrows/WASD/hjkl - Move cursor
  Space/Enter      - Reveal
  F/M              - Toggle flag
  Mouse            - Left click reveals, right click flags
  P                - Pause
  R                - Restart (after game over)
  Esc/B            - Back (after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Examples:
  sweeper play
  sweeper play minesweeper_unbounded
  sweeper play --rows 9 --cols 9 --mines 10 --seed 42
  sweeper play --config ./expert.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := string(minesweeper.ModeBounded)
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'sweeper list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

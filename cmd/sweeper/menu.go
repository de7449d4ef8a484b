package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/platform/tui"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Best times
  Q            - Quit

Examples:
  sweeper menu
  sweeper menu --rows 16 --cols 16 --mines 40
  sweeper menu --db ./results.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig()
	message := ""

	for {
		menuResult, err := tui.RunMenu(store, cfg, message)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = menuResult.Config
		message = ""

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			message = err.Error()
			continue
		}

		// A fixed --seed replays the same board every round.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		// Board errors are shown in the menu instead of ending the session.
		if err := tui.Run(game, store, cfg); err != nil {
			message = err.Error()
		}
	}

	if store != nil {
		store.Close()
	}
}

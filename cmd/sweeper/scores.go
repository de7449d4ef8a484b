package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

var (
	flagScoresClear  bool
	flagScoresRecent bool
	flagScoresLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best times for a mode",
	Long: `Display the fastest wins and overall statistics for the specified mode
(default: minesweeper).

Examples:
  sweeper scores
  sweeper scores minesweeper_unbounded
  sweeper scores --recent
  sweeper scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all results for the mode")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest games instead of best times")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
}

func runScores(_ *cobra.Command, args []string) {
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
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearResults(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing results: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all results for %s.\n", title)
		return
	}

	var results []storage.Result
	if flagScoresRecent {
		results, err = store.RecentResults(gameID, flagScoresLimit)
		fmt.Printf("Recent Games - %s\n", title)
	} else {
		results, err = store.BestTimes(gameID, flagScoresLimit)
		fmt.Printf("Best Times - %s\n", title)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'sweeper play %s' to set the first time!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-12s  %s\n", "Rank", "Time", "Score", "Result", "Board", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-12s  %s\n", "----", "----", "-----", "------", "-----", "----")
	for i, r := range results {
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		board := fmt.Sprintf("%dx%d/%d", r.Rows, r.Cols, r.Mines)
		fmt.Printf("  %-4d  %-8s  %-6d  %-6s  %-12s  %s\n",
			i+1, r.Elapsed.Truncate(100*time.Millisecond), r.Score, outcome, board,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(gameID)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Played %d, won %d, lost %d", stats.Played, stats.Won, stats.Lost)
	if stats.BestTime > 0 {
		fmt.Printf(", best %s", stats.BestTime.Truncate(100*time.Millisecond))
	}
	fmt.Println()
}

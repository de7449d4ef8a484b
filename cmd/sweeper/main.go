// sweeper is a terminal minesweeper with a local TUI, an SSH server and a
// JSON API.
//
// Usage:
//
//	sweeper list              - List available modes
//	sweeper play [mode]       - Play a mode (default: minesweeper)
//	sweeper menu              - Start menu to pick modes interactively
//	sweeper scores [mode]     - Show best times for a mode
//	sweeper serve             - Start SSH server for remote play
//	sweeper http              - Start the JSON API server
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.sweeper/results.db)
//	--config <path>      - Use a custom minesweeper YAML config
//	--rows/--cols/--mines - Override the configured board
//	--log-level <level>  - Server log level (debug, info, warn, error)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagRows     int
	flagCols     int
	flagMines    int
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sweeper",
	Short: "Minesweeper in your terminal",
	Long: `sweeper is a terminal minesweeper. The first reveal is always safe,
and zero cells open their neighbourhood in a depth-limited cascade.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  scores   - View best times
  serve    - Start SSH server for remote play
  http     - Start the JSON API server

Examples:
  sweeper play
  sweeper play minesweeper_unbounded --rows 16 --cols 30 --mines 99
  sweeper menu
  sweeper serve --ssh :2222
  sweeper http --addr :8080`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		minesweeper.SetConfigPath(flagConfig)
		minesweeper.SetBoardOverrides(flagRows, flagCols, flagMines)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sweeper/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom minesweeper config YAML")
	rootCmd.PersistentFlags().IntVar(&flagRows, "rows", 0, "Board rows (0 = from config)")
	rootCmd.PersistentFlags().IntVar(&flagCols, "cols", 0, "Board columns (0 = from config)")
	rootCmd.PersistentFlags().IntVar(&flagMines, "mines", 0, "Mine count (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level for servers: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(httpCmd)
}

// newLogger returns a stderr logger at the --log-level level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

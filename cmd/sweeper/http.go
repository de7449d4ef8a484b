package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/platform/httpapi"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

var (
	flagHTTPAddr   string
	flagSessionTTL time.Duration
	flagMaxCells   int
)

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Start the JSON API server",
	Long: `Start an HTTP server exposing minesweeper sessions as a JSON API.

Endpoints:
  POST   /api/sessions             - Create a session {rows, cols, mines, seed, unbounded}
  GET    /api/sessions/:id         - Session state
  POST   /api/sessions/:id/reveal  - Reveal a cell {row, col}
  POST   /api/sessions/:id/flag    - Toggle a flag {row, col}
  DELETE /api/sessions/:id         - Drop a session
  GET    /healthz                  - Liveness
  GET    /metrics                  - Prometheus metrics

Board parameters a request leaves out come from the loaded config.

Examples:
  sweeper http
  sweeper http --addr 127.0.0.1:9000 --session-ttl 10m
  sweeper http --max-cells 40000          # Allow boards up to 200x200
  sweeper http --config ./expert.yaml --log-level debug`,
	Run: runHTTP,
}

func init() {
	httpCmd.Flags().StringVar(&flagHTTPAddr, "addr", ":8080", "HTTP listen address (host:port)")
	httpCmd.Flags().DurationVar(&flagSessionTTL, "session-ttl", 30*time.Minute, "Drop sessions idle for longer than this")
	httpCmd.Flags().IntVar(&flagMaxCells, "max-cells", httpapi.DefaultMaxCells, "Largest board (rows*cols) a request may create, 0 for no limit")
}

func runHTTP(_ *cobra.Command, _ []string) {
	logger := newLogger("sweeper-http")
	if logger.GetLevel() > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	defaults, err := config.LoadMinesweeper(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	defaults.ApplyOverrides(flagRows, flagCols, flagMines)
	if err := defaults.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if b := defaults.Board; flagMaxCells > 0 && b.Rows*b.Cols > flagMaxCells {
		fmt.Fprintf(os.Stderr, "Error: default board %dx%d exceeds --max-cells %d\n", b.Rows, b.Cols, flagMaxCells)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		store = nil
	}

	cfg := httpapi.DefaultConfig()
	cfg.Address = flagHTTPAddr
	cfg.SessionTTL = flagSessionTTL
	cfg.MaxCells = flagMaxCells
	cfg.Defaults = defaults
	cfg.Store = store
	cfg.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := httpapi.NewServer(cfg).ListenAndServe(ctx)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", runErr)
		os.Exit(1)
	}
}

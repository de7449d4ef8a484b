// Package httpapi serves minesweeper sessions as a JSON API over HTTP with
// Gin, and exposes Prometheus metrics about them.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper/engine"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// SessionTTL is how long an untouched session is kept.
	SessionTTL time.Duration

	// MaxCells caps rows*cols of a requested board. Zero disables the cap.
	MaxCells int

	// Defaults fills in board parameters a request leaves out.
	Defaults config.MinesweeperConfig

	// Store records finished games. Optional.
	Store *storage.Store

	// Logger receives request and session events. Optional.
	Logger *log.Logger
}

// DefaultMaxCells is the default board size limit (a 100x100 board).
const DefaultMaxCells = 10000

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:    ":8080",
		SessionTTL: 30 * time.Minute,
		MaxCells:   DefaultMaxCells,
		Defaults:   config.DefaultMinesweeperConfig(),
	}
}

// Server is the HTTP front end.
type Server struct {
	config  Config
	router  *gin.Engine
	manager *Manager
	metrics *Metrics
	logger  *log.Logger
}

// NewServer builds the router and session manager.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	metrics := NewMetrics()
	s := &Server{
		config:  cfg,
		router:  gin.New(),
		manager: NewManager(cfg.Defaults, cfg.SessionTTL, cfg.MaxCells, cfg.Store, metrics, logger),
		metrics: metrics,
		logger:  logger,
	}

	s.router.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.manager.Len()})
	})
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := s.router.Group("/api/sessions")
	api.POST("", s.createSession)
	api.GET("/:id", s.getSession)
	api.POST("/:id/reveal", s.reveal)
	api.POST("/:id/flag", s.flag)
	api.DELETE("/:id", s.deleteSession)
}

// requestLogger logs each request once it completes.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Manager returns the session manager.
func (s *Server) Manager() *Manager {
	return s.manager
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.manager.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", s.config.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// createRequest is the body of POST /api/sessions. Omitted fields take the
// configured defaults.
type createRequest struct {
	Rows      *int   `json:"rows"`
	Cols      *int   `json:"cols"`
	Mines     *int   `json:"mines"`
	Seed      *int64 `json:"seed"`
	Unbounded bool   `json:"unbounded"`
}

// coordRequest is the body of the reveal and flag endpoints.
type coordRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

func (s *Server) createSession(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	view, err := s.manager.Create(NewSessionParams{
		Rows:      req.Rows,
		Cols:      req.Cols,
		Mines:     req.Mines,
		Seed:      req.Seed,
		Unbounded: req.Unbounded,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (s *Server) getSession(c *gin.Context) {
	view, err := s.manager.Get(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) reveal(c *gin.Context) {
	coord, ok := bindCoord(c)
	if !ok {
		return
	}

	resp, err := s.manager.Reveal(c.Param("id"), coord)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) flag(c *gin.Context) {
	coord, ok := bindCoord(c)
	if !ok {
		return
	}

	resp, err := s.manager.Flag(c.Param("id"), coord)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) deleteSession(c *gin.Context) {
	if err := s.manager.Delete(c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindCoord(c *gin.Context) (engine.Coord, bool) {
	var req coordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return engine.Coord{}, false
	}
	return engine.C(*req.Row, *req.Col), true
}

// writeError maps domain errors to status codes.
func (s *Server) writeError(c *gin.Context, err error) {
	var cfgErr *engine.ConfigError

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.As(err, &cfgErr), errors.Is(err, engine.ErrOutOfBounds):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrSessionOver):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper/engine"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	if got, want := EmbeddedMinesweeper(), DefaultMinesweeperConfig(); got != want {
		t.Errorf("embedded config = %+v, want %+v", got, want)
	}
	if err := DefaultMinesweeperConfig().Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("board:\n  rows: 9\n  cols: 9\n  mines: 10\ncascade:\n  first_depth: 1\n  depth: 2\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadMinesweeper(path)
	if err != nil {
		t.Fatalf("LoadMinesweeper failed: %v", err)
	}
	want := MinesweeperConfig{
		Board:   BoardConfig{Rows: 9, Cols: 9, Mines: 10},
		Cascade: CascadeConfig{FirstDepth: 1, Depth: 2},
	}
	if cfg != want {
		t.Errorf("LoadMinesweeper = %+v, want %+v", cfg, want)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	if err := os.WriteFile(path, []byte("board: {rows: 30, cols: 30, mines: 0}\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadMinesweeper(path)
	if err != nil {
		t.Fatalf("LoadMinesweeper failed: %v", err)
	}
	if cfg.Board != (BoardConfig{Rows: 30, Cols: 30, Mines: 0}) {
		t.Errorf("board = %+v", cfg.Board)
	}
	if cfg.Cascade != DefaultMinesweeperConfig().Cascade {
		t.Errorf("cascade = %+v, want defaults %+v", cfg.Cascade, DefaultMinesweeperConfig().Cascade)
	}

	s, err := engine.NewSession(cfg.Board.Rows, cfg.Board.Cols, cfg.Board.Mines, engine.NewSource(1), cfg.SessionOptions()...)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if out := s.Reveal(engine.C(15, 15)); len(out.Revealed) <= 1 {
		t.Errorf("first reveal opened %d cells, want a cascade", len(out.Revealed))
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadMinesweeper(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v, want os.ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [1, 2"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadMinesweeper(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	crowded := filepath.Join(dir, "crowded.yaml")
	if err := os.WriteFile(crowded, []byte("board:\n  rows: 4\n  cols: 4\n  mines: 8\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadMinesweeper(crowded)
	var cfgErr *engine.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("crowded board: got %v, want ConfigError", err)
	}
}

func TestValidateCascade(t *testing.T) {
	tests := []struct {
		name    string
		cascade CascadeConfig
		wantErr bool
	}{
		{"defaults", CascadeConfig{FirstDepth: 3, Depth: 5}, false},
		{"zero budgets", CascadeConfig{}, false},
		{"negative first", CascadeConfig{FirstDepth: -1, Depth: 5}, true},
		{"negative later", CascadeConfig{FirstDepth: 3, Depth: -2}, true},
		{"unbounded ignores depths", CascadeConfig{FirstDepth: -1, Depth: -1, Unbounded: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMinesweeperConfig()
			cfg.Cascade = tt.cascade
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultMinesweeperConfig()
	cfg.ApplyOverrides(0, 30, 0)

	if cfg.Board.Rows != 20 || cfg.Board.Cols != 30 || cfg.Board.Mines != 50 {
		t.Errorf("ApplyOverrides(0, 30, 0) = %+v", cfg.Board)
	}

	cfg.ApplyOverrides(16, 16, 40)
	if cfg.Board != (BoardConfig{Rows: 16, Cols: 16, Mines: 40}) {
		t.Errorf("ApplyOverrides(16, 16, 40) = %+v", cfg.Board)
	}
}

func TestSessionOptions(t *testing.T) {
	cfg := DefaultMinesweeperConfig()
	cfg.Board = BoardConfig{Rows: 30, Cols: 30, Mines: 0}

	cfg.Cascade.Unbounded = true
	s, err := engine.NewSession(cfg.Board.Rows, cfg.Board.Cols, cfg.Board.Mines, engine.NewSource(1), cfg.SessionOptions()...)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	s.Reveal(engine.C(0, 0))
	if s.Status() != engine.StatusWon {
		t.Errorf("unbounded config did not clear the board: %v", s.Status())
	}
}

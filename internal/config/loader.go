package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper/engine"
)

const minesweeperFile = "minesweeper.yaml"

// LoadMinesweeper loads and validates the minesweeper configuration.
// Search order: customPath -> ~/.sweeper/configs/minesweeper.yaml -> ./configs/minesweeper.yaml -> embedded default
func LoadMinesweeper(customPath string) (MinesweeperConfig, error) {
	cfg, err := loadMinesweeper(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Files are decoded over the defaults, so keys they omit keep default values.
func loadMinesweeper(customPath string) (MinesweeperConfig, error) {
	cfg := DefaultMinesweeperConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(minesweeperFile), filepath.Join("configs", minesweeperFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fileCfg := DefaultMinesweeperConfig()
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			return fileCfg, nil
		}
	}

	return EmbeddedMinesweeper(), nil
}

// EmbeddedMinesweeper parses the embedded default YAML, falling back to
// DefaultMinesweeperConfig if it is unreadable.
func EmbeddedMinesweeper() MinesweeperConfig {
	cfg := DefaultMinesweeperConfig()
	if err := yaml.Unmarshal(defaultMinesweeperYAML, &cfg); err != nil {
		return DefaultMinesweeperConfig()
	}
	return cfg
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sweeper", "configs", filename)
}

// Validate checks that a session can be built from the configuration.
func (c MinesweeperConfig) Validate() error {
	if err := engine.ValidateBoard(c.Board.Rows, c.Board.Cols, c.Board.Mines); err != nil {
		return fmt.Errorf("config: board: %w", err)
	}
	if !c.Cascade.Unbounded && (c.Cascade.FirstDepth < 0 || c.Cascade.Depth < 0) {
		return fmt.Errorf("config: cascade depths must not be negative (first_depth=%d, depth=%d)",
			c.Cascade.FirstDepth, c.Cascade.Depth)
	}
	return nil
}

// ApplyOverrides replaces board values with the non-zero arguments.
func (c *MinesweeperConfig) ApplyOverrides(rows, cols, mines int) {
	if rows > 0 {
		c.Board.Rows = rows
	}
	if cols > 0 {
		c.Board.Cols = cols
	}
	if mines > 0 {
		c.Board.Mines = mines
	}
}

// SessionOptions converts the cascade settings into engine options.
func (c MinesweeperConfig) SessionOptions() []engine.Option {
	if c.Cascade.Unbounded {
		return []engine.Option{engine.WithUnboundedCascade()}
	}
	return []engine.Option{engine.WithCascadeDepths(c.Cascade.FirstDepth, c.Cascade.Depth)}
}

package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper/engine"
)

//go:embed defaults/minesweeper.yaml
var defaultMinesweeperYAML []byte

// DefaultMinesweeperConfig returns the built-in configuration.
func DefaultMinesweeperConfig() MinesweeperConfig {
	return MinesweeperConfig{
		Board: BoardConfig{
			Rows:  20,
			Cols:  20,
			Mines: 50,
		},
		Cascade: CascadeConfig{
			FirstDepth: engine.DefaultFirstDepth,
			Depth:      engine.DefaultDepth,
		},
	}
}

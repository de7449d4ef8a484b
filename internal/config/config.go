// Package config loads the minesweeper settings from YAML.
package config

// MinesweeperConfig contains all configuration for the minesweeper game.
type MinesweeperConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Cascade CascadeConfig `yaml:"cascade"`
}

// BoardConfig defines the board dimensions and mine count.
type BoardConfig struct {
	Rows  int `yaml:"rows"`
	Cols  int `yaml:"cols"`
	Mines int `yaml:"mines"`
}

// CascadeConfig defines the reveal cascade budgets.
type CascadeConfig struct {
	FirstDepth int  `yaml:"first_depth"`
	Depth      int  `yaml:"depth"`
	Unbounded  bool `yaml:"unbounded"` // Overrides both depths
}

// Package config provides YAML-based game configuration loading and
// difficulty presets for the match-3 game.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board        Match3Board        `yaml:"board"`
	Rules        Match3Rules        `yaml:"rules"`
	Presentation Match3Presentation `yaml:"presentation"`
}

// Match3Board defines the grid dimensions and token variety.
type Match3Board struct {
	Size  int `yaml:"size"`  // Grid is Size x Size
	Kinds int `yaml:"kinds"` // Number of distinct token kinds
}

// Match3Rules defines scoring budget and fill behaviour.
type Match3Rules struct {
	Moves             int  `yaml:"moves"`              // Move budget per game
	PlacementAttempts int  `yaml:"placement_attempts"` // Draws per cell before accepting a run
	MaxRerolls        int  `yaml:"max_rerolls"`        // Whole-board refills before the fallback pattern
	RequirePlayable   bool `yaml:"require_playable"`   // Reroll fresh boards that have no move
}

// Match3Presentation defines animation pacing in simulation ticks.
type Match3Presentation struct {
	FrameTicks int `yaml:"frame_ticks"` // Ticks each cascade frame stays on screen
	HintTicks  int `yaml:"hint_ticks"`  // Ticks a hint stays highlighted
}

// Limits accepted by Validate.
const (
	MinBoardSize = 3
	MaxBoardSize = 12
	MinKinds     = 2
	MaxKinds     = 6
)

// Validate reports every out-of-range field in one error.
func (c Match3Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Board.Size >= MinBoardSize && c.Board.Size <= MaxBoardSize,
		"board.size must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, c.Board.Size)
	check(c.Board.Kinds >= MinKinds && c.Board.Kinds <= MaxKinds,
		"board.kinds must be between %d and %d, got %d", MinKinds, MaxKinds, c.Board.Kinds)
	check(c.Rules.Moves > 0, "rules.moves must be positive, got %d", c.Rules.Moves)
	check(c.Rules.PlacementAttempts > 0,
		"rules.placement_attempts must be positive, got %d", c.Rules.PlacementAttempts)
	check(c.Rules.MaxRerolls > 0, "rules.max_rerolls must be positive, got %d", c.Rules.MaxRerolls)
	check(c.Presentation.FrameTicks > 0,
		"presentation.frame_ticks must be positive, got %d", c.Presentation.FrameTicks)
	check(c.Presentation.HintTicks >= 0,
		"presentation.hint_ticks must not be negative, got %d", c.Presentation.HintTicks)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid match3 config: %w", errors.Join(errs...))
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a flag value into a preset. Empty means fixed.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyFixed, nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal, hard or fixed)", s)
}

// IsFixedPreset returns true if the preset keeps the loaded config as is.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

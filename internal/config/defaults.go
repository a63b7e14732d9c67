package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-3 configuration.
// Used when the embedded YAML cannot be parsed.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: Match3Board{
			Size:  8,
			Kinds: 6,
		},
		Rules: Match3Rules{
			Moves:             30,
			PlacementAttempts: 10,
			MaxRerolls:        100,
			RequirePlayable:   true,
		},
		Presentation: Match3Presentation{
			FrameTicks: 9,
			HintTicks:  90,
		},
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const match3File = "match3.yaml"

// LoadMatch3 loads match-3 configuration.
// Search order: customPath -> ~/.match3/configs/match3.yaml -> ./configs/match3.yaml -> embedded default
//
// Files may set only some fields; the rest keep their default values.
// An explicit customPath must exist, parse and validate. Unreadable or
// invalid files found during the search are skipped.
func LoadMatch3(customPath string) (Match3Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Match3Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseMatch3(data)
		if err != nil {
			return Match3Config{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(match3File), filepath.Join("configs", match3File)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseMatch3(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseMatch3(defaultMatch3YAML)
	if err != nil {
		return DefaultMatch3Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseMatch3 decodes data over the defaults and validates the result.
func parseMatch3(data []byte) (Match3Config, error) {
	cfg := DefaultMatch3Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Match3Config{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Match3Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".match3", "configs", filename)
}

// ApplyMatch3Preset modifies the config based on a difficulty preset.
// The fixed preset leaves the loaded values untouched.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Rules.Moves = 40
		cfg.Board.Kinds = 5
		cfg.Rules.RequirePlayable = true
	case DifficultyNormal:
		cfg.Rules.Moves = 30
		cfg.Board.Kinds = 6
		cfg.Rules.RequirePlayable = true
	case DifficultyHard:
		cfg.Rules.Moves = 20
		cfg.Board.Kinds = 6
		cfg.Rules.RequirePlayable = false
	}
}

// Marshal renders cfg as YAML, e.g. for writing a starter config file.
func Marshal(cfg Match3Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

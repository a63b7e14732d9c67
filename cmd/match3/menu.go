package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode and difficulty picker",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select. Pick a mode, then a
difficulty. Leaving a game with Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scoreboard
  Esc/B        - Back
  Q            - Quit

Examples:
  match3 menu
  match3 menu --fps 30
  match3 menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	// Shares --config and --difficulty with play; the difficulty only
	// preselects the menu entry
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Preselected difficulty: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	applyGameFlags()
	initial := config.DifficultyPreset("")
	if flagDifficulty != "" {
		initial, _ = config.ParsePreset(flagDifficulty)
	}

	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			break
		}

		selection, updatedCfg, selErr := tui.RunMatch3ModeSelector(cfg, initial)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			continue
		}
		cfg = updatedCfg

		// User pressed back or quit
		if selection == nil {
			continue
		}
		initial = selection.Difficulty

		game, err := registry.Create(selection.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		if t, ok := game.(registry.Tunable); ok {
			//nolint:errcheck // Presets offered by the selector are always valid
			t.SetDifficulty(string(selection.Difficulty))
		}

		quit, runErr := tui.Run(game, store, cfg)
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			break
		}
		if quit {
			break
		}
	}
}

// match3 is a terminal match-3 game built on a pure grid engine.
//
// Usage:
//
//	match3 list              - List available game modes
//	match3 play [mode]       - Play a mode (default: match3)
//	match3 menu              - Start menu to pick a mode interactively
//	match3 serve             - Start SSH server for remote play
//	match3 scores [mode]     - Show high scores and stats
//	match3 simulate          - Play headless games with the hint search
//	match3 config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.match3/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its modes
	_ "github.com/vovakirdan/tui-match3/internal/games/match3"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - Swap gems in your terminal",
	Long: `Match-3 is a terminal puzzle game: swap neighbouring gems to line up
three or more of a kind, then watch the cascade.

Available commands:
  list      - Show the game modes
  play      - Play a mode directly
  menu      - Interactive mode and difficulty picker
  serve     - Start SSH server for remote play
  scores    - View high scores and stats
  simulate  - Run headless games played by the hint search
  config    - Print the effective configuration as YAML

Examples:
  match3 play
  match3 play match3_endless --difficulty easy
  match3 menu
  match3 serve --ssh :2222
  match3 scores match3
  match3 simulate --games 20 --seed 42`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.match3/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

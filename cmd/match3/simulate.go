package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagSimGames   int
	flagSimEndless bool
	flagSimLimit   int
	flagSimWorkers int
	flagSimSave    bool
	flagSimVerbose bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play headless games with the hint search",
	Long: `Run games without a terminal UI. Every swap is the first one the hint
search finds, so results depend only on the seed and the config.

Useful for checking how a config or difficulty plays out.

Examples:
  match3 simulate
  match3 simulate --games 100 --seed 42
  match3 simulate --endless --limit 500
  match3 simulate --difficulty hard --verbose
  match3 simulate --config ./my-match3.yaml --save`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimGames, "games", 10, "Number of games to play")
	simulateCmd.Flags().BoolVar(&flagSimEndless, "endless", false, "Play endless mode (no move budget)")
	simulateCmd.Flags().IntVar(&flagSimLimit, "limit", match3.DefaultSimSwapLimit, "Stop a game after this many swaps")
	simulateCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Games played in parallel (0 = one per CPU)")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record results in the scores database")
	simulateCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log every game and engine cascades")
	simulateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "simulate",
	})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
		match3.SetLogger(logger)
	}

	applyGameFlags()
	cfg, err := match3.LoadConfig()
	if err != nil {
		logger.Warn("config error, using defaults", "error", err)
	}

	mode := match3.ModeClassic
	gameID := "match3"
	if flagSimEndless {
		mode = match3.ModeEndless
		gameID = "match3_endless"
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Info("starting",
		"games", flagSimGames,
		"mode", mode,
		"seed", seed,
		"board", cfg.Board.Size,
		"kinds", cfg.Board.Kinds,
		"moves", cfg.Rules.Moves,
	)

	start := time.Now()
	results, err := match3.Simulate(context.Background(), cfg, match3.SimOptions{
		Mode:      mode,
		Games:     flagSimGames,
		Seed:      seed,
		SwapLimit: flagSimLimit,
		Workers:   flagSimWorkers,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("finished", "elapsed", time.Since(start).Round(time.Millisecond))

	printSimSummary(results)

	if flagSimSave {
		saveSimResults(logger, gameID, results)
	}
}

func printSimSummary(results []match3.SimResult) {
	if len(results) == 0 {
		fmt.Println("No games played.")
		return
	}

	fmt.Printf("  %-20s  %-7s  %-5s  %-5s  %s\n", "Seed", "Score", "Moves", "Chain", "End")
	fmt.Printf("  %-20s  %-7s  %-5s  %-5s  %s\n", "----", "-----", "-----", "-----", "---")

	var total, best, bestChain, opening int
	reasons := make(map[string]int)
	for _, r := range results {
		end := r.Reason.String()
		if r.Reason == engine.EndNone {
			end = "swap limit"
		}
		fmt.Printf("  %-20d  %-7d  %-5d  x%-4d  %s\n", r.Seed, r.Score, r.MovesUsed, r.MaxChain, end)

		total += r.Score
		best = max(best, r.Score)
		bestChain = max(bestChain, r.MaxChain)
		opening += r.OpeningMoves
		reasons[end]++
	}

	fmt.Println()
	games := float64(len(results))
	fmt.Printf("Games: %d  Best: %d  Avg: %.1f  Best chain: x%d  Opening moves: %.1f\n",
		len(results), best, float64(total)/games, bestChain, float64(opening)/games)
	for _, end := range []string{"out of moves", "no possible moves", "swap limit"} {
		if n := reasons[end]; n > 0 {
			fmt.Printf("  %-18s %d\n", end+":", n)
		}
	}
}

func saveSimResults(logger *log.Logger, gameID string, results []match3.SimResult) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Error("could not open scores database", "error", err)
		return
	}
	defer store.Close()

	saved := 0
	for _, r := range results {
		if r.Score <= 0 {
			continue
		}
		reason := ""
		if r.Reason != engine.EndNone {
			reason = r.Reason.String()
		}
		_, err := store.SaveResult(storage.Result{
			GameID:    gameID,
			Score:     r.Score,
			MovesUsed: r.MovesUsed,
			MaxChain:  r.MaxChain,
			EndReason: reason,
		})
		if err != nil {
			logger.Error("could not save result", "seed", r.Seed, "error", err)
			continue
		}
		saved++
	}
	logger.Info("saved results", "count", saved, "db", flagDBPath)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresAll   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top high scores and stats for a mode. Without a mode,
a stats line for every mode that has been played.

Examples:
  match3 scores
  match3 scores match3
  match3 scores match3_endless --limit 25
  match3 scores match3 --all
  match3 scores match3 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every recorded game")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the mode")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		printAllStats(store)
		return
	}

	gameID := args[0]
	info, ok := registry.Info(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'match3 list' to see available modes.")
		os.Exit(1)
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s\n", info.Title)
		return
	}

	var scores []storage.ScoreEntry
	if flagScoresAll {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'match3 play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-17s  %s\n", "Rank", "Score", "Moves", "Chain", "End", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-17s  %s\n", "----", "-----", "-----", "-----", "---", "----")

	for i, entry := range scores {
		end := entry.EndReason
		if end == "" {
			end = "-"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-5d  x%-4d  %-17s  %s\n", i+1, entry.Score, entry.MovesUsed, entry.MaxChain, end, dateStr)
	}

	fmt.Println()
	if stats, err := store.Stats(gameID); err == nil {
		printStats(stats)
	}
}

func printAllStats(store *storage.Store) {
	all, err := store.AllStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No games played yet.")
		return
	}

	for _, g := range registry.List() {
		stats, ok := all[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("%s (%s)\n", g.Title, g.ID)
		printStats(stats)
		fmt.Println()
	}
}

func printStats(s *storage.GameStats) {
	fmt.Printf("  Games: %d  Best: %d  Avg: %.1f  Best chain: x%d  Last played: %s\n",
		s.GamesCount, s.HighScore, s.AvgScore, s.BestChain, s.LastPlayed.Format("2006-01-02 15:04"))
}

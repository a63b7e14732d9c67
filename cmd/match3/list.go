package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game modes",
	Long:  `Shows every registered game mode with a short description.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-18s  %s\n", maxIDLen, "ID", "Title", "Description")
	fmt.Printf("  %-*s  %-18s  %s\n", maxIDLen, "--", "-----", "-----------")

	for _, g := range games {
		fmt.Printf("  %-*s  %-18s  %s\n", maxIDLen, g.ID, g.Title, g.Description)
	}

	fmt.Println()
	fmt.Println("Run 'match3 play <id>' to play a mode.")
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkrivenko/snake-arena/internal/config"
	"github.com/mkrivenko/snake-arena/internal/game"
	"github.com/mkrivenko/snake-arena/internal/storage"
)

var (
	flagScoresMode  string
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top scores across all players, optionally filtered by
game mode.

Examples:
  arena scores
  arena scores --mode walls
  arena scores --limit 25`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "", "Filter by mode: walls or pass-through")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "How many entries to show")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if flagScoresMode != "" {
		if _, ok := game.ParseMode(flagScoresMode); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", flagScoresMode)
			fmt.Fprintln(os.Stderr, "Valid modes: walls, pass-through")
			os.Exit(1)
		}
	}

	store, err := storage.Open(config.ExpandHome(cfg.Server.DBPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	entries, err := store.Leaderboard(flagScoresMode, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	if flagScoresMode != "" {
		fmt.Printf("High Scores - %s\n", flagScoresMode)
	} else {
		fmt.Println("High Scores - all modes")
	}
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'arena play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-8s  %-13s  %s\n", "Rank", "Player", "Score", "Mode", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %-13s  %s\n", "----", "------", "-----", "----", "----")

	for _, e := range entries {
		fmt.Printf("  %-4d  %-16s  %-8d  %-13s  %s\n",
			e.Rank, e.Username, e.Score, e.Mode, e.CreatedAt.Format("2006-01-02"))
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkrivenko/snake-arena/internal/client"
	"github.com/mkrivenko/snake-arena/internal/platform/tui"
)

var flagServer string

var watchCmd = &cobra.Command{
	Use:   "watch [player-id]",
	Short: "Watch a live player",
	Long: `Watch another player's game as it happens. Without arguments this
lists who is currently live; pass a player id to open their stream.

If the stream drops mid-game the viewer carries on with a local
simulation, so a flaky connection does not end the show.

Examples:
  arena watch
  arena watch 4f1f6a3e-8c2d-4c7e-9b65-2f4a5d8e1b9c
  arena watch --server http://arena.example.com:8080 <player-id>`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagServer, "server", "http://localhost:8080", "Arena server base URL")
}

func runWatch(_ *cobra.Command, args []string) {
	if len(args) == 0 {
		listLivePlayers()
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	id := args[0]
	err = tui.RunWatch(flagServer, id, cfg.Game, cfg.Spectator.TurnChance, cfg.Spectator.FrameMs)
	if errors.Is(err, client.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no live player %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'arena watch' to see who is live.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error watching: %v\n", err)
		os.Exit(1)
	}
}

func listLivePlayers() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	players, err := client.New(flagServer).Players(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing live players: %v\n", err)
		os.Exit(1)
	}

	if len(players) == 0 {
		fmt.Println("Nobody is live right now.")
		return
	}

	fmt.Println("Live players:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-36s  %-16s  %-7s  %-13s  %s\n", "ID", "Player", "Score", "Mode", "Watching")
	fmt.Printf("  %-36s  %-16s  %-7s  %-13s  %s\n", "--", "------", "-----", "----", "--------")

	for _, p := range players {
		fmt.Printf("  %-36s  %-16s  %-7d  %-13s  %d\n", p.ID, p.Username, p.Score, p.Mode, p.Viewers)
	}

	fmt.Println()
	fmt.Println("Run 'arena watch <id>' to open a stream.")
}

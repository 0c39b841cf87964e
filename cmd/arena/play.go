package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkrivenko/snake-arena/internal/config"
	"github.com/mkrivenko/snake-arena/internal/game"
	"github.com/mkrivenko/snake-arena/internal/platform/tui"
	"github.com/mkrivenko/snake-arena/internal/storage"
)

var (
	flagMode string
	flagSeed int64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in the terminal",
	Long: `Play snake locally. High scores are kept per mode in the same
database the server uses, so local play and the leaderboard live side
by side.

Controls:
  Arrows/WASD - Steer
  P           - Pause
  M           - Switch mode (while paused or after game over)
  R           - Restart (after game over)
  Q/Ctrl+C    - Quit

Modes:
  walls        - Hitting a wall ends the game
  pass-through - The snake wraps around the edges

Examples:
  arena play
  arena play --mode pass-through
  arena play --seed 42`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "walls", "Game mode: walls or pass-through")
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	mode, ok := game.ParseMode(flagMode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", flagMode)
		fmt.Fprintln(os.Stderr, "Valid modes: walls, pass-through")
		os.Exit(1)
	}

	opts := tui.PlayOptions{
		Rules: cfg.Game,
		Mode:  mode,
	}

	store, err := storage.Open(config.ExpandHome(cfg.Server.DBPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open the scores database: %v\n", err)
		// Continue without persistence, the game still works.
	} else {
		defer store.Close()
		opts.Scores = store.ScoresFor(storage.LocalOwner)
	}

	if flagSeed != 0 {
		opts.Rng = rand.New(rand.NewSource(flagSeed))
	}

	if err := tui.RunPlay(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

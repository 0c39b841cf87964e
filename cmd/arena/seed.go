package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mkrivenko/snake-arena/internal/auth"
	"github.com/mkrivenko/snake-arena/internal/config"
	"github.com/mkrivenko/snake-arena/internal/storage"
)

// demoPassword is the password every seeded demo account gets.
const demoPassword = "password123"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo accounts and scores",
	Long: `Insert the demo accounts (PixelMaster, SnakeKing, NeonViper) and a
starter leaderboard into the database. Does nothing if users already
exist.

The server runs the same seeding on startup; this command exists for
preparing a database ahead of time.

Examples:
  arena seed
  arena seed --db ./arena.db`,
	Run: runSeed,
}

func runSeed(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(config.ExpandHome(cfg.Server.DBPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing demo password: %v\n", err)
		os.Exit(1)
	}

	seeded, err := store.Seed(hash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error seeding database: %v\n", err)
		os.Exit(1)
	}

	if seeded {
		fmt.Println("Seeded demo accounts and leaderboard.")
		fmt.Printf("Demo accounts log in with password %q.\n", demoPassword)
	} else {
		fmt.Println("Database already has users; nothing to do.")
	}
}

// seedDemoData is the serve-time variant: seed if empty, log instead
// of printing, never fail the server over it.
func seedDemoData(store *storage.Store, logger *log.Logger) {
	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		logger.Warn("could not seed demo data", "err", err)
		return
	}
	seeded, err := store.Seed(hash)
	if err != nil {
		logger.Warn("could not seed demo data", "err", err)
		return
	}
	if seeded {
		logger.Info("seeded demo accounts and scores")
	}
}

// arena is a terminal snake arena: play locally, host the backend for
// the browser client, or watch other players live.
//
// Usage:
//
//	arena play               - Play snake in the terminal
//	arena serve              - Start the backend API and live hub
//	arena watch [player-id]  - Watch a live player, or list who is live
//	arena scores             - Show the leaderboard
//	arena seed               - Seed demo accounts and scores
//
// Global flags:
//
//	--config <path>     - Path to a custom arena.yaml
//	--db <path>         - Override the database path
//	--log-level <lvl>   - Log level: debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mkrivenko/snake-arena/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Snake Arena - multiplayer snake for the terminal",
	Long: `Snake Arena is a snake game with a shared leaderboard and live
spectating. Play locally in the terminal, host the backend for the
browser client, or watch other players' games as they happen.

Available commands:
  play     - Play snake in the terminal
  serve    - Start the backend API and live hub
  watch    - Watch a live player
  scores   - View the leaderboard
  seed     - Seed demo accounts and scores

Examples:
  arena play
  arena play --mode pass-through
  arena serve --addr :8080
  arena serve --ssh
  arena watch
  arena scores --mode walls`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom arena.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Override the database path")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(seedCmd)
}

// loadConfig reads arena.yaml and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDBPath != "" {
		cfg.Server.DBPath = flagDBPath
	}
	return cfg, nil
}

// newLogger builds the logger the long-running commands use.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

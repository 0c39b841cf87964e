package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkrivenko/snake-arena/internal/auth"
	"github.com/mkrivenko/snake-arena/internal/config"
	"github.com/mkrivenko/snake-arena/internal/live"
	"github.com/mkrivenko/snake-arena/internal/platform/tui"
	"github.com/mkrivenko/snake-arena/internal/server"
	"github.com/mkrivenko/snake-arena/internal/storage"
)

var (
	flagAddr     string
	flagDemoBots int
	flagSSH      bool
	flagSSHAddr  string
	flagHostKey  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the backend API and live hub",
	Long: `Start the HTTP backend: the REST API for accounts and the
leaderboard, plus the WebSocket feed behind live spectating. Demo bot
players keep the live directory populated, so watchers always have
someone to follow on a fresh server.

With --ssh (or ssh.enabled in arena.yaml) the same process also serves
the full terminal UI over SSH. SSH players share the store and the
live hub with the HTTP API, so they show up in the live directory next
to everyone else.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake-arena/ssh_host_key

Examples:
  arena serve
  arena serve --addr :9090 --demo-bots 5
  arena serve --ssh --ssh-addr :2222
  arena serve --ssh --host-key ./ssh_host_key

SSH users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "HTTP listen address (host:port)")
	serveCmd.Flags().IntVar(&flagDemoBots, "demo-bots", -1, "Number of demo bot players (-1 = use config)")
	serveCmd.Flags().BoolVar(&flagSSH, "ssh", false, "Also serve the terminal UI over SSH")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh-addr", "", "SSH listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to the SSH host key (auto-generated if not specified)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}
	if flagDemoBots >= 0 {
		cfg.Demo.Bots = flagDemoBots
	}
	if flagSSH {
		cfg.SSH.Enabled = true
	}
	if flagSSHAddr != "" {
		cfg.SSH.Addr = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKeyPath = flagHostKey
	}

	logger := newLogger("arena")

	store, err := storage.Open(config.ExpandHome(cfg.Server.DBPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	seedDemoData(store, logger)

	hub := live.NewHub(logger)
	bots := live.NewBotRunner(hub, cfg.Game, logger)
	bots.Start(cfg.Demo.Bots)
	defer bots.Stop()

	srv := server.New(server.Options{
		Store:       store,
		Hub:         hub,
		Auth:        auth.NewManager(cfg.Server.JWTSecret, time.Duration(cfg.Server.TokenTTLMin)*time.Minute),
		Logger:      logger,
		Rules:       cfg.Game,
		TurnChance:  cfg.Spectator.TurnChance,
		FrameMs:     cfg.Spectator.FrameMs,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SSH.Enabled {
		sshSrv, sshErr := tui.NewSSHServer(tui.SSHOptions{
			Addr:        cfg.SSH.Addr,
			HostKeyPath: config.ExpandHome(cfg.SSH.HostKeyPath),
			Store:       store,
			Hub:         hub,
			Rules:       cfg.Game,
			TurnChance:  cfg.Spectator.TurnChance,
			FrameMs:     cfg.Spectator.FrameMs,
			Logger:      logger,
		})
		if sshErr != nil {
			fmt.Fprintf(os.Stderr, "Error starting SSH server: %v\n", sshErr)
			os.Exit(1)
		}
		go func() {
			if runErr := sshSrv.Run(ctx); runErr != nil {
				logger.Error("ssh server failed", "err", runErr)
			}
		}()
	}

	if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

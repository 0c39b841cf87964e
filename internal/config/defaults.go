package config

import (
	_ "embed"

	"github.com/mkrivenko/snake-arena/internal/game"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultConfig returns the built-in configuration used when no file
// is found anywhere. Values match defaults/arena.yaml.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:        ":8080",
			DBPath:      "~/.snake-arena/arena.db",
			JWTSecret:   "change-me-in-production",
			TokenTTLMin: 30,
			CORSOrigins: []string{"*"},
		},
		SSH: SSHConfig{
			Enabled:     false,
			Addr:        ":23234",
			HostKeyPath: "~/.snake-arena/ssh_host_key",
		},
		Game: game.DefaultRules(),
		Spectator: SpectatorConfig{
			TurnChance: 0.3,
			FrameMs:    0,
		},
		Demo: DemoConfig{
			Bots: 3,
		},
	}
}

// DefaultYAML returns the embedded default configuration file, handy
// for `arena config init` style tooling and tests.
func DefaultYAML() []byte {
	return defaultArenaYAML
}

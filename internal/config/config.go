// Package config provides YAML-based configuration loading for the
// arena server and clients.
package config

import (
	"github.com/mkrivenko/snake-arena/internal/game"
)

// Config is the root configuration for every arena binary. One file
// covers the HTTP server, the SSH front end, the game rules and the
// spectator/demo knobs; clients read only the sections they need.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	SSH       SSHConfig       `yaml:"ssh"`
	Game      game.Rules      `yaml:"game"`
	Spectator SpectatorConfig `yaml:"spectator"`
	Demo      DemoConfig      `yaml:"demo"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	DBPath      string   `yaml:"db_path"`
	JWTSecret   string   `yaml:"jwt_secret"`
	TokenTTLMin int      `yaml:"token_ttl_min"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// SSHConfig configures the optional SSH front end for terminal play.
type SSHConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Addr        string `yaml:"addr"`
	HostKeyPath string `yaml:"host_key_path"`
}

// SpectatorConfig tunes the live playback stream.
type SpectatorConfig struct {
	// TurnChance is the per-frame probability that a simulated snake
	// changes direction.
	TurnChance float64 `yaml:"turn_chance"`
	// FrameMs is a fixed delay between frames pushed to watchers.
	// Zero means follow the watched player's speed curve.
	FrameMs int `yaml:"frame_ms"`
}

// DemoConfig controls the built-in bot players that keep the live
// directory populated on an empty server.
type DemoConfig struct {
	Bots int `yaml:"bots"`
}

// withDefaults fills blank fields from the default configuration, so a
// partial user file never produces an unusable setup.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.DBPath == "" {
		c.Server.DBPath = def.Server.DBPath
	}
	if c.Server.JWTSecret == "" {
		c.Server.JWTSecret = def.Server.JWTSecret
	}
	if c.Server.TokenTTLMin <= 0 {
		c.Server.TokenTTLMin = def.Server.TokenTTLMin
	}
	if c.SSH.Addr == "" {
		c.SSH.Addr = def.SSH.Addr
	}
	if c.SSH.HostKeyPath == "" {
		c.SSH.HostKeyPath = def.SSH.HostKeyPath
	}
	c.Game = c.Game.Normalize()
	if c.Spectator.TurnChance <= 0 || c.Spectator.TurnChance > 1 {
		c.Spectator.TurnChance = def.Spectator.TurnChance
	}
	if c.Spectator.FrameMs < 0 {
		c.Spectator.FrameMs = 0
	}
	if c.Demo.Bots < 0 {
		c.Demo.Bots = 0
	}
	return c
}

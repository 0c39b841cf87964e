// Package server exposes the arena REST API and the live watch
// WebSocket feed. Handlers speak the {success, data, error} envelope;
// game state flows through the live hub, accounts and scores through
// storage.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/mkrivenko/snake-arena/internal/auth"
	"github.com/mkrivenko/snake-arena/internal/game"
	"github.com/mkrivenko/snake-arena/internal/live"
	"github.com/mkrivenko/snake-arena/internal/storage"
)

// Options bundles the server's collaborators and tuning.
type Options struct {
	Store  *storage.Store
	Hub    *live.Hub
	Auth   *auth.Manager
	Logger *log.Logger

	// Rules parameterize the spectator simulation behind the watch
	// feed; they mirror what the players play with.
	Rules game.Rules
	// TurnChance is the per-frame probability a simulated snake turns.
	TurnChance float64
	// FrameMs fixes the watch frame period. Zero follows the watched
	// player's speed curve.
	FrameMs int
	// CORSOrigins lists allowed origins; empty or "*" allows any.
	CORSOrigins []string
}

// Server carries the shared state behind the HTTP handlers.
type Server struct {
	store      *storage.Store
	hub        *live.Hub
	auth       *auth.Manager
	logger     *log.Logger
	rules      game.Rules
	turnChance float64
	frameMs    int
	cors       []string

	engine   *gin.Engine
	upgrader websocket.Upgrader
}

// New assembles the gin engine with all routes registered.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := &Server{
		store:      opts.Store,
		hub:        opts.Hub,
		auth:       opts.Auth,
		logger:     opts.Logger,
		rules:      opts.Rules.Normalize(),
		turnChance: opts.TurnChance,
		frameMs:    opts.FrameMs,
		cors:       opts.CORSOrigins,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser origins are already screened by the CORS layer.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	gin.SetMode(gin.ReleaseMode)
	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), s.logRequests(), s.corsHeaders())
	s.routes()

	return s
}

func (s *Server) routes() {
	r := s.engine

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Snake Arena Backend API"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	a := r.Group("/auth")
	a.POST("/signup", s.handleSignup)
	a.POST("/login", s.handleLogin)
	a.GET("/me", s.requireUser(), s.handleMe)
	a.POST("/logout", s.requireUser(), s.handleLogout)

	lb := r.Group("/leaderboard")
	lb.GET("", s.handleLeaderboard)
	lb.POST("/submit", s.requireUser(), s.handleSubmitScore)

	lv := r.Group("/live")
	lv.GET("/players", s.handleLivePlayers)
	lv.GET("/players/:id", s.handleLivePlayer)
	lv.GET("/players/:id/watch", s.handleWatch)
	lv.POST("/sessions", s.requireUser(), s.handleCreateSession)
	lv.PUT("/sessions/:id", s.requireUser(), s.handleUpdateSession)
	lv.DELETE("/sessions/:id", s.requireUser(), s.handleEndSession)
}

// Handler returns the root HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then drains in-flight
// requests before returning.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.logger.Info("api listening", "addr", addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: cannot listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("api shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown incomplete: %w", err)
	}
	return nil
}

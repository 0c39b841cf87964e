package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/mkrivenko/snake-arena/internal/game"
	"github.com/mkrivenko/snake-arena/internal/live"
	"github.com/mkrivenko/snake-arena/internal/storage"
)

// SSHOptions configures the SSH front end.
type SSHOptions struct {
	// Addr is the host:port to listen on, e.g. ":23234".
	Addr string

	// HostKeyPath is the host key file. If empty, a key is generated
	// at ~/.snake-arena/ssh_host_key.
	HostKeyPath string

	// IdleTimeout closes idle connections. Zero means 30 minutes.
	IdleTimeout time.Duration

	Store      *storage.Store
	Hub        *live.Hub
	Rules      game.Rules
	TurnChance float64
	FrameMs    int
	Logger     *log.Logger
}

// SSHServer serves the full menu/play/watch/scores flow over SSH via
// Wish. It shares the store and live hub with the HTTP API, so SSH
// players show up in the live directory like everyone else.
type SSHServer struct {
	opts   SSHOptions
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates an SSH server with the given options.
func NewSSHServer(opts SSHOptions) (*SSHServer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = 30 * time.Minute
	}
	opts.Rules = opts.Rules.Normalize()

	hostKeyPath := opts.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".snake-arena", "ssh_host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	s := &SSHServer{
		opts:   opts,
		logger: logger,
	}

	server, err := wish.NewServer(
		wish.WithAddress(opts.Addr),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(opts.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			s.logSessions,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create ssh server: %w", err)
	}

	s.server = server
	return s, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	model := NewSessionModel(SessionOptions{
		Store:      s.opts.Store,
		Hub:        s.opts.Hub,
		Rules:      s.opts.Rules,
		TurnChance: s.opts.TurnChance,
		FrameMs:    s.opts.FrameMs,
		Username:   sess.User(),
		Width:      pty.Window.Width,
		Height:     pty.Window.Height,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// logSessions logs SSH session lifecycle events.
func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("ssh session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("ssh session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// Run starts the SSH server and blocks until ctx is cancelled or the
// listener fails.
func (s *SSHServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.logger.Info("ssh listening", "addr", s.opts.Addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("tui: cannot listen on %s: %w", s.opts.Addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("ssh shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("tui: ssh shutdown incomplete: %w", err)
	}
	return nil
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.opts.Addr
}

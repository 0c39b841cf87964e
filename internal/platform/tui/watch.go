package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkrivenko/snake-arena/internal/client"
	"github.com/mkrivenko/snake-arena/internal/game"
	"github.com/mkrivenko/snake-arena/internal/live"
)

// ErrStreamEnded reports that the watched session is gone.
var ErrStreamEnded = errors.New("tui: stream ended")

// FrameSource delivers successive frames of one watched player. Next
// blocks until the next frame is due; implementations pace themselves.
// Sources are read by one goroutine at a time, but Close may be called
// concurrently to unblock a pending Next.
type FrameSource interface {
	Next() (game.LivePlayer, error)
	Close() error
}

// hubSource feeds frames from an in-process live hub, the way the SSH
// screens watch players hosted by the same binary. Between real
// updates the frames come from a local Spectator, so in-process and
// remote watchers see the same kind of stream.
type hubSource struct {
	hub     *live.Hub
	id      string
	sp      *game.Spectator
	speed   game.Curve
	frameMs int

	cur     game.LivePlayer
	seq     uint64
	started bool
	closed  atomic.Bool
}

func newHubSource(hub *live.Hub, id string, rules game.Rules, turnChance float64, frameMs int) *hubSource {
	rules = rules.Normalize()
	hub.AddViewer(id)
	return &hubSource{
		hub:     hub,
		id:      id,
		sp:      game.NewSpectator(rules, turnChance, nil),
		speed:   rules.Speed,
		frameMs: frameMs,
	}
}

func (s *hubSource) Next() (game.LivePlayer, error) {
	if s.closed.Load() {
		return game.LivePlayer{}, ErrStreamEnded
	}

	// The first frame is the current snapshot, served immediately.
	if !s.started {
		p, seq, ok := s.hub.Get(s.id)
		if !ok {
			return game.LivePlayer{}, ErrStreamEnded
		}
		s.cur, s.seq, s.started = p, seq, true
		return s.cur, nil
	}

	time.Sleep(frameDelay(s.frameMs, s.speed, s.cur.Score))
	if s.closed.Load() {
		return game.LivePlayer{}, ErrStreamEnded
	}

	p, seq, ok := s.hub.Get(s.id)
	if !ok {
		return game.LivePlayer{}, ErrStreamEnded
	}
	if seq != s.seq {
		// The player posted a real update; playback restarts from it
		// and the simulation picks up again on the following frame.
		s.cur, s.seq = p, seq
		return s.cur, nil
	}

	s.cur.Viewers = p.Viewers
	if s.cur.Status == game.StatusPlaying {
		s.cur = s.sp.Tick(s.cur)
	}
	return s.cur, nil
}

func (s *hubSource) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		s.hub.RemoveViewer(s.id)
	}
	return nil
}

// driftSource animates a single snapshot locally with no upstream at
// all. The watch screen falls back to it when the server socket
// drops mid-stream.
type driftSource struct {
	sp      *game.Spectator
	speed   game.Curve
	frameMs int

	cur     game.LivePlayer
	started bool
	closed  atomic.Bool
}

func newDriftSource(p game.LivePlayer, rules game.Rules, turnChance float64, frameMs int) *driftSource {
	rules = rules.Normalize()
	return &driftSource{
		sp:      game.NewSpectator(rules, turnChance, nil),
		speed:   rules.Speed,
		frameMs: frameMs,
		cur:     p,
	}
}

func (s *driftSource) Next() (game.LivePlayer, error) {
	if s.closed.Load() {
		return game.LivePlayer{}, ErrStreamEnded
	}
	if !s.started {
		s.started = true
		return s.cur, nil
	}

	time.Sleep(frameDelay(s.frameMs, s.speed, s.cur.Score))
	if s.closed.Load() {
		return game.LivePlayer{}, ErrStreamEnded
	}
	if s.cur.Status == game.StatusPlaying {
		s.cur = s.sp.Tick(s.cur)
	}
	return s.cur, nil
}

func (s *driftSource) Close() error {
	s.closed.Store(true)
	return nil
}

// watchFrameMsg carries the next frame from the source.
type watchFrameMsg game.LivePlayer

// watchEndedMsg reports that the source cannot produce more frames.
type watchEndedMsg struct{ err error }

// watchSwitchMsg swaps in a replacement source after a drop.
type watchSwitchMsg struct{ src FrameSource }

// readFrame waits for the next frame off the source.
func readFrame(src FrameSource) tea.Cmd {
	return func() tea.Msg {
		p, err := src.Next()
		if err != nil {
			return watchEndedMsg{err: err}
		}
		return watchFrameMsg(p)
	}
}

// WatchModel is the Bubble Tea model for the spectator screen.
type WatchModel struct {
	src      FrameSource
	fallback func(last game.LivePlayer) FrameSource
	grid     game.Grid
	keys     WatchKeys
	help     help.Model
	width    int
	height   int

	frame    game.LivePlayer
	gotFrame bool
	local    bool // playback is simulated locally after a drop
	ended    bool

	quitting   bool
	backToMenu bool
}

// NewWatchModel builds a watch screen over src. fallback, when not
// nil, produces a replacement source from the last received frame
// after a mid-stream transport drop.
func NewWatchModel(src FrameSource, grid game.Grid, fallback func(game.LivePlayer) FrameSource, width, height int) WatchModel {
	m := WatchModel{
		src:      src,
		fallback: fallback,
		grid:     grid,
		keys:     DefaultWatchKeys(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.help.Width = width
	return m
}

// Init starts reading frames.
func (m WatchModel) Init() tea.Cmd {
	return readFrame(m.src)
}

// Update handles messages and updates the model state.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.closeSource()
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.closeSource()
			m.backToMenu = true
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case watchFrameMsg:
		m.frame = game.LivePlayer(msg)
		m.gotFrame = true
		return m, readFrame(m.src)

	case watchEndedMsg:
		return m.handleEnded(msg.err)

	case watchSwitchMsg:
		m.src = msg.src
		m.local = true
		return m, readFrame(m.src)
	}

	return m, nil
}

// handleEnded distinguishes a session that finished from a transport
// that dropped. Only the latter is worth replaying locally.
func (m WatchModel) handleEnded(err error) (tea.Model, tea.Cmd) {
	clean := errors.Is(err, ErrStreamEnded) || errors.Is(err, client.ErrStreamClosed)
	if clean || m.fallback == nil || !m.gotFrame {
		m.ended = true
		return m, nil
	}

	fallback := m.fallback
	last := m.frame
	m.fallback = nil
	return m, func() tea.Msg {
		return watchSwitchMsg{src: fallback(last)}
	}
}

// closeSource tears the source down, releasing its viewer slot.
func (m *WatchModel) closeSource() {
	//nolint:errcheck // nothing to do about a failed close
	m.src.Close()
}

// View renders the watch screen.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	if !m.gotFrame {
		b.WriteString(centerText(faintStyle.Render("waiting for the stream..."), m.width))
		return b.String()
	}

	p := m.frame
	title := "Watching " + p.Username
	if p.Avatar != "" {
		title += " " + p.Avatar
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerBlock(RenderBoard(m.grid, p.Snake, p.Food), m.width))
	b.WriteString("\n")

	hud := fmt.Sprintf("Score %d   %s   %d watching", p.Score, p.Mode, p.Viewers)
	b.WriteString(centerText(hudStyle.Render(hud), m.width))
	b.WriteString("\n")

	switch {
	case m.ended:
		b.WriteString(centerText(overStyle.Render("S T R E A M   E N D E D"), m.width))
		b.WriteString("\n")
	case m.local:
		b.WriteString(centerText(faintStyle.Render("connection lost · replaying locally"), m.width))
		b.WriteString("\n")
	case p.Status == game.StatusPaused:
		b.WriteString(centerText(pausedStyle.Render("P A U S E D"), m.width))
		b.WriteString("\n")
	case p.Status == game.StatusGameOver:
		b.WriteString(centerText(overStyle.Render("G A M E   O V E R"), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(faintStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// IsQuitting returns true if the user requested to quit entirely.
func (m WatchModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back.
func (m WatchModel) BackToMenu() bool {
	return m.backToMenu
}

// RunWatch connects to a server and watches one live player in the
// local terminal. If the socket drops mid-stream, playback continues
// locally from a fresh REST snapshot, or from the last received frame
// when the server is unreachable.
func RunWatch(serverURL, playerID string, rules game.Rules, turnChance float64, frameMs int) error {
	cl := client.New(serverURL)
	stream, err := cl.Watch(context.Background(), playerID)
	if err != nil {
		return err
	}

	fallback := func(last game.LivePlayer) FrameSource {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if p, perr := cl.Player(ctx, playerID); perr == nil {
			last = *p
		}
		return newDriftSource(last, rules, turnChance, frameMs)
	}

	width, height := termSize()
	model := NewWatchModel(stream, rules.Normalize().Grid(), fallback, width, height)
	model.keys.Back.SetEnabled(false)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

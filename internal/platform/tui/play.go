package tui

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkrivenko/snake-arena/internal/game"
	"github.com/mkrivenko/snake-arena/internal/live"
)

// PlayOptions configures a play screen.
type PlayOptions struct {
	Rules  game.Rules
	Mode   game.Mode
	Scores game.HighScoreStore
	Rng    *rand.Rand

	// Hub, when set, mirrors the session into the live directory so
	// watchers can follow along. Owner and Username identify the
	// player there.
	Hub      *live.Hub
	Owner    string
	Username string
	Avatar   string
}

// PlayModel is the Bubble Tea model for a local game session. The
// session is owned by the model's single update loop, so it needs no
// locking of its own.
type PlayModel struct {
	opts    PlayOptions
	session *game.Session
	keys    PlayKeys
	help    help.Model
	liveID  string
	width   int
	height  int

	quitting   bool
	backToMenu bool
}

// NewPlayModel builds a play screen around a fresh session.
func NewPlayModel(opts PlayOptions, width, height int) PlayModel {
	m := PlayModel{
		opts:    opts,
		session: game.NewSession(opts.Rules, opts.Mode, opts.Scores, opts.Rng),
		keys:    DefaultPlayKeys(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.help.Width = width
	if opts.Hub != nil {
		p := opts.Hub.Create(opts.Owner, opts.Username, opts.Avatar, opts.Mode)
		m.liveID = p.ID
	}
	return m
}

// Init starts the session and schedules the first frame.
func (m PlayModel) Init() tea.Cmd {
	m.session.Start()
	m.publish()
	return frameCmd(m.session.Interval())
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		return m.handleFrame()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.endLive()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if s := m.session.Status(); s == game.StatusPaused || s == game.StatusGameOver {
			m.endLive()
			m.backToMenu = true
		}

	case key.Matches(msg, m.keys.Up):
		m.session.RequestDirection(game.DirUp)
	case key.Matches(msg, m.keys.Down):
		m.session.RequestDirection(game.DirDown)
	case key.Matches(msg, m.keys.Left):
		m.session.RequestDirection(game.DirLeft)
	case key.Matches(msg, m.keys.Right):
		m.session.RequestDirection(game.DirRight)

	case key.Matches(msg, m.keys.Pause):
		m.session.TogglePause()
		m.publish()

	case key.Matches(msg, m.keys.Restart):
		if m.session.Status() == game.StatusGameOver {
			m.restart(m.session.Mode())
		}

	case key.Matches(msg, m.keys.SwapMode):
		if s := m.session.Status(); s == game.StatusPaused || s == game.StatusGameOver {
			m.restart(otherMode(m.session.Mode()))
		}
	}

	return m, nil
}

// handleFrame advances the simulation by one step. The frame loop is
// rescheduled unconditionally; a paused or finished session simply
// ignores the ticks until the user restarts.
func (m PlayModel) handleFrame() (tea.Model, tea.Cmd) {
	if m.session.Status() == game.StatusPlaying {
		m.session.Tick()
		m.publish()
	}
	return m, frameCmd(m.session.Interval())
}

// restart swaps in a fresh session, optionally in the other mode. The
// live session id stays stable so watchers keep their stream.
func (m *PlayModel) restart(mode game.Mode) {
	m.session = game.NewSession(m.opts.Rules, mode, m.opts.Scores, m.opts.Rng)
	m.session.Start()
	m.publish()
}

// publish mirrors the current state into the live directory.
func (m *PlayModel) publish() {
	if m.opts.Hub == nil || m.liveID == "" {
		return
	}
	snap := m.session.Snapshot()
	m.opts.Hub.Publish(m.liveID, m.opts.Owner, game.LivePlayer{
		ID:        m.liveID,
		Username:  m.opts.Username,
		Avatar:    m.opts.Avatar,
		Score:     snap.Score,
		Mode:      snap.Mode,
		Status:    snap.Status,
		Snake:     snap.Snake,
		Food:      snap.Food,
		Direction: snap.Direction,
	})
}

// endLive removes the session from the live directory.
func (m *PlayModel) endLive() {
	if m.opts.Hub == nil || m.liveID == "" {
		return
	}
	//nolint:errcheck // the session may already be gone
	m.opts.Hub.End(m.liveID, m.opts.Owner)
	m.liveID = ""
}

func otherMode(m game.Mode) game.Mode {
	if m == game.ModeWalls {
		return game.ModePassThrough
	}
	return game.ModeWalls
}

// View renders the play screen.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}
	snap := m.session.Snapshot()

	var b strings.Builder
	b.WriteString("\n")
	title := fmt.Sprintf("S N A K E   A R E N A   · %s", snap.Mode)
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	board := RenderBoard(m.session.Rules().Grid(), snap.Snake, snap.Food)
	b.WriteString(centerBlock(board, m.width))
	b.WriteString("\n")

	hud := fmt.Sprintf("Score %d   Best %d", snap.Score, snap.HighScore)
	b.WriteString(centerText(hudStyle.Render(hud), m.width))
	b.WriteString("\n")

	switch snap.Status {
	case game.StatusPaused:
		b.WriteString(centerText(pausedStyle.Render("P A U S E D"), m.width))
		b.WriteString("\n")
	case game.StatusGameOver:
		b.WriteString(centerText(overStyle.Render("G A M E   O V E R"), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(faintStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// IsQuitting returns true if the user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the
// menu.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// RunPlay runs a standalone play session in the local terminal. There
// is no menu to go back to, so the back binding is disabled.
func RunPlay(opts PlayOptions) error {
	width, height := termSize()
	model := NewPlayModel(opts, width, height)
	model.keys.Back.SetEnabled(false)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

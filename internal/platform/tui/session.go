package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkrivenko/snake-arena/internal/game"
	"github.com/mkrivenko/snake-arena/internal/live"
	"github.com/mkrivenko/snake-arena/internal/storage"
)

// screen identifies which sub-model an SSH session is showing.
type screen int

const (
	screenMenu screen = iota
	screenPlay
	screenPicker
	screenWatch
	screenScores
)

// SessionOptions configures a full SSH session.
type SessionOptions struct {
	Store      *storage.Store
	Hub        *live.Hub
	Rules      game.Rules
	TurnChance float64
	FrameMs    int
	Username   string
	Width      int
	Height     int
}

// SessionModel manages the full session flow: menu -> play/watch/scores
// -> menu. This is the top-level model used for SSH sessions; the local
// CLI runs the individual screens directly.
type SessionModel struct {
	opts   SessionOptions
	screen screen

	menu   MenuModel
	play   *PlayModel
	picker *pickerModel
	watch  *WatchModel
	scores *ScoreboardModel

	quitting bool
}

// NewSessionModel creates a session model starting at the main menu.
func NewSessionModel(opts SessionOptions) SessionModel {
	opts.Rules = opts.Rules.Normalize()
	return SessionModel{
		opts: opts,
		menu: NewMenuModel(opts.Width, opts.Height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Track window size globally so freshly created screens start at
	// the right dimensions; the active screen still gets the message.
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width = wsm.Width
		m.opts.Height = wsm.Height
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenPicker:
		return m.updatePicker(msg)
	case screenWatch:
		return m.updateWatch(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates while the main menu is showing.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if item := m.menu.Selected(); item != nil {
		switch item.choice {
		case choicePlayWalls:
			return m.startPlay(game.ModeWalls)
		case choicePlayPassThrough:
			return m.startPlay(game.ModePassThrough)
		case choiceWatch:
			picker := newPickerModel(m.opts.Hub, m.opts.Width, m.opts.Height)
			m.picker = &picker
			m.screen = screenPicker
			return m, picker.Init()
		case choiceScores:
			scores := NewScoreboardModel(m.opts.Store, m.opts.Width, m.opts.Height)
			m.scores = &scores
			m.screen = screenScores
			return m, scores.Init()
		}
	}

	return m, cmd
}

// startPlay switches the session into a fresh game.
func (m SessionModel) startPlay(mode game.Mode) (tea.Model, tea.Cmd) {
	opts := PlayOptions{
		Rules:    m.opts.Rules,
		Mode:     mode,
		Hub:      m.opts.Hub,
		Owner:    "ssh:" + m.opts.Username,
		Username: m.opts.Username,
		Avatar:   "🎮",
	}
	if m.opts.Store != nil {
		opts.Scores = m.opts.Store.ScoresFor(opts.Owner)
	}

	play := NewPlayModel(opts, m.opts.Width, m.opts.Height)
	m.play = &play
	m.screen = screenPlay
	return m, play.Init()
}

// updatePlay handles updates while a game is running.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	if play, ok := next.(PlayModel); ok {
		m.play = &play
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.BackToMenu() {
		m.play = nil
		return m.backToMenu()
	}

	return m, cmd
}

// updatePicker handles updates while the live player list is showing.
func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.picker.Update(msg)
	if picker, ok := next.(pickerModel); ok {
		m.picker = &picker
	}

	if m.picker.quitting {
		m.quitting = true
		return m, tea.Quit
	}

	if m.picker.backToMenu {
		m.picker = nil
		return m.backToMenu()
	}

	if id := m.picker.selected; id != "" {
		src := newHubSource(m.opts.Hub, id, m.opts.Rules, m.opts.TurnChance, m.opts.FrameMs)
		watch := NewWatchModel(src, m.opts.Rules.Grid(), nil, m.opts.Width, m.opts.Height)
		m.watch = &watch
		m.picker = nil
		m.screen = screenWatch
		return m, watch.Init()
	}

	return m, cmd
}

// updateWatch handles updates while spectating. Backing out returns to
// the player list, not the menu.
func (m SessionModel) updateWatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.watch.Update(msg)
	if watch, ok := next.(WatchModel); ok {
		m.watch = &watch
	}

	if m.watch.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.watch.BackToMenu() {
		m.watch = nil
		picker := newPickerModel(m.opts.Hub, m.opts.Width, m.opts.Height)
		m.picker = &picker
		m.screen = screenPicker
		return m, picker.Init()
	}

	return m, cmd
}

// updateScores handles updates while the scoreboard is showing.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = &scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.GoingBack() {
		m.scores = nil
		return m.backToMenu()
	}

	return m, cmd
}

// backToMenu resets the session to a fresh main menu.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.opts.Width, m.opts.Height)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPlay:
		if m.play != nil {
			return m.play.View()
		}
	case screenPicker:
		if m.picker != nil {
			return m.picker.View()
		}
	case screenWatch:
		if m.watch != nil {
			return m.watch.View()
		}
	case screenScores:
		if m.scores != nil {
			return m.scores.View()
		}
	}
	return m.menu.View()
}

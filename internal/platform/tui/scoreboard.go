package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkrivenko/snake-arena/internal/game"
	"github.com/mkrivenko/snake-arena/internal/storage"
)

// maxScoreRows caps how many leaderboard rows the scoreboard loads.
const maxScoreRows = 100

// scoreTab is one mode filter of the scoreboard.
type scoreTab struct {
	label string
	mode  string // empty means all modes
}

var scoreTabs = []scoreTab{
	{label: "All"},
	{label: "Walls", mode: string(game.ModeWalls)},
	{label: "Pass-through", mode: string(game.ModePassThrough)},
}

// ScoreboardModel is the Bubble Tea model for the leaderboard screen.
type ScoreboardModel struct {
	store   *storage.Store
	tab     int
	entries []storage.LeaderboardEntry
	table   table.Model
	keys    ScoreboardKeys
	help    help.Model
	width   int
	height  int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over the given store. A nil
// store renders an empty board.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ScoreboardModel{
		store:  store,
		keys:   DefaultScoreboardKeys(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadScores()
	return m
}

// createTable builds the table sized for the current window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 18},
		{Title: "Score", Width: 8},
		{Title: "Mode", Width: 14},
		{Title: "Date", Width: 12},
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadScores loads rows for the active tab.
func (m *ScoreboardModel) loadScores() {
	m.entries = nil
	if m.store != nil {
		if entries, err := m.store.Leaderboard(scoreTabs[m.tab].mode, maxScoreRows); err == nil {
			m.entries = entries
		}
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", e.Rank),
			e.Username,
			fmt.Sprintf("%d", e.Score),
			e.Mode,
			e.CreatedAt.Format("2006-01-02"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % len(scoreTabs)
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab--
			if m.tab < 0 {
				m.tab = len(scoreTabs) - 1
			}
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.loadScores()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("H I G H   S C O R E S"), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(scoreTabs))
	for i, t := range scoreTabs {
		if i == m.tab {
			tabs[i] = hudStyle.Render("[ " + t.label + " ]")
		} else {
			tabs[i] = faintStyle.Render("  " + t.label + "  ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(centerText(faintStyle.Render("No scores recorded yet."), m.width))
		b.WriteString("\n")
	} else {
		b.WriteString(centerBlock(m.table.View(), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(faintStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// IsQuitting returns true if the user requested to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// GoingBack returns true if the user backed out to the menu.
func (m ScoreboardModel) GoingBack() bool {
	return m.goingBack
}

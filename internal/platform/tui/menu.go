package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkrivenko/snake-arena/internal/game"
	"github.com/mkrivenko/snake-arena/internal/live"
)

// menuChoice identifies one entry of the main menu.
type menuChoice int

const (
	choicePlayWalls menuChoice = iota
	choicePlayPassThrough
	choiceWatch
	choiceScores
)

type menuItem struct {
	title  string
	choice menuChoice
}

// MenuModel is the entry screen of the SSH front end.
type MenuModel struct {
	items    []menuItem
	cursor   int
	keys     ListKeys
	help     help.Model
	width    int
	height   int
	selected *menuItem
	quitting bool
}

// NewMenuModel creates the main menu.
func NewMenuModel(width, height int) MenuModel {
	m := MenuModel{
		items: []menuItem{
			{title: "Play · walls", choice: choicePlayWalls},
			{title: "Play · pass-through", choice: choicePlayPassThrough},
			{title: "Watch live players", choice: choiceWatch},
			{title: "High scores", choice: choiceScores},
		},
		keys:   DefaultListKeys(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.keys.Back.SetEnabled(false)
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Select):
			selected := m.items[m.cursor]
			m.selected = &selected
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S N A K E   A R E N A"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := cursor + item.title
		if i == m.cursor {
			line = hudStyle.Render(line)
		} else {
			line = faintStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(faintStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// Selected returns the chosen menu item, or nil if none yet.
func (m MenuModel) Selected() *menuItem {
	return m.selected
}

// IsQuitting returns true if the user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// pickerTickMsg asks the live player list to refresh itself.
type pickerTickMsg time.Time

func pickerTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return pickerTickMsg(t)
	})
}

// pickerModel lists the live players so the user can choose one to
// watch. The list refreshes once a second while open.
type pickerModel struct {
	hub     *live.Hub
	players []game.LivePlayer
	cursor  int
	keys    ListKeys
	help    help.Model
	width   int
	height  int

	selected   string // player id, set on select
	backToMenu bool
	quitting   bool
}

func newPickerModel(hub *live.Hub, width, height int) pickerModel {
	m := pickerModel{
		hub:    hub,
		keys:   DefaultListKeys(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.refresh()
	return m
}

// refresh reloads the list, keeping the cursor on a valid row.
func (m *pickerModel) refresh() {
	if m.hub != nil {
		m.players = m.hub.List()
	}
	if m.cursor >= len(m.players) {
		m.cursor = len(m.players) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Init schedules the first list refresh.
func (m pickerModel) Init() tea.Cmd {
	return pickerTickCmd()
}

// Update handles messages for the picker.
func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.backToMenu = true

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.players)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Select):
			if len(m.players) > 0 {
				m.selected = m.players[m.cursor].ID
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case pickerTickMsg:
		m.refresh()
		return m, pickerTickCmd()
	}

	return m, nil
}

// View renders the live player list.
func (m pickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("L I V E   P L A Y E R S"), m.width))
	b.WriteString("\n\n")

	if len(m.players) == 0 {
		b.WriteString(centerText(faintStyle.Render("Nobody is live right now."), m.width))
		b.WriteString("\n")
	}

	for i, p := range m.players {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		name := p.Username
		if p.Avatar != "" {
			name += " " + p.Avatar
		}
		line := fmt.Sprintf("%s%s   %d pts   %s   %d watching",
			cursor, name, p.Score, p.Mode, p.Viewers)
		if i == m.cursor {
			line = hudStyle.Render(line)
		} else {
			line = faintStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(faintStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

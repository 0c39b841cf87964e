package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkrivenko/snake-arena/internal/game"
)

// Board cells are two terminal columns wide so the grid comes out
// roughly square.
const cellWidth = 2

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	foodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	emptyStyle  = lipgloss.NewStyle()

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hudStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	overStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
)

// Cell kinds on the painted board.
const (
	cellEmpty = byte(0)
	cellHead  = byte('h')
	cellBody  = byte('b')
	cellFood  = byte('f')
)

func cellGlyph(kind byte) string {
	switch kind {
	case cellHead:
		return "██"
	case cellBody:
		return "▓▓"
	case cellFood:
		return "● "
	default:
		return "  "
	}
}

func cellStyle(kind byte) lipgloss.Style {
	switch kind {
	case cellHead:
		return headStyle
	case cellBody:
		return bodyStyle
	case cellFood:
		return foodStyle
	default:
		return emptyStyle
	}
}

// RenderBoard draws the playfield with the snake and food as a
// bordered block. Adjacent cells of the same kind are grouped into one
// styled run to keep the escape sequence count down. The head is
// painted last so it stays visible when a cosmetic spectator snake
// crosses itself.
func RenderBoard(grid game.Grid, snake game.Snake, food game.Cell) string {
	kind := make(map[game.Cell]byte, len(snake)+1)
	if grid.Contains(food) {
		kind[food] = cellFood
	}
	if len(snake) > 0 {
		for _, c := range snake[1:] {
			kind[c] = cellBody
		}
		kind[snake.Head()] = cellHead
	}

	var sb strings.Builder
	sb.Grow((grid.Size*cellWidth + 4) * (grid.Size + 2))

	horizontal := strings.Repeat("─", grid.Size*cellWidth)
	sb.WriteString(borderStyle.Render("┌" + horizontal + "┐"))
	sb.WriteByte('\n')

	for y := 0; y < grid.Size; y++ {
		sb.WriteString(borderStyle.Render("│"))
		x := 0
		for x < grid.Size {
			k := kind[game.Cell{X: x, Y: y}]

			var run strings.Builder
			for x < grid.Size && kind[game.Cell{X: x, Y: y}] == k {
				run.WriteString(cellGlyph(k))
				x++
			}
			sb.WriteString(cellStyle(k).Render(run.String()))
		}
		sb.WriteString(borderStyle.Render("│"))
		sb.WriteByte('\n')
	}

	sb.WriteString(borderStyle.Render("└" + horizontal + "┘"))
	return sb.String()
}

// centerText centers text within the given width. Styled input is
// measured by its printable width, not its byte length.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// centerBlock centers every line of a multi-line block, the board in
// particular.
func centerBlock(block string, width int) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = centerText(line, width)
	}
	return strings.Join(lines, "\n")
}

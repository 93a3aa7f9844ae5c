package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/evosim/internal/config"
	"github.com/vovakirdan/evosim/internal/core"
	"github.com/vovakirdan/evosim/internal/sim"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// cellSource is the read side of a grid: the engine while running.
type cellSource interface {
	Cell(c sim.Coord) sim.CellKind
}

// gridSize returns the screen footprint of a rows x cols grid. Cells are separated by
// one blank column, matching FormatGrid.
func gridSize(rows, cols int) (w, h int) {
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	return 2*cols - 1, rows
}

// drawGrid draws the grid with row 0 at the top, starting at (x, y). Cells that do not
// fit on the screen are clipped.
func drawGrid(s *core.Screen, src cellSource, rows, cols, x, y int, display config.DisplayConfig) {
	for r := range rows {
		for c := range cols {
			s.SetCell(x+2*c, y+r, display.Style(src.Cell(sim.C(r, c))))
		}
	}
}

// drawLegend writes one line per cell kind using the configured styles.
func drawLegend(s *core.Screen, x, y int, display config.DisplayConfig) int {
	entries := []struct {
		kind  sim.CellKind
		label string
	}{
		{sim.CellOccupied, "entity"},
		{sim.CellNutrient, "nutrient"},
		{sim.CellObstacle, "obstacle"},
		{sim.CellEmpty, "empty"},
	}
	for i, e := range entries {
		cell := display.Style(e.kind)
		s.SetCell(x, y+i, cell)
		s.DrawText(x+2, y+i, e.label)
	}
	return len(entries)
}

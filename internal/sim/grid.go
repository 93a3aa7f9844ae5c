package sim

import "strings"

// CellKind classifies a grid cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellOccupied
	CellNutrient
	CellObstacle
)

// Display symbols for each cell kind.
const (
	SymbolEmpty    = '-'
	SymbolOccupied = 'E'
	SymbolNutrient = 'N'
	SymbolObstacle = 'O'
)

// Symbol returns the display rune for the kind.
func (k CellKind) Symbol() rune {
	switch k {
	case CellOccupied:
		return SymbolOccupied
	case CellNutrient:
		return SymbolNutrient
	case CellObstacle:
		return SymbolObstacle
	default:
		return SymbolEmpty
	}
}

// String returns a human-readable name for the kind.
func (k CellKind) String() string {
	switch k {
	case CellOccupied:
		return "occupied"
	case CellNutrient:
		return "nutrient"
	case CellObstacle:
		return "obstacle"
	default:
		return "empty"
	}
}

// cellGrid is a dense row-major lookup of cell kinds: index = row*cols + col.
type cellGrid struct {
	rows  int
	cols  int
	cells []CellKind
}

func newCellGrid(rows, cols int) *cellGrid {
	return &cellGrid{rows: rows, cols: cols, cells: make([]CellKind, rows*cols)}
}

func (g *cellGrid) index(c Coord) int {
	return c.Row*g.cols + c.Col
}

func (g *cellGrid) get(c Coord) CellKind {
	if !c.InBounds(g.rows, g.cols) {
		return CellEmpty
	}
	return g.cells[g.index(c)]
}

func (g *cellGrid) set(c Coord, k CellKind) {
	if c.InBounds(g.rows, g.cols) {
		g.cells[g.index(c)] = k
	}
}

// Render draws the three coordinate sets onto a rows x cols character grid.
// Unset cells hold '-'. Occupied cells are drawn first, then nutrients, then
// obstacles, so a later set wins if sets ever collide. Out-of-range coordinates are
// skipped.
func Render(occupied, nutrients, obstacles []Coord, rows, cols int) [][]rune {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(string(SymbolEmpty), cols))
	}

	overlay := func(coords []Coord, sym rune) {
		for _, c := range coords {
			if c.InBounds(rows, cols) {
				grid[c.Row][c.Col] = sym
			}
		}
	}
	overlay(occupied, SymbolOccupied)
	overlay(nutrients, SymbolNutrient)
	overlay(obstacles, SymbolObstacle)

	return grid
}

// FormatGrid joins a rendered grid into text, one row per line with cells separated
// by a single space.
func FormatGrid(grid [][]rune) string {
	var sb strings.Builder
	for r, row := range grid {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, ch := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

package setups

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/evosim/internal/sim"
)

// ErrDisplayInput is returned for coordinate input that is not two integers.
var ErrDisplayInput = errors.New("expected two integers: x y")

// FromDisplay converts user coordinates to an internal coordinate. Users address
// cells with a 1-indexed x (column) and y (row counted from the bottom); internally
// rows are counted from the top and both axes are 0-indexed.
func FromDisplay(x, y, rows int) sim.Coord {
	return sim.Coord{Row: rows - y, Col: x - 1}
}

// ToDisplay converts an internal coordinate to user coordinates.
func ToDisplay(c sim.Coord, rows int) (x, y int) {
	return c.Col + 1, rows - c.Row
}

// ParseDisplay reads "x y" (or "x,y") and converts it for a rows x cols grid.
func ParseDisplay(s string, rows, cols int) (sim.Coord, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) != 2 {
		return sim.Coord{}, ErrDisplayInput
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return sim.Coord{}, ErrDisplayInput
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return sim.Coord{}, ErrDisplayInput
	}

	c := FromDisplay(x, y, rows)
	if !c.InBounds(rows, cols) {
		return sim.Coord{}, fmt.Errorf("%w: x must be 1-%d, y 1-%d", sim.ErrOutOfBounds, cols, rows)
	}
	return c, nil
}

// FormatDisplay renders an internal coordinate in user form, e.g. "(3, 7)".
func FormatDisplay(c sim.Coord, rows int) string {
	x, y := ToDisplay(c, rows)
	return fmt.Sprintf("(%d, %d)", x, y)
}

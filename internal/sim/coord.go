package sim

import "fmt"

// Coord is a cell position on the grid.
// Row increases downward from the top-left origin, both axes are 0-indexed.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns the collection-literal form used by setup files, e.g. "(5, 6)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Add returns a new Coord offset by (dr, dc).
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// InBounds reports whether the coordinate lies on a rows x cols grid.
func (c Coord) InBounds(rows, cols int) bool {
	return c.Row >= 0 && c.Row < rows && c.Col >= 0 && c.Col < cols
}

// Neighbors returns the up to 8 surrounding cells that lie on the grid.
func (c Coord) Neighbors(rows, cols int) []Coord {
	out := make([]Coord, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := c.Add(dr, dc)
			if n.InBounds(rows, cols) {
				out = append(out, n)
			}
		}
	}
	return out
}

// Reflect applies the boundary policy to one axis of a proposed move.
// A value at or below 0 is nudged inward by one, as is a value at or past n.
// The edge is never wrapped to the opposite side.
func Reflect(v, n int) int {
	if v <= 0 {
		return v + 1
	}
	if v >= n {
		return v - 1
	}
	return v
}

// cloneCoords returns an independent copy of a coordinate slice.
func cloneCoords(in []Coord) []Coord {
	if in == nil {
		return nil
	}
	out := make([]Coord, len(in))
	copy(out, in)
	return out
}

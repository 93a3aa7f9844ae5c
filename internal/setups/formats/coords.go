package formats

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vovakirdan/evosim/internal/sim"
)

var (
	tuplePattern = regexp.MustCompile(`\(\s*(-?\d+)\s*,\s*(-?\d+)\s*\)`)
	// what may remain of a literal once its tuples are removed
	separatorPattern = regexp.MustCompile(`^[\s,]*$`)
)

// ParseCoords parses a collection literal of (row, col) pairs such as
// "[(5, 5), (5, 6)]". Set braces and "set()" are accepted too. Repeated pairs are
// kept once, in first-seen order.
func ParseCoords(s string) ([]sim.Coord, error) {
	s = strings.TrimSpace(s)
	if s == "set()" {
		return []sim.Coord{}, nil
	}
	if len(s) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrLiteral, s)
	}
	open, closing := s[0], s[len(s)-1]
	if !(open == '[' && closing == ']') && !(open == '{' && closing == '}') {
		return nil, fmt.Errorf("%w: %q", ErrLiteral, s)
	}
	body := s[1 : len(s)-1]

	if rest := tuplePattern.ReplaceAllString(body, ""); !separatorPattern.MatchString(rest) {
		return nil, fmt.Errorf("%w: unexpected %q", ErrLiteral, strings.TrimSpace(rest))
	}

	matches := tuplePattern.FindAllStringSubmatch(body, -1)
	out := make([]sim.Coord, 0, len(matches))
	seen := make(map[sim.Coord]bool, len(matches))
	for _, m := range matches {
		row, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLiteral, err)
		}
		col, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLiteral, err)
		}
		c := sim.C(row, col)
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, nil
}

// FormatCoords renders coordinates as a list literal, e.g. "[(5, 5), (5, 6)]".
func FormatCoords(coords []sim.Coord) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, c := range coords {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// formatFloat writes the shortest exact decimal form of v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

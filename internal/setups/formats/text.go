package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/evosim/internal/sim"
)

// Line layout of the text setup format.
const (
	textFieldLines = 12
	// a description block is only read when it cannot overlap the fields
	textMinDescribed = textFieldLines + 2
	maxLineBytes     = 1 << 20
)

var textFields = [textFieldLines]string{
	"rows", "cols", "genotype", "phenotype", "environment",
	"xray", "gamma", "particle", "start", "nutrients", "obstacles", "cycles",
}

// ParseText parses the legacy line-oriented setup format: rows, cols, genotype,
// phenotype, environment, xray, gamma, particle, start, nutrients, obstacles and
// cycles, one per line. When the file has at least 14 lines, the second-to-last line
// is the description title and the last line its body.
//
// Parsing is best-effort: values are type-checked but not range-checked. Use
// sim.Config.Validate for that.
func ParseText(data []byte) (Setup, error) {
	lines, err := readLines(data)
	if err != nil {
		return Setup{}, &ParseError{Field: "file", Err: err}
	}
	if len(lines) < textFieldLines {
		return Setup{}, &ParseError{
			Line:  len(lines),
			Field: "file",
			Err:   fmt.Errorf("%w: got %d, need %d", ErrTooFewLines, len(lines), textFieldLines),
		}
	}

	var cfg sim.Config
	ints := []struct {
		line int
		dst  *int
	}{
		{0, &cfg.Rows}, {1, &cfg.Cols}, {2, &cfg.Genotype}, {3, &cfg.Phenotype},
		{4, &cfg.Environment}, {11, &cfg.Cycles},
	}
	for _, f := range ints {
		v, err := strconv.Atoi(lines[f.line])
		if err != nil {
			return Setup{}, fieldError(f.line, err)
		}
		*f.dst = v
	}

	floats := []struct {
		line int
		dst  *float64
	}{
		{5, &cfg.Xray}, {6, &cfg.Gamma}, {7, &cfg.Particle},
	}
	for _, f := range floats {
		v, err := strconv.ParseFloat(lines[f.line], 64)
		if err != nil {
			return Setup{}, fieldError(f.line, err)
		}
		*f.dst = v
	}

	sets := []struct {
		line int
		dst  *[]sim.Coord
	}{
		{8, &cfg.Start}, {9, &cfg.Nutrients}, {10, &cfg.Obstacles},
	}
	for _, f := range sets {
		v, err := ParseCoords(lines[f.line])
		if err != nil {
			return Setup{}, fieldError(f.line, err)
		}
		*f.dst = v
	}

	s := Setup{Config: cfg}
	if n := len(lines); n >= textMinDescribed {
		s.Name = lines[n-2]
		s.Description = lines[n-1]
	}
	return s, nil
}

func fieldError(line int, err error) error {
	return &ParseError{Line: line + 1, Field: textFields[line], Err: err}
}

// readLines splits data into trimmed lines. A final newline does not start a line.
func readLines(data []byte) ([]string, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	return lines, sc.Err()
}

// FormatText renders a setup in the text format. The description block is written
// only when the setup has a title or body.
func FormatText(s Setup) []byte {
	c := s.Config
	lines := []string{
		strconv.Itoa(c.Rows),
		strconv.Itoa(c.Cols),
		strconv.Itoa(c.Genotype),
		strconv.Itoa(c.Phenotype),
		strconv.Itoa(c.Environment),
		formatFloat(c.Xray),
		formatFloat(c.Gamma),
		formatFloat(c.Particle),
		FormatCoords(c.Start),
		FormatCoords(c.Nutrients),
		FormatCoords(c.Obstacles),
		strconv.Itoa(c.Cycles),
	}
	if s.Name != "" || s.Description != "" {
		lines = append(lines, oneLine(s.Name), oneLine(s.Description))
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// oneLine folds a multi-line string so it fits a single text line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

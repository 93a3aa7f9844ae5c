package formats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vovakirdan/evosim/internal/sim"
)

const resultLines = 6

var resultFields = [resultLines]string{
	"occupied", "nutrients", "obstacles", "mutations", "growth", "cycles",
}

// WriteResult writes a finished run in the save format: occupied, nutrient and
// obstacle literals, mutation count, final growth value and cycles executed, one
// value per line.
func WriteResult(w io.Writer, r sim.RunResult) error {
	lines := []string{
		FormatCoords(r.Occupied),
		FormatCoords(r.Nutrients),
		FormatCoords(r.Obstacles),
		strconv.Itoa(r.MutationCount),
		formatFloat(r.FinalGrowth),
		strconv.Itoa(r.CyclesRun),
	}
	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return fmt.Errorf("formats: write result: %w", err)
	}
	return nil
}

// ParseResult reads a file produced by WriteResult. Fields the save format does not
// carry (initial growth, termination reason) are left zero.
func ParseResult(data []byte) (sim.RunResult, error) {
	lines, err := readLines(data)
	if err != nil {
		return sim.RunResult{}, &ParseError{Field: "file", Err: err}
	}
	if len(lines) < resultLines {
		return sim.RunResult{}, &ParseError{
			Line:  len(lines),
			Field: "file",
			Err:   fmt.Errorf("%w: got %d, need %d", ErrTooFewLines, len(lines), resultLines),
		}
	}

	var r sim.RunResult
	fail := func(line int, err error) error {
		return &ParseError{Line: line + 1, Field: resultFields[line], Err: err}
	}

	for i, dst := range []*[]sim.Coord{&r.Occupied, &r.Nutrients, &r.Obstacles} {
		coords, err := ParseCoords(lines[i])
		if err != nil {
			return sim.RunResult{}, fail(i, err)
		}
		*dst = coords
	}
	if r.MutationCount, err = strconv.Atoi(lines[3]); err != nil {
		return sim.RunResult{}, fail(3, err)
	}
	if r.FinalGrowth, err = strconv.ParseFloat(lines[4], 64); err != nil {
		return sim.RunResult{}, fail(4, err)
	}
	if r.CyclesRun, err = strconv.Atoi(lines[5]); err != nil {
		return sim.RunResult{}, fail(5, err)
	}
	return r, nil
}

// Package formats provides the setup file parsers and writers: the legacy
// line-oriented text format, a YAML format and the run result save format.
package formats

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/evosim/internal/sim"
)

// Setup is a parsed setup file ready for use.
type Setup struct {
	ID          string
	Name        string // title line of the description block
	Description string // body line of the description block
	Config      sim.Config
	Metadata    map[string]string
}

var (
	ErrTooFewLines = errors.New("too few lines")
	ErrLiteral     = errors.New("malformed coordinate literal")
	ErrUnsupported = errors.New("unsupported extension")
)

// ParseError locates a parse failure in a setup or result file.
type ParseError struct {
	Line  int // 1-based, 0 when the whole file is at fault
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("formats: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("formats: line %d (%s): %v", e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatExtensions returns the supported setup file extensions.
func FormatExtensions() []string {
	return []string{".txt", ".yaml", ".yml"}
}

// Parse routes data to the parser for a file extension.
func Parse(data []byte, ext string) (Setup, error) {
	switch ext {
	case ".txt":
		return ParseText(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Setup{}, fmt.Errorf("formats: %w: %s", ErrUnsupported, ext)
	}
}

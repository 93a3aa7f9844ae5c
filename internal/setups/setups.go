// Package setups loads simulation setups from files and converts between internal
// and display coordinates. This package depends on sim but sim does not depend on setups.
package setups

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/evosim/internal/setups/formats"
	"github.com/vovakirdan/evosim/internal/sim"
)

// Setup is a complete, named simulation configuration.
type Setup struct {
	ID          string
	Name        string
	Description string
	Config      sim.Config
	Metadata    map[string]string
	FilePath    string
}

// IsTutorial reports whether the setup is a tutorial. Tutorial runs print their
// description first and are never saved.
func (s Setup) IsTutorial() bool {
	return strings.Contains(strings.ToLower(s.ID), "tutorial")
}

// Title returns the display name, falling back to the ID.
func (s Setup) Title() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// Parse decodes setup data by file extension. id is used when the data carries none.
func Parse(data []byte, ext, id string) (Setup, error) {
	parsed, err := formats.Parse(data, strings.ToLower(ext))
	if err != nil {
		return Setup{}, err
	}
	if parsed.ID == "" {
		parsed.ID = id
	}
	return Setup{
		ID:          parsed.ID,
		Name:        parsed.Name,
		Description: parsed.Description,
		Config:      parsed.Config,
		Metadata:    parsed.Metadata,
	}, nil
}

// Loader loads setups from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new setup loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all setup files. Files that fail to parse are
// skipped. Setups are sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Setup, error) {
	var out []Setup

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		s, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("setups: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// LoadFile loads a single setup file. Text files take their ID from the file name.
func (l *Loader) LoadFile(path string) (Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Setup{}, fmt.Errorf("setups: reading file %s: %w", path, err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	s, err := Parse(data, ext, strings.TrimSuffix(base, ext))
	if err != nil {
		return Setup{}, fmt.Errorf("setups: parsing file %s: %w", path, err)
	}
	s.FilePath = path
	return s, nil
}

// LoadByID loads a specific setup by ID.
func (l *Loader) LoadByID(id string) (Setup, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Setup{}, err
	}
	for _, s := range all {
		if s.ID == id {
			return s, nil
		}
	}
	return Setup{}, fmt.Errorf("setups: not found: %s", id)
}

func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), strings.ToLower(ext))
}

// Save writes a setup to path, choosing the format from the extension.
func Save(path string, s Setup) error {
	fs := formats.Setup{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Config:      s.Config,
		Metadata:    s.Metadata,
	}

	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var err error
		if data, err = formats.FormatYAML(fs); err != nil {
			return err
		}
	default:
		data = formats.FormatText(fs)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("setups: writing %s: %w", path, err)
	}
	return nil
}

// SaveResult writes a finished run in the save format.
func SaveResult(path string, r sim.RunResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("setups: creating %s: %w", path, err)
	}
	if err := formats.WriteResult(f, r); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("setups: closing %s: %w", path, err)
	}
	return nil
}

// Package presets registers the built-in setups with the registry.
package presets

import (
	"embed"
	"io/fs"
	"path"
	"strings"

	"github.com/vovakirdan/evosim/internal/registry"
	"github.com/vovakirdan/evosim/internal/setups"
)

//go:embed data
var files embed.FS

func init() {
	entries, err := fs.ReadDir(files, "data")
	if err != nil {
		panic("presets: " + err.Error())
	}
	for _, e := range entries {
		name := e.Name()
		ext := path.Ext(name)
		id := strings.TrimSuffix(name, ext)
		registry.Register(id, factory(path.Join("data", name), ext, id))
	}
}

// factory parses an embedded file on every call so each caller owns its setup.
func factory(file, ext, id string) registry.Factory {
	return func() (setups.Setup, error) {
		data, err := files.ReadFile(file)
		if err != nil {
			return setups.Setup{}, err
		}
		return setups.Parse(data, ext, id)
	}
}

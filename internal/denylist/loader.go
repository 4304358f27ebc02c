package denylist

import (
	"fmt"
	"os"

	"github.com/AKapaldo/ROT/internal/classify"
	"gopkg.in/yaml.v3"
)

// Defaults is the built-in trivial-extension denylist. Callers may
// replace it via a YAML file or the --extensions flag.
var Defaults = []string{
	".tmp", ".temp", ".url", ".lnk", ".log",
	".trace", ".debug", ".cache", ".bak", ".backup", ".old",
}

// Loader loads a trivial-extension denylist from a YAML file
type Loader struct {
	path string
}

// NewLoader creates a new denylist loader
func NewLoader(path string) *Loader {
	return &Loader{
		path: path,
	}
}

// denylistFile represents a YAML denylist file
type denylistFile struct {
	Extensions []string `yaml:"extensions"`
}

// Load reads the denylist file and returns its normalized extensions.
// A missing or empty path falls back to Defaults; a present but
// malformed file is an error.
func (l *Loader) Load() ([]string, error) {
	if l.path == "" {
		return Defaults, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults, nil
		}
		return nil, fmt.Errorf("failed to read denylist: %w", err)
	}

	var file denylistFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse denylist %s: %w", l.path, err)
	}

	if len(file.Extensions) == 0 {
		return Defaults, nil
	}

	exts := make([]string, 0, len(file.Extensions))
	for _, ext := range file.Extensions {
		norm := classify.NormalizeExtension(ext)
		if norm != "" {
			exts = append(exts, norm)
		}
	}

	return exts, nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// RegistriesFilename is looked up in the working directory; when present it
// replaces the global registry configuration for that project.
const RegistriesFilename = "portico-registries.yaml"

type projectFile struct {
	DefaultRegistry *RegistryEntry  `yaml:"default-registry"`
	Registries      []RegistryEntry `yaml:"registries"`
	Overlays        []string        `yaml:"overlays"`
}

// Resolve returns the effective configuration for a working directory: the
// project registries file when present, otherwise the global config.
func Resolve(dir string) (Config, error) {
	path := filepath.Join(dir, RegistriesFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Current()
		}
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var pf projectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return Config{
		DefaultRegistry: pf.DefaultRegistry,
		Registries:      pf.Registries,
		Overlays:        pf.Overlays,
	}, nil
}

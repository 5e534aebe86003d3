package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/portico-dev/portico/internal/fsys"
)

// baselineFilename sits at a registry's root and pins the default version of
// each versioned package: {"default": {"<name>": "<version>"}}.
const baselineFilename = "baseline.json"

func loadBaseline(filesystem fsys.Filesystem, path string) (map[string]string, error) {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		// A registry without a baseline is fine; every lookup falls back
		// to version-directory scanning.
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading baseline %s: %w", path, err)
	}
	var parsed struct {
		Default map[string]string `json:"default"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing baseline %s: %w", path, err)
	}
	if parsed.Default == nil {
		parsed.Default = map[string]string{}
	}
	return parsed.Default, nil
}

package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/portico-dev/portico/internal/pkgdesc"
)

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
}

// Generate writes a starter metadata file for a new package into outDir,
// creating the directory if needed. Directories that already carry package
// metadata in either format are refused.
func Generate(outDir, name, version string, legacyControl bool) (*Result, error) {
	for _, existing := range []string{pkgdesc.ManifestFilename, pkgdesc.ControlFilename} {
		if _, err := os.Stat(filepath.Join(outDir, existing)); err == nil {
			return nil, fmt.Errorf("%s already contains %s", outDir, existing)
		}
	}

	filename := pkgdesc.ManifestFilename
	content := manifestTemplate(name, version)
	if legacyControl {
		filename = pkgdesc.ControlFilename
		content = controlTemplate(name, version)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", outDir, err)
	}
	if err := os.WriteFile(filepath.Join(outDir, filename), []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", filepath.Join(outDir, filename), err)
	}

	return &Result{OutputDir: outDir, Files: []string{filename}}, nil
}

// manifestTemplate keys are written in the conventional order rather than
// alphabetically, so the scaffold reads like a hand-written manifest.
func manifestTemplate(name, version string) string {
	return fmt.Sprintf(`{
  "name": %q,
  "version": %q,
  "description": "",
  "dependencies": []
}
`, name, version)
}

func controlTemplate(name, version string) string {
	return fmt.Sprintf("Source: %s\nVersion: %s\n", name, version)
}

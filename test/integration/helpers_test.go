//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	CentralDir string // default registry root, versioned layout with baseline.json
	TeamDir    string // declaring registry root, flat layout
	OverlayDir string // overlay root
	ProjectDir string // a mock project directory
}

// setupTestEnv creates isolated temp directories so every load operation is
// sandboxed.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		CentralDir: t.TempDir(),
		TeamDir:    t.TempDir(),
		OverlayDir: t.TempDir(),
		ProjectDir: t.TempDir(),
	}
}

// writeFile creates path's parent directories and writes content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// setupCentralRegistry fills dir with a versioned registry: package versions
// under <name>/<version>/ plus a baseline.json naming the defaults.
func setupCentralRegistry(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "zlib", "1.2.13", "portico.json"),
		`{"name": "zlib", "version": "1.2.13", "description": "A compression library"}`)
	writeFile(t, filepath.Join(dir, "zlib", "1.3.1", "portico.json"),
		`{"name": "zlib", "version": "1.3.1", "description": "A compression library"}`)
	writeFile(t, filepath.Join(dir, "curl", "8.0.1", "CONTROL"),
		"Source: curl\nVersion: 8.0.1\nDescription: A tool for transferring data with URLs\n")
	writeFile(t, filepath.Join(dir, "baseline.json"),
		`{"default": {"zlib": "1.3.1", "curl": "8.0.1"}}`)
}

// setupTeamRegistry fills dir with a flat registry holding the packages the
// team declares ownership of.
func setupTeamRegistry(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "zlib", "portico.json"),
		`{"name": "zlib", "version": "1.3.1", "port-version": 2, "description": "Patched build of zlib"}`)
}

// setupOverlay fills dir with one loadable package and one that fails to
// parse.
func setupOverlay(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "fmt", "portico.json"),
		`{"name": "fmt", "version-semver": "10.2.1", "description": "A formatting library"}`)
	writeFile(t, filepath.Join(dir, "broken", "portico.json"),
		`{"name": "broken"}`)
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected file %s: %v", path, err)
	}
	if info.IsDir() {
		t.Fatalf("expected file %s, found a directory", path)
	}
}

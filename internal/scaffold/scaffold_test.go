package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/portico-dev/portico/internal/fsys"
	"github.com/portico-dev/portico/internal/loader"
	"github.com/portico-dev/portico/internal/pkgdesc"
)

func TestGenerateManifest(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "zlib")

	result, err := Generate(outDir, "zlib", "1.3.1", false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Files) != 1 || result.Files[0] != pkgdesc.ManifestFilename {
		t.Errorf("wrote %v, want [%s]", result.Files, pkgdesc.ManifestFilename)
	}

	// The scaffold must load cleanly through the normal path.
	l := loader.New(fsys.OS(), loader.Options{})
	pkg, errInfo := l.LoadPackageDirectory(outDir)
	if errInfo != nil {
		t.Fatalf("scaffolded package failed to load: %s", errInfo.Verbose())
	}
	if pkg.Name != "zlib" || pkg.Version != "1.3.1" {
		t.Errorf("got %s@%s, want zlib@1.3.1", pkg.Name, pkg.Version)
	}
	if pkg.Scheme != pkgdesc.SchemeRelaxed {
		t.Errorf("got scheme %v, want %v", pkg.Scheme, pkgdesc.SchemeRelaxed)
	}
}

func TestGenerateControl(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "curl")

	result, err := Generate(outDir, "curl", "8.0.1", true)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Files) != 1 || result.Files[0] != pkgdesc.ControlFilename {
		t.Errorf("wrote %v, want [%s]", result.Files, pkgdesc.ControlFilename)
	}

	l := loader.New(fsys.OS(), loader.Options{})
	pkg, errInfo := l.LoadPackageDirectory(outDir)
	if errInfo != nil {
		t.Fatalf("scaffolded package failed to load: %s", errInfo.Verbose())
	}
	if pkg.Name != "curl" || pkg.Version != "8.0.1" {
		t.Errorf("got %s@%s, want curl@8.0.1", pkg.Name, pkg.Version)
	}
	if pkg.Scheme != pkgdesc.SchemeString {
		t.Errorf("got scheme %v, want %v", pkg.Scheme, pkgdesc.SchemeString)
	}
}

func TestGenerateRefusesExisting(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "zlib")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(outDir, pkgdesc.ControlFilename), []byte("Source: zlib\nVersion: 1.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Generate(outDir, "zlib", "2.0.0", false); err == nil {
		t.Fatal("expected error for directory that already has metadata")
	} else if !strings.Contains(err.Error(), "already contains") {
		t.Errorf("unexpected error: %v", err)
	}
}

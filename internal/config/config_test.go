package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/viper"
)

func TestResolveProjectFile(t *testing.T) {
	dir := t.TempDir()
	content := `default-registry:
  name: central
  path: /srv/registries/central
registries:
  - name: team
    path: /srv/registries/team
    packages: [zlib, libpng]
overlays:
  - ./overlay-ports
`
	if err := os.WriteFile(filepath.Join(dir, RegistriesFilename), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.DefaultRegistry == nil || cfg.DefaultRegistry.Name != "central" {
		t.Errorf("default registry = %+v", cfg.DefaultRegistry)
	}
	if len(cfg.Registries) != 1 || cfg.Registries[0].Name != "team" {
		t.Fatalf("registries = %+v", cfg.Registries)
	}
	if !slices.Equal(cfg.Registries[0].Packages, []string{"zlib", "libpng"}) {
		t.Errorf("packages = %v", cfg.Registries[0].Packages)
	}
	if !slices.Equal(cfg.Overlays, []string{"./overlay-ports"}) {
		t.Errorf("overlays = %v", cfg.Overlays)
	}
}

func TestResolveFallsBackToGlobal(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("overlays", []string{"/tmp/ports"})

	cfg, err := Resolve(t.TempDir())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !slices.Equal(cfg.Overlays, []string{"/tmp/ports"}) {
		t.Errorf("overlays = %v", cfg.Overlays)
	}
	if cfg.DefaultRegistry != nil {
		t.Errorf("default registry = %+v, want nil", cfg.DefaultRegistry)
	}
}

func TestResolveCorruptProjectFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, RegistriesFilename), []byte(":\t:"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Resolve(dir); err == nil {
		t.Error("expected parse error")
	}
}

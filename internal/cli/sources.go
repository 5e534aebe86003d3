package cli

import (
	"fmt"
	"os"

	"github.com/portico-dev/portico/internal/config"
	"github.com/portico-dev/portico/internal/fsys"
	"github.com/portico-dev/portico/internal/loader"
	"github.com/portico-dev/portico/internal/registry"
)

// buildRegistrySet opens every registry the effective configuration names.
func buildRegistrySet(cfg config.Config) (registry.Set, error) {
	fs := fsys.OS()

	var def registry.Registry
	if cfg.DefaultRegistry != nil {
		r, err := registry.NewLocal(cfg.DefaultRegistry.Name, cfg.DefaultRegistry.Path, nil, fs)
		if err != nil {
			return nil, fmt.Errorf("opening default registry %q: %w", cfg.DefaultRegistry.Name, err)
		}
		def = r
	}

	regs := make([]registry.Registry, 0, len(cfg.Registries))
	for _, entry := range cfg.Registries {
		r, err := registry.NewLocal(entry.Name, entry.Path, entry.Packages, fs)
		if err != nil {
			return nil, fmt.Errorf("opening registry %q: %w", entry.Name, err)
		}
		regs = append(regs, r)
	}

	return registry.NewSet(def, regs...), nil
}

// collectPackages loads every package the configured registries and overlay
// directories provide, with overlays from the command line appended last.
// Parse failures are reported through the shared logger and returned
// alongside the successfully loaded packages.
func collectPackages(extraOverlays []string) (loader.LoadResults, error) {
	wd, err := os.Getwd()
	if err != nil {
		return loader.LoadResults{}, fmt.Errorf("resolving working directory: %w", err)
	}

	cfg, err := config.Resolve(wd)
	if err != nil {
		return loader.LoadResults{}, err
	}

	set, err := buildRegistrySet(cfg)
	if err != nil {
		return loader.LoadResults{}, err
	}

	l := loader.New(fsys.OS(), loader.Options{Logger: logger})
	results := l.LoadAllRegistryPackages(set)

	for _, dir := range append(append([]string{}, cfg.Overlays...), extraOverlays...) {
		more := l.LoadOverlayPackages(dir)
		results.Packages = append(results.Packages, more.Packages...)
		results.Errors = append(results.Errors, more.Errors...)
	}

	l.Report(results)
	logger.Debug("package load complete",
		"packages", len(results.Packages),
		"errors", len(results.Errors),
		"attempts", l.Stats().Attempts(),
		"elapsed", l.Stats().Elapsed())
	return results, nil
}

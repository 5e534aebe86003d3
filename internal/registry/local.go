package registry

import (
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/portico-dev/portico/internal/fsys"
	"github.com/portico-dev/portico/internal/pkgdesc"
)

// Local is a registry rooted at a directory of package subdirectories. Two
// layouts are supported: flat, where <root>/<name> is itself a package
// directory, and versioned, where <root>/<name>/<version> holds one package
// per version and the registry's baseline selects the default.
type Local struct {
	name     string
	root     string
	declared []string
	fs       fsys.Filesystem
	baseline map[string]string
}

// NewLocal opens a local registry. declared lists the package names the
// registry owns; empty means it only serves as a default. The error is
// non-nil only when the registry's baseline file exists but cannot be parsed.
func NewLocal(name, root string, declared []string, fs fsys.Filesystem) (*Local, error) {
	baseline, err := loadBaseline(fs, filepath.Join(root, baselineFilename))
	if err != nil {
		return nil, err
	}
	return &Local{
		name:     name,
		root:     root,
		declared: declared,
		fs:       fs,
		baseline: baseline,
	}, nil
}

func (l *Local) Name() string { return l.name }

func (l *Local) DeclaredPackages() []string { return l.declared }

// EnumerateAll lists the registry's package subdirectories, skipping hidden
// entries.
func (l *Local) EnumerateAll() []string {
	dirs, err := l.fs.ListDirectories(l.root)
	if err != nil {
		return nil
	}
	names := dirs[:0]
	for _, d := range dirs {
		if !strings.HasPrefix(d, ".") {
			names = append(names, d)
		}
	}
	return names
}

// BaselinePath resolves the directory holding the package's baseline version.
func (l *Local) BaselinePath(name string) (string, bool) {
	dir := filepath.Join(l.root, name)
	if !l.fs.Exists(dir) {
		return "", false
	}
	// Flat layout: the name directory is the package itself.
	if l.fs.Exists(filepath.Join(dir, pkgdesc.ManifestFilename)) ||
		l.fs.Exists(filepath.Join(dir, pkgdesc.ControlFilename)) {
		return dir, true
	}
	// Versioned layout: baseline entry wins, otherwise the highest version
	// directory that parses as a semantic version.
	if version, ok := l.baseline[name]; ok {
		return filepath.Join(dir, version), true
	}
	versions, err := l.fs.ListDirectories(dir)
	if err != nil {
		return "", false
	}
	var best *semver.Version
	bestDir := ""
	for _, v := range versions {
		parsed, err := semver.NewVersion(v)
		if err != nil {
			continue
		}
		if best == nil || parsed.GreaterThan(best) {
			best = parsed
			bestDir = filepath.Join(dir, v)
		}
	}
	if best == nil {
		return "", false
	}
	return bestDir, true
}

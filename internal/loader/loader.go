package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/portico-dev/portico/internal/control"
	"github.com/portico-dev/portico/internal/fsys"
	"github.com/portico-dev/portico/internal/manifest"
	"github.com/portico-dev/portico/internal/pkgdesc"
)

// Options configures a Loader. Zero values get working defaults: a fresh
// Stats handle and a logger that discards everything.
type Options struct {
	Stats  *Stats
	Logger *log.Logger
}

// Loader reads package descriptions from directories. It is safe for
// concurrent use over disjoint directories; the Stats counters are the only
// shared state.
type Loader struct {
	fs    fsys.Filesystem
	stats *Stats
	log   *log.Logger
	exit  func(int)
}

// New builds a Loader over the given filesystem.
func New(filesystem fsys.Filesystem, opts Options) *Loader {
	l := &Loader{
		fs:    filesystem,
		stats: opts.Stats,
		log:   opts.Logger,
		exit:  os.Exit,
	}
	if l.stats == nil {
		l.stats = NewStats()
	}
	if l.log == nil {
		l.log = log.New(io.Discard)
	}
	return l
}

// Stats returns the loader's counters.
func (l *Loader) Stats() *Stats { return l.stats }

// LoadPackageDirectory reads the package description in dir. The manifest
// format wins when present; a directory carrying both a manifest and a
// CONTROL file cannot be disambiguated and ends the process.
func (l *Loader) LoadPackageDirectory(dir string) (*pkgdesc.Package, *control.ErrorInfo) {
	defer l.stats.Track()()

	name := filepath.Base(dir)
	manifestPath := filepath.Join(dir, pkgdesc.ManifestFilename)
	controlPath := filepath.Join(dir, pkgdesc.ControlFilename)

	data, err := l.fs.ReadFile(manifestPath)
	switch {
	case err == nil:
		if l.fs.Exists(controlPath) {
			l.log.Error("found both a manifest and a CONTROL file; please rename one or the other", "package", dir)
			l.exit(1)
			panic("not reached")
		}
		return l.loadManifest(name, manifestPath, data)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, &control.ErrorInfo{
			Name:    name,
			Message: fmt.Sprintf("failed to read %s: %v", manifestPath, err),
		}
	}

	data, err = l.fs.ReadFile(controlPath)
	switch {
	case err == nil:
		return l.loadControl(name, controlPath, data)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, &control.ErrorInfo{
			Name:    name,
			Message: fmt.Sprintf("failed to read %s: %v", controlPath, err),
		}
	}

	if !l.fs.Exists(dir) {
		return nil, &control.ErrorInfo{
			Name:    name,
			Message: fmt.Sprintf("the package directory %s does not exist", dir),
		}
	}
	return nil, &control.ErrorInfo{
		Name:    name,
		Message: fmt.Sprintf("failed to find either a CONTROL file or a %s manifest in %s", pkgdesc.ManifestFilename, dir),
	}
}

func (l *Loader) loadManifest(name, origin string, data []byte) (*pkgdesc.Package, *control.ErrorInfo) {
	obj, err := manifest.ParseObject(data, origin)
	if err != nil {
		return nil, &control.ErrorInfo{Name: name, Message: err.Error()}
	}
	return pkgdesc.FromManifestObject(name, origin, obj)
}

func (l *Loader) loadControl(name, origin string, data []byte) (*pkgdesc.Package, *control.ErrorInfo) {
	doc, err := control.ParseParagraphs(string(data), origin)
	if err != nil {
		return nil, &control.ErrorInfo{Name: name, Message: err.Error()}
	}
	return pkgdesc.FromControlDocument(name, origin, doc)
}

// IsPackageDirectory reports whether dir carries a package description in
// either format.
func (l *Loader) IsPackageDirectory(dir string) bool {
	return l.fs.Exists(filepath.Join(dir, pkgdesc.ManifestFilename)) ||
		l.fs.Exists(filepath.Join(dir, pkgdesc.ControlFilename))
}

// LoadCachedPackage reads the CONTROL data of an already-built package and
// verifies it describes the expected spec.
func (l *Loader) LoadCachedPackage(dir string, expected pkgdesc.Spec) (*pkgdesc.BinaryPackage, error) {
	defer l.stats.Track()()

	path := filepath.Join(dir, pkgdesc.ControlFilename)
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	p, err := control.ParseSingleParagraph(string(data), path)
	if err != nil {
		return nil, err
	}
	bp, errInfo := pkgdesc.NewBinaryPackage(path, p)
	if errInfo != nil {
		return nil, errInfo
	}
	if got := bp.Spec(); got != expected {
		return nil, fmt.Errorf("Mismatched spec in package at %s: expected %s, actual %s", dir, expected, got)
	}
	return bp, nil
}

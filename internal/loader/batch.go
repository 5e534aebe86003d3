package loader

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/portico-dev/portico/internal/control"
	"github.com/portico-dev/portico/internal/pkgdesc"
	"github.com/portico-dev/portico/internal/registry"
)

// PackageLocation pairs a loaded package with the directory it came from.
type PackageLocation struct {
	Package *pkgdesc.Package
	Path    string
}

// LoadResults accumulates the outcome of a batch load. Partial failure is
// the normal case: errors never abort sibling loads.
type LoadResults struct {
	Packages []PackageLocation
	Errors   []*control.ErrorInfo
}

// LoadAllRegistryPackages loads the baseline version of every package the
// registry set can name. Candidates are the union of all declared names plus
// the default registry's enumeration, visited in sorted order. Names nobody
// owns, and names whose owner provides no baseline path, are skipped without
// an error.
func (l *Loader) LoadAllRegistryPackages(set registry.Set) LoadResults {
	var names []string
	for _, reg := range set.All() {
		names = append(names, reg.DeclaredPackages()...)
	}
	if def, ok := set.Default(); ok {
		names = append(names, def.EnumerateAll()...)
	}
	sort.Strings(names)
	names = slices.Compact(names)

	var results LoadResults
	for _, name := range names {
		owner, ok := set.OwnerOf(name)
		if !ok {
			continue
		}
		dir, ok := owner.BaselinePath(name)
		if !ok {
			continue
		}
		pkg, errInfo := l.LoadPackageDirectory(dir)
		if errInfo != nil {
			results.Errors = append(results.Errors, errInfo)
			continue
		}
		results.Packages = append(results.Packages, PackageLocation{Package: pkg, Path: dir})
	}
	return results
}

// LoadOverlayPackages loads every package subdirectory of one overlay root,
// in sorted order, skipping hidden entries.
func (l *Loader) LoadOverlayPackages(dir string) LoadResults {
	var results LoadResults
	entries, err := l.fs.ListDirectories(dir)
	if err != nil {
		results.Errors = append(results.Errors, &control.ErrorInfo{
			Name:    filepath.Base(dir),
			Message: fmt.Sprintf("failed to list overlay directory %s: %v", dir, err),
		})
		return results
	}
	sort.Strings(entries)
	for _, name := range entries {
		if strings.HasPrefix(name, ".") {
			continue
		}
		pkg, errInfo := l.LoadPackageDirectory(filepath.Join(dir, name))
		if errInfo != nil {
			results.Errors = append(results.Errors, errInfo)
			continue
		}
		results.Packages = append(results.Packages, PackageLocation{Package: pkg, Path: filepath.Join(dir, name)})
	}
	return results
}

package registry

import "slices"

// Registry is a named source of package directories.
type Registry interface {
	// Name identifies the registry in configuration and reports.
	Name() string
	// DeclaredPackages returns the names this registry claims ownership of.
	// An empty list means the registry only serves as a default.
	DeclaredPackages() []string
	// EnumerateAll returns every package name the registry can see.
	EnumerateAll() []string
	// BaselinePath returns the directory holding the package's baseline
	// version. The second result is false when the registry cannot provide
	// the package.
	BaselinePath(name string) (string, bool)
}

// Set combines several registries and resolves name ownership.
type Set interface {
	// All returns every registry in the set, default included.
	All() []Registry
	// Default returns the registry that serves names nobody declares.
	Default() (Registry, bool)
	// OwnerOf returns the registry responsible for a package name.
	OwnerOf(name string) (Registry, bool)
}

// NewSet builds a Set. Names declared by a registry belong to the first
// registry declaring them; everything else falls through to def, which may be
// nil when there is no default.
func NewSet(def Registry, regs ...Registry) Set {
	return &registrySet{def: def, regs: regs}
}

type registrySet struct {
	def  Registry
	regs []Registry
}

func (s *registrySet) All() []Registry {
	all := slices.Clone(s.regs)
	if s.def != nil {
		all = append(all, s.def)
	}
	return all
}

func (s *registrySet) Default() (Registry, bool) {
	return s.def, s.def != nil
}

func (s *registrySet) OwnerOf(name string) (Registry, bool) {
	for _, r := range s.regs {
		if slices.Contains(r.DeclaredPackages(), name) {
			return r, true
		}
	}
	if s.def != nil {
		return s.def, true
	}
	return nil, false
}

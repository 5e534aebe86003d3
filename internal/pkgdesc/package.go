package pkgdesc

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"

	"github.com/portico-dev/portico/internal/depspec"
	"github.com/portico-dev/portico/internal/platform"
)

// The two metadata formats a package directory may carry. Exactly one must
// be present.
const (
	ManifestFilename = "portico.json"
	ControlFilename  = "CONTROL"
)

// VersionScheme says how a package's version string is interpreted and
// which syntax it must follow.
type VersionScheme int

const (
	// SchemeString versions are opaque text, only comparable for equality.
	SchemeString VersionScheme = iota
	// SchemeRelaxed versions are dot-separated numbers, e.g. "1.2.13".
	SchemeRelaxed
	// SchemeSemver versions follow semantic versioning 2.0.0.
	SchemeSemver
	// SchemeDate versions are dates with optional tie-breakers, e.g.
	// "2026-08-25" or "2026-08-25.1".
	SchemeDate
)

func (s VersionScheme) String() string {
	switch s {
	case SchemeRelaxed:
		return "relaxed"
	case SchemeSemver:
		return "semver"
	case SchemeDate:
		return "date"
	default:
		return "string"
	}
}

// MarshalJSON renders the scheme as its name.
func (s VersionScheme) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", s.String())), nil
}

// expectation describes valid values for type notes.
func (s VersionScheme) expectation() string {
	switch s {
	case SchemeRelaxed:
		return "a dotted version like 1.2.13"
	case SchemeSemver:
		return "a semantic version like 1.2.3-rc.1"
	case SchemeDate:
		return "a date version like 2026-08-25"
	default:
		return "a non-empty string"
	}
}

var (
	relaxedVersionRe = regexp.MustCompile(`^\d+(\.\d+)*$`)
	dateVersionRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(\.\d+)*$`)
)

// ValidateVersion checks a version string against its scheme's syntax.
func ValidateVersion(version string, scheme VersionScheme) error {
	switch scheme {
	case SchemeRelaxed:
		if !relaxedVersionRe.MatchString(version) {
			return fmt.Errorf("%q is not a relaxed version", version)
		}
	case SchemeSemver:
		if _, err := semver.StrictNewVersion(version); err != nil {
			return fmt.Errorf("%q is not a semantic version: %w", version, err)
		}
	case SchemeDate:
		if !dateVersionRe.MatchString(version) {
			return fmt.Errorf("%q is not a date version", version)
		}
	default:
		if version == "" {
			return fmt.Errorf("version must not be empty")
		}
	}
	return nil
}

// Feature is an optional, named unit of package functionality with its own
// dependencies.
type Feature struct {
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Dependencies []depspec.Dependency `json:"dependencies,omitempty"`
}

// Package is the source-package record built from a portico.json manifest
// or a legacy CONTROL file.
type Package struct {
	Name            string               `json:"name"`
	Version         string               `json:"version"`
	Scheme          VersionScheme        `json:"version-scheme"`
	PortVersion     int                  `json:"port-version,omitempty"`
	Description     string               `json:"description,omitempty"`
	Maintainer      string               `json:"maintainer,omitempty"`
	Homepage        string               `json:"homepage,omitempty"`
	Dependencies    []depspec.Dependency `json:"dependencies,omitempty"`
	DefaultFeatures []string             `json:"default-features,omitempty"`
	Supports        platform.Expression  `json:"supports"`
	Features        []Feature            `json:"features,omitempty"`
}

// FullVersion renders the version with its port-version suffix, e.g.
// "1.2.13#3". A zero port-version is omitted.
func (p *Package) FullVersion() string {
	if p.PortVersion > 0 {
		return fmt.Sprintf("%s#%d", p.Version, p.PortVersion)
	}
	return p.Version
}

// FindFeature returns the named feature, or nil.
func (p *Package) FindFeature(name string) *Feature {
	for i := range p.Features {
		if p.Features[i].Name == name {
			return &p.Features[i]
		}
	}
	return nil
}

// Spec identifies a package built for a particular triplet.
type Spec struct {
	Name    string `json:"name"`
	Triplet string `json:"triplet"`
}

func (s Spec) String() string { return s.Name + ":" + s.Triplet }

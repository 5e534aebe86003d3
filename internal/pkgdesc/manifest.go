package pkgdesc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/portico-dev/portico/internal/control"
	"github.com/portico-dev/portico/internal/depspec"
	"github.com/portico-dev/portico/internal/manifest"
	"github.com/portico-dev/portico/internal/platform"
	"github.com/portico-dev/portico/internal/textscan"
)

// versionFields maps each manifest version field to its scheme. Exactly one
// of them must be declared.
var versionFields = []struct {
	name   string
	scheme VersionScheme
}{
	{"version", SchemeRelaxed},
	{"version-semver", SchemeSemver},
	{"version-date", SchemeDate},
	{"version-string", SchemeString},
}

// FromManifestObject builds a package record from a decoded portico.json
// object. name is the package directory's base name, used only for
// diagnostics; the record's name comes from the manifest itself.
func FromManifestObject(name, origin string, obj map[string]any) (*Package, *control.ErrorInfo) {
	r := manifest.NewReader(obj)
	pkg := &Package{Scheme: SchemeString}

	pkg.Name = r.RequiredString("name")
	if pkg.Name != "" {
		if _, err := depspec.ParsePackageName(pkg.Name, origin); err != nil {
			r.AddTypeNote("name", "a lowercase identifier (letters, digits, '-')")
		}
	}

	readVersion(r, pkg)

	if n := r.OptionalInt("port-version"); n < 0 {
		r.AddTypeNote("port-version", "a non-negative integer")
	} else {
		pkg.PortVersion = n
	}

	pkg.Description = strings.Join(r.OptionalStringOrArray("description"), "\n")
	pkg.Maintainer = strings.Join(r.OptionalStringOrArray("maintainers"), "\n")
	pkg.Homepage = r.OptionalString("homepage")

	if r.Has("supports") {
		expr, err := platform.Parse(r.OptionalString("supports"))
		if err != nil {
			r.AddNote(fmt.Sprintf("supports: %v", err))
		} else {
			pkg.Supports = expr
		}
	}

	if arr := r.OptionalArray("default-features"); arr != nil {
		feats := make([]string, 0, len(arr))
		valid := true
		for _, v := range arr {
			s, ok := v.(string)
			if !ok {
				valid = false
				continue
			}
			if _, err := depspec.ParseFeatureName(s, origin); err != nil {
				valid = false
				continue
			}
			feats = append(feats, s)
		}
		if !valid {
			r.AddTypeNote("default-features", "an array of feature names")
		}
		pkg.DefaultFeatures = feats
	}

	if arr := r.OptionalArray("dependencies"); arr != nil {
		pkg.Dependencies = readDependencies(r, origin, "dependencies", arr)
	}

	if features := r.OptionalObject("features"); features != nil {
		names := make([]string, 0, len(features))
		for k := range features {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, fname := range names {
			pkg.Features = append(pkg.Features, readFeature(r, origin, fname, features[fname]))
		}
	}

	if errInfo := r.Finalize(name); errInfo != nil {
		return nil, errInfo
	}
	return pkg, nil
}

// readVersion consumes whichever version field the manifest declares and
// validates the value against that field's scheme.
func readVersion(r *manifest.Reader, pkg *Package) {
	var found []string
	for _, vf := range versionFields {
		if r.Has(vf.name) {
			found = append(found, vf.name)
		}
	}
	switch len(found) {
	case 0:
		r.RequiredString("version")
	case 1:
		for _, vf := range versionFields {
			if vf.name != found[0] {
				continue
			}
			pkg.Version = r.RequiredString(vf.name)
			pkg.Scheme = vf.scheme
			if pkg.Version != "" && ValidateVersion(pkg.Version, vf.scheme) != nil {
				r.AddTypeNote(vf.name, vf.scheme.expectation())
			}
		}
	default:
		for _, name := range found {
			r.OptionalString(name)
		}
		r.AddNote("exactly one of version, version-semver, version-date, version-string must be declared")
	}
}

// readDependencies decodes a dependency array. Entries are either package
// specifier strings or dependency objects; label names the array in notes.
func readDependencies(r *manifest.Reader, origin, label string, arr []any) []depspec.Dependency {
	deps := make([]depspec.Dependency, 0, len(arr))
	for i, entry := range arr {
		entryLabel := fmt.Sprintf("%s[%d]", label, i)
		switch v := entry.(type) {
		case string:
			parsed, err := depspec.ParseDependenciesList(v, origin, textscan.Position{Row: 1, Col: 1})
			if err != nil {
				if d, ok := err.(*textscan.Diagnostic); ok {
					r.AddNote(fmt.Sprintf("%s: %s", entryLabel, d.Message))
				} else {
					r.AddNote(fmt.Sprintf("%s: %v", entryLabel, err))
				}
				continue
			}
			if len(parsed) != 1 {
				r.AddTypeNote(entryLabel, "a single dependency specifier")
				continue
			}
			deps = append(deps, parsed[0])
		case map[string]any:
			if dep, ok := readDependencyObject(r, origin, entryLabel, v); ok {
				deps = append(deps, dep)
			}
		default:
			r.AddTypeNote(entryLabel, "a package name or a dependency object")
		}
	}
	return deps
}

// readDependencyObject decodes the object form of a dependency entry. The
// boolean result is false when no usable name was found.
func readDependencyObject(r *manifest.Reader, origin, label string, obj map[string]any) (depspec.Dependency, bool) {
	dep := depspec.Dependency{Features: []string{}}
	named := false

	if v, present := obj["name"]; !present {
		r.AddNote(label + " is missing the name field")
	} else if s, ok := v.(string); !ok {
		r.AddTypeNote(label+".name", "a package name")
	} else if _, err := depspec.ParsePackageName(s, origin); err != nil {
		r.AddTypeNote(label+".name", "a package name")
	} else {
		dep.Name = s
		named = true
	}

	if v, present := obj["features"]; present {
		arr, ok := v.([]any)
		if !ok {
			r.AddTypeNote(label+".features", "an array of feature names")
		} else {
			valid := true
			for _, item := range arr {
				s, ok := item.(string)
				if !ok {
					valid = false
					continue
				}
				if s != "*" {
					if _, err := depspec.ParseFeatureName(s, origin); err != nil {
						valid = false
						continue
					}
				}
				dep.Features = append(dep.Features, s)
			}
			if !valid {
				r.AddTypeNote(label+".features", "an array of feature names")
			}
		}
	}

	if v, present := obj["default-features"]; present {
		b, ok := v.(bool)
		if !ok {
			r.AddTypeNote(label+".default-features", "a boolean")
		} else if !b {
			dep.Features = append(dep.Features, "core")
		}
	}

	if v, present := obj["platform"]; present {
		s, ok := v.(string)
		if !ok {
			r.AddTypeNote(label+".platform", "a platform expression string")
		} else if expr, err := platform.Parse(s); err != nil {
			r.AddNote(fmt.Sprintf("%s.platform: %v", label, err))
		} else {
			dep.Platform = expr
		}
	}

	var unknown []string
	for k := range obj {
		switch k {
		case "name", "features", "default-features", "platform":
		default:
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		r.AddNote(fmt.Sprintf("%s has an unexpected field %q", label, k))
	}

	return dep, named
}

// readFeature decodes one entry of the top-level features object.
func readFeature(r *manifest.Reader, origin, fname string, body any) Feature {
	label := "features." + fname
	f := Feature{Name: fname}

	if _, err := depspec.ParseFeatureName(fname, origin); err != nil {
		r.AddTypeNote(label, "declared with a valid feature name (lowercase, digits, '-')")
	}
	obj, ok := body.(map[string]any)
	if !ok {
		r.AddTypeNote(label, "an object with a description")
		return f
	}

	if v, present := obj["description"]; !present {
		r.AddNote(label + " is missing the description field")
	} else {
		switch d := v.(type) {
		case string:
			f.Description = d
		case []any:
			lines := make([]string, 0, len(d))
			valid := true
			for _, item := range d {
				s, ok := item.(string)
				if !ok {
					valid = false
					continue
				}
				lines = append(lines, s)
			}
			if !valid {
				r.AddTypeNote(label+".description", "a string or an array of strings")
			}
			f.Description = strings.Join(lines, "\n")
		default:
			r.AddTypeNote(label+".description", "a string or an array of strings")
		}
	}

	if v, present := obj["dependencies"]; present {
		arr, ok := v.([]any)
		if !ok {
			r.AddTypeNote(label+".dependencies", "an array of dependencies")
		} else {
			f.Dependencies = readDependencies(r, origin, label+".dependencies", arr)
		}
	}

	var unknown []string
	for k := range obj {
		switch k {
		case "description", "dependencies":
		default:
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		r.AddNote(fmt.Sprintf("%s has an unexpected field %q", label, k))
	}
	return f
}

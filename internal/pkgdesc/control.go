package pkgdesc

import (
	"fmt"
	"strconv"

	"github.com/portico-dev/portico/internal/control"
	"github.com/portico-dev/portico/internal/depspec"
	"github.com/portico-dev/portico/internal/platform"
)

// CONTROL field names. The first paragraph is the source paragraph; each
// later paragraph declares one feature.
const (
	fieldSource          = "Source"
	fieldVersion         = "Version"
	fieldPortVersion     = "Port-Version"
	fieldDescription     = "Description"
	fieldMaintainer      = "Maintainer"
	fieldHomepage        = "Homepage"
	fieldBuildDepends    = "Build-Depends"
	fieldDefaultFeatures = "Default-Features"
	fieldSupports        = "Supports"
	fieldFeature         = "Feature"
)

// FromControlDocument builds a package record from the paragraphs of a
// CONTROL file. name is the package directory's base name, origin the file
// path for diagnostics. CONTROL versions always use the string scheme.
func FromControlDocument(name, origin string, doc control.Document) (*Package, *control.ErrorInfo) {
	if len(doc) == 0 {
		return nil, &control.ErrorInfo{
			Name:    name,
			Message: fmt.Sprintf("expected at least one paragraph in %s", origin),
		}
	}

	pkg := &Package{Scheme: SchemeString}
	e := control.NewExtractor(doc[0])
	pkg.Name = e.Required(fieldSource)
	pkg.Version = e.Required(fieldVersion)
	pkg.Description = e.Optional(fieldDescription)
	pkg.Maintainer = e.Optional(fieldMaintainer)
	pkg.Homepage = e.Optional(fieldHomepage)

	if v := e.Optional(fieldPortVersion); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			e.AddTypeNote(fieldPortVersion, "a non-negative integer")
		} else {
			pkg.PortVersion = n
		}
	}

	if v, pos, ok := e.OptionalPos(fieldBuildDepends); ok {
		deps, err := depspec.ParseDependenciesList(v, origin, pos)
		if err != nil {
			return nil, &control.ErrorInfo{Name: name, Message: err.Error()}
		}
		pkg.Dependencies = deps
	}
	if v, pos, ok := e.OptionalPos(fieldDefaultFeatures); ok {
		feats, err := depspec.ParseDefaultFeaturesList(v, origin, pos)
		if err != nil {
			return nil, &control.ErrorInfo{Name: name, Message: err.Error()}
		}
		pkg.DefaultFeatures = feats
	}
	if v, pos, ok := e.OptionalPos(fieldSupports); ok {
		expr, err := platform.Parse(v)
		if err != nil {
			return nil, &control.ErrorInfo{
				Name:    name,
				Message: fmt.Sprintf("%s:%d:%d: in field %s: %v", origin, pos.Row, pos.Col, fieldSupports, err),
			}
		}
		pkg.Supports = expr
	}

	if errInfo := e.Finalize(name); errInfo != nil {
		return nil, errInfo
	}

	for _, para := range doc[1:] {
		fe := control.NewExtractor(para)
		f := Feature{
			Name:        fe.Required(fieldFeature),
			Description: fe.Required(fieldDescription),
		}
		if v, pos, ok := fe.OptionalPos(fieldBuildDepends); ok {
			deps, err := depspec.ParseDependenciesList(v, origin, pos)
			if err != nil {
				return nil, &control.ErrorInfo{Name: name, Message: err.Error()}
			}
			f.Dependencies = deps
		}
		if errInfo := fe.Finalize(name); errInfo != nil {
			return nil, errInfo
		}
		pkg.Features = append(pkg.Features, f)
	}
	return pkg, nil
}

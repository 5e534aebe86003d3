package pkgdesc

import (
	"fmt"
	"strconv"

	"github.com/portico-dev/portico/internal/control"
	"github.com/portico-dev/portico/internal/depspec"
)

// BinaryPackage is one paragraph of a built package's CONTROL data. The core
// paragraph describes the package itself; each installed feature gets its own
// paragraph with the Feature field set.
type BinaryPackage struct {
	Package         string   `json:"package"`
	Feature         string   `json:"feature,omitempty"`
	Version         string   `json:"version"`
	PortVersion     int      `json:"port_version,omitempty"`
	Architecture    string   `json:"architecture"`
	MultiArch       string   `json:"multi_arch"`
	Description     string   `json:"description,omitempty"`
	Maintainer      string   `json:"maintainer,omitempty"`
	Depends         []string `json:"depends,omitempty"`
	DefaultFeatures []string `json:"default_features,omitempty"`
}

// Spec returns the package's name qualified with its build architecture.
func (b *BinaryPackage) Spec() Spec {
	return Spec{Name: b.Package, Triplet: b.Architecture}
}

// NewBinaryPackage builds a BinaryPackage from one CONTROL paragraph.
func NewBinaryPackage(origin string, p control.Paragraph) (*BinaryPackage, *control.ErrorInfo) {
	e := control.NewExtractor(p)
	b := &BinaryPackage{
		Package:      e.Required("Package"),
		Version:      e.Required("Version"),
		Architecture: e.Required("Architecture"),
		MultiArch:    e.Required("Multi-Arch"),
		Feature:      e.Optional("Feature"),
		Description:  e.Optional("Description"),
		Maintainer:   e.Optional("Maintainer"),
	}
	errName := b.Package
	if errName == "" {
		errName = origin
	}

	if b.MultiArch != "" && b.MultiArch != "same" {
		e.AddTypeNote("Multi-Arch", `"same"`)
	}
	if v := e.Optional("Port-Version"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			e.AddTypeNote("Port-Version", "a non-negative integer")
		} else {
			b.PortVersion = n
		}
	}
	if v, pos, ok := e.OptionalPos("Depends"); ok {
		specs, err := depspec.ParseQualifiedSpecifierList(v, origin, pos)
		if err != nil {
			return nil, &control.ErrorInfo{Name: errName, Message: err.Error()}
		}
		for _, s := range specs {
			d := s.Name
			if s.Triplet != "" {
				d += ":" + s.Triplet
			}
			b.Depends = append(b.Depends, d)
		}
	}
	if v, pos, ok := e.OptionalPos("Default-Features"); ok {
		feats, err := depspec.ParseDefaultFeaturesList(v, origin, pos)
		if err != nil {
			return nil, &control.ErrorInfo{Name: errName, Message: err.Error()}
		}
		b.DefaultFeatures = feats
	}

	if errInfo := e.Finalize(errName); errInfo != nil {
		return nil, errInfo
	}
	return b, nil
}

// BinaryControlFile is the parsed CONTROL of a built package: the core
// paragraph plus one paragraph per installed feature.
type BinaryControlFile struct {
	Core     BinaryPackage
	Features []BinaryPackage
}

// NewBinaryControlFile builds a BinaryControlFile from the paragraphs of a
// built package's CONTROL file.
func NewBinaryControlFile(origin string, doc control.Document) (*BinaryControlFile, *control.ErrorInfo) {
	if len(doc) == 0 {
		return nil, &control.ErrorInfo{
			Name:    origin,
			Message: fmt.Sprintf("expected at least one paragraph in %s", origin),
		}
	}
	core, errInfo := NewBinaryPackage(origin, doc[0])
	if errInfo != nil {
		return nil, errInfo
	}
	bcf := &BinaryControlFile{Core: *core}
	for _, p := range doc[1:] {
		f, errInfo := NewBinaryPackage(origin, p)
		if errInfo != nil {
			return nil, errInfo
		}
		bcf.Features = append(bcf.Features, *f)
	}
	return bcf, nil
}

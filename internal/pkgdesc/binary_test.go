package pkgdesc

import (
	"slices"
	"strings"
	"testing"
)

func TestNewBinaryControlFile(t *testing.T) {
	text := `Package: zlib
Version: 1.2.13
Port-Version: 3
Architecture: x64-linux
Multi-Arch: same
Description: A compression library
Depends: libpng, getopt:x64-windows
Default-Features: docs

Package: zlib
Feature: docs
Version: 1.2.13
Architecture: x64-linux
Multi-Arch: same
Description: documentation
`
	doc := mustParse(t, text, "packages/zlib_x64-linux/CONTROL")
	bcf, errInfo := NewBinaryControlFile("packages/zlib_x64-linux/CONTROL", doc)
	if errInfo != nil {
		t.Fatalf("unexpected error: %s", errInfo.Verbose())
	}

	core := bcf.Core
	if core.Package != "zlib" || core.Version != "1.2.13" || core.PortVersion != 3 {
		t.Errorf("core = %+v", core)
	}
	if got := core.Spec().String(); got != "zlib:x64-linux" {
		t.Errorf("spec = %q, want %q", got, "zlib:x64-linux")
	}
	if !slices.Equal(core.Depends, []string{"libpng", "getopt:x64-windows"}) {
		t.Errorf("depends = %v", core.Depends)
	}
	if !slices.Equal(core.DefaultFeatures, []string{"docs"}) {
		t.Errorf("default features = %v", core.DefaultFeatures)
	}

	if len(bcf.Features) != 1 {
		t.Fatalf("got %d feature paragraphs, want 1", len(bcf.Features))
	}
	if f := bcf.Features[0]; f.Feature != "docs" || f.Package != "zlib" {
		t.Errorf("feature paragraph = %+v", f)
	}
}

func TestNewBinaryPackageErrors(t *testing.T) {
	cases := []struct {
		name        string
		text        string
		wantMissing []string
		wantNote    string
		wantMessage string
	}{
		{
			name:        "missing required fields",
			text:        "Package: a\n",
			wantMissing: []string{"Version", "Architecture", "Multi-Arch"},
		},
		{
			name:     "multi-arch must be same",
			text:     "Package: a\nVersion: 1\nArchitecture: x64-linux\nMulti-Arch: foreign\n",
			wantNote: `Multi-Arch should be "same"`,
		},
		{
			name:        "bad depends list",
			text:        "Package: a\nVersion: 1\nArchitecture: x64-linux\nMulti-Arch: same\nDepends: b,\n",
			wantMessage: "expected ',' or end of text in dependencies list",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := mustParse(t, tc.text, "CONTROL")
			if len(doc) != 1 {
				t.Fatalf("got %d paragraphs, want 1", len(doc))
			}
			b, errInfo := NewBinaryPackage("CONTROL", doc[0])
			if errInfo == nil {
				t.Fatalf("expected error, got %+v", b)
			}
			if tc.wantMissing != nil && !slices.Equal(errInfo.MissingFields, tc.wantMissing) {
				t.Errorf("missing = %v, want %v", errInfo.MissingFields, tc.wantMissing)
			}
			if tc.wantNote != "" && !slices.Contains(errInfo.TypeNotes, tc.wantNote) {
				t.Errorf("type notes = %v, want %q", errInfo.TypeNotes, tc.wantNote)
			}
			if tc.wantMessage != "" && !strings.Contains(errInfo.Message, tc.wantMessage) {
				t.Errorf("message = %q, want substring %q", errInfo.Message, tc.wantMessage)
			}
		})
	}
}

func TestNewBinaryControlFileEmpty(t *testing.T) {
	_, errInfo := NewBinaryControlFile("CONTROL", nil)
	if errInfo == nil {
		t.Fatal("expected error for empty document")
	}
	if !strings.Contains(errInfo.Message, "expected at least one paragraph") {
		t.Errorf("message = %q", errInfo.Message)
	}
}

package depspec

import (
	"reflect"
	"strings"
	"testing"

	"github.com/portico-dev/portico/internal/textscan"
)

func TestParseDependenciesList(t *testing.T) {
	deps, err := ParseDependenciesList("zlib, libpng[tools, docs], curl (windows & !static)", "test", textscan.Position{})
	if err != nil {
		t.Fatalf("ParseDependenciesList returned error: %v", err)
	}
	if len(deps) != 3 {
		t.Fatalf("got %d dependencies, want 3", len(deps))
	}

	if deps[0].Name != "zlib" || len(deps[0].Features) != 0 || !deps[0].Platform.IsEmpty() {
		t.Errorf("deps[0] = %+v, want bare zlib", deps[0])
	}
	if deps[0].Features == nil {
		t.Error("deps[0].Features = nil, want empty slice")
	}
	if deps[1].Name != "libpng" || !reflect.DeepEqual(deps[1].Features, []string{"tools", "docs"}) {
		t.Errorf("deps[1] = %+v, want libpng[tools, docs]", deps[1])
	}
	if deps[2].Name != "curl" {
		t.Errorf("deps[2].Name = %q, want %q", deps[2].Name, "curl")
	}
	if got := deps[2].Platform.String(); got != "windows & !static" {
		t.Errorf("deps[2].Platform = %q, want %q", got, "windows & !static")
	}
	if deps[2].Platform.Eval(map[string]bool{"windows": true}) != true {
		t.Error("deps[2].Platform should match plain windows")
	}
}

func TestParseDependenciesListEmpty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		deps, err := ParseDependenciesList(text, "test", textscan.Position{})
		if err != nil {
			t.Fatalf("ParseDependenciesList(%q) returned error: %v", text, err)
		}
		if deps == nil {
			t.Fatalf("ParseDependenciesList(%q) = nil, want empty list", text)
		}
		if len(deps) != 0 {
			t.Errorf("ParseDependenciesList(%q) has %d entries, want 0", text, len(deps))
		}
	}
}

func TestParseDependenciesListRejectsTriplet(t *testing.T) {
	_, err := ParseDependenciesList("zlib, curl:x64-windows", "test", textscan.Position{})
	if err == nil {
		t.Fatal("ParseDependenciesList succeeded, want triplet error")
	}
	if !strings.Contains(err.Error(), "triplet specifier not allowed in this context") {
		t.Errorf("error = %q, want triplet message", err)
	}
	// Reported at the start of the offending specifier.
	if !strings.HasPrefix(err.Error(), "test:1:7:") {
		t.Errorf("error = %q, want position 1:7", err)
	}
}

func TestParseQualifiedSpecifierList(t *testing.T) {
	specs, err := ParseQualifiedSpecifierList("curl[*]:x64-windows (linux | osx), zlib", "test", textscan.Position{})
	if err != nil {
		t.Fatalf("ParseQualifiedSpecifierList returned error: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("got %d specifiers, want 2", len(specs))
	}
	got := specs[0]
	if got.Name != "curl" {
		t.Errorf("Name = %q, want %q", got.Name, "curl")
	}
	if !reflect.DeepEqual(got.Features, []string{"*"}) {
		t.Errorf("Features = %v, want [*]", got.Features)
	}
	if got.Triplet != "x64-windows" {
		t.Errorf("Triplet = %q, want %q", got.Triplet, "x64-windows")
	}
	if got.Platform.String() != "linux | osx" {
		t.Errorf("Platform = %q, want %q", got.Platform.String(), "linux | osx")
	}
	if specs[1].Features != nil {
		t.Errorf("specs[1].Features = %v, want nil (no list written)", specs[1].Features)
	}
}

func TestParseDefaultFeaturesList(t *testing.T) {
	feats, err := ParseDefaultFeaturesList("tools, docs,\n examples", "test", textscan.Position{})
	if err != nil {
		t.Fatalf("ParseDefaultFeaturesList returned error: %v", err)
	}
	if !reflect.DeepEqual(feats, []string{"tools", "docs", "examples"}) {
		t.Errorf("features = %v, want [tools docs examples]", feats)
	}
}

func TestListGrammarErrors(t *testing.T) {
	tests := []struct {
		name  string
		parse func(string) error
		text  string
		want  string
	}{
		{
			name:  "trailing comma",
			parse: parseDeps,
			text:  "zlib,",
			want:  "expected ',' or end of text in dependencies list",
		},
		{
			name:  "junk after item",
			parse: parseDeps,
			text:  "zlib; curl",
			want:  "expected ',' or end of text in dependencies list",
		},
		{
			name:  "default features kind in message",
			parse: parseFeats,
			text:  "tools extra",
			want:  "expected ',' or end of text in default features list",
		},
		{
			name:  "uppercase package name",
			parse: parseDeps,
			text:  "Zlib",
			want:  "invalid character in package name (must be lowercase, digits, '-')",
		},
		{
			name:  "underscore in package name",
			parse: parseDeps,
			text:  "z_lib",
			want:  "invalid character in package name (must be lowercase, digits, '-')",
		},
		{
			name:  "missing package name",
			parse: parseDeps,
			text:  ", zlib",
			want:  "expected package name (must be lowercase, digits, '-')",
		},
		{
			name:  "bad feature separator",
			parse: parseDeps,
			text:  "zlib[tools; docs]",
			want:  "expected ',' or ']' in feature list",
		},
		{
			name:  "reserved feature name",
			parse: parseFeats,
			text:  "tools, default",
			want:  "'default' is a reserved feature name",
		},
		{
			name:  "empty feature list",
			parse: parseDeps,
			text:  "zlib[]",
			want:  "expected feature name (must be lowercase, digits, '-')",
		},
		{
			name:  "unmatched platform paren",
			parse: parseDeps,
			text:  "zlib (windows & (x64",
			want:  "unmatched open parenthesis in platform specifier",
		},
		{
			name:  "bad platform expression",
			parse: parseDeps,
			text:  "zlib (windows & x64 | linux)",
			want:  "mixing '&' and '|' requires parentheses",
		},
		{
			name:  "missing triplet name",
			parse: parseQuals,
			text:  "zlib:",
			want:  "expected triplet name (must be lowercase, digits, '-')",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse(tt.text)
			if err == nil {
				t.Fatalf("parse(%q) succeeded, want error", tt.text)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("parse(%q) error = %q, want substring %q", tt.text, err, tt.want)
			}
		})
	}
}

func parseDeps(text string) error {
	_, err := ParseDependenciesList(text, "test", textscan.Position{})
	return err
}

func parseFeats(text string) error {
	_, err := ParseDefaultFeaturesList(text, "test", textscan.Position{})
	return err
}

func parseQuals(text string) error {
	_, err := ParseQualifiedSpecifierList(text, "test", textscan.Position{})
	return err
}

func TestEmbeddedPositionOffsets(t *testing.T) {
	// A field value inside a control file reports positions of the
	// enclosing document, not of the extracted value text.
	_, err := ParseDependenciesList("zlib, c_url", "ports/demo/CONTROL", textscan.Position{Row: 4, Col: 16})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "ports/demo/CONTROL:4:") {
		t.Errorf("error = %q, want row 4 of enclosing document", err)
	}
}

func TestParsePackageName(t *testing.T) {
	name, err := ParsePackageName("zlib-ng", "test")
	if err != nil {
		t.Fatalf("ParsePackageName returned error: %v", err)
	}
	if name != "zlib-ng" {
		t.Errorf("name = %q, want %q", name, "zlib-ng")
	}

	for _, bad := range []string{"", "Zlib", "zlib ng", "z_lib"} {
		if _, err := ParsePackageName(bad, "test"); err == nil {
			t.Errorf("ParsePackageName(%q) succeeded, want error", bad)
		}
	}
}

func TestParseFeatureName(t *testing.T) {
	name, err := ParseFeatureName("tools", "test")
	if err != nil {
		t.Fatalf("ParseFeatureName returned error: %v", err)
	}
	if name != "tools" {
		t.Errorf("name = %q, want %q", name, "tools")
	}
	if _, err := ParseFeatureName("default", "test"); err == nil {
		t.Error("ParseFeatureName(default) succeeded, want reserved-name error")
	}
}

package depspec

import (
	"fmt"

	"github.com/portico-dev/portico/internal/platform"
	"github.com/portico-dev/portico/internal/textscan"
)

// QualifiedSpecifier is one entry of a qualified-specifier list: a package
// name with optional feature list, triplet suffix, and platform qualifier.
// A nil Features slice means no feature list was written.
type QualifiedSpecifier struct {
	Name     string              `json:"name"`
	Features []string            `json:"features,omitempty"`
	Triplet  string              `json:"triplet,omitempty"`
	Platform platform.Expression `json:"platform,omitempty"`
}

// Dependency is one entry of a dependencies list. Triplet suffixes are not
// allowed there, and Features is always non-nil.
type Dependency struct {
	Name     string              `json:"name"`
	Features []string            `json:"features"`
	Platform platform.Expression `json:"platform,omitempty"`
}

// ParseDefaultFeaturesList parses a comma-separated list of feature names.
// start positions diagnostics within the enclosing document.
func ParseDefaultFeaturesList(text, origin string, start textscan.Position) ([]string, error) {
	sc := textscan.NewAt(text, origin, start)
	out, ok := parseList(sc, "default features", parseFeatureName)
	if !ok {
		return nil, sc.Err()
	}
	return out, nil
}

// ParseQualifiedSpecifierList parses a comma-separated list of qualified
// specifiers, triplet suffixes allowed.
func ParseQualifiedSpecifierList(text, origin string, start textscan.Position) ([]QualifiedSpecifier, error) {
	sc := textscan.NewAt(text, origin, start)
	out, ok := parseList(sc, "dependencies", parseQualifiedSpecifier)
	if !ok {
		return nil, sc.Err()
	}
	return out, nil
}

// ParseDependenciesList parses a comma-separated dependency list. A triplet
// suffix on any entry is an error.
func ParseDependenciesList(text, origin string, start textscan.Position) ([]Dependency, error) {
	sc := textscan.NewAt(text, origin, start)
	out, ok := parseList(sc, "dependencies", parseDependency)
	if !ok {
		return nil, sc.Err()
	}
	return out, nil
}

// ParsePackageName parses text that must be exactly one package name.
func ParsePackageName(text, origin string) (string, error) {
	sc := textscan.New(text, origin)
	name, ok := parsePackageName(sc)
	if ok && !sc.AtEOF() {
		sc.AddError("expected end of text after package name")
		ok = false
	}
	if !ok {
		return "", sc.Err()
	}
	return name, nil
}

// ParseFeatureName parses text that must be exactly one feature name.
func ParseFeatureName(text, origin string) (string, error) {
	sc := textscan.New(text, origin)
	name, ok := parseFeatureName(sc)
	if ok && !sc.AtEOF() {
		sc.AddError("expected end of text after feature name")
		ok = false
	}
	if !ok {
		return "", sc.Err()
	}
	return name, nil
}

// parseList is the comma-list combinator behind all three entry points.
// Empty input is an empty list. After an item, only ',' or end of input may
// follow; a trailing comma is an error.
func parseList[T any](sc *textscan.Scanner, kind string, item func(*textscan.Scanner) (T, bool)) ([]T, bool) {
	ret := []T{}
	sc.SkipWhitespace()
	if sc.AtEOF() {
		return ret, true
	}
	for {
		v, ok := item(sc)
		if !ok {
			return nil, false
		}
		ret = append(ret, v)
		sc.SkipWhitespace()
		if sc.AtEOF() {
			return ret, true
		}
		if sc.Cur() != ',' {
			sc.AddError(fmt.Sprintf("expected ',' or end of text in %s list", kind))
			return nil, false
		}
		sc.Next()
		sc.SkipWhitespace()
		if sc.AtEOF() {
			sc.AddError(fmt.Sprintf("expected ',' or end of text in %s list", kind))
			return nil, false
		}
	}
}

func parseNameToken(sc *textscan.Scanner, what string) (string, bool) {
	name := sc.MatchZeroOrMore(textscan.IsNameChar)
	if name == "" {
		if textscan.IsUpperAlpha(sc.Cur()) || sc.Cur() == '_' {
			sc.AddError(fmt.Sprintf("invalid character in %s name (must be lowercase, digits, '-')", what))
		} else {
			sc.AddError(fmt.Sprintf("expected %s name (must be lowercase, digits, '-')", what))
		}
		return "", false
	}
	if textscan.IsUpperAlpha(sc.Cur()) || sc.Cur() == '_' {
		sc.AddError(fmt.Sprintf("invalid character in %s name (must be lowercase, digits, '-')", what))
		return "", false
	}
	return name, true
}

func parsePackageName(sc *textscan.Scanner) (string, bool) {
	return parseNameToken(sc, "package")
}

func parseFeatureName(sc *textscan.Scanner) (string, bool) {
	name, ok := parseNameToken(sc, "feature")
	if !ok {
		return "", false
	}
	if name == "default" {
		sc.AddError("'default' is a reserved feature name")
		return "", false
	}
	return name, true
}

func parseTripletName(sc *textscan.Scanner) (string, bool) {
	return parseNameToken(sc, "triplet")
}

func parseQualifiedSpecifier(sc *textscan.Scanner) (QualifiedSpecifier, bool) {
	var q QualifiedSpecifier
	name, ok := parsePackageName(sc)
	if !ok {
		return q, false
	}
	q.Name = name

	if sc.Cur() == '[' {
		features := []string{}
		for {
			sc.Next()
			sc.SkipWhitespace()
			if sc.Cur() == '*' {
				features = append(features, "*")
				sc.Next()
			} else {
				f, ok := parseFeatureName(sc)
				if !ok {
					return q, false
				}
				features = append(features, f)
			}
			sc.SkipWhitespace()
			if sc.Cur() == ']' {
				sc.Next()
				break
			}
			if sc.Cur() != ',' {
				sc.AddError("expected ',' or ']' in feature list")
				return q, false
			}
		}
		q.Features = features
	}

	if sc.Cur() == ':' {
		sc.Next()
		t, ok := parseTripletName(sc)
		if !ok {
			return q, false
		}
		q.Triplet = t
	}

	sc.SkipWhitespace()
	if sc.Cur() == '(' {
		open := sc.Loc()
		sc.Next()
		inner, ok := scanPlatformText(sc, open)
		if !ok {
			return q, false
		}
		expr, err := platform.Parse(inner)
		if err != nil {
			sc.AddErrorAt(err.Error(), open)
			return q, false
		}
		q.Platform = expr
	}
	return q, true
}

// scanPlatformText consumes up to the parenthesis matching the one at open
// and returns the text between them.
func scanPlatformText(sc *textscan.Scanner, open textscan.Loc) (string, bool) {
	start := sc.Loc()
	depth := 1
	for {
		switch sc.Cur() {
		case textscan.EOF:
			sc.AddErrorAt("unmatched open parenthesis in platform specifier", open)
			return "", false
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				text := sc.Since(start)
				sc.Next()
				return text, true
			}
		}
		sc.Next()
	}
}

func parseDependency(sc *textscan.Scanner) (Dependency, bool) {
	start := sc.Loc()
	q, ok := parseQualifiedSpecifier(sc)
	if !ok {
		return Dependency{}, false
	}
	if q.Triplet != "" {
		sc.AddErrorAt("triplet specifier not allowed in this context", start)
		return Dependency{}, false
	}
	d := Dependency{Name: q.Name, Features: q.Features, Platform: q.Platform}
	if d.Features == nil {
		d.Features = []string{}
	}
	return d, true
}

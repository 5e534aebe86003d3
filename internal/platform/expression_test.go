package platform

import (
	"strings"
	"testing"
)

func TestParseAndEval(t *testing.T) {
	windowsX64 := map[string]bool{"windows": true, "x64": true}
	linuxArm := map[string]bool{"linux": true, "arm64": true}

	tests := []struct {
		expr string
		vars map[string]bool
		want bool
	}{
		{"windows", windowsX64, true},
		{"windows", linuxArm, false},
		{"!windows", linuxArm, true},
		{"windows & x64", windowsX64, true},
		{"windows & arm64", windowsX64, false},
		{"windows | linux", linuxArm, true},
		{"windows & x64 & static", windowsX64, false},
		{"linux | osx | freebsd", linuxArm, true},
		{"(windows | linux) & arm64", linuxArm, true},
		{"(windows | linux) & arm64", windowsX64, false},
		{"!(windows & static)", windowsX64, true},
		{"  windows  ", windowsX64, true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			expr, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.expr, err)
			}
			if got := expr.Eval(tt.vars); got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"mixed operators", "windows & x64 | linux", "mixing '&' and '|' requires parentheses"},
		{"unmatched paren", "(windows & x64", "unmatched '('"},
		{"dangling operator", "windows &", "expected an identifier"},
		{"empty parens", "()", "expected an identifier"},
		{"stray close paren", "windows)", "unexpected character"},
		{"uppercase identifier", "Windows", "expected an identifier"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.expr)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.expr)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse(%q) error = %q, want substring %q", tt.expr, err, tt.want)
			}
		})
	}
}

func TestEmptyExpression(t *testing.T) {
	for _, text := range []string{"", "   "} {
		expr, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", text, err)
		}
		if !expr.IsEmpty() {
			t.Errorf("Parse(%q).IsEmpty() = false, want true", text)
		}
		if !expr.Eval(nil) {
			t.Errorf("empty expression Eval = false, want true")
		}
	}

	expr, err := Parse("windows")
	if err != nil {
		t.Fatal(err)
	}
	if expr.IsEmpty() {
		t.Error("Parse(windows).IsEmpty() = true, want false")
	}
}

func TestStringRoundTrip(t *testing.T) {
	expr, err := Parse("  (windows | linux) & !static ")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := expr.String(), "(windows | linux) & !static"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestMarshalJSON(t *testing.T) {
	expr, err := Parse("windows & x64")
	if err != nil {
		t.Fatal(err)
	}
	data, err := expr.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `"windows & x64"`; got != want {
		t.Errorf("MarshalJSON = %s, want %s", got, want)
	}
}

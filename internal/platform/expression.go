package platform

import (
	"fmt"
	"strings"

	"github.com/portico-dev/portico/internal/textscan"
)

// Expression is a parsed platform expression. The zero value is the empty
// expression, which matches every platform.
type Expression struct {
	text string
	node node
}

// IsEmpty reports whether the expression was absent or blank.
func (e Expression) IsEmpty() bool { return e.node == nil }

// String returns the original expression text.
func (e Expression) String() string { return e.text }

// MarshalJSON renders the expression as its source text.
func (e Expression) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", e.text)), nil
}

// Eval evaluates the expression against a truth table of platform
// identifiers, e.g. {"windows": true, "x64": true}. Identifiers absent from
// the table are false. The empty expression is always true.
func (e Expression) Eval(vars map[string]bool) bool {
	if e.node == nil {
		return true
	}
	return e.node.eval(vars)
}

type node interface {
	eval(vars map[string]bool) bool
}

type identNode string

func (n identNode) eval(vars map[string]bool) bool { return vars[string(n)] }

type notNode struct{ child node }

func (n notNode) eval(vars map[string]bool) bool { return !n.child.eval(vars) }

type andNode []node

func (n andNode) eval(vars map[string]bool) bool {
	for _, c := range n {
		if !c.eval(vars) {
			return false
		}
	}
	return true
}

type orNode []node

func (n orNode) eval(vars map[string]bool) bool {
	for _, c := range n {
		if c.eval(vars) {
			return true
		}
	}
	return false
}

// Parse parses a platform expression. Blank input yields the empty
// expression. Chains of one operator need no parentheses ("a & b & c"), but
// mixing '&' and '|' does.
func Parse(text string) (Expression, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Expression{}, nil
	}
	sc := textscan.New(text, "")
	n := parseExpr(sc)
	sc.SkipWhitespace()
	if sc.Err() == nil && !sc.AtEOF() {
		sc.AddError("unexpected character in platform expression")
	}
	if d := sc.Err(); d != nil {
		return Expression{}, fmt.Errorf("%s (column %d)", d.Message, d.Pos.Col)
	}
	return Expression{text: trimmed, node: n}, nil
}

// parseExpr parses a chain of primaries joined by a single operator. It stops
// at anything that is not '&' or '|', leaving the terminator for the caller.
func parseExpr(sc *textscan.Scanner) node {
	first := parsePrimary(sc)
	sc.SkipWhitespace()
	op := sc.Cur()
	if op != '&' && op != '|' {
		return first
	}
	children := []node{first}
	for {
		sc.Next()
		children = append(children, parsePrimary(sc))
		sc.SkipWhitespace()
		switch cur := sc.Cur(); {
		case cur == op:
			continue
		case cur == '&' || cur == '|':
			sc.AddError("mixing '&' and '|' requires parentheses")
			return nil
		default:
			if op == '&' {
				return andNode(children)
			}
			return orNode(children)
		}
	}
}

func parsePrimary(sc *textscan.Scanner) node {
	sc.SkipWhitespace()
	switch sc.Cur() {
	case '!':
		sc.Next()
		return notNode{child: parsePrimary(sc)}
	case '(':
		open := sc.Loc()
		sc.Next()
		n := parseExpr(sc)
		sc.SkipWhitespace()
		if sc.Cur() != ')' {
			sc.AddErrorAt("unmatched '(' in platform expression", open)
			return nil
		}
		sc.Next()
		return n
	default:
		name := sc.MatchZeroOrMore(textscan.IsNameChar)
		if name == "" {
			sc.AddError("expected an identifier, '!', or '(' in platform expression")
			return nil
		}
		return identNode(name)
	}
}

package textscan

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// EOF is the rune reported by Cur once the scanner has passed the end of its
// input.
const EOF rune = -1

// Position is a 1-based row/column location in a source text. The zero value
// means "unknown" and is treated as row 1, column 1 when seeding a scanner.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String renders the position as "row:col".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Loc is an opaque save point inside a scanner, used to attribute an error to
// an earlier location than the cursor.
type Loc struct {
	offset int
	pos    Position
}

// Position returns the row/column of the save point.
func (l Loc) Position() Position { return l.pos }

// Diagnostic is the single error a scanner can accumulate. It renders with
// the origin label, the position, the offending source line, and a caret
// under the failing column.
type Diagnostic struct {
	Origin  string
	Pos     Position
	Message string
	Line    string
}

const caretPrefix = "    on expression: "

func (d *Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d: %s", d.Origin, d.Pos.Row, d.Pos.Col, d.Message)
	b.WriteString("\n" + caretPrefix + d.Line)
	indent := len(caretPrefix) + d.Pos.Col - 1
	if indent < 0 {
		indent = 0
	}
	b.WriteString("\n" + strings.Repeat(" ", indent) + "^")
	return b.String()
}

// Scanner walks a UTF-8 string rune by rune while tracking row and column.
type Scanner struct {
	text   string
	origin string
	offset int
	pos    Position
	err    *Diagnostic
}

// New returns a scanner over text. The origin label (usually a file path)
// appears in diagnostics.
func New(text, origin string) *Scanner {
	return NewAt(text, origin, Position{})
}

// NewAt returns a scanner whose positions start at start instead of 1:1, so
// that text embedded in a larger document reports coordinates of the outer
// document.
func NewAt(text, origin string, start Position) *Scanner {
	if start.Row < 1 {
		start.Row = 1
	}
	if start.Col < 1 {
		start.Col = 1
	}
	return &Scanner{text: text, origin: origin, pos: start}
}

// Cur returns the rune under the cursor, or EOF.
func (s *Scanner) Cur() rune {
	if s.AtEOF() {
		return EOF
	}
	r, _ := utf8.DecodeRuneInString(s.text[s.offset:])
	return r
}

// Next advances past the current rune and returns the new current rune. A
// "\r\n" pair counts as a single line break; the row advances when its "\n"
// is consumed.
func (s *Scanner) Next() rune {
	if s.AtEOF() {
		return EOF
	}
	r, size := utf8.DecodeRuneInString(s.text[s.offset:])
	s.offset += size
	if r == '\n' || (r == '\r' && !s.nextIs('\n')) {
		s.pos.Row++
		s.pos.Col = 1
	} else {
		s.pos.Col++
	}
	return s.Cur()
}

func (s *Scanner) nextIs(b byte) bool {
	return s.offset < len(s.text) && s.text[s.offset] == b
}

// AtEOF reports whether the cursor has passed the end of the input.
func (s *Scanner) AtEOF() bool { return s.offset >= len(s.text) }

// Position returns the row/column of the cursor.
func (s *Scanner) Position() Position { return s.pos }

// Loc returns a save point for the cursor, for later error attribution or
// text extraction.
func (s *Scanner) Loc() Loc { return Loc{offset: s.offset, pos: s.pos} }

// Since returns the text between a save point and the cursor.
func (s *Scanner) Since(from Loc) string { return s.text[from.offset:s.offset] }

// MatchZeroOrMore consumes runes while pred holds and returns them.
func (s *Scanner) MatchZeroOrMore(pred func(rune) bool) string {
	start := s.offset
	for !s.AtEOF() && pred(s.Cur()) {
		s.Next()
	}
	return s.text[start:s.offset]
}

// MatchUntil consumes runes until pred holds or the input ends, and returns
// them.
func (s *Scanner) MatchUntil(pred func(rune) bool) string {
	start := s.offset
	for !s.AtEOF() && !pred(s.Cur()) {
		s.Next()
	}
	return s.text[start:s.offset]
}

// SkipWhitespace consumes spaces, tabs, and line ends.
func (s *Scanner) SkipWhitespace() { s.MatchZeroOrMore(IsWhitespace) }

// SkipTabsSpaces consumes spaces and tabs but not line ends.
func (s *Scanner) SkipTabsSpaces() { s.MatchZeroOrMore(IsTabOrSpace) }

// SkipNewline consumes a single "\n", "\r", or "\r\n".
func (s *Scanner) SkipNewline() {
	if s.Cur() == '\r' {
		s.Next()
	}
	if s.Cur() == '\n' {
		s.Next()
	}
}

// SkipLine consumes the rest of the current line including its line break.
func (s *Scanner) SkipLine() {
	s.MatchUntil(IsLineEnd)
	s.SkipNewline()
}

// AddError records message at the cursor. Only the first error sticks; every
// call jumps the cursor to end of input so parse loops terminate.
func (s *Scanner) AddError(message string) { s.AddErrorAt(message, s.Loc()) }

// AddErrorAt records message at an earlier save point.
func (s *Scanner) AddErrorAt(message string, at Loc) {
	if s.err == nil {
		s.err = &Diagnostic{
			Origin:  s.origin,
			Pos:     at.pos,
			Message: message,
			Line:    s.lineAt(at.offset),
		}
	}
	s.offset = len(s.text)
}

// Err returns the recorded diagnostic, or nil.
func (s *Scanner) Err() *Diagnostic { return s.err }

// lineAt extracts the full source line containing the byte offset.
func (s *Scanner) lineAt(offset int) string {
	start := offset
	for start > 0 && s.text[start-1] != '\n' && s.text[start-1] != '\r' {
		start--
	}
	end := offset
	for end < len(s.text) && s.text[end] != '\n' && s.text[end] != '\r' {
		end++
	}
	return s.text[start:end]
}

// IsWhitespace reports whether r is a space, tab, or line-end character.
func IsWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// IsTabOrSpace reports whether r is a space or tab.
func IsTabOrSpace(r rune) bool { return r == ' ' || r == '\t' }

// IsLineEnd reports whether r ends a line. End of input counts as a line end.
func IsLineEnd(r rune) bool { return r == '\r' || r == '\n' || r == EOF }

// IsAlphaNumDash reports whether r is allowed in a control-file field name.
func IsAlphaNumDash(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-'
}

// IsNameChar reports whether r is allowed in a package, feature, triplet, or
// platform identifier.
func IsNameChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
}

// IsUpperAlpha reports whether r is an ASCII uppercase letter.
func IsUpperAlpha(r rune) bool { return r >= 'A' && r <= 'Z' }

package control

import (
	"errors"
	"strings"

	"github.com/portico-dev/portico/internal/textscan"
)

// Field is a single field value and the position where the value starts
// (after the colon and any tabs or spaces).
type Field struct {
	Value string
	Pos   textscan.Position
}

// Paragraph maps field names to their values. Field order is not
// semantically significant.
type Paragraph map[string]Field

// Document is the ordered sequence of paragraphs in one control file.
type Document []Paragraph

// ParseParagraphs parses an entire control file. It returns the paragraphs
// in order, or the first grammar error encountered.
func ParseParagraphs(text, origin string) (Document, error) {
	sc := textscan.New(text, origin)
	var doc Document
	sc.SkipWhitespace()
	for !sc.AtEOF() {
		p := parseParagraph(sc)
		if d := sc.Err(); d != nil {
			return nil, d
		}
		// A run of comment lines followed by a blank line produces no
		// fields and no paragraph.
		if len(p) > 0 {
			doc = append(doc, p)
		}
		sc.MatchZeroOrMore(textscan.IsLineEnd)
	}
	return doc, nil
}

// ParseSingleParagraph parses a control file that must contain exactly one
// paragraph.
func ParseSingleParagraph(text, origin string) (Paragraph, error) {
	doc, err := ParseParagraphs(text, origin)
	if err != nil {
		return nil, err
	}
	if len(doc) != 1 {
		return nil, errors.New("There should be exactly one paragraph")
	}
	return doc[0], nil
}

// parseParagraph reads fields until a blank line, end of input, or error.
// Comment lines inside a paragraph are skipped; a comment followed by a
// blank line ends the paragraph.
func parseParagraph(sc *textscan.Scanner) Paragraph {
	fields := Paragraph{}
	for {
		if sc.Cur() == '#' {
			sc.SkipLine()
			if textscan.IsLineEnd(sc.Cur()) {
				return fields
			}
			continue
		}

		nameLoc := sc.Loc()
		name := sc.MatchZeroOrMore(textscan.IsAlphaNumDash)
		if name == "" {
			sc.AddError("expected fieldname")
			return fields
		}
		if sc.Cur() != ':' {
			sc.AddError("expected ':' after field name")
			return fields
		}
		if _, seen := fields[name]; seen {
			sc.AddErrorAt("duplicate field", nameLoc)
			return fields
		}
		sc.Next()
		sc.SkipTabsSpaces()

		pos := sc.Position()
		value := parseFieldValue(sc)
		if sc.Err() != nil {
			return fields
		}
		fields[name] = Field{Value: value, Pos: pos}

		if textscan.IsLineEnd(sc.Cur()) {
			return fields
		}
	}
}

// parseFieldValue reads the first value line and any continuation lines. A
// continuation line starts with a single space; the space and any further
// tabs or spaces are not part of the value. A continuation of exactly "."
// contributes an empty line. Value lines join with "\n".
func parseFieldValue(sc *textscan.Scanner) string {
	lines := []string{sc.MatchUntil(textscan.IsLineEnd)}
	sc.SkipNewline()
	for sc.Cur() == ' ' {
		sc.Next()
		sc.SkipTabsSpaces()
		if textscan.IsLineEnd(sc.Cur()) {
			sc.AddError(`unexpected end of line, to span a blank line use " ."`)
			return ""
		}
		cont := sc.MatchUntil(textscan.IsLineEnd)
		sc.SkipNewline()
		if cont == "." {
			cont = ""
		}
		lines = append(lines, cont)
	}
	return strings.Join(lines, "\n")
}

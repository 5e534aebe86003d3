package control

import (
	"fmt"
	"sort"

	"github.com/portico-dev/portico/internal/textscan"
)

// Extractor consumes a paragraph field by field against a caller's schema of
// required and optional names. Lookups remove fields from the paragraph, so
// whatever remains at Finalize was unexpected.
type Extractor struct {
	fields    Paragraph
	missing   []string
	typeNotes []string
}

// NewExtractor takes ownership of the paragraph; the caller must not use it
// afterwards.
func NewExtractor(p Paragraph) *Extractor {
	return &Extractor{fields: p}
}

// Required consumes a required field, recording it as missing when absent.
func (e *Extractor) Required(name string) string {
	v, _ := e.RequiredPos(name)
	return v
}

// RequiredPos is Required plus the value's source position.
func (e *Extractor) RequiredPos(name string) (string, textscan.Position) {
	f, ok := e.fields[name]
	if !ok {
		e.missing = append(e.missing, name)
		return "", textscan.Position{}
	}
	delete(e.fields, name)
	return f.Value, f.Pos
}

// Optional consumes an optional field, returning "" when absent.
func (e *Extractor) Optional(name string) string {
	v, _, _ := e.OptionalPos(name)
	return v
}

// OptionalPos is Optional plus the value's source position and presence.
func (e *Extractor) OptionalPos(name string) (string, textscan.Position, bool) {
	f, ok := e.fields[name]
	if !ok {
		return "", textscan.Position{}, false
	}
	delete(e.fields, name)
	return f.Value, f.Pos, true
}

// AddTypeNote records that a field's value did not have the expected shape,
// e.g. AddTypeNote("Port-Version", "a non-negative integer").
func (e *Extractor) AddTypeNote(field, expected string) {
	e.typeNotes = append(e.typeNotes, fmt.Sprintf("%s should be %s", field, expected))
}

// Finalize checks that every field was consumed and every required field was
// present. It returns nil on success, or an ErrorInfo naming the schema
// owner with the missing fields, the leftover fields sorted by name, and any
// type notes.
func (e *Extractor) Finalize(name string) *ErrorInfo {
	if len(e.fields) == 0 && len(e.missing) == 0 && len(e.typeNotes) == 0 {
		return nil
	}
	extra := make([]string, 0, len(e.fields))
	for k := range e.fields {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	return &ErrorInfo{
		Name:          name,
		MissingFields: e.missing,
		ExtraFields:   extra,
		TypeNotes:     e.typeNotes,
	}
}

package manifest

import (
	"fmt"
	"math"
	"sort"

	"github.com/portico-dev/portico/internal/control"
)

// Reader consumes a manifest object field by field, mirroring the
// control-file extraction protocol: lookups remove fields from the object,
// missing required fields and type mismatches are recorded rather than
// returned, and Finalize aggregates everything into one ErrorInfo.
type Reader struct {
	fields  map[string]any
	missing []string
	notes   []string
}

// NewReader takes ownership of the object; the caller must not use it
// afterwards.
func NewReader(obj map[string]any) *Reader {
	return &Reader{fields: obj}
}

// Has reports whether a field is present without consuming it.
func (r *Reader) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

func (r *Reader) take(name string) (any, bool) {
	v, ok := r.fields[name]
	if ok {
		delete(r.fields, name)
	}
	return v, ok
}

// AddNote records a freeform diagnostic about a field value.
func (r *Reader) AddNote(note string) {
	r.notes = append(r.notes, note)
}

// AddTypeNote records that a field's value did not have the expected type.
func (r *Reader) AddTypeNote(name, expected string) {
	r.AddNote(fmt.Sprintf("%s should be %s", name, expected))
}

// RequiredString consumes a required string field.
func (r *Reader) RequiredString(name string) string {
	v, ok := r.take(name)
	if !ok {
		r.missing = append(r.missing, name)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.AddTypeNote(name, "a string")
		return ""
	}
	return s
}

// OptionalString consumes an optional string field, "" when absent.
func (r *Reader) OptionalString(name string) string {
	v, ok := r.take(name)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.AddTypeNote(name, "a string")
		return ""
	}
	return s
}

// OptionalStringOrArray consumes a field that may be a single string or an
// array of strings. Absent yields nil.
func (r *Reader) OptionalStringOrArray(name string) []string {
	v, ok := r.take(name)
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				r.AddTypeNote(name, "a string or an array of strings")
				return nil
			}
			out = append(out, s)
		}
		return out
	default:
		r.AddTypeNote(name, "a string or an array of strings")
		return nil
	}
}

// OptionalInt consumes an optional integer field, 0 when absent.
func (r *Reader) OptionalInt(name string) int {
	v, ok := r.take(name)
	if !ok {
		return 0
	}
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		r.AddTypeNote(name, "an integer")
		return 0
	}
	return int(f)
}

// OptionalBool consumes an optional boolean field, defaulting to def.
func (r *Reader) OptionalBool(name string, def bool) bool {
	v, ok := r.take(name)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		r.AddTypeNote(name, "a boolean")
		return def
	}
	return b
}

// OptionalArray consumes an optional array field, nil when absent.
func (r *Reader) OptionalArray(name string) []any {
	v, ok := r.take(name)
	if !ok {
		return nil
	}
	a, ok := v.([]any)
	if !ok {
		r.AddTypeNote(name, "an array")
		return nil
	}
	return a
}

// OptionalObject consumes an optional object field, nil when absent.
func (r *Reader) OptionalObject(name string) map[string]any {
	v, ok := r.take(name)
	if !ok {
		return nil
	}
	o, ok := v.(map[string]any)
	if !ok {
		r.AddTypeNote(name, "an object")
		return nil
	}
	return o
}

// Finalize checks that every field was consumed, every required field was
// present, and no type notes were recorded. Nil on success.
func (r *Reader) Finalize(name string) *control.ErrorInfo {
	if len(r.fields) == 0 && len(r.missing) == 0 && len(r.notes) == 0 {
		return nil
	}
	extra := make([]string, 0, len(r.fields))
	for k := range r.fields {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	return &control.ErrorInfo{
		Name:          name,
		MissingFields: r.missing,
		ExtraFields:   extra,
		TypeNotes:     r.notes,
	}
}

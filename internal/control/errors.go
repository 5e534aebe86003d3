package control

import (
	"fmt"
	"strings"
)

// ErrorInfo aggregates everything that went wrong while loading one
// package's metadata: a freeform grammar or resource message, or the
// missing/unexpected field lists produced by extraction, plus any
// human-readable type notes.
type ErrorInfo struct {
	// Name is the package the failure belongs to.
	Name          string
	Message       string
	MissingFields []string
	ExtraFields   []string
	TypeNotes     []string
}

func (e *ErrorInfo) Error() string {
	return fmt.Sprintf("while loading %s: %s", e.Name, e.summary())
}

func (e *ErrorInfo) summary() string {
	if e.Message != "" {
		first, _, _ := strings.Cut(e.Message, "\n")
		return first
	}
	var parts []string
	if len(e.MissingFields) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.MissingFields, ", "))
	}
	if len(e.ExtraFields) > 0 {
		parts = append(parts, "unexpected fields: "+strings.Join(e.ExtraFields, ", "))
	}
	if len(parts) == 0 && len(e.TypeNotes) > 0 {
		parts = append(parts, "invalid field values")
	}
	if len(parts) == 0 {
		return "unknown error"
	}
	return strings.Join(parts, "; ")
}

// Verbose renders the full multi-line report for debug output.
func (e *ErrorInfo) Verbose() string {
	var b strings.Builder
	fmt.Fprintf(&b, "while loading %s:", e.Name)
	if e.Message != "" {
		b.WriteString("\n" + e.Message)
	}
	if len(e.MissingFields) > 0 {
		b.WriteString("\nmissing required fields: " + strings.Join(e.MissingFields, ", "))
	}
	if len(e.ExtraFields) > 0 {
		b.WriteString("\nunexpected fields: " + strings.Join(e.ExtraFields, ", "))
	}
	for _, note := range e.TypeNotes {
		b.WriteString("\n" + note)
	}
	return b.String()
}

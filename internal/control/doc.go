// Package control parses the RFC-822-style paragraph format of CONTROL
// files: fields of the form "Name: value" with space-led continuation lines,
// grouped into paragraphs separated by blank lines. Comment lines start with
// '#'. It also provides the field-extraction protocol shared by every record
// constructor, aggregating missing and unexpected fields into an ErrorInfo
// instead of failing on the first problem.
package control

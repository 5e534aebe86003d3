// Package scaffold generates starter metadata for new packages. It powers
// the "portico create" command, producing either a portico.json manifest or
// a legacy CONTROL file with the name and version pre-filled.
package scaffold

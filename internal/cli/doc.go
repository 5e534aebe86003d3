// Package cli defines the Cobra command tree for the portico CLI. Each file
// in this package registers one top-level command (list, search, lint, etc.)
// with the root command. Command implementations delegate to internal packages
// for metadata loading and only handle flag parsing, I/O formatting, and user
// interaction.
package cli

// Package loader reads package descriptions out of package directories,
// preferring the portico.json manifest and falling back to the legacy CONTROL
// format. Loads never panic and never abort their batch: every directory
// yields either a package record or a control.ErrorInfo, with one exception:
// a directory carrying both formats is an unresolvable misconfiguration and
// terminates the process.
package loader

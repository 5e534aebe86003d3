package loader

import "github.com/charmbracelet/log"

// Report prints the failures of a batch load. At debug level every
// diagnostic is printed in full; otherwise each failed package gets one
// warning line and a single hint points at --debug, so a broken registry
// does not flood the output.
func (l *Loader) Report(results LoadResults) {
	if len(results.Errors) == 0 {
		return
	}
	if l.log.GetLevel() <= log.DebugLevel {
		for _, e := range results.Errors {
			l.log.Error(e.Verbose())
		}
		return
	}
	for _, e := range results.Errors {
		l.log.Warn("an error occurred while parsing package", "package", e.Name)
	}
	l.log.Warn("run with --debug for more information about the parse failures")
}

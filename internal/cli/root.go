package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/portico-dev/portico/internal/branding"
	"github.com/portico-dev/portico/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// logger is shared by every command. The --debug flag drops it to debug
// level, which also switches package load reports to full detail.
var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

var debugOutput bool

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` reads package metadata from registries of portico.json
manifests and legacy CONTROL files, listing, searching, and checking the
packages they describe.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugOutput {
			logger.SetLevel(log.DebugLevel)
		}
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugOutput, "debug", false, "Print full details for package parse failures")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

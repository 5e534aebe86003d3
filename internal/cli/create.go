package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/portico-dev/portico/internal/branding"
	"github.com/portico-dev/portico/internal/depspec"
	"github.com/portico-dev/portico/internal/pkgdesc"
	"github.com/portico-dev/portico/internal/scaffold"
)

var (
	createOutputDir     string
	createLegacyControl bool
)

var createCmd = &cobra.Command{
	Use:   "create <name> [version]",
	Short: "Scaffold a new package directory",
	Long: `Create a package directory with a starter portico.json manifest.

Examples:
  portico create zlib 1.3.1
  portico create my-lib --output-dir ./overlay/my-lib
  portico create my-lib --legacy-control`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createOutputDir, "output-dir", "", "Output directory (default: ./<name>)")
	createCmd.Flags().BoolVar(&createLegacyControl, "legacy-control", false, "Write a CONTROL file instead of a manifest")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	if _, err := depspec.ParsePackageName(name, "command line"); err != nil {
		return fmt.Errorf("invalid package name %q: names are lowercase letters, digits, and '-'", name)
	}

	version := "1.0.0"
	if len(args) > 1 {
		version = args[1]
		if err := pkgdesc.ValidateVersion(version, pkgdesc.SchemeRelaxed); err != nil {
			return fmt.Errorf("invalid version: %w", err)
		}
	}

	outDir := createOutputDir
	if outDir == "" {
		outDir = filepath.Join(".", name)
	}

	result, err := scaffold.Generate(outDir, name, version, createLegacyControl)
	if err != nil {
		return err
	}

	fmt.Printf("Created package %s at %s/\n", name, result.OutputDir)
	for _, f := range result.Files {
		fmt.Printf("  %s\n", f)
	}
	fmt.Println("\nNext steps:")
	fmt.Printf("  1. Edit %s to fill in the description and dependencies\n", filepath.Join(outDir, result.Files[0]))
	fmt.Printf("  2. Run '%s lint %s' to check the result\n", branding.CLIName(), outDir)
	return nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/portico-dev/portico/internal/loader"
	"github.com/portico-dev/portico/internal/pkgdesc"
)

var (
	searchJSON     bool
	searchOverlays []string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search packages across all configured sources",
	Long: `Search the packages provided by the configured registries and overlay
directories.

The query matches against package names, descriptions, and feature names
(case-insensitive substring).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	searchCmd.Flags().StringArrayVar(&searchOverlays, "overlay", nil, "Additional overlay directory (repeatable)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	results, err := collectPackages(searchOverlays)
	if err != nil {
		return err
	}

	var matched []loader.PackageLocation
	for _, loc := range results.Packages {
		if matchesPackage(loc.Package, query) {
			matched = append(matched, loc)
		}
	}

	if len(matched) == 0 {
		msg := "No packages found"
		if query != "" {
			msg += fmt.Sprintf(" matching %q", query)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}

	entries := packageEntries(matched)
	if searchJSON {
		return printEntriesJSON(cmd, entries)
	}
	return printEntriesTable(cmd, entries)
}

// matchesPackage returns true if the query matches the package name,
// description, or any feature name. Comparison is a case-insensitive
// substring match; an empty query matches everything.
func matchesPackage(p *pkgdesc.Package, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, f := range p.Features {
		if strings.Contains(strings.ToLower(f.Name), q) {
			return true
		}
	}
	return false
}

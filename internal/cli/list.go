package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/portico-dev/portico/internal/loader"
)

var (
	listJSON     bool
	listOverlays []string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every package the configured sources provide",
	Long: `List the packages provided by the configured registries and overlay
directories, with the version each source would serve.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringArrayVar(&listOverlays, "overlay", nil, "Additional overlay directory (repeatable)")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a loadable package for display.
type listEntry struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Path        string `json:"path"`
}

func runList(cmd *cobra.Command, args []string) error {
	results, err := collectPackages(listOverlays)
	if err != nil {
		return err
	}

	entries := packageEntries(results.Packages)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No packages found.")
		return nil
	}

	if listJSON {
		return printEntriesJSON(cmd, entries)
	}
	return printEntriesTable(cmd, entries)
}

func packageEntries(locations []loader.PackageLocation) []listEntry {
	entries := make([]listEntry, 0, len(locations))
	for _, loc := range locations {
		entries = append(entries, listEntry{
			Name:        loc.Package.Name,
			Version:     loc.Package.FullVersion(),
			Description: loc.Package.Description,
			Path:        loc.Path,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

func printEntriesTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tDESCRIPTION")
	for _, e := range entries {
		version := e.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, version, shortenText(e.Description, 60))
	}
	return w.Flush()
}

func printEntriesJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// shortenText collapses runs of whitespace and truncates to max runes so
// multi-line descriptions stay on one table row.
func shortenText(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

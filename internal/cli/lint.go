package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/portico-dev/portico/internal/fsys"
	"github.com/portico-dev/portico/internal/loader"
	"github.com/portico-dev/portico/internal/manifest"
	"github.com/portico-dev/portico/internal/pkgdesc"
)

var lintCmd = &cobra.Command{
	Use:   "lint <dir>...",
	Short: "Check package directories for metadata problems",
	Long: `Parse the metadata of one or more package directories and print every
problem found. A directory that is not itself a package is treated as a
registry or overlay root and each of its subdirectories is checked instead.

Manifests are also validated against the portico.json schema.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fs := fsys.OS()
	l := loader.New(fs, loader.Options{Logger: logger})

	failed := 0
	for _, arg := range args {
		for _, dir := range lintTargets(l, fs, arg) {
			if !lintPackageDir(out, l, dir) {
				failed++
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d package(s) failed lint", failed)
	}
	return nil
}

// lintTargets expands arg into the package directories it names: the
// directory itself when it carries package metadata, otherwise its visible
// subdirectories.
func lintTargets(l *loader.Loader, fs fsys.Filesystem, arg string) []string {
	if l.IsPackageDirectory(arg) {
		return []string{arg}
	}
	names, err := fs.ListDirectories(arg)
	if err != nil {
		return []string{arg}
	}
	var dirs []string
	for _, name := range names {
		if strings.HasPrefix(name, ".") {
			continue
		}
		dirs = append(dirs, filepath.Join(arg, name))
	}
	if len(dirs) == 0 {
		return []string{arg}
	}
	return dirs
}

// lintPackageDir checks one package directory, printing an OK line or the
// problems found. It returns false when the package failed.
func lintPackageDir(out io.Writer, l *loader.Loader, dir string) bool {
	var problems []string

	pkg, errInfo := l.LoadPackageDirectory(dir)
	if errInfo != nil {
		problems = append(problems, strings.Split(errInfo.Verbose(), "\n")...)
	}

	// Manifests are held to the published schema as well as the field
	// protocol.
	if data, err := fsys.OS().ReadFile(filepath.Join(dir, pkgdesc.ManifestFilename)); err == nil {
		result, err := manifest.Validate(data)
		if err != nil {
			problems = append(problems, err.Error())
		} else {
			for _, issue := range result.Issues {
				problems = append(problems, issue.String())
			}
		}
	}

	if len(problems) == 0 {
		fmt.Fprintf(out, "[ OK ] %s (%s@%s)\n", dir, pkg.Name, pkg.FullVersion())
		return true
	}

	fmt.Fprintf(out, "[FAIL] %s\n", dir)
	for _, p := range problems {
		fmt.Fprintf(out, "       %s\n", p)
	}
	return false
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "sheetscript",
	Short: "Forwards/Backwards evaluation core driver",
	Long: `sheetscript exercises the two-language spreadsheet evaluation core:

  Forwards  - the in-cell expression language (no statements, no assignment)
  Backwards - the imperative scripting language Forwards formulas can call
              into via Eval, and vice versa via EvalCell/ExpandRange

This binary has no file format or persistence of its own: "run" takes a
Backwards source file, and "eval" builds a sheet entirely from cellref=expr
pairs given on the command line.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

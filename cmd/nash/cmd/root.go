package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "nash",
	Short: "Nash scripting language interpreter",
	Long: `nash is the interpreter for Nash, a small scripting language built
around one core idea: a command pipeline is a first-class expression,
not a string shelled out to /bin/sh.

Nash scripts declare typed, statically-mutability-checked bindings, pipe
commands and files together with '=>' expressions, and capture a
stage's stderr or exit code inline. There is no REPL, no job control,
and no module system — every script is one file, run start to finish.`,
	Version: Version,
}

// Execute runs the root command, dispatching to whichever subcommand
// was named on the command line.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("nash version %s (commit %s, built %s)\n", Version, GitCommit, BuildDate))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

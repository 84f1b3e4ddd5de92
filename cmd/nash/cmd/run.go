package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/robert-mccausland/nash/internal/eval"
	"github.com/robert-mccausland/nash/internal/lexer"
	"github.com/robert-mccausland/nash/internal/parser"
	"github.com/robert-mccausland/nash/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	dumpAST   bool
	trace     bool
	stdinFlag string
)

var runCmd = &cobra.Command{
	Use:   "run <file> [script args...]",
	Short: "Run a Nash script",
	Long: `Execute a Nash script from a file.

Examples:
  # Run a script
  nash run deploy.nash

  # Run with an AST dump (for debugging)
  nash run --dump-ast deploy.nash

  # Feed the script a predeclared stdin binding
  nash run --stdin "$(cat input.txt)" filter.nash

  # Pass trailing arguments through to the script's args() builtin
  nash run backup.nash /var/log /var/www`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		code, err := runNash(args, os.Stdout, os.Stderr)
		if err != nil {
			return err
		}
		os.Exit(code)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST before running")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace each top-level statement as it runs")
	runCmd.Flags().StringVar(&stdinFlag, "stdin", "", "value bound to the script's predeclared stdin variable")
}

// runNash reads, parses, analyzes, and runs the script named by args[0],
// returning the process exit code the script should terminate with.
// args[1:] become the script's args() builtin. Split out of runCmd's
// RunE so tests can drive it without the process actually exiting.
func runNash(args []string, stdout, stderr io.Writer) (int, error) {
	filename := args[0]
	scriptArgs := args[1:]

	content, err := os.ReadFile(filename)
	if err != nil {
		return 1, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	prog, perrs := parser.ParseProgram(lexer.New(string(content)))
	if len(perrs) > 0 {
		for _, pe := range perrs {
			fmt.Fprintf(stderr, "error: %s at %s:%d:%d\n", pe.Message, filename, pe.Pos.Line, pe.Pos.Column)
		}
		return 1, fmt.Errorf("parsing failed with %d error(s)", len(perrs))
	}

	if errs := semantic.New().Analyze(prog); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(stderr, e.WithFile(filename).Error())
		}
		return 1, fmt.Errorf("semantic analysis failed with %d error(s)", len(errs))
	}

	if dumpAST {
		fmt.Fprintln(stdout, "AST:")
		fmt.Fprintln(stdout, prog.String())
		fmt.Fprintln(stdout)
	}

	if trace {
		fmt.Fprintf(stderr, "[trace] running %s\n", filename)
	}

	// File endpoints and glob() resolve relative to the interpreter
	// process's own working directory, not the script's location
	// (spec.md's file-endpoint rule), so WorkDir is left empty here.
	interp := eval.New(prog, stdout, stderr, "", scriptArgs, os.Getenv, stdinFlag)
	code, runErr := interp.Run(prog)
	if runErr != nil {
		fmt.Fprintln(stderr, runErr.Error())
		return 1, nil
	}
	return code, nil
}

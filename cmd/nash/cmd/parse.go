package cmd

import (
	"fmt"
	"os"

	"github.com/robert-mccausland/nash/internal/lexer"
	"github.com/robert-mccausland/nash/internal/parser"
	"github.com/spf13/cobra"
)

var parseExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Nash script and print its AST",
	Long: `Parse Nash source and print the resulting Abstract Syntax Tree.

If no file is provided, reads from stdin. Useful for debugging the
parser and grammar while developing the interpreter itself.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseExpr, "eval", "e", "", "parse inline code instead of reading from a file")
}

func runParse(_ *cobra.Command, args []string) error {
	var input string
	if parseExpr != "" {
		input = parseExpr
	} else {
		in, err := lexInput(args)
		if err != nil {
			return err
		}
		input = in
	}

	prog, perrs := parser.ParseProgram(lexer.New(input))
	if len(perrs) > 0 {
		fmt.Fprintln(os.Stderr, "Parser errors:")
		for _, pe := range perrs {
			fmt.Fprintf(os.Stderr, "  %s\n", pe.Error())
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(perrs))
	}

	fmt.Println(prog.String())
	return nil
}

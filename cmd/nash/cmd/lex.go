package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/robert-mccausland/nash/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexExpr    string
	lexShowPos bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Nash script and print the resulting tokens",
	Long: `Tokenize (lex) a Nash script and print the resulting tokens.

If no file is provided, reads from stdin. Useful for debugging the
lexer and inspecting how source text breaks down into tokens.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexExpr, "eval", "e", "", "tokenize inline code instead of reading from a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show each token's line:column position")
}

func runLex(_ *cobra.Command, args []string) error {
	input, err := lexInput(args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	for {
		tok := l.NextToken()
		if lexShowPos {
			fmt.Printf("%-12s %-20q %d:%d\n", tok.Type, tok.Literal, tok.Pos.Line, tok.Pos.Column)
		} else {
			fmt.Printf("%-12s %q\n", tok.Type, tok.Literal)
		}
		if tok.Type == lexer.EOF {
			break
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "error: %s at %d:%d\n", e.Message, e.Pos.Line, e.Pos.Column)
		}
		return fmt.Errorf("lexing produced %d error(s)", len(errs))
	}
	return nil
}

func lexInput(args []string) (string, error) {
	if lexExpr != "" {
		return lexExpr, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("error reading file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("error reading stdin: %w", err)
	}
	return string(data), nil
}

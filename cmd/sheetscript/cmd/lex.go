package cmd

import (
	"fmt"
	"os"

	"github.com/sheetlang/sheetlang/internal/lexer"
	"github.com/sheetlang/sheetlang/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexLang    string
	showPos    bool
	showType   bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Forwards or Backwards source and print the tokens",
	Long: `Tokenize (lex) a Forwards expression or a Backwards program and print
the resulting tokens, for debugging the lexer or understanding how source
text is scanned.

Examples:
  # Tokenize a Backwards script file
  sheetscript lex --lang backwards script.bw

  # Tokenize an inline Forwards cell expression
  sheetscript lex --lang forwards -e "A1 + B1 * 2"

  # Show token kinds and positions
  sheetscript lex --show-type --show-pos script.bw`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexSource,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline source instead of reading from file")
	lexCmd.Flags().StringVar(&lexLang, "lang", "backwards", `source language: "backwards" or "forwards"`)
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token kind names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only ERROR-kind tokens")
}

func lexSource(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}

	src := lexer.NewSource(filename, input)

	var next func() token.Token
	switch lexLang {
	case "backwards":
		l := lexer.NewBackwards(src)
		next = l.GetNextToken
	case "forwards":
		l := lexer.NewForwards(src)
		next = l.GetNextToken
	default:
		return fmt.Errorf(`unknown --lang %q, want "backwards" or "forwards"`, lexLang)
	}

	tokenCount, errorCount := 0, 0
	for {
		tok := next()
		if tok.Kind == token.ERROR {
			errorCount++
		} else if onlyErrors {
			if tok.Kind == token.END {
				break
			}
			continue
		}
		tokenCount++
		printToken(tok)
		if tok.Kind == token.END {
			break
		}
	}

	if onlyErrors && errorCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}
	_ = tokenCount
	return nil
}

func printToken(tok token.Token) {
	var output string
	if showType {
		output = fmt.Sprintf("[%-10s]", tok.Kind)
	}
	switch {
	case tok.Kind == token.END:
		output += " END"
	case tok.Kind == token.ERROR:
		output += fmt.Sprintf(" ILLEGAL: %q (%s)", tok.Text, tok.Message)
	case tok.Text == "":
		output += fmt.Sprintf(" %s", tok.Kind)
	default:
		output += fmt.Sprintf(" %q", tok.Text)
	}
	if showPos {
		output += fmt.Sprintf(" @%d:%d", tok.Position.Line, tok.Position.Column)
	}
	fmt.Fprintln(os.Stdout, output)
}

// readSource resolves "-e" (inline source) or a single file argument into
// (input, a display name for diagnostics).
func readSource(args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline source")
}

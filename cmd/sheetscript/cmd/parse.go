package cmd

import (
	"fmt"
	"os"

	"github.com/sheetlang/sheetlang/internal/bparser"
	"github.com/sheetlang/sheetlang/internal/fparser"
	"github.com/sheetlang/sheetlang/internal/lexer"
	"github.com/sheetlang/sheetlang/internal/logger"
	"github.com/sheetlang/sheetlang/internal/symtab"
	"github.com/spf13/cobra"
)

var (
	parseLang       string
	parseBaseCellRef string
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Forwards or Backwards source and print the AST",
	Long: `Parse (but do not run) a Forwards expression or Backwards program and
print its AST, for debugging the parser.

Examples:
  sheetscript parse --lang backwards script.bw
  sheetscript parse --lang forwards -e "A1 + B1"
  sheetscript parse --lang forwards --base B2 -e "A1"   # resolve relative refs from B2`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseSource,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline source instead of reading from file")
	parseCmd.Flags().StringVar(&parseLang, "lang", "backwards", `source language: "backwards" or "forwards"`)
	parseCmd.Flags().StringVar(&parseBaseCellRef, "base", "A1", "defining cell, for resolving Forwards relative cell references")
}

func parseSource(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}

	collector := &logger.CollectingLogger{}
	src := lexer.NewSource(filename, input)
	global := symtab.NewGlobal()

	switch parseLang {
	case "backwards":
		p := bparser.New(src, global, collector)
		prog := p.ParseProgram()
		reportDiagnostics(collector)
		fmt.Println(prog.String())

	case "forwards":
		baseRef, err := lexer.ParseCellRefText(parseBaseCellRef, 0, 0)
		if err != nil {
			return fmt.Errorf("invalid --base %q: %w", parseBaseCellRef, err)
		}
		baseCol, baseRow := baseRef.Resolve(0, 0)
		p := fparser.New(src, global, baseCol, baseRow, collector)
		expr := p.ParseExpression()
		reportDiagnostics(collector)
		fmt.Println(expr.String())

	default:
		return fmt.Errorf(`unknown --lang %q, want "backwards" or "forwards"`, parseLang)
	}

	if collector.HasLevel(logger.Error) || collector.HasLevel(logger.Fatal) {
		return fmt.Errorf("parsing failed")
	}
	return nil
}

func reportDiagnostics(c *logger.CollectingLogger) {
	for _, e := range c.Entries {
		fmt.Fprintln(os.Stderr, e.String())
	}
}

package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sheetlang/sheetlang/internal/engine"
	"github.com/sheetlang/sheetlang/internal/lexer"
	"github.com/sheetlang/sheetlang/internal/logger"
	"github.com/sheetlang/sheetlang/internal/sheet"
	"github.com/sheetlang/sheetlang/internal/stdlib"
	"github.com/sheetlang/sheetlang/internal/symtab"
	"github.com/spf13/cobra"
)

var evalSheetName string

var evalCmd = &cobra.Command{
	Use:   "eval <cellref>=<expr> [<cellref>=<expr> ...]",
	Short: "Build an in-memory sheet from cellref=expr arguments and print it",
	Long: `Build a sheet entirely from command-line arguments of the form
cellref=expr, recompute every cell, and print the results sorted by
position. This core has no file format or persistence, so this is the
whole of what "loading a sheet" means here (spec.md §1, §6).

Example:
  sheetscript eval A1=10 B1="A1 * 2" C1="A1 + B1"`,
	Args: cobra.MinimumNArgs(1),
	RunE: evalSheet,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVar(&evalSheetName, "sheet", "Sheet1", "sheet name used in diagnostics and CellFrame tracking")
}

func evalSheet(_ *cobra.Command, args []string) error {
	consoleLogger := logger.NewConsole(os.Stderr)
	global := symtab.NewGlobal()
	_, globals := stdlib.Install(global)

	sh := sheet.New(evalSheetName, nil)
	ctx := engine.NewContext(consoleLogger, nil, global, globals)
	ctx.Ext = &engine.SheetExtension{Sheet: sh}

	type coord struct{ col, row int }
	var coords []coord

	for _, arg := range args {
		refText, expr, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid argument %q, want cellref=expr", arg)
		}
		ref, err := lexer.ParseCellRefText(refText, 0, 0)
		if err != nil {
			return fmt.Errorf("invalid cell reference %q: %w", refText, err)
		}
		col, row := ref.Resolve(0, 0)
		sh.Put(col, row, expr)
		coords = append(coords, coord{col, row})
	}

	sort.Slice(coords, func(i, j int) bool {
		if coords[i].row != coords[j].row {
			return coords[i].row < coords[j].row
		}
		return coords[i].col < coords[j].col
	})

	failed := false
	for _, c := range coords {
		label := lexer.ColumnToString(c.col) + lexer.RowToLiteral(c.row)
		v, err := sh.EvalCellAt(ctx, c.col, c.row)
		if err != nil {
			fmt.Printf("%s: ERROR %s\n", label, err)
			failed = true
			continue
		}
		fmt.Printf("%s: %s\n", label, stdlib.DisplayString(v))
	}

	if failed {
		return fmt.Errorf("one or more cells failed to evaluate")
	}
	return nil
}

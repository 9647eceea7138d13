package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sheetlang/sheetlang/internal/bparser"
	"github.com/sheetlang/sheetlang/internal/debugger"
	"github.com/sheetlang/sheetlang/internal/engine"
	"github.com/sheetlang/sheetlang/internal/lexer"
	"github.com/sheetlang/sheetlang/internal/logger"
	"github.com/sheetlang/sheetlang/internal/stdlib"
	"github.com/sheetlang/sheetlang/internal/symtab"
	"github.com/spf13/cobra"
)

var breakAt []string

var debugCmd = &cobra.Command{
	Use:   "debug [file]",
	Short: "Run a Backwards script under the reference step-recording debugger",
	Long: `Run a Backwards script with internal/debugger.Recorder attached, printing
every recorded enter/step/breakpoint/error event once the run ends. This is not an
interactive TUI debugger -- it simply exercises the DebuggerHook contract
and prints the recorded trace, which is what this core offers plus a
starting point for a real front end (spec.md §4.8).

Examples:
  sheetscript debug script.bw
  sheetscript debug --break script.bw:5 script.bw`,
	Args: cobra.MaximumNArgs(1),
	RunE: debugScript,
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "debug inline source instead of reading from file")
	debugCmd.Flags().StringArrayVar(&breakAt, "break", nil, "breakpoint as file:line, repeatable")
}

func debugScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}

	consoleLogger := logger.NewConsole(os.Stderr)
	global := symtab.NewGlobal()
	_, globals := stdlib.Install(global)

	p := bparser.New(lexer.NewSource(filename, input), global, consoleLogger)
	prog := p.ParseProgram()

	rec := debugger.NewRecorder()
	for _, spec := range breakAt {
		source, lineText, ok := strings.Cut(spec, ":")
		if !ok {
			return fmt.Errorf("invalid --break %q, want file:line", spec)
		}
		line, err := strconv.Atoi(lineText)
		if err != nil {
			return fmt.Errorf("invalid --break %q: %w", spec, err)
		}
		rec.Break(source, line)
	}

	ctx := engine.NewContext(consoleLogger, rec, global, globals)
	ev := engine.NewEvaluator()

	result, runErr := ev.RunForValue(ctx, prog)

	for _, e := range rec.Events {
		fmt.Println(e.String())
	}

	if runErr != nil {
		return fmt.Errorf("execution failed: %w", runErr)
	}
	fmt.Println("result:", stdlib.DisplayString(result))
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/sheetlang/sheetlang/internal/bparser"
	"github.com/sheetlang/sheetlang/internal/debugger"
	"github.com/sheetlang/sheetlang/internal/engine"
	"github.com/sheetlang/sheetlang/internal/lexer"
	"github.com/sheetlang/sheetlang/internal/logger"
	"github.com/sheetlang/sheetlang/internal/stdlib"
	"github.com/sheetlang/sheetlang/internal/symtab"
	"github.com/sheetlang/sheetlang/internal/value"
	"github.com/spf13/cobra"
)

var (
	evalExpr   string
	dumpAST    bool
	traceSteps bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Backwards script",
	Long: `Execute a Backwards program from a file or inline source, printing its
top-level return value (if any).

Examples:
  sheetscript run script.bw
  sheetscript run -e "set x to 40 set x to x + 2 return x"
  sheetscript run --dump-ast script.bw
  sheetscript run --trace script.bw`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before running")
	runCmd.Flags().BoolVar(&traceSteps, "trace", false, "print the location of every executed statement once the run ends")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}

	consoleLogger := logger.NewConsole(os.Stderr)
	global := symtab.NewGlobal()
	_, globals := stdlib.Install(global)

	p := bparser.New(lexer.NewSource(filename, input), global, consoleLogger)
	prog := p.ParseProgram()

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(prog.String())
		fmt.Println()
	}

	var rec *debugger.Recorder
	var hook engine.DebuggerHook
	if traceSteps {
		rec = debugger.NewRecorder()
		hook = rec
	}

	ctx := engine.NewContext(consoleLogger, hook, global, globals)
	ev := engine.NewEvaluator()

	result, err := ev.RunForValue(ctx, prog)
	if rec != nil {
		for _, e := range rec.Events {
			if e.Kind == "step" {
				fmt.Fprintf(os.Stderr, "[trace] %s\n", e.Loc.Pos)
			}
		}
	}
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	if _, isNil := result.(value.Nil); !isNil {
		fmt.Println(stdlib.DisplayString(result))
	}
	return nil
}

package stdlib

import (
	"github.com/sheetlang/sheetlang/internal/bparser"
	"github.com/sheetlang/sheetlang/internal/engine"
	"github.com/sheetlang/sheetlang/internal/lexer"
	"github.com/sheetlang/sheetlang/internal/logger"
	"github.com/sheetlang/sheetlang/internal/token"
	"github.com/sheetlang/sheetlang/internal/value"
)

// registerMeta wires the two built-ins spec.md §4.6 calls out as
// self-referential: Eval re-enters the parser/evaluator on a string of
// Backwards source, and EnterDebugger suspends into the attached debugger
// hook, both against the very CallingContext the call came from.
func registerMeta(r *Registry) {
	r.Register("Eval", CategoryMeta, value.NewBuiltin("Eval", value.ArityUnaryWithContext, biEval))
	r.Register("EnterDebugger", CategoryMeta, value.NewBuiltin("EnterDebugger", value.ArityConstantWithContext, biEnterDebugger))
}

// biEval parses src as a fresh Backwards statement sequence against the
// calling context's own symbol table (so names it declares remain visible
// to later Eval calls and to the surrounding program), grows the global
// slot vector to match, and runs it in place. The evaluated program's
// return value, if any, becomes Eval's result; a program that falls off
// the end without a return yields Nil.
func biEval(ctx value.Context, args []value.Value) (value.Value, error) {
	cc, err := asContext(ctx)
	if err != nil {
		return nil, err
	}
	src, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	if cc.GlobalTable == nil {
		return nil, domainErr("Eval used outside a running program")
	}

	collector := &evalFailureLogger{inner: cc.Logger}
	p := bparser.New(lexer.NewSource("eval", src), cc.GlobalTable, collector)
	prog := p.ParseProgram()
	if collector.failed {
		return nil, domainErr("Eval: source failed to parse")
	}

	cc.GrowGlobals()

	ev := engine.NewEvaluator()
	result, err := ev.RunForValue(cc, prog)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// biEnterDebugger suspends the running program into its attached
// DebuggerHook, per spec.md §4.8; with no debugger attached it is a no-op.
func biEnterDebugger(ctx value.Context, _ []value.Value) (value.Value, error) {
	cc, err := asContext(ctx)
	if err != nil {
		return nil, err
	}
	if cc.Debugger == nil {
		return value.Nil{}, nil
	}
	loc := engine.Location{}
	if cell, ok := cc.TopCell(); ok {
		loc.Cell = cell
		loc.HasCell = true
	}
	action := cc.Debugger.OnBreakpoint(cc.Duplicate(), loc)
	if action == engine.ActionAbort {
		return nil, engine.NewError(engine.DebuggerAbort, loc.Pos, "aborted from EnterDebugger")
	}
	return value.Nil{}, nil
}

// evalFailureLogger forwards every logged line to the real logger (if any)
// while latching failed once an Error/Fatal entry is seen, so Eval can
// distinguish "parsed with only recovered warnings" from "parse recovery
// gave up so badly the result isn't worth running".
type evalFailureLogger struct {
	inner  logger.Logger
	failed bool
}

func (c *evalFailureLogger) Log(level logger.Level, message string, pos token.Position) {
	if level == logger.Error || level == logger.Fatal {
		c.failed = true
	}
	if c.inner != nil {
		c.inner.Log(level, message, pos)
	}
}

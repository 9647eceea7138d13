package engine

import (
	"github.com/sheetlang/sheetlang/internal/ast"
	"github.com/sheetlang/sheetlang/internal/token"
	"github.com/sheetlang/sheetlang/internal/value"
)

// Call invokes fn with args (spec.md §4.4 "Function call"). User functions
// get a fresh StackFrame sized to their parameter count, linked to the
// frame captured at the function value's creation time; native built-ins
// are dispatched by Arity class.
func (e *Evaluator) Call(ctx *CallingContext, fn *value.Function, args []value.Value, pos token.Position) (value.Value, error) {
	if fn.IsUser {
		return e.callUser(ctx, fn, args, pos)
	}
	return e.callBuiltin(ctx, fn, args, pos)
}

func (e *Evaluator) callUser(ctx *CallingContext, fn *value.Function, args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, NewError(TypeMismatch, pos, "%s expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}
	body, ok := fn.Body.(*ast.Block)
	if !ok {
		return nil, NewError(TypeMismatch, pos, "%s has no executable body", fn.Name)
	}

	var captured *StackFrame
	if fn.Captured != nil {
		captured, _ = fn.Captured.(*StackFrame)
	}

	frame := &StackFrame{
		Slots:    append([]value.Value(nil), args...),
		Captured: captured,
		CallSite: pos,
	}

	ctx.PushContext(frame)
	defer ctx.PopContext()

	if ctx.Debugger != nil {
		loc := Location{Pos: pos, FuncName: fn.Name}
		if cell, ok := ctx.TopCell(); ok {
			loc.Cell, loc.HasCell = cell, true
		}
		if ctx.Debugger.OnEnter(ctx.Duplicate(), loc) == ActionAbort {
			return nil, NewError(DebuggerAbort, pos, "aborted by debugger")
		}
	}

	sig, err := e.ExecStmt(ctx, body)
	if err != nil {
		if ee, ok := err.(*EvaluationError); ok && ctx.Debugger != nil {
			loc := Location{Pos: ee.Pos, FuncName: fn.Name}
			if cell, ok := ctx.TopCell(); ok {
				loc.Cell, loc.HasCell = cell, true
			}
			if ctx.Debugger.OnError(ctx.Duplicate(), loc, ee) == ActionAbort {
				return nil, NewError(DebuggerAbort, ee.Pos, "aborted by debugger")
			}
		}
		return nil, err
	}
	if sig.kind == sigReturn {
		return sig.value, nil
	}
	return value.Nil{}, nil
}

func (e *Evaluator) callBuiltin(ctx *CallingContext, fn *value.Function, args []value.Value, pos token.Position) (value.Value, error) {
	want := fn.Arity()
	if want >= 0 && len(args) != want {
		return nil, NewError(TypeMismatch, pos, "%s expects %d argument(s), got %d", fn.Name, want, len(args))
	}
	if fn.Builtin == nil {
		return nil, NewError(TypeMismatch, pos, "%s has no implementation", fn.Name)
	}
	v, err := fn.Builtin(ctx, args)
	if err != nil {
		if ee, ok := err.(*EvaluationError); ok {
			return nil, ee
		}
		return nil, NewError(TypeMismatch, pos, "%s", err)
	}
	return v, nil
}

// NewClosureFrame is the constructor a function-literal-producing statement
// uses to build the value.Function.Captured payload: the currently active
// StackFrame, kept alive thereafter purely by the closure's own reference
// (spec.md §8 "Lexical capture" — the defining frame survives its own
// call's return as long as a closure still points to it).
func NewClosureFrame(ctx *CallingContext) *StackFrame {
	return ctx.CurrentFrame
}

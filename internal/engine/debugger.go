package engine

import "github.com/sheetlang/sheetlang/internal/token"

// Location identifies one point in the evaluation the debugger hooks fire
// at: the statement or expression position, plus the cell currently being
// recomputed, if any (spec.md §4.8).
type Location struct {
	Pos      token.Position
	Cell     CellFrame
	HasCell  bool
	FuncName string // "" at top level
}

// DebugAction is what a DebuggerHook callback asks the evaluator to do
// next (spec.md §4.8 "the hook controls whether evaluation continues,
// steps, or aborts").
type DebugAction int

const (
	// ActionContinue resumes normal evaluation.
	ActionContinue DebugAction = iota
	// ActionStep requests an onStep callback before the next statement.
	ActionStep
	// ActionAbort unwinds the current evaluation with a DebuggerAbort error.
	ActionAbort
)

// DebuggerHook is the reference point spec.md §4.8 describes: a set of
// callbacks consulted at statement boundaries, on breakpoints, and on
// errors, each able to redirect control flow via its returned DebugAction.
// A CallingContext with a nil Debugger runs at full speed with none of
// these checks performed.
type DebuggerHook interface {
	// OnEnter fires when a function body (or the top-level program) is
	// about to start executing, with a *duplicated* CallingContext (spec.md
	// §4.5) so the hook can run arbitrary Backwards code (e.g. to print
	// locals) without perturbing the suspended evaluation.
	OnEnter(ctx *CallingContext, loc Location) DebugAction
	// OnStep fires before each statement executes.
	OnStep(ctx *CallingContext, loc Location) DebugAction
	// OnBreakpoint fires when evaluation reaches a statement previously
	// marked as a breakpoint (set out of band; this package only calls the
	// hook, it does not track breakpoint positions itself).
	OnBreakpoint(ctx *CallingContext, loc Location) DebugAction
	// OnError fires when an EvaluationError is about to propagate, letting
	// the hook inspect state before the stack unwinds. Its DebugAction is
	// honored the same way as OnStep's.
	OnError(ctx *CallingContext, loc Location, err *EvaluationError) DebugAction
}

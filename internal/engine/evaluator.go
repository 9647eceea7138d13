package engine

import (
	"github.com/sheetlang/sheetlang/internal/ast"
	"github.com/sheetlang/sheetlang/internal/token"
	"github.com/sheetlang/sheetlang/internal/value"
)

// signalKind tags what an executed statement is asking its enclosing
// construct to do: keep going, break/continue the nearest loop, or unwind
// to the nearest function entry with a return value (spec.md §4.4).
type signalKind int

const (
	sigNone signalKind = iota
	sigBreak
	sigContinue
	sigReturn
)

type signal struct {
	kind  signalKind
	value value.Value
}

var noSignal = signal{kind: sigNone}

// Evaluator walks an AST against a CallingContext. It holds no state of its
// own; everything mutable lives on the CallingContext, so the zero value is
// ready to use and safe to share across concurrent evaluations of
// independent contexts.
type Evaluator struct{}

// NewEvaluator returns a ready-to-use Evaluator.
func NewEvaluator() *Evaluator { return &Evaluator{} }

// Run executes a parsed Backwards program in a fresh top-level StackFrame:
// the declarations in prog.Functions are executed first, binding each name
// to its Function value, and then the top-level body runs.
func (e *Evaluator) Run(ctx *CallingContext, prog *ast.Program, slots int) error {
	frame := &StackFrame{Slots: make([]value.Value, slots)}
	for i := range frame.Slots {
		frame.Slots[i] = value.Nil{}
	}
	ctx.PushContext(frame)
	defer ctx.PopContext()

	if ctx.Debugger != nil {
		if ctx.Debugger.OnEnter(ctx.Duplicate(), Location{Pos: prog.Pos()}) == ActionAbort {
			return NewError(DebuggerAbort, prog.Pos(), "aborted by debugger")
		}
	}

	// Top-level functions are bound to their globals before the body runs,
	// so mutual recursion and forward references resolve regardless of
	// declaration order (spec.md §4.2 grammar: functionDecl* precedes the
	// statement sequence).
	for _, fd := range prog.Functions {
		if _, err := e.ExecStmt(ctx, fd); err != nil {
			return err
		}
	}

	sig, err := e.ExecStmt(ctx, prog.Body)
	if err != nil {
		return err
	}
	_ = sig // a bare "return" at top level simply ends the program
	return nil
}

// RunForValue runs prog the same way Run does, but in a frame of its own
// with no local slots (prog is assumed to have been parsed with no
// enclosing scope, as internal/stdlib's Eval built-in does) and returns
// whatever value the program's top-level "return" produced, or Nil if it
// ran off the end without one.
func (e *Evaluator) RunForValue(ctx *CallingContext, prog *ast.Program) (value.Value, error) {
	frame := &StackFrame{}
	ctx.PushContext(frame)
	defer ctx.PopContext()

	for _, fd := range prog.Functions {
		if _, err := e.ExecStmt(ctx, fd); err != nil {
			return nil, err
		}
	}

	sig, err := e.ExecStmt(ctx, prog.Body)
	if err != nil {
		return nil, err
	}
	if sig.kind == sigReturn {
		return sig.value, nil
	}
	return value.Nil{}, nil
}

// ExecStmt executes one statement, returning a control signal for loops
// and function calls to interpret.
func (e *Evaluator) ExecStmt(ctx *CallingContext, s ast.Statement) (signal, error) {
	if ctx.Debugger != nil {
		action := ctx.Debugger.OnStep(ctx, Location{Pos: s.Pos()})
		if action == ActionAbort {
			return noSignal, NewError(DebuggerAbort, s.Pos(), "aborted by debugger")
		}
	}

	switch st := s.(type) {
	case *ast.Block:
		for _, inner := range st.Stmts {
			sig, err := e.ExecStmt(ctx, inner)
			if err != nil {
				return noSignal, err
			}
			if sig.kind != sigNone {
				return sig, nil
			}
		}
		return noSignal, nil

	case *ast.Empty:
		return noSignal, nil

	case *ast.Assign:
		v, err := e.EvalExpr(ctx, st.Expr)
		if err != nil {
			return noSignal, err
		}
		if err := e.assign(ctx, st.Target, v); err != nil {
			return noSignal, err
		}
		return noSignal, nil

	case *ast.If:
		cond, err := e.EvalExpr(ctx, st.Cond)
		if err != nil {
			return noSignal, err
		}
		if truthy(cond) {
			return e.ExecStmt(ctx, st.Then)
		}
		for _, ei := range st.ElseIfs {
			c, err := e.EvalExpr(ctx, ei.Cond)
			if err != nil {
				return noSignal, err
			}
			if truthy(c) {
				return e.ExecStmt(ctx, ei.Then)
			}
		}
		if st.Else != nil {
			return e.ExecStmt(ctx, st.Else)
		}
		return noSignal, nil

	case *ast.While:
		for {
			cond, err := e.EvalExpr(ctx, st.Cond)
			if err != nil {
				return noSignal, err
			}
			if !truthy(cond) {
				return noSignal, nil
			}
			sig, err := e.ExecStmt(ctx, st.Body)
			if err != nil {
				return noSignal, err
			}
			switch sig.kind {
			case sigBreak:
				return noSignal, nil
			case sigReturn:
				return sig, nil
			}
		}

	case *ast.For:
		from, err := e.EvalExpr(ctx, st.From)
		if err != nil {
			return noSignal, err
		}
		to, err := e.EvalExpr(ctx, st.To)
		if err != nil {
			return noSignal, err
		}
		var step value.Value = value.FloatFromInt(1)
		if st.Step != nil {
			step, err = e.EvalExpr(ctx, st.Step)
			if err != nil {
				return noSignal, err
			}
		}
		fromF, ok1 := from.(value.Float)
		toF, ok2 := to.(value.Float)
		stepF, ok3 := step.(value.Float)
		if !ok1 || !ok2 || !ok3 {
			return noSignal, NewError(TypeMismatch, st.Pos(), "for loop bounds must be numeric")
		}
		descending := stepF.Cmp(value.FloatFromInt(0)) < 0
		cur := fromF
		for {
			if descending {
				if cur.Cmp(toF) < 0 {
					break
				}
			} else {
				if cur.Cmp(toF) > 0 {
					break
				}
			}
			if err := e.assign(ctx, st.Var, cur); err != nil {
				return noSignal, err
			}
			sig, err := e.ExecStmt(ctx, st.Body)
			if err != nil {
				return noSignal, err
			}
			if sig.kind == sigBreak {
				return noSignal, nil
			}
			if sig.kind == sigReturn {
				return sig, nil
			}
			cur = cur.Add(stepF)
		}
		return noSignal, nil

	case *ast.ExprStatement:
		_, err := e.EvalExpr(ctx, st.Expr)
		return noSignal, err

	case *ast.Return:
		if st.Expr == nil {
			return signal{kind: sigReturn, value: value.Nil{}}, nil
		}
		v, err := e.EvalExpr(ctx, st.Expr)
		if err != nil {
			return noSignal, err
		}
		return signal{kind: sigReturn, value: v}, nil

	case *ast.Break:
		return signal{kind: sigBreak}, nil

	case *ast.Continue:
		return signal{kind: sigContinue}, nil

	case *ast.FunctionDecl:
		fn := value.NewUserFunction(st.Name, st.Params, st.Body, NewClosureFrame(ctx))
		if st.Target != nil {
			if err := e.assign(ctx, st.Target, fn); err != nil {
				return noSignal, err
			}
		}
		return noSignal, nil

	default:
		return noSignal, NewError(TypeMismatch, s.Pos(), "unsupported statement %T", s)
	}
}

func (e *Evaluator) assign(ctx *CallingContext, target ast.Lvalue, v value.Value) error {
	switch t := target.(type) {
	case *ast.GlobalSlot:
		if t.Index < 0 || t.Index >= len(ctx.Globals) {
			return NewError(TypeMismatch, t.Pos(), "global index %d out of range", t.Index)
		}
		ctx.Globals[t.Index] = v
		return nil
	case *ast.LocalSlot:
		ctx.CurrentFrame.assign(t.Depth, t.Slot, v)
		return nil
	case *ast.IndexSlot:
		container, err := e.EvalExpr(ctx, t.Container)
		if err != nil {
			return err
		}
		key, err := e.EvalExpr(ctx, t.Key)
		if err != nil {
			return err
		}
		return assignIndex(t.Pos(), container, key, v)
	default:
		return NewError(TypeMismatch, target.Pos(), "unsupported assignment target %T", target)
	}
}

func assignIndex(pos token.Position, container, key, v value.Value) error {
	switch c := container.(type) {
	case *value.Array:
		idx, ok := asIndex(key)
		if !ok {
			return NewError(TypeMismatch, pos, "array index must be an integer")
		}
		if !c.Set(idx, v) {
			return NewError(DomainError, pos, "array index %d out of range", idx)
		}
		return nil
	case *value.Dictionary:
		if err := c.Set(key, v); err != nil {
			return NewError(TypeMismatch, pos, "%s", err)
		}
		return nil
	default:
		return NewError(TypeMismatch, pos, "cannot index into %s", container.TypeName())
	}
}

// EvalExpr evaluates one expression node to a Value.
func (e *Evaluator) EvalExpr(ctx *CallingContext, x ast.Expression) (value.Value, error) {
	switch n := x.(type) {
	case *ast.Constant:
		return n.Value, nil

	case *ast.GlobalRead:
		if n.Index < 0 || n.Index >= len(ctx.Globals) {
			return nil, NewError(TypeMismatch, n.Position, "global index %d out of range", n.Index)
		}
		return ctx.Globals[n.Index], nil

	case *ast.ScopeRead:
		return ctx.CurrentFrame.resolve(n.Depth, n.Slot), nil

	case *ast.BuildArray:
		arr := value.NewArray()
		for _, el := range n.Elements {
			v, err := e.EvalExpr(ctx, el)
			if err != nil {
				return nil, err
			}
			arr.PushBack(v)
		}
		return arr, nil

	case *ast.BuildDictionary:
		dict := value.NewDictionary()
		for _, p := range n.Pairs {
			k, err := e.EvalExpr(ctx, p.Key)
			if err != nil {
				return nil, err
			}
			v, err := e.EvalExpr(ctx, p.Value)
			if err != nil {
				return nil, err
			}
			if err := dict.Set(k, v); err != nil {
				return nil, NewError(TypeMismatch, n.Position, "%s", err)
			}
		}
		return dict, nil

	case *ast.FunctionCall:
		callee, err := e.EvalExpr(ctx, n.Callee)
		if err != nil {
			return nil, err
		}
		fn, ok := callee.(*value.Function)
		if !ok {
			return nil, NewError(TypeMismatch, n.Position, "%s is not callable", callee.TypeName())
		}
		args := make([]value.Value, len(n.Args))
		for i, a := range n.Args {
			v, err := e.EvalExpr(ctx, a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return e.Call(ctx, fn, args, n.Position)

	case *ast.Index:
		container, err := e.EvalExpr(ctx, n.Container)
		if err != nil {
			return nil, err
		}
		key, err := e.EvalExpr(ctx, n.Key)
		if err != nil {
			return nil, err
		}
		return readIndex(n.Position, container, key)

	case *ast.Unary:
		v, err := e.EvalExpr(ctx, n.Child)
		if err != nil {
			return nil, err
		}
		return evalUnary(n.Position, n.Op, v)

	case *ast.Binary:
		l, err := e.EvalExpr(ctx, n.Left)
		if err != nil {
			return nil, err
		}
		if n.Op == ast.OpAnd || n.Op == ast.OpOr {
			lf, ok := l.(value.Float)
			if !ok {
				return nil, NewError(TypeMismatch, n.Position, "and/or require numeric operands")
			}
			left := !lf.Equal(value.FloatFromInt(0))
			if n.Op == ast.OpAnd && !left {
				return value.FloatFromInt(0), nil
			}
			if n.Op == ast.OpOr && left {
				return value.FloatFromInt(1), nil
			}
			r, err := e.EvalExpr(ctx, n.Right)
			if err != nil {
				return nil, err
			}
			rf, ok := r.(value.Float)
			if !ok {
				return nil, NewError(TypeMismatch, n.Position, "and/or require numeric operands")
			}
			if !rf.Equal(value.FloatFromInt(0)) {
				return value.FloatFromInt(1), nil
			}
			return value.FloatFromInt(0), nil
		}
		r, err := e.EvalExpr(ctx, n.Right)
		if err != nil {
			return nil, err
		}
		return evalBinary(n.Position, n.Op, l, r)

	case *ast.Ternary:
		cond, err := e.EvalExpr(ctx, n.A)
		if err != nil {
			return nil, err
		}
		if truthy(cond) {
			return e.EvalExpr(ctx, n.B)
		}
		return e.EvalExpr(ctx, n.C)

	case *ast.CellReference:
		return e.evalCellReference(ctx, n)

	case *ast.CellRangeExpr:
		return e.evalCellRange(ctx, n)

	default:
		return nil, NewError(TypeMismatch, x.Pos(), "unsupported expression %T", x)
	}
}

func truthy(v value.Value) bool {
	switch t := v.(type) {
	case value.Float:
		return !t.Equal(value.FloatFromInt(0))
	case value.String:
		return t.Len() > 0
	case value.Nil:
		return false
	default:
		return true
	}
}

func asIndex(v value.Value) (int, bool) {
	f, ok := v.(value.Float)
	if !ok {
		return 0, false
	}
	i := f.Decimal().IntPart()
	return int(i), true
}

// baseCell reports the (col,row) a relative CellRef/CellRange in the
// expression currently being evaluated resolves against: the cell on top
// of the CellFrame stack, i.e. the one EvalCellAt pushed before parsing
// and evaluating its own formula (spec.md §4.7 step 4).
func baseCell(ctx *CallingContext, pos token.Position) (col, row int, err error) {
	frame, ok := ctx.TopCell()
	if !ok {
		return 0, 0, NewError(DomainError, pos, "cell reference used outside of spreadsheet evaluation")
	}
	return frame.Col, frame.Row, nil
}

// evalCellReference resolves a single cell reference against the
// currently-evaluating cell's position and recomputes (or fetches the
// cached value of) the target cell via the attached CellAccessor.
func (e *Evaluator) evalCellReference(ctx *CallingContext, n *ast.CellReference) (value.Value, error) {
	baseCol, baseRow, err := baseCell(ctx, n.Position)
	if err != nil {
		return nil, err
	}
	if ctx.Ext == nil || ctx.Ext.Sheet == nil {
		return nil, NewError(DomainError, n.Position, "no spreadsheet attached to resolve %s", n.Ref.String(baseCol, baseRow))
	}
	col, row := n.Ref.Resolve(baseCol, baseRow)
	return ctx.Ext.Sheet.EvalCellAt(ctx, col, row)
}

// evalCellRange resolves a rectangular cell range into the row-major array
// of its member cells' values (spec.md §4.6 "range expansion").
func (e *Evaluator) evalCellRange(ctx *CallingContext, n *ast.CellRangeExpr) (value.Value, error) {
	baseCol, baseRow, err := baseCell(ctx, n.Position)
	if err != nil {
		return nil, err
	}
	if ctx.Ext == nil || ctx.Ext.Sheet == nil {
		return nil, NewError(DomainError, n.Position, "no spreadsheet attached to resolve a cell range")
	}
	col0, row0, col1, row1 := n.Range.Resolve(baseCol, baseRow)
	return ctx.Ext.Sheet.ExpandRangeAt(ctx, col0, row0, col1, row1)
}

func readIndex(pos token.Position, container, key value.Value) (value.Value, error) {
	switch c := container.(type) {
	case *value.Array:
		idx, ok := asIndex(key)
		if !ok {
			return nil, NewError(TypeMismatch, pos, "array index must be an integer")
		}
		v, ok := c.Get(idx)
		if !ok {
			return nil, NewError(DomainError, pos, "array index %d out of range", idx)
		}
		return v, nil
	case *value.Dictionary:
		v, ok := c.Get(key)
		if !ok {
			return value.Nil{}, nil
		}
		return v, nil
	default:
		return nil, NewError(TypeMismatch, pos, "cannot index into %s", container.TypeName())
	}
}

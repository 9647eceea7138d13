package engine

import (
	"github.com/sheetlang/sheetlang/internal/logger"
	"github.com/sheetlang/sheetlang/internal/symtab"
	"github.com/sheetlang/sheetlang/internal/token"
	"github.com/sheetlang/sheetlang/internal/value"
)

// StackFrame is a runtime activation record (spec.md §3 StackFrame): a
// dense slots vector, the call site for diagnostics, and Captured — the
// lexically enclosing frame that was active when this function's value was
// created, kept alive for closures even after that frame's own call has
// returned (spec.md §8 "Lexical capture" scenario).
type StackFrame struct {
	Slots    []value.Value
	Captured *StackFrame // lexical parent at definition time; nil for top-level functions
	Caller   *StackFrame // dynamic caller, for diagnostics/stack traces only
	CallSite token.Position
}

// resolve walks `depth` Captured links outward from f and returns that
// frame's slot value, per the (scopeDepth, slot) addressing spec.md §4.3
// assigns at parse time.
func (f *StackFrame) resolve(depth, slot int) value.Value {
	cur := f
	for i := 0; i < depth; i++ {
		if cur.Captured == nil {
			return value.Nil{}
		}
		cur = cur.Captured
	}
	if slot < 0 || slot >= len(cur.Slots) {
		return value.Nil{}
	}
	return cur.Slots[slot]
}

func (f *StackFrame) assign(depth, slot int, v value.Value) {
	cur := f
	for i := 0; i < depth; i++ {
		if cur.Captured == nil {
			return
		}
		cur = cur.Captured
	}
	if slot < 0 {
		return
	}
	// A function's frame starts out holding only its arguments; a local
	// introduced by assignment gets its slot on first write.
	for len(cur.Slots) <= slot {
		cur.Slots = append(cur.Slots, value.Nil{})
	}
	cur.Slots[slot] = v
}

// CellFrame marks one cell currently under evaluation, used as the
// path-based cycle-detection stack (spec.md §3 CellFrame, §4.7).
type CellFrame struct {
	Col, Row int
	Sheet    string
}

// CellAccessor is the minimal surface the engine needs from a spreadsheet
// to implement EvalCell/ExpandRange (spec.md §4.6), defined here (rather
// than importing internal/sheet) so internal/sheet can depend on
// internal/engine without a cycle: internal/sheet.Spreadsheet implements
// this interface structurally.
type CellAccessor interface {
	// EvalCellAt recomputes (and returns) the value of the cell at (col,
	// row) at the context's current generation, resolving relative
	// references against (col, row) itself as the base.
	EvalCellAt(ctx *CallingContext, col, row int) (value.Value, error)
	// ExpandRangeAt returns the row-major array of values in the rectangle
	// bounded by (col0,row0)-(col1,row1), inclusive.
	ExpandRangeAt(ctx *CallingContext, col0, row0, col1, row1 int) (*value.Array, error)
}

// SheetExtension bundles the Forwards-only fields spec.md §4.5 describes
// ("in the Forwards extension"): active generation, sheet pointer, and the
// cell-frame cycle-detection stack. Composed into CallingContext rather
// than modeled via the original's CallingContext subclassing (spec.md §9
// REDESIGN FLAGS).
type SheetExtension struct {
	Generation uint64
	Sheet      CellAccessor
	Cells      []CellFrame
}

// CallingContext bundles everything threaded through every evaluation
// (spec.md §4.5, Glossary "CallingContext"): logger, debugger hook, the
// current stack frame, global storage, and — when evaluating Forwards
// cells — a SheetExtension.
type CallingContext struct {
	Logger   logger.Logger
	Debugger DebuggerHook

	CurrentFrame *StackFrame
	Globals      []value.Value

	// GlobalTable is the live symtab.Global the running program's globals
	// were resolved against; Eval (internal/stdlib) reuses it so dynamically
	// parsed source sees the same names, growing Globals to match when
	// Eval's source declares new ones.
	GlobalTable *symtab.Global

	// RoundMode/Precision are the global numeric state spec.md §4.6's
	// GetRoundMode/SetRoundMode/GetDefaultPrecision/SetDefaultPrecision
	// operate on.
	RoundMode        value.RoundMode
	DefaultPrecision int32

	Ext *SheetExtension // nil when running Backwards with no attached sheet

	// scopes is the auxiliary stack PushScope/PopScope/TopScope manage: the
	// Eval built-in parses and runs new code against whatever scope is on
	// top, so dynamically-evaluated code resolves globals correctly without
	// leaking new locals into the caller's own frame.
	scopes []*StackFrame
}

// NewContext builds a fresh top-level CallingContext seeded with the given
// global table and initial global values (as produced by
// internal/stdlib.Install).
func NewContext(log logger.Logger, dbg DebuggerHook, globalTable *symtab.Global, globals []value.Value) *CallingContext {
	return &CallingContext{
		Logger:           log,
		Debugger:         dbg,
		GlobalTable:      globalTable,
		Globals:          append([]value.Value(nil), globals...),
		DefaultPrecision: value.DefaultPrecision,
	}
}

// GrowGlobals extends c.Globals with Nil slots so its length matches
// GlobalTable's current count, after Eval's parse has interned new names.
func (c *CallingContext) GrowGlobals() {
	if c.GlobalTable == nil {
		return
	}
	for len(c.Globals) < c.GlobalTable.Count() {
		c.Globals = append(c.Globals, value.Nil{})
	}
}

// PushContext activates newFrame as CurrentFrame, linking it to the
// previous one via Caller (spec.md §4.5/§4.4 "a fresh StackFrame is
// pushed").
func (c *CallingContext) PushContext(newFrame *StackFrame) {
	newFrame.Caller = c.CurrentFrame
	c.CurrentFrame = newFrame
}

// PopContext restores the previous CurrentFrame.
func (c *CallingContext) PopContext() {
	if c.CurrentFrame != nil {
		c.CurrentFrame = c.CurrentFrame.Caller
	}
}

// TopScope, PushScope, PopScope manage the auxiliary scope stack.
func (c *CallingContext) TopScope() *StackFrame {
	if len(c.scopes) == 0 {
		return c.CurrentFrame
	}
	return c.scopes[len(c.scopes)-1]
}

func (c *CallingContext) PushScope(f *StackFrame) {
	c.scopes = append(c.scopes, f)
}

func (c *CallingContext) PopScope() {
	if len(c.scopes) > 0 {
		c.scopes = c.scopes[:len(c.scopes)-1]
	}
}

// PushCell and PopCell maintain the cycle-detection path (spec.md §4.7).
// PushCell reports a CircularReference error, with the cycle path, if
// (col,row) is already on the stack.
func (c *CallingContext) PushCell(col, row int, sheetName string, pos token.Position) error {
	if c.Ext == nil {
		c.Ext = &SheetExtension{}
	}
	for _, f := range c.Ext.Cells {
		if f.Col == col && f.Row == row && f.Sheet == sheetName {
			path := append(append([]CellFrame(nil), c.Ext.Cells...), CellFrame{Col: col, Row: row, Sheet: sheetName})
			return NewCircular(pos, path)
		}
	}
	c.Ext.Cells = append(c.Ext.Cells, CellFrame{Col: col, Row: row, Sheet: sheetName})
	return nil
}

func (c *CallingContext) PopCell() {
	if c.Ext != nil && len(c.Ext.Cells) > 0 {
		c.Ext.Cells = c.Ext.Cells[:len(c.Ext.Cells)-1]
	}
}

// TopCell returns the cell currently being evaluated, if any.
func (c *CallingContext) TopCell() (CellFrame, bool) {
	if c.Ext == nil || len(c.Ext.Cells) == 0 {
		return CellFrame{}, false
	}
	return c.Ext.Cells[len(c.Ext.Cells)-1], true
}

// Duplicate produces the deep-copy-of-scopes, shallow-share-of-sheet
// CallingContext the debugger needs (spec.md §4.5): a Backwards function
// started by the debugger must not be able to perturb the suspended
// program's own frames/globals, but does observe the same sheet/generation.
func (c *CallingContext) Duplicate() *CallingContext {
	dup := &CallingContext{
		Logger:           c.Logger,
		Debugger:         c.Debugger,
		RoundMode:        c.RoundMode,
		DefaultPrecision: c.DefaultPrecision,
		GlobalTable:      c.GlobalTable,
	}
	dup.Globals = append([]value.Value(nil), c.Globals...)
	dup.CurrentFrame = deepCopyFrame(c.CurrentFrame)
	if c.Ext != nil {
		dup.Ext = &SheetExtension{
			Generation: c.Ext.Generation,
			Sheet:      c.Ext.Sheet, // shared: read/write to the actual sheet is intentional
			Cells:      append([]CellFrame(nil), c.Ext.Cells...),
		}
	}
	for _, s := range c.scopes {
		dup.scopes = append(dup.scopes, deepCopyFrame(s))
	}
	return dup
}

func deepCopyFrame(f *StackFrame) *StackFrame {
	if f == nil {
		return nil
	}
	cp := &StackFrame{
		Slots:    append([]value.Value(nil), f.Slots...),
		CallSite: f.CallSite,
	}
	// Captured frames are shared, not deep-copied: they represent already-
	// closed-over lexical state from functions that are not themselves
	// suspended, so mutating them through the duplicate would be visible to
	// the original program anyway once it resumes and calls the same
	// closure again. Only the live call chain (Caller) needs isolation.
	cp.Captured = f.Captured
	cp.Caller = deepCopyFrame(f.Caller)
	return cp
}

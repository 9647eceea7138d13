package engine

import (
	"github.com/sheetlang/sheetlang/internal/ast"
	"github.com/sheetlang/sheetlang/internal/value"
)

// evalCellReference resolves a CellReference literal against the cell
// currently under evaluation and recomputes it through the attached sheet
// (spec.md §4.7 steps 4-5). Evaluating a bare cell reference with no sheet
// attached (e.g. a Backwards script run outside a spreadsheet) is a
// DomainError: there is nothing to dereference against.
func (e *Evaluator) evalCellReference(ctx *CallingContext, n *ast.CellReference) (value.Value, error) {
	if ctx.Ext == nil || ctx.Ext.Sheet == nil {
		return nil, NewError(DomainError, n.Position, "cell reference used outside a spreadsheet context")
	}
	base, ok := ctx.TopCell()
	if !ok {
		return nil, NewError(DomainError, n.Position, "cell reference used outside a spreadsheet context")
	}
	col, row := n.Ref.Resolve(base.Col, base.Row)
	sheetName := n.Ref.Sheet
	if sheetName == "" {
		sheetName = base.Sheet
	}
	return ctx.Ext.Sheet.EvalCellAt(ctx, col, row)
}

// evalCellRange resolves a CellRangeExpr and expands it through the
// attached sheet's ExpandRangeAt.
func (e *Evaluator) evalCellRange(ctx *CallingContext, n *ast.CellRangeExpr) (value.Value, error) {
	if ctx.Ext == nil || ctx.Ext.Sheet == nil {
		return nil, NewError(DomainError, n.Position, "cell range used outside a spreadsheet context")
	}
	base, ok := ctx.TopCell()
	if !ok {
		return nil, NewError(DomainError, n.Position, "cell range used outside a spreadsheet context")
	}
	col0, row0, col1, row1 := n.Range.Resolve(base.Col, base.Row)
	return ctx.Ext.Sheet.ExpandRangeAt(ctx, col0, row0, col1, row1)
}

package sheet

import (
	"github.com/sheetlang/sheetlang/internal/ast"
	"github.com/sheetlang/sheetlang/internal/engine"
	"github.com/sheetlang/sheetlang/internal/fparser"
	"github.com/sheetlang/sheetlang/internal/lexer"
	"github.com/sheetlang/sheetlang/internal/logger"
	"github.com/sheetlang/sheetlang/internal/token"
	"github.com/sheetlang/sheetlang/internal/value"
)

// Spreadsheet is the demand-driven recomputation engine (spec.md §4.7). It
// implements internal/engine.CellAccessor structurally, so a
// CallingContext's SheetExtension can hold one without an import cycle.
//
// CellRef.Sheet (an optional cross-sheet name) is accepted at the token/
// value layer but not resolved here: this core is single-sheet per
// CallingContext (engine.CallingContext.Ext.Sheet is one CellAccessor), so
// a reference naming a different sheet is treated the same as one naming
// the current sheet. Multi-sheet workbooks are an external collaborator's
// concern, same as persistence (spec.md §6 "No CLI, no file format is part
// of this core").
type Spreadsheet struct {
	Name  string
	store Store
	eval  *engine.Evaluator
}

// New creates a Spreadsheet named name, backed by store (a *MapStore if
// nil is passed).
func New(name string, store Store) *Spreadsheet {
	if store == nil {
		store = NewMapStore()
	}
	return &Spreadsheet{Name: name, store: store, eval: engine.NewEvaluator()}
}

// Store exposes the backing Store, e.g. for bulk-loading cells before the
// first recompute.
func (s *Spreadsheet) Store() Store { return s.store }

// Put installs source as the Forwards expression text for (col,row),
// replacing any previously parsed/cached state.
func (s *Spreadsheet) Put(col, row int, source string) {
	s.store.Put(col, row, NewCell(source))
}

// EvalCellAt implements engine.CellAccessor: the six-step recompute
// algorithm of spec.md §4.7.
func (s *Spreadsheet) EvalCellAt(ctx *engine.CallingContext, col, row int) (value.Value, error) {
	cell, ok := s.store.Get(col, row)
	if !ok {
		return value.Nil{}, nil
	}

	g := uint64(0)
	if ctx.Ext != nil {
		g = ctx.Ext.Generation
	}

	// Step 1: generation-fresh cache hit.
	if cell.hasCached && cell.lastGeneration == g {
		if cell.cachedErr != nil {
			return nil, cell.cachedErr
		}
		return cell.cachedValue, nil
	}

	pos := token.Position{Source: s.Name, Line: row + 1, Column: col + 1}

	// Steps 2-3: path-based cycle check, then mark in-progress.
	if err := ctx.PushCell(col, row, s.Name, pos); err != nil {
		return nil, err
	}
	cell.inProgress = true
	defer func() {
		cell.inProgress = false
		ctx.PopCell()
	}()

	if cell.Expr == nil {
		expr, err := s.parse(ctx, cell, col, row)
		if err != nil {
			cell.cachedErr = err
			cell.hasCached = true
			cell.lastGeneration = g
			return nil, err
		}
		cell.Expr = expr
	}

	// Steps 4-5: evaluate, resolving nested CellRef operands against
	// (col,row) and recursing into EvalCellAt for each dereference (done
	// inside internal/engine's evalCellReference/evalCellRange, which reads
	// ctx.TopCell() — the frame PushCell just installed — as the base).
	v, err := s.eval.EvalExpr(ctx, cell.Expr)

	// Step 6: store outcome, stamp generation.
	cell.lastGeneration = g
	cell.hasCached = true
	if err != nil {
		if ee, ok := err.(*engine.EvaluationError); ok {
			cell.cachedErr = ee
		} else {
			cell.cachedErr = engine.NewError(engine.DomainError, pos, "%s", err)
		}
		cell.cachedValue = nil
		return nil, cell.cachedErr
	}
	cell.cachedErr = nil
	cell.cachedValue = v
	return v, nil
}

// parse lazily compiles a cell's Forwards source text the first time it is
// evaluated, reusing the running program's global table (so a Forwards
// formula can reference a Backwards-defined global function) and relative
// to this cell's own (col,row) for CellRef offset resolution.
func (s *Spreadsheet) parse(ctx *engine.CallingContext, cell *Cell, col, row int) (ast.Expression, error) {
	collector := &logger.CollectingLogger{}
	p := fparser.New(lexer.NewSource(s.Name, cell.SourceText), ctx.GlobalTable, col, row, collector)
	expr := p.ParseExpression()

	if ctx.Logger != nil {
		for _, e := range collector.Entries {
			ctx.Logger.Log(e.Level, e.Message, e.Pos)
		}
	}
	if collector.HasLevel(logger.Error) || collector.HasLevel(logger.Fatal) {
		return nil, engine.NewError(engine.DomainError, token.Position{Source: s.Name, Line: row + 1, Column: col + 1}, "cell %s!%s has a malformed Forwards expression", s.Name, cellLabel(col, row))
	}
	return expr, nil
}

func cellLabel(col, row int) string {
	return lexer.ColumnToString(col) + lexer.RowToLiteral(row)
}

// ExpandRangeAt implements engine.CellAccessor: a row-major array of the
// rectangle's cell values, Nil for any absent cell (spec.md §4.7 "Range
// expansion").
func (s *Spreadsheet) ExpandRangeAt(ctx *engine.CallingContext, col0, row0, col1, row1 int) (*value.Array, error) {
	var items []value.Value
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			v, err := s.EvalCellAt(ctx, col, row)
			if err != nil {
				items = append(items, value.Nil{})
				continue
			}
			items = append(items, v)
		}
	}
	return value.NewArrayOf(items...), nil
}

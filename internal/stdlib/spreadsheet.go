package stdlib

import "github.com/sheetlang/sheetlang/internal/value"

// registerSpreadsheet wires EvalCell/ExpandRange (spec.md §4.6), the
// built-ins that let Backwards code re-enter the Forwards/sheet evaluator.
func registerSpreadsheet(r *Registry) {
	r.Register("EvalCell", CategorySpreadsheet, value.NewBuiltin("EvalCell", value.ArityUnaryWithContext, biEvalCell))
	r.Register("ExpandRange", CategorySpreadsheet, value.NewBuiltin("ExpandRange", value.ArityUnaryWithContext, biExpandRange))
}

func biEvalCell(ctx value.Context, args []value.Value) (value.Value, error) {
	cc, err := asContext(ctx)
	if err != nil {
		return nil, err
	}
	ref, err := asCellRef(args[0])
	if err != nil {
		return nil, err
	}
	if cc.Ext == nil || cc.Ext.Sheet == nil {
		return nil, domainErr("EvalCell used outside a spreadsheet context")
	}
	base, ok := cc.TopCell()
	if !ok {
		return nil, domainErr("EvalCell used outside a spreadsheet context")
	}
	col, row := ref.Resolve(base.Col, base.Row)
	return cc.Ext.Sheet.EvalCellAt(cc, col, row)
}

func biExpandRange(ctx value.Context, args []value.Value) (value.Value, error) {
	cc, err := asContext(ctx)
	if err != nil {
		return nil, err
	}
	rng, err := asCellRange(args[0])
	if err != nil {
		return nil, err
	}
	if cc.Ext == nil || cc.Ext.Sheet == nil {
		return nil, domainErr("ExpandRange used outside a spreadsheet context")
	}
	base, ok := cc.TopCell()
	if !ok {
		return nil, domainErr("ExpandRange used outside a spreadsheet context")
	}
	col0, row0, col1, row1 := rng.Resolve(base.Col, base.Row)
	return cc.Ext.Sheet.ExpandRangeAt(cc, col0, row0, col1, row1)
}

package ast_test

import (
	"testing"

	"github.com/sheetlang/sheetlang/internal/ast"
	_ "github.com/sheetlang/sheetlang/internal/lexer" // wires CellRef's column/row text formatters
	"github.com/sheetlang/sheetlang/internal/value"
)

func TestConstantStringRendersItsValue(t *testing.T) {
	c := &ast.Constant{Value: value.FloatFromInt(42)}
	if got := c.String(); got != "42" {
		t.Fatalf("want %q, got %q", "42", got)
	}
}

func TestBinaryStringParenthesizesBothSides(t *testing.T) {
	left := &ast.Constant{Value: value.FloatFromInt(1)}
	right := &ast.Constant{Value: value.FloatFromInt(2)}
	b := &ast.Binary{Op: ast.OpAdd, Left: left, Right: right}
	if got := b.String(); got != "(1 + 2)" {
		t.Fatalf("want %q, got %q", "(1 + 2)", got)
	}
}

func TestUnaryStringPrependsTheOperator(t *testing.T) {
	child := &ast.Constant{Value: value.FloatFromInt(5)}
	u := &ast.Unary{Op: ast.OpNeg, Child: child}
	if got := u.String(); got != "-5" {
		t.Fatalf("want %q, got %q", "-5", got)
	}
}

func TestTernaryStringRendersConditionalForm(t *testing.T) {
	a := &ast.Constant{Value: value.FloatFromInt(1)}
	b := &ast.Constant{Value: value.FloatFromInt(2)}
	c := &ast.Constant{Value: value.FloatFromInt(3)}
	tern := &ast.Ternary{Op: ast.OpCond, A: a, B: b, C: c}
	if got := tern.String(); got != "(1 ? 2 : 3)" {
		t.Fatalf("want %q, got %q", "(1 ? 2 : 3)", got)
	}
}

func TestBuildArrayStringJoinsElements(t *testing.T) {
	arr := &ast.BuildArray{Elements: []ast.Expression{
		&ast.Constant{Value: value.FloatFromInt(1)},
		&ast.Constant{Value: value.FloatFromInt(2)},
	}}
	if got := arr.String(); got != "{1, 2}" {
		t.Fatalf("want %q, got %q", "{1, 2}", got)
	}
}

func TestBuildDictionaryStringJoinsKeyValuePairs(t *testing.T) {
	dict := &ast.BuildDictionary{Pairs: []ast.DictPair{
		{Key: &ast.Constant{Value: value.String("a")}, Value: &ast.Constant{Value: value.FloatFromInt(1)}},
	}}
	if got := dict.String(); got != `{a: 1}` {
		t.Fatalf("want %q, got %q", `{a: 1}`, got)
	}
}

func TestFunctionCallStringRendersCalleeAndArgs(t *testing.T) {
	call := &ast.FunctionCall{
		Callee: &ast.GlobalRead{Name: "Pow"},
		Args: []ast.Expression{
			&ast.Constant{Value: value.FloatFromInt(2)},
			&ast.Constant{Value: value.FloatFromInt(10)},
		},
	}
	if got := call.String(); got != "Pow(2, 10)" {
		t.Fatalf("want %q, got %q", "Pow(2, 10)", got)
	}
}

func TestIndexStringRendersContainerAndKey(t *testing.T) {
	idx := &ast.Index{
		Container: &ast.GlobalRead{Name: "a"},
		Key:       &ast.Constant{Value: value.FloatFromInt(0)},
	}
	if got := idx.String(); got != "a[0]" {
		t.Fatalf("want %q, got %q", "a[0]", got)
	}
}

func TestScopeReadAndGlobalReadStringRenderTheirName(t *testing.T) {
	g := &ast.GlobalRead{Name: "total"}
	if got := g.String(); got != "total" {
		t.Fatalf("want %q, got %q", "total", got)
	}
	s := &ast.ScopeRead{Name: "n", Depth: 1, Slot: 0}
	if got := s.String(); got != "n" {
		t.Fatalf("want %q, got %q", "n", got)
	}
}

func TestCellReferenceStringRendersBijectiveColumnText(t *testing.T) {
	ref := &ast.CellReference{Ref: value.CellRef{ColAbs: true, Col: 0, RowAbs: true, Row: 0}}
	if got := ref.String(); got != "$A$1" {
		t.Fatalf("want %q, got %q", "$A$1", got)
	}
}

func TestCellRangeExprStringRendersBothCorners(t *testing.T) {
	rng := &ast.CellRangeExpr{Range: value.CellRange{
		TopLeft:     value.CellRef{ColAbs: true, Col: 0, RowAbs: true, Row: 0},
		BottomRight: value.CellRef{ColAbs: true, Col: 2, RowAbs: true, Row: 0},
	}}
	if got := rng.String(); got != "$A$1:$C$1" {
		t.Fatalf("want %q, got %q", "$A$1:$C$1", got)
	}
}

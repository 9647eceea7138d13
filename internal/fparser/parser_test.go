package fparser_test

import (
	"testing"

	"github.com/sheetlang/sheetlang/internal/ast"
	"github.com/sheetlang/sheetlang/internal/fparser"
	"github.com/sheetlang/sheetlang/internal/lexer"
	"github.com/sheetlang/sheetlang/internal/logger"
	"github.com/sheetlang/sheetlang/internal/symtab"
	"github.com/sheetlang/sheetlang/internal/value"
)

// parseAt parses source as the Forwards formula living in cell (baseCol,
// baseRow), the coordinates a relative cell reference resolves against.
func parseAt(t *testing.T, source string, baseCol, baseRow int) (ast.Expression, *logger.CollectingLogger) {
	t.Helper()
	global := symtab.NewGlobal()
	collector := &logger.CollectingLogger{}
	p := fparser.New(lexer.NewSource("test", source), global, baseCol, baseRow, collector)
	return p.ParseExpression(), collector
}

func parse(t *testing.T, source string) (ast.Expression, *logger.CollectingLogger) {
	t.Helper()
	return parseAt(t, source, 0, 0)
}

func TestParseArithmeticPrecedence(t *testing.T) {
	expr, log := parse(t, "1 + 2 * 3")
	if log.HasLevel(logger.Error) {
		t.Fatalf("unexpected diagnostics: %v", log.Strings())
	}
	top, ok := expr.(*ast.Binary)
	if !ok || top.Op != ast.OpAdd {
		t.Fatalf("want the outermost operator to be +, got %#v", expr)
	}
	if _, ok := top.Right.(*ast.Binary); !ok {
		t.Fatalf("want 2 * 3 to bind tighter and nest on the right, got %T", top.Right)
	}
}

func TestParseParenthesizedExpression(t *testing.T) {
	expr, log := parse(t, "(1 + 2) * 3")
	if log.HasLevel(logger.Error) {
		t.Fatalf("unexpected diagnostics: %v", log.Strings())
	}
	top, ok := expr.(*ast.Binary)
	if !ok || top.Op != ast.OpMul {
		t.Fatalf("want the outermost operator to be *, got %#v", expr)
	}
	if _, ok := top.Left.(*ast.Binary); !ok {
		t.Fatalf("want the parenthesized sum to nest on the left, got %T", top.Left)
	}
}

func TestParseUnaryMinus(t *testing.T) {
	expr, log := parse(t, "-1")
	if log.HasLevel(logger.Error) {
		t.Fatalf("unexpected diagnostics: %v", log.Strings())
	}
	un, ok := expr.(*ast.Unary)
	if !ok || un.Op != ast.OpNeg {
		t.Fatalf("want a negation, got %#v", expr)
	}
}

func TestParseDoubleUnaryMinus(t *testing.T) {
	expr, log := parse(t, "--1")
	if log.HasLevel(logger.Error) {
		t.Fatalf("unexpected diagnostics: %v", log.Strings())
	}
	outer, ok := expr.(*ast.Unary)
	if !ok || outer.Op != ast.OpNeg {
		t.Fatalf("want an outer negation, got %#v", expr)
	}
	if _, ok := outer.Child.(*ast.Unary); !ok {
		t.Fatalf("want a nested negation as the child, got %T", outer.Child)
	}
}

func TestParseRelativeCellReferenceResolvesAgainstBaseCell(t *testing.T) {
	// A1 referenced from a formula living in B2 (col=1, row=1) resolves to
	// the cell one column left and one row up of the defining cell, i.e.
	// absolute (0,0) here, but the stored Ref itself stays relative.
	expr, log := parseAt(t, "A1", 1, 1)
	if log.HasLevel(logger.Error) {
		t.Fatalf("unexpected diagnostics: %v", log.Strings())
	}
	ref, ok := expr.(*ast.CellReference)
	if !ok {
		t.Fatalf("want *ast.CellReference, got %T", expr)
	}
	col, row := ref.Ref.Resolve(1, 1)
	if col != 0 || row != 0 {
		t.Fatalf("want A1 relative to base (1,1) to resolve to (0,0), got (%d,%d)", col, row)
	}

	// The same token text, resolved against a different base cell, must
	// resolve to a different absolute cell -- proving the stored reference
	// is an offset, not an absolute coordinate.
	col, row = ref.Ref.Resolve(5, 5)
	if col != 4 || row != 4 {
		t.Fatalf("want A1 relative to base (5,5) to resolve to (4,4), got (%d,%d)", col, row)
	}
}

func TestParseAbsoluteCellReferenceIgnoresBaseCell(t *testing.T) {
	expr, log := parseAt(t, "$A$1", 10, 10)
	if log.HasLevel(logger.Error) {
		t.Fatalf("unexpected diagnostics: %v", log.Strings())
	}
	ref := expr.(*ast.CellReference)
	col, row := ref.Ref.Resolve(10, 10)
	if col != 0 || row != 0 {
		t.Fatalf("want an absolute reference to ignore the base cell, got (%d,%d)", col, row)
	}
}

func TestParseCellRangeLiteral(t *testing.T) {
	expr, log := parse(t, "A1:C1")
	if log.HasLevel(logger.Error) {
		t.Fatalf("unexpected diagnostics: %v", log.Strings())
	}
	rangeExpr, ok := expr.(*ast.CellRangeExpr)
	if !ok {
		t.Fatalf("want *ast.CellRangeExpr, got %T", expr)
	}
	c0, r0, c1, r1 := rangeExpr.Range.Resolve(0, 0)
	if c0 != 0 || r0 != 0 || c1 != 2 || r1 != 0 {
		t.Fatalf("want A1:C1 to resolve to cols 0..2 row 0, got (%d,%d)-(%d,%d)", c0, r0, c1, r1)
	}
}

func TestParseFunctionCall(t *testing.T) {
	expr, log := parse(t, "Pow(2, 10)")
	if log.HasLevel(logger.Error) {
		t.Fatalf("unexpected diagnostics: %v", log.Strings())
	}
	call, ok := expr.(*ast.FunctionCall)
	if !ok {
		t.Fatalf("want *ast.FunctionCall, got %T", expr)
	}
	if len(call.Args) != 2 {
		t.Fatalf("want 2 call arguments, got %d", len(call.Args))
	}
	if _, ok := call.Callee.(*ast.GlobalRead); !ok {
		t.Fatalf("want the callee to resolve as a global read, got %T", call.Callee)
	}
}

func TestParseIndexExpression(t *testing.T) {
	expr, log := parse(t, "{10, 20, 30}[1]")
	if log.HasLevel(logger.Error) {
		t.Fatalf("unexpected diagnostics: %v", log.Strings())
	}
	idx, ok := expr.(*ast.Index)
	if !ok {
		t.Fatalf("want *ast.Index, got %T", expr)
	}
	if _, ok := idx.Container.(*ast.BuildArray); !ok {
		t.Fatalf("want the index container to be an array literal, got %T", idx.Container)
	}
}

func TestParseArrayAndDictionaryLiterals(t *testing.T) {
	expr, log := parse(t, `{"a", "b"}`)
	if log.HasLevel(logger.Error) {
		t.Fatalf("unexpected diagnostics: %v", log.Strings())
	}
	arr, ok := expr.(*ast.BuildArray)
	if !ok || len(arr.Elements) != 2 {
		t.Fatalf("want a 2-element array literal, got %#v", expr)
	}

	expr, log = parse(t, `{"a": 1}`)
	if log.HasLevel(logger.Error) {
		t.Fatalf("unexpected diagnostics: %v", log.Strings())
	}
	dict, ok := expr.(*ast.BuildDictionary)
	if !ok || len(dict.Pairs) != 1 {
		t.Fatalf("want a 1-pair dictionary literal, got %#v", expr)
	}
}

func TestParseTrailingGarbageIsLoggedAndDiscarded(t *testing.T) {
	expr, log := parse(t, "1 + 2 3 4")
	if !log.HasLevel(logger.Error) {
		t.Fatalf("want a diagnostic for trailing tokens, got none")
	}
	bin, ok := expr.(*ast.Binary)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("want the well-formed prefix 1 + 2 to still parse, got %#v", expr)
	}
}

func TestParseStringAndNumberLiterals(t *testing.T) {
	expr, log := parse(t, `"hello"`)
	if log.HasLevel(logger.Error) {
		t.Fatalf("unexpected diagnostics: %v", log.Strings())
	}
	c, ok := expr.(*ast.Constant)
	if !ok {
		t.Fatalf("want *ast.Constant, got %T", expr)
	}
	s, ok := c.Value.(value.String)
	if !ok || string(s) != "hello" {
		t.Fatalf("want string constant %q, got %#v", "hello", c.Value)
	}
}

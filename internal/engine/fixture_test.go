package engine_test

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/sheetlang/sheetlang/internal/bparser"
	"github.com/sheetlang/sheetlang/internal/engine"
	"github.com/sheetlang/sheetlang/internal/lexer"
	"github.com/sheetlang/sheetlang/internal/sheet"
	"github.com/sheetlang/sheetlang/internal/stdlib"
	"github.com/sheetlang/sheetlang/internal/symtab"
)

// runBackwards parses and runs source as a complete Backwards program
// against a fresh global table and built-in roster, returning the
// top-level return value's display string.
func runBackwards(t *testing.T, source string) string {
	t.Helper()
	global := symtab.NewGlobal()
	_, globals := stdlib.Install(global)
	ctx := engine.NewContext(nil, nil, global, globals)

	p := bparser.New(lexer.NewSource("fixture", source), global, nil)
	prog := p.ParseProgram()

	ev := engine.NewEvaluator()
	v, err := ev.RunForValue(ctx, prog)
	if err != nil {
		return "ERROR: " + err.Error()
	}
	return stdlib.DisplayString(v)
}

// TestBackwardsFixtures snapshots the top-level return value of a small
// set of representative Backwards programs, exercising functions, loops,
// containers, and the Eval built-in end to end (grounded on the teacher's
// fixture_test.go snapshot-per-named-case shape).
func TestBackwardsFixtures(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{
			name:   "arithmetic",
			source: `return 2 + 3 * 4`,
		},
		{
			name: "function_call",
			source: `function Double(x) is
	return x * 2
end
return Double(21)`,
		},
		{
			name: "while_loop_accumulator",
			source: `set total to 0
set i to 1
while i <= 5 do
	set total to total + i
	set i to i + 1
end
return total`,
		},
		{
			name:   "array_literal_and_index",
			source: `set arr to {10, 20, 30}
return arr[1]`,
		},
		{
			name:   "dictionary_literal_and_index",
			source: `set d to {"a": 1, "b": 2}
return d["b"]`,
		},
		{
			name:   "eval_builtin_reuses_globals",
			source: `call Eval("set sharedValue to 99") return sharedValue`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := runBackwards(t, c.source)
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_result", c.name), out)
		})
	}
}

// TestSpreadsheetFixtures snapshots a small recomputed sheet's values,
// exercising cell references, ranges, and circular-reference detection
// end to end through internal/sheet + internal/engine together.
func TestSpreadsheetFixtures(t *testing.T) {
	global := symtab.NewGlobal()
	_, globals := stdlib.Install(global)

	sh := sheet.New("Sheet1", nil)
	ctx := engine.NewContext(nil, nil, global, globals)
	ctx.Ext = &engine.SheetExtension{Sheet: sh}

	sh.Put(0, 0, "10")      // A1
	sh.Put(1, 0, "A1 * 2")  // B1
	sh.Put(2, 0, "A1 + B1") // C1
	sh.Put(0, 1, "A1:C1")   // A2, a range expansion into an array

	cells := []struct {
		name     string
		col, row int
	}{
		{"A1", 0, 0},
		{"B1", 1, 0},
		{"C1", 2, 0},
		{"A2", 0, 1},
	}

	for _, c := range cells {
		t.Run(c.name, func(t *testing.T) {
			v, err := sh.EvalCellAt(ctx, c.col, c.row)
			out := stdlib.DisplayString(v)
			if err != nil {
				out = "ERROR: " + err.Error()
			}
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_value", c.name), out)
		})
	}
}

package sheet

import (
	"github.com/sheetlang/sheetlang/internal/ast"
	"github.com/sheetlang/sheetlang/internal/engine"
	"github.com/sheetlang/sheetlang/internal/value"
)

// Cell is one spreadsheet cell (spec.md §3 Cell): source text, its parsed
// expression (cached across recomputes), and the generation-scoped
// recompute bookkeeping spec.md §4.7 describes. InProgress is kept here in
// addition to internal/engine's CellFrame stack: the stack is what
// actually detects a cycle (it also catches EvalCell trampolines through
// user functions, which never touch a single cell's own flag twice), but
// the flag mirrors spec.md §3's stated Cell shape and is cheap to keep
// consistent alongside it.
type Cell struct {
	SourceText string
	Expr       ast.Expression // nil until first parse

	cachedValue value.Value
	cachedErr   *engine.EvaluationError
	hasCached   bool

	lastGeneration uint64
	inProgress     bool
}

// NewCell creates a cell from its Forwards source text, unparsed; Parse
// must be called (directly, or implicitly via Spreadsheet.EvalCellAt) to
// populate Expr before the cell can be evaluated.
func NewCell(source string) *Cell {
	return &Cell{SourceText: source}
}

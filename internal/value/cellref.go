package value

import "fmt"

// Domain bounds for cell coordinates (spec.md §3/§6).
const (
	MaxCol = 475254
	MaxRow = 1_000_000_000_000
)

func wrapMod(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

// CellRef is a reference to one cell, per axis absolute-or-relative, with
// an optional sheet name (spec.md §3). When an axis is absolute, Col/Row
// hold a 0-based absolute index; when relative, they hold a signed offset
// resolved against the evaluating cell's coordinates.
type CellRef struct {
	ColAbs bool
	Col    int
	RowAbs bool
	Row    int
	Sheet  string // "" means "current sheet"
}

func (CellRef) Kind() Kind       { return KindCellRef }
func (CellRef) TypeName() string { return "CellRef" }

// Resolve computes the absolute (col, row) this reference names when
// evaluated from a cell at (baseCol, baseRow) (spec.md §4.7 step 4, §8
// properties 4/5). Absolute axes ignore the base entirely; relative axes
// wrap modulo the column/row domain.
func (r CellRef) Resolve(baseCol, baseRow int) (col, row int) {
	if r.ColAbs {
		col = r.Col
	} else {
		col = wrapMod(baseCol+r.Col, MaxCol)
	}
	if r.RowAbs {
		row = r.Row
	} else {
		row = wrapMod(baseRow+r.Row, MaxRow)
	}
	return col, row
}

// canonical renders a position-independent key for dictionary hashing: it
// must distinguish absolute-5 from relative-offset-5, so it encodes the
// abs flag explicitly rather than resolving against any base.
func (r CellRef) canonical() string {
	return fmt.Sprintf("%v,%d,%v,%d,%s", r.ColAbs, r.Col, r.RowAbs, r.Row, r.Sheet)
}

// String renders the reference's re-parseable textual form as seen from
// (col, row) — absolute axes print their stored integer directly, relative
// axes print the integer resolved against (col, row), per spec.md §6 and
// the asExpr/toString split recovered from original_source/ (see
// SPEC_FULL.md "Supplemented features").
func (r CellRef) String(col, row int) string {
	rc, rr := r.Resolve(col, row)
	s := ""
	if r.ColAbs {
		s += "$"
	}
	s += ColumnToStringRef(rc)
	if r.RowAbs {
		s += "$"
	}
	s += RowToLiteralRef(rr)
	if r.Sheet != "" {
		s += "!" + r.Sheet
	}
	return s
}

// ColumnToStringRef and RowToLiteralRef are small indirections so this file
// doesn't need to import the lexer package (which would create
// lexer->value->lexer if lexer ever needed a Value). They're filled in by
// SetColumnFormatter/SetRowFormatter at program init from internal/lexer,
// the single place bijective column/row text formatting lives.
var (
	columnFormatter func(int) string
	rowFormatter    func(int) string
)

// SetColumnFormatter installs the bijective-base-26 column formatter
// (internal/lexer.ColumnToString) used by CellRef.String.
func SetColumnFormatter(f func(int) string) { columnFormatter = f }

// SetRowFormatter installs the 1-based row literal formatter
// (internal/lexer.RowToLiteral) used by CellRef.String.
func SetRowFormatter(f func(int) string) { rowFormatter = f }

func ColumnToStringRef(col int) string {
	if columnFormatter != nil {
		return columnFormatter(col)
	}
	return fmt.Sprintf("col%d", col)
}

func RowToLiteralRef(row int) string {
	if rowFormatter != nil {
		return rowFormatter(row)
	}
	return fmt.Sprintf("%d", row)
}

// CellRange is a rectangular span between two CellRefs (spec.md §3).
type CellRange struct {
	TopLeft     CellRef
	BottomRight CellRef
}

func (CellRange) Kind() Kind       { return KindCellRange }
func (CellRange) TypeName() string { return "CellRange" }

// Resolve returns the absolute rectangle (col0,row0)-(col1,row1), ordered
// so col0<=col1 and row0<=row1, as evaluated from (baseCol, baseRow).
func (r CellRange) Resolve(baseCol, baseRow int) (col0, row0, col1, row1 int) {
	c0, rr0 := r.TopLeft.Resolve(baseCol, baseRow)
	c1, rr1 := r.BottomRight.Resolve(baseCol, baseRow)
	if c0 > c1 {
		c0, c1 = c1, c0
	}
	if rr0 > rr1 {
		rr0, rr1 = rr1, rr0
	}
	return c0, rr0, c1, rr1
}

package lexer

import (
	"fmt"
	"strings"

	"github.com/sheetlang/sheetlang/internal/value"
)

// init wires this package's bijective column/row text formatters into
// value.CellRef.String, so CellRef serialization (spec.md §6) and cell
// reference scanning (spec.md §4.1) agree on exactly one column/row
// encoding without value importing lexer.
func init() {
	value.SetColumnFormatter(ColumnToString)
	value.SetRowFormatter(RowToLiteral)
}

// ParseCellRefText decodes a token.CELLREF token's text — as produced by
// ForwardsLexer.tryCellRef: "[$]letters[$]digits[!name]" — into a
// value.CellRef, resolving the bijective column letters and the 1-based
// row literal into the internal 0-based coordinates spec.md §9's Open
// Question settles on (see SPEC_FULL.md §3).
//
// baseCol/baseRow are the (col, row) of the cell the Forwards expression
// being parsed lives in: a relative axis (no '$') stores its value as a
// *signed offset* from that position (spec.md §3 CellRef, §4.7 step 4),
// not as an absolute index, so the same parsed reference re-resolves
// correctly if the cell it came from is ever re-evaluated from a different
// nominal base. Absolute axes ignore baseCol/baseRow entirely.
func ParseCellRefText(text string, baseCol, baseRow int) (value.CellRef, error) {
	ref := value.CellRef{}
	rest := text

	if body, sheet, ok := strings.Cut(rest, "!"); ok {
		ref.Sheet = sheet
		rest = body
	}

	if strings.HasPrefix(rest, "$") {
		ref.ColAbs = true
		rest = rest[1:]
	}

	letters := rest
	for i, r := range rest {
		if r == '$' || (r >= '0' && r <= '9') {
			letters = rest[:i]
			rest = rest[i:]
			break
		}
	}
	col, ok := ColumnFromString(letters)
	if !ok {
		return value.CellRef{}, fmt.Errorf("malformed column in cell reference %q", text)
	}
	if ref.ColAbs {
		ref.Col = col
	} else {
		ref.Col = col - baseCol
	}

	if strings.HasPrefix(rest, "$") {
		ref.RowAbs = true
		rest = rest[1:]
	}

	row, err := RowFromLiteral(rest)
	if err != nil {
		return value.CellRef{}, fmt.Errorf("malformed row in cell reference %q: %w", text, err)
	}
	if ref.RowAbs {
		ref.Row = row
	} else {
		ref.Row = row - baseRow
	}

	return ref, nil
}

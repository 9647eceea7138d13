package lexer_test

import (
	"testing"

	"github.com/sheetlang/sheetlang/internal/lexer"
	"github.com/sheetlang/sheetlang/internal/token"
)

func backwardsTokens(t *testing.T, src string) []token.Token {
	t.Helper()
	l := lexer.NewBackwards(lexer.NewSource("test", src))
	var out []token.Token
	for {
		tok := l.GetNextToken()
		out = append(out, tok)
		if tok.Kind == token.END {
			return out
		}
	}
}

func forwardsTokens(t *testing.T, src string) []token.Token {
	t.Helper()
	l := lexer.NewForwards(lexer.NewSource("test", src))
	var out []token.Token
	for {
		tok := l.GetNextToken()
		out = append(out, tok)
		if tok.Kind == token.END {
			return out
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, toks []token.Token, want ...token.Kind) {
	t.Helper()
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("want %d tokens %v, got %d %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: want %s, got %s", i, want[i], got[i])
		}
	}
}

func TestBackwardsKeywordsAndIdentifiers(t *testing.T) {
	toks := backwardsTokens(t, "set x to 1")
	assertKinds(t, toks, token.SET, token.IDENT, token.TO, token.INT, token.END)
}

func TestBackwardsIgnoresCommentsToEndOfLine(t *testing.T) {
	toks := backwardsTokens(t, "set x to 1 # a comment\nreturn x")
	assertKinds(t, toks, token.SET, token.IDENT, token.TO, token.INT, token.RETURN, token.IDENT, token.END)
}

func TestBackwardsNeverRecognizesCellReferences(t *testing.T) {
	// In Backwards, "A1" is a plain identifier, never a cell reference.
	toks := backwardsTokens(t, "return A1")
	assertKinds(t, toks, token.RETURN, token.IDENT, token.END)
	if toks[1].Text != "A1" {
		t.Fatalf("want identifier text %q, got %q", "A1", toks[1].Text)
	}
}

func TestForwardsRecognizesRelativeCellReference(t *testing.T) {
	toks := forwardsTokens(t, "A1")
	assertKinds(t, toks, token.CELLREF, token.END)
	if toks[0].Text != "A1" {
		t.Fatalf("want cell ref text %q, got %q", "A1", toks[0].Text)
	}
}

func TestForwardsRecognizesAbsoluteCellReference(t *testing.T) {
	toks := forwardsTokens(t, "$A$1")
	assertKinds(t, toks, token.CELLREF, token.END)
	if toks[0].Text != "$A$1" {
		t.Fatalf("want cell ref text %q, got %q", "$A$1", toks[0].Text)
	}
}

func TestForwardsRecognizesSheetQualifiedCellReference(t *testing.T) {
	toks := forwardsTokens(t, "A1!Other")
	assertKinds(t, toks, token.CELLREF, token.END)
}

func TestForwardsFallsBackToIdentifierForBareWord(t *testing.T) {
	// "Sqr" looks like it could start a cell ref (letters) but has no
	// trailing digits, so it must fall back to a plain identifier.
	toks := forwardsTokens(t, "Sqr(9)")
	assertKinds(t, toks, token.IDENT, token.LPAREN, token.INT, token.RPAREN, token.END)
}

func TestForwardsHasNoKeywords(t *testing.T) {
	// Forwards recognizes no keywords at all; "set" lexes as a plain
	// identifier, unlike in Backwards.
	toks := forwardsTokens(t, "set")
	assertKinds(t, toks, token.IDENT, token.END)
}

func TestForwardsCellRangeLiteral(t *testing.T) {
	toks := forwardsTokens(t, "A1:C1")
	assertKinds(t, toks, token.CELLREF, token.COLON, token.CELLREF, token.END)
}

func TestScanNumberIntegerAndFloat(t *testing.T) {
	toks := backwardsTokens(t, "42 3.14")
	assertKinds(t, toks, token.INT, token.FLOAT, token.END)
	if toks[0].Text != "42" {
		t.Fatalf("want %q, got %q", "42", toks[0].Text)
	}
	if toks[1].Text != "3.14" {
		t.Fatalf("want %q, got %q", "3.14", toks[1].Text)
	}
}

func TestScanStringEscapes(t *testing.T) {
	toks := backwardsTokens(t, `"a\nb\tc\"d"`)
	assertKinds(t, toks, token.STRING, token.END)
	want := "a\nb\tc\"d"
	if toks[0].Text != want {
		t.Fatalf("want %q, got %q", want, toks[0].Text)
	}
}

func TestScanUnterminatedStringIsError(t *testing.T) {
	toks := backwardsTokens(t, `"unterminated`)
	if toks[0].Kind != token.ERROR {
		t.Fatalf("want token.ERROR, got %s", toks[0].Kind)
	}
}

func TestScanMalformedExponentIsError(t *testing.T) {
	toks := backwardsTokens(t, "1e")
	if toks[0].Kind != token.ERROR {
		t.Fatalf("want token.ERROR, got %s", toks[0].Kind)
	}
}

func TestColumnToStringBijectiveBase26(t *testing.T) {
	cases := []struct {
		col  int
		text string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, c := range cases {
		got := lexer.ColumnToString(c.col)
		if got != c.text {
			t.Fatalf("ColumnToString(%d): want %q, got %q", c.col, c.text, got)
		}
		back, ok := lexer.ColumnFromString(c.text)
		if !ok || back != c.col {
			t.Fatalf("ColumnFromString(%q): want (%d, true), got (%d, %v)", c.text, c.col, back, ok)
		}
	}
}

func TestColumnFromStringRejectsNonLetters(t *testing.T) {
	if _, ok := lexer.ColumnFromString("A1"); ok {
		t.Fatalf("want ColumnFromString to reject a non-letter suffix")
	}
}

func TestRowLiteralRoundTripsThroughOneBasedText(t *testing.T) {
	row, err := lexer.RowFromLiteral("1")
	if err != nil || row != 0 {
		t.Fatalf("want row 0 from literal \"1\", got (%d, %v)", row, err)
	}
	if text := lexer.RowToLiteral(0); text != "1" {
		t.Fatalf("want RowToLiteral(0) == \"1\", got %q", text)
	}
	row, err = lexer.RowFromLiteral("100")
	if err != nil || row != 99 {
		t.Fatalf("want row 99 from literal \"100\", got (%d, %v)", row, err)
	}
}

func TestParseCellRefTextRelativeOffset(t *testing.T) {
	ref, err := lexer.ParseCellRefText("A1", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ColAbs || ref.RowAbs {
		t.Fatalf("want a fully relative reference, got %#v", ref)
	}
	col, row := ref.Resolve(5, 5)
	if col != 4 || row != 4 {
		t.Fatalf("want A1 relative to (5,5) to resolve to (4,4), got (%d,%d)", col, row)
	}
}

func TestParseCellRefTextAbsoluteAxes(t *testing.T) {
	ref, err := lexer.ParseCellRefText("$B$2", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ref.ColAbs || !ref.RowAbs {
		t.Fatalf("want both axes absolute, got %#v", ref)
	}
	col, row := ref.Resolve(99, 99)
	if col != 1 || row != 1 {
		t.Fatalf("want $B$2 to resolve to (1,1) regardless of base, got (%d,%d)", col, row)
	}
}

func TestParseCellRefTextMalformedColumn(t *testing.T) {
	if _, err := lexer.ParseCellRefText("#1", 0, 0); err == nil {
		t.Fatalf("want an error for a reference with a non-letter column")
	}
}

package lexer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/sheetlang/sheetlang/internal/token"
)

// ForwardsLexer tokenizes the in-cell Forwards expression language
// (spec.md §4.1). It recognizes no keywords and no comments, but does
// recognize cell-reference tokens: optional '$', letters (column),
// optional '$', digits (row), optional '!name' sheet suffix.
type ForwardsLexer struct {
	base
	buffered []token.Token
}

// NewForwards builds a lexer over src for a single Forwards expression.
func NewForwards(src *Source) *ForwardsLexer {
	return &ForwardsLexer{base: newBase(src)}
}

// PeekNextToken returns the next token without consuming it.
func (l *ForwardsLexer) PeekNextToken() token.Token {
	if len(l.buffered) == 0 {
		l.buffered = append(l.buffered, l.scan())
	}
	return l.buffered[0]
}

// GetNextToken returns the next token and advances past it.
func (l *ForwardsLexer) GetNextToken() token.Token {
	if len(l.buffered) > 0 {
		t := l.buffered[0]
		l.buffered = l.buffered[1:]
		return t
	}
	return l.scan()
}

func (l *ForwardsLexer) scan() token.Token {
	l.skipWhitespace()
	pos := l.pos()

	if l.src.AtEnd() {
		return token.Token{Kind: token.END, Position: pos}
	}

	r := l.src.Peek(0)

	if r == '$' || unicode.IsLetter(r) {
		if tok, ok := l.tryCellRef(pos); ok {
			return tok
		}
	}

	switch {
	case isIdentStart(r):
		text := l.scanIdent()
		return token.Token{Kind: token.IDENT, Text: text, Position: pos}

	case isDigit(r):
		text, isFloat, errMsg := l.scanNumber()
		if errMsg != "" {
			return token.Token{Kind: token.ERROR, Text: text, Message: errMsg, Position: pos}
		}
		if isFloat {
			return token.Token{Kind: token.FLOAT, Text: text, Position: pos}
		}
		return token.Token{Kind: token.INT, Text: text, Position: pos}

	case r == '"':
		l.src.Consume()
		text, errMsg := l.scanString()
		if errMsg != "" {
			return token.Token{Kind: token.ERROR, Text: text, Message: errMsg, Position: pos}
		}
		return token.Token{Kind: token.STRING, Text: text, Position: pos}
	}

	return l.scanOperator(pos)
}

// tryCellRef attempts to scan a cell-reference token starting at the
// current position: [$]letters[$]digits[!name]. It backtracks (returns
// ok=false, consuming nothing) if the shape doesn't match, so that a bare
// identifier like "Sqr" or a bare '$' error falls through to normal
// scanning.
func (l *ForwardsLexer) tryCellRef(pos token.Position) (token.Token, bool) {
	start := *l.src // shallow copy for backtracking; Source has only value fields
	var sb strings.Builder

	colDollar := false
	if l.src.Peek(0) == '$' {
		colDollar = true
		sb.WriteRune(l.src.Consume())
	}

	letterStart := sb.Len()
	for unicode.IsLetter(l.src.Peek(0)) {
		sb.WriteRune(l.src.Consume())
	}
	if sb.Len() == letterStart {
		*l.src = start
		return token.Token{}, false
	}

	rowDollar := false
	if l.src.Peek(0) == '$' {
		rowDollar = true
		sb.WriteRune(l.src.Consume())
	}

	digitStart := sb.Len()
	for isDigit(l.src.Peek(0)) {
		sb.WriteRune(l.src.Consume())
	}
	if sb.Len() == digitStart {
		*l.src = start
		return token.Token{}, false
	}

	// Reject "1e10"-style ambiguity: a cell ref never has more letters or a
	// decimal point immediately following the row digits.
	if l.src.Peek(0) == '.' || isIdentPart(l.src.Peek(0)) {
		*l.src = start
		return token.Token{}, false
	}

	if l.src.Peek(0) == '!' {
		sb.WriteRune(l.src.Consume())
		if !isIdentStart(l.src.Peek(0)) {
			*l.src = start
			return token.Token{}, false
		}
		for isIdentPart(l.src.Peek(0)) {
			sb.WriteRune(l.src.Consume())
		}
	}

	_ = colDollar
	_ = rowDollar
	return token.Token{Kind: token.CELLREF, Text: sb.String(), Position: pos}, true
}

func (l *ForwardsLexer) scanOperator(pos token.Position) token.Token {
	r := l.src.Consume()
	switch r {
	case '+':
		return token.Token{Kind: token.PLUS, Text: "+", Position: pos}
	case '-':
		return token.Token{Kind: token.MINUS, Text: "-", Position: pos}
	case '*':
		return token.Token{Kind: token.STAR, Text: "*", Position: pos}
	case '/':
		return token.Token{Kind: token.SLASH, Text: "/", Position: pos}
	case '%':
		return token.Token{Kind: token.PERCENT, Text: "%", Position: pos}
	case '(':
		return token.Token{Kind: token.LPAREN, Text: "(", Position: pos}
	case ')':
		return token.Token{Kind: token.RPAREN, Text: ")", Position: pos}
	case '[':
		return token.Token{Kind: token.LBRACKET, Text: "[", Position: pos}
	case ']':
		return token.Token{Kind: token.RBRACKET, Text: "]", Position: pos}
	case ',':
		return token.Token{Kind: token.COMMA, Text: ",", Position: pos}
	case ':':
		return token.Token{Kind: token.COLON, Text: ":", Position: pos}
	case '=':
		return token.Token{Kind: token.EQ, Text: "=", Position: pos}
	case '<':
		if l.src.Peek(0) == '>' {
			l.src.Consume()
			return token.Token{Kind: token.NEQ, Text: "<>", Position: pos}
		}
		if l.src.Peek(0) == '=' {
			l.src.Consume()
			return token.Token{Kind: token.LTE, Text: "<=", Position: pos}
		}
		return token.Token{Kind: token.LT, Text: "<", Position: pos}
	case '>':
		if l.src.Peek(0) == '=' {
			l.src.Consume()
			return token.Token{Kind: token.GTE, Text: ">=", Position: pos}
		}
		return token.Token{Kind: token.GT, Text: ">", Position: pos}
	}

	return token.Token{Kind: token.ERROR, Text: string(r), Message: "illegal character", Position: pos}
}

// ColumnToString renders a 0-based column index as bijective base-26
// ("A".."Z","AA".."ZZ","AAA"...), per spec.md §4.1/§8 property 6.
func ColumnToString(col int) string {
	var sb []byte
	col++ // bijective base-26 has no "zero" digit
	for col > 0 {
		col--
		sb = append([]byte{byte('A' + col%26)}, sb...)
		col /= 26
	}
	return string(sb)
}

// ColumnFromString parses a bijective base-26 column name (case-insensitive)
// back to a 0-based index. Returns false if s is not composed of letters.
func ColumnFromString(s string) (int, bool) {
	col := 0
	for _, r := range s {
		r = unicode.ToUpper(r)
		if r < 'A' || r > 'Z' {
			return 0, false
		}
		col = col*26 + int(r-'A'+1)
	}
	return col - 1, true
}

// RowFromLiteral converts a 1-based row literal from source text to the
// internal 0-based row index (spec.md §9 Open Question, resolved in
// SPEC_FULL.md §3).
func RowFromLiteral(text string) (int, error) {
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// RowToLiteral converts an internal 0-based row index back to the 1-based
// literal text used in Forwards source and serialization.
func RowToLiteral(row int) string {
	return strconv.Itoa(row + 1)
}

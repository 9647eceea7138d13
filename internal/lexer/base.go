package lexer

import (
	"strings"
	"unicode"

	"github.com/sheetlang/sheetlang/internal/token"
)

// base holds the scanning helpers shared by ForwardsLexer and BackwardsLexer.
// Neither language variant embeds base's exported surface directly; each
// wraps it and adds its own keyword table / cell-reference recognition on
// top, per spec.md §4.1 ("Shared token shape" vs. per-language grammar).
type base struct {
	src *Source
}

func newBase(src *Source) base {
	return base{src: src}
}

func (b *base) pos() token.Position {
	line, col := b.src.Pos()
	return token.Position{Source: b.src.Name(), Line: line, Column: col}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// skipWhitespace consumes spaces, tabs, carriage returns, and newlines.
func (b *base) skipWhitespace() {
	for {
		switch b.src.Peek(0) {
		case ' ', '\t', '\r', '\n':
			b.src.Consume()
		default:
			return
		}
	}
}

// scanIdent consumes a maximal identifier starting at the current position.
func (b *base) scanIdent() string {
	var sb strings.Builder
	for isIdentPart(b.src.Peek(0)) {
		sb.WriteRune(b.src.Consume())
	}
	return sb.String()
}

// scanNumber consumes an integer or decimal literal (with optional exponent)
// and reports whether it saw a '.' or exponent (i.e. is a FLOAT, not INT),
// plus an error message if the exponent was malformed.
func (b *base) scanNumber() (text string, isFloat bool, errMsg string) {
	var sb strings.Builder
	for isDigit(b.src.Peek(0)) {
		sb.WriteRune(b.src.Consume())
	}
	if b.src.Peek(0) == '.' && isDigit(b.src.Peek(1)) {
		isFloat = true
		sb.WriteRune(b.src.Consume()) // '.'
		for isDigit(b.src.Peek(0)) {
			sb.WriteRune(b.src.Consume())
		}
	}
	if b.src.Peek(0) == 'e' || b.src.Peek(0) == 'E' {
		save := sb.String()
		var exp strings.Builder
		exp.WriteRune(b.src.Consume()) // 'e'/'E'
		if b.src.Peek(0) == '+' || b.src.Peek(0) == '-' {
			exp.WriteRune(b.src.Consume())
		}
		digits := 0
		for isDigit(b.src.Peek(0)) {
			exp.WriteRune(b.src.Consume())
			digits++
		}
		if digits == 0 {
			return save + exp.String(), true, "malformed exponent in numeric literal"
		}
		isFloat = true
		sb.WriteString(exp.String())
	}
	return sb.String(), isFloat, ""
}

// scanString consumes a double-quoted string literal with escapes
// \\, \", \n, \t, starting after the opening quote has been consumed by the
// caller. Returns the decoded text and, on an unterminated string, a
// non-empty error message.
func (b *base) scanString() (text string, errMsg string) {
	var sb strings.Builder
	for {
		r := b.src.Peek(0)
		if r == 0 && b.src.AtEnd() {
			return sb.String(), "unterminated string literal"
		}
		if r == '"' {
			b.src.Consume()
			return sb.String(), ""
		}
		if r == '\\' {
			b.src.Consume()
			esc := b.src.Peek(0)
			switch esc {
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteRune(esc)
			}
			if !b.src.AtEnd() {
				b.src.Consume()
			}
			continue
		}
		sb.WriteRune(b.src.Consume())
	}
}

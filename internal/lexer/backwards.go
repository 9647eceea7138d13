package lexer

import "github.com/sheetlang/sheetlang/internal/token"

// BackwardsLexer tokenizes the imperative Backwards scripting language
// (spec.md §4.1/§4.2). It strips whitespace and '#'-to-end-of-line
// comments, and never recognizes cell-reference tokens.
type BackwardsLexer struct {
	base
	buffered []token.Token
}

// NewBackwards builds a lexer over src for Backwards source text.
func NewBackwards(src *Source) *BackwardsLexer {
	return &BackwardsLexer{base: newBase(src)}
}

// PeekNextToken returns the next token without consuming it.
func (l *BackwardsLexer) PeekNextToken() token.Token {
	if len(l.buffered) == 0 {
		l.buffered = append(l.buffered, l.scan())
	}
	return l.buffered[0]
}

// GetNextToken returns the next token and advances past it. Past end of
// input it returns a token.END repeatedly.
func (l *BackwardsLexer) GetNextToken() token.Token {
	if len(l.buffered) > 0 {
		t := l.buffered[0]
		l.buffered = l.buffered[1:]
		return t
	}
	return l.scan()
}

func (l *BackwardsLexer) skipCommentsAndSpace() {
	for {
		l.skipWhitespace()
		if l.src.Peek(0) == '#' {
			for l.src.Peek(0) != '\n' && !l.src.AtEnd() {
				l.src.Consume()
			}
			continue
		}
		return
	}
}

func (l *BackwardsLexer) scan() token.Token {
	l.skipCommentsAndSpace()
	pos := l.pos()

	if l.src.AtEnd() {
		return token.Token{Kind: token.END, Position: pos}
	}

	r := l.src.Peek(0)

	switch {
	case isIdentStart(r):
		text := l.scanIdent()
		if kind, ok := token.Keywords[text]; ok {
			return token.Token{Kind: kind, Text: text, Position: pos}
		}
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

func (l *BackwardsLexer) scanOperator(pos token.Position) token.Token {
	r := l.src.Consume()
	two := func(next rune, k2 token.Kind, k1 token.Kind, text2, text1 string) token.Token {
		if l.src.Peek(0) == next {
			l.src.Consume()
			return token.Token{Kind: k2, Text: text2, Position: pos}
		}
		return token.Token{Kind: k1, Text: text1, Position: pos}
	}

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
	case '{':
		return token.Token{Kind: token.LBRACE, Text: "{", Position: pos}
	case '}':
		return token.Token{Kind: token.RBRACE, Text: "}", Position: pos}
	case ',':
		return token.Token{Kind: token.COMMA, Text: ",", Position: pos}
	case ';':
		return token.Token{Kind: token.SEMICOLON, Text: ";", Position: pos}
	case ':':
		return two('=', token.ASSIGN, token.COLON, ":=", ":")
	case '=':
		return token.Token{Kind: token.EQ, Text: "=", Position: pos}
	case '<':
		if l.src.Peek(0) == '>' {
			l.src.Consume()
			return token.Token{Kind: token.NEQ, Text: "<>", Position: pos}
		}
		return two('=', token.LTE, token.LT, "<=", "<")
	case '>':
		return two('=', token.GTE, token.GT, ">=", ">")
	}

	return token.Token{Kind: token.ERROR, Text: string(r), Message: "illegal character", Position: pos}
}

// Package fparser implements the Forwards recursive-descent parser
// (spec.md §4.2): a single expression with cell-reference primaries, the
// operators `+ - * / %`, unary `-`, comparison, and function calls — no
// statements, no assignment, no flow control.
//
// Like internal/bparser, lex/parse errors are logged (never returned as Go
// errors); panic-mode recovery here simply discards the remainder of the
// source, since a single malformed Forwards expression has nowhere else to
// resynchronize to (spec.md §4.2 "Forwards: end of input").
package fparser

import (
	"fmt"

	"github.com/sheetlang/sheetlang/internal/ast"
	"github.com/sheetlang/sheetlang/internal/lexer"
	"github.com/sheetlang/sheetlang/internal/logger"
	"github.com/sheetlang/sheetlang/internal/symtab"
	"github.com/sheetlang/sheetlang/internal/token"
)

// Parser parses one Forwards expression. BaseCol/BaseRow name the cell the
// expression text lives in, needed to turn a relative cell-reference token
// into a signed offset (see internal/lexer.ParseCellRefText).
type Parser struct {
	lex *lexer.ForwardsLexer
	log logger.Logger

	cur  token.Token
	peek token.Token

	baseCol, baseRow int

	// global resolves bare identifiers — Forwards has no locals, so every
	// name not immediately applied as a call callee still resolves as a
	// global read (spec.md §4.2's "function call" primary covers the
	// applied case; a bare name covers referencing a Backwards-defined
	// global value directly, e.g. a constant set up via Eval).
	global *symtab.Global
}

// New builds a Parser over src, resolving bare names against global and
// relative cell references against (baseCol, baseRow) — the coordinates of
// the cell this Forwards expression is the formula for.
func New(src *lexer.Source, global *symtab.Global, baseCol, baseRow int, log logger.Logger) *Parser {
	p := &Parser{lex: lexer.NewForwards(src), log: log, global: global, baseCol: baseCol, baseRow: baseRow}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.GetNextToken()
}

func (p *Parser) at(k token.Kind) bool { return p.cur.Kind == k }

func (p *Parser) expect(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	p.errorf("expected %s, got %s", k, p.cur.Kind)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	if p.log != nil {
		p.log.Log(logger.Error, fmt.Sprintf(format, args...), p.cur.Position)
	}
}

// ParseExpression parses the whole cell body as a single expression;
// leftover tokens (a malformed trailing fragment) are logged and discarded
// rather than causing a second synchronization pass, per spec.md §4.2.
func (p *Parser) ParseExpression() ast.Expression {
	expr := p.parseRelation()
	if !p.at(token.END) {
		p.errorf("unexpected trailing token %s", p.cur.Kind)
		for !p.at(token.END) {
			p.advance()
		}
	}
	return expr
}

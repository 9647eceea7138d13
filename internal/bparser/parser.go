// Package bparser implements the Backwards recursive-descent parser
// (spec.md §4.2): functionDecl* statementSeq, producing an *ast.Program
// with every name already resolved to a GlobalRead/Write or ScopeRead/Write
// slot index, per internal/symtab's parse-time resolution contract.
//
// Errors are never returned as Go errors (spec.md §7: LexError, ParseError,
// SymbolError are logged-and-recovered); ParseProgram always returns an
// *ast.Program, possibly one riddled with Nil-constant placeholders where
// recovery gave up on a particular construct, and the caller inspects the
// Logger for diagnostics.
package bparser

import (
	"fmt"

	"github.com/sheetlang/sheetlang/internal/ast"
	"github.com/sheetlang/sheetlang/internal/lexer"
	"github.com/sheetlang/sheetlang/internal/logger"
	"github.com/sheetlang/sheetlang/internal/symtab"
	"github.com/sheetlang/sheetlang/internal/token"
)

// Parser holds the one-token lookahead lexer plus the compile-time symbol
// tables: Global is shared across an entire program (and, for internal/
// stdlib's Eval built-in, across repeated calls into the same running
// context); scope is the innermost function scope, nil at top level.
type Parser struct {
	lex *lexer.BackwardsLexer
	log logger.Logger

	cur  token.Token
	peek token.Token

	global *symtab.Global
	scope  *symtab.Scope // nil outside any function body
}

// New builds a Parser over source, resolving names against global (reused
// across parses so previously declared functions remain visible).
func New(src *lexer.Source, global *symtab.Global, log logger.Logger) *Parser {
	p := &Parser{lex: lexer.NewBackwards(src), log: log, global: global}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.GetNextToken()
}

func (p *Parser) at(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekAt(k token.Kind) bool { return p.peek.Kind == k }

// expect consumes cur if it matches k, else logs a ParseError and leaves
// cur in place for the caller's recovery to handle.
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

// statementStarters are the tokens synchronize() treats as the start of a
// fresh statement, per spec.md §4.2's panic-mode recovery ("next top-level
// statement or function").
var statementStarters = map[token.Kind]bool{
	token.FUNCTION: true,
	token.SET:      true,
	token.IF:       true,
	token.WHILE:    true,
	token.FOR:      true,
	token.CALL:     true,
	token.RETURN:   true,
	token.BREAK:    true,
	token.CONTINUE: true,
}

// synchronize skips tokens until a statement starter, a block closer
// (end/else/elseif), or end-of-input, per spec.md §4.2 panic-mode recovery.
func (p *Parser) synchronize() {
	for !p.at(token.END) {
		switch p.cur.Kind {
		case token.END_KW, token.ELSE, token.ELSEIF, token.SEMICOLON:
			return
		}
		if statementStarters[p.cur.Kind] {
			return
		}
		p.advance()
	}
}

// ParseProgram parses a complete Backwards source unit (spec.md §4.2
// `program := functionDecl* statementSeq`).
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.at(token.FUNCTION) {
		if fd := p.parseFunctionDecl(); fd != nil {
			prog.Functions = append(prog.Functions, fd)
		}
	}
	prog.Body = p.parseStatementSeq()
	return prog
}

// Global exposes the symbol table this parser resolved names against, for
// callers (internal/stdlib's Eval) that need to keep reusing it.
func (p *Parser) Global() *symtab.Global { return p.global }

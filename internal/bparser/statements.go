package bparser

import (
	"github.com/sheetlang/sheetlang/internal/ast"
	"github.com/sheetlang/sheetlang/internal/symtab"
	"github.com/sheetlang/sheetlang/internal/token"
	"github.com/sheetlang/sheetlang/internal/value"
)

// parseFunctionDecl parses `"function" IDENT "(" paramList? ")" "is"
// statementSeq "end"` (spec.md §4.2). The declared name is bound to a
// GlobalSlot when this is a top-level declaration (p.scope == nil at entry)
// or a LocalSlot of the enclosing scope otherwise, giving nested function
// declarations the closure-building behavior spec.md §8 demonstrates.
func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	pos := p.cur.Position
	p.expect(token.FUNCTION)

	name := p.cur.Text
	var target ast.Lvalue
	if p.scope == nil {
		idx := p.global.Declare(name)
		target = &ast.GlobalSlot{Position: pos, Name: name, Index: idx}
	} else {
		slot := p.scope.Declare(name)
		target = &ast.LocalSlot{Position: pos, Name: name, Depth: 0, Slot: slot}
	}
	if !p.expect(token.IDENT) {
		p.synchronize()
	}

	if !p.expect(token.LPAREN) {
		p.synchronize()
	}

	outerScope := p.scope
	fnScope := symtab.NewScope(outerScope)
	p.scope = fnScope

	var params []string
	for !p.at(token.RPAREN) && !p.at(token.END) {
		pname := p.cur.Text
		if p.expect(token.IDENT) {
			fnScope.DeclareParam(pname)
			params = append(params, pname)
		} else {
			break
		}
		if p.at(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	p.expect(token.IS)

	body := p.parseStatementSeq()
	p.expect(token.END_KW)

	p.scope = outerScope

	return &ast.FunctionDecl{Position: pos, Name: name, Params: params, Body: body, Target: target}
}

// parseStatementSeq parses a run of statements, stopping at a block closer
// (end/else/elseif) or end-of-input; semicolons between statements are
// optional and simply skipped.
func (p *Parser) parseStatementSeq() *ast.Block {
	pos := p.cur.Position
	block := &ast.Block{Position: pos}
	for !p.at(token.END) && p.cur.Kind != token.END_KW && p.cur.Kind != token.ELSE && p.cur.Kind != token.ELSEIF {
		if p.at(token.SEMICOLON) {
			p.advance()
			continue
		}
		if p.at(token.FUNCTION) {
			block.Stmts = append(block.Stmts, p.parseFunctionDecl())
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.SET:
		return p.parseAssign()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.CALL:
		return p.parseCall()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		pos := p.cur.Position
		p.advance()
		return &ast.Break{Position: pos}
	case token.CONTINUE:
		pos := p.cur.Position
		p.advance()
		return &ast.Continue{Position: pos}
	default:
		p.errorf("unexpected token %s starting a statement", p.cur.Kind)
		p.synchronize()
		return &ast.Empty{Position: p.cur.Position}
	}
}

// parseAssign parses `"set" lvalue "to" expression`.
func (p *Parser) parseAssign() ast.Statement {
	pos := p.cur.Position
	p.advance() // consume "set"
	target := p.parseLvalue()
	p.expect(token.TO)
	expr := p.parseExpression()
	return &ast.Assign{Position: pos, Target: target, Expr: expr}
}

// parseLvalue parses a bare name, optionally followed by one or more index
// suffixes, and resolves it against the active scope/global tables.
func (p *Parser) parseLvalue() ast.Lvalue {
	pos := p.cur.Position
	name := p.cur.Text
	if !p.expect(token.IDENT) {
		return &ast.GlobalSlot{Position: pos, Name: name, Index: -1}
	}

	var target ast.Lvalue = p.resolveTarget(pos, name)
	for p.at(token.LBRACKET) {
		p.advance()
		key := p.parseExpression()
		p.expect(token.RBRACKET)
		container := lvalueToExpr(target)
		target = &ast.IndexSlot{Position: pos, Container: container, Key: key}
	}
	return target
}

// resolveTarget resolves name for assignment. Inside a function, a name
// already declared in the current scope or an enclosing one reuses that
// slot (so assigning to a captured name writes the enclosing frame);
// otherwise it is declared as a new local of the current function scope
// (spec.md §4.3 "the parser increments a slot counter for each local
// introduced by assignment-to-new-name"). At top level it declares (or
// reuses) a global.
func (p *Parser) resolveTarget(pos token.Position, name string) ast.Lvalue {
	if p.scope != nil {
		if slot, ok := p.scope.LocalLookup(name); ok {
			return &ast.LocalSlot{Position: pos, Name: name, Depth: 0, Slot: slot}
		}
		if depth, slot, ok := p.scope.Lookup(name); ok {
			return &ast.LocalSlot{Position: pos, Name: name, Depth: depth, Slot: slot}
		}
		slot := p.scope.Declare(name)
		return &ast.LocalSlot{Position: pos, Name: name, Depth: 0, Slot: slot}
	}
	idx := p.global.Declare(name)
	return &ast.GlobalSlot{Position: pos, Name: name, Index: idx}
}

func lvalueToExpr(l ast.Lvalue) ast.Expression {
	switch t := l.(type) {
	case *ast.GlobalSlot:
		return &ast.GlobalRead{Position: t.Position, Name: t.Name, Index: t.Index}
	case *ast.LocalSlot:
		return &ast.ScopeRead{Position: t.Position, Name: t.Name, Depth: t.Depth, Slot: t.Slot}
	case *ast.IndexSlot:
		return &ast.Index{Position: t.Position, Container: t.Container, Key: t.Key}
	default:
		return &ast.Constant{Position: l.Pos(), Value: value.Nil{}}
	}
}

func (p *Parser) parseIf() ast.Statement {
	pos := p.cur.Position
	p.advance()
	cond := p.parseExpression()
	p.expect(token.THEN)
	then := p.parseStatementSeq()

	node := &ast.If{Position: pos, Cond: cond, Then: then}
	for p.at(token.ELSEIF) {
		p.advance()
		eiCond := p.parseExpression()
		p.expect(token.THEN)
		eiThen := p.parseStatementSeq()
		node.ElseIfs = append(node.ElseIfs, ast.ElseIf{Cond: eiCond, Then: eiThen})
	}
	if p.at(token.ELSE) {
		p.advance()
		node.Else = p.parseStatementSeq()
	}
	p.expect(token.END_KW)
	return node
}

func (p *Parser) parseWhile() ast.Statement {
	pos := p.cur.Position
	p.advance()
	cond := p.parseExpression()
	p.expect(token.DO)
	body := p.parseStatementSeq()
	p.expect(token.END_KW)
	return &ast.While{Position: pos, Cond: cond, Body: body}
}

func (p *Parser) parseFor() ast.Statement {
	pos := p.cur.Position
	p.advance()

	varPos := p.cur.Position
	varName := p.cur.Text
	p.expect(token.IDENT)
	loopVar := p.resolveTarget(varPos, varName)

	p.expect(token.FROM)
	from := p.parseExpression()
	p.expect(token.TO)
	to := p.parseExpression()

	var step ast.Expression
	if p.at(token.STEP) {
		p.advance()
		step = p.parseExpression()
	}
	p.expect(token.DO)
	body := p.parseStatementSeq()
	p.expect(token.END_KW)

	return &ast.For{Position: pos, Var: loopVar, From: from, To: to, Step: step, Body: body}
}

// parseCall parses `"call" functionCall`, a bare invocation used as a
// statement whose result is discarded.
func (p *Parser) parseCall() ast.Statement {
	pos := p.cur.Position
	p.advance()
	expr := p.parseExpression()
	return &ast.ExprStatement{Position: pos, Expr: expr}
}

func (p *Parser) parseReturn() ast.Statement {
	pos := p.cur.Position
	p.advance()
	if p.at(token.SEMICOLON) || p.at(token.END_KW) || p.at(token.ELSE) || p.at(token.ELSEIF) || p.at(token.END) {
		return &ast.Return{Position: pos}
	}
	expr := p.parseExpression()
	return &ast.Return{Position: pos, Expr: expr}
}

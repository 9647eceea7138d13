package bparser

import (
	"github.com/sheetlang/sheetlang/internal/ast"
	"github.com/sheetlang/sheetlang/internal/token"
	"github.com/sheetlang/sheetlang/internal/value"
)

// parseExpression is the entry point: predicate (and/or) is the loosest
// binding level in Backwards (spec.md §4.2 expression grammar).
func (p *Parser) parseExpression() ast.Expression {
	return p.parsePredicate()
}

func (p *Parser) parsePredicate() ast.Expression {
	left := p.parseRelation()
	for p.at(token.AND) || p.at(token.OR) {
		pos := p.cur.Position
		op := ast.OpAnd
		if p.at(token.OR) {
			op = ast.OpOr
		}
		p.advance()
		right := p.parseRelation()
		left = &ast.Binary{Position: pos, Op: op, Left: left, Right: right}
	}
	return left
}

var relOps = map[token.Kind]ast.BinOp{
	token.EQ:  ast.OpEq,
	token.NEQ: ast.OpNeq,
	token.LT:  ast.OpLt,
	token.LTE: ast.OpLte,
	token.GT:  ast.OpGt,
	token.GTE: ast.OpGte,
}

func (p *Parser) parseRelation() ast.Expression {
	left := p.parseSimple()
	if op, ok := relOps[p.cur.Kind]; ok {
		pos := p.cur.Position
		p.advance()
		right := p.parseSimple()
		return &ast.Binary{Position: pos, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseSimple() ast.Expression {
	left := p.parseTerm()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		pos := p.cur.Position
		op := ast.OpAdd
		if p.at(token.MINUS) {
			op = ast.OpSub
		}
		p.advance()
		right := p.parseTerm()
		left = &ast.Binary{Position: pos, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseTerm() ast.Expression {
	left := p.parseUnary()
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.PERCENT) {
		pos := p.cur.Position
		var op ast.BinOp
		switch p.cur.Kind {
		case token.STAR:
			op = ast.OpMul
		case token.SLASH:
			op = ast.OpDiv
		default:
			op = ast.OpMod
		}
		p.advance()
		right := p.parseUnary()
		left = &ast.Binary{Position: pos, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.at(token.MINUS) {
		pos := p.cur.Position
		p.advance()
		child := p.parseUnary()
		return &ast.Unary{Position: pos, Op: ast.OpNeg, Child: child}
	}
	if p.at(token.NOT) {
		pos := p.cur.Position
		p.advance()
		child := p.parseUnary()
		return &ast.Unary{Position: pos, Op: ast.OpNot, Child: child}
	}
	return p.parseReferent()
}

// parseReferent parses a primary expression followed by zero or more
// index/call suffixes (spec.md §4.2 "referent").
func (p *Parser) parseReferent() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch {
		case p.at(token.LBRACKET):
			pos := p.cur.Position
			p.advance()
			key := p.parseExpression()
			p.expect(token.RBRACKET)
			expr = &ast.Index{Position: pos, Container: expr, Key: key}
		case p.at(token.LPAREN):
			pos := p.cur.Position
			p.advance()
			var args []ast.Expression
			for !p.at(token.RPAREN) && !p.at(token.END) {
				args = append(args, p.parseExpression())
				if p.at(token.COMMA) {
					p.advance()
				} else {
					break
				}
			}
			p.expect(token.RPAREN)
			expr = &ast.FunctionCall{Position: pos, Callee: expr, Args: args}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	pos := p.cur.Position
	switch p.cur.Kind {
	case token.INT, token.FLOAT:
		text := p.cur.Text
		p.advance()
		f, err := value.FloatFromString(text)
		if err != nil {
			p.errorf("invalid numeric literal %q", text)
			return &ast.Constant{Position: pos, Value: value.FloatFromInt(0)}
		}
		return &ast.Constant{Position: pos, Value: f}

	case token.STRING:
		text := p.cur.Text
		p.advance()
		return &ast.Constant{Position: pos, Value: value.String(text)}

	case token.IDENT:
		name := p.cur.Text
		p.advance()
		return p.resolveRead(pos, name)

	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return expr

	case token.LBRACE:
		return p.parseBuilder()

	default:
		p.errorf("unexpected token %s in expression", p.cur.Kind)
		p.synchronize()
		return &ast.Constant{Position: pos, Value: value.Nil{}}
	}
}

// resolveRead resolves a bare name reference: local/captured scope first,
// then an existing global, then (for reads of names never declared
// anywhere, e.g. a forward reference to a not-yet-parsed top-level
// function) a freshly interned global — spec.md §4.3 resolves every name
// exactly once, at parse time.
func (p *Parser) resolveRead(pos token.Position, name string) ast.Expression {
	if p.scope != nil {
		if depth, slot, ok := p.scope.Lookup(name); ok {
			return &ast.ScopeRead{Position: pos, Name: name, Depth: depth, Slot: slot}
		}
	}
	idx := p.global.Declare(name)
	return &ast.GlobalRead{Position: pos, Name: name, Index: idx}
}

// parseBuilder parses a `{...}` literal: `{}` is an empty array, a leading
// `key: value` pair makes it a dictionary, anything else an array (spec.md
// §4.2 builder literal).
func (p *Parser) parseBuilder() ast.Expression {
	pos := p.cur.Position
	p.expect(token.LBRACE)

	if p.at(token.RBRACE) {
		p.advance()
		return &ast.BuildArray{Position: pos}
	}

	first := p.parseExpression()
	if p.at(token.COLON) {
		p.advance()
		firstVal := p.parseExpression()
		pairs := []ast.DictPair{{Key: first, Value: firstVal}}
		for p.at(token.COMMA) {
			p.advance()
			k := p.parseExpression()
			p.expect(token.COLON)
			v := p.parseExpression()
			pairs = append(pairs, ast.DictPair{Key: k, Value: v})
		}
		p.expect(token.RBRACE)
		return &ast.BuildDictionary{Position: pos, Pairs: pairs}
	}

	elems := []ast.Expression{first}
	for p.at(token.COMMA) {
		p.advance()
		elems = append(elems, p.parseExpression())
	}
	p.expect(token.RBRACE)
	return &ast.BuildArray{Position: pos, Elements: elems}
}

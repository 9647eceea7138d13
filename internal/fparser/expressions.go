package fparser

import (
	"github.com/sheetlang/sheetlang/internal/ast"
	"github.com/sheetlang/sheetlang/internal/lexer"
	"github.com/sheetlang/sheetlang/internal/token"
	"github.com/sheetlang/sheetlang/internal/value"
)

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

// parseReferent parses a primary followed by index or call suffixes, and
// the `cellRef : cellRef` range-literal form (spec.md §3 CellRange).
func (p *Parser) parseReferent() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch {
		case p.at(token.LBRACKET):
			pos := p.cur.Position
			p.advance()
			key := p.parseRelation()
			p.expect(token.RBRACKET)
			expr = &ast.Index{Position: pos, Container: expr, Key: key}
		case p.at(token.LPAREN):
			pos := p.cur.Position
			p.advance()
			var args []ast.Expression
			for !p.at(token.RPAREN) && !p.at(token.END) {
				args = append(args, p.parseRelation())
				if p.at(token.COMMA) {
					p.advance()
				} else {
					break
				}
			}
			p.expect(token.RPAREN)
			expr = &ast.FunctionCall{Position: pos, Callee: expr, Args: args}
		case p.at(token.COLON):
			if left, ok := expr.(*ast.CellReference); ok {
				pos := p.cur.Position
				p.advance()
				right, ok := p.parsePrimary().(*ast.CellReference)
				if !ok {
					p.errorf("expected a cell reference after ':'")
					return expr
				}
				expr = &ast.CellRangeExpr{Position: pos, Range: value.CellRange{TopLeft: left.Ref, BottomRight: right.Ref}}
				continue
			}
			return expr
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

	case token.CELLREF:
		text := p.cur.Text
		p.advance()
		ref, err := lexer.ParseCellRefText(text, p.baseCol, p.baseRow)
		if err != nil {
			p.errorf("%s", err)
			return &ast.Constant{Position: pos, Value: value.Nil{}}
		}
		return &ast.CellReference{Position: pos, Ref: ref}

	case token.IDENT:
		name := p.cur.Text
		p.advance()
		idx := p.global.Declare(name)
		return &ast.GlobalRead{Position: pos, Name: name, Index: idx}

	case token.LPAREN:
		p.advance()
		expr := p.parseRelation()
		p.expect(token.RPAREN)
		return expr

	case token.LBRACE:
		return p.parseBuilder()

	default:
		p.errorf("unexpected token %s in expression", p.cur.Kind)
		return &ast.Constant{Position: pos, Value: value.Nil{}}
	}
}

// parseBuilder parses a `{...}` array/dictionary literal, same shape as
// Backwards (spec.md §4.2 builder literal is shared grammar between both
// languages).
func (p *Parser) parseBuilder() ast.Expression {
	pos := p.cur.Position
	p.expect(token.LBRACE)

	if p.at(token.RBRACE) {
		p.advance()
		return &ast.BuildArray{Position: pos}
	}

	first := p.parseRelation()
	if p.at(token.COLON) {
		p.advance()
		firstVal := p.parseRelation()
		pairs := []ast.DictPair{{Key: first, Value: firstVal}}
		for p.at(token.COMMA) {
			p.advance()
			k := p.parseRelation()
			p.expect(token.COLON)
			v := p.parseRelation()
			pairs = append(pairs, ast.DictPair{Key: k, Value: v})
		}
		p.expect(token.RBRACE)
		return &ast.BuildDictionary{Position: pos, Pairs: pairs}
	}

	elems := []ast.Expression{first}
	for p.at(token.COMMA) {
		p.advance()
		elems = append(elems, p.parseRelation())
	}
	p.expect(token.RBRACE)
	return &ast.BuildArray{Position: pos, Elements: elems}
}

package engine

import (
	"github.com/sheetlang/sheetlang/internal/ast"
	"github.com/sheetlang/sheetlang/internal/token"
	"github.com/sheetlang/sheetlang/internal/value"
)

func evalUnary(pos token.Position, op ast.UnOp, v value.Value) (value.Value, error) {
	switch op {
	case ast.OpNeg:
		f, ok := v.(value.Float)
		if !ok {
			return nil, NewError(TypeMismatch, pos, "unary - requires a number, got %s", v.TypeName())
		}
		return f.Neg(), nil
	case ast.OpNot:
		return boolFloat(!truthy(v)), nil
	default:
		return nil, NewError(TypeMismatch, pos, "unsupported unary operator")
	}
}

func boolFloat(b bool) value.Float {
	if b {
		return value.FloatFromInt(1)
	}
	return value.FloatFromInt(0)
}

// evalBinary implements the arithmetic/comparison semantics: + is addition
// over numbers and concatenation over strings; all other arithmetic
// requires two numbers; comparisons require same-kind operands (numeric or
// string), except = and <> which additionally accept nil (equal only to
// nil itself).
func evalBinary(pos token.Position, op ast.BinOp, l, r value.Value) (value.Value, error) {
	switch op {
	case ast.OpAdd:
		if lf, ok := l.(value.Float); ok {
			rf, ok := r.(value.Float)
			if !ok {
				return nil, typeMismatch(pos, op, l, r)
			}
			return lf.Add(rf), nil
		}
		if ls, ok := l.(value.String); ok {
			rs, ok := r.(value.String)
			if !ok {
				return nil, typeMismatch(pos, op, l, r)
			}
			return value.String(string(ls) + string(rs)), nil
		}
		return nil, typeMismatch(pos, op, l, r)

	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		lf, ok1 := l.(value.Float)
		rf, ok2 := r.(value.Float)
		if !ok1 || !ok2 {
			return nil, typeMismatch(pos, op, l, r)
		}
		switch op {
		case ast.OpSub:
			return lf.Sub(rf), nil
		case ast.OpMul:
			return lf.Mul(rf), nil
		case ast.OpDiv:
			return lf.Div(rf), nil
		default:
			return lf.Mod(rf), nil
		}

	case ast.OpEq, ast.OpNeq:
		eq, err := valuesEqual(pos, l, r)
		if err != nil {
			return nil, err
		}
		if op == ast.OpNeq {
			eq = !eq
		}
		return boolFloat(eq), nil

	case ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		cmp, err := compareValues(pos, l, r)
		if err != nil {
			return nil, err
		}
		switch op {
		case ast.OpLt:
			return boolFloat(cmp < 0), nil
		case ast.OpLte:
			return boolFloat(cmp <= 0), nil
		case ast.OpGt:
			return boolFloat(cmp > 0), nil
		default:
			return boolFloat(cmp >= 0), nil
		}

	default:
		return nil, NewError(TypeMismatch, pos, "unsupported binary operator")
	}
}

func typeMismatch(pos token.Position, op ast.BinOp, l, r value.Value) error {
	return NewError(TypeMismatch, pos, "operator %s not defined for %s and %s", op, l.TypeName(), r.TypeName())
}

// valuesEqual implements = / <> comparison: nil equals only nil, numbers
// compare by decimal equality (after special-tag handling), strings
// compare bytewise, and any other same-kind pairing (arrays, dictionaries,
// functions, cell refs/ranges) is a TypeMismatch — this system never
// defines structural equality for reference types.
func valuesEqual(pos token.Position, l, r value.Value) (bool, error) {
	_, lNil := l.(value.Nil)
	_, rNil := r.(value.Nil)
	if lNil || rNil {
		return lNil && rNil, nil
	}
	if lf, ok := l.(value.Float); ok {
		rf, ok := r.(value.Float)
		if !ok {
			return false, typeMismatchEq(pos, l, r)
		}
		return lf.Equal(rf), nil
	}
	if ls, ok := l.(value.String); ok {
		rs, ok := r.(value.String)
		if !ok {
			return false, typeMismatchEq(pos, l, r)
		}
		return ls == rs, nil
	}
	return false, typeMismatchEq(pos, l, r)
}

func typeMismatchEq(pos token.Position, l, r value.Value) error {
	return NewError(TypeMismatch, pos, "cannot compare %s and %s", l.TypeName(), r.TypeName())
}

// compareValues implements ordering comparisons: numeric decimal order or
// bytewise string order; any other pairing is a TypeMismatch.
func compareValues(pos token.Position, l, r value.Value) (int, error) {
	if lf, ok := l.(value.Float); ok {
		rf, ok := r.(value.Float)
		if !ok {
			return 0, typeMismatchEq(pos, l, r)
		}
		if !lf.IsFinite() || !rf.IsFinite() {
			return 0, NewError(DomainError, pos, "cannot order non-finite values")
		}
		return lf.Cmp(rf), nil
	}
	if ls, ok := l.(value.String); ok {
		rs, ok := r.(value.String)
		if !ok {
			return 0, typeMismatchEq(pos, l, r)
		}
		switch {
		case ls < rs:
			return -1, nil
		case ls > rs:
			return 1, nil
		default:
			return 0, nil
		}
	}
	return 0, typeMismatchEq(pos, l, r)
}

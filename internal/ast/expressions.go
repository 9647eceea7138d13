package ast

import (
	"fmt"
	"strings"

	"github.com/sheetlang/sheetlang/internal/token"
	"github.com/sheetlang/sheetlang/internal/value"
)

// BinOp and UnOp enumerate the operators Binary/Unary/Ternary nodes carry;
// kept as a small int enum rather than re-using token.Kind so the
// evaluator's switch isn't coupled to lexical spelling.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
)

func (op BinOp) String() string {
	names := [...]string{"+", "-", "*", "/", "%", "=", "<>", "<", "<=", ">", ">=", "and", "or"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

type UnOp int

const (
	OpNeg UnOp = iota
	OpNot
)

func (op UnOp) String() string {
	if op == OpNot {
		return "not"
	}
	return "-"
}

// Constant is a literal value baked in at parse time.
type Constant struct {
	Position token.Position
	Value    value.Value
}

func (c *Constant) Pos() token.Position { return c.Position }
func (c *Constant) String() string      { return fmt.Sprintf("%v", c.Value) }
func (*Constant) expressionNode()       {}

// GlobalRead reads a global-scope slot resolved at parse time (spec.md §3).
type GlobalRead struct {
	Position token.Position
	Name     string
	Index    int
}

func (g *GlobalRead) Pos() token.Position { return g.Position }
func (g *GlobalRead) String() string      { return g.Name }
func (*GlobalRead) expressionNode()       {}

// ScopeRead reads a local-or-captured slot resolved at parse time to a
// fixed (depth, slot) pair — depth 0 is the current frame, depth > 0 walks
// outward through captured frames (spec.md §4.3).
type ScopeRead struct {
	Position token.Position
	Name     string
	Depth    int
	Slot     int
}

func (s *ScopeRead) Pos() token.Position { return s.Position }
func (s *ScopeRead) String() string      { return s.Name }
func (*ScopeRead) expressionNode()       {}

// BuildArray constructs an Array from evaluated children, in order.
type BuildArray struct {
	Position token.Position
	Elements []Expression
}

func (b *BuildArray) Pos() token.Position { return b.Position }
func (b *BuildArray) String() string {
	parts := make([]string, len(b.Elements))
	for i, e := range b.Elements {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (*BuildArray) expressionNode() {}

// DictPair is one key:value pair inside a BuildDictionary literal.
type DictPair struct {
	Key   Expression
	Value Expression
}

// BuildDictionary constructs a Dictionary from evaluated key/value pairs,
// in the order written (spec.md §3 Dictionary "iteration order is
// insertion order").
type BuildDictionary struct {
	Position token.Position
	Pairs    []DictPair
}

func (b *BuildDictionary) Pos() token.Position { return b.Position }
func (b *BuildDictionary) String() string {
	parts := make([]string, len(b.Pairs))
	for i, p := range b.Pairs {
		parts[i] = p.Key.String() + ": " + p.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (*BuildDictionary) expressionNode() {}

// FunctionCall invokes Callee (an expression resolving to a Function
// value) with Args (spec.md §4.4).
type FunctionCall struct {
	Position token.Position
	Callee   Expression
	Args     []Expression
}

func (f *FunctionCall) Pos() token.Position { return f.Position }
func (f *FunctionCall) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return f.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}
func (*FunctionCall) expressionNode() {}

// Index reads container[key] (spec.md §4.4 Indexing).
type Index struct {
	Position  token.Position
	Container Expression
	Key       Expression
}

func (x *Index) Pos() token.Position { return x.Position }
func (x *Index) String() string      { return x.Container.String() + "[" + x.Key.String() + "]" }
func (*Index) expressionNode()       {}

// Unary applies a unary operator to Child.
type Unary struct {
	Position token.Position
	Op       UnOp
	Child    Expression
}

func (u *Unary) Pos() token.Position { return u.Position }
func (u *Unary) String() string      { return u.Op.String() + u.Child.String() }
func (*Unary) expressionNode()       {}

// Binary applies a binary operator to Left and Right.
type Binary struct {
	Position token.Position
	Op       BinOp
	Left     Expression
	Right    Expression
}

func (b *Binary) Pos() token.Position { return b.Position }
func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}
func (*Binary) expressionNode() {}

// TernOp enumerates ternary-form operators; only the conditional form
// (cond ? a : b) is defined, and neither parser produces Ternary nodes.
type TernOp int

const (
	OpCond TernOp = iota
)

// Ternary applies a 3-ary operator to A, B, C.
type Ternary struct {
	Position token.Position
	Op       TernOp
	A, B, C  Expression
}

func (t *Ternary) Pos() token.Position { return t.Position }
func (t *Ternary) String() string {
	return "(" + t.A.String() + " ? " + t.B.String() + " : " + t.C.String() + ")"
}
func (*Ternary) expressionNode() {}

// CellReference is a Forwards cell-reference literal, parsed once at
// compile time into a value.CellRef (spec.md §3).
type CellReference struct {
	Position token.Position
	Ref      value.CellRef
}

func (c *CellReference) Pos() token.Position { return c.Position }
func (c *CellReference) String() string      { return c.Ref.String(0, 0) }
func (*CellReference) expressionNode()       {}

// CellRangeExpr is a Forwards cell-range literal ("A1:B3").
type CellRangeExpr struct {
	Position token.Position
	Range    value.CellRange
}

func (c *CellRangeExpr) Pos() token.Position { return c.Position }
func (c *CellRangeExpr) String() string {
	return c.Range.TopLeft.String(0, 0) + ":" + c.Range.BottomRight.String(0, 0)
}
func (*CellRangeExpr) expressionNode() {}

package ast

import "github.com/sheetlang/sheetlang/internal/token"

// Lvalue is the assignable-target tagged union spec.md §9's REDESIGN FLAGS
// ask for in place of the original's virtual Getter/Setter pair: the
// evaluator dispatches on concrete type once per assignment instead of
// through two layers of polymorphism.
type Lvalue interface {
	Node
	lvalueNode()
}

// GlobalSlot assigns to a global-scope slot.
type GlobalSlot struct {
	Position token.Position
	Name     string
	Index    int
}

func (g *GlobalSlot) Pos() token.Position { return g.Position }
func (g *GlobalSlot) String() string      { return g.Name }
func (*GlobalSlot) lvalueNode()           {}

// LocalSlot assigns to a local-or-captured slot at a fixed (depth, slot).
type LocalSlot struct {
	Position token.Position
	Name     string
	Depth    int
	Slot     int
}

func (l *LocalSlot) Pos() token.Position { return l.Position }
func (l *LocalSlot) String() string      { return l.Name }
func (*LocalSlot) lvalueNode()           {}

// IndexSlot assigns to Container[Key] (array element or dictionary entry).
type IndexSlot struct {
	Position  token.Position
	Container Expression
	Key       Expression
}

func (x *IndexSlot) Pos() token.Position { return x.Position }
func (x *IndexSlot) String() string      { return x.Container.String() + "[" + x.Key.String() + "]" }
func (*IndexSlot) lvalueNode()           {}

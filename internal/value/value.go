// Package value implements the runtime value tower shared by Forwards and
// Backwards (spec.md §3): Float, String, Nil, Array, Dictionary, Function,
// CellRef, and CellRange. Every evaluated expression produces exactly one
// Value.
package value

// Kind tags which tower variant a Value is.
type Kind int

const (
	KindFloat Kind = iota
	KindString
	KindNil
	KindArray
	KindDictionary
	KindFunction
	KindCellRef
	KindCellRange
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindNil:
		return "Nil"
	case KindArray:
		return "Array"
	case KindDictionary:
		return "Dictionary"
	case KindFunction:
		return "Function"
	case KindCellRef:
		return "CellRef"
	case KindCellRange:
		return "CellRange"
	default:
		return "Unknown"
	}
}

// Value is the common interface every tower variant implements.
type Value interface {
	Kind() Kind
	// TypeName is the diagnostic name used in TypeMismatch messages.
	TypeName() string
}

// Context is the minimal calling-context contract a built-in or
// user-function native shim needs at the value layer: an opaque handle
// passed through to Go functions registered as value.Function.Builtin and
// type-asserted back to *engine.CallingContext by the engine/stdlib
// packages that actually know its shape. This indirection exists because
// Function values (in this package) are called *by* the engine, which
// would otherwise create an import cycle value<->engine; spec.md §9's
// design note about re-expressing virtual dispatch as a plain interface
// applies here too.
type Context interface{}

package value

// Nil is the distinguished absence-of-value variant (spec.md §3); it is
// distinct from zero and from the empty string.
type Nil struct{}

func (Nil) Kind() Kind      { return KindNil }
func (Nil) TypeName() string { return "Nil" }

// NilValue is the single shared Nil instance; Nil carries no state so
// callers may use this instead of allocating their own.
var NilValue = Nil{}

// String is an immutable opaque byte sequence (spec.md §3): length is byte
// length, not rune count, and no encoding is assumed or validated.
type String string

func (String) Kind() Kind        { return KindString }
func (String) TypeName() string  { return "String" }
func (s String) Len() int        { return len(string(s)) }

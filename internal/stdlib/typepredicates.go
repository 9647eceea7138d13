package stdlib

import "github.com/sheetlang/sheetlang/internal/value"

// registerTypePredicates registers one Is* built-in per value.Kind (spec.md
// §4.6 "type predicates (IsFloat … IsCellRange)").
func registerTypePredicates(r *Registry) {
	register := func(name string, kind value.Kind) {
		k := kind
		r.Register(name, CategoryTypePredicate, value.NewBuiltin(name, value.ArityUnary, func(_ value.Context, args []value.Value) (value.Value, error) {
			return boolValue(args[0].Kind() == k), nil
		}))
	}
	register("IsFloat", value.KindFloat)
	register("IsString", value.KindString)
	register("IsNil", value.KindNil)
	register("IsArray", value.KindArray)
	register("IsDictionary", value.KindDictionary)
	register("IsFunction", value.KindFunction)
	register("IsCellRef", value.KindCellRef)
	register("IsCellRange", value.KindCellRange)
}

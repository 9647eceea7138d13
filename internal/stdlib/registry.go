// Package stdlib registers the built-in function roster spec.md §4.6 names
// into a symtab.Global/engine.CallingContext pair: numeric, container,
// string, type-predicate, diagnostic, numeric-state, spreadsheet, and meta
// (Eval/EnterDebugger) functions, each wrapped as a value.Function whose
// Builtin dispatches by Arity class.
package stdlib

import (
	"sort"

	"github.com/sheetlang/sheetlang/internal/symtab"
	"github.com/sheetlang/sheetlang/internal/value"
)

// Category groups built-ins for documentation/introspection purposes only;
// it plays no role in resolution (grounded on the teacher's
// builtins.Registry Category field, internal/interp/builtins/registry.go).
type Category string

const (
	CategoryNumeric      Category = "numeric"
	CategoryContainer    Category = "container"
	CategoryString       Category = "string"
	CategoryTypePredicate Category = "type"
	CategoryDiagnostic   Category = "diagnostic"
	CategoryNumericState Category = "numeric-state"
	CategorySpreadsheet  Category = "spreadsheet"
	CategoryMeta         Category = "meta"
)

// entry pairs one built-in's metadata with its implementation.
type entry struct {
	name     string
	category Category
	fn       *value.Function
}

// Registry collects built-in entries before they are interned into a
// symtab.Global and bound into a CallingContext's Globals vector.
type Registry struct {
	entries map[string]entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds one built-in under name. A later Register with the same
// name replaces the earlier one.
func (r *Registry) Register(name string, category Category, fn *value.Function) {
	r.entries[name] = entry{name: name, category: category, fn: fn}
}

// Lookup returns the Function value registered under name.
func (r *Registry) Lookup(name string) (*value.Function, bool) {
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.fn, true
}

// Names returns every registered name, sorted, for deterministic iteration
// (tests, global-table seeding).
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Install interns every registered built-in into global and returns a
// parallel slice of their Function values, indexed the same way as
// global.Lookup reports, ready to seed a CallingContext.Globals vector.
func Install(global *symtab.Global) (*Registry, []value.Value) {
	reg := NewRegistry()
	registerNumeric(reg)
	registerContainer(reg)
	registerStrings(reg)
	registerTypePredicates(reg)
	registerDiagnostics(reg)
	registerNumericState(reg)
	registerSpreadsheet(reg)
	registerMeta(reg)

	for _, name := range reg.Names() {
		global.Declare(name)
	}
	globals := make([]value.Value, global.Count())
	for i := range globals {
		globals[i] = value.Nil{}
	}
	for _, name := range reg.Names() {
		idx, _ := global.Lookup(name)
		fn, _ := reg.Lookup(name)
		globals[idx] = fn
	}
	return reg, globals
}

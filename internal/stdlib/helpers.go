package stdlib

import (
	"fmt"

	"github.com/sheetlang/sheetlang/internal/engine"
	"github.com/sheetlang/sheetlang/internal/token"
	"github.com/sheetlang/sheetlang/internal/value"
)

// asContext recovers the concrete *engine.CallingContext from the opaque
// value.Context a BuiltinFunc receives; every built-in that needs engine
// state (globals, the sheet, the logger, round mode) goes through this.
func asContext(ctx value.Context) (*engine.CallingContext, error) {
	cc, ok := ctx.(*engine.CallingContext)
	if !ok {
		return nil, domainErr("built-in invoked outside an evaluation context")
	}
	return cc, nil
}

func domainErr(format string, args ...any) error {
	return engine.NewError(engine.DomainError, token.Position{}, format, args...)
}

func typeErr(format string, args ...any) error {
	return engine.NewError(engine.TypeMismatch, token.Position{}, format, args...)
}

func asFloat(v value.Value) (value.Float, error) {
	f, ok := v.(value.Float)
	if !ok {
		return value.Float{}, typeErr("expected a number, got %s", v.TypeName())
	}
	return f, nil
}

func asString(v value.Value) (string, error) {
	s, ok := v.(value.String)
	if !ok {
		return "", typeErr("expected a string, got %s", v.TypeName())
	}
	return string(s), nil
}

func asInt(v value.Value) (int, error) {
	f, err := asFloat(v)
	if err != nil {
		return 0, err
	}
	if !f.IsFinite() {
		return 0, domainErr("expected a finite integer")
	}
	return int(f.Decimal().IntPart()), nil
}

func asArray(v value.Value) (*value.Array, error) {
	a, ok := v.(*value.Array)
	if !ok {
		return nil, typeErr("expected an Array, got %s", v.TypeName())
	}
	return a, nil
}

func asDictionary(v value.Value) (*value.Dictionary, error) {
	d, ok := v.(*value.Dictionary)
	if !ok {
		return nil, typeErr("expected a Dictionary, got %s", v.TypeName())
	}
	return d, nil
}

func asCellRef(v value.Value) (value.CellRef, error) {
	r, ok := v.(value.CellRef)
	if !ok {
		return value.CellRef{}, typeErr("expected a CellRef, got %s", v.TypeName())
	}
	return r, nil
}

func asCellRange(v value.Value) (value.CellRange, error) {
	r, ok := v.(value.CellRange)
	if !ok {
		return value.CellRange{}, typeErr("expected a CellRange, got %s", v.TypeName())
	}
	return r, nil
}

// DisplayString is the exported form of displayString, for callers outside
// this package (cmd/sheetscript's run/eval subcommands) that need the same
// DebugPrint/ToString rendering to print a script's result or a recomputed
// cell's value.
func DisplayString(v value.Value) string { return displayString(v) }

// displayString renders any Value for DebugPrint/ToString, resolving
// CellRef/CellRange against (0,0) since built-ins have no ambient cell
// position of their own.
func displayString(v value.Value) string {
	switch t := v.(type) {
	case value.Nil:
		return "nil"
	case value.String:
		return string(t)
	case value.Float:
		return t.String()
	case value.CellRef:
		return t.String(0, 0)
	case value.CellRange:
		return t.TopLeft.String(0, 0) + ":" + t.BottomRight.String(0, 0)
	case *value.Function:
		return fmt.Sprintf("function %s", t.Name)
	case *value.Array:
		return fmt.Sprintf("Array[%d]", t.Len())
	case *value.Dictionary:
		return fmt.Sprintf("Dictionary[%d]", t.Len())
	default:
		return t.TypeName()
	}
}

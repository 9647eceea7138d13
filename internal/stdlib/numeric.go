package stdlib

import (
	"github.com/sheetlang/sheetlang/internal/value"
)

func registerNumeric(r *Registry) {
	r.Register("Sqr", CategoryNumeric, value.NewBuiltin("Sqr", value.ArityUnary, biSqr))
	r.Register("Abs", CategoryNumeric, value.NewBuiltin("Abs", value.ArityUnary, biAbs))
	r.Register("Round", CategoryNumeric, value.NewBuiltin("Round", value.ArityUnaryWithContext, biRound))
	r.Register("Floor", CategoryNumeric, value.NewBuiltin("Floor", value.ArityUnary, biFloor))
	r.Register("Ceil", CategoryNumeric, value.NewBuiltin("Ceil", value.ArityUnary, biCeil))
	r.Register("Min", CategoryNumeric, value.NewBuiltin("Min", value.ArityBinary, biMin))
	r.Register("Max", CategoryNumeric, value.NewBuiltin("Max", value.ArityBinary, biMax))
	r.Register("IsNaN", CategoryNumeric, value.NewBuiltin("IsNaN", value.ArityUnary, biIsNaN))
	r.Register("IsInfinity", CategoryNumeric, value.NewBuiltin("IsInfinity", value.ArityUnary, biIsInfinity))
}

func biSqr(_ value.Context, args []value.Value) (value.Value, error) {
	f, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	if !f.IsFinite() {
		if f.IsNaN() {
			return value.NaN(), nil
		}
		return value.PosInf(), nil
	}
	if f.Decimal().IsNegative() {
		return value.NaN(), nil
	}
	sq, _ := f.Decimal().Float64()
	return value.FloatFromString(sqrtString(sq))
}

func biAbs(_ value.Context, args []value.Value) (value.Value, error) {
	f, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	if f.IsNaN() {
		return value.NaN(), nil
	}
	if f.IsInfinity() {
		return value.PosInf(), nil
	}
	if f.Decimal().IsNegative() {
		return f.Neg(), nil
	}
	return f, nil
}

// biRound honors the context's current RoundMode/DefaultPrecision, per
// spec.md §4.6 GetRoundMode/SetRoundMode/GetDefaultPrecision's described
// interaction with arithmetic built-ins.
func biRound(ctx value.Context, args []value.Value) (value.Value, error) {
	cc, err := asContext(ctx)
	if err != nil {
		return nil, err
	}
	f, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	if !f.IsFinite() {
		return f, nil
	}
	rounded := roundDecimal(f, cc.DefaultPrecision, cc.RoundMode)
	return rounded, nil
}

func biFloor(_ value.Context, args []value.Value) (value.Value, error) {
	f, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	if !f.IsFinite() {
		return f, nil
	}
	return value.NewFloat(f.Decimal().Floor(), f.Precision(), f.RoundMode()), nil
}

func biCeil(_ value.Context, args []value.Value) (value.Value, error) {
	f, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	if !f.IsFinite() {
		return f, nil
	}
	return value.NewFloat(f.Decimal().Ceil(), f.Precision(), f.RoundMode()), nil
}

func biMin(_ value.Context, args []value.Value) (value.Value, error) {
	a, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	b, err := asFloat(args[1])
	if err != nil {
		return nil, err
	}
	if a.IsNaN() || b.IsNaN() {
		return value.NaN(), nil
	}
	if a.Cmp(b) <= 0 {
		return a, nil
	}
	return b, nil
}

func biMax(_ value.Context, args []value.Value) (value.Value, error) {
	a, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	b, err := asFloat(args[1])
	if err != nil {
		return nil, err
	}
	if a.IsNaN() || b.IsNaN() {
		return value.NaN(), nil
	}
	if a.Cmp(b) >= 0 {
		return a, nil
	}
	return b, nil
}

func biIsNaN(_ value.Context, args []value.Value) (value.Value, error) {
	f, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	return boolValue(f.IsNaN()), nil
}

func biIsInfinity(_ value.Context, args []value.Value) (value.Value, error) {
	f, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	return boolValue(f.IsInfinity()), nil
}

func boolValue(b bool) value.Float {
	if b {
		return value.FloatFromInt(1)
	}
	return value.FloatFromInt(0)
}

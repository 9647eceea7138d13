package stdlib

import "github.com/sheetlang/sheetlang/internal/value"

// registerNumericState wires the global numeric-state accessors (spec.md
// §4.6): the rounding mode and default precision carried on the
// CallingContext, plus per-value precision/round-mode accessors carried on
// Float itself (WithPrecision/WithRoundMode).
func registerNumericState(r *Registry) {
	r.Register("GetRoundMode", CategoryNumericState, value.NewBuiltin("GetRoundMode", value.ArityConstantWithContext, biGetRoundMode))
	r.Register("SetRoundMode", CategoryNumericState, value.NewBuiltin("SetRoundMode", value.ArityUnaryWithContext, biSetRoundMode))
	r.Register("GetDefaultPrecision", CategoryNumericState, value.NewBuiltin("GetDefaultPrecision", value.ArityConstantWithContext, biGetDefaultPrecision))
	r.Register("SetDefaultPrecision", CategoryNumericState, value.NewBuiltin("SetDefaultPrecision", value.ArityUnaryWithContext, biSetDefaultPrecision))
	r.Register("GetPrecision", CategoryNumericState, value.NewBuiltin("GetPrecision", value.ArityUnary, biGetPrecision))
	r.Register("SetPrecision", CategoryNumericState, value.NewBuiltin("SetPrecision", value.ArityBinary, biSetPrecision))
}

func biGetRoundMode(ctx value.Context, _ []value.Value) (value.Value, error) {
	cc, err := asContext(ctx)
	if err != nil {
		return nil, err
	}
	return value.FloatFromInt(int64(cc.RoundMode)), nil
}

func biSetRoundMode(ctx value.Context, args []value.Value) (value.Value, error) {
	cc, err := asContext(ctx)
	if err != nil {
		return nil, err
	}
	n, err := asInt(args[0])
	if err != nil {
		return nil, err
	}
	if n < int(value.RoundHalfUp) || n > int(value.RoundFloor) {
		return nil, domainErr("SetRoundMode: %d is not a valid round mode", n)
	}
	cc.RoundMode = value.RoundMode(n)
	return value.Nil{}, nil
}

func biGetDefaultPrecision(ctx value.Context, _ []value.Value) (value.Value, error) {
	cc, err := asContext(ctx)
	if err != nil {
		return nil, err
	}
	return value.FloatFromInt(int64(cc.DefaultPrecision)), nil
}

func biSetDefaultPrecision(ctx value.Context, args []value.Value) (value.Value, error) {
	cc, err := asContext(ctx)
	if err != nil {
		return nil, err
	}
	n, err := asInt(args[0])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, domainErr("SetDefaultPrecision: precision must be non-negative")
	}
	cc.DefaultPrecision = int32(n)
	return value.Nil{}, nil
}

func biGetPrecision(_ value.Context, args []value.Value) (value.Value, error) {
	f, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	return value.FloatFromInt(int64(f.Precision())), nil
}

func biSetPrecision(_ value.Context, args []value.Value) (value.Value, error) {
	f, err := asFloat(args[0])
	if err != nil {
		return nil, err
	}
	n, err := asInt(args[1])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, domainErr("SetPrecision: precision must be non-negative")
	}
	return f.WithPrecision(int32(n)), nil
}

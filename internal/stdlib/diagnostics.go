package stdlib

import (
	"github.com/sheetlang/sheetlang/internal/engine"
	"github.com/sheetlang/sheetlang/internal/logger"
	"github.com/sheetlang/sheetlang/internal/token"
	"github.com/sheetlang/sheetlang/internal/value"
)

func registerDiagnostics(r *Registry) {
	r.Register("Fatal", CategoryDiagnostic, value.NewBuiltin("Fatal", value.ArityUnaryWithContext, biFatal))
	r.Register("Error", CategoryDiagnostic, value.NewBuiltin("Error", value.ArityUnaryWithContext, biError))
	r.Register("Warn", CategoryDiagnostic, value.NewBuiltin("Warn", value.ArityUnaryWithContext, biWarn))
	r.Register("Info", CategoryDiagnostic, value.NewBuiltin("Info", value.ArityUnaryWithContext, biInfo))
	r.Register("DebugPrint", CategoryDiagnostic, value.NewBuiltin("DebugPrint", value.ArityUnaryWithContext, biDebugPrint))
}

// biFatal terminates evaluation with a UserFatal EvaluationError (spec.md
// §4.6 "Fatal terminates evaluation fatally") rather than merely logging.
func biFatal(ctx value.Context, args []value.Value) (value.Value, error) {
	_, err := asContext(ctx)
	if err != nil {
		return nil, err
	}
	return nil, engine.NewError(engine.UserFatal, token.Position{}, "%s", displayString(args[0]))
}

func biError(ctx value.Context, args []value.Value) (value.Value, error) {
	return logAndContinue(ctx, logger.Error, args[0])
}

func biWarn(ctx value.Context, args []value.Value) (value.Value, error) {
	return logAndContinue(ctx, logger.Warn, args[0])
}

func biInfo(ctx value.Context, args []value.Value) (value.Value, error) {
	return logAndContinue(ctx, logger.Info, args[0])
}

func biDebugPrint(ctx value.Context, args []value.Value) (value.Value, error) {
	return logAndContinue(ctx, logger.Info, args[0])
}

func logAndContinue(ctx value.Context, level logger.Level, v value.Value) (value.Value, error) {
	cc, err := asContext(ctx)
	if err != nil {
		return nil, err
	}
	if cc.Logger != nil {
		cc.Logger.Log(level, displayString(v), token.Position{})
	}
	return value.Nil{}, nil
}

package stdlib

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sheetlang/sheetlang/internal/value"
)

func decimalOne() decimal.Decimal { return decimal.NewFromInt(1) }

// sqrtString renders math.Sqrt's float64 result back into decimal text for
// value.FloatFromString; Sqr trades a little of the arbitrary-precision
// guarantee the rest of the value tower carries for a square root, since
// shopspring/decimal exposes no native Sqrt.
func sqrtString(f float64) string {
	return strconv.FormatFloat(math.Sqrt(f), 'f', -1, 64)
}

// roundDecimal implements Round against every RoundMode spec.md §4.6 names
// (set via SetRoundMode), each shifting to the target number of places
// before applying the mode's truncation/ceiling/floor/bankers rule and
// shifting back.
func roundDecimal(f value.Float, places int32, mode value.RoundMode) value.Float {
	d := f.Decimal()
	switch mode {
	case value.RoundHalfEven:
		return value.NewFloat(d.RoundBank(places), f.Precision(), f.RoundMode())
	case value.RoundDown:
		return value.NewFloat(d.Truncate(places), f.Precision(), f.RoundMode())
	case value.RoundUp:
		shifted := d.Shift(places)
		trunc := shifted.Truncate(0)
		if !shifted.Equal(trunc) {
			if shifted.IsNegative() {
				trunc = trunc.Sub(decimalOne())
			} else {
				trunc = trunc.Add(decimalOne())
			}
		}
		return value.NewFloat(trunc.Shift(-places), f.Precision(), f.RoundMode())
	case value.RoundCeiling:
		shifted := d.Shift(places)
		return value.NewFloat(shifted.Ceil().Shift(-places), f.Precision(), f.RoundMode())
	case value.RoundFloor:
		shifted := d.Shift(places)
		return value.NewFloat(shifted.Floor().Shift(-places), f.Precision(), f.RoundMode())
	default: // RoundHalfUp
		return value.NewFloat(d.Round(places), f.Precision(), f.RoundMode())
	}
}

package value

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RoundMode mirrors the rounding-mode vocabulary exposed to Backwards via
// GetRoundMode/SetRoundMode (spec.md §4.6). decimal.Decimal itself always
// rounds half-away-from-zero internally for DivRound; RoundMode instead
// governs how Float.Round (the built-in, not Go's decimal methods) behaves.
type RoundMode int

const (
	RoundHalfUp RoundMode = iota
	RoundHalfEven
	RoundDown
	RoundUp
	RoundCeiling
	RoundFloor
)

// special tags the non-finite states decimal.Decimal cannot represent on
// its own (spec.md §3: "NaN and ±Infinity are representable").
type special int

const (
	specialNone special = iota
	specialNaN
	specialPosInf
	specialNegInf
)

// DefaultPrecision is the starting default precision (decimal places) new
// Float values are created with, absent an explicit SetDefaultPrecision.
const DefaultPrecision = 16

// Float is the arbitrary-precision decimal number variant (spec.md §3). It
// wraps shopspring/decimal.Decimal (the arbitrary-precision decimal library
// used elsewhere in the retrieved example corpus — see DESIGN.md) with an
// explicit Special tag for NaN/±Infinity, since decimal.Decimal cannot
// represent those itself.
type Float struct {
	dec       decimal.Decimal
	spec      special
	precision int32
	round     RoundMode
}

func (Float) Kind() Kind       { return KindFloat }
func (Float) TypeName() string { return "Float" }

// NewFloat wraps a finite decimal.Decimal at the given precision and round
// mode.
func NewFloat(d decimal.Decimal, precision int32, round RoundMode) Float {
	return Float{dec: d, precision: precision, round: round}
}

// FloatFromInt builds a Float from an int64 at default precision.
func FloatFromInt(n int64) Float {
	return Float{dec: decimal.NewFromInt(n), precision: DefaultPrecision}
}

// FloatFromString parses a decimal literal (as produced by the lexer) into
// a Float at default precision.
func FloatFromString(s string) (Float, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Float{}, err
	}
	return Float{dec: d, precision: DefaultPrecision}, nil
}

// NaN returns the canonical not-a-number Float.
func NaN() Float { return Float{spec: specialNaN} }

// PosInf and NegInf return the canonical signed infinities.
func PosInf() Float { return Float{spec: specialPosInf} }
func NegInf() Float { return Float{spec: specialNegInf} }

// IsNaN, IsPosInf, IsNegInf, IsInfinity report the Special tag.
func (f Float) IsNaN() bool      { return f.spec == specialNaN }
func (f Float) IsPosInf() bool   { return f.spec == specialPosInf }
func (f Float) IsNegInf() bool   { return f.spec == specialNegInf }
func (f Float) IsInfinity() bool { return f.IsPosInf() || f.IsNegInf() }
func (f Float) IsFinite() bool   { return f.spec == specialNone }

// Decimal returns the underlying decimal payload; only meaningful when
// IsFinite() is true.
func (f Float) Decimal() decimal.Decimal { return f.dec }

// Precision and RoundMode return the value's carried metadata (spec.md
// §4.6 GetPrecision/GetRoundMode operate per-value, GetDefaultPrecision is
// global state kept by the engine, not here).
func (f Float) Precision() int32    { return f.precision }
func (f Float) RoundMode() RoundMode { return f.round }

// WithPrecision returns a copy of f carrying a new precision.
func (f Float) WithPrecision(p int32) Float {
	f.precision = p
	return f
}

// WithRoundMode returns a copy of f carrying a new rounding mode.
func (f Float) WithRoundMode(r RoundMode) Float {
	f.round = r
	return f
}

// Equal implements the canonical-form equality spec.md §3 requires: two
// non-finite Floats are equal iff they carry the same Special tag; two
// finite Floats are equal iff their decimal values compare equal (decimal
// equality ignores trailing-zero representation differences, matching
// decimal.Decimal.Equal).
func (f Float) Equal(o Float) bool {
	if f.spec != specialNone || o.spec != specialNone {
		return f.spec == o.spec
	}
	return f.dec.Equal(o.dec)
}

// Cmp orders two finite Floats; callers must check IsFinite on both first.
func (f Float) Cmp(o Float) int {
	return f.dec.Cmp(o.dec)
}

// combinePrecision picks the result metadata for a binary arithmetic op:
// the wider precision of the two operands, and the left operand's round
// mode (matching the teacher's left-operand-wins convention for metadata
// that isn't itself part of the arithmetic).
func combinePrecision(a, b Float) (int32, RoundMode) {
	p := a.precision
	if b.precision > p {
		p = b.precision
	}
	return p, a.round
}

// Add, Sub, Mul, Div, Mod implement the four arithmetic operators plus
// modulo (spec.md §4.4). Non-finite operands propagate per IEEE-754-like
// rules: any NaN taints the result; Infinity arithmetic follows the usual
// signed-infinity conventions. Division by a zero finite divisor yields a
// signed Infinity (or NaN for 0/0), never a Go panic.
func (f Float) Add(o Float) Float {
	if f.IsNaN() || o.IsNaN() {
		return NaN()
	}
	if f.IsInfinity() || o.IsInfinity() {
		return addInf(f, o)
	}
	p, r := combinePrecision(f, o)
	return Float{dec: f.dec.Add(o.dec), precision: p, round: r}
}

func addInf(f, o Float) Float {
	switch {
	case f.IsInfinity() && o.IsInfinity():
		if f.spec == o.spec {
			return f
		}
		return NaN()
	case f.IsInfinity():
		return f
	default:
		return o
	}
}

func (f Float) Sub(o Float) Float {
	return f.Add(o.Neg())
}

func (f Float) Neg() Float {
	switch f.spec {
	case specialPosInf:
		return NegInf()
	case specialNegInf:
		return PosInf()
	case specialNaN:
		return NaN()
	default:
		return Float{dec: f.dec.Neg(), precision: f.precision, round: f.round}
	}
}

func (f Float) Mul(o Float) Float {
	if f.IsNaN() || o.IsNaN() {
		return NaN()
	}
	if f.IsInfinity() || o.IsInfinity() {
		return mulInf(f, o)
	}
	p, r := combinePrecision(f, o)
	return Float{dec: f.dec.Mul(o.dec), precision: p, round: r}
}

func mulInf(f, o Float) Float {
	fz := f.IsFinite() && f.dec.IsZero()
	oz := o.IsFinite() && o.dec.IsZero()
	if fz || oz {
		return NaN()
	}
	negative := signOf(f) * signOf(o)
	if negative < 0 {
		return NegInf()
	}
	return PosInf()
}

func signOf(f Float) int {
	switch {
	case f.spec == specialPosInf:
		return 1
	case f.spec == specialNegInf:
		return -1
	case f.dec.IsPositive():
		return 1
	case f.dec.IsNegative():
		return -1
	default:
		return 0
	}
}

func (f Float) Div(o Float) Float {
	if f.IsNaN() || o.IsNaN() {
		return NaN()
	}
	if f.IsInfinity() && o.IsInfinity() {
		return NaN()
	}
	if f.IsInfinity() {
		return mulInf(f, Float{dec: decimalSign(o)})
	}
	if o.IsInfinity() {
		p, r := combinePrecision(f, o)
		return Float{dec: decimalZero, precision: p, round: r}
	}
	if o.dec.IsZero() {
		if f.dec.IsZero() {
			return NaN()
		}
		if f.dec.IsPositive() {
			return PosInf()
		}
		return NegInf()
	}
	p, r := combinePrecision(f, o)
	return Float{dec: f.dec.DivRound(o.dec, p+2), precision: p, round: r}
}

func decimalSign(f Float) decimal.Decimal {
	if f.dec.IsNegative() {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

var decimalZero = decimal.NewFromInt(0)

// Mod implements floating-point-style remainder (sign follows the
// dividend), matching the teacher's Backwards `%` operator.
func (f Float) Mod(o Float) Float {
	if f.IsNaN() || o.IsNaN() || f.IsInfinity() || o.IsInfinity() {
		return NaN()
	}
	if o.dec.IsZero() {
		return NaN()
	}
	p, r := combinePrecision(f, o)
	return Float{dec: f.dec.Mod(o.dec), precision: p, round: r}
}

// String renders the canonical display form.
func (f Float) String() string {
	switch f.spec {
	case specialNaN:
		return "NaN"
	case specialPosInf:
		return "Infinity"
	case specialNegInf:
		return "-Infinity"
	default:
		return f.dec.Round(f.precision).String()
	}
}

var _ fmt.Stringer = Float{}

package stdlib

import "github.com/sheetlang/sheetlang/internal/value"

func registerStrings(r *Registry) {
	r.Register("ToString", CategoryString, value.NewBuiltin("ToString", value.ArityUnary, biToString))
	r.Register("ValueOf", CategoryString, value.NewBuiltin("ValueOf", value.ArityUnary, biValueOf))
	r.Register("ToCharacter", CategoryString, value.NewBuiltin("ToCharacter", value.ArityUnary, biToCharacter))
	r.Register("FromCharacter", CategoryString, value.NewBuiltin("FromCharacter", value.ArityUnary, biFromCharacter))
	r.Register("SubString", CategoryString, value.NewBuiltin("SubString", value.ArityTernary, biSubString))
}

// biToString renders any Value as a display string (spec.md §4.6 ToString),
// grounded on the toString/asExpr split recovered from original_source/
// (SPEC_FULL.md "Supplemented features"): ToString always produces the
// human-display form, never the re-parseable expression form.
func biToString(_ value.Context, args []value.Value) (value.Value, error) {
	return value.String(displayString(args[0])), nil
}

// biValueOf parses a String back into a Float, the inverse of ToString for
// numbers (spec.md §4.6 ValueOf).
func biValueOf(_ value.Context, args []value.Value) (value.Value, error) {
	s, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	f, ferr := value.FloatFromString(s)
	if ferr != nil {
		return nil, domainErr("ValueOf: %q is not a valid number", s)
	}
	return f, nil
}

// biToCharacter converts a one-codepoint-wide integer Float to its
// single-rune String.
func biToCharacter(_ value.Context, args []value.Value) (value.Value, error) {
	n, err := asInt(args[0])
	if err != nil {
		return nil, err
	}
	if n < 0 || n > 0x10FFFF {
		return nil, domainErr("ToCharacter: %d is not a valid code point", n)
	}
	return value.String(string(rune(n))), nil
}

// biFromCharacter is the inverse of ToCharacter: the code point of a
// single-rune String's first rune.
func biFromCharacter(_ value.Context, args []value.Value) (value.Value, error) {
	s, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	if len(runes) == 0 {
		return nil, domainErr("FromCharacter: empty string")
	}
	return value.FloatFromInt(int64(runes[0])), nil
}

// biSubString implements SubString(s, from, len) with 0-based, clamped
// bounds (out-of-range from/len never panics; it clamps to the string).
func biSubString(_ value.Context, args []value.Value) (value.Value, error) {
	s, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	from, err := asInt(args[1])
	if err != nil {
		return nil, err
	}
	length, err := asInt(args[2])
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	if from < 0 {
		from = 0
	}
	if from > len(runes) {
		from = len(runes)
	}
	end := from + length
	if length < 0 || end > len(runes) {
		end = len(runes)
	}
	if end < from {
		end = from
	}
	return value.String(string(runes[from:end])), nil
}

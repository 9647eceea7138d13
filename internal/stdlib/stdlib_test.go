package stdlib_test

import (
	"strings"
	"testing"

	"github.com/sheetlang/sheetlang/internal/bparser"
	"github.com/sheetlang/sheetlang/internal/engine"
	"github.com/sheetlang/sheetlang/internal/lexer"
	"github.com/sheetlang/sheetlang/internal/stdlib"
	"github.com/sheetlang/sheetlang/internal/symtab"
)

// run parses and runs source as a full Backwards program against a fresh
// built-in roster, returning the display string of its top-level return
// value, or the error text if evaluation failed.
func run(t *testing.T, source string) (string, error) {
	t.Helper()
	global := symtab.NewGlobal()
	_, globals := stdlib.Install(global)
	ctx := engine.NewContext(nil, nil, global, globals)

	p := bparser.New(lexer.NewSource("test", source), global, nil)
	prog := p.ParseProgram()

	ev := engine.NewEvaluator()
	v, err := ev.RunForValue(ctx, prog)
	if err != nil {
		return "", err
	}
	return stdlib.DisplayString(v), nil
}

func wantResult(t *testing.T, source, want string) {
	t.Helper()
	got, err := run(t, source)
	if err != nil {
		t.Fatalf("unexpected error for %q: %v", source, err)
	}
	if got != want {
		t.Fatalf("source %q: want %q, got %q", source, want, got)
	}
}

func wantError(t *testing.T, source, wantSubstring string) {
	t.Helper()
	_, err := run(t, source)
	if err == nil {
		t.Fatalf("source %q: want an error containing %q, got none", source, wantSubstring)
	}
	if !strings.Contains(err.Error(), wantSubstring) {
		t.Fatalf("source %q: want error containing %q, got %q", source, wantSubstring, err.Error())
	}
}

func TestNumericBuiltins(t *testing.T) {
	wantResult(t, "return Sqr(9)", "3")
	wantResult(t, "return Abs(-5)", "5")
	wantResult(t, "return Floor(3.7)", "3")
	wantResult(t, "return Ceil(3.1)", "4")
	wantResult(t, "return Min(3, 7)", "3")
	wantResult(t, "return Max(3, 7)", "7")
	wantResult(t, "return IsNaN(Sqr(-1))", "1")
	wantResult(t, "return IsInfinity(Sqr(-1))", "0")
}

func TestContainerArrayBuiltins(t *testing.T) {
	wantResult(t, `set a to NewArray()
call PushBack(a, 10)
call PushBack(a, 20)
call PushFront(a, 5)
return Size(a)`, "3")

	wantResult(t, `set a to NewArray()
call PushBack(a, 10)
call PushBack(a, 20)
return GetIndex(a, 1)`, "20")

	wantResult(t, `set a to NewArray()
call PushBack(a, 10)
call SetIndex(a, 0, 99)
return GetIndex(a, 0)`, "99")

	wantError(t, `set a to NewArray()
return GetIndex(a, 0)`, "out of range")

	wantResult(t, `set a to NewArrayDefault(3, 0)
return Size(a)`, "3")
}

func TestContainerDictionaryBuiltins(t *testing.T) {
	wantResult(t, `set d to NewDictionary()
call SetIndex(d, "a", 1)
call SetIndex(d, "b", 2)
return Size(d)`, "2")

	wantResult(t, `set d to NewDictionary()
call SetIndex(d, "a", 1)
return ContainsKey(d, "a")`, "1")

	wantResult(t, `set d to NewDictionary()
return ContainsKey(d, "missing")`, "0")

	wantResult(t, `set d to NewDictionary()
return GetValue(d, "missing")`, "nil")

	wantResult(t, `set d to NewDictionary()
call SetIndex(d, "a", 1)
call RemoveKey(d, "a")
return ContainsKey(d, "a")`, "0")
}

func TestStringBuiltins(t *testing.T) {
	wantResult(t, `return ToString(42)`, "42")
	wantResult(t, `return ValueOf("42")`, "42")
	wantResult(t, `return ToCharacter(65)`, "A")
	wantResult(t, `return FromCharacter("A")`, "65")
	wantResult(t, `return SubString("hello world", 6, 5)`, "world")
	wantResult(t, `return SubString("hello", 0, 100)`, "hello")
}

func TestTypePredicateBuiltins(t *testing.T) {
	wantResult(t, `return IsFloat(1)`, "1")
	wantResult(t, `return IsString(1)`, "0")
	wantResult(t, `return IsString("x")`, "1")
	wantResult(t, `return IsNil(GetValue(NewDictionary(), "missing"))`, "1")
	wantResult(t, `set a to NewArray()
return IsArray(a)`, "1")
	wantResult(t, `set d to NewDictionary()
return IsDictionary(d)`, "1")
}

func TestDiagnosticFatalAbortsEvaluation(t *testing.T) {
	wantError(t, `call Fatal("boom")
return 1`, "boom")
}

func TestDiagnosticWarnContinuesEvaluation(t *testing.T) {
	wantResult(t, `call Warn("just a warning")
return 1`, "1")
}

func TestNumericStateRoundModeRoundTrips(t *testing.T) {
	wantResult(t, `call SetRoundMode(2)
return GetRoundMode()`, "2")
}

func TestNumericStateDefaultPrecisionRoundTrips(t *testing.T) {
	wantResult(t, `call SetDefaultPrecision(4)
return GetDefaultPrecision()`, "4")
}

func TestEvalBuiltinSharesGlobalTable(t *testing.T) {
	wantResult(t, `call Eval("set sharedValue to 99")
return sharedValue`, "99")
}

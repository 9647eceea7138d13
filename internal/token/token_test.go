package token_test

import (
	"testing"

	"github.com/sheetlang/sheetlang/internal/token"
)

func TestKindStringRendersKnownKinds(t *testing.T) {
	if got := token.SET.String(); got != "set" {
		t.Fatalf("want %q, got %q", "set", got)
	}
	if got := token.CELLREF.String(); got != "CELLREF" {
		t.Fatalf("want %q, got %q", "CELLREF", got)
	}
}

func TestKindStringFallsBackForUnknownKind(t *testing.T) {
	unknown := token.Kind(-1)
	if got := unknown.String(); got != "Kind(-1)" {
		t.Fatalf("want %q, got %q", "Kind(-1)", got)
	}
}

func TestPositionStringIncludesSourceWhenPresent(t *testing.T) {
	p := token.Position{Source: "script.bw", Line: 3, Column: 5}
	if got := p.String(); got != "script.bw:3:5" {
		t.Fatalf("want %q, got %q", "script.bw:3:5", got)
	}
}

func TestPositionStringOmitsSourceWhenEmpty(t *testing.T) {
	p := token.Position{Line: 1, Column: 1}
	if got := p.String(); got != "1:1" {
		t.Fatalf("want %q, got %q", "1:1", got)
	}
}

func TestTokenStringIncludesKindTextAndPosition(t *testing.T) {
	tok := token.Token{Kind: token.IDENT, Text: "x", Position: token.Position{Line: 1, Column: 1}}
	want := `IDENT("x")@1:1`
	if got := tok.String(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestKeywordsMapContainsAllBackwardsKeywords(t *testing.T) {
	cases := map[string]token.Kind{
		"function": token.FUNCTION,
		"end":      token.END_KW,
		"if":       token.IF,
		"while":    token.WHILE,
		"for":      token.FOR,
		"return":   token.RETURN,
		"set":      token.SET,
		"and":      token.AND,
		"or":       token.OR,
		"not":      token.NOT,
	}
	for text, want := range cases {
		got, ok := token.Keywords[text]
		if !ok || got != want {
			t.Fatalf("keyword %q: want (%v, true), got (%v, %v)", text, want, got, ok)
		}
	}
}

// Package engine implements the shared tree-walking evaluator, the
// cross-language CallingContext, and the evaluation-phase error taxonomy
// (spec.md §4.4, §4.5, §7).
package engine

import (
	"fmt"
	"strings"

	"github.com/sheetlang/sheetlang/internal/token"
)

// ErrKind is the closed error taxonomy spec.md §7 defines. Lex/Parse/Symbol
// errors are produced by the lexer/parsers (recovered in place, logged,
// and never returned as Go errors — see spec.md §7 propagation policy);
// the remaining kinds are evaluation-phase and propagate as
// EvaluationError.
type ErrKind int

const (
	TypeMismatch ErrKind = iota
	DomainError
	CircularReference
	UserFatal
	DebuggerAbort
)

func (k ErrKind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case DomainError:
		return "DomainError"
	case CircularReference:
		return "CircularReference"
	case UserFatal:
		return "UserFatal"
	case DebuggerAbort:
		return "DebuggerAbort"
	default:
		return "EvaluationError"
	}
}

// EvaluationError is the error type every evaluation-phase failure in
// spec.md §7 unwinds as. Its Error() renders "Kind at file:line:col:
// message", followed by the cycle path when one is recorded; it does not
// print the source line or a caret.
type EvaluationError struct {
	Kind ErrKind
	Msg  string
	Pos  token.Position
	// Path records the CellFrame stack at the point a CircularReference was
	// raised (spec.md §4.7, §8 property 8: "a non-empty path").
	Path []CellFrame
}

func (e *EvaluationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s at %s: %s", e.Kind, e.Pos, e.Msg)
	if len(e.Path) > 0 {
		sb.WriteString(" (path:")
		for _, f := range e.Path {
			fmt.Fprintf(&sb, " (%d,%d)", f.Col, f.Row)
		}
		sb.WriteString(")")
	}
	return sb.String()
}

// NewError builds an EvaluationError with no cycle path.
func NewError(kind ErrKind, pos token.Position, format string, args ...any) *EvaluationError {
	return &EvaluationError{Kind: kind, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// NewCircular builds a CircularReference error carrying the given cycle
// path (must be non-empty per spec.md §8 property 8).
func NewCircular(pos token.Position, path []CellFrame) *EvaluationError {
	return &EvaluationError{Kind: CircularReference, Msg: "circular cell reference", Pos: pos, Path: append([]CellFrame(nil), path...)}
}

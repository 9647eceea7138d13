// Package ast defines the Expression and Statement trees shared by the
// Forwards and Backwards parsers (spec.md §3). Both languages' parsers
// produce these same node types; only which subset of Statement nodes can
// appear differs (Forwards never produces any Statement — spec.md §4.2).
package ast

import "github.com/sheetlang/sheetlang/internal/token"

// Node is the base interface every AST node implements.
type Node interface {
	Pos() token.Position
	String() string
}

// Expression is any node that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without itself producing a
// value.
type Statement interface {
	Node
	statementNode()
}

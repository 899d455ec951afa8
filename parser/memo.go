package parser

import (
	"github.com/parsercraft/parsercraft/ast"
	"github.com/parsercraft/parsercraft/grammar"
)

// Built-in token matchers get fixed negative ids; grammar rules use the
// non-negative ids assigned by Build.
const (
	numberID = -1 - iota
	identID
	stringID
)

func builtinID(name string) int {
	switch name {
	case grammar.NumberToken:
		return numberID
	case grammar.IdentToken:
		return identID
	}
	return stringID
}

// MemoKey identifies one packrat cell: a rule id and the byte offset the
// rule was applied at.
type MemoKey struct {
	Rule int
	Pos  int
}

// MemoCell is one packrat cell: the memoized outcome of applying a rule
// at a position.
type MemoCell struct {
	// Ok distinguishes a success from a failure marker.
	Ok bool

	// End is the post-match position on success.
	End int

	// Examined is the furthest byte offset inspected while computing this
	// cell, including look-ahead that was not consumed; one past the end
	// of the text when the attempt reached the end. The incremental
	// parser discards cells whose examined range intersects an edit.
	Examined int

	// Nodes are the AST fragments produced on success.
	Nodes []*ast.Node

	// evaluating marks a cell whose rule is currently being evaluated at
	// this position. Re-entry of such a cell is left recursion.
	evaluating bool
}

// Memo is a packrat memoization table. It is owned by a single parse or
// by an incremental parser; it is not safe for concurrent use.
type Memo map[MemoKey]MemoCell

// NewMemo creates an empty memo table.
func NewMemo() Memo {
	return make(Memo)
}

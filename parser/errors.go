package parser

import (
	"strings"

	"github.com/parsercraft/parsercraft"
	"github.com/parsercraft/parsercraft/source"
)

// Error codes used by the interpreter:
const (
	// SyntaxError indicates that the start rule failed to match.
	// The error carries the furthest position reached and the deepest
	// rule attempted there.
	SyntaxError = parsercraft.SyntaxErrors + iota

	// UnexpectedInputError indicates that the start rule matched but
	// non-whitespace input remained.
	UnexpectedInputError

	// NotBuiltError indicates that the grammar was not frozen with Build.
	NotBuiltError
)

// RecursionError indicates that a rule re-entered its own evaluation at
// the same position. Left recursion is rejected by grammar.Build; this
// code comes from the interpreter's runtime guard and shares the
// grammar error class, since the grammar is at fault, not the source.
const RecursionError = parsercraft.GrammarErrors + 70

func recursionError(rule string) *parsercraft.Error {
	return parsercraft.FormatError(RecursionError, "left recursion detected in rule %q", rule)
}

func notBuiltError(name string) *parsercraft.Error {
	return parsercraft.FormatError(NotBuiltError, "grammar %q must be built before parsing", name)
}

func snippet(text string, pos int) string {
	rest := text[pos:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	if len(rest) > 30 {
		rest = rest[:30]
	}
	return rest
}

func syntaxError(src *source.Source, pos int, rule string) *parsercraft.Error {
	e := parsercraft.FormatErrorPos(src.At(pos), SyntaxError,
		"syntax error in rule %q: unexpected %q", rule, snippet(src.Text(), pos))
	e.Pos = pos
	e.Rule = rule
	return e
}

func unexpectedInputError(src *source.Source, pos int, rule string) *parsercraft.Error {
	e := parsercraft.FormatErrorPos(src.At(pos), UnexpectedInputError,
		"unexpected input %q", snippet(src.Text(), pos))
	e.Pos = pos
	e.Rule = rule
	return e
}

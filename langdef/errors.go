package langdef

import (
	"github.com/parsercraft/parsercraft"
)

// Error codes used by the notation parser:
const (
	BadRuleError = parsercraft.GrammarErrors + iota
	BadRuleNameError
	UnexpectedCharError
	MissingOperandError
	DanglingPredicateError
	UnclosedGroupError
	UnterminatedLiteralError
	BadEscapeError
	DanglingChoiceError
)

func badRuleError(name string, line, col int) *parsercraft.Error {
	return parsercraft.NewError(BadRuleError, "missing \"<-\" in rule definition", name, line, col)
}

func badRuleNameError(name string, line, col int) *parsercraft.Error {
	return parsercraft.NewError(BadRuleNameError, "rule name must be an ASCII identifier", name, line, col)
}

func unexpectedCharError(name string, line, col int, c byte) *parsercraft.Error {
	return parsercraft.NewError(UnexpectedCharError, "unexpected character "+string(rune(c)), name, line, col)
}

func missingOperandError(name string, line, col int, c byte) *parsercraft.Error {
	return parsercraft.NewError(MissingOperandError, "quantifier "+string(rune(c))+" has no operand", name, line, col)
}

func danglingPredicateError(name string, line, col int, c byte) *parsercraft.Error {
	return parsercraft.NewError(DanglingPredicateError, "predicate "+string(rune(c))+" has no operand", name, line, col)
}

func unclosedGroupError(name string, line, col int) *parsercraft.Error {
	return parsercraft.NewError(UnclosedGroupError, "unclosed group", name, line, col)
}

func unterminatedLiteralError(name string, line, col int) *parsercraft.Error {
	return parsercraft.NewError(UnterminatedLiteralError, "unterminated literal", name, line, col)
}

func badEscapeError(name string, line, col int, seq string) *parsercraft.Error {
	return parsercraft.NewError(BadEscapeError, "unknown escape sequence "+seq, name, line, col)
}

func danglingChoiceError(name string, line, col int) *parsercraft.Error {
	return parsercraft.NewError(DanglingChoiceError, "choice alternative is empty", name, line, col)
}

package grammar

import (
	"github.com/parsercraft/parsercraft"
)

// Error codes used by grammar construction and Build. langdef owns the
// lower part of the grammar error class; this package starts at +50.
const (
	DuplicateRuleError = parsercraft.GrammarErrors + 50 + iota
	ReservedNameError
	FrozenGrammarError
	NoRulesError
	NoStartRuleError
	UnknownRuleError
	LeftRecursionError
)

func duplicateRuleError(name string) *parsercraft.Error {
	return parsercraft.FormatError(DuplicateRuleError, "rule %q already defined", name)
}

func reservedNameError(name string) *parsercraft.Error {
	return parsercraft.FormatError(ReservedNameError, "%q is a reserved built-in token name", name)
}

func frozenError(name string) *parsercraft.Error {
	return parsercraft.FormatError(FrozenGrammarError, "grammar %q is frozen after build", name)
}

func noRulesError(name string) *parsercraft.Error {
	return parsercraft.FormatError(NoRulesError, "grammar %q has no rules", name)
}

func noStartRuleError(name string) *parsercraft.Error {
	return parsercraft.FormatError(NoStartRuleError, "start rule %q is not defined", name)
}

func unknownRuleError(ruleName, ref string) *parsercraft.Error {
	return parsercraft.FormatError(UnknownRuleError, "rule %q references undefined rule %q", ruleName, ref)
}

func leftRecursionError(name string) *parsercraft.Error {
	return parsercraft.FormatError(LeftRecursionError, "rule %q is left-recursive", name)
}

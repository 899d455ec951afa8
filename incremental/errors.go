package incremental

import (
	"github.com/parsercraft/parsercraft"
)

// Error codes used by the incremental parser:
const (
	NotParsedError = parsercraft.SyntaxErrors + 20 + iota
	BadEditError
)

func notParsedError() *parsercraft.Error {
	return parsercraft.FormatError(NotParsedError, "no source parsed yet")
}

func badEditError(start, end, size int) *parsercraft.Error {
	return parsercraft.FormatError(BadEditError,
		"edit range [%d, %d) is outside the source (%d bytes)", start, end, size)
}

package backend

import (
	"github.com/parsercraft/parsercraft"
)

// Error codes used by backends:
const (
	UnknownBackendError = parsercraft.BackendErrors + iota
	BadNodeError
	ExecError
)

func unknownBackendError(name string) *parsercraft.Error {
	e := parsercraft.FormatError(UnknownBackendError, "unknown backend %q", name)
	e.Backend = name
	return e
}

func badNodeError(backend string, msg string, params ...any) *parsercraft.Error {
	e := parsercraft.FormatError(BadNodeError, msg, params...)
	e.Backend = backend
	return e
}

func execError(msg string, params ...any) *parsercraft.Error {
	e := parsercraft.FormatError(ExecError, msg, params...)
	e.Backend = HighLevelName
	return e
}

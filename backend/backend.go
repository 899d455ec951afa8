// Package backend lowers source ASTs to target text. Four backends share
// one contract: Translate walks the AST and returns the target form as a
// string. Backends are pure functions over their input; they never fail
// on unknown node types, only on malformed known ones.
package backend

import (
	"sort"

	"github.com/parsercraft/parsercraft/ast"
)

// Backend translates an AST into a target-form string.
type Backend interface {
	// Name returns the registry name of the backend.
	Name() string

	// Translate walks the AST rooted at root and returns the target text.
	Translate(root *ast.Node) (string, error)
}

// Registry names of the built-in backends.
const (
	HighLevelName = "highlevel"
	CName         = "c"
	WatName       = "wat"
	LLVMName      = "llvm"
)

// New returns the named backend with default options.
func New(name string) (Backend, error) {
	switch name {
	case HighLevelName:
		return NewHighLevel(Options{}), nil
	case CName:
		return NewC(), nil
	case WatName:
		return NewWat(), nil
	case LLVMName:
		return NewLLVM(), nil
	}
	return nil, unknownBackendError(name)
}

// Names returns the registry names of all built-in backends, sorted.
func Names() []string {
	names := []string{HighLevelName, CName, WatName, LLVMName}
	sort.Strings(names)
	return names
}

package backend

import (
	"strconv"
	"strings"

	"github.com/parsercraft/parsercraft/ast"
)

// Wat emits a WebAssembly text module: one memory declaration, a $main
// function whose locals are the identifiers it assigns or reads, i32
// arithmetic.
type Wat struct{}

// NewWat creates the WebAssembly text backend.
func NewWat() *Wat {
	return &Wat{}
}

// Name returns "wat".
func (b *Wat) Name() string {
	return WatName
}

var watOps = map[string]string{
	"+": "i32.add",
	"-": "i32.sub",
	"*": "i32.mul",
	"/": "i32.div_s",
}

// Translate emits the WAT form of the AST.
func (b *Wat) Translate(root *ast.Node) (string, error) {
	em := &watEmitter{seen: make(map[string]bool)}
	for _, child := range root.Children {
		em.stmt(child)
	}
	if em.err != nil {
		return "", em.err
	}

	var sb strings.Builder
	sb.WriteString("(module\n")
	sb.WriteString("  (memory 256)\n")
	sb.WriteString("  (func $main\n")
	for _, name := range em.locals {
		sb.WriteString("    (local $" + name + " i32)\n")
	}
	for _, inst := range em.insts {
		sb.WriteString("    " + inst + "\n")
	}
	sb.WriteString("  )\n")
	sb.WriteString(")\n")
	return sb.String(), nil
}

type watEmitter struct {
	locals []string
	seen   map[string]bool
	insts  []string
	err    error
}

func (em *watEmitter) fail(msg string, params ...any) {
	if em.err == nil {
		em.err = badNodeError(WatName, msg, params...)
	}
}

func (em *watEmitter) local(name string) {
	if !em.seen[name] {
		em.seen[name] = true
		em.locals = append(em.locals, name)
	}
}

func (em *watEmitter) stmt(n *ast.Node) {
	if a, ok := splitAssign(n.Children); ok {
		em.local(a.target.Value)
		em.insts = append(em.insts, "(local.set $"+a.target.Value+" "+em.expr(a.value)+")")
		return
	}

	switch statementKind(n.Type) {
	case "assign":
		m := ast.Meaningful(n.Children)
		if len(m) < 2 || m[0].Type != ast.IdentifierType {
			em.fail("assignment node at line %d has no identifier target", n.Line)
			return
		}
		em.local(m[0].Value)
		em.insts = append(em.insts, "(local.set $"+m[0].Value+" "+em.expr(m[1])+")")
		return
	case "block":
		for _, c := range n.Children {
			em.stmt(c)
		}
		return
	}

	switch n.Type {
	case ast.OperatorType:
	case ast.NumberType, ast.IdentifierType:
		em.insts = append(em.insts, "(drop "+em.expr(n)+")")
	default:
		if isExprStatement(n) {
			em.insts = append(em.insts, "(drop "+em.expr(n)+")")
			return
		}
		for _, c := range n.Children {
			em.stmt(c)
		}
	}
}

// expr lowers an expression to one instruction, folding operator chains
// left to right. Grouping comes from AST nesting; parenthesis operators
// are dropped.
func (em *watEmitter) expr(n *ast.Node) string {
	switch n.Type {
	case ast.NumberType:
		return "(i32.const " + watInt(n.Value) + ")"
	case ast.IdentifierType:
		em.local(n.Value)
		return "(local.get $" + n.Value + ")"
	case ast.StringType:
		return "(i32.const 0)"
	}

	operands, ops := chain(n)
	if len(operands) == 0 {
		return "(i32.const 0)"
	}

	inst := em.expr(operands[0])
	for i, op := range ops {
		if i+1 >= len(operands) {
			break
		}
		wasmOp, known := watOps[op.Value]
		if !known {
			em.fail("operator %q at line %d has no i32 lowering", op.Value, op.Line)
			return inst
		}
		inst = "(" + wasmOp + " " + inst + " " + em.expr(operands[i+1]) + ")"
	}
	return inst
}

// chain splits a composite node into operand nodes and the operator
// leaves between them, dropping structural punctuation and parentheses.
func chain(n *ast.Node) (operands, ops []*ast.Node) {
	for _, c := range n.Children {
		if c.Type == ast.OperatorType {
			if !isStructuralOp(c) && !c.IsOperator("(", ")") {
				ops = append(ops, c)
			}
			continue
		}
		operands = append(operands, c)
	}
	return operands, ops
}

func watInt(value string) string {
	if i := strings.IndexByte(value, '.'); i >= 0 {
		value = value[:i]
	}
	if _, e := strconv.Atoi(value); e != nil {
		return "0"
	}
	return value
}

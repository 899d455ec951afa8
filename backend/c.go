package backend

import (
	"strings"

	"github.com/parsercraft/parsercraft/ast"
)

// C emits an ANSI C program: a fixed preamble of include directives and a
// single main body enclosing all translated statements. Locals are
// declared on first assignment, as int unless the assigned value is a
// decimal (double) or string (const char*) literal.
type C struct{}

// NewC creates the ANSI C backend.
func NewC() *C {
	return &C{}
}

// Name returns "c".
func (b *C) Name() string {
	return CName
}

var cIncludes = []string{"<stdio.h>", "<stdlib.h>", "<string.h>"}

// Translate emits the C form of the AST.
func (b *C) Translate(root *ast.Node) (string, error) {
	em := &cEmitter{declared: make(map[string]bool)}
	for _, child := range root.Children {
		em.stmt(child)
	}
	if em.err != nil {
		return "", em.err
	}

	var sb strings.Builder
	for _, inc := range cIncludes {
		sb.WriteString("#include " + inc + "\n")
	}
	sb.WriteString("\n")
	for _, fn := range em.funcs {
		sb.WriteString(fn)
		sb.WriteString("\n")
	}
	sb.WriteString("int main(void) {\n")
	for _, l := range em.body {
		sb.WriteString("    " + l + "\n")
	}
	sb.WriteString("    return 0;\n")
	sb.WriteString("}\n")
	return sb.String(), nil
}

type cEmitter struct {
	body     []string
	funcs    []string
	declared map[string]bool
	err      error
}

func (em *cEmitter) line(text string) {
	em.body = append(em.body, text)
}

func (em *cEmitter) fail(msg string, params ...any) {
	if em.err == nil {
		em.err = badNodeError(CName, msg, params...)
	}
}

func (em *cEmitter) stmt(n *ast.Node) {
	switch statementKind(n.Type) {
	case "if":
		em.compound(n, "if")
		return
	case "while":
		em.compound(n, "while")
		return
	case "return":
		m := ast.Meaningful(n.Children)
		if len(m) == 0 {
			em.line("return 0;")
		} else {
			em.line("return " + em.expr(m[0]) + ";")
		}
		return
	case "print":
		em.printStmt(n)
		return
	case "func":
		em.funcDef(n)
		return
	case "block":
		for _, c := range n.Children {
			em.stmt(c)
		}
		return
	case "assign":
		em.assign(n)
		return
	}

	switch n.Type {
	case ast.OperatorType:
	case ast.NumberType, ast.StringType, ast.IdentifierType:
		em.line(em.expr(n) + ";")
	default:
		if _, ok := splitAssign(n.Children); ok {
			em.assign(n)
			return
		}
		if isExprStatement(n) {
			em.line(em.expr(n) + ";")
			return
		}
		for _, c := range n.Children {
			em.stmt(c)
		}
	}
}

func (em *cEmitter) assign(n *ast.Node) {
	a, ok := splitAssign(n.Children)
	if !ok {
		m := ast.Meaningful(n.Children)
		if len(m) < 2 || m[0].Type != ast.IdentifierType {
			em.fail("assignment node at line %d has no identifier target", n.Line)
			return
		}
		a = assignment{target: m[0], value: m[1]}
	}

	name := a.target.Value
	rhs := em.expr(a.value)
	if em.declared[name] {
		em.line(name + " = " + rhs + ";")
		return
	}
	em.declared[name] = true
	em.line(cType(a.value) + " " + name + " = " + rhs + ";")
}

func (em *cEmitter) compound(n *ast.Node, keyword string) {
	m := ast.Meaningful(n.Children)
	if len(m) == 0 {
		em.fail("%s statement at line %d has no condition", keyword, n.Line)
		return
	}
	em.line(keyword + " (" + em.expr(m[0]) + ") {")
	for _, c := range m[1:] {
		em.stmt(c)
	}
	em.line("}")
}

func (em *cEmitter) printStmt(n *ast.Node) {
	args := ast.Meaningful(n.Children)
	if len(args) == 0 {
		em.line(`printf("\n");`)
		return
	}

	formats := make([]string, len(args))
	vals := make([]string, len(args))
	for i, a := range args {
		if a.Type == ast.StringType {
			formats[i] = "%s"
		} else {
			formats[i] = "%d"
		}
		vals[i] = em.expr(a)
	}
	em.line(`printf("` + strings.Join(formats, " ") + `\n", ` + strings.Join(vals, ", ") + `);`)
}

func (em *cEmitter) funcDef(n *ast.Node) {
	m := ast.Meaningful(n.Children)
	if len(m) == 0 || m[0].Type != ast.IdentifierType {
		em.fail("function definition at line %d has no name", n.Line)
		return
	}

	var params []string
	body := m[1:]
	if len(body) > 0 && body[0].Type == "param_list" {
		for _, p := range ast.Meaningful(body[0].Children) {
			params = append(params, "int "+p.Value)
		}
		body = body[1:]
	}

	inner := &cEmitter{declared: make(map[string]bool)}
	for _, c := range body {
		inner.stmt(c)
	}
	if inner.err != nil {
		em.err = inner.err
		return
	}

	var sb strings.Builder
	sb.WriteString("int " + m[0].Value + "(" + strings.Join(params, ", ") + ") {\n")
	for _, l := range inner.body {
		sb.WriteString("    " + l + "\n")
	}
	sb.WriteString("    return 0;\n}\n")
	em.funcs = append(em.funcs, sb.String())
}

// expr renders an expression: leaves by value, composites as their
// children joined with spaces. Parentheses present in the source survive
// as operator leaves.
func (em *cEmitter) expr(n *ast.Node) string {
	switch n.Type {
	case ast.NumberType:
		if n.Value == "" {
			return "0"
		}
		return n.Value
	case ast.IdentifierType:
		return n.Value
	case ast.StringType:
		return `"` + n.Value + `"`
	case ast.OperatorType:
		return n.Value
	}

	if callee, args, ok := callShape(n); ok {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = em.expr(a)
		}
		return callee.Value + "(" + strings.Join(parts, ", ") + ")"
	}

	var parts []string
	for _, c := range exprChildren(n.Children) {
		if s := em.expr(c); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// cType infers the declared type of a first assignment from its value.
func cType(n *ast.Node) string {
	switch n.Type {
	case ast.StringType:
		return "const char*"
	case ast.NumberType:
		if strings.ContainsRune(n.Value, '.') {
			return "double"
		}
	}
	return "int"
}

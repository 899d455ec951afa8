package backend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/parsercraft/parsercraft/ast"
)

// Options configure the high-level transpiler.
type Options struct {
	// Indent is the indentation unit; four spaces when empty.
	Indent string

	// KeywordMap maps source identifier text to the target's word.
	// Applied to Identifier leaves only.
	KeywordMap map[string]string

	// FunctionMap maps source function names to target function names.
	// Applied to identifiers in call position only.
	FunctionMap map[string]string

	// OperatorMap maps source operator text to target operator text.
	OperatorMap map[string]string

	// WrapMain wraps the emitted top-level statements in a main guard.
	WrapMain bool

	// SourceMaps emits one comment per top-level statement recording the
	// source line it came from.
	SourceMaps bool
}

// HighLevel emits an indentation-sensitive imperative form resembling
// mainstream scripting languages.
type HighLevel struct {
	opts Options
}

// NewHighLevel creates the high-level transpiler.
func NewHighLevel(opts Options) *HighLevel {
	if opts.Indent == "" {
		opts.Indent = "    "
	}
	return &HighLevel{opts: opts}
}

// Name returns "highlevel".
func (b *HighLevel) Name() string {
	return HighLevelName
}

// Translate emits the high-level form of the AST.
func (b *HighLevel) Translate(root *ast.Node) (string, error) {
	em := &hlEmitter{opts: b.opts}
	for _, child := range root.Children {
		if b.opts.SourceMaps {
			em.line(fmt.Sprintf("# src line %d", child.Line))
		}
		em.stmt(child)
	}
	if em.err != nil {
		return "", em.err
	}

	out := strings.Join(em.lines, "\n")
	if b.opts.WrapMain {
		var sb strings.Builder
		sb.WriteString("if __name__ == \"__main__\":\n")
		for _, l := range em.lines {
			if l != "" {
				sb.WriteString(b.opts.Indent)
			}
			sb.WriteString(l)
			sb.WriteByte('\n')
		}
		return sb.String(), nil
	}
	if out != "" {
		out += "\n"
	}
	return out, nil
}

// Execute transpiles the AST and interprets the emitted form in a fresh
// top-level scope, returning the bindings of all names defined at top
// level, names beginning with a double underscore excluded.
func (b *HighLevel) Execute(root *ast.Node) (map[string]float64, error) {
	code, e := b.Translate(root)
	if e != nil {
		return nil, e
	}
	return evalProgram(code)
}

type hlEmitter struct {
	opts  Options
	lines []string
	depth int
	err   error
}

func (em *hlEmitter) line(text string) {
	em.lines = append(em.lines, strings.Repeat(em.opts.Indent, em.depth)+text)
}

func (em *hlEmitter) fail(msg string, params ...any) {
	if em.err == nil {
		em.err = badNodeError(HighLevelName, msg, params...)
	}
}

func (em *hlEmitter) stmt(n *ast.Node) {
	switch statementKind(n.Type) {
	case "if":
		em.conditional(n, "if")
		return
	case "while":
		em.conditional(n, "while")
		return
	case "for":
		em.forStmt(n)
		return
	case "func":
		em.funcDef(n)
		return
	case "return":
		em.returnStmt(n)
		return
	case "print":
		args := ast.Meaningful(n.Children)
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = em.expr(a)
		}
		em.line("print(" + strings.Join(parts, ", ") + ")")
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
	case ast.NumberType, ast.StringType, ast.IdentifierType:
		em.line(em.expr(n))
	case ast.OperatorType:
		// Stray punctuation at statement level carries no meaning.
	default:
		if _, ok := splitAssign(n.Children); ok {
			em.assign(n)
			return
		}
		if isExprStatement(n) {
			em.line(em.expr(n))
			return
		}
		for _, c := range n.Children {
			em.stmt(c)
		}
	}
}

func (em *hlEmitter) assign(n *ast.Node) {
	a, ok := splitAssign(n.Children)
	if !ok {
		// A dedicated assignment node without the operator shape:
		// children are target and value.
		m := ast.Meaningful(n.Children)
		if len(m) < 2 || m[0].Type != ast.IdentifierType {
			em.fail("assignment node at line %d has no identifier target", n.Line)
			return
		}
		a = assignment{target: m[0], value: m[1]}
	}
	em.line(em.ident(a.target.Value) + " = " + em.expr(a.value))
}

func (em *hlEmitter) conditional(n *ast.Node, keyword string) {
	m := ast.Meaningful(n.Children)
	if len(m) == 0 {
		em.fail("%s statement at line %d has no condition", keyword, n.Line)
		return
	}
	em.line(keyword + " " + em.expr(m[0]) + ":")
	em.depth++
	em.body(m[1:])
	em.depth--
}

func (em *hlEmitter) forStmt(n *ast.Node) {
	m := ast.Meaningful(n.Children)
	if len(m) < 2 {
		em.fail("for statement at line %d needs a variable and an iterable", n.Line)
		return
	}
	em.line("for " + em.ident(m[0].Value) + " in " + em.expr(m[1]) + ":")
	em.depth++
	em.body(m[2:])
	em.depth--
}

func (em *hlEmitter) funcDef(n *ast.Node) {
	m := ast.Meaningful(n.Children)
	if len(m) == 0 || m[0].Type != ast.IdentifierType {
		em.fail("function definition at line %d has no name", n.Line)
		return
	}

	var params []string
	body := m[1:]
	if len(body) > 0 && body[0].Type == "param_list" {
		for _, p := range ast.Meaningful(body[0].Children) {
			params = append(params, em.ident(p.Value))
		}
		body = body[1:]
	}

	em.line("def " + em.ident(m[0].Value) + "(" + strings.Join(params, ", ") + "):")
	em.depth++
	em.body(body)
	em.depth--
}

func (em *hlEmitter) returnStmt(n *ast.Node) {
	m := ast.Meaningful(n.Children)
	if len(m) == 0 {
		em.line("return")
		return
	}
	em.line("return " + em.expr(m[0]))
}

func (em *hlEmitter) body(stmts []*ast.Node) {
	if len(stmts) == 0 {
		em.line("pass")
		return
	}
	for _, c := range stmts {
		em.stmt(c)
	}
}

func (em *hlEmitter) expr(n *ast.Node) string {
	switch n.Type {
	case ast.NumberType:
		if n.Value == "" {
			return "0"
		}
		return n.Value
	case ast.IdentifierType:
		return em.ident(n.Value)
	case ast.StringType:
		return strconv.Quote(n.Value)
	case ast.OperatorType:
		return em.op(n.Value)
	}

	if callee, args, ok := callShape(n); ok {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = em.expr(a)
		}
		return em.fn(callee.Value) + "(" + strings.Join(parts, ", ") + ")"
	}

	var parts []string
	for _, c := range exprChildren(n.Children) {
		if s := em.expr(c); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func (em *hlEmitter) ident(name string) string {
	if mapped, has := em.opts.KeywordMap[name]; has {
		return mapped
	}
	return name
}

func (em *hlEmitter) fn(name string) string {
	if mapped, has := em.opts.FunctionMap[name]; has {
		return mapped
	}
	return em.ident(name)
}

func (em *hlEmitter) op(text string) string {
	if mapped, has := em.opts.OperatorMap[text]; has {
		return mapped
	}
	return text
}

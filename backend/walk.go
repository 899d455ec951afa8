package backend

import (
	"github.com/parsercraft/parsercraft/ast"
)

// Shared recognition rules. Every backend classifies statement nodes the
// same way: an Identifier followed by Operator("=") or Operator(":=")
// followed by an expression is an assignment, whatever the node type is
// called in the grammar.

// assignment is the recognized shape of an assignment statement.
type assignment struct {
	target *ast.Node
	op     string
	value  *ast.Node
}

// splitAssign recognizes the inline assignment pattern among a node's
// children. Trailing Operator(";") children are ignored.
func splitAssign(children []*ast.Node) (assignment, bool) {
	for i, c := range children {
		if c.Type != ast.IdentifierType || i+1 >= len(children) {
			continue
		}
		if !children[i+1].IsOperator("=", ":=") {
			continue
		}
		for _, v := range children[i+2:] {
			if v.IsOperator(";") {
				continue
			}
			return assignment{target: c, op: children[i+1].Value, value: v}, true
		}
	}
	return assignment{}, false
}

// statementKind classifies statement node types beyond the assignment
// shape. Both snake_case (grammar rule names) and CamelCase spellings are
// recognized. Not every backend lowers every kind: WAT handles assignment
// and block only, C everything but for, LLVM everything but for and
// function definitions.
func statementKind(typ string) string {
	switch typ {
	case "if_stmt", "IfStmt":
		return "if"
	case "while_stmt", "WhileStmt":
		return "while"
	case "for_stmt", "ForStmt":
		return "for"
	case "function_def", "FunctionDef":
		return "func"
	case "return_stmt", "ReturnStmt":
		return "return"
	case "print_stmt", "PrintStmt":
		return "print"
	case "block", "Block":
		return "block"
	case "assignment", "Assignment":
		return "assign"
	}
	return ""
}

// structural operators never carried into expression text.
func isStructuralOp(n *ast.Node) bool {
	return n.IsOperator(";", ":", ",", "=", ":=")
}

// exprChildren returns the children relevant to expression emission:
// everything except structural operators.
func exprChildren(children []*ast.Node) []*ast.Node {
	res := make([]*ast.Node, 0, len(children))
	for _, c := range children {
		if isStructuralOp(c) {
			continue
		}
		res = append(res, c)
	}
	return res
}

// isExprStatement reports whether a node of unknown type should be
// emitted as a single expression statement: it carries operator leaves
// alongside at least one operand.
func isExprStatement(n *ast.Node) bool {
	if !ast.HasOperator(n.Children) {
		return false
	}
	return len(ast.Meaningful(n.Children)) > 0
}

// callShape recognizes a call-position identifier: an Identifier directly
// followed by Operator("("). Returns the callee and the argument nodes
// (parentheses and commas dropped, arg_list wrappers flattened).
func callShape(n *ast.Node) (callee *ast.Node, args []*ast.Node, ok bool) {
	ch := n.Children
	switch n.Type {
	case "call", "Call", "FunctionCall":
	default:
		if len(ch) < 2 || ch[0].Type != ast.IdentifierType || !ch[1].IsOperator("(") {
			return nil, nil, false
		}
	}
	if len(ch) == 0 || ch[0].Type != ast.IdentifierType {
		return nil, nil, false
	}
	if !ast.HasOperator(ch, "(") {
		return nil, nil, false
	}

	callee = ch[0]
	for _, c := range ch[1:] {
		switch {
		case c.Type == ast.OperatorType:
		case c.Type == "arg_list":
			args = append(args, ast.Meaningful(c.Children)...)
		default:
			args = append(args, c)
		}
	}
	return callee, args, true
}

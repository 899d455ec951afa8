package backend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/parsercraft/parsercraft/ast"
)

// LLVM emits textual LLVM IR: a single i32 @main with an entry block,
// one alloca per assigned variable, loads for reads, and SSA arithmetic
// with serially numbered temporaries.
type LLVM struct{}

// NewLLVM creates the LLVM IR backend.
func NewLLVM() *LLVM {
	return &LLVM{}
}

// Name returns "llvm".
func (b *LLVM) Name() string {
	return LLVMName
}

var llvmOps = map[string]string{
	"+": "add",
	"-": "sub",
	"*": "mul",
	"/": "sdiv",
}

// Translate emits the LLVM IR form of the AST.
func (b *LLVM) Translate(root *ast.Node) (string, error) {
	em := &irEmitter{vars: make(map[string]string)}
	em.newBlock("entry")
	for _, child := range root.Children {
		em.stmt(child)
	}
	if em.err != nil {
		return "", em.err
	}
	em.terminate("ret i32 0")

	var sb strings.Builder
	for _, g := range em.globals {
		sb.WriteString(g + "\n")
	}
	if len(em.globals) > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString("define i32 @main() {\n")
	for _, blk := range em.blocks {
		sb.WriteString(blk.label + ":\n")
		for _, inst := range blk.insts {
			sb.WriteString("  " + inst + "\n")
		}
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}

type irBlock struct {
	label      string
	insts      []string
	terminated bool
}

type irEmitter struct {
	globals []string
	blocks  []*irBlock
	cur     *irBlock
	vars    map[string]string
	regs    int
	labels  int
	strs    int
	printf  bool
	err     error
}

func (em *irEmitter) fail(msg string, params ...any) {
	if em.err == nil {
		em.err = badNodeError(LLVMName, msg, params...)
	}
}

func (em *irEmitter) newBlock(label string) *irBlock {
	blk := &irBlock{label: label}
	em.blocks = append(em.blocks, blk)
	em.cur = blk
	return blk
}

func (em *irEmitter) emit(inst string) {
	if !em.cur.terminated {
		em.cur.insts = append(em.cur.insts, inst)
	}
}

func (em *irEmitter) terminate(inst string) {
	if !em.cur.terminated {
		em.cur.insts = append(em.cur.insts, inst)
		em.cur.terminated = true
	}
}

func (em *irEmitter) nextReg() string {
	em.regs++
	return fmt.Sprintf("%%%d", em.regs)
}

func (em *irEmitter) nextLabel(stem string) string {
	em.labels++
	return fmt.Sprintf("%s%d", stem, em.labels)
}

func (em *irEmitter) stmt(n *ast.Node) {
	if a, ok := splitAssign(n.Children); ok {
		em.assign(a)
		return
	}

	switch statementKind(n.Type) {
	case "assign":
		m := ast.Meaningful(n.Children)
		if len(m) < 2 || m[0].Type != ast.IdentifierType {
			em.fail("assignment node at line %d has no identifier target", n.Line)
			return
		}
		em.assign(assignment{target: m[0], value: m[1]})
		return
	case "if":
		em.ifStmt(n)
		return
	case "while":
		em.whileStmt(n)
		return
	case "return":
		m := ast.Meaningful(n.Children)
		if len(m) == 0 {
			em.terminate("ret i32 0")
			return
		}
		em.terminate("ret i32 " + em.expr(m[0]))
		return
	case "print":
		em.printStmt(n)
		return
	case "block":
		for _, c := range n.Children {
			em.stmt(c)
		}
		return
	}

	switch n.Type {
	case ast.OperatorType:
	case ast.NumberType, ast.IdentifierType, ast.StringType:
		em.expr(n)
	default:
		if isExprStatement(n) {
			em.expr(n)
			return
		}
		for _, c := range n.Children {
			em.stmt(c)
		}
	}
}

func (em *irEmitter) assign(a assignment) {
	val := em.expr(a.value)
	name := a.target.Value
	ptr, has := em.vars[name]
	if !has {
		ptr = em.nextReg()
		em.emit(ptr + " = alloca i32")
		em.vars[name] = ptr
	}
	em.emit("store i32 " + val + ", ptr " + ptr)
}

func (em *irEmitter) ifStmt(n *ast.Node) {
	m := ast.Meaningful(n.Children)
	if len(m) == 0 {
		em.fail("if statement at line %d has no condition", n.Line)
		return
	}

	cond := em.expr(m[0])
	flag := em.nextReg()
	em.emit(flag + " = icmp ne i32 " + cond + ", 0")

	thenLabel := em.nextLabel("then")
	endLabel := em.nextLabel("endif")
	em.terminate("br i1 " + flag + ", label %" + thenLabel + ", label %" + endLabel)

	em.newBlock(thenLabel)
	for _, c := range m[1:] {
		em.stmt(c)
	}
	em.terminate("br label %" + endLabel)

	em.newBlock(endLabel)
}

func (em *irEmitter) whileStmt(n *ast.Node) {
	m := ast.Meaningful(n.Children)
	if len(m) == 0 {
		em.fail("while statement at line %d has no condition", n.Line)
		return
	}

	condLabel := em.nextLabel("while.cond")
	bodyLabel := em.nextLabel("while.body")
	endLabel := em.nextLabel("while.end")

	em.terminate("br label %" + condLabel)

	em.newBlock(condLabel)
	cond := em.expr(m[0])
	flag := em.nextReg()
	em.emit(flag + " = icmp ne i32 " + cond + ", 0")
	em.terminate("br i1 " + flag + ", label %" + bodyLabel + ", label %" + endLabel)

	em.newBlock(bodyLabel)
	for _, c := range m[1:] {
		em.stmt(c)
	}
	em.terminate("br label %" + condLabel)

	em.newBlock(endLabel)
}

func (em *irEmitter) printStmt(n *ast.Node) {
	args := ast.Meaningful(n.Children)
	if len(args) == 0 {
		return
	}

	if !em.printf {
		em.printf = true
		em.globals = append(em.globals, "declare i32 @printf(ptr, ...)")
	}

	val := em.expr(args[0])
	fmtName := fmt.Sprintf("@.fmt.%d", em.strs)
	em.strs++
	em.globals = append(em.globals,
		fmtName+` = private unnamed_addr constant [4 x i8] c"%d\0A\00"`)
	reg := em.nextReg()
	em.emit(reg + " = call i32 (ptr, ...) @printf(ptr " + fmtName + ", i32 " + val + ")")
}

// expr lowers an expression and returns its operand text: a constant or a
// numbered temporary.
func (em *irEmitter) expr(n *ast.Node) string {
	switch n.Type {
	case ast.NumberType:
		return llvmInt(n.Value)
	case ast.IdentifierType:
		ptr, has := em.vars[n.Value]
		if !has {
			em.fail("read of undefined variable %q at line %d", n.Value, n.Line)
			return "0"
		}
		reg := em.nextReg()
		em.emit(reg + " = load i32, ptr " + ptr)
		return reg
	case ast.StringType:
		return "0"
	}

	operands, ops := chain(n)
	if len(operands) == 0 {
		return "0"
	}

	val := em.expr(operands[0])
	for i, op := range ops {
		if i+1 >= len(operands) {
			break
		}
		inst, known := llvmOps[op.Value]
		if !known {
			em.fail("operator %q at line %d has no IR lowering", op.Value, op.Line)
			return val
		}
		rhs := em.expr(operands[i+1])
		reg := em.nextReg()
		em.emit(reg + " = " + inst + " i32 " + val + ", " + rhs)
		val = reg
	}
	return val
}

func llvmInt(value string) string {
	if i := strings.IndexByte(value, '.'); i >= 0 {
		value = value[:i]
	}
	if _, e := strconv.Atoi(value); e != nil {
		return "0"
	}
	return value
}

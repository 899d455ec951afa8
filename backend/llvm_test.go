package backend

import (
	"strings"
	"testing"
)

func TestLLVMArithmetic(t *testing.T) {
	root := parseWith(t, arithmeticPeg, "x = 2 + 3 * 4 ;")
	out, e := NewLLVM().Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}

	checkOrdered(t, out, []string{
		"define i32 @main() {",
		"entry:",
		"%1 = mul i32 3, 4",
		"%2 = add i32 2, %1",
		"%3 = alloca i32",
		"store i32 %2, ptr %3",
		"ret i32 0",
		"}",
	})
}

func TestLLVMLoadOnRead(t *testing.T) {
	root := parseWith(t, arithmeticPeg, "x = 5 ; y = x + 1 ;")
	out, e := NewLLVM().Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}

	checkOrdered(t, out, []string{
		"%1 = alloca i32",
		"store i32 5, ptr %1",
		"%2 = load i32, ptr %1",
		"%3 = add i32 %2, 1",
		"%4 = alloca i32",
		"store i32 %3, ptr %4",
	})
}

func TestLLVMReuseAlloca(t *testing.T) {
	root := parseWith(t, arithmeticPeg, "x = 1 ; x = 2 ;")
	out, e := NewLLVM().Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}
	if strings.Count(out, "alloca i32") != 1 {
		t.Errorf("one variable needs one alloca:\n%s", out)
	}
	checkOrdered(t, out, []string{"store i32 1, ptr %1", "store i32 2, ptr %1"})
}

func TestLLVMUndefinedRead(t *testing.T) {
	root := parseWith(t, arithmeticPeg, "x = nope + 1 ;")
	_, e := NewLLVM().Translate(root)
	if e == nil {
		t.Fatal("expecting backend error for undefined variable read")
	}
}

func TestLLVMConditional(t *testing.T) {
	peg := `
program <- stmt+
stmt    <- if_stmt / assign
if_stmt <- "when" expr "then" assign "end"
assign  <- IDENT "=" expr ";"
expr    <- NUMBER / IDENT
`
	root := parseWith(t, peg, "x = 1 ; when x then y = 2 ; end")
	out, e := NewLLVM().Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}
	checkOrdered(t, out, []string{
		"icmp ne i32",
		"br i1",
		"then1:",
		"endif2:",
		"ret i32 0",
	})
}

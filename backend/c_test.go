package backend

import (
	"strings"
	"testing"
)

func checkOrdered(t *testing.T, out string, parts []string) {
	t.Helper()
	rest := out
	for _, part := range parts {
		i := strings.Index(rest, part)
		if i < 0 {
			t.Fatalf("missing or out of order: %q in:\n%s", part, out)
		}
		rest = rest[i+len(part):]
	}
}

func TestCArithmetic(t *testing.T) {
	root := parseWith(t, arithmeticPeg, "x = 2 + 3 * 4 ; y = ( x - 1 ) * 2 ;")
	out, e := NewC().Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}

	checkOrdered(t, out, []string{
		"#include <stdio.h>",
		"int main(void) {",
		"int x = 2 + 3 * 4;",
		"int y = ( x - 1 ) * 2;",
		"return 0;",
		"}",
	})
	checkOrdered(t, out, []string{"#include <stdio.h>", "#include <stdlib.h>", "#include <string.h>"})
}

func TestCRedeclaration(t *testing.T) {
	root := parseWith(t, arithmeticPeg, "x = 1 ; x = x + 1 ;")
	out, e := NewC().Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}
	checkOrdered(t, out, []string{"int x = 1;", "x = x + 1;"})
	if strings.Count(out, "int x") != 1 {
		t.Errorf("variable declared more than once:\n%s", out)
	}
}

func TestCStringDeclaration(t *testing.T) {
	peg := "program <- statement+\nstatement <- IDENT \"=\" STRING \";\"\n"
	root := parseWith(t, peg, `msg = "hello" ;`)
	out, e := NewC().Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}
	if !strings.Contains(out, `const char* msg = "hello";`) {
		t.Errorf("unexpected string declaration:\n%s", out)
	}
}

func TestCPrint(t *testing.T) {
	peg := `
program    <- statement+
statement  <- print_stmt / assignment
print_stmt <- "print" "(" expr ")" ";"
assignment <- IDENT "=" expr ";"
expr       <- NUMBER / IDENT
`
	root := parseWith(t, peg, "x = 5 ; print ( x ) ;")
	out, e := NewC().Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}
	if !strings.Contains(out, `printf("%d\n", x);`) {
		t.Errorf("unexpected print lowering:\n%s", out)
	}
}

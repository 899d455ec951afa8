package backend

import (
	"strings"
	"testing"
)

func TestWatModule(t *testing.T) {
	root := parseWith(t, arithmeticPeg, "x = 2 + 3 * 4 ; y = ( x - 1 ) * 2 ;")
	out, e := NewWat().Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}

	checkOrdered(t, out, []string{
		"(module",
		"(memory 256)",
		"(func $main",
		"(local $x i32)",
		"(local $y i32)",
		"(local.set $x (i32.add (i32.const 2) (i32.mul (i32.const 3) (i32.const 4))))",
		"(local.set $y (i32.mul (i32.sub (local.get $x) (i32.const 1)) (i32.const 2)))",
	})
}

func TestWatChainFoldsLeft(t *testing.T) {
	root := parseWith(t, arithmeticPeg, "x = 1 - 2 - 3 ;")
	out, e := NewWat().Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}
	want := "(local.set $x (i32.sub (i32.sub (i32.const 1) (i32.const 2)) (i32.const 3)))"
	if !strings.Contains(out, want) {
		t.Errorf("expecting left fold:\n%s", out)
	}
}

func TestWatDivision(t *testing.T) {
	root := parseWith(t, arithmeticPeg, "x = 8 / 2 ;")
	out, e := NewWat().Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}
	if !strings.Contains(out, "(i32.div_s (i32.const 8) (i32.const 2))") {
		t.Errorf("expecting signed division:\n%s", out)
	}
}

func TestWatLocalsUnique(t *testing.T) {
	root := parseWith(t, arithmeticPeg, "x = 1 ; x = 2 ; y = x ;")
	out, e := NewWat().Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}
	if strings.Count(out, "(local $x i32)") != 1 {
		t.Errorf("local $x must be declared once:\n%s", out)
	}
	if !strings.Contains(out, "(local.set $y (local.get $x))") {
		t.Errorf("identifier read must lower to local.get:\n%s", out)
	}
}

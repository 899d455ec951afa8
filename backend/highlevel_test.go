package backend

import (
	"strings"
	"testing"

	"github.com/parsercraft/parsercraft/ast"
	"github.com/parsercraft/parsercraft/langdef"
	"github.com/parsercraft/parsercraft/parser"
)

const arithmeticPeg = `
program   <- statement+
statement <- IDENT "=" expr ";"
expr      <- term (("+" / "-") term)*
term      <- factor (("*" / "/") factor)*
factor    <- NUMBER / IDENT / "(" expr ")"
`

const pascalPeg = `
program   <- statement+
statement <- IDENT ":=" expr ";"
expr      <- term (("+" / "-") term)*
term      <- factor (("*" / "/") factor)*
factor    <- NUMBER / IDENT / "(" expr ")"
`

func parseWith(t *testing.T, peg, src string) *ast.Node {
	t.Helper()
	g, e := langdef.ParseString("test", peg)
	if e != nil {
		t.Fatal(e.Error())
	}
	if e = g.Build(); e != nil {
		t.Fatal(e.Error())
	}
	p, e := parser.New(g)
	if e != nil {
		t.Fatal(e.Error())
	}
	root, err := p.Parse("test", src)
	if err != nil {
		t.Fatal("parse failed: " + err.Error())
	}
	return root
}

func checkBindings(t *testing.T, got map[string]float64, want map[string]float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("expecting %d bindings, got %d: %v", len(want), len(got), got)
	}
	for name, val := range want {
		if got[name] != val {
			t.Errorf("binding %s: expecting %v, got %v", name, val, got[name])
		}
	}
}

func TestExecuteArithmetic(t *testing.T) {
	root := parseWith(t, arithmeticPeg, "x = 2 + 3 * 4 ; y = ( x - 1 ) * 2 ;")
	bindings, e := NewHighLevel(Options{}).Execute(root)
	if e != nil {
		t.Fatal(e.Error())
	}
	checkBindings(t, bindings, map[string]float64{"x": 14, "y": 26})
}

func TestExecutePascalAssignment(t *testing.T) {
	root := parseWith(t, pascalPeg, "x := 10 ; y := x * 2 + 5 ; area := x * y ;")
	bindings, e := NewHighLevel(Options{}).Execute(root)
	if e != nil {
		t.Fatal(e.Error())
	}
	checkBindings(t, bindings, map[string]float64{"x": 10, "y": 25, "area": 250})
}

func TestTranslateText(t *testing.T) {
	root := parseWith(t, arithmeticPeg, "x = 2 + 3 * 4 ; y = ( x - 1 ) * 2 ;")
	out, e := NewHighLevel(Options{}).Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := []string{
		"x = 2 + 3 * 4",
		"y = ( x - 1 ) * 2",
	}
	if len(lines) != len(want) {
		t.Fatalf("expecting %d lines, got %d: %q", len(want), len(lines), out)
	}
	for i, l := range want {
		if lines[i] != l {
			t.Errorf("line #%d: expecting %q, got %q", i, l, lines[i])
		}
	}
}

func TestKeywordMap(t *testing.T) {
	root := parseWith(t, arithmeticPeg, "total = cuenta + 1 ;")
	opts := Options{KeywordMap: map[string]string{"cuenta": "count"}}
	out, e := NewHighLevel(opts).Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}
	if !strings.Contains(out, "total = count + 1") {
		t.Errorf("keyword map not applied: %q", out)
	}
}

func TestOperatorMap(t *testing.T) {
	root := parseWith(t, arithmeticPeg, "x = 1 + 2 ;")
	opts := Options{OperatorMap: map[string]string{"+": "plus"}}
	out, e := NewHighLevel(opts).Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}
	if !strings.Contains(out, "x = 1 plus 2") {
		t.Errorf("operator map not applied: %q", out)
	}
}

func TestWrapMain(t *testing.T) {
	root := parseWith(t, arithmeticPeg, "x = 1 ;")
	out, e := NewHighLevel(Options{WrapMain: true}).Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}
	if !strings.HasPrefix(out, "if __name__ == \"__main__\":\n") {
		t.Errorf("missing main guard: %q", out)
	}
	if !strings.Contains(out, "    x = 1") {
		t.Errorf("statements must be re-indented under the guard: %q", out)
	}
}

func TestSourceMaps(t *testing.T) {
	root := parseWith(t, arithmeticPeg, "x = 1 ;\ny = 2 ;")
	out, e := NewHighLevel(Options{SourceMaps: true}).Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}
	if !strings.Contains(out, "# src line 1\nx = 1") {
		t.Errorf("missing source map for line 1: %q", out)
	}
	if !strings.Contains(out, "# src line 2\ny = 2") {
		t.Errorf("missing source map for line 2: %q", out)
	}
}

func TestIndentOption(t *testing.T) {
	peg := `
program <- stmt+
stmt    <- if_stmt / assign
if_stmt <- "when" expr "then" assign "end"
assign  <- IDENT "=" expr ";"
expr    <- NUMBER / IDENT
`
	root := parseWith(t, peg, "when 1 then x = 2 ; end")
	out, e := NewHighLevel(Options{Indent: "\t"}).Translate(root)
	if e != nil {
		t.Fatal(e.Error())
	}
	if !strings.Contains(out, "if 1:\n\tx = 2") {
		t.Errorf("unexpected conditional emission: %q", out)
	}
}

func TestUnknownNodesRecurse(t *testing.T) {
	// Backends never fail on unknown node types.
	root := &ast.Node{Type: "mystery", Children: []*ast.Node{
		{Type: "wrapped", Children: []*ast.Node{
			{Type: ast.IdentifierType, Value: "x"},
			{Type: ast.OperatorType, Value: "="},
			{Type: ast.NumberType, Value: "3"},
		}},
	}}
	bindings, e := NewHighLevel(Options{}).Execute(root)
	if e != nil {
		t.Fatal(e.Error())
	}
	checkBindings(t, bindings, map[string]float64{"x": 3})
}

func TestDoubleUnderscoreExcluded(t *testing.T) {
	root := parseWith(t, arithmeticPeg, "__tmp = 1 ; x = __tmp + 1 ;")
	bindings, e := NewHighLevel(Options{}).Execute(root)
	if e != nil {
		t.Fatal(e.Error())
	}
	if _, has := bindings["__tmp"]; has {
		t.Error("double-underscore names must be excluded from bindings")
	}
	if bindings["x"] != 2 {
		t.Errorf("expecting x = 2, got %v", bindings["x"])
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range Names() {
		b, e := New(name)
		if e != nil {
			t.Errorf("backend %q: %s", name, e.Error())
			continue
		}
		if b.Name() != name {
			t.Errorf("backend %q reports name %q", name, b.Name())
		}
	}

	_, e := New("cobol")
	if e == nil {
		t.Fatal("expecting unknown backend error")
	}
}

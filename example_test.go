package parsercraft_test

import (
	"fmt"
	"sort"

	"github.com/parsercraft/parsercraft/backend"
	"github.com/parsercraft/parsercraft/langdef"
	"github.com/parsercraft/parsercraft/parser"
)

func Example() {
	grammar := `
program   <- statement+
statement <- IDENT "=" expr ";"
expr      <- term (("+" / "-") term)*
term      <- factor (("*" / "/") factor)*
factor    <- NUMBER / IDENT / "(" expr ")"
`
	input := "x = 2 + 3 * 4 ; y = ( x - 1 ) * 2 ;"

	g, e := langdef.ParseString("example grammar", grammar)
	if e != nil {
		fmt.Println(e)
		return
	}
	if e = g.Build(); e != nil {
		fmt.Println(e)
		return
	}

	p, e := parser.New(g)
	if e != nil {
		panic(e)
	}
	root, e := p.Parse("example", input)
	if e != nil {
		fmt.Println(e)
		return
	}

	bindings, e := backend.NewHighLevel(backend.Options{}).Execute(root)
	if e != nil {
		fmt.Println(e)
		return
	}

	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s = %v\n", name, bindings[name])
	}
	// Output:
	// x = 14
	// y = 26
}

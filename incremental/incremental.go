// Package incremental maintains a grammar/source/AST/memo state across
// successive edits, re-parsing after each edit while reusing every memo
// cell the edit could not have affected.
//
// Invalidation policy: cells starting inside the edited range are
// discarded; cells before it are kept unless their examined range reaches
// into the edit; cells after it are re-keyed by the edit's length delta
// and their subtrees replaced by position-shifted clones (nodes are
// shared with previously returned trees, which must survive a failed
// re-parse untouched). The resulting AST is always identical to a full
// parse of the final text.
package incremental

import (
	"github.com/parsercraft/parsercraft/ast"
	"github.com/parsercraft/parsercraft/grammar"
	"github.com/parsercraft/parsercraft/parser"
	"github.com/parsercraft/parsercraft/source"
)

// Stats counts the work an incremental parser has done.
type Stats struct {
	// Parses is the total number of parse passes, full and incremental.
	Parses int

	// Edits is the number of ApplyEdit calls.
	Edits int

	// ReusedCells is the number of memo cells carried into the most
	// recent re-parse.
	ReusedCells int
}

// Parser wraps the packrat interpreter with edit tracking. It exclusively
// owns its state; callers serialize access.
type Parser struct {
	p     *parser.Parser
	src   *source.Source
	tree  *ast.Node
	memo  parser.Memo
	stats Stats
}

// New creates an incremental parser for a grammar frozen with Build.
func New(g *grammar.Grammar) (*Parser, error) {
	p, e := parser.New(g)
	if e != nil {
		return nil, e
	}
	return &Parser{p: p}, nil
}

// Parse performs a full parse, replacing the source, AST, and memo. On
// failure the previous AST is kept while the source and memo move to the
// new text.
func (ip *Parser) Parse(name, text string) (*ast.Node, error) {
	ip.src = source.New(name, []byte(text))
	ip.memo = parser.NewMemo()
	ip.stats.Parses++
	ip.stats.ReusedCells = 0

	tree, e := ip.p.ParseSource(ip.src, ip.memo)
	if e != nil {
		return nil, e
	}
	ip.tree = tree
	return tree, nil
}

// ApplyEdit replaces the byte range [start, end) of the current source
// with newText and re-parses, reusing unaffected memo cells. On an
// edit-induced parse failure the edit stays applied (source and memo
// reflect the new text) and the most recent successful AST is kept.
func (ip *Parser) ApplyEdit(start, end int, newText string) (*ast.Node, error) {
	if ip.src == nil {
		return nil, notParsedError()
	}
	if start < 0 || end < start || end > ip.src.Len() {
		return nil, badEditError(start, end, ip.src.Len())
	}

	old := ip.src.Text()
	delta := len(newText) - (end - start)
	newSrc := source.New(ip.src.Name(), []byte(old[:start]+newText+old[end:]))

	memo := ip.invalidate(start, end, delta, newSrc)
	ip.src = newSrc
	ip.memo = memo
	ip.stats.Edits++
	ip.stats.Parses++
	ip.stats.ReusedCells = len(memo)

	tree, e := ip.p.ParseSource(newSrc, memo)
	if e != nil {
		return nil, e
	}
	ip.tree = tree
	return tree, nil
}

// invalidate builds the memo for the edited text from the current one.
// Tail cells reference shifted clones of their subtrees, never the
// original nodes: those are shared with previously returned trees, and a
// failing re-parse must leave every returned tree untouched.
func (ip *Parser) invalidate(start, end, delta int, newSrc *source.Source) parser.Memo {
	memo := parser.NewMemo()
	shifter := newShifter(delta, newSrc)

	for key, cell := range ip.memo {
		switch {
		case key.Pos >= end:
			cell.End += delta
			cell.Examined += delta
			if len(cell.Nodes) > 0 {
				nodes := make([]*ast.Node, len(cell.Nodes))
				for i, n := range cell.Nodes {
					nodes[i] = shifter.shift(n)
				}
				cell.Nodes = nodes
			}
			memo[parser.MemoKey{Rule: key.Rule, Pos: key.Pos + delta}] = cell

		case key.Pos >= start:
			// Starts inside the edited range: discarded.

		case cell.Examined > start || (cell.Ok && cell.End > start):
			// Read into the edited range: discarded.

		default:
			memo[key] = cell
		}
	}
	return memo
}

// shifter rebuilds AST subtrees at their post-edit positions. Memo cells
// share nodes with each other and with previously returned trees, so
// every node is cloned exactly once and the original is never mutated.
type shifter struct {
	delta  int
	src    *source.Source
	clones map[*ast.Node]*ast.Node
}

func newShifter(delta int, src *source.Source) *shifter {
	return &shifter{delta: delta, src: src, clones: make(map[*ast.Node]*ast.Node)}
}

func (sh *shifter) shift(n *ast.Node) *ast.Node {
	if c, has := sh.clones[n]; has {
		return c
	}

	c := &ast.Node{Type: n.Type, Value: n.Value, Pos: n.Pos + sh.delta, Span: n.Span}
	c.Line, c.Col = sh.src.LineCol(c.Pos)
	sh.clones[n] = c
	if len(n.Children) > 0 {
		c.Children = make([]*ast.Node, len(n.Children))
		for i, ch := range n.Children {
			c.Children[i] = sh.shift(ch)
		}
	}
	return c
}

// AST returns the most recent successfully parsed tree, or nil.
func (ip *Parser) AST() *ast.Node {
	return ip.tree
}

// Source returns the current source text.
func (ip *Parser) Source() string {
	if ip.src == nil {
		return ""
	}
	return ip.src.Text()
}

// MemoSize returns the current number of memo cells.
func (ip *Parser) MemoSize() int {
	return len(ip.memo)
}

// Stats returns parse statistics.
func (ip *Parser) Stats() Stats {
	return ip.stats
}

// Package parser implements the packrat interpreter: it matches a
// compiled grammar against source text and produces an AST, or a
// structured failure locating the furthest position reached.
//
// Evaluation is recursive-descent PEG matching with per-call memoization
// keyed by (rule id, byte offset), giving linear parse time in source
// size for a fixed grammar. The interpreter is single-threaded and owns
// no state across parses; the memo table is local to a parse unless the
// caller supplies one (the incremental parser does).
package parser

import (
	"github.com/parsercraft/parsercraft/ast"
	"github.com/parsercraft/parsercraft/grammar"
	"github.com/parsercraft/parsercraft/source"
)

// Parser matches one built grammar against source strings. It is
// immutable and may be reused for any number of parses.
type Parser struct {
	g *grammar.Grammar
}

// New creates a parser for a grammar frozen with Build.
func New(g *grammar.Grammar) (*Parser, error) {
	if !g.Built() {
		return nil, notBuiltError(g.Name())
	}
	return &Parser{g: g}, nil
}

// Grammar returns the parser's grammar.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.g
}

// Parse matches the grammar's start rule against text and returns the
// root AST node. The root node's type equals the start rule name. On
// failure it returns a *parsercraft.Error carrying the furthest position
// reached and the deepest rule attempted there.
func (p *Parser) Parse(name, text string) (*ast.Node, error) {
	return p.ParseSource(source.New(name, []byte(text)), nil)
}

// ParseSource is Parse with an explicit source and an optional memo
// table. A nil memo gets a fresh table discarded at return; a caller-owned
// memo (the incremental parser's) is consulted and filled in place.
func (p *Parser) ParseSource(src *source.Source, memo Memo) (*ast.Node, error) {
	if memo == nil {
		memo = NewMemo()
	}
	pc := &parseContext{p: p, src: src, text: src.Text(), memo: memo}

	startRule := p.g.Rule(p.g.Start())
	res := pc.matchRule(startRule, 0)
	if pc.recursive != "" {
		return nil, recursionError(pc.recursive)
	}
	if !res.ok {
		return nil, syntaxError(src, pc.furthest, pc.deepRule)
	}

	rest := pc.skipIgnored(res.end)
	if rest < len(pc.text) {
		return nil, unexpectedInputError(src, rest, pc.deepRule)
	}

	return res.nodes[0], nil
}

// result is the outcome of matching one expression at one position.
type result struct {
	ok    bool
	end   int
	nodes []*ast.Node
}

type parseContext struct {
	p    *Parser
	src  *source.Source
	text string
	memo Memo

	// furthest is the largest offset any match was attempted at; deepRule
	// is the last named rule entered there. Used only for error reporting.
	furthest int
	deepRule string

	// scanMax is the furthest byte inspected within the current rule
	// attempt; matchRule maintains it as a per-attempt watermark so memo
	// cells record their examined extent.
	scanMax int

	// recursive names the rule that re-entered its own evaluation at the
	// same position. Once set, the parse unwinds and fails.
	recursive string
}

func (pc *parseContext) note(pos int) {
	// len(text)+1 records that the attempt looked at the end of the text,
	// so an insertion there reaches into its examined range.
	if pos > len(pc.text)+1 {
		pos = len(pc.text) + 1
	}
	if pos > pc.scanMax {
		pc.scanMax = pos
	}
}

func (pc *parseContext) reach(pos int) {
	if pos > pc.furthest {
		pc.furthest = pos
	}
	pc.note(pos)
}

func cellResult(cell MemoCell, pos int) result {
	if !cell.Ok {
		return result{end: pos}
	}
	return result{ok: true, end: cell.End, nodes: cell.Nodes}
}

// matchRule applies a named rule at pos, consulting the memo. On success
// the rule contributes one composite node whose children are the AST
// fragments its pattern produced.
//
// Before evaluating, the cell is marked as in evaluation; hitting such a
// cell means the rule re-entered itself at the same position. Build
// rejects left recursion statically, this is the runtime guard for
// anything that slips past it.
func (pc *parseContext) matchRule(r *grammar.Rule, pos int) result {
	if pc.recursive != "" {
		return result{end: pos}
	}

	if pos >= pc.furthest {
		pc.furthest = pos
		pc.deepRule = r.Name
	}

	key := MemoKey{Rule: r.ID(), Pos: pos}
	if cell, has := pc.memo[key]; has {
		if cell.evaluating {
			pc.recursive = r.Name
			return result{end: pos}
		}
		// The enclosing attempt examined everything the cached attempt did.
		pc.note(cell.Examined)
		return cellResult(cell, pos)
	}
	pc.memo[key] = MemoCell{evaluating: true}

	saved := pc.scanMax
	pc.scanMax = pos
	res := pc.evalRule(r, pos)
	examined := pc.scanMax
	if saved > pc.scanMax {
		pc.scanMax = saved
	}

	if pc.recursive != "" {
		// Results computed while unwinding are artifacts; keep the memo
		// free of them.
		delete(pc.memo, key)
		return result{end: pos}
	}

	pc.memo[key] = MemoCell{Ok: res.ok, End: res.end, Examined: examined, Nodes: res.nodes}
	return res
}

func (pc *parseContext) evalRule(r *grammar.Rule, pos int) result {
	if r.Expr == nil {
		return result{end: pos}
	}

	p0 := pc.skipIgnored(pos)
	pc.note(p0)
	res := pc.matchExpr(r.Expr, p0)
	if !res.ok {
		return result{end: pos}
	}

	line, col := pc.src.LineCol(p0)
	node := &ast.Node{
		Type:     r.Name,
		Children: res.nodes,
		Line:     line,
		Col:      col,
		Pos:      p0,
		Span:     pc.text[p0:res.end],
	}
	return result{ok: true, end: res.end, nodes: []*ast.Node{node}}
}

func (pc *parseContext) matchExpr(e *grammar.Expr, pos int) result {
	switch e.Kind {
	case grammar.Literal:
		return pc.matchLiteral(e.Text, pos)

	case grammar.RuleRef:
		if grammar.IsBuiltin(e.Text) {
			return pc.matchBuiltin(e.Text, pos)
		}
		return pc.matchRule(pc.p.g.Rule(e.Text), pos)

	case grammar.Sequence:
		return pc.matchSequence(e.Children, pos)

	case grammar.Choice:
		for _, alt := range e.Children {
			if res := pc.matchExpr(alt, pos); res.ok {
				return res
			}
		}
		return result{end: pos}

	case grammar.ZeroOrMore:
		return pc.matchRepeat(e.Children[0], pos, 0)

	case grammar.OneOrMore:
		return pc.matchRepeat(e.Children[0], pos, 1)

	case grammar.Optional:
		if res := pc.matchExpr(e.Children[0], pos); res.ok {
			return res
		}
		return result{ok: true, end: pos}

	case grammar.AndPredicate:
		res := pc.matchExpr(e.Children[0], pos)
		return result{ok: res.ok, end: pos}

	case grammar.NotPredicate:
		res := pc.matchExpr(e.Children[0], pos)
		return result{ok: !res.ok, end: pos}
	}

	return result{end: pos}
}

func (pc *parseContext) matchSequence(items []*grammar.Expr, pos int) result {
	cur := pos
	var nodes []*ast.Node
	for _, item := range items {
		res := pc.matchExpr(item, cur)
		if !res.ok {
			return result{end: pos}
		}
		nodes = append(nodes, res.nodes...)
		cur = res.end
	}
	return result{ok: true, end: cur, nodes: nodes}
}

// matchRepeat applies inner greedily. A zero-width success terminates the
// loop instead of repeating forever.
func (pc *parseContext) matchRepeat(inner *grammar.Expr, pos, min int) result {
	cur := pos
	count := 0
	var nodes []*ast.Node
	for {
		res := pc.matchExpr(inner, cur)
		if !res.ok || res.end == cur {
			break
		}
		nodes = append(nodes, res.nodes...)
		cur = res.end
		count++
	}

	if count < min {
		return result{end: pos}
	}
	return result{ok: true, end: cur, nodes: nodes}
}

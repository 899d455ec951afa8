package parser

import (
	"regexp"
	"strings"

	"github.com/parsercraft/parsercraft/ast"
	"github.com/parsercraft/parsercraft/grammar"
)

// Built-in token patterns, anchored at the match position.
var (
	numberRe = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?`)
	identRe  = regexp.MustCompile(`^[A-Za-z_][A-Za-z_0-9]*`)
)

// skipIgnored advances pos past ASCII whitespace and comments ("//" to
// end of line, "/*" to "*/").
func (pc *parseContext) skipIgnored(pos int) int {
	text := pc.text
	for {
		start := pos
		for pos < len(text) {
			c := text[pos]
			if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
				break
			}
			pos++
		}

		if strings.HasPrefix(text[pos:], "//") {
			if i := strings.IndexByte(text[pos:], '\n'); i >= 0 {
				pos += i
			} else {
				pos = len(text)
			}
		} else if strings.HasPrefix(text[pos:], "/*") {
			if i := strings.Index(text[pos+2:], "*/"); i >= 0 {
				pos += i + 4
			} else {
				pos = len(text)
			}
		}

		if pos == start {
			return pos
		}
	}
}

// matchLiteral matches text verbatim after whitespace skipping and yields
// an Operator leaf. A purely alphabetic literal must not be immediately
// followed by an identifier character, so keyword literals never split
// identifiers.
func (pc *parseContext) matchLiteral(lit string, pos int) result {
	p0 := pc.skipIgnored(pos)
	pc.reach(p0)

	if lit == "" {
		return result{ok: true, end: p0}
	}

	end := p0 + len(lit)
	pc.note(end)
	if end > len(pc.text) || pc.text[p0:end] != lit {
		return result{end: pos}
	}

	if isWord(lit) && end < len(pc.text) {
		// The boundary check reads one byte past the match.
		pc.note(end + 1)
		if isIdentChar(pc.text[end]) {
			return result{end: pos}
		}
	}

	line, col := pc.src.LineCol(p0)
	leaf := ast.NewLeaf(ast.OperatorType, lit, line, col, p0)
	return result{ok: true, end: end, nodes: []*ast.Node{leaf}}
}

// matchBuiltin matches one of the built-in tokens, consulting the memo.
func (pc *parseContext) matchBuiltin(name string, pos int) result {
	key := MemoKey{Rule: builtinID(name), Pos: pos}
	if cell, has := pc.memo[key]; has {
		pc.note(cell.Examined)
		return cellResult(cell, pos)
	}

	saved := pc.scanMax
	pc.scanMax = pos
	res := pc.matchToken(name, pos)
	examined := pc.scanMax
	if saved > pc.scanMax {
		pc.scanMax = saved
	}

	pc.memo[key] = MemoCell{Ok: res.ok, End: res.end, Examined: examined, Nodes: res.nodes}
	return res
}

func (pc *parseContext) matchToken(name string, pos int) result {
	p0 := pc.skipIgnored(pos)
	pc.reach(p0)

	switch name {
	case grammar.NumberToken:
		m := numberRe.FindString(pc.text[p0:])
		if m == "" {
			pc.note(p0 + 1)
			return result{end: pos}
		}
		// The matcher reads one byte past the lexeme to stop.
		pc.note(p0 + len(m) + 1)
		return pc.leafResult(ast.NumberType, m, p0, p0+len(m))

	case grammar.IdentToken:
		m := identRe.FindString(pc.text[p0:])
		if m == "" {
			pc.note(p0 + 1)
			return result{end: pos}
		}
		pc.note(p0 + len(m) + 1)
		return pc.leafResult(ast.IdentifierType, m, p0, p0+len(m))

	case grammar.StringToken:
		return pc.matchString(p0, pos)
	}

	return result{end: pos}
}

// matchString matches a single- or double-quoted literal. The value is
// the raw content between the delimiters; escape sequences are not
// interpreted beyond protecting the delimiter itself.
func (pc *parseContext) matchString(p0, pos int) result {
	text := pc.text
	if p0 >= len(text) || (text[p0] != '"' && text[p0] != '\'') {
		pc.note(p0 + 1)
		return result{end: pos}
	}

	quote := text[p0]
	i := p0 + 1
	for i < len(text) {
		switch {
		case text[i] == '\\' && i+1 < len(text):
			i += 2
		case text[i] == quote:
			pc.note(i + 1)
			return pc.leafResult(ast.StringType, text[p0+1:i], p0, i+1)
		default:
			i++
		}
	}
	pc.note(len(text) + 1)
	return result{end: pos}
}

func (pc *parseContext) leafResult(typ, value string, p0, end int) result {
	line, col := pc.src.LineCol(p0)
	leaf := ast.NewLeaf(typ, value, line, col, p0)
	return result{ok: true, end: end, nodes: []*ast.Node{leaf}}
}

func isWord(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return s != ""
}

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

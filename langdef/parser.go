// Package langdef converts grammar descriptions written in PEG notation
// into compiled grammar values.
//
// Each rule occupies one line:
//
//	rule_name <- pattern
//
// Patterns support juxtaposition (sequence), "/" (ordered choice),
// postfix "*", "+", "?", grouping "(...)", double- and single-quoted
// literals, prefix "&" (and-predicate), prefix "!" (not-predicate), and
// bare identifiers referencing rules or the built-in tokens NUMBER,
// IDENT, STRING. Blank lines and lines starting with "#" are skipped.
//
// Parse does not verify that referenced rules exist; that check belongs
// to grammar.Build, so forward references and mutual recursion are fine.
package langdef

import (
	"strings"

	"github.com/parsercraft/parsercraft/grammar"
	"github.com/parsercraft/parsercraft/source"
)

// ParseString parses a grammar description and returns the (unbuilt)
// grammar on success. Returns nil and a *parsercraft.Error on error.
func ParseString(name, content string) (*grammar.Grammar, error) {
	return Parse(source.New(name, []byte(content)))
}

// ParseBytes parses a grammar description and returns the (unbuilt)
// grammar on success. Returns nil and a *parsercraft.Error on error.
func ParseBytes(name string, content []byte) (*grammar.Grammar, error) {
	return Parse(source.New(name, content))
}

// Parse parses a grammar description and returns the (unbuilt) grammar on
// success. Returns nil and a *parsercraft.Error on error.
func Parse(s *source.Source) (*grammar.Grammar, error) {
	g := grammar.New(s.Name())
	lines := strings.Split(s.Text(), "\n")

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		sc := &scanner{name: s.Name(), line: strings.TrimRight(line, "\r"), ln: i + 1}
		name, expr, e := sc.parseRule()
		if e != nil {
			return nil, e
		}

		if e = g.AddRule(name, expr, ""); e != nil {
			return nil, e
		}
	}

	return g, nil
}

type scanner struct {
	name string
	line string
	ln   int
	pos  int
}

func (sc *scanner) eof() bool {
	return sc.pos >= len(sc.line)
}

func (sc *scanner) peek() byte {
	return sc.line[sc.pos]
}

func (sc *scanner) col() int {
	return sc.pos + 1
}

func (sc *scanner) skipWs() {
	for !sc.eof() && (sc.peek() == ' ' || sc.peek() == '\t') {
		sc.pos++
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// parseRule parses one "name <- pattern" line. An empty pattern is
// accepted and yields a nil expression (a rule that never matches).
func (sc *scanner) parseRule() (string, *grammar.Expr, error) {
	sc.skipWs()
	if sc.eof() || !isIdentStart(sc.peek()) {
		return "", nil, badRuleNameError(sc.name, sc.ln, sc.col())
	}

	start := sc.pos
	for !sc.eof() && isIdentChar(sc.peek()) {
		sc.pos++
	}
	name := sc.line[start:sc.pos]

	sc.skipWs()
	if sc.pos+2 > len(sc.line) || sc.line[sc.pos:sc.pos+2] != "<-" {
		return "", nil, badRuleError(sc.name, sc.ln, sc.col())
	}
	sc.pos += 2

	sc.skipWs()
	if sc.eof() {
		return name, nil, nil
	}

	expr, e := sc.parseChoice()
	if e != nil {
		return "", nil, e
	}
	sc.skipWs()
	if !sc.eof() {
		return "", nil, unexpectedCharError(sc.name, sc.ln, sc.col(), sc.peek())
	}
	return name, expr, nil
}

func (sc *scanner) parseChoice() (*grammar.Expr, error) {
	alt, e := sc.parseSequence()
	if e != nil {
		return nil, e
	}

	alts := []*grammar.Expr{alt}
	for {
		sc.skipWs()
		if sc.eof() || sc.peek() != '/' {
			break
		}
		sc.pos++
		alt, e = sc.parseSequence()
		if e != nil {
			return nil, e
		}
		alts = append(alts, alt)
	}
	return grammar.Alt(alts...), nil
}

func (sc *scanner) parseSequence() (*grammar.Expr, error) {
	var items []*grammar.Expr
	for {
		sc.skipWs()
		if sc.eof() || sc.peek() == '/' || sc.peek() == ')' {
			break
		}

		item, e := sc.parsePrefixed()
		if e != nil {
			return nil, e
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, danglingChoiceError(sc.name, sc.ln, sc.col())
	}
	return grammar.Seq(items...), nil
}

// parsePrefixed parses an optional predicate prefix. The quantifier binds
// tighter than the predicate: !a* reads as !(a*).
func (sc *scanner) parsePrefixed() (*grammar.Expr, error) {
	sc.skipWs()
	if !sc.eof() && (sc.peek() == '&' || sc.peek() == '!') {
		c := sc.peek()
		col := sc.col()
		sc.pos++
		sc.skipWs()
		if sc.eof() || sc.peek() == '/' || sc.peek() == ')' {
			return nil, danglingPredicateError(sc.name, sc.ln, col, c)
		}
		inner, e := sc.parsePrefixed()
		if e != nil {
			return nil, e
		}
		if c == '&' {
			return grammar.And(inner), nil
		}
		return grammar.Not(inner), nil
	}
	return sc.parseSuffixed()
}

func (sc *scanner) parseSuffixed() (*grammar.Expr, error) {
	prim, e := sc.parsePrimary()
	if e != nil {
		return nil, e
	}

	sc.skipWs()
	if !sc.eof() {
		switch sc.peek() {
		case '*':
			sc.pos++
			return grammar.Star(prim), nil
		case '+':
			sc.pos++
			return grammar.Plus(prim), nil
		case '?':
			sc.pos++
			return grammar.Opt(prim), nil
		}
	}
	return prim, nil
}

func (sc *scanner) parsePrimary() (*grammar.Expr, error) {
	sc.skipWs()
	if sc.eof() {
		return nil, unexpectedCharError(sc.name, sc.ln, sc.col(), ' ')
	}

	c := sc.peek()
	switch {
	case c == '"' || c == '\'':
		return sc.parseLiteral()

	case c == '(':
		col := sc.col()
		sc.pos++
		inner, e := sc.parseChoice()
		if e != nil {
			return nil, e
		}
		sc.skipWs()
		if sc.eof() || sc.peek() != ')' {
			return nil, unclosedGroupError(sc.name, sc.ln, col)
		}
		sc.pos++
		return inner, nil

	case isIdentStart(c):
		start := sc.pos
		for !sc.eof() && isIdentChar(sc.peek()) {
			sc.pos++
		}
		return grammar.Ref(sc.line[start:sc.pos]), nil

	case c == '*' || c == '+' || c == '?':
		return nil, missingOperandError(sc.name, sc.ln, sc.col(), c)
	}

	return nil, unexpectedCharError(sc.name, sc.ln, sc.col(), c)
}

var escapes = map[byte]byte{
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
}

func (sc *scanner) parseLiteral() (*grammar.Expr, error) {
	quote := sc.peek()
	openCol := sc.col()
	sc.pos++

	var sb strings.Builder
	for !sc.eof() {
		c := sc.peek()
		if c == quote {
			sc.pos++
			return grammar.Lit(sb.String()), nil
		}
		if c == '\\' {
			if sc.pos+1 >= len(sc.line) {
				return nil, unterminatedLiteralError(sc.name, sc.ln, openCol)
			}
			next := sc.line[sc.pos+1]
			sub, ok := escapes[next]
			if !ok {
				return nil, badEscapeError(sc.name, sc.ln, sc.col(), sc.line[sc.pos:sc.pos+2])
			}
			sb.WriteByte(sub)
			sc.pos += 2
			continue
		}
		sb.WriteByte(c)
		sc.pos++
	}
	return nil, unterminatedLiteralError(sc.name, sc.ln, openCol)
}

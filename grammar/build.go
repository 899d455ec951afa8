package grammar

// Build freezes the grammar: verifies that the start rule and every rule
// reference resolve (to a rule or a built-in token), rejects left
// recursion, and assigns integer rule ids in declaration order.
// After a successful Build the grammar must not be mutated.
func (g *Grammar) Build() error {
	if g.built {
		return nil
	}
	if len(g.order) == 0 {
		return noRulesError(g.name)
	}
	if g.rules[g.start] == nil {
		return noStartRuleError(g.start)
	}

	for _, name := range g.order {
		if e := g.checkRefs(name, g.rules[name].Expr); e != nil {
			return e
		}
	}

	for _, name := range g.order {
		if g.leftRecursive(name, map[string]bool{}) {
			return leftRecursionError(name)
		}
	}

	for i, name := range g.order {
		g.rules[name].id = i
	}
	g.built = true
	return nil
}

func (g *Grammar) checkRefs(ruleName string, e *Expr) error {
	if e == nil {
		return nil
	}
	if e.Kind == RuleRef && !IsBuiltin(e.Text) && g.rules[e.Text] == nil {
		return unknownRuleError(ruleName, e.Text)
	}
	for _, c := range e.Children {
		if err := g.checkRefs(ruleName, c); err != nil {
			return err
		}
	}
	return nil
}

// leftRecursive reports whether the named rule can invoke itself without
// consuming input, by walking the positions a match may start at.
func (g *Grammar) leftRecursive(name string, visited map[string]bool) bool {
	if visited[name] {
		return true
	}
	r := g.rules[name]
	if r == nil || r.Expr == nil {
		return false
	}
	visited[name] = true
	defer delete(visited, name)
	return g.firstCanBe(r.Expr, name, visited)
}

func (g *Grammar) firstCanBe(e *Expr, target string, visited map[string]bool) bool {
	switch e.Kind {
	case RuleRef:
		if IsBuiltin(e.Text) {
			return false
		}
		if e.Text == target {
			return true
		}
		return g.leftRecursive(e.Text, visited)
	case Sequence:
		// A leading nullable child keeps the following child in first
		// position too.
		for _, c := range e.Children {
			if g.firstCanBe(c, target, visited) {
				return true
			}
			if !g.nullable(c, map[string]bool{}) {
				return false
			}
		}
		return false
	case Choice:
		for _, c := range e.Children {
			if g.firstCanBe(c, target, visited) {
				return true
			}
		}
		return false
	case ZeroOrMore, OneOrMore, Optional, AndPredicate, NotPredicate:
		if len(e.Children) == 0 {
			return false
		}
		return g.firstCanBe(e.Children[0], target, visited)
	}
	return false
}

// nullable reports whether e can succeed without consuming input. Rule
// references resolve the referenced rule's own nullability; seen guards
// cycles, treating a rule whose nullability depends on itself as
// consuming (the least fixed point). A one-or-more over a nullable inner
// expression is not nullable: the interpreter treats a zero-width
// iteration as loop termination, so such a repeat either consumes or
// fails.
func (g *Grammar) nullable(e *Expr, seen map[string]bool) bool {
	switch e.Kind {
	case Literal:
		return e.Text == ""
	case RuleRef:
		if IsBuiltin(e.Text) || seen[e.Text] {
			return false
		}
		r := g.rules[e.Text]
		if r == nil || r.Expr == nil {
			return false
		}
		seen[e.Text] = true
		defer delete(seen, e.Text)
		return g.nullable(r.Expr, seen)
	case ZeroOrMore, Optional, AndPredicate, NotPredicate:
		return true
	case Sequence:
		for _, c := range e.Children {
			if !g.nullable(c, seen) {
				return false
			}
		}
		return true
	case Choice:
		for _, c := range e.Children {
			if g.nullable(c, seen) {
				return true
			}
		}
		return false
	}
	return false
}

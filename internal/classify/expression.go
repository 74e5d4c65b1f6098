package classify

import (
	"swiftfmt/internal/stream"
	"swiftfmt/internal/token"
)

// Range is an inclusive token index range.
type Range struct {
	Start, End int
}

// ParseExpressionRange returns the maximal single expression starting at i.
// It consumes literals, member chains, calls, subscripts, generic arguments,
// trailing closures (labelled ones included), prefix and postfix operators,
// try/await, is/as casts, non-assigning infix operators and the ternary
// operator. if/switch expressions are consumed only when allowConditional is
// set. The expression never continues past a linebreak unless the next token
// is an infix operator or a cast.
func ParseExpressionRange(s *stream.Stream, i int, allowConditional bool) (Range, bool) {
	if !s.Valid(i) || s.At(i).IsTrivia() {
		return Range{}, false
	}
	p := exprParser{s: s, cond: allowConditional}
	end := p.expression(i)
	if end < 0 {
		return Range{}, false
	}
	return Range{Start: i, End: end}, true
}

type exprParser struct {
	s    *stream.Stream
	cond bool
}

func (p exprParser) expression(i int) int {
	end := p.unary(i)
	if end < 0 {
		return -1
	}
	for {
		n := p.s.NextSignificant(end)
		if n < 0 {
			return end
		}
		t := p.s.At(n)
		switch {
		case t.Kind == token.Operator && t.Op == token.Infix && t.Text == "?":
			mid := p.expression(p.s.NextSignificant(n))
			if mid < 0 {
				return end
			}
			colon := p.s.NextSignificant(mid)
			if colon < 0 || !p.s.At(colon).IsDelimiter(":") {
				return end
			}
			rhs := p.expression(p.s.NextSignificant(colon))
			if rhs < 0 {
				return end
			}
			end = rhs
		case t.Kind == token.Operator && t.Op == token.Infix && t.Text != "." && t.Text != "->" && !t.IsAssignment():
			rhs := p.unary(p.s.NextSignificant(n))
			if rhs < 0 {
				return end
			}
			end = rhs
		case t.IsKeyword("is") || t.IsKeyword("as"):
			k := n
			if next := p.s.At(n + 1); next.IsOp("?", token.Postfix) || next.IsOp("!", token.Postfix) {
				k = n + 1
			}
			typ := p.typ(p.s.NextSignificant(k))
			if typ < 0 {
				return end
			}
			end = typ
		default:
			return end
		}
	}
}

func (p exprParser) unary(i int) int {
	if !p.s.Valid(i) {
		return -1
	}
	t := p.s.At(i)
	switch {
	case t.IsKeyword("try"):
		k := i
		if next := p.s.At(i + 1); next.IsOp("?", token.Postfix) || next.IsOp("!", token.Postfix) {
			k = i + 1
		}
		return p.unary(p.s.NextSignificant(k))
	case t.IsKeyword("await"):
		return p.unary(p.s.NextSignificant(i))
	case t.Kind == token.Operator && t.Op == token.Prefix:
		if t.Text == "." {
			member := p.s.NextSignificant(i)
			if !isMemberName(p.s.At(member)) {
				return -1
			}
			return p.postfix(member)
		}
		return p.unary(p.s.NextSignificant(i))
	}
	end := p.primary(i)
	if end < 0 {
		return -1
	}
	return p.postfix(end)
}

func isMemberName(t token.Token) bool {
	switch t.Kind {
	case token.Identifier, token.Number:
		return true
	case token.Keyword:
		return t.Text == "init" || t.Text == "self"
	}
	return false
}

func (p exprParser) primary(i int) int {
	t := p.s.At(i)
	switch t.Kind {
	case token.Identifier, token.Number:
		return i
	case token.Keyword:
		switch t.Text {
		case "self", "Self", "super", "nil", "true", "false", "Any", "init":
			return i
		case "if", "switch":
			if p.cond {
				return p.conditional(i)
			}
			return -1
		}
		if isPoundExpression(t.Text) {
			return i
		}
	case token.StartOfScope:
		switch t.Text {
		case "(", "[", "{":
			return p.s.MatchingScopeEnd(i)
		}
		if t.IsStringDelimiter() {
			return p.s.MatchingScopeEnd(i)
		}
	}
	return -1
}

// conditional consumes an if or switch expression with all its branches.
func (p exprParser) conditional(i int) int {
	body := -1
	for j := p.s.NextSignificant(i); j >= 0; j = p.s.NextSignificant(j) {
		t := p.s.At(j)
		if t.IsStartOfScope("{") && !IsStartOfClosure(p.s, j) {
			body = j
			break
		}
		if t.Kind == token.StartOfScope {
			if j = p.s.MatchingScopeEnd(j); j < 0 {
				return -1
			}
		}
	}
	if body < 0 {
		return -1
	}
	end := p.s.MatchingScopeEnd(body)
	if end < 0 || !p.s.At(i).IsKeyword("if") {
		return end
	}
	if e := p.s.NextSignificant(end); e >= 0 && p.s.At(e).IsKeyword("else") {
		next := p.s.NextSignificant(e)
		switch {
		case p.s.At(next).IsKeyword("if"):
			return p.conditional(next)
		case p.s.At(next).IsStartOfScope("{"):
			return p.s.MatchingScopeEnd(next)
		}
	}
	return end
}

func (p exprParser) postfix(end int) int {
	for {
		if next := p.s.At(end + 1); next.Kind == token.Operator && next.Op == token.Postfix && p.s.Valid(end+1) {
			end++
			continue
		}
		n := p.s.NextSignificant(end)
		if n < 0 {
			return end
		}
		t := p.s.At(n)
		linebreak := p.s.LinebreakBetween(end, n)
		switch {
		case t.IsOp(".", token.Infix):
			member := p.s.NextSignificant(n)
			if !isMemberName(p.s.At(member)) {
				return end
			}
			end = member
		case !linebreak && (t.IsStartOfScope("(") || t.IsStartOfScope("[") || t.IsStartOfScope("<")):
			m := p.s.MatchingScopeEnd(n)
			if m < 0 {
				return end
			}
			end = m
		case !linebreak && t.IsStartOfScope("{"):
			if !IsStartOfClosure(p.s, n) {
				return end
			}
			m := p.s.MatchingScopeEnd(n)
			if m < 0 {
				return end
			}
			end = p.labelledClosures(m)
		default:
			return end
		}
	}
}

// labelledClosures consumes `label: { ... }` groups after a trailing closure.
func (p exprParser) labelledClosures(end int) int {
	for {
		label := p.s.NextSignificant(end)
		if label < 0 || p.s.LinebreakBetween(end, label) || !p.s.At(label).IsIdentifier("") {
			return end
		}
		colon := p.s.NextSignificant(label)
		if !p.s.At(colon).IsDelimiter(":") {
			return end
		}
		brace := p.s.NextSignificant(colon)
		if !p.s.At(brace).IsStartOfScope("{") {
			return end
		}
		m := p.s.MatchingScopeEnd(brace)
		if m < 0 {
			return end
		}
		end = m
	}
}

// typ consumes the type operand of is/as.
func (p exprParser) typ(i int) int {
	if !p.s.Valid(i) {
		return -1
	}
	t := p.s.At(i)
	var end int
	switch {
	case t.IsIdentifier("some") || t.IsIdentifier("any"):
		return p.typ(p.s.NextSignificant(i))
	case t.Kind == token.Identifier || t.IsKeyword("Any") || t.IsKeyword("Self"):
		end = i
	case t.IsStartOfScope("(") || t.IsStartOfScope("["):
		end = p.s.MatchingScopeEnd(i)
		if end < 0 {
			return -1
		}
	default:
		return -1
	}
	for {
		next := p.s.At(end + 1)
		switch {
		case next.IsStartOfScope("<"):
			m := p.s.MatchingScopeEnd(end + 1)
			if m < 0 {
				return end
			}
			end = m
		case next.IsOp(".", token.Infix):
			member := end + 2
			if !isMemberName(p.s.At(member)) {
				return end
			}
			end = member
		case next.IsOp("?", token.Postfix) || next.IsOp("!", token.Postfix):
			end++
		default:
			if arrow := p.s.NextSignificant(end); p.s.At(arrow).IsOperator("->") {
				return p.typ(p.s.NextSignificant(arrow))
			}
			return end
		}
	}
}

// StartOfExpression returns the first token of the expression that contains
// i, stopping at the enclosing scope opener, a delimiter, an assignment, a
// statement keyword or the start of the statement.
func StartOfExpression(s *stream.Stream, i int) int {
	j := i
	for !IsStartOfStatement(s, j) {
		p := s.PrevSignificant(j)
		if p < 0 {
			return j
		}
		pt := s.At(p)
		switch pt.Kind {
		case token.StartOfScope, token.Delimiter, token.Attribute:
			return j
		case token.Operator:
			if pt.IsAssignment() || pt.Text == "->" {
				return j
			}
			if pt.Op == token.Infix && pt.Text == "?" {
				return j
			}
		case token.Keyword:
			switch pt.Text {
			case "try", "await", "is", "as", "self", "Self", "super", "nil", "true", "false", "Any", "init":
			default:
				if !isPoundExpression(pt.Text) {
					return j
				}
			}
		case token.EndOfScope:
			open := s.MatchingScopeStart(p)
			if open < 0 {
				return j
			}
			if s.At(open).IsStartOfScope("{") && !IsStartOfClosure(s, open) {
				return j
			}
			p = open
		}
		j = p
	}
	return j
}

// isPoundExpression reports whether a #keyword is an expression
// (#selector, #file, #expect) rather than a compiler directive.
func isPoundExpression(text string) bool {
	if len(text) < 2 || text[0] != '#' {
		return false
	}
	switch text {
	case "#if", "#else", "#elseif", "#endif", "#sourceLocation", "#warning", "#error":
		return false
	}
	return true
}

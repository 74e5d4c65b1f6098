package classify

import (
	"swiftfmt/internal/stream"
	"swiftfmt/internal/token"
)

// braceInfo is the classification of a '{'.
type braceInfo struct {
	closure bool
	intro   int // keyword that introduces the body, -1 when none
}

// IsStartOfClosure reports whether the '{' at i opens a closure literal
// rather than the body of a declaration or a control-flow statement.
func IsStartOfClosure(s *stream.Stream, i int) bool {
	return classifyBrace(s, i).closure
}

func classifyBrace(s *stream.Stream, i int) braceInfo {
	none := braceInfo{closure: false, intro: -1}
	if !s.Valid(i) || !s.At(i).IsStartOfScope("{") {
		return none
	}
	prev := s.PrevSignificant(i)
	if prev < 0 {
		return braceInfo{closure: true, intro: -1}
	}
	pt := s.At(prev)
	switch pt.Kind {
	case token.StartOfScope:
		if pt.Text != "#if" {
			return braceInfo{closure: true, intro: -1}
		}
	case token.Delimiter:
		return braceInfo{closure: true, intro: -1}
	case token.Operator:
		if pt.Op == token.Infix || pt.Op == token.Prefix {
			return braceInfo{closure: true, intro: -1}
		}
	case token.Keyword:
		switch pt.Text {
		case "return", "in", "throw":
			return braceInfo{closure: true, intro: -1}
		case "else", "repeat", "do", "defer", "deinit":
			return braceInfo{closure: false, intro: prev}
		}
	}
	return walkIntroducer(s, i, prev)
}

// walkIntroducer scans backwards from the token before the brace at depth 0,
// jumping over balanced groups, until it finds the keyword that decides what
// the brace is or reaches the start of the statement.
func walkIntroducer(s *stream.Stream, brace, from int) braceInfo {
	binding := -1 // let/var seen on the way
	assigned := false
	for j := from; j >= 0; j-- {
		t := s.At(j)
		switch t.Kind {
		case token.Space, token.Comment:
			continue
		case token.Linebreak:
			if n := s.NextSignificant(j); n >= 0 && n < brace && IsStartOfStatement(s, n) {
				return bindingOrClosure(s, brace, binding, assigned)
			}
			continue
		case token.EndOfScope:
			open := s.MatchingScopeStart(j)
			if open < 0 {
				return braceInfo{closure: false, intro: -1}
			}
			j = open
			continue
		case token.StartOfScope:
			return bindingOrClosure(s, brace, binding, assigned)
		case token.Delimiter:
			if t.Text == ";" {
				return bindingOrClosure(s, brace, binding, assigned)
			}
		case token.Operator:
			if t.Text == "=" {
				assigned = true
			}
		case token.Identifier:
			switch {
			case token.IsAccessorName(t.Text) && IsAccessorKeyword(s, j):
				return braceInfo{closure: false, intro: j}
			case (t.Text == "actor" || t.Text == "macro") && s.NextToken(j, stream.SkipTrivia).IsIdentifier(""):
				return braceInfo{closure: false, intro: j}
			}
		case token.Keyword:
			switch t.Text {
			case "let", "var":
				binding = j
				continue
			case "return", "throw":
				return braceInfo{closure: true, intro: -1}
			case "guard":
				return braceInfo{closure: true, intro: -1}
			case "if", "while", "switch", "for", "catch":
				return controlBrace(s, brace, j)
			case "do", "repeat", "else", "defer":
				return braceInfo{closure: false, intro: j}
			case "func", "subscript", "deinit", "operator", "precedencegroup":
				return braceInfo{closure: false, intro: j}
			case "init":
				if !s.PrevToken(j, stream.SkipTrivia).IsOperator(".") {
					return braceInfo{closure: false, intro: j}
				}
			case "class", "struct", "enum", "protocol", "extension":
				if t.Text == "class" && isModifierPosition(s, j) {
					continue
				}
				return braceInfo{closure: false, intro: j}
			}
		}
	}
	return bindingOrClosure(s, brace, binding, assigned)
}

// bindingOrClosure decides a brace that follows no control-flow introducer.
// After var/let the brace is a computed body unless an initial value was
// assigned; observers (willSet/didSet) still make it a body.
func bindingOrClosure(s *stream.Stream, brace, binding int, assigned bool) braceInfo {
	if binding < 0 {
		return braceInfo{closure: true, intro: -1}
	}
	if !assigned {
		return braceInfo{closure: false, intro: binding}
	}
	first := s.NextToken(brace, stream.SkipTrivia)
	if first.IsIdentifier("willSet") || first.IsIdentifier("didSet") {
		return braceInfo{closure: false, intro: binding}
	}
	return braceInfo{closure: true, intro: -1}
}

// controlBrace decides a brace between a control-flow keyword and its body.
// The brace is a trailing closure inside the condition when the
// condition continues after its closing '}'.
func controlBrace(s *stream.Stream, brace, kw int) braceInfo {
	body := braceInfo{closure: false, intro: kw}
	end := s.MatchingScopeEnd(brace)
	if end < 0 {
		return body
	}
	n := s.NextSignificant(end)
	if n < 0 {
		return body
	}
	if s.LinebreakBetween(end, n) && IsStartOfStatement(s, n) {
		return body
	}
	t := s.At(n)
	closure := braceInfo{closure: true, intro: -1}
	switch t.Kind {
	case token.StartOfScope:
		if t.Text == "{" || t.Text == "(" || t.Text == "[" {
			return closure
		}
	case token.Delimiter:
		if t.Text == "," {
			return closure
		}
	case token.Operator:
		if t.Op == token.Postfix || (t.Op == token.Infix && !t.IsAssignment()) {
			return closure
		}
	case token.Keyword:
		switch t.Text {
		case "where", "is", "as":
			return closure
		}
	}
	return body
}

// isModifierPosition reports whether the keyword at j modifies a following
// declaration (class func, class var) instead of naming one.
func isModifierPosition(s *stream.Stream, j int) bool {
	n := s.NextToken(j, stream.SkipTrivia)
	switch n.Kind {
	case token.Keyword:
		return true
	case token.Identifier:
		return token.IsModifier(n.Text)
	}
	return false
}

// isClosureIn reports whether the 'in' at i ends a closure signature.
func isClosureIn(s *stream.Stream, i int) bool {
	open := s.ScopeStart(i)
	if open < 0 || !s.At(open).IsStartOfScope("{") {
		return false
	}
	for j := open + 1; j < i; j++ {
		t := s.At(j)
		switch {
		case t.Kind == token.StartOfScope:
			end := s.MatchingScopeEnd(j)
			if end < 0 || end > i {
				return false
			}
			j = end
		case t.IsKeyword("for"), t.IsKeyword("case"), t.IsKeyword("while"):
			return false
		}
	}
	return true
}

package classify

import (
	"swiftfmt/internal/stream"
	"swiftfmt/internal/token"
)

// Keywords after which the statement always continues on the next token.
var continuationKeywords = map[string]struct{}{
	"try": {}, "await": {}, "throw": {}, "return": {}, "is": {}, "as": {},
	"where": {}, "in": {}, "let": {}, "var": {}, "case": {}, "if": {},
	"guard": {}, "while": {}, "switch": {}, "for": {}, "else": {}, "func": {},
	"class": {}, "struct": {}, "enum": {}, "protocol": {}, "extension": {},
	"import": {}, "typealias": {}, "associatedtype": {}, "inout": {},
	"catch": {}, "throws": {}, "rethrows": {},
}

// Keywords that can never begin a statement.
var nonStartKeywords = map[string]struct{}{
	"where": {}, "as": {}, "is": {}, "in": {}, "throws": {}, "rethrows": {},
	"else": {}, "catch": {},
}

// IsStartOfStatement reports whether the token at i begins a new statement
// instead of continuing the previous one. A '(' or '[' that follows a
// linebreak starts a statement; on the same line it is a call or subscript.
func IsStartOfStatement(s *stream.Stream, i int) bool {
	if !s.Valid(i) {
		return false
	}
	t := s.At(i)
	switch t.Kind {
	case token.Space, token.Comment, token.Linebreak, token.Delimiter, token.EndOfScope:
		return false
	case token.Operator:
		if t.Op == token.Infix || t.Op == token.Postfix {
			return false
		}
	case token.StartOfScope:
		if t.Text == "{" {
			return false
		}
	case token.Keyword:
		if _, ok := nonStartKeywords[t.Text]; ok {
			return false
		}
	}

	p := s.PrevSignificant(i)
	if p < 0 {
		return true
	}
	pt := s.At(p)
	switch pt.Kind {
	case token.Attribute:
		return false
	case token.Operator:
		if pt.Op != token.Postfix {
			return false
		}
	case token.Delimiter:
		return pt.Text == ";"
	case token.StartOfScope:
		return pt.Text == "{"
	case token.Keyword:
		if pt.Text == "in" && isClosureIn(s, p) {
			return true
		}
		if _, ok := continuationKeywords[pt.Text]; ok {
			return false
		}
		if token.IsModifier(pt.Text) {
			return false
		}
	case token.Identifier:
		// override\nfunc
		if token.IsModifier(pt.Text) && token.IsDeclarationKeyword(t.Text) && t.Kind == token.Keyword {
			return false
		}
	}
	return s.LinebreakBetween(p, i)
}

// StartOfConditionalStatement returns the index of the if/guard/while keyword
// whose condition list contains i, or -1. Closures inside the condition and
// parenthesized or bracketed sub-expressions do not end the search.
func StartOfConditionalStatement(s *stream.Stream, i int) int {
	if !s.Valid(i) {
		return -1
	}
	if t := s.At(i); t.IsKeyword("else") || (t.IsStartOfScope("{") && !IsStartOfClosure(s, i)) {
		return -1
	}
	for j := i - 1; j >= 0; j-- {
		t := s.At(j)
		switch t.Kind {
		case token.Space, token.Comment, token.Linebreak:
			continue
		case token.EndOfScope:
			open := s.MatchingScopeStart(j)
			if open < 0 {
				return -1
			}
			if s.At(open).IsStartOfScope("{") && !IsStartOfClosure(s, open) {
				return -1
			}
			j = open
			continue
		case token.StartOfScope:
			switch t.Text {
			case "{":
				if !IsStartOfClosure(s, j) {
					return -1
				}
			case "#if":
				return -1
			}
			continue
		case token.Delimiter:
			if t.Text == ";" {
				return -1
			}
		case token.Keyword:
			switch t.Text {
			case "if", "guard", "while":
				return j
			case "else":
				return -1
			}
		}
		if IsStartOfStatement(s, j) {
			return -1
		}
	}
	return -1
}

// statementStart returns the first token of the statement containing i at
// its own nesting level.
func statementStart(s *stream.Stream, i int) int {
	j := i
	for !IsStartOfStatement(s, j) {
		p := s.PrevSignificant(j)
		if p < 0 {
			return j
		}
		switch s.At(p).Kind {
		case token.StartOfScope:
			return j
		case token.EndOfScope:
			if open := s.MatchingScopeStart(p); open >= 0 {
				p = open
			}
		}
		j = p
	}
	return j
}

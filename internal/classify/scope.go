package classify

import (
	"swiftfmt/internal/stream"
	"swiftfmt/internal/token"
)

// Scope classifies the declaration context of a token.
type Scope uint8

const (
	// Global is file level, outside every body.
	Global Scope = iota
	// Type is directly inside a class, struct, enum, protocol, extension or actor body.
	Type
	// Local is inside a function, accessor, closure or statement body.
	Local
)

func (sc Scope) String() string {
	switch sc {
	case Global:
		return "global"
	case Type:
		return "type"
	case Local:
		return "local"
	}
	return "unknown"
}

// DeclarationScope walks outward from i to the first enclosing brace and
// classifies it. Parentheses, brackets and #if blocks are transparent.
func DeclarationScope(s *stream.Stream, i int) Scope {
	j := i
	for {
		open := s.ScopeStart(j)
		if open < 0 {
			return Global
		}
		if s.At(open).IsStartOfScope("{") {
			if isTypeBody(s, open) {
				return Type
			}
			return Local
		}
		j = open
	}
}

// isTypeBody reports whether the '{' at open is the body of a type.
func isTypeBody(s *stream.Stream, open int) bool {
	info := classifyBrace(s, open)
	if info.closure || info.intro < 0 {
		return false
	}
	t := s.At(info.intro)
	return (t.Kind == token.Keyword || t.Kind == token.Identifier) && token.IsTypeKeyword(t.Text)
}

// enclosingBrace returns the innermost '{' containing i, looking through
// #if blocks only.
func enclosingBrace(s *stream.Stream, i int) int {
	open := s.ScopeStart(i)
	for open >= 0 && s.At(open).IsStartOfScope("#if") {
		open = s.ScopeStart(open)
	}
	if open < 0 || !s.At(open).IsStartOfScope("{") {
		return -1
	}
	return open
}

// IsEnumCase reports whether the token at i belongs to an enum case
// declaration (`case a, b(Int)`) rather than a pattern-matching case.
func IsEnumCase(s *stream.Stream, i int) bool {
	if !s.Valid(i) {
		return false
	}
	c := i
	if !s.At(i).IsKeyword("case") {
		c = -1
		for j := statementStart(s, i); j >= 0 && j <= i; j = s.NextSignificant(j) {
			if s.At(j).IsKeyword("case") {
				c = j
				break
			}
			if !isIntroducerPart(s.At(j)) {
				break
			}
		}
		if c < 0 {
			return false
		}
	}
	open := enclosingBrace(s, c)
	if open < 0 {
		return false
	}
	return isEnumBody(s, open)
}

func isEnumBody(s *stream.Stream, open int) bool {
	info := classifyBrace(s, open)
	return !info.closure && info.intro >= 0 && s.At(info.intro).IsKeyword("enum")
}

// CaseIndex answers IsEnumCase for every case keyword of one stream from a
// single forward scope pass, classifying each brace once. It is valid until
// the stream is edited.
type CaseIndex struct {
	s      *stream.Stream
	starts []int
	enum   map[int]bool // by '{' index
}

// NewCaseIndex indexes the scopes of s.
func NewCaseIndex(s *stream.Stream) *CaseIndex {
	return &CaseIndex{s: s, starts: s.ScopeStarts(), enum: make(map[int]bool)}
}

// IsEnumCase reports the same as the package-level IsEnumCase.
func (x *CaseIndex) IsEnumCase(i int) bool {
	if !x.s.At(i).IsKeyword("case") {
		return IsEnumCase(x.s, i)
	}
	open := x.starts[i]
	for open >= 0 && x.s.At(open).IsStartOfScope("#if") {
		open = x.starts[open]
	}
	if open < 0 || !x.s.At(open).IsStartOfScope("{") {
		return false
	}
	enum, ok := x.enum[open]
	if !ok {
		enum = isEnumBody(x.s, open)
		x.enum[open] = enum
	}
	return enum
}

// isIntroducerPart reports whether t may precede a declaration keyword:
// modifiers, attributes and comments.
func isIntroducerPart(t token.Token) bool {
	switch t.Kind {
	case token.Attribute, token.Comment:
		return true
	case token.Keyword, token.Identifier:
		return token.IsModifier(t.Text)
	}
	return false
}

// IsAccessorKeyword reports whether the token at i introduces a property
// accessor: get, set, willSet, didSet, init, _modify and friends, placed in a
// computed property or subscript body, optionally followed by a
// parenthesized parameter name and effects, then '{'.
func IsAccessorKeyword(s *stream.Stream, i int) bool {
	if !s.Valid(i) {
		return false
	}
	t := s.At(i)
	if (t.Kind != token.Identifier && !t.IsKeyword("init")) || !token.IsAccessorName(t.Text) {
		return false
	}
	if !accessorFollows(s, i) {
		return false
	}
	open := enclosingBrace(s, i)
	if open < 0 {
		return false
	}
	// first in the body, after another accessor, or after attributes/modifiers
	p := s.PrevSignificant(i)
	for p > open && isIntroducerPart(s.At(p)) {
		p = s.PrevSignificant(p)
	}
	if p != open && !(s.At(p).IsEndOfScope("}") && s.MatchingScopeStart(p) > open) {
		return false
	}
	info := classifyBrace(s, open)
	if info.closure || info.intro < 0 {
		return false
	}
	intro := s.At(info.intro)
	return intro.IsKeyword("var") || intro.IsKeyword("subscript") || intro.IsKeyword("let")
}

// accessorFollows checks the tokens after an accessor name: an optional
// (name), optional async/throws effects, then '{'.
func accessorFollows(s *stream.Stream, i int) bool {
	n := s.NextSignificant(i)
	if s.At(n).IsStartOfScope("(") {
		if n = s.MatchingScopeEnd(n); n < 0 {
			return false
		}
		n = s.NextSignificant(n)
	}
	for {
		t := s.At(n)
		switch {
		case t.IsStartOfScope("{"):
			return true
		case t.IsIdentifier("async"), t.IsKeyword("throws"), t.IsKeyword("rethrows"):
			n = s.NextSignificant(n)
			if s.At(n).IsStartOfScope("(") {
				if n = s.MatchingScopeEnd(n); n < 0 {
					return false
				}
				n = s.NextSignificant(n)
			}
		default:
			return false
		}
	}
}

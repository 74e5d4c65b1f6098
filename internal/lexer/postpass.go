package lexer

import (
	"strings"

	"swiftfmt/internal/token"
)

func (lx *Lexer) prevSig(i int) int {
	for j := i - 1; j >= 0; j-- {
		if !lx.toks[j].IsTrivia() {
			return j
		}
	}
	return -1
}

func (lx *Lexer) nextSig(i int) int {
	for j := i + 1; j < len(lx.toks); j++ {
		if !lx.toks[j].IsTrivia() {
			return j
		}
	}
	return -1
}

// matchEnd returns the index of the closer matching the opener at i, or -1.
// Lexed scopes are always properly nested: mismatched closers became Error.
func (lx *Lexer) matchEnd(i int) int {
	depth := 0
	for j := i; j < len(lx.toks); j++ {
		switch lx.toks[j].Kind {
		case token.StartOfScope:
			depth++
		case token.EndOfScope:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// ===== keywords used as identifiers =====

// notLabels are keywords that keep their meaning in label-like positions.
var notLabels = map[string]struct{}{
	"let": {}, "var": {}, "inout": {}, "try": {}, "await": {}, "is": {}, "as": {},
	"self": {}, "Self": {}, "super": {}, "nil": {}, "true": {}, "false": {},
	"Any": {}, "case": {}, "default": {},
}

// demoteKeywords turns keywords into identifiers where Swift allows it:
// member names (x.default, .for) and argument or parameter labels
// (foo(for: x), func f(in x: Int), func g(_ in: Int)).
func (lx *Lexer) demoteKeywords() {
	for i, t := range lx.toks {
		if t.Kind != token.Keyword || strings.HasPrefix(t.Text, "#") {
			continue
		}
		if lx.isMemberName(i) || lx.isLabel(i) {
			lx.toks[i].Kind = token.Identifier
		}
	}
}

func (lx *Lexer) isMemberName(i int) bool {
	switch lx.toks[i].Text {
	case "init", "self", "Self":
		return false
	}
	return i > 0 && lx.toks[i-1].Is(token.Operator, ".")
}

func (lx *Lexer) isLabel(i int) bool {
	p, n := lx.prevSig(i), lx.nextSig(i)
	if p < 0 || n < 0 {
		return false
	}
	afterOpen := func(k int) bool {
		return k >= 0 && (lx.toks[k].IsStartOfScope("(") || lx.toks[k].IsDelimiter(","))
	}
	next := lx.toks[n]
	// (label: ...) и (_ label: ...)
	if next.IsDelimiter(":") {
		if afterOpen(p) {
			return true
		}
		return lx.toks[p].IsIdentifier("") && afterOpen(lx.prevSig(p))
	}
	// (label name: Type)
	if _, keep := notLabels[lx.toks[i].Text]; keep || !afterOpen(p) || !next.IsIdentifier("") {
		return false
	}
	nn := lx.nextSig(n)
	return nn >= 0 && lx.toks[nn].IsDelimiter(":")
}

// ===== generic parameter and argument lists =====

// convertGenerics rewrites '<' ... '>' pairs that can only be generic
// clauses into StartOfScope/EndOfScope tokens. Closers glued to other
// operator characters (">>", ">?", "?>") are split first.
func (lx *Lexer) convertGenerics() {
	for i := 0; i < len(lx.toks); i++ {
		if lx.isGenericOpen(i) {
			if end, ok := lx.scanGeneric(i); ok {
				i = end
			}
		}
	}
}

func (lx *Lexer) isGenericOpen(i int) bool {
	if i == 0 || !lx.toks[i].Is(token.Operator, "<") {
		return false
	}
	prev := lx.toks[i-1]
	switch prev.Kind {
	case token.Identifier:
		return true
	case token.Keyword:
		switch prev.Text {
		case "Self", "Any", "init", "subscript":
			return true
		}
	}
	return false
}

func isGenericClose(text string) bool {
	if !strings.Contains(text, ">") {
		return false
	}
	return strings.Trim(text, "?!>") == ""
}

func isGenericInner(t token.Token) bool {
	switch t.Kind {
	case token.Identifier, token.Number, token.Space, token.Linebreak, token.Comment, token.Attribute:
		return true
	case token.Delimiter:
		return t.Text == "," || t.Text == ":"
	case token.Keyword:
		switch t.Text {
		case "Any", "Self", "inout", "throws", "rethrows", "let", "class", "protocol":
			return true
		}
	case token.Operator:
		switch t.Text {
		case ".", "?", "!", "&", "->", "...", "~":
			return true
		}
	}
	return false
}

func (lx *Lexer) scanGeneric(open int) (int, bool) {
	for j := open + 1; j < len(lx.toks); j++ {
		t := lx.toks[j]
		switch {
		case t.Kind == token.Operator && isGenericClose(t.Text):
			k := strings.IndexByte(t.Text, '>')
			if !lx.followsGeneric(j, t.Text[k+1:]) {
				return 0, false
			}
			parts := make([]string, 0, 3)
			if k > 0 {
				parts = append(parts, t.Text[:k])
			}
			parts = append(parts, ">")
			if rest := t.Text[k+1:]; rest != "" {
				parts = append(parts, rest)
			}
			lx.splitOperator(j, parts)
			if k > 0 {
				j++
			}
			lx.toks[open] = token.New(token.StartOfScope, "<")
			lx.toks[j] = token.New(token.EndOfScope, ">")
			return j, true
		case lx.isGenericOpen(j):
			end, ok := lx.scanGeneric(j)
			if !ok {
				return 0, false
			}
			j = end
		case t.IsStartOfScope("(") || t.IsStartOfScope("["):
			end := lx.matchEnd(j)
			if end < 0 {
				return 0, false
			}
			j = end
		case isGenericInner(t):
		default:
			return 0, false
		}
	}
	return 0, false
}

// followsGeneric checks what comes right after a candidate '>' so that
// comparisons like `a < b, c > d` stay operators.
func (lx *Lexer) followsGeneric(j int, rest string) bool {
	if rest != "" {
		return true
	}
	if j+1 >= len(lx.toks) {
		return true
	}
	next := lx.toks[j+1]
	switch next.Kind {
	case token.Space, token.Linebreak, token.Comment, token.StartOfScope, token.EndOfScope, token.Delimiter:
		return true
	case token.Operator:
		return next.Text == "." || next.Text == "=" || next.Text == "?" || next.Text == "!" || isGenericClose(next.Text)
	}
	return false
}

func (lx *Lexer) splitOperator(j int, parts []string) {
	if len(parts) == 1 {
		return
	}
	repl := make([]token.Token, len(parts))
	for k, p := range parts {
		repl[k] = token.New(token.Operator, p)
	}
	out := make([]token.Token, 0, len(lx.toks)+len(parts)-1)
	out = append(out, lx.toks[:j]...)
	out = append(out, repl...)
	out = append(out, lx.toks[j+1:]...)
	lx.toks = out
}

// ===== operator fixity =====

// resolveFixity assigns prefix/infix/postfix from whitespace binding:
// bound on both sides or neither is infix, left only is postfix, right only
// is prefix. '=' and '->' are always infix; '?' and '!' bound on the left are
// postfix; '.' is infix after an operand (also across a line break) and
// prefix otherwise (.implicitMember).
func (lx *Lexer) resolveFixity() {
	for i := range lx.toks {
		if lx.toks[i].Kind == token.Operator {
			lx.toks[i].Op = lx.fixity(i)
		}
	}
}

func (lx *Lexer) fixity(i int) token.OpKind {
	text := lx.toks[i].Text
	switch text {
	case "=", "->":
		return token.Infix
	case "\\":
		return token.Prefix
	}
	if (text == "?" || text == "!") && i > 0 && (lx.toks[i-1].IsKeyword("try") || lx.toks[i-1].IsKeyword("as")) {
		return token.Postfix
	}
	left, right := lx.leftBound(i), lx.rightBound(i)
	if text == "." {
		if left {
			return token.Infix
		}
		if p := lx.prevSig(i); p >= 0 && lx.toks[p].IsOperand() {
			return token.Infix
		}
		return token.Prefix
	}
	if (text == "?" || text == "!") && left {
		return token.Postfix
	}
	switch {
	case left == right:
		return token.Infix
	case left:
		return token.Postfix
	default:
		return token.Prefix
	}
}

func (lx *Lexer) leftBound(i int) bool {
	if i == 0 {
		return false
	}
	prev := lx.toks[i-1]
	switch prev.Kind {
	case token.Space, token.Linebreak, token.Comment, token.StartOfScope, token.Delimiter:
		return false
	case token.Operator:
		return prev.Op == token.Postfix
	case token.Keyword:
		return prev.IsOperand()
	}
	return true
}

func (lx *Lexer) rightBound(i int) bool {
	if i+1 >= len(lx.toks) {
		return false
	}
	next := lx.toks[i+1]
	switch next.Kind {
	case token.Space, token.Linebreak, token.Comment, token.EndOfScope, token.Delimiter:
		return false
	case token.Operator:
		return !strings.HasPrefix(next.Text, ".")
	}
	return true
}

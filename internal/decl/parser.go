package decl

import (
	"fmt"
	"strings"

	"swiftfmt/internal/classify"
	"swiftfmt/internal/stream"
	"swiftfmt/internal/token"
)

type parser struct {
	s *stream.Stream
}

// ParseTokens parses a token slice without taking ownership of it.
func ParseTokens(toks []token.Token) ([]Declaration, error) {
	return Parse(stream.New(toks))
}

// Parse builds the declaration tree for the current state of s.
func Parse(s *stream.Stream) ([]Declaration, error) {
	p := parser{s: s}
	decls, rest := p.parseRange(0, s.Len())
	if rest < s.Len() {
		if len(decls) == 0 {
			decls = append(decls, p.leaf(Trivia, "", nil, 0, rest, s.Len()))
		} else {
			last := &decls[len(decls)-1]
			trailing := s.Slice(rest, s.Len())
			if last.HasBody() {
				last.Close = append(last.Close, trailing...)
			} else {
				last.Open = append(last.Open, trailing...)
			}
			last.End = s.Len()
		}
	}
	if err := verify(s, decls); err != nil {
		return nil, err
	}
	return decls, nil
}

func verify(s *stream.Stream, decls []Declaration) error {
	got := make([]token.Token, 0, s.Len())
	for i := range decls {
		got = append(got, decls[i].Tokens()...)
	}
	if len(got) != s.Len() {
		return fmt.Errorf("%w: %d tokens, stream has %d", ErrPartition, len(got), s.Len())
	}
	for i, t := range got {
		if want := s.At(i); t != want {
			return fmt.Errorf("%w: token %d is %s(%q), stream has %s(%q)", ErrPartition, i, t.Kind, t.Text, want.Kind, want.Text)
		}
	}
	return nil
}

// parseRange parses declarations in [from, to) and returns them with the
// index where only trivia remains.
func (p *parser) parseRange(from, to int) ([]Declaration, int) {
	var decls []Declaration
	pos := from
	for pos < to && !p.onlyTrivia(pos, to) {
		next := p.parseDeclaration(pos, to)
		decls = append(decls, next...)
		pos = next[len(next)-1].End
	}
	return decls, pos
}

func (p *parser) onlyTrivia(from, to int) bool {
	for j := from; j < to; j++ {
		if !p.s.At(j).IsTrivia() {
			return false
		}
	}
	return true
}

func (p *parser) parseDeclaration(start, to int) []Declaration {
	k := start
	for k < to && p.s.At(k).IsTrivia() {
		k++
	}
	kw, mods := p.scanIntroducer(k, to)
	if kw < 0 {
		return []Declaration{p.leaf(Statement, "", nil, start, k, p.statementEnd(k, to))}
	}
	t := p.s.At(kw)
	if t.IsStartOfScope("#if") {
		return p.parseConditional(start, kw, to)
	}
	kind := kindOf(t.Text)
	switch {
	case kind == Type:
		if d, ok := p.parseBody(kind, start, kw, to, to, mods); ok {
			return []Declaration{d}
		}
	case hasCodeBody(t.Text):
		// тело функции не длиннее самого объявления
		if d, ok := p.parseBody(kind, start, kw, p.statementEnd(kw, to), to, mods); ok {
			return []Declaration{d}
		}
	}
	d := p.leaf(kind, t.Text, mods, start, kw, p.statementEnd(kw, to))
	return []Declaration{d}
}

// hasCodeBody reports whether a declaration keyword is followed by a block of
// statements that may itself hold declarations. Subscript and accessor
// blocks stay leaves.
func hasCodeBody(keyword string) bool {
	switch keyword {
	case "func", "init", "deinit":
		return true
	}
	return false
}

func kindOf(keyword string) Kind {
	switch keyword {
	case "import":
		return Import
	case "let", "var":
		return Variable
	case "func", "init", "deinit", "subscript", "macro":
		return Func
	case "case":
		return Case
	case "typealias", "associatedtype":
		return Typealias
	case "operator", "precedencegroup":
		return Operator
	}
	if token.IsTypeKeyword(keyword) {
		return Type
	}
	return Statement
}

func (p *parser) leaf(kind Kind, keyword string, mods []string, start, kw, end int) Declaration {
	end = max(end, kw+1, start+1)
	d := Declaration{
		Kind:       kind,
		Keyword:    keyword,
		Modifiers:  mods,
		Introducer: p.s.Slice(start, kw),
		Open:       p.s.Slice(start, end),
		Start:      start,
		End:        end,
	}
	if kind != Statement && kind != Trivia {
		d.Name = p.nameOf(kind, kw, end)
	}
	return d
}

// scanIntroducer skips attributes and modifiers starting at k and returns
// the index of the declaration keyword with the modifiers seen, or -1 when
// the tokens at k do not start a declaration.
func (p *parser) scanIntroducer(k, to int) (int, []string) {
	var mods []string
	for j := k; j < to; {
		t := p.s.At(j)
		switch {
		case t.IsLinebreak() && len(mods) > 0:
			return -1, nil
		case t.IsTrivia():
			j++
		case t.IsStartOfScope("#if"):
			if j == k {
				return j, nil
			}
			return -1, nil
		case t.Kind == token.Attribute:
			j++
			if p.s.At(j).IsStartOfScope("(") {
				m := p.s.MatchingScopeEnd(j)
				if m < 0 {
					return -1, nil
				}
				j = m + 1
			}
		case t.IsKeyword("class") && p.s.NextToken(j, stream.SkipTrivia).Kind == token.Identifier &&
			!token.IsModifier(p.s.NextToken(j, stream.SkipTrivia).Text):
			return j, mods
		case (t.Kind == token.Keyword || t.Kind == token.Identifier) && token.IsModifier(t.Text):
			mod := t.Text
			j++
			if p.s.At(j).IsStartOfScope("(") {
				m := p.s.MatchingScopeEnd(j)
				if m < 0 || m-j != 2 {
					return -1, nil
				}
				mod += p.s.RangeString(j, m+1)
				j = m + 1
			}
			mods = append(mods, mod)
		case t.Kind == token.Keyword && token.IsDeclarationKeyword(t.Text):
			return j, mods
		case (t.IsIdentifier("actor") || t.IsIdentifier("macro")) && p.s.NextToken(j, stream.SkipTrivia).Kind == token.Identifier:
			return j, mods
		default:
			return -1, nil
		}
	}
	return -1, nil
}

// statementEnd returns the index just past the statement starting at k: past
// the linebreak that precedes the next statement, or past a ';'.
func (p *parser) statementEnd(k, to int) int {
	for j := k; j < to; j++ {
		t := p.s.At(j)
		switch t.Kind {
		case token.StartOfScope:
			m := p.s.MatchingScopeEnd(j)
			if m < 0 || m >= to {
				return to
			}
			j = m
		case token.EndOfScope:
			return max(j, k+1)
		case token.Delimiter:
			if t.Text == ";" {
				return j + 1
			}
		case token.Linebreak:
			n := p.s.NextSignificant(j)
			if n < 0 || n >= to || classify.IsStartOfStatement(p.s, n) {
				return j + 1
			}
		}
	}
	return to
}

// lineRest returns the index past the spaces, comments and single linebreak
// that follow i, never beyond limit.
func (p *parser) lineRest(i, limit int) int {
	j := i + 1
	for j < limit && p.s.At(j).IsSpaceOrComment() {
		j++
	}
	if j < limit && p.s.At(j).IsLinebreak() {
		j++
	}
	return j
}

// parseBody parses a declaration whose '{' lies before limit and whose
// closing '}' lies before to. The contents of the braces are parsed as
// nested declarations.
func (p *parser) parseBody(kind Kind, start, kw, limit, to int, mods []string) (Declaration, bool) {
	brace := -1
	for j := kw + 1; j < limit; j++ {
		t := p.s.At(j)
		if t.IsStartOfScope("{") {
			brace = j
			break
		}
		if t.IsDelimiter(";") {
			return Declaration{}, false
		}
		if t.Kind == token.StartOfScope {
			m := p.s.MatchingScopeEnd(j)
			if m < 0 {
				return Declaration{}, false
			}
			j = m
		}
	}
	if brace < 0 || classify.IsStartOfClosure(p.s, brace) {
		return Declaration{}, false
	}
	closing := p.s.MatchingScopeEnd(brace)
	if closing < 0 || closing >= to {
		return Declaration{}, false
	}
	openEnd := p.lineRest(brace, closing)
	body, rest := p.parseRange(openEnd, closing)
	end := p.lineRest(closing, to)
	return Declaration{
		Kind:       kind,
		Keyword:    p.s.At(kw).Text,
		Modifiers:  mods,
		Name:       p.nameOf(kind, kw, brace),
		Introducer: p.s.Slice(start, kw),
		Open:       p.s.Slice(start, openEnd),
		Body:       body,
		Close:      p.s.Slice(rest, end),
		Start:      start,
		End:        end,
		body:       true,
	}, true
}

// parseConditional splits an #if block into one declaration per branch.
// The last branch owns the #endif line.
func (p *parser) parseConditional(start, kw, to int) []Declaration {
	endif := p.s.MatchingScopeEnd(kw)
	if endif < 0 || endif >= to {
		return []Declaration{p.leaf(Conditional, "#if", nil, start, kw, to)}
	}
	markers := []int{kw}
	for j := kw + 1; j < endif; j++ {
		t := p.s.At(j)
		switch {
		case t.Kind == token.StartOfScope:
			if m := p.s.MatchingScopeEnd(j); m >= 0 {
				j = m
			}
		case t.IsKeyword("#else"), t.IsKeyword("#elseif"):
			markers = append(markers, j)
		}
	}

	out := make([]Declaration, 0, len(markers))
	branchStart := start
	for n, m := range markers {
		limit := endif
		if n+1 < len(markers) {
			limit = markers[n+1]
		}
		openEnd := min(p.s.EndOfLine(m)+1, limit)
		body, rest := p.parseRange(openEnd, limit)
		closeEnd := limit
		if n+1 == len(markers) {
			closeEnd = min(p.s.EndOfLine(endif)+1, to)
		}
		out = append(out, Declaration{
			Kind:       Conditional,
			Keyword:    p.s.At(m).Text,
			Name:       strings.TrimSpace(p.s.RangeString(m+1, p.s.EndOfLine(m))),
			Introducer: p.s.Slice(branchStart, m),
			Open:       p.s.Slice(branchStart, openEnd),
			Body:       body,
			Close:      p.s.Slice(rest, closeEnd),
			Start:      branchStart,
			End:        closeEnd,
			body:       true,
		})
		branchStart = closeEnd
	}
	return out
}

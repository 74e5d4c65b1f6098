package rules

import (
	"swiftfmt/internal/classify"
	"swiftfmt/internal/diag"
	"swiftfmt/internal/stream"
	"swiftfmt/internal/token"
)

// segment is one pattern: significant tokens in [start, end).
type segment struct {
	start, end int
}

// hoistPatternLet rewrites case .foo(let a, let b) to case let .foo(a, b)
// when Options.HoistPatternLet is set, and back otherwise.
func hoistPatternLet(f *Formatter) error {
	s := f.Stream
	// сегменты не пересекаются, поэтому все правки собираются по исходным индексам
	batch := s.Batch()
	for _, seg := range patternSegments(s) {
		if f.Options.HoistPatternLet {
			if ok, why := hoistSegment(batch, s, seg); !ok && why != "" {
				f.Report(diag.FmtHoistRefused, diag.SevInfo, seg.start, why)
			}
		} else {
			if ok, why := unhoistSegment(batch, s, seg); !ok && why != "" {
				f.Report(diag.FmtHoistRefused, diag.SevInfo, seg.start, why)
			}
		}
	}
	batch.Apply()
	return nil
}

// patternSegments finds every pattern in case labels, if/guard/while case
// conditions, for case loops and catch clauses, in source order.
func patternSegments(s *stream.Stream) []segment {
	var segs []segment
	var cases *classify.CaseIndex
	for i := 0; i < s.Len(); i++ {
		t := s.At(i)
		switch {
		case t.IsKeyword("case"):
			if cases == nil {
				cases = classify.NewCaseIndex(s)
			}
			if cases.IsEnumCase(i) {
				continue
			}
			segs = append(segs, caseSegments(s, i)...)
		case t.IsKeyword("catch"):
			end := scanPattern(s, i, func(t token.Token) bool {
				return t.IsStartOfScope("{") || t.IsKeyword("where") || t.IsDelimiter(",")
			})
			if seg, ok := makeSegment(s, i, end); ok {
				segs = append(segs, seg)
			}
		}
	}
	return segs
}

func caseSegments(s *stream.Stream, kw int) []segment {
	p := s.PrevSignificant(kw)
	pt := s.At(p)
	condition := p >= 0 && (pt.IsKeyword("if") || pt.IsKeyword("guard") || pt.IsKeyword("while") ||
		(pt.IsDelimiter(",") && classify.StartOfConditionalStatement(s, kw) >= 0))
	switch {
	case condition:
		end := scanPattern(s, kw, func(t token.Token) bool { return t.IsOp("=", token.Infix) })
		if seg, ok := makeSegment(s, kw, end); ok {
			return []segment{seg}
		}
		return nil
	case p >= 0 && pt.IsKeyword("for"):
		end := scanPattern(s, kw, func(t token.Token) bool { return t.IsKeyword("in") })
		if seg, ok := makeSegment(s, kw, end); ok {
			return []segment{seg}
		}
		return nil
	}

	// switch label: comma-separated patterns up to ':' or 'where'
	var segs []segment
	from := kw
	for {
		end := scanPattern(s, from, func(t token.Token) bool {
			return t.IsDelimiter(":") || t.IsKeyword("where") || t.IsDelimiter(",")
		})
		if seg, ok := makeSegment(s, from, end); ok {
			segs = append(segs, seg)
		}
		if end < 0 || !s.At(end).IsDelimiter(",") {
			return segs
		}
		from = end
	}
}

// scanPattern returns the index of the first top-level token after from that
// satisfies stop, jumping over nested scopes. -1 if the statement ends first.
func scanPattern(s *stream.Stream, from int, stop func(token.Token) bool) int {
	for j := s.NextSignificant(from); j >= 0; j = s.NextSignificant(j) {
		t := s.At(j)
		if stop(t) {
			return j
		}
		switch t.Kind {
		case token.StartOfScope:
			if t.Text == "{" || t.Text == "#if" {
				return -1
			}
			end := s.MatchingScopeEnd(j)
			if end < 0 {
				return -1
			}
			j = end
		case token.EndOfScope:
			return -1
		case token.Delimiter:
			if t.Text == ";" {
				return -1
			}
		}
	}
	return -1
}

func makeSegment(s *stream.Stream, head, end int) (segment, bool) {
	if end < 0 {
		return segment{}, false
	}
	start := s.NextSignificant(head)
	if start < 0 || start >= end {
		return segment{}, false
	}
	last := s.PrevSignificant(end)
	return segment{start: start, end: last + 1}, true
}

func isBindingKeyword(t token.Token) bool {
	return t.IsKeyword("let") || t.IsKeyword("var")
}

// patternToken is a significant token of a segment with its paren depth
// relative to the segment start.
type patternToken struct {
	index int
	depth int
}

func (seg segment) tokens(s *stream.Stream) []patternToken {
	var out []patternToken
	depth := 0
	for j := seg.start; j >= 0 && j < seg.end; j = s.NextSignificant(j) {
		t := s.At(j)
		if t.Kind == token.EndOfScope {
			depth--
		}
		out = append(out, patternToken{index: j, depth: depth})
		if t.Kind == token.StartOfScope {
			depth++
		}
	}
	return out
}

// containsUnsupported reports generic clauses, comparisons and closures,
// which make the rewritten pattern ambiguous.
func containsUnsupported(s *stream.Stream, toks []patternToken) bool {
	for _, pt := range toks {
		t := s.At(pt.index)
		if t.IsStartOfScope("<") || t.IsOperator("<") || t.IsStartOfScope("{") {
			return true
		}
	}
	return false
}

// isNameOrLabel reports whether the identifier at i is a member (.foo,
// Foo.bar) or an argument label (x: ...), neither of which binds.
func isNameOrLabel(s *stream.Stream, i int) bool {
	return s.PrevToken(i, stream.SkipTrivia).IsOperator(".") ||
		s.NextToken(i, stream.SkipTrivia).IsDelimiter(":")
}

// closesElement reports whether the token at i is followed by ',' or ')'.
func closesElement(s *stream.Stream, i int) bool {
	n := s.NextToken(i, stream.SkipTrivia)
	return n.IsDelimiter(",") || n.IsEndOfScope(")")
}

// hoistSegment moves uniform inner let/var keywords to the segment start.
// It returns false with a reason when the pattern has inner keywords but
// cannot be hoisted, and false with "" when there is nothing to do.
func hoistSegment(b *stream.Batch, s *stream.Stream, seg segment) (bool, string) {
	if isBindingKeyword(s.At(seg.start)) {
		return false, ""
	}
	toks := seg.tokens(s)
	var keywords []int
	keyword := ""
	for _, pt := range toks {
		t := s.At(pt.index)
		if !isBindingKeyword(t) {
			continue
		}
		if keyword != "" && t.Text != keyword {
			return false, "mixed let and var bindings"
		}
		keyword = t.Text
		keywords = append(keywords, pt.index)
	}
	if len(keywords) == 0 {
		return false, ""
	}
	if containsUnsupported(s, toks) {
		return false, "pattern with generic arguments or closures"
	}
	bound := make(map[int]bool, len(keywords))
	for _, k := range keywords {
		name := s.NextSignificant(k)
		nt := s.At(name)
		if !nt.IsIdentifier("") || nt.Text == "_" || !closesElement(s, name) {
			return false, keyword + " does not bind a single name"
		}
		bound[name] = true
	}
	for _, pt := range toks {
		t := s.At(pt.index)
		if pt.depth < 1 {
			if isBindingKeyword(t) {
				return false, keyword + " outside an associated value list"
			}
			continue
		}
		if !t.IsIdentifier("") || t.Text == "_" || bound[pt.index] {
			continue
		}
		if !isNameOrLabel(s, pt.index) {
			return false, "unbound identifier " + t.Text + " in pattern"
		}
	}

	b.Insert(seg.start, token.New(token.Keyword, keyword), token.New(token.Space, " "))
	for _, k := range keywords {
		removeKeyword(b, s, k)
	}
	return true, ""
}

// unhoistSegment pushes a leading let/var down onto every bound name.
func unhoistSegment(b *stream.Batch, s *stream.Stream, seg segment) (bool, string) {
	head := s.At(seg.start)
	if !isBindingKeyword(head) {
		return false, ""
	}
	rest := segment{start: s.NextSignificant(seg.start), end: seg.end}
	if rest.start < 0 || rest.start >= rest.end {
		return false, ""
	}
	toks := rest.tokens(s)
	hasParen := false
	for _, pt := range toks {
		t := s.At(pt.index)
		if t.IsStartOfScope("(") {
			hasParen = true
		}
		if isBindingKeyword(t) {
			return false, "nested " + t.Text + " in a hoisted pattern"
		}
	}
	if !hasParen {
		return false, ""
	}
	if containsUnsupported(s, toks) {
		return false, "pattern with generic arguments or closures"
	}
	var names []int
	for _, pt := range toks {
		t := s.At(pt.index)
		if pt.depth < 1 || !t.IsIdentifier("") || isNameOrLabel(s, pt.index) {
			continue
		}
		if !closesElement(s, pt.index) {
			return false, "cannot place " + head.Text + " before " + t.Text
		}
		if t.Text != "_" {
			names = append(names, pt.index)
		}
	}
	if len(names) == 0 {
		return false, ""
	}

	removeKeyword(b, s, seg.start)
	for _, n := range names {
		b.Insert(n, token.New(token.Keyword, head.Text), token.New(token.Space, " "))
	}
	return true, ""
}

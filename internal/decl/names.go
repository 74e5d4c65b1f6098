package decl

import (
	"strings"

	"swiftfmt/internal/stream"
	"swiftfmt/internal/token"
)

// nameOf extracts the declared name for the keyword at kw, looking no
// further than end.
func (p *parser) nameOf(kind Kind, kw, end int) string {
	switch kind {
	case Variable, Case:
		return strings.Join(p.declaredVariables(kw, end), ", ")
	case Import:
		var parts []string
		for j := p.s.NextSignificant(kw); j >= 0 && j < end && !p.s.LinebreakBetween(kw, j); j = p.s.NextSignificant(j) {
			t := p.s.At(j)
			if t.Kind == token.Keyword || t.Kind == token.Delimiter {
				continue
			}
			parts = append(parts, t.Text)
		}
		return strings.Join(parts, "")
	}
	t := p.s.At(kw)
	switch t.Text {
	case "init", "deinit", "subscript":
		return t.Text
	}
	n := p.s.NextSignificant(kw)
	if n < 0 || n >= end {
		return ""
	}
	name := p.s.At(n)
	if name.Kind != token.Identifier && name.Kind != token.Operator {
		return ""
	}
	if kind != Type {
		return name.Text
	}
	// extension Foo.Bar
	var sb strings.Builder
	sb.WriteString(name.Text)
	for j := n + 1; j+1 < end && p.s.At(j).IsOperator(".") && p.s.At(j+1).IsIdentifier(""); j += 2 {
		sb.WriteString(".")
		sb.WriteString(p.s.At(j + 1).Text)
	}
	return sb.String()
}

// declaredVariables lists the names bound by a let/var/case declaration:
// `let a = 1, b = 2`, `var (x, y) = p`, `case one, two(Int)`.
func (p *parser) declaredVariables(kw, end int) []string {
	var names []string
	expect := true
	for j := p.s.NextSignificant(kw); j >= 0 && j < end; j = p.s.NextSignificant(j) {
		t := p.s.At(j)
		switch {
		case expect && t.Kind == token.Identifier:
			names = append(names, t.Text)
			expect = false
		case expect && t.IsStartOfScope("("):
			m := p.s.MatchingScopeEnd(j)
			if m < 0 {
				return names
			}
			for k := j + 1; k < m; k++ {
				if !p.s.At(k).IsIdentifier("") {
					continue
				}
				if next := p.s.NextToken(k, stream.SkipTrivia); next.IsDelimiter(",") || next.IsEndOfScope(")") {
					names = append(names, p.s.At(k).Text)
				}
			}
			j = m
			expect = false
		case t.Kind == token.StartOfScope:
			m := p.s.MatchingScopeEnd(j)
			if m < 0 {
				return names
			}
			j = m
		case t.IsDelimiter(","):
			expect = true
		}
	}
	return names
}

package rules

import (
	"slices"
	"strings"

	"swiftfmt/internal/classify"
	"swiftfmt/internal/diag"
	"swiftfmt/internal/stream"
	"swiftfmt/internal/token"
)

// Calls that absorb a thrown error on their own.
var throwCapturingDefaults = []string{"expect", "#expect", "#require"}

func hoistTry(f *Formatter) error {
	capturing := func(name string) bool {
		return strings.HasPrefix(name, "XCTAssert") ||
			slices.Contains(throwCapturingDefaults, name) ||
			slices.Contains(f.Options.ThrowCapturing, name)
	}
	hoistEffect(f, "try", capturing)
	return nil
}

func hoistAwait(f *Formatter) error {
	capturing := func(name string) bool {
		return slices.Contains(f.Options.AsyncCapturing, name)
	}
	hoistEffect(f, "await", capturing)
	return nil
}

// hoistEffect moves every plain occurrence of keyword to the start of the
// outermost expression it can legally mark. Occurrences already covered by
// a marker at the target are removed. Targets are found on the unedited
// stream and all moves are applied in one batch.
func hoistEffect(f *Formatter, keyword string, capturing func(string) bool) {
	s := f.Stream
	h := hoister{s: s, starts: s.ScopeStarts(), capturing: capturing}
	batch := s.Batch()
	marked := make(map[int]bool) // insertion points already given a marker
	for i := 0; i < s.Len(); i++ {
		if !s.At(i).IsKeyword(keyword) || hasEffectSuffix(s, i) {
			continue
		}
		target := h.target(i)
		if target == i {
			continue
		}
		ins := target
		tt := s.At(target)
		switch {
		case tt.IsKeyword("try") && hasEffectSuffix(s, target):
			if keyword == "try" {
				f.Report(diag.FmtHoistRefused, diag.SevInfo, i, "try left inside try?/try!")
				continue
			}
			ins = s.NextSignificant(s.Next(target, stream.SkipNone))
		case keyword == "await" && tt.IsKeyword("try"):
			ins = s.NextSignificant(target)
		}
		if ins == i {
			continue
		}
		removeKeyword(batch, s, i)
		if s.At(ins).IsKeyword(keyword) || marked[ins] {
			continue
		}
		marked[ins] = true
		batch.Insert(ins, token.New(token.Keyword, keyword), token.New(token.Space, " "))
	}
	batch.Apply()
}

// hasEffectSuffix reports whether the try at i is try? or try!.
func hasEffectSuffix(s *stream.Stream, i int) bool {
	n := s.At(i + 1)
	return s.At(i).IsKeyword("try") && (n.IsOperator("?") || n.IsOperator("!"))
}

// hoister finds hoist targets on a stream that stays unedited while it is
// in use.
type hoister struct {
	s         *stream.Stream
	starts    []int // ScopeStart by index
	capturing func(string) bool
}

func (h hoister) scopeStart(i int) int {
	if i < 0 || i >= len(h.starts) {
		return -1
	}
	return h.starts[i]
}

// target climbs from the expression holding the marker at k through call
// arguments, subscripts, array literals and string interpolations. It stops
// at closures, statement bodies, generic clauses, directives and capturing
// calls.
func (h hoister) target(k int) int {
	s := h.s
	pos := classify.StartOfExpression(s, k)
	for {
		p := s.PrevSignificant(pos)
		if p < 0 {
			return pos
		}
		open := -1
		switch pt := s.At(p); {
		case pt.Kind == token.StartOfScope:
			open = p
		case pt.IsDelimiter(",") || pt.IsDelimiter(":"):
			open = h.scopeStart(pos)
		}
		if open < 0 {
			return pos
		}
		switch text := s.At(open).Text; {
		case text == "(":
			if h.capturing(calleeName(s, open)) {
				return pos
			}
		case text == "[":
		case isInterpolation(text):
			open = h.scopeStart(open)
			if open < 0 {
				return pos
			}
		default:
			return pos
		}
		pos = classify.StartOfExpression(s, open)
	}
}

func isInterpolation(text string) bool {
	return strings.HasPrefix(text, `\`) && strings.HasSuffix(text, "(")
}

// calleeName returns the name called by the '(' at open: foo(, a.foo(,
// foo<T>(, #expect(. Empty when the parenthesis is not a call.
func calleeName(s *stream.Stream, open int) string {
	p := open - 1
	if s.At(p).IsEndOfScope(">") {
		p = s.MatchingScopeStart(p) - 1
	}
	switch t := s.At(p); t.Kind {
	case token.Identifier, token.Keyword:
		return t.Text
	}
	return ""
}

// removeKeyword queues deletion of the keyword at i together with the space
// after it.
func removeKeyword(b *stream.Batch, s *stream.Stream, i int) {
	if s.At(i + 1).IsSpace() {
		b.RemoveRange(i, i+2)
		return
	}
	b.RemoveRange(i, i+1)
}

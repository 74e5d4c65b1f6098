package stream

import (
	"swiftfmt/internal/token"
)

// Skip selects token kinds ignored by Next/Prev.
type Skip uint8

const (
	SkipSpace Skip = 1 << iota
	SkipComment
	SkipLinebreak

	SkipNone Skip = 0
	// SkipTrivia ignores everything without syntax.
	SkipTrivia = SkipSpace | SkipComment | SkipLinebreak
)

func (sk Skip) skips(t token.Token) bool {
	switch t.Kind {
	case token.Space:
		return sk&SkipSpace != 0
	case token.Comment:
		return sk&SkipComment != 0
	case token.Linebreak:
		return sk&SkipLinebreak != 0
	}
	return false
}

// IndexAfter returns the first index > i whose token satisfies match.
func (s *Stream) IndexAfter(i int, match func(token.Token) bool) int {
	for j := max(i+1, 0); j < len(s.toks); j++ {
		if match(s.toks[j]) {
			return j
		}
	}
	return -1
}

// IndexAfterOr is IndexAfter with a fallback for the not-found case.
func (s *Stream) IndexAfterOr(i int, match func(token.Token) bool, fallback int) int {
	if j := s.IndexAfter(i, match); j >= 0 {
		return j
	}
	return fallback
}

// IndexBefore returns the last index < i whose token satisfies match.
func (s *Stream) IndexBefore(i int, match func(token.Token) bool) int {
	for j := min(i-1, len(s.toks)-1); j >= 0; j-- {
		if match(s.toks[j]) {
			return j
		}
	}
	return -1
}

// IndexBeforeOr is IndexBefore with a fallback for the not-found case.
func (s *Stream) IndexBeforeOr(i int, match func(token.Token) bool, fallback int) int {
	if j := s.IndexBefore(i, match); j >= 0 {
		return j
	}
	return fallback
}

// Next returns the first index > i whose token is not skipped.
func (s *Stream) Next(i int, skip Skip) int {
	return s.IndexAfter(i, func(t token.Token) bool { return !skip.skips(t) })
}

// Prev returns the last index < i whose token is not skipped.
func (s *Stream) Prev(i int, skip Skip) int {
	return s.IndexBefore(i, func(t token.Token) bool { return !skip.skips(t) })
}

// NextSignificant skips spaces, comments and linebreaks.
func (s *Stream) NextSignificant(i int) int { return s.Next(i, SkipTrivia) }

// PrevSignificant skips spaces, comments and linebreaks.
func (s *Stream) PrevSignificant(i int) int { return s.Prev(i, SkipTrivia) }

// NextToken returns the token at Next(i, skip), or the zero Token.
func (s *Stream) NextToken(i int, skip Skip) token.Token { return s.At(s.Next(i, skip)) }

// PrevToken returns the token at Prev(i, skip), or the zero Token.
func (s *Stream) PrevToken(i int, skip Skip) token.Token { return s.At(s.Prev(i, skip)) }

// StartOfLine returns the index of the first token on the line containing i.
func (s *Stream) StartOfLine(i int) int {
	j := s.IndexBefore(i, func(t token.Token) bool { return t.Kind == token.Linebreak })
	return j + 1
}

// EndOfLine returns the index of the linebreak ending the line containing i,
// or Len when the line is the last one.
func (s *Stream) EndOfLine(i int) int {
	if s.At(i).Kind == token.Linebreak {
		return i
	}
	return s.IndexAfterOr(i, func(t token.Token) bool { return t.Kind == token.Linebreak }, len(s.toks))
}

// Indent returns the leading whitespace of the line containing i.
func (s *Stream) Indent(i int) string {
	start := s.StartOfLine(i)
	if t := s.At(start); t.Kind == token.Space && s.Valid(start) {
		return t.Text
	}
	return ""
}

// LinebreakBetween reports whether a linebreak lies strictly between a and b.
func (s *Stream) LinebreakBetween(a, b int) bool {
	for j := max(a+1, 0); j < b && j < len(s.toks); j++ {
		if s.toks[j].Kind == token.Linebreak {
			return true
		}
	}
	return false
}

package stream

import (
	"slices"

	"swiftfmt/internal/token"
)

// Insert places toks before index i (i == Len appends).
func (s *Stream) Insert(i int, toks ...token.Token) {
	i = min(max(i, 0), len(s.toks))
	s.toks = slices.Insert(s.toks, i, toks...)
}

// Remove deletes the token at i.
func (s *Stream) Remove(i int) {
	s.RemoveRange(i, i+1)
}

// RemoveRange deletes tokens in [from, to).
func (s *Stream) RemoveRange(from, to int) {
	from, to = max(from, 0), min(to, len(s.toks))
	if from >= to {
		return
	}
	s.toks = slices.Delete(s.toks, from, to)
}

// Replace substitutes the token at i with toks.
func (s *Stream) Replace(i int, toks ...token.Token) {
	s.ReplaceRange(i, i+1, toks...)
}

// ReplaceRange substitutes tokens in [from, to) with toks.
func (s *Stream) ReplaceRange(from, to int, toks ...token.Token) {
	from, to = max(from, 0), min(to, len(s.toks))
	if from > to {
		return
	}
	s.toks = slices.Replace(s.toks, from, to, toks...)
}

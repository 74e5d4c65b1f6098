// Package stream is the indexed, mutable token container rules operate on.
//
// Every search returns -1 for "not found", including scans that run off
// either end. Edits never rebase indices held by callers: an index is only
// valid until the next Insert/Remove/Replace.
package stream

import (
	"swiftfmt/internal/token"
)

// Stream owns the token slice of one formatting run.
type Stream struct {
	toks []token.Token
}

// New copies toks into a fresh stream.
func New(toks []token.Token) *Stream {
	own := make([]token.Token, len(toks))
	copy(own, toks)
	return &Stream{toks: own}
}

// Len returns the number of tokens.
func (s *Stream) Len() int { return len(s.toks) }

// Valid reports whether i addresses a token.
func (s *Stream) Valid(i int) bool { return i >= 0 && i < len(s.toks) }

// At returns the token at i, or the zero Token when i is out of range.
// The zero Token has Kind Error and empty Text; check Valid when it matters.
func (s *Stream) At(i int) token.Token {
	if !s.Valid(i) {
		return token.Token{}
	}
	return s.toks[i]
}

// Tokens returns a copy of the current tokens.
func (s *Stream) Tokens() []token.Token {
	out := make([]token.Token, len(s.toks))
	copy(out, s.toks)
	return out
}

// Slice returns a copy of tokens in [from, to).
func (s *Stream) Slice(from, to int) []token.Token {
	from, to = max(from, 0), min(to, len(s.toks))
	if from >= to {
		return nil
	}
	out := make([]token.Token, to-from)
	copy(out, s.toks[from:to])
	return out
}

// String renders the stream back to source text.
func (s *Stream) String() string { return token.Render(s.toks) }

// RangeString renders tokens in [from, to).
func (s *Stream) RangeString(from, to int) string {
	from, to = max(from, 0), min(to, len(s.toks))
	if from >= to {
		return ""
	}
	return token.Render(s.toks[from:to])
}

// HasErrors reports whether any token is an Error token.
func (s *Stream) HasErrors() bool {
	for _, t := range s.toks {
		if t.Kind == token.Error {
			return true
		}
	}
	return false
}

package stream

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"swiftfmt/internal/token"
)

// MatchingScopeEnd returns the closer of the scope opened at i. Openers and
// closers must pair by kind: "(" never matches "]". -1 when i is not an
// opener or the scope is not closed.
func (s *Stream) MatchingScopeEnd(i int) int {
	if !s.At(i).IsStartOfScope("") || !s.Valid(i) {
		return -1
	}
	stack := []string{token.ClosingFor(s.toks[i].Text)}
	for j := i + 1; j < len(s.toks); j++ {
		t := s.toks[j]
		switch t.Kind {
		case token.StartOfScope:
			stack = append(stack, token.ClosingFor(t.Text))
		case token.EndOfScope:
			if t.Text != stack[len(stack)-1] {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return j
			}
		}
	}
	return -1
}

// MatchingScopeStart returns the opener of the scope closed at i, or -1.
func (s *Stream) MatchingScopeStart(i int) int {
	if !s.Valid(i) || s.toks[i].Kind != token.EndOfScope {
		return -1
	}
	stack := []string{s.toks[i].Text}
	for j := i - 1; j >= 0; j-- {
		t := s.toks[j]
		switch t.Kind {
		case token.EndOfScope:
			stack = append(stack, t.Text)
		case token.StartOfScope:
			if token.ClosingFor(t.Text) != stack[len(stack)-1] {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return j
			}
		}
	}
	return -1
}

// ScopeStart returns the innermost opener whose scope contains i. For a
// closer at i this is its own opener. -1 at top level.
func (s *Stream) ScopeStart(i int) int {
	depth := 0
	for j := min(i-1, len(s.toks)-1); j >= 0; j-- {
		switch s.toks[j].Kind {
		case token.EndOfScope:
			depth++
		case token.StartOfScope:
			if depth == 0 {
				return j
			}
			depth--
		}
	}
	return -1
}

// ScopeStarts returns ScopeStart for every index, computed in one forward
// pass. The slice is valid until the next edit.
func (s *Stream) ScopeStarts() []int {
	out := make([]int, len(s.toks))
	var stack []int
	for j, t := range s.toks {
		out[j] = -1
		if len(stack) > 0 {
			out[j] = stack[len(stack)-1]
		}
		switch t.Kind {
		case token.StartOfScope:
			stack = append(stack, j)
		case token.EndOfScope:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return out
}

// SpaceEquivalent renders whitespace as wide as tokens [from, upTo) would
// be on screen. Tabs are kept, wide runes count double. Only the part after
// the last linebreak in the range contributes.
func (s *Stream) SpaceEquivalent(from, upTo int) string {
	var sb strings.Builder
	for j := max(from, 0); j < upTo && j < len(s.toks); j++ {
		t := s.toks[j]
		if t.Kind == token.Linebreak {
			sb.Reset()
			continue
		}
		for _, r := range t.Text {
			switch r {
			case '\t':
				sb.WriteByte('\t')
			case '\n', '\r':
				sb.Reset()
			default:
				sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
			}
		}
	}
	return sb.String()
}

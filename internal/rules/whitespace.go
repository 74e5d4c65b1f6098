package rules

import (
	"swiftfmt/internal/token"
)

// trailingSpace removes Space tokens that end a line. Indentation of blank
// lines is kept unless Options.TrimBlankLines is set. String content is
// never a Space token, so multi-line literals are untouched.
func trailingSpace(f *Formatter) error {
	s := f.Stream
	for i := s.Len() - 1; i >= 0; i-- {
		if !s.At(i).IsSpace() {
			continue
		}
		if next := i + 1; next < s.Len() && !s.At(next).IsLinebreak() {
			continue
		}
		blank := i == 0 || s.At(i-1).IsLinebreak()
		if blank && !f.Options.TrimBlankLines {
			continue
		}
		s.Remove(i)
	}
	return nil
}

// consecutiveSpaces collapses spacing between two tokens on one line to a
// single space. Indentation, spacing before a comment and line ends are
// left alone.
func consecutiveSpaces(f *Formatter) error {
	s := f.Stream
	for i := 1; i < s.Len()-1; i++ {
		t := s.At(i)
		if !t.IsSpace() || t.Text == " " {
			continue
		}
		prev, next := s.At(i-1), s.At(i+1)
		if prev.IsLinebreak() || next.IsLinebreak() || next.IsComment() {
			continue
		}
		s.Replace(i, token.New(token.Space, " "))
	}
	return nil
}

package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// Point returns the empty span at off.
func Point(file FileID, off uint32) Span {
	return Span{File: file, Start: off, End: off}
}

func (s Span) Len() uint32 { return s.End - s.Start }

func (s Span) Empty() bool { return s.End <= s.Start }

// Contains reports whether off falls inside s. An empty span contains only
// its own position.
func (s Span) Contains(off uint32) bool {
	if s.Empty() {
		return off == s.Start
	}
	return off >= s.Start && off < s.End
}

// Cover extends s to include other. Spans from different files leave s as is.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	s.Start = min(s.Start, other.Start)
	s.End = max(s.End, other.End)
	return s
}

func (s Span) String() string {
	if s.Empty() {
		return fmt.Sprintf("%d:%d", s.File, s.Start)
	}
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

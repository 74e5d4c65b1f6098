package stream

import (
	"cmp"
	"slices"

	"swiftfmt/internal/token"
)

// Batch collects edits addressed by indices of the stream as it was when the
// batch was created and applies them in a single rebuild.
type Batch struct {
	s     *Stream
	edits []edit
}

// edit replaces [from, to) with toks; from == to inserts.
type edit struct {
	from, to int
	toks     []token.Token
}

// Batch starts an empty batch. The stream must not be edited directly until
// Apply returns.
func (s *Stream) Batch() *Batch { return &Batch{s: s} }

// Insert queues toks before index i.
func (b *Batch) Insert(i int, toks ...token.Token) {
	i = min(max(i, 0), len(b.s.toks))
	b.edits = append(b.edits, edit{from: i, to: i, toks: toks})
}

// RemoveRange queues deletion of [from, to).
func (b *Batch) RemoveRange(from, to int) {
	from, to = max(from, 0), min(to, len(b.s.toks))
	if from >= to {
		return
	}
	b.edits = append(b.edits, edit{from: from, to: to})
}

// Len returns the number of queued edits.
func (b *Batch) Len() int { return len(b.edits) }

// Apply performs the queued edits and returns how many were dropped because
// they overlap an earlier edit. Insertions at one index keep queue order and
// land before a removal starting there.
func (b *Batch) Apply() int {
	if len(b.edits) == 0 {
		return 0
	}
	slices.SortStableFunc(b.edits, func(x, y edit) int {
		if c := cmp.Compare(x.from, y.from); c != 0 {
			return c
		}
		return cmp.Compare(x.to, y.to)
	})
	src := b.s.toks
	out := make([]token.Token, 0, len(src)+len(b.edits))
	cursor, dropped := 0, 0
	for _, e := range b.edits {
		if e.from < cursor {
			dropped++
			continue
		}
		out = append(out, src[cursor:e.from]...)
		out = append(out, e.toks...)
		cursor = e.to
	}
	b.s.toks = append(out, src[cursor:]...)
	b.edits = nil
	return dropped
}

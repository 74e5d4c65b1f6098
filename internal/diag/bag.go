package diag

import (
	"cmp"
	"slices"
)

// Bag collects diagnostics up to a fixed cap. Diagnostics past the cap are
// counted but not stored.
type Bag struct {
	items   []Diagnostic
	max     int
	dropped int
}

func NewBag(max int) *Bag {
	if max <= 0 {
		max = 1
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(max, 64)),
		max:   max,
	}
}

// Add возвращает false, если лимит исчерпан.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int { return b.max }
func (b *Bag) Len() int { return len(b.items) }

// Dropped returns how many diagnostics Add rejected, including merged bags.
func (b *Bag) Dropped() int { return b.dropped }

// Items returns the stored diagnostics. The slice aliases the bag.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Count returns how many stored diagnostics are at least sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= sev {
			n++
		}
	}
	return n
}

func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
}

func (b *Bag) HasWarnings() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevWarning })
}

// Merge appends other, growing the cap so nothing from either bag is lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.max = max(b.max, len(b.items)+len(other.items))
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
}

// Sort orders by file, start, end, then severity (errors first) and code.
// The sort is stable so equal keys keep report order.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

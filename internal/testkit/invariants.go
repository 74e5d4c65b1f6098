// Package testkit holds invariant checks shared by package tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"swiftfmt/internal/decl"
	"swiftfmt/internal/source"
	"swiftfmt/internal/token"
)

// CheckRoundTrip verifies that toks reproduce src exactly and that no token
// is empty.
func CheckRoundTrip(src string, toks []token.Token) error {
	for i, t := range toks {
		if t.Text == "" {
			return fmt.Errorf("token %d (%s) is empty", i, t.Kind)
		}
	}
	if got := token.Render(toks); got != src {
		return fmt.Errorf("render mismatch: got %d bytes, want %d", len(got), len(src))
	}
	return nil
}

// CheckSpans verifies that the tokens tile file's content within the range
// of 32-bit span offsets.
func CheckSpans(toks []token.Token, file *source.File) error {
	if file == nil {
		return fmt.Errorf("nil file")
	}
	var off uint32
	for i, t := range toks {
		n, err := safecast.Conv[uint32](len(t.Text))
		if err != nil {
			return fmt.Errorf("token %d length overflow: %w", i, err)
		}
		if off+n < off {
			return fmt.Errorf("token %d ends beyond the span range", i)
		}
		off += n
	}
	lenContent, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if off != lenContent {
		return fmt.Errorf("tokens cover %d bytes, file has %d", off, lenContent)
	}
	return nil
}

// CheckPartition verifies the declaration tree against the stream it was
// parsed from: top-level ranges are contiguous and cover toks, every body
// nests inside its parent and the tokens reassemble to toks.
func CheckPartition(toks []token.Token, decls []decl.Declaration) error {
	var all []token.Token
	next := 0
	for i := range decls {
		d := &decls[i]
		if d.Start != next {
			return fmt.Errorf("declaration %d starts at %d, want %d", i, d.Start, next)
		}
		if err := checkNested(d); err != nil {
			return err
		}
		next = d.End
		all = append(all, d.Tokens()...)
	}
	if next != len(toks) {
		return fmt.Errorf("declarations cover %d tokens, stream has %d", next, len(toks))
	}
	if len(all) != len(toks) {
		return fmt.Errorf("declarations hold %d tokens, stream has %d", len(all), len(toks))
	}
	for i := range toks {
		if all[i] != toks[i] {
			return fmt.Errorf("token %d differs: %q vs %q", i, all[i].Text, toks[i].Text)
		}
	}
	return nil
}

func checkNested(d *decl.Declaration) error {
	if d.End < d.Start {
		return fmt.Errorf("declaration %q has range [%d, %d)", d.Name, d.Start, d.End)
	}
	if got := len(d.Tokens()); got != d.End-d.Start {
		return fmt.Errorf("declaration %q holds %d tokens for range [%d, %d)", d.Name, got, d.Start, d.End)
	}
	next := d.Start + len(d.Open)
	for i := range d.Body {
		child := &d.Body[i]
		if child.Start != next {
			return fmt.Errorf("body %d of %q starts at %d, want %d", i, d.Name, child.Start, next)
		}
		if err := checkNested(child); err != nil {
			return err
		}
		next = child.End
	}
	if next+len(d.Close) != d.End {
		return fmt.Errorf("declaration %q body ends at %d, close does not reach %d", d.Name, next, d.End)
	}
	return nil
}

package source

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.swift", []byte("let a = 1\nlet b = 2\n\nfoo()"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{4, LineCol{1, 5}},
		{9, LineCol{1, 10}}, // the '\n' itself
		{10, LineCol{2, 1}},
		{20, LineCol{3, 1}},
		{21, LineCol{4, 1}},
		{24, LineCol{4, 4}},
	}
	for _, tt := range tests {
		got, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if got != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestGetLineStripsCRLF(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.swift", []byte("first\r\nsecond\r\nthird"))
	f := fs.Get(id)
	if f.Flags&FileHadCRLF == 0 {
		t.Fatalf("expected FileHadCRLF flag")
	}
	for line, want := range map[uint32]string{1: "first", 2: "second", 3: "third", 4: ""} {
		if got := f.GetLine(line); got != want {
			t.Errorf("line %d: got %q, want %q", line, got, want)
		}
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	text := []byte("let s = \"héllo\"\n")
	for _, enc := range []Encoding{UTF8, UTF8BOM, UTF16LE, UTF16BE} {
		raw, err := Encode(text, enc)
		if err != nil {
			t.Fatalf("%s: encode: %v", enc, err)
		}
		if got := DetectEncoding(raw); got != enc {
			t.Fatalf("%s: detected %s", enc, got)
		}
		back, gotEnc, err := Decode(raw)
		if err != nil {
			t.Fatalf("%s: decode: %v", enc, err)
		}
		if gotEnc != enc {
			t.Fatalf("%s: decode reported %s", enc, gotEnc)
		}
		if !bytes.Equal(back, text) {
			t.Fatalf("%s: got %q, want %q", enc, back, text)
		}
	}
}

func TestLoadAndWriteFilePreservesEncoding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.swift")
	raw, err := Encode([]byte("import Foundation\n"), UTF16LE)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "import Foundation\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Encoding != UTF16LE || f.Flags&FileHadBOM == 0 {
		t.Fatalf("encoding = %s flags = %b", f.Encoding, f.Flags)
	}

	if err := WriteFile(path, []byte("import UIKit\n"), f.Encoding); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text, enc, err := Decode(written)
	if err != nil || enc != UTF16LE || string(text) != "import UIKit\n" {
		t.Fatalf("written file: %q %s %v", text, enc, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "base")
	inside := filepath.Join(base, "Sources", "a.swift")
	outside := filepath.Join(tmp, "other", "b.swift")

	got, err := RelativePath(inside, base)
	if err != nil || got != "Sources/a.swift" {
		t.Fatalf("inside: %q %v", got, err)
	}
	got, err = RelativePath(outside, base)
	if err != nil || got != normalizePath(outside) {
		t.Fatalf("outside: %q %v", got, err)
	}
}

func TestSpan(t *testing.T) {
	s := Span{File: 1, Start: 4, End: 8}
	if s.Len() != 4 || s.Empty() || !s.Contains(4) || s.Contains(8) {
		t.Fatalf("unexpected span behaviour: %v", s)
	}
	p := Point(1, 10)
	if !p.Empty() || !p.Contains(10) || p.String() != "1:10" {
		t.Fatalf("unexpected point: %v", p)
	}
	if got := s.Cover(p); got != (Span{File: 1, Start: 4, End: 10}) {
		t.Fatalf("Cover = %v", got)
	}
	if got := s.Cover(Span{File: 2, Start: 0, End: 100}); got != s {
		t.Fatalf("Cover across files = %v", got)
	}
	if s.String() != "1:4-8" {
		t.Fatalf("String = %q", s.String())
	}
}

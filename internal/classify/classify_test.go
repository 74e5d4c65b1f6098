package classify_test

import (
	"testing"

	"swiftfmt/internal/classify"
	"swiftfmt/internal/lexer"
	"swiftfmt/internal/stream"
	"swiftfmt/internal/token"
)

func newStream(src string) *stream.Stream {
	return stream.New(lexer.Tokenize(src))
}

// nth returns the index of the n-th token matching kind and text.
func nth(t *testing.T, s *stream.Stream, kind token.Kind, text string, n int) int {
	t.Helper()
	seen := 0
	for i := 0; i < s.Len(); i++ {
		if tok := s.At(i); tok.Kind == kind && tok.Text == text {
			if seen == n {
				return i
			}
			seen++
		}
	}
	t.Fatalf("%s(%s) #%d not found in %q", kind, text, n, s.String())
	return -1
}

func ident(t *testing.T, s *stream.Stream, name string) int {
	t.Helper()
	return nth(t, s, token.Identifier, name, 0)
}

func TestIsStartOfClosureCorpus(t *testing.T) {
	tests := []struct {
		src  string
		want []bool // one entry per '{', in source order
	}{
		{"if x {}", []bool{false}},
		{"func f() {}", []bool{false}},
		{"var x: Int { get {} }", []bool{false, false}},
		{"let f = { }", []bool{true}},
		{"x.map { }", []bool{true}},
		{"if let y = { z }() {}", []bool{true, false}},
		{"if foo.contains { $0 } {}", []bool{true, false}},
		{"guard let x = y.first(where: { $0 > 1 }) else { return }", []bool{true, false}},
		{"var x = 5 {\n  didSet {}\n}", []bool{false, false}},
		{"var x: Int {\n  get { 1 }\n  set { }\n}", []bool{false, false, false}},
		{"struct S<T>: P where T: Q {}", []bool{false}},
		{"class func f() {}", []bool{false}},
		{"let task = async { }", []bool{true}},
		{"func f() async throws(E) -> Int {}", []bool{false}},
		{"do { try foo() } catch {}", []bool{false, false}},
		{"foo(bar) { x }", []bool{true}},
		{"x.filter { $0 }.map { $0 }", []bool{true, true}},
		{"for x in xs where x > 0 {}", []bool{false}},
		{"let v = switch x { default: 2 }", []bool{false}},
		{"extension Array where Element: Equatable {}", []bool{false}},
		{"actor A {}", []bool{false}},
		{"func f() {\n  let g = { 1 }\n}", []bool{false, true}},
		{"repeat { x() } while y", []bool{false}},
		{"return { 1 }", []bool{true}},
		{"subscript(i: Int) -> Int { 0 }", []bool{false}},
		{"init?() {}", []bool{false}},
	}
	for _, tt := range tests {
		s := newStream(tt.src)
		for n, want := range tt.want {
			i := nth(t, s, token.StartOfScope, "{", n)
			if got := classify.IsStartOfClosure(s, i); got != want {
				t.Errorf("%q brace #%d: IsStartOfClosure = %v, want %v", tt.src, n, got, want)
			}
		}
	}
}

func TestIsStartOfClosureNotABrace(t *testing.T) {
	s := newStream("foo(x)")
	if classify.IsStartOfClosure(s, 1) || classify.IsStartOfClosure(s, -1) {
		t.Fatal("non-brace classified as closure")
	}
}

func TestIsStartOfStatement(t *testing.T) {
	tests := []struct {
		name string
		src  string
		at   func(*testing.T, *stream.Stream) int
		want bool
	}{
		{"paren after linebreak", "foo\n    ()", func(t *testing.T, s *stream.Stream) int {
			return nth(t, s, token.StartOfScope, "(", 0)
		}, true},
		{"call on one line", "foo()", func(t *testing.T, s *stream.Stream) int {
			return nth(t, s, token.StartOfScope, "(", 0)
		}, false},
		{"subscript after linebreak", "foo\n[1].bar()", func(t *testing.T, s *stream.Stream) int {
			return nth(t, s, token.StartOfScope, "[", 0)
		}, true},
		{"operator continues", "let a = 1 +\n  2", func(t *testing.T, s *stream.Stream) int {
			return nth(t, s, token.Number, "2", 0)
		}, false},
		{"member chain", "foo\n  .bar()", func(t *testing.T, s *stream.Stream) int {
			return nth(t, s, token.Operator, ".", 0)
		}, false},
		{"next line", "x = 1\ny = 2", func(t *testing.T, s *stream.Stream) int {
			return ident(t, s, "y")
		}, true},
		{"first in body", "if x {\n  foo()\n}", func(t *testing.T, s *stream.Stream) int {
			return ident(t, s, "foo")
		}, true},
		{"argument list", "foo(a,\n    b)", func(t *testing.T, s *stream.Stream) int {
			return ident(t, s, "b")
		}, false},
		{"after attribute", "@objc\nfunc f() {}", func(t *testing.T, s *stream.Stream) int {
			return nth(t, s, token.Keyword, "func", 0)
		}, false},
		{"after closure in", "let f = { x in\n  x + 1 }", func(t *testing.T, s *stream.Stream) int {
			return nth(t, s, token.Identifier, "x", 1)
		}, true},
		{"after semicolon", "a; b", func(t *testing.T, s *stream.Stream) int {
			return ident(t, s, "b")
		}, true},
		{"else", "if a {\n} else {\n}", func(t *testing.T, s *stream.Stream) int {
			return nth(t, s, token.Keyword, "else", 0)
		}, false},
		{"closer", "foo(\n)", func(t *testing.T, s *stream.Stream) int {
			return nth(t, s, token.EndOfScope, ")", 0)
		}, false},
		{"start of file", "x", func(t *testing.T, s *stream.Stream) int {
			return 0
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream(tt.src)
			if got := classify.IsStartOfStatement(s, tt.at(t, s)); got != tt.want {
				t.Fatalf("IsStartOfStatement = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseExpressionRange(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		from  string // identifier or keyword text where parsing starts
		cond  bool
		want  string // rendered range
		found bool
	}{
		{"member chain with trailing closure", "let x = foo.bar(1)[0]?.baz { $0 } + 2\nnext()", "foo", false,
			"foo.bar(1)[0]?.baz { $0 } + 2", true},
		{"ternary", "a ? b : c", "a", false, "a ? b : c", true},
		{"effects and cast", "try await foo(x) as? Int", "try", false, "try await foo(x) as? Int", true},
		{"stops at assignment", "x = y", "x", false, "x", true},
		{"linebreak before paren", "foo\n(bar)", "foo", false, "foo", true},
		{"if expression", "if x { 1 } else { 2 }", "if", true, "if x { 1 } else { 2 }", true},
		{"if without opt-in", "if x { 1 } else { 2 }", "if", false, "", false},
		{"labelled trailing closures", "foo { a } onError: { b }", "foo", false, "foo { a } onError: { b }", true},
		{"implicit member", "let a = .some(1)", ".", false, ".some(1)", true},
		{"infix across linebreak", "a\n  && b", "a", false, "a\n  && b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream(tt.src)
			start := s.IndexAfter(-1, func(tok token.Token) bool { return tok.Text == tt.from })
			r, ok := classify.ParseExpressionRange(s, start, tt.cond)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if !ok {
				return
			}
			if got := s.RangeString(r.Start, r.End+1); got != tt.want {
				t.Fatalf("range = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseExpressionRangeRejectsNonExpressions(t *testing.T) {
	s := newStream("(a)\n")
	if _, ok := classify.ParseExpressionRange(s, s.Len()-1, false); ok {
		t.Fatal("linebreak parsed as expression")
	}
	if _, ok := classify.ParseExpressionRange(s, 2, false); ok {
		t.Fatal("closer parsed as expression")
	}
	if _, ok := classify.ParseExpressionRange(s, 99, false); ok {
		t.Fatal("out of range index parsed as expression")
	}
}

func TestStartOfExpression(t *testing.T) {
	s := newStream("let x = foo(a, try bar())")
	try := nth(t, s, token.Keyword, "try", 0)
	if got := classify.StartOfExpression(s, try); got != try {
		t.Fatalf("argument start = %d, want %d", got, try)
	}
	if got := classify.StartOfExpression(s, ident(t, s, "bar")); got != try {
		t.Fatalf("start from bar = %d, want %d", got, try)
	}
	open := nth(t, s, token.StartOfScope, "(", 0)
	if got, want := classify.StartOfExpression(s, open), ident(t, s, "foo"); got != want {
		t.Fatalf("start from call = %d, want %d", got, want)
	}
}

func TestDeclarationScope(t *testing.T) {
	src := "let g = 1\n" +
		"struct S {\n" +
		"  var p = 1\n" +
		"  func m() {\n" +
		"    let l = 2\n" +
		"  }\n" +
		"}\n" +
		"let c = { let inner = 0 }\n" +
		"#if DEBUG\n" +
		"extension S {\n" +
		"  #if os(iOS)\n" +
		"  var q: Int { 1 }\n" +
		"  #endif\n" +
		"}\n" +
		"#endif\n"
	s := newStream(src)
	tests := map[string]classify.Scope{
		"g":     classify.Global,
		"p":     classify.Type,
		"m":     classify.Type,
		"l":     classify.Local,
		"inner": classify.Local,
		"q":     classify.Type,
	}
	for name, want := range tests {
		if got := classify.DeclarationScope(s, ident(t, s, name)); got != want {
			t.Errorf("DeclarationScope(%s) = %v, want %v", name, got, want)
		}
	}
}

func TestIsEnumCase(t *testing.T) {
	src := "enum E {\n" +
		"  case a, b(Int)\n" +
		"  indirect case c\n" +
		"  func f() {\n" +
		"    switch self {\n" +
		"    case .a: break\n" +
		"    default: break\n" +
		"    }\n" +
		"  }\n" +
		"}\n" +
		"if case .x = y {}\n"
	s := newStream(src)
	index := classify.NewCaseIndex(s)
	cases := []bool{true, true, false, false}
	for n, want := range cases {
		i := nth(t, s, token.Keyword, "case", n)
		if got := classify.IsEnumCase(s, i); got != want {
			t.Errorf("case #%d: IsEnumCase = %v, want %v", n, got, want)
		}
		if got := index.IsEnumCase(i); got != want {
			t.Errorf("case #%d: CaseIndex.IsEnumCase = %v, want %v", n, got, want)
		}
	}
	if !classify.IsEnumCase(s, ident(t, s, "b")) || !index.IsEnumCase(ident(t, s, "b")) {
		t.Error("second element of a case list not recognized")
	}
}

func TestCaseIndexLooksThroughConditionals(t *testing.T) {
	s := newStream("enum E {\n#if A\ncase a\n#else\ncase b\n#endif\n}\nswitch e {\n#if A\ncase .a: break\n#endif\n}\n")
	index := classify.NewCaseIndex(s)
	for n, want := range []bool{true, true, false} {
		i := nth(t, s, token.Keyword, "case", n)
		if got := index.IsEnumCase(i); got != want || got != classify.IsEnumCase(s, i) {
			t.Errorf("case #%d: CaseIndex.IsEnumCase = %v, want %v", n, got, want)
		}
	}
}

func TestIsAccessorKeyword(t *testing.T) {
	src := "var x: Int {\n" +
		"  get { 1 }\n" +
		"  set(v) { }\n" +
		"}\n" +
		"func get() {}\n" +
		"struct S {\n" +
		"  var y: Int {\n" +
		"    mutating get { 0 }\n" +
		"  }\n" +
		"}\n" +
		"let o = foo {\n" +
		"  get { 1 }\n" +
		"}\n"
	s := newStream(src)
	want := []bool{true, false, true, false}
	for n, w := range want {
		i := nth(t, s, token.Identifier, "get", n)
		if got := classify.IsAccessorKeyword(s, i); got != w {
			t.Errorf("get #%d: IsAccessorKeyword = %v, want %v", n, got, w)
		}
	}
	if !classify.IsAccessorKeyword(s, ident(t, s, "set")) {
		t.Error("set(v) not recognized")
	}
}

func TestStartOfConditionalStatement(t *testing.T) {
	s := newStream("if let a = b, c.contains(where: { $0 }), d {\n  e\n}\nguard x else { return }\nlet z = w")
	ifKw := nth(t, s, token.Keyword, "if", 0)
	for _, name := range []string{"b", "d", "$0", "c"} {
		if got := classify.StartOfConditionalStatement(s, ident(t, s, name)); got != ifKw {
			t.Errorf("%s: got %d, want %d", name, got, ifKw)
		}
	}
	if got := classify.StartOfConditionalStatement(s, ident(t, s, "e")); got != -1 {
		t.Errorf("body token: got %d, want -1", got)
	}
	guardKw := nth(t, s, token.Keyword, "guard", 0)
	if got := classify.StartOfConditionalStatement(s, ident(t, s, "x")); got != guardKw {
		t.Errorf("guard condition: got %d, want %d", got, guardKw)
	}
	if got := classify.StartOfConditionalStatement(s, nth(t, s, token.Keyword, "return", 0)); got != -1 {
		t.Errorf("else body: got %d, want -1", got)
	}
	if got := classify.StartOfConditionalStatement(s, ident(t, s, "w")); got != -1 {
		t.Errorf("plain binding: got %d, want -1", got)
	}
}

package lexer_test

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"swiftfmt/internal/diag"
	"swiftfmt/internal/lexer"
	"swiftfmt/internal/source"
	"swiftfmt/internal/token"
)

// sig renders every token except spaces as kind(text), joined by spaces.
func sig(toks []token.Token) string {
	parts := make([]string, 0, len(toks))
	for _, t := range toks {
		if t.Kind == token.Space {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s(%s)", t.Kind, t.Text))
	}
	return strings.Join(parts, " ")
}

func findToken(t *testing.T, toks []token.Token, kind token.Kind, text string, nth int) token.Token {
	t.Helper()
	seen := 0
	for _, tok := range toks {
		if tok.Kind == kind && tok.Text == text {
			if seen == nth {
				return tok
			}
			seen++
		}
	}
	t.Fatalf("token %s(%s) #%d not found in %s", kind, text, nth, sig(toks))
	return token.Token{}
}

func TestTokenizeBasicStatement(t *testing.T) {
	toks := lexer.Tokenize(`let x = foo(bar: 1, "a\(b)c")`)
	want := `keyword(let) identifier(x) operator(=) identifier(foo) startOfScope(() ` +
		`identifier(bar) delimiter(:) number(1) delimiter(,) startOfScope(") string(a) ` +
		`startOfScope(\() identifier(b) endOfScope()) string(c) endOfScope(") endOfScope())`
	if got := sig(toks); got != want {
		t.Fatalf("\ngot:  %s\nwant: %s", got, want)
	}
}

func TestRoundTripCorpus(t *testing.T) {
	corpus := []string{
		"",
		"import Foundation\n\nlet a = 1\r\nvar b = \"x\"\r",
		"func f<T: Equatable>(_ x: T) -> [T] where T: Hashable { return [x] }\n",
		"let s = \"\"\"\n  multi \\(value) line\n  \"\"\"\n",
		"let r = #\"raw \\#(x) \"quoted\" \"#\n",
		"/* nested /* comment */ still */ x\n/// doc\n",
		"let s = \"unterminated\nlet t = 1\n",
		"/* never closed",
		"foo) ]} bar(",
		"let e = €\n`broken\n#\n@ x\n",
		"\"a \\(b",
		"#!/usr/bin/env swift\nprint(1)\n",
		"let x: Array<Array<Int>>? = nil; y = a<b && c>d\n",
		"\xff\xfe invalid utf8 \xc3\n",
	}
	for _, src := range corpus {
		if got := token.Render(lexer.Tokenize(src)); got != src {
			t.Errorf("round trip failed:\nsrc: %q\ngot: %q", src, got)
		}
	}
}

func TestRoundTripRandom(t *testing.T) {
	alphabet := []string{
		`"`, `"""`, `\`, `(`, `)`, `#`, `/`, `*`, "\n", "\r", `<`, `>`, `{`, `}`,
		" ", "a", "1", ".", "?", "!", "€", "`", "@", ",", ":", "let", "try", "\\(",
	}
	r := rand.New(rand.NewPCG(1, 2))
	for range 2000 {
		var sb strings.Builder
		for range r.IntN(40) {
			sb.WriteString(alphabet[r.IntN(len(alphabet))])
		}
		src := sb.String()
		if got := token.Render(lexer.Tokenize(src)); got != src {
			t.Fatalf("round trip failed:\nsrc: %q\ngot: %q", src, got)
		}
	}
}

func TestOperatorFixity(t *testing.T) {
	tests := []struct {
		src  string
		op   string
		nth  int
		want token.OpKind
	}{
		{"a + -b", "+", 0, token.Infix},
		{"a + -b", "-", 0, token.Prefix},
		{"a+b", "+", 0, token.Infix},
		{"x!.y?.z", "!", 0, token.Postfix},
		{"x!.y?.z", ".", 0, token.Infix},
		{"x!.y?.z", "?", 0, token.Postfix},
		{"x!.y?.z", ".", 1, token.Infix},
		{"try? foo()", "?", 0, token.Postfix},
		{"x as! Int", "!", 0, token.Postfix},
		{"foo\n    .bar()", ".", 0, token.Infix},
		{"case .foo:", ".", 0, token.Prefix},
		{"f(.a, .b)", ".", 1, token.Prefix},
		{"a ?? b", "??", 0, token.Infix},
		{"c ? a : b", "?", 0, token.Infix},
		{"0..<n", "..<", 0, token.Infix},
		{"a[1...]", "...", 0, token.Postfix},
		{"foo(&x)", "&", 0, token.Prefix},
		{"let f: () -> Void", "->", 0, token.Infix},
		{"init?(x: Int)", "?", 0, token.Postfix},
		{`\.name`, `\`, 0, token.Prefix},
	}
	for _, tt := range tests {
		tok := findToken(t, lexer.Tokenize(tt.src), token.Operator, tt.op, tt.nth)
		if tok.Op != tt.want {
			t.Errorf("%q: %q #%d is %s, want %s", tt.src, tt.op, tt.nth, tok.Op, tt.want)
		}
	}
}

func TestKeywordsAsIdentifiers(t *testing.T) {
	tests := []struct {
		src  string
		text string
		want token.Kind
	}{
		{"foo.default", "default", token.Identifier},
		{"foo(for: x)", "for", token.Identifier},
		{"f(a, in: b)", "in", token.Identifier},
		{"func f(in x: Int) {}", "in", token.Identifier},
		{"func f(_ as: Int) {}", "as", token.Identifier},
		{"x.init()", "init", token.Keyword},
		{"Foo.self", "self", token.Keyword},
		{"for x in y {}", "in", token.Keyword},
		{"case .foo(let x):", "let", token.Keyword},
		{"`default`", "`default`", token.Identifier},
		{"#if DEBUG\n#endif", "#if", token.StartOfScope},
	}
	for _, tt := range tests {
		toks := lexer.Tokenize(tt.src)
		found := false
		for _, tok := range toks {
			if tok.Text == tt.text {
				found = true
				if tok.Kind != tt.want {
					t.Errorf("%q: %q is %s, want %s", tt.src, tt.text, tok.Kind, tt.want)
				}
				break
			}
		}
		if !found {
			t.Errorf("%q: token %q not found", tt.src, tt.text)
		}
	}
}

func TestGenerics(t *testing.T) {
	toks := lexer.Tokenize("let a: Array<Array<Int>>? = nil")
	want := `keyword(let) identifier(a) delimiter(:) identifier(Array) startOfScope(<) ` +
		`identifier(Array) startOfScope(<) identifier(Int) endOfScope(>) endOfScope(>) ` +
		`operator(?) operator(=) keyword(nil)`
	if got := sig(toks); got != want {
		t.Fatalf("\ngot:  %s\nwant: %s", got, want)
	}
	if q := findToken(t, toks, token.Operator, "?", 0); q.Op != token.Postfix {
		t.Fatalf("? after generic is %s", q.Op)
	}

	toks = lexer.Tokenize("if a<b, c>d {}")
	if got := findToken(t, toks, token.Operator, "<", 0); got.Op != token.Infix {
		t.Fatalf("comparison < became %s", got.Op)
	}
	findToken(t, toks, token.Operator, ">", 0)

	toks = lexer.Tokenize("let x: [String: Int?]? = f<T>()")
	findToken(t, toks, token.StartOfScope, "<", 0)
	findToken(t, toks, token.EndOfScope, ">", 0)
}

func TestStrings(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`#"a"b"#`, `startOfScope(#") string(a"b) endOfScope("#)`},
		{`"esc \" q"`, `startOfScope(") string(esc \" q) endOfScope(")`},
		{"\"\"\"\n  hi\n  \"\"\"", `startOfScope(""") linebreak(` + "\n" + `) string(  hi) linebreak(` + "\n" + `) string(  ) endOfScope(""")`},
		{`"\(foo("x"))"`, `startOfScope(") startOfScope(\() identifier(foo) startOfScope(() startOfScope(") string(x) endOfScope(") endOfScope()) endOfScope()) endOfScope(")`},
		{`##"a \##(b) \(c)"##`, `startOfScope(##") string(a ) startOfScope(\##() identifier(b) endOfScope()) string( \(c)) endOfScope("##)`},
		{`""`, `startOfScope(") endOfScope(")`},
	}
	for _, tt := range tests {
		if got := sig(lexer.Tokenize(tt.src)); got != tt.want {
			t.Errorf("%q:\ngot:  %s\nwant: %s", tt.src, got, tt.want)
		}
	}
}

func TestNumbers(t *testing.T) {
	for _, src := range []string{"0x1F", "1_000.5e-3", "0b101", "0o17", "0x1.8p-2", "42"} {
		toks := lexer.Tokenize(src)
		if len(toks) != 1 || toks[0].Kind != token.Number {
			t.Errorf("%q: %s", src, sig(toks))
		}
	}
	if got := sig(lexer.Tokenize("1.description")); got != "number(1) operator(.) identifier(description)" {
		t.Errorf("1.description: %s", got)
	}
	if got := sig(lexer.Tokenize("0xFF.bigEndian")); got != "number(0xFF) operator(.) identifier(bigEndian)" {
		t.Errorf("0xFF.bigEndian: %s", got)
	}
	if toks := lexer.Tokenize("1abc"); len(toks) != 1 || toks[0].Kind != token.Error {
		t.Errorf("1abc: %s", sig(toks))
	}
}

func TestCommentsAndLinebreaks(t *testing.T) {
	toks := lexer.Tokenize("/// doc\n//// not\n/** d */\n/**/\r\n// x")
	want := []struct {
		text string
		doc  bool
	}{
		{"/// doc", true}, {"//// not", false}, {"/** d */", true}, {"/**/", false}, {"// x", false},
	}
	var comments []token.Token
	var breaks []string
	for _, tok := range toks {
		switch tok.Kind {
		case token.Comment:
			comments = append(comments, tok)
		case token.Linebreak:
			breaks = append(breaks, tok.Text)
		}
	}
	if len(comments) != len(want) {
		t.Fatalf("comments: %s", sig(toks))
	}
	for i, w := range want {
		if comments[i].Text != w.text || comments[i].Doc != w.doc {
			t.Errorf("comment %d = %q doc=%v, want %q doc=%v", i, comments[i].Text, comments[i].Doc, w.text, w.doc)
		}
	}
	if len(breaks) != 4 || breaks[3] != "\r\n" {
		t.Errorf("linebreaks = %q", breaks)
	}
}

type collectReporter struct {
	codes []diag.Code
}

func (r *collectReporter) Report(code diag.Code, _ diag.Severity, _ source.Span, _ string, _ []diag.Note) {
	r.codes = append(r.codes, code)
}

func TestAnomaliesBecomeErrorTokens(t *testing.T) {
	tests := []struct {
		src   string
		error string
		code  diag.Code
	}{
		{"let s = \"abc\nlet t = 1", `"abc`, diag.LexUnterminatedString},
		{"/* abc", "/* abc", diag.LexUnterminatedBlockComment},
		{"foo)", ")", diag.LexUnmatchedCloser},
		{"(]", "]", diag.LexUnmatchedCloser},
		{"x = €", "€", diag.LexUnknownChar},
		{`"a \(b`, `"a \(b`, diag.LexUnterminatedString},
		{"#endif", "#endif", diag.LexUnmatchedCloser},
	}
	for _, tt := range tests {
		rep := &collectReporter{}
		toks := lexer.TokenizeWithOptions(tt.src, lexer.Options{Reporter: rep})
		findToken(t, toks, token.Error, tt.error, 0)
		found := false
		for _, c := range rep.codes {
			if c == tt.code {
				found = true
			}
		}
		if !found {
			t.Errorf("%q: codes %v do not contain %s", tt.src, rep.codes, tt.code.ID())
		}
		if got := token.Render(toks); got != tt.src {
			t.Errorf("%q: round trip %q", tt.src, got)
		}
	}
}

func TestDirectiveScopes(t *testing.T) {
	toks := lexer.Tokenize("#if DEBUG\nfoo()\n#elseif os(iOS)\n#else\n#endif")
	findToken(t, toks, token.StartOfScope, "#if", 0)
	findToken(t, toks, token.Keyword, "#elseif", 0)
	findToken(t, toks, token.Keyword, "#else", 0)
	findToken(t, toks, token.EndOfScope, "#endif", 0)
}

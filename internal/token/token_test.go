package token_test

import (
	"testing"

	"swiftfmt/internal/token"
)

func TestRender(t *testing.T) {
	toks := []token.Token{
		token.New(token.Keyword, "let"),
		token.New(token.Space, " "),
		token.New(token.Identifier, "x"),
		token.New(token.Space, " "),
		token.NewOperator("=", token.Infix),
		token.New(token.Space, " "),
		token.New(token.Number, "1"),
		token.New(token.Linebreak, "\n"),
	}
	if got := token.Render(toks); got != "let x = 1\n" {
		t.Fatalf("Render = %q", got)
	}
}

func TestIsAssignment(t *testing.T) {
	cases := map[string]bool{
		"=": true, "+=": true, "<<=": true, "??=": true,
		"==": false, "!=": false, "<=": false, ">=": false, "===": false, "+": false,
	}
	for text, want := range cases {
		if got := token.NewOperator(text, token.Infix).IsAssignment(); got != want {
			t.Fatalf("IsAssignment(%q) = %v, want %v", text, got, want)
		}
	}
	if token.NewOperator("=", token.Prefix).IsAssignment() {
		t.Fatalf("prefix = must not be assignment")
	}
}

func TestClosingFor(t *testing.T) {
	cases := map[string]string{
		"(": ")", "[": "]", "{": "}", "<": ">", `\(`: ")", `\#(`: ")",
		`"`: `"`, `"""`: `"""`, `#"`: `"#`, `##"""`: `"""##`, "#if": "#endif",
		"x": "",
	}
	for open, want := range cases {
		if got := token.ClosingFor(open); got != want {
			t.Fatalf("ClosingFor(%q) = %q, want %q", open, got, want)
		}
	}
}

func TestIsOperand(t *testing.T) {
	operands := []token.Token{
		token.New(token.Identifier, "foo"),
		token.New(token.Number, "1"),
		token.New(token.Keyword, "self"),
		token.New(token.EndOfScope, ")"),
		token.NewOperator("!", token.Postfix),
	}
	for _, tok := range operands {
		if !tok.IsOperand() {
			t.Fatalf("%v %q should be an operand", tok.Kind, tok.Text)
		}
	}
	non := []token.Token{
		token.New(token.Keyword, "return"),
		token.NewOperator("+", token.Infix),
		token.New(token.StartOfScope, "("),
		token.New(token.EndOfScope, "#endif"),
	}
	for _, tok := range non {
		if tok.IsOperand() {
			t.Fatalf("%v %q must not be an operand", tok.Kind, tok.Text)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	for _, kw := range []string{"func", "let", "try", "await", "case", "Self"} {
		if !token.LookupKeyword(kw) {
			t.Fatalf("LookupKeyword(%q) = false", kw)
		}
	}
	for _, id := range []string{"async", "get", "set", "didSet", "actor", "Func"} {
		if token.LookupKeyword(id) {
			t.Fatalf("LookupKeyword(%q) = true, want false", id)
		}
	}
}

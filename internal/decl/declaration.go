// Package decl splits a token stream into a tree of declarations.
//
// The tree is a disposable view: it is valid only for the stream it was
// built from and must be rebuilt after any edit. The concatenation of every
// declaration's tokens, in order, always reproduces the input exactly.
package decl

import (
	"errors"
	"strings"

	"swiftfmt/internal/token"
)

// ErrPartition reports that the declarations do not reassemble to the input.
var ErrPartition = errors.New("declaration partition does not reproduce the token stream")

// Kind is the category of a declaration.
type Kind uint8

const (
	// Statement is top-level code or anything without a declaration keyword.
	Statement Kind = iota
	Import
	Type
	Func
	Variable
	Case
	Typealias
	Operator
	Conditional
	// Trivia holds a file made of comments and whitespace only.
	Trivia
)

var kindNames = [...]string{
	Statement:   "statement",
	Import:      "import",
	Type:        "type",
	Func:        "func",
	Variable:    "variable",
	Case:        "case",
	Typealias:   "typealias",
	Operator:    "operator",
	Conditional: "conditional",
	Trivia:      "trivia",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Declaration is one node of the tree.
//
// Open holds everything before the body: leading comments and blank lines,
// attributes, modifiers, the keyword and signature and the opening '{' with
// the rest of its line. Introducer is the prefix of Open before the keyword.
// Leaf declarations keep all their tokens in Open. Close holds the trailing
// trivia inside the body, the closing '}' and the rest of its line.
type Declaration struct {
	Kind       Kind
	Keyword    string
	Modifiers  []string
	Name       string
	Introducer []token.Token
	Open       []token.Token
	Body       []Declaration
	Close      []token.Token
	Start, End int // token range [Start, End) in the parsed stream

	body bool
}

// HasBody reports whether the declaration was parsed with nested declarations.
// A body may be empty, and a non-final #if branch has no Close tokens.
func (d *Declaration) HasBody() bool { return d.body }

// Tokens returns the declaration's tokens with nested bodies in order.
func (d *Declaration) Tokens() []token.Token {
	out := make([]token.Token, 0, d.End-d.Start)
	out = append(out, d.Open...)
	for i := range d.Body {
		out = append(out, d.Body[i].Tokens()...)
	}
	return append(out, d.Close...)
}

// String renders the declaration's source text.
func (d *Declaration) String() string { return token.Render(d.Tokens()) }

// Signature returns the keyword line without the introducer, trimmed.
func (d *Declaration) Signature() string {
	sig := token.Render(d.Open[len(d.Introducer):])
	if i := strings.IndexAny(sig, "\r\n"); i >= 0 {
		sig = sig[:i]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sig), "{"))
}

// Walk visits declarations depth first, parents before children.
func Walk(decls []Declaration, fn func(d *Declaration, depth int)) {
	walk(decls, 0, fn)
}

func walk(decls []Declaration, depth int, fn func(d *Declaration, depth int)) {
	for i := range decls {
		fn(&decls[i], depth)
		walk(decls[i].Body, depth+1, fn)
	}
}

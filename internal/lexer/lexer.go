package lexer

import (
	"unicode/utf8"

	"swiftfmt/internal/diag"
	"swiftfmt/internal/token"
)

type scopeKind uint8

const (
	scopeBracket   scopeKind = iota // ( [ {
	scopeInterp                     // \( \#(
	scopeString                     // " """ #" #"""
	scopeDirective                  // #if
)

type scopeEntry struct {
	kind      scopeKind
	text      string // текст открывающего токена
	index     int    // индекс открывающего токена в lx.toks
	off       int    // байтовое смещение открывающего токена
	hashes    int    // число '#' у raw-строк
	multiline bool
}

// Lexer converts Swift source text into an exhaustive token slice.
// It never fails: anomalies become token.Error and are reported.
type Lexer struct {
	cursor Cursor
	opts   Options
	toks   []token.Token
	stack  []scopeEntry
}

func New(src string, opts Options) *Lexer {
	return &Lexer{
		cursor: NewCursor(src),
		opts:   opts,
		toks:   make([]token.Token, 0, len(src)/3+1),
	}
}

// Tokenize is the pure entry point: render(Tokenize(s)) == s for every s.
func Tokenize(src string) []token.Token {
	return TokenizeWithOptions(src, Options{})
}

// TokenizeWithOptions tokenizes src and reports anomalies to opts.Reporter.
func TokenizeWithOptions(src string, opts Options) []token.Token {
	return New(src, opts).Run()
}

// Run lexes the whole input and returns the tokens.
func (lx *Lexer) Run() []token.Token {
	for !lx.cursor.EOF() {
		if top, ok := lx.top(); ok && top.kind == scopeString {
			lx.scanStringBody(top)
			continue
		}
		lx.next()
	}
	lx.finish()

	// Пост-проходы: порядок важен, фиксность операторов зависит от
	// ключевых слов и от того, какие '<' стали скобками дженериков.
	lx.demoteKeywords()
	lx.convertGenerics()
	lx.resolveFixity()
	return lx.toks
}

func (lx *Lexer) next() {
	b := lx.cursor.Peek()
	switch {
	case b == ' ' || b == '\t' || b == '\v' || b == '\f':
		lx.scanSpace()
	case b == '\n' || b == '\r':
		lx.scanLinebreak()
	case b == '/' && (lx.cursor.PeekAt(1) == '/' || lx.cursor.PeekAt(1) == '*'):
		lx.scanComment()
	case b == '#' && lx.cursor.Off == 0 && lx.cursor.PeekAt(1) == '!':
		lx.scanShebang()
	case b == '"':
		lx.openString(lx.cursor.Mark(), 0)
	case b == '#':
		lx.scanHash()
	case b == '@':
		lx.scanAttribute()
	case b == '`':
		lx.scanBacktick()
	case isDec(b):
		lx.scanNumber()
	case isIdentStartByte(b):
		lx.scanIdentOrKeyword()
	case b >= utf8.RuneSelf:
		r, _ := lx.cursor.PeekRune()
		switch {
		case isOperatorStartRune(r):
			lx.scanOperator()
		case isIdentStartRune(r):
			lx.scanIdentOrKeyword()
		default:
			lx.unknown()
		}
	case isOperatorStartByte(b) || b == '.':
		lx.scanOperator()
	default:
		lx.scanPunct()
	}
}

// emit appends a token spanning from start to the cursor and returns its index.
func (lx *Lexer) emit(kind token.Kind, start Mark) int {
	lx.toks = append(lx.toks, token.New(kind, lx.cursor.TextFrom(start)))
	return len(lx.toks) - 1
}

func (lx *Lexer) unknown() {
	start := lx.cursor.Mark()
	lx.cursor.BumpRune()
	lx.emit(token.Error, start)
	lx.errLex(diag.LexUnknownChar, int(start), lx.cursor.Off, "unknown character")
}

func (lx *Lexer) top() (scopeEntry, bool) {
	if len(lx.stack) == 0 {
		return scopeEntry{}, false
	}
	return lx.stack[len(lx.stack)-1], true
}

func (lx *Lexer) push(e scopeEntry) {
	lx.stack = append(lx.stack, e)
}

func (lx *Lexer) pop() {
	lx.stack = lx.stack[:len(lx.stack)-1]
}

func (lx *Lexer) hasDirective() bool {
	for _, e := range lx.stack {
		if e.kind == scopeDirective {
			return true
		}
	}
	return false
}

// finish closes scopes still open at EOF. Unterminated strings collapse into
// one Error token; other openers stay as they are and are only reported.
func (lx *Lexer) finish() {
	if len(lx.stack) == 0 {
		return
	}
	lowest := -1
	for i, e := range lx.stack {
		if e.kind == scopeString {
			lowest = i
			break
		}
	}
	keep := len(lx.stack)
	if lowest >= 0 {
		keep = lowest
		lx.unterminatedString(lx.stack[lowest])
	}
	for _, e := range lx.stack[:keep] {
		lx.report(diag.LexUnclosedScope, diag.SevWarning, e.off, e.off+len(e.text), "'"+e.text+"' is never closed")
	}
	lx.stack = lx.stack[:0]
}

// unterminatedString replaces every token from the string opener onwards with
// a single Error token holding the same text, and drops the scopes it covered.
func (lx *Lexer) unterminatedString(e scopeEntry) {
	text := token.Render(lx.toks[e.index:])
	lx.toks = append(lx.toks[:e.index], token.New(token.Error, text))
	for i := len(lx.stack) - 1; i >= 0; i-- {
		if lx.stack[i].index >= e.index {
			lx.stack = lx.stack[:i]
		}
	}
	lx.errLex(diag.LexUnterminatedString, e.off, lx.cursor.Off, "unterminated string literal")
}

package lexer

import (
	"swiftfmt/internal/diag"
	"swiftfmt/internal/token"
)

// scanIdentRunes съедает хвост идентификатора после первого символа.
func (lx *Lexer) scanIdentRunes() {
	for {
		r, sz := lx.cursor.PeekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			return
		}
		lx.cursor.BumpRune()
	}
}

// scanIdentOrKeyword сканирует идентификатор и проверяет через LookupKeyword.
// Контекстные слова (get, set, async, ...) остаются идентификаторами.
func (lx *Lexer) scanIdentOrKeyword() {
	start := lx.cursor.Mark()
	lx.cursor.BumpRune()
	lx.scanIdentRunes()
	kind := token.Identifier
	if token.LookupKeyword(lx.cursor.TextFrom(start)) {
		kind = token.Keyword
	}
	lx.emit(kind, start)
}

// scanBacktick: `default` это экранированное ключевое слово, всегда Identifier.
func (lx *Lexer) scanBacktick() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	r, sz := lx.cursor.PeekRune()
	if sz > 0 && isIdentStartRune(r) {
		lx.cursor.BumpRune()
		lx.scanIdentRunes()
		if lx.cursor.Eat('`') {
			lx.emit(token.Identifier, start)
			return
		}
	}
	lx.cursor.Reset(start)
	lx.cursor.Bump()
	lx.emit(token.Error, start)
	lx.errLex(diag.LexUnknownChar, int(start), lx.cursor.Off, "unterminated backtick identifier")
}

// scanHash handles raw strings (#"...", ##"""...), #if/#endif scopes and
// other #keywords (#else, #available, #selector, ...).
func (lx *Lexer) scanHash() {
	start := lx.cursor.Mark()
	hashes := 0
	for lx.cursor.PeekAt(hashes) == '#' {
		hashes++
	}
	if lx.cursor.PeekAt(hashes) == '"' {
		lx.cursor.Off += hashes
		lx.openString(start, hashes)
		return
	}

	lx.cursor.Bump()
	r, sz := lx.cursor.PeekRune()
	if hashes != 1 || sz == 0 || !isIdentStartRune(r) {
		lx.emit(token.Error, start)
		lx.errLex(diag.LexUnknownChar, int(start), lx.cursor.Off, "unexpected '#'")
		return
	}
	lx.cursor.BumpRune()
	lx.scanIdentRunes()

	switch lx.cursor.TextFrom(start) {
	case "#if":
		i := lx.emit(token.StartOfScope, start)
		lx.push(scopeEntry{kind: scopeDirective, text: "#if", index: i, off: int(start)})
	case "#endif":
		if top, ok := lx.top(); ok && top.kind == scopeDirective {
			lx.emit(token.EndOfScope, start)
			lx.pop()
			return
		}
		if lx.hasDirective() {
			// #if ... { #else ... { #endif }: ветки рвут вложенность скобок,
			// оставляем #endif ключевым словом.
			lx.emit(token.Keyword, start)
			return
		}
		lx.emit(token.Error, start)
		lx.errLex(diag.LexUnmatchedCloser, int(start), lx.cursor.Off, "#endif without #if")
	default:
		lx.emit(token.Keyword, start)
	}
}

// scanAttribute: @objc, @available, @MainActor, ...
func (lx *Lexer) scanAttribute() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	r, sz := lx.cursor.PeekRune()
	if sz == 0 || !isIdentStartRune(r) {
		lx.emit(token.Error, start)
		lx.errLex(diag.LexUnknownChar, int(start), lx.cursor.Off, "'@' must be followed by an attribute name")
		return
	}
	lx.cursor.BumpRune()
	lx.scanIdentRunes()
	lx.emit(token.Attribute, start)
}

package lexer

import (
	"swiftfmt/internal/diag"
	"swiftfmt/internal/token"
)

// scanOperator реализует maximal munch по множеству символов операторов.
// Точки допустимы внутри оператора только если он начинается с точки:
// "...", "..<", ".&", но "?." это два токена.
// Фиксность выставляется позже в resolveFixity.
func (lx *Lexer) scanOperator() {
	start := lx.cursor.Mark()
	first, _ := lx.cursor.PeekRune()

	// try? try! as? as!: вопрос/восклицание сразу после ключевого слова
	if (first == '?' || first == '!') && lx.afterKeyword("try", "as") {
		lx.cursor.Bump()
		lx.emit(token.Operator, start)
		return
	}

	dotted := first == '.'
	lx.cursor.BumpRune()
	for !lx.cursor.EOF() {
		if lx.cursor.HasPrefix("//") || lx.cursor.HasPrefix("/*") {
			break
		}
		r, sz := lx.cursor.PeekRune()
		if sz == 0 {
			break
		}
		if r == '.' {
			if !dotted {
				break
			}
		} else if !isOperatorContinueRune(r) {
			break
		}
		lx.cursor.BumpRune()
	}
	lx.emit(token.Operator, start)
}

// afterKeyword reports whether the previous token is one of the keywords,
// with nothing in between.
func (lx *Lexer) afterKeyword(words ...string) bool {
	if len(lx.toks) == 0 {
		return false
	}
	prev := lx.toks[len(lx.toks)-1]
	for _, w := range words {
		if prev.IsKeyword(w) {
			return true
		}
	}
	return false
}

// scanPunct: скобки, разделители и обратный слеш key path.
func (lx *Lexer) scanPunct() {
	start := lx.cursor.Mark()
	ch := lx.cursor.Bump()
	switch ch {
	case '(', '[', '{':
		i := lx.emit(token.StartOfScope, start)
		lx.push(scopeEntry{kind: scopeBracket, text: lx.toks[i].Text, index: i, off: int(start)})
	case ')', ']', '}':
		lx.closeScope(start, ch)
	case ',', ';', ':':
		lx.emit(token.Delimiter, start)
	case '\\':
		// \Type.path: key path
		lx.emit(token.Operator, start)
	default:
		lx.cursor.Reset(start)
		lx.unknown()
	}
}

func (lx *Lexer) closeScope(start Mark, ch byte) {
	top, ok := lx.top()
	if ok {
		switch {
		case top.kind == scopeBracket && token.ClosingFor(top.text) == string(ch),
			top.kind == scopeInterp && ch == ')':
			lx.emit(token.EndOfScope, start)
			lx.pop()
			return
		}
	}
	lx.emit(token.Error, start)
	lx.errLex(diag.LexUnmatchedCloser, int(start), lx.cursor.Off, "unmatched '"+string(ch)+"'")
}

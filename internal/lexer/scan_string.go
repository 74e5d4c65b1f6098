package lexer

import (
	"strings"

	"swiftfmt/internal/token"
)

// openString emits the string opener starting at start (which covers any
// leading '#') and pushes a string scope. The cursor sits on the first quote.
func (lx *Lexer) openString(start Mark, hashes int) {
	multiline := lx.cursor.EatString(`"""`)
	if !multiline {
		lx.cursor.Bump()
	}
	i := lx.emit(token.StartOfScope, start)
	lx.push(scopeEntry{
		kind:      scopeString,
		text:      lx.toks[i].Text,
		index:     i,
		off:       int(start),
		hashes:    hashes,
		multiline: multiline,
	})
}

// scanStringBody scans literal text of the string on top of the stack until
// the closing delimiter, an interpolation, a line break or EOF.
// Interpolations \( ... ) are lexed as ordinary tokens under a scopeInterp
// entry; the matching ')' returns control here.
func (lx *Lexer) scanStringBody(e scopeEntry) {
	pounds := strings.Repeat("#", e.hashes)
	closer := `"` + pounds
	if e.multiline {
		closer = `"""` + pounds
	}
	escape := `\` + pounds

	start := lx.cursor.Mark()
	flush := func() {
		if lx.cursor.Off > int(start) {
			lx.emit(token.StringBody, start)
		}
	}

	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case b == '\n' || b == '\r':
			flush()
			if !e.multiline {
				lx.unterminatedString(e)
				return
			}
			lx.scanLinebreak()
			return

		case lx.cursor.HasPrefix(escape):
			if lx.cursor.PeekAt(len(escape)) == '(' {
				flush()
				m := lx.cursor.Mark()
				lx.cursor.Off += len(escape) + 1
				i := lx.emit(token.StartOfScope, m)
				lx.push(scopeEntry{kind: scopeInterp, text: lx.toks[i].Text, index: i, off: int(m)})
				return
			}
			lx.cursor.Off += len(escape)
			// экранированный символ; перевод строки остаётся отдельным токеном
			if c := lx.cursor.Peek(); c != '\n' && c != '\r' {
				lx.cursor.BumpRune()
			}

		case lx.cursor.HasPrefix(closer):
			flush()
			m := lx.cursor.Mark()
			lx.cursor.Off += len(closer)
			lx.emit(token.EndOfScope, m)
			lx.pop()
			return

		default:
			lx.cursor.BumpRune()
		}
	}
	flush()
}

package lexer

import (
	"swiftfmt/internal/diag"
	"swiftfmt/internal/token"
)

// Поддержка: 0, 1_000, 0b..., 0o..., 0x..., 1.0, 1e-3, 0x1p4, 0x1.8p-2.
// Swift не допускает ".5" и "1.", поэтому точка входит в число
// только если за ней цифра.
// Неверные формы (0x, 1abc, 1e) дают один Error-токен на весь фрагмент.
func (lx *Lexer) scanNumber() {
	start := lx.cursor.Mark()
	bad := false

	digits := func(ok func(byte) bool) int {
		n := 0
		for {
			b := lx.cursor.Peek()
			if !ok(b) && b != '_' {
				return n
			}
			lx.cursor.Bump()
			n++
		}
	}
	isBin := func(b byte) bool { return b == '0' || b == '1' }
	isOct := func(b byte) bool { return b >= '0' && b <= '7' }

	b0, b1, _ := lx.cursor.Peek2()
	switch {
	case b0 == '0' && b1 == 'b':
		lx.cursor.Off += 2
		bad = digits(isBin) == 0
	case b0 == '0' && b1 == 'o':
		lx.cursor.Off += 2
		bad = digits(isOct) == 0
	case b0 == '0' && b1 == 'x':
		lx.cursor.Off += 2
		bad = digits(isHex) == 0
		if lx.cursor.Peek() == '.' && isHex(lx.cursor.PeekAt(1)) {
			// hex-дробь без экспоненты p означает member access: 0xFF.description
			m := lx.cursor.Mark()
			lx.cursor.Bump()
			digits(isHex)
			if b := lx.cursor.Peek(); b != 'p' && b != 'P' {
				lx.cursor.Reset(m)
			}
		}
		if b := lx.cursor.Peek(); b == 'p' || b == 'P' {
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); b == '+' || b == '-' {
				lx.cursor.Bump()
			}
			bad = bad || digits(isDec) == 0
		}
	default:
		digits(isDec)
		// дробная часть
		if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
			lx.cursor.Bump()
			digits(isDec)
		}
		// экспонента
		if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); b == '+' || b == '-' {
				lx.cursor.Bump()
			}
			bad = digits(isDec) == 0
		}
	}

	// хвост из букв (1abc, 0xZZ) это ошибка, но текст сохраняем
	if r, sz := lx.cursor.PeekRune(); sz > 0 && isIdentContinueRune(r) {
		bad = true
		lx.scanIdentRunes()
	}
	if bad {
		lx.emit(token.Error, start)
		lx.errLex(diag.LexBadNumber, int(start), lx.cursor.Off, "malformed number literal")
		return
	}
	lx.emit(token.Number, start)
}

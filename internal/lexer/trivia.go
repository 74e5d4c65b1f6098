package lexer

import (
	"strings"

	"swiftfmt/internal/diag"
	"swiftfmt/internal/token"
)

// scanSpace коалесцирует подряд идущие пробелы и табы в один токен.
func (lx *Lexer) scanSpace() {
	start := lx.cursor.Mark()
	for {
		b := lx.cursor.Peek()
		if b != ' ' && b != '\t' && b != '\v' && b != '\f' {
			break
		}
		lx.cursor.Bump()
	}
	lx.emit(token.Space, start)
}

// scanLinebreak emits one token per line terminator: \n, \r or \r\n.
func (lx *Lexer) scanLinebreak() {
	start := lx.cursor.Mark()
	if lx.cursor.Bump() == '\r' {
		lx.cursor.Eat('\n')
	}
	lx.emit(token.Linebreak, start)
}

// //... , ///... , /*...*/ , /**...*/
func (lx *Lexer) scanComment() {
	start := lx.cursor.Mark()
	if lx.cursor.EatString("//") {
		for !lx.cursor.EOF() {
			b := lx.cursor.Peek()
			if b == '\n' || b == '\r' {
				break
			}
			lx.cursor.Bump()
		}
		i := lx.emit(token.Comment, start)
		text := lx.toks[i].Text
		lx.toks[i].Doc = strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////")
		return
	}

	// "/* ... */" с вложенностью
	lx.cursor.EatString("/*")
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		switch {
		case lx.cursor.EatString("/*"):
			depth++
		case lx.cursor.EatString("*/"):
			depth--
		default:
			lx.cursor.BumpRune()
		}
	}
	if depth > 0 {
		lx.emit(token.Error, start)
		lx.errLex(diag.LexUnterminatedBlockComment, int(start), lx.cursor.Off, "unterminated block comment")
		return
	}
	i := lx.emit(token.Comment, start)
	text := lx.toks[i].Text
	lx.toks[i].Doc = strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/***") && text != "/**/"
}

// #!/usr/bin/env swift в первой строке считается комментарием.
func (lx *Lexer) scanShebang() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' {
			break
		}
		lx.cursor.Bump()
	}
	lx.emit(token.Comment, start)
}

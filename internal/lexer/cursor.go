package lexer

import (
	"strings"
	"unicode/utf8"
)

// Cursor представляет собой позицию в исходном тексте
type Cursor struct {
	Src string
	Off int
}

// NewCursor creates a new cursor at the start of src.
func NewCursor(src string) Cursor {
	return Cursor{Src: src}
}

// EOF проверяет, достигнут ли конец текста
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Src)
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	return c.PeekAt(0)
}

// PeekAt читает байт со смещением n от текущей позиции, иначе 0
func (c *Cursor) PeekAt(n int) byte {
	if c.Off+n >= len(c.Src) || c.Off+n < 0 {
		return 0
	}
	return c.Src[c.Off+n]
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= len(c.Src) {
		return 0, 0, false
	}
	return c.Src[c.Off], c.Src[c.Off+1], true
}

// PeekRune decodes the rune at the cursor. size is 0 at EOF.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	b := c.Src[c.Off]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(c.Src[c.Off:])
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Src[c.Off]
	c.Off++
	return b
}

// BumpRune перемещает курсор на одну руну (на один байт для невалидного UTF-8).
func (c *Cursor) BumpRune() {
	_, sz := c.PeekRune()
	if sz == 0 {
		return
	}
	c.Off += sz
}

// Mark это метка начала читаемого фрагмента
type Mark int

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// TextFrom возвращает исходный текст от метки до курсора
func (c *Cursor) TextFrom(m Mark) string {
	return c.Src[int(m):c.Off]
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = int(m)
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// HasPrefix reports whether the remaining text starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	return strings.HasPrefix(c.Src[c.Off:], s)
}

// EatString consumes s if the remaining text starts with it.
func (c *Cursor) EatString(s string) bool {
	if !c.HasPrefix(s) {
		return false
	}
	c.Off += len(s)
	return true
}

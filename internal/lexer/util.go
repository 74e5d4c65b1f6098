package lexer

import (
	"unicode"
	"unicode/utf8"
)

// ===== Классификаторы =====

func isIdentStartByte(b byte) bool {
	return b == '_' || b == '$' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isIdentStartRune(r rune) bool {
	if r < 0x80 {
		return isIdentStartByte(byte(r))
	}
	if r == utf8.RuneError || isOperatorStartRune(r) {
		return false
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.So, r) || unicode.Is(unicode.Sk, r)
}

func isIdentContinueRune(r rune) bool {
	if r < 0x80 {
		return isIdentContinueByte(byte(r))
	}
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) ||
		r == 0x200D || (r >= 0xFE00 && r <= 0xFE0F)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

// operatorHeads lists the ranges Swift allows at the start of an operator.
var operatorHeads = []struct{ lo, hi rune }{
	{0x00A1, 0x00A7}, {0x00A9, 0x00A9}, {0x00AB, 0x00AC}, {0x00AE, 0x00AE},
	{0x00B0, 0x00B1}, {0x00B6, 0x00B6}, {0x00BB, 0x00BB}, {0x00BF, 0x00BF},
	{0x00D7, 0x00D7}, {0x00F7, 0x00F7}, {0x2016, 0x2017}, {0x2020, 0x2027},
	{0x2030, 0x203E}, {0x2041, 0x2053}, {0x2055, 0x205E}, {0x2190, 0x23FF},
	{0x2500, 0x2775}, {0x2794, 0x2BFF}, {0x2E00, 0x2E7F}, {0x3001, 0x3003},
	{0x3008, 0x3020}, {0x3030, 0x3030},
}

// operatorTails are combining marks allowed after an operator head.
var operatorTails = []struct{ lo, hi rune }{
	{0x0300, 0x036F}, {0x1DC0, 0x1DFF}, {0x20D0, 0x20FF}, {0xFE00, 0xFE0F},
	{0xFE20, 0xFE2F}, {0xE0100, 0xE01EF},
}

func inRanges(r rune, ranges []struct{ lo, hi rune }) bool {
	for _, rg := range ranges {
		if r >= rg.lo && r <= rg.hi {
			return true
		}
	}
	return false
}

func isOperatorStartByte(b byte) bool {
	switch b {
	case '/', '=', '-', '+', '!', '*', '%', '<', '>', '&', '|', '^', '~', '?':
		return true
	}
	return false
}

func isOperatorStartRune(r rune) bool {
	if r < 0x80 {
		return isOperatorStartByte(byte(r))
	}
	return inRanges(r, operatorHeads)
}

func isOperatorContinueRune(r rune) bool {
	return isOperatorStartRune(r) || inRanges(r, operatorTails)
}

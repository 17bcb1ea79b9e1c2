package lexer

import "github.com/gnolang/groqlint/internal/types"

// scanNumber accepts 12, 1.5, 1e10, 1.5E-3. A '.' is only part of the number
// when a digit follows, so 1..5 stays a range.
func (lx *Lexer) scanNumber() (Token, error) {
	start := lx.off
	for lx.off < len(lx.src) && isDigit(lx.src[lx.off]) {
		lx.off++
	}

	if lx.off < len(lx.src) && lx.src[lx.off] == '.' && isDigit(lx.peekAt(1)) {
		lx.off++
		for lx.off < len(lx.src) && isDigit(lx.src[lx.off]) {
			lx.off++
		}
	}

	if lx.off < len(lx.src) && (lx.src[lx.off] == 'e' || lx.src[lx.off] == 'E') {
		lx.off++
		if lx.off < len(lx.src) && (lx.src[lx.off] == '+' || lx.src[lx.off] == '-') {
			lx.off++
		}
		if lx.off >= len(lx.src) || !isDigit(lx.src[lx.off]) {
			return Token{}, &types.LexError{
				Pos: types.NewSpan(start, lx.off),
				Msg: "expected digit after exponent",
			}
		}
		for lx.off < len(lx.src) && isDigit(lx.src[lx.off]) {
			lx.off++
		}
	}

	return Token{Kind: Number, Text: lx.src[start:lx.off], Span: types.NewSpan(start, lx.off)}, nil
}

package lexer

import "github.com/gnolang/groqlint/internal/types"

func (lx *Lexer) scanOperator() (Token, error) {
	start := lx.off
	c := lx.src[lx.off]
	next := lx.peekAt(1)

	kind := Invalid
	size := 1
	switch c {
	case '*':
		kind = Star
		if next == '*' {
			kind, size = StarStar, 2
		}
	case '@':
		kind = At
	case '^':
		kind = Caret
	case '.':
		kind = Dot
		if next == '.' {
			kind, size = DotDot, 2
			if lx.peekAt(2) == '.' {
				kind, size = Ellipsis, 3
			}
		}
	case '-':
		kind = Minus
		if next == '>' {
			kind, size = Arrow, 2
		}
	case '=':
		switch next {
		case '=':
			kind, size = Eq, 2
		case '>':
			kind, size = FatArrow, 2
		}
	case '!':
		kind = Not
		if next == '=' {
			kind, size = NotEq, 2
		}
	case '<':
		kind = Lt
		if next == '=' {
			kind, size = LtEq, 2
		}
	case '>':
		kind = Gt
		if next == '=' {
			kind, size = GtEq, 2
		}
	case '&':
		if next == '&' {
			kind, size = AndAnd, 2
		}
	case '|':
		kind = Pipe
		if next == '|' {
			kind, size = OrOr, 2
		}
	case '+':
		kind = Plus
	case '/':
		kind = Slash
	case '%':
		kind = Percent
	case ',':
		kind = Comma
	case ':':
		kind = Colon
		if next == ':' {
			kind, size = ColonColon, 2
		}
	case '(':
		kind = LParen
	case ')':
		kind = RParen
	case '[':
		kind = LBracket
	case ']':
		kind = RBracket
	case '{':
		kind = LBrace
	case '}':
		kind = RBrace
	}

	if kind == Invalid {
		return Token{}, lx.unexpected()
	}
	lx.off += size
	return Token{Kind: kind, Text: lx.src[start:lx.off], Span: types.NewSpan(start, lx.off)}, nil
}

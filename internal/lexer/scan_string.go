package lexer

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/gnolang/groqlint/internal/types"
)

func (lx *Lexer) scanString() (Token, error) {
	start := lx.off
	quote := lx.src[lx.off]
	lx.off++
	for lx.off < len(lx.src) {
		c := lx.src[lx.off]
		switch c {
		case quote:
			lx.off++
			return Token{Kind: String, Text: lx.src[start:lx.off], Span: types.NewSpan(start, lx.off)}, nil
		case '\\':
			if err := lx.scanEscape(); err != nil {
				return Token{}, err
			}
		default:
			lx.off++
		}
	}
	return Token{}, &types.LexError{
		Pos: types.NewSpan(start, lx.off),
		Msg: "unterminated string literal",
	}
}

// scanEscape validates one escape sequence starting at the backslash.
func (lx *Lexer) scanEscape() error {
	start := lx.off
	lx.off++ // '\'
	if lx.off >= len(lx.src) {
		return &types.LexError{Pos: types.NewSpan(start, lx.off), Msg: "unterminated string literal"}
	}
	switch lx.src[lx.off] {
	case '\\', '"', '\'', '/', 'b', 'f', 'n', 'r', 't':
		lx.off++
		return nil
	case 'u':
		lx.off++
		if _, n, ok := decodeUnicodeEscape(lx.src[lx.off:]); ok {
			lx.off += n
			return nil
		}
	}
	// report the whole offending character, never half of a UTF-8 sequence
	_, size := utf8.DecodeRuneInString(lx.src[lx.off:])
	return &types.LexError{
		Pos: types.NewSpan(start, lx.off+size),
		Msg: "invalid escape sequence",
	}
}

// decodeUnicodeEscape parses the part after `\u`: either XXXX or {X...}.
func decodeUnicodeEscape(s string) (rune, int, bool) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 || end > 7 {
			return 0, 0, false
		}
		for i := 1; i < end; i++ {
			if !isHex(s[i]) {
				return 0, 0, false
			}
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0, false
		}
		return rune(v), end + 1, true
	}
	if len(s) < 4 {
		return 0, 0, false
	}
	for i := 0; i < 4; i++ {
		if !isHex(s[i]) {
			return 0, 0, false
		}
	}
	v, _ := strconv.ParseUint(s[:4], 16, 32)
	return rune(v), 4, true
}

// Unquote decodes the text of a String token.
func Unquote(text string) (string, error) {
	if len(text) < 2 || (text[0] != '"' && text[0] != '\'') || text[len(text)-1] != text[0] {
		return "", &types.LexError{Pos: types.NewSpan(0, len(text)), Msg: "malformed string literal"}
	}
	body := text[1 : len(text)-1]
	if strings.IndexByte(body, '\\') < 0 {
		return body, nil
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", &types.LexError{Pos: types.NewSpan(i, i+1), Msg: "invalid escape sequence"}
		}
		switch body[i] {
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			r, n, ok := decodeUnicodeEscape(body[i+1:])
			if !ok {
				return "", &types.LexError{Pos: types.NewSpan(i, i+1), Msg: "invalid escape sequence"}
			}
			i += n
			if utf16.IsSurrogate(r) && strings.HasPrefix(body[i+1:], `\u`) {
				if r2, n2, ok := decodeUnicodeEscape(body[i+3:]); ok {
					if dec := utf16.DecodeRune(r, r2); dec != utf8.RuneError {
						r = dec
						i += 2 + n2
					}
				}
			}
			b.WriteRune(r)
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String(), nil
}

// Quote renders s as a double-quoted GROQ string literal with minimal escaping.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(s[i])
			i++
			continue
		}
		i += size
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				b.WriteString(`\u`)
				b.WriteString(leftPadHex(r))
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func leftPadHex(r rune) string {
	h := strconv.FormatInt(int64(r), 16)
	if len(h) < 4 {
		h = strings.Repeat("0", 4-len(h)) + h
	}
	return h
}

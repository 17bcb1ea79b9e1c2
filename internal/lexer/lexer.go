// Package lexer turns GROQ source text into a lazy stream of tokens.
package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/gnolang/groqlint/internal/types"
)

// Lexer produces tokens on demand. It stops at the first lexical error and
// keeps returning that error afterwards.
type Lexer struct {
	src      string
	off      int
	comments []Comment
	err      error
}

// New returns a lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

// Reset rewinds the lexer to the start of its input.
func (lx *Lexer) Reset() {
	lx.off = 0
	lx.comments = nil
	lx.err = nil
}

// Source returns the text being tokenized.
func (lx *Lexer) Source() string { return lx.src }

// Comments returns the comments seen so far, in source order.
func (lx *Lexer) Comments() []Comment { return lx.comments }

// Next returns the next token. After the EOF token every call returns EOF again.
func (lx *Lexer) Next() (Token, error) {
	if lx.err != nil {
		return Token{}, lx.err
	}
	lx.skipTrivia()
	if lx.off >= len(lx.src) {
		return Token{Kind: EOF, Span: types.NewSpan(len(lx.src), len(lx.src))}, nil
	}

	var (
		tok Token
		err error
	)
	c := lx.src[lx.off]
	switch {
	case isIdentStart(c):
		tok = lx.scanIdent()
	case isDigit(c):
		tok, err = lx.scanNumber()
	case c == '"' || c == '\'':
		tok, err = lx.scanString()
	case c == '$':
		tok, err = lx.scanParam()
	default:
		tok, err = lx.scanOperator()
	}
	if err != nil {
		lx.err = err
		return Token{}, err
	}
	return tok, nil
}

// Tokenize drains the lexer. The returned slice always ends with EOF unless an
// error occurred.
func Tokenize(src string) ([]Token, []Comment, error) {
	lx := New(src)
	var toks []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return toks, lx.Comments(), err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, lx.Comments(), nil
		}
	}
}

func (lx *Lexer) skipTrivia() {
	for lx.off < len(lx.src) {
		c := lx.src[lx.off]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			lx.off++
		case c == '/' && lx.peekAt(1) == '/':
			start := lx.off
			for lx.off < len(lx.src) && lx.src[lx.off] != '\n' {
				lx.off++
			}
			end := lx.off
			if end > start && lx.src[end-1] == '\r' {
				end--
			}
			lx.comments = append(lx.comments, Comment{
				Text: lx.src[start:end],
				Span: types.NewSpan(start, end),
			})
		default:
			return
		}
	}
}

func (lx *Lexer) scanIdent() Token {
	start := lx.off
	for lx.off < len(lx.src) && isIdentPart(lx.src[lx.off]) {
		lx.off++
	}
	text := lx.src[start:lx.off]
	return Token{Kind: LookupKeyword(text), Text: text, Span: types.NewSpan(start, lx.off)}
}

func (lx *Lexer) scanParam() (Token, error) {
	start := lx.off
	lx.off++ // '$'
	if lx.off >= len(lx.src) || !isIdentStart(lx.src[lx.off]) {
		return Token{}, &types.LexError{
			Pos: types.NewSpan(start, lx.off),
			Msg: "expected parameter name after '$'",
		}
	}
	for lx.off < len(lx.src) && isIdentPart(lx.src[lx.off]) {
		lx.off++
	}
	return Token{Kind: Param, Text: lx.src[start:lx.off], Span: types.NewSpan(start, lx.off)}, nil
}

// unexpected reports the full (possibly multi-byte) character at the cursor.
func (lx *Lexer) unexpected() error {
	r, size := utf8.DecodeRuneInString(lx.src[lx.off:])
	msg := fmt.Sprintf("unexpected character %q", r)
	if r == utf8.RuneError && size <= 1 {
		msg = "invalid UTF-8 encoding"
		size = 1
	}
	return &types.LexError{Pos: types.NewSpan(lx.off, lx.off+size), Msg: msg}
}

func (lx *Lexer) peekAt(n int) byte {
	if lx.off+n < len(lx.src) {
		return lx.src[lx.off+n]
	}
	return 0
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isHex(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

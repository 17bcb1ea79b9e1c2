// Package parser builds GROQ syntax trees from source text.
//
// Binary and unary expressions use precedence climbing over the fixed table in
// precedence.go; structured forms (arrays, objects, projections, calls) are
// parsed by recursive descent. Parsing is all-or-nothing: the first error is
// returned and no partial tree is produced.
package parser

import (
	"fmt"

	"github.com/gnolang/groqlint/internal/ast"
	"github.com/gnolang/groqlint/internal/lexer"
	"github.com/gnolang/groqlint/internal/types"
)

// DefaultMaxDepth bounds how deeply expressions nest: parentheses, brackets,
// braces, call arguments and the operands of prefix or right-associative
// operators. Left-associative chains and traversal chains are parsed
// iteratively and are not limited.
const DefaultMaxDepth = 512

type config struct {
	maxDepth int
}

// Option configures a parse.
type Option func(*config)

// WithMaxDepth sets the maximum nesting depth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// Parser consumes tokens from a lexer.
type Parser struct {
	lx       *lexer.Lexer
	tok      lexer.Token
	ahead    []lexer.Token
	depth    int
	maxDepth int
}

// Parse parses src as a single GROQ query.
func Parse(src string, opts ...Option) (*ast.Query, error) {
	cfg := config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Parser{lx: lexer.New(src), maxDepth: cfg.maxDepth}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.Kind == lexer.EOF {
		return nil, &types.SyntaxError{
			Pos:      p.tok.Span,
			Expected: exprStart(),
			Msg:      "empty query",
		}
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.EOF {
		return nil, &types.SyntaxError{
			Pos:      p.tok.Span,
			Expected: []string{lexer.EOF.String()},
			Msg:      fmt.Sprintf("unexpected %s after expression", describe(p.tok)),
		}
	}

	return &ast.Query{
		Expr:     expr,
		Comments: p.lx.Comments(),
		Source:   src,
		Pos:      types.NewSpan(0, len(src)),
	}, nil
}

func (p *Parser) advance() error {
	if len(p.ahead) > 0 {
		p.tok = p.ahead[0]
		p.ahead = p.ahead[1:]
		return nil
	}
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// peek returns the token n positions after the current one (n >= 1).
func (p *Parser) peek(n int) (lexer.Token, error) {
	for len(p.ahead) < n {
		tok, err := p.lx.Next()
		if err != nil {
			return lexer.Token{}, err
		}
		p.ahead = append(p.ahead, tok)
	}
	return p.ahead[n-1], nil
}

// expect consumes a token of kind k and returns it.
func (p *Parser) expect(k lexer.Kind, context string) (lexer.Token, error) {
	if p.tok.Kind != k {
		return lexer.Token{}, p.unexpected(context, k.String())
	}
	tok := p.tok
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

func (p *Parser) unexpected(context string, expected ...string) error {
	msg := "unexpected " + describe(p.tok)
	if context != "" {
		msg += " " + context
	}
	return &types.SyntaxError{Pos: p.tok.Span, Expected: expected, Msg: msg}
}

// enter records one more level of nesting.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return &types.ResourceLimitError{Pos: p.tok.Span, Limit: p.maxDepth, What: "expression nesting"}
	}
	return nil
}

func (p *Parser) leave(n int) { p.depth -= n }

func describe(tok lexer.Token) string {
	switch tok.Kind {
	case lexer.EOF:
		return "end of input"
	case lexer.Ident, lexer.Param, lexer.Number, lexer.String:
		return fmt.Sprintf("%s %s", tok.Kind, tok.Text)
	}
	return fmt.Sprintf("%q", tok.Text)
}

func exprStart() []string {
	kinds := []lexer.Kind{
		lexer.Ident, lexer.String, lexer.Number, lexer.Param,
		lexer.True, lexer.False, lexer.Null,
		lexer.Star, lexer.At, lexer.Caret,
		lexer.LParen, lexer.LBracket, lexer.LBrace,
		lexer.Not, lexer.Minus, lexer.Plus,
	}
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	return out
}

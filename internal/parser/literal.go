package parser

import (
	"errors"
	"strconv"

	"github.com/gnolang/groqlint/internal/ast"
	"github.com/gnolang/groqlint/internal/lexer"
	"github.com/gnolang/groqlint/internal/types"
)

func isRangeErr(err error) bool {
	return errors.Is(err, strconv.ErrRange)
}

// parseArray parses `[a, ...b, c]`. A trailing comma is accepted.
func (p *Parser) parseArray() (ast.Node, error) {
	open := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	arr := &ast.Array{}
	for p.tok.Kind != lexer.RBracket {
		elem, err := p.parseSpreadOr(false)
		if err != nil {
			return nil, err
		}
		arr.Elems = append(arr.Elems, elem)
		if p.tok.Kind != lexer.Comma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.tok.Kind != lexer.RBracket {
		return nil, p.unexpected("in array", lexer.Comma.String(), lexer.RBracket.String())
	}
	arr.Pos = open.Span.Cover(p.tok.Span)
	if err := p.advance(); err != nil {
		return nil, err
	}
	return arr, nil
}

// parseObject parses `{"key": value, attr, ...spread, cond => {...}}`.
func (p *Parser) parseObject() (*ast.Object, error) {
	open := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	obj := &ast.Object{}
	for p.tok.Kind != lexer.RBrace {
		entry, err := p.parseObjectEntry()
		if err != nil {
			return nil, err
		}
		obj.Entries = append(obj.Entries, entry)
		if p.tok.Kind != lexer.Comma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.tok.Kind != lexer.RBrace {
		return nil, p.unexpected("in object", lexer.Comma.String(), lexer.RBrace.String())
	}
	obj.Pos = open.Span.Cover(p.tok.Span)
	if err := p.advance(); err != nil {
		return nil, err
	}
	return obj, nil
}

func (p *Parser) parseObjectEntry() (ast.Node, error) {
	if p.tok.Kind == lexer.String {
		next, err := p.peek(1)
		if err != nil {
			return nil, err
		}
		if next.Kind == lexer.Colon {
			return p.parseKeyedEntry()
		}
	}
	return p.parseSpreadOr(true)
}

func (p *Parser) parseKeyedEntry() (ast.Node, error) {
	keyTok := p.tok
	key, err := lexer.Unquote(keyTok.Text)
	if err != nil {
		return nil, &types.LexError{Pos: keyTok.Span, Msg: "malformed string literal"}
	}
	if err := p.advance(); err != nil { // key
		return nil, err
	}
	if err := p.advance(); err != nil { // ':'
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ObjectEntry{
		Key:    key,
		KeyRaw: keyTok.Text,
		KeyPos: keyTok.Span,
		Value:  value,
		Pos:    keyTok.Span.Cover(value.Span()),
	}, nil
}

// parseSpreadOr parses `...expr` or an expression. In objects a bare `...`
// spreads `@`.
func (p *Parser) parseSpreadOr(allowBare bool) (ast.Node, error) {
	if p.tok.Kind != lexer.Ellipsis {
		return p.parseExpr()
	}
	dots := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	if allowBare && (p.tok.Kind == lexer.Comma || p.tok.Kind == lexer.RBrace) {
		return &ast.Spread{Pos: dots.Span}, nil
	}
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Spread{X: x, Pos: dots.Span.Cover(x.Span())}, nil
}

// parseCall parses a call whose name token was already consumed; the current
// token is '(' or '::'.
func (p *Parser) parseCall(nameTok lexer.Token) (*ast.FuncCall, error) {
	call := &ast.FuncCall{Name: nameTok.Text, NamePos: nameTok.Span}
	if p.tok.Kind == lexer.ColonColon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.tok.Kind.IsWord() {
			return nil, p.unexpected("after '::'", lexer.Ident.String())
		}
		call.Namespace = nameTok.Text
		call.Name = p.tok.Text
		call.NamePos = nameTok.Span.Cover(p.tok.Span)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.LParen, "in function call"); err != nil {
		return nil, err
	}

	for p.tok.Kind != lexer.RParen {
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		if p.tok.Kind == lexer.RParen {
			break
		}
		if p.tok.Kind != lexer.Comma {
			return nil, p.unexpected("in argument list", lexer.Comma.String(), lexer.RParen.String())
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	call.Pos = nameTok.Span.Cover(p.tok.Span)
	if err := p.advance(); err != nil { // ')'
		return nil, err
	}
	return call, nil
}

// parseArgument parses one call argument with an optional asc/desc suffix.
func (p *Parser) parseArgument() (ast.Node, error) {
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.Asc && p.tok.Kind != lexer.Desc {
		return x, nil
	}
	ord := &ast.Ordering{X: x, Desc: p.tok.Kind == lexer.Desc, Pos: x.Span().Cover(p.tok.Span)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return ord, nil
}

package parser

import (
	"fmt"
	"strconv"

	"github.com/gnolang/groqlint/internal/ast"
	"github.com/gnolang/groqlint/internal/lexer"
	"github.com/gnolang/groqlint/internal/types"
)

func (p *Parser) parseExpr() (ast.Node, error) {
	return p.parseBinary(precPipe)
}

// parseBinary is the precedence-climbing loop. Only the recursion into an
// operand counts against the depth limit; a flat chain such as
// `a || b || c` folds iteratively and does not deepen the parse.
func (p *Parser) parseBinary(minPrec int) (ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave(1)

	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := binaryOps[p.tok.Kind]
		if !ok || op.prec < minPrec {
			return left, nil
		}
		opTok := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}

		if opTok.Kind == lexer.Pipe {
			left, err = p.parsePipe(left)
			if err != nil {
				return nil, err
			}
			continue
		}

		next := op.prec + 1
		if op.assoc == assocRight {
			next = op.prec
		}
		right, err := p.parseBinary(next)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{
			Op:    opTok.Kind,
			X:     left,
			Y:     right,
			OpPos: opTok.Span,
			Pos:   left.Span().Cover(right.Span()),
		}

		if op.assoc == assocNone {
			if again, ok := binaryOps[p.tok.Kind]; ok && again.prec == op.prec {
				return nil, &types.SyntaxError{
					Pos: p.tok.Span,
					Msg: fmt.Sprintf("operator %s cannot follow %s without parentheses", p.tok.Text, opTok.Text),
				}
			}
		}
	}
}

// parsePipe parses the function call after `|` and any traversals applied to
// the piped result, as in `*[...] | order(x) [0...10]`.
func (p *Parser) parsePipe(left ast.Node) (ast.Node, error) {
	if !p.tok.Kind.IsWord() {
		return nil, p.unexpected("after '|'", "function call")
	}
	nameTok := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.LParen && p.tok.Kind != lexer.ColonColon {
		return nil, &types.SyntaxError{
			Pos:      nameTok.Span,
			Expected: []string{"function call"},
			Msg:      "pipe must be followed by a function call",
		}
	}
	call, err := p.parseCall(nameTok)
	if err != nil {
		return nil, err
	}
	pipe := &ast.Pipe{X: left, Call: call, Pos: left.Span().Cover(call.Pos)}
	return p.parsePostfix(pipe)
}

func (p *Parser) parseUnary() (ast.Node, error) {
	var prec int
	switch p.tok.Kind {
	case lexer.Not, lexer.Plus:
		prec = precPrefix
	case lexer.Minus:
		prec = precNeg
	default:
		primary, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return p.parsePostfix(primary)
	}

	opTok := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	x, err := p.parseBinary(prec)
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Op: opTok.Kind, X: x, Pos: opTok.Span.Cover(x.Span())}, nil
}

// parsePostfix applies traversals (.x, [..], [], ->, {..}) to base.
func (p *Parser) parsePostfix(base ast.Node) (ast.Node, error) {
	for {
		var (
			next ast.Node
			err  error
		)
		switch p.tok.Kind {
		case lexer.Dot:
			next, err = p.parseAttribute(base)
		case lexer.Arrow:
			next, err = p.parseDeref(base)
		case lexer.LBracket:
			next, err = p.parseBracket(base)
		case lexer.LBrace:
			var obj *ast.Object
			obj, err = p.parseObject()
			if err == nil {
				next = &ast.Projection{X: base, Object: obj, Pos: base.Span().Cover(obj.Pos)}
			}
		default:
			return base, nil
		}
		if err != nil {
			return nil, err
		}
		base = next
	}
}

func (p *Parser) parseAttribute(base ast.Node) (ast.Node, error) {
	if err := p.advance(); err != nil { // '.'
		return nil, err
	}
	if !p.tok.Kind.IsWord() {
		return nil, p.unexpected("after '.'", lexer.Ident.String())
	}
	name := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.Attribute{X: base, Name: name.Text, Pos: base.Span().Cover(name.Span)}, nil
}

func (p *Parser) parseDeref(base ast.Node) (ast.Node, error) {
	arrow := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	deref := &ast.Deref{X: base, Pos: base.Span().Cover(arrow.Span)}
	if isDerefName(p.tok.Kind) {
		deref.Attr = p.tok.Text
		deref.Pos = deref.Pos.Cover(p.tok.Span)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return deref, nil
}

// isDerefName reports whether k names the attribute in `x->name`. asc and
// desc count as names, so `order(ref->desc)` orders by ref->desc; write
// `order((ref->) desc)` to order by the dereference itself.
func isDerefName(k lexer.Kind) bool {
	return k == lexer.Ident || k == lexer.Asc || k == lexer.Desc
}

// parseBracket handles x[], x[0], x["a"], x[a..b] and x[filter].
func (p *Parser) parseBracket(base ast.Node) (ast.Node, error) {
	if err := p.advance(); err != nil { // '['
		return nil, err
	}
	if p.tok.Kind == lexer.RBracket {
		end := p.tok.Span
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Traverse{X: base, Pos: base.Span().Cover(end)}, nil
	}

	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(lexer.RBracket, "in subscript")
	if err != nil {
		return nil, err
	}
	span := base.Span().Cover(end.Span)

	if b, ok := inner.(*ast.Binary); ok && (b.Op == lexer.DotDot || b.Op == lexer.Ellipsis) {
		return &ast.Slice{X: base, Range: b, Pos: span}, nil
	}
	if isIndex(inner) {
		return &ast.Element{X: base, Index: inner, Pos: span}, nil
	}
	return &ast.Filter{X: base, Constraint: inner, Pos: span}, nil
}

// isIndex reports whether a subscript selects an element or attribute rather
// than filtering.
func isIndex(n ast.Node) bool {
	switch x := n.(type) {
	case *ast.Literal:
		return x.Kind == ast.NumberLit || x.Kind == ast.StringLit
	case *ast.Unary:
		lit, ok := x.X.(*ast.Literal)
		return x.Op == lexer.Minus && ok && lit.Kind == ast.NumberLit
	}
	return false
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.tok
	switch tok.Kind {
	case lexer.Star:
		return p.leaf(&ast.Everything{Pos: tok.Span})
	case lexer.At:
		return p.leaf(&ast.This{Pos: tok.Span})
	case lexer.Caret:
		return p.parseParent()
	case lexer.Param:
		return p.leaf(&ast.Param{Name: tok.Text[1:], Pos: tok.Span})
	case lexer.Ident, lexer.Asc, lexer.Desc:
		next, err := p.peek(1)
		if err != nil {
			return nil, err
		}
		if next.Kind == lexer.LParen || next.Kind == lexer.ColonColon {
			if err := p.advance(); err != nil {
				return nil, err
			}
			return p.parseCall(tok)
		}
		return p.leaf(&ast.Ident{Name: tok.Text, Pos: tok.Span})
	case lexer.Number:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil && !isRangeErr(err) {
			return nil, &types.SyntaxError{Pos: tok.Span, Msg: "malformed number " + tok.Text}
		}
		return p.leaf(&ast.Literal{Kind: ast.NumberLit, Raw: tok.Text, Num: v, Pos: tok.Span})
	case lexer.String:
		v, err := lexer.Unquote(tok.Text)
		if err != nil {
			return nil, &types.LexError{Pos: tok.Span, Msg: "malformed string literal"}
		}
		return p.leaf(&ast.Literal{Kind: ast.StringLit, Raw: tok.Text, Str: v, Pos: tok.Span})
	case lexer.True, lexer.False:
		return p.leaf(&ast.Literal{Kind: ast.BoolLit, Raw: tok.Text, Bool: tok.Kind == lexer.True, Pos: tok.Span})
	case lexer.Null:
		return p.leaf(&ast.Literal{Kind: ast.NullLit, Raw: tok.Text, Pos: tok.Span})
	case lexer.LParen:
		return p.parseGroup()
	case lexer.LBracket:
		return p.parseArray()
	case lexer.LBrace:
		return p.parseObject()
	}
	return nil, p.unexpected("", exprStart()...)
}

// leaf consumes the current token and returns n.
func (p *Parser) leaf(n ast.Node) (ast.Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	return n, nil
}

// parseParent handles ^, ^.^, ^.^.^ ...
func (p *Parser) parseParent() (ast.Node, error) {
	span := p.tok.Span
	levels := 1
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.tok.Kind == lexer.Dot {
		next, err := p.peek(1)
		if err != nil {
			return nil, err
		}
		if next.Kind != lexer.Caret {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		span = span.Cover(p.tok.Span)
		if err := p.advance(); err != nil {
			return nil, err
		}
		levels++
	}
	return &ast.Parent{Levels: levels, Pos: span}, nil
}

func (p *Parser) parseGroup() (ast.Node, error) {
	open := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	closeTok, err := p.expect(lexer.RParen, "in parenthesized expression")
	if err != nil {
		return nil, err
	}
	return &ast.Group{X: x, Pos: open.Span.Cover(closeTok.Span)}, nil
}

// Package format renders GROQ syntax trees in canonical form.
//
// Binary operators are spaced (`a == b`) except ranges (`0..10`); prefix
// operators, traversals and projections attach to their operand
// (`-x`, `a.b`, `ref->`, `*[...]{...}`). Arrays, objects, call arguments and
// subscripts are laid out flat as `[a, b]` when they fit, and otherwise one
// item per line, indented two spaces, with the closing delimiter on its own
// line and no trailing comma. Operator chains break after the operator and
// pipes break before `|`. Strings are always double quoted; numbers keep
// their source spelling.
//
// Line comments are kept. A comment is printed before the first node that
// starts after it, or before the closing delimiter of the container it sits
// in, or at the end of the query, and is always followed by a line break.
package format

import (
	"strings"

	"github.com/gnolang/groqlint/internal/ast"
	"github.com/gnolang/groqlint/internal/lexer"
	"github.com/gnolang/groqlint/internal/parser"
	"github.com/gnolang/groqlint/internal/pretty"
)

// DefaultWidth is the line width used when none is given.
const DefaultWidth = 80

type config struct {
	width int
}

// Option configures formatting.
type Option func(*config)

// WithWidth sets the maximum line width. Values below 1 are ignored.
func WithWidth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.width = n
		}
	}
}

// Format renders q.
func Format(q *ast.Query, opts ...Option) string {
	cfg := config{width: DefaultWidth}
	for _, opt := range opts {
		opt(&cfg)
	}
	return pretty.Render(Document(q), cfg.width)
}

// Document builds the layout document of q.
func Document(q *ast.Query) pretty.Doc {
	p := &printer{comments: q.Comments}
	body := p.node(q.Expr)
	parts := []pretty.Doc{body}
	for _, c := range p.takeBefore(len(q.Source) + 1) {
		parts = append(parts, pretty.HardLine, pretty.Comment(c))
	}
	return pretty.Concat(parts...)
}

type printer struct {
	comments []lexer.Comment
	next     int
}

// takeBefore consumes the pending comments that start before offset.
func (p *printer) takeBefore(offset int) []string {
	var out []string
	for p.next < len(p.comments) && p.comments[p.next].Span.Start < offset {
		out = append(out, p.comments[p.next].Text)
		p.next++
	}
	return out
}

// node renders n preceded by the comments that come before it. Children must
// be rendered in source order so comments are consumed in order.
func (p *printer) node(n ast.Node) pretty.Doc {
	lead := p.takeBefore(n.Span().Start)
	body := p.print(n)
	if len(lead) == 0 {
		return body
	}
	parts := make([]pretty.Doc, 0, 2*len(lead)+1)
	for _, c := range lead {
		parts = append(parts, pretty.Comment(c), pretty.HardLine)
	}
	return pretty.Concat(append(parts, body)...)
}

func (p *printer) print(n ast.Node) pretty.Doc {
	switch x := n.(type) {
	case *ast.Everything:
		return pretty.Text("*")
	case *ast.This:
		return pretty.Text("@")
	case *ast.Parent:
		return pretty.Text(strings.Repeat("^.", x.Levels-1) + "^")
	case *ast.Param:
		return pretty.Text("$" + x.Name)
	case *ast.Ident:
		return pretty.Text(x.Name)
	case *ast.Literal:
		if x.Kind == ast.StringLit {
			return pretty.Text(lexer.Quote(x.Str))
		}
		return pretty.Text(x.Raw)
	case *ast.Array:
		return p.list("[", x.Elems, "]", x.Pos.End-1)
	case *ast.Object:
		return p.list("{", x.Entries, "}", x.Pos.End-1)
	case *ast.ObjectEntry:
		return pretty.Concat(pretty.Text(lexer.Quote(x.Key)+": "), p.node(x.Value))
	case *ast.Spread:
		if x.X == nil {
			return pretty.Text("...")
		}
		return pretty.Concat(pretty.Text("..."), p.node(x.X))
	case *ast.Group:
		return p.enclose("(", p.node(x.X), ")", x.Pos.End-1)
	case *ast.Unary:
		return pretty.Concat(pretty.Text(x.Op.String()), p.node(x.X))
	case *ast.Binary:
		return p.binary(x)
	case *ast.FuncCall:
		return pretty.Concat(pretty.Text(x.QualifiedName()), p.list("(", x.Args, ")", x.Pos.End-1))
	case *ast.Ordering:
		dir := " asc"
		if x.Desc {
			dir = " desc"
		}
		return pretty.Concat(p.node(x.X), pretty.Text(dir))
	case *ast.Pipe, *ast.Attribute, *ast.Deref, *ast.Traverse,
		*ast.Element, *ast.Slice, *ast.Filter, *ast.Projection:
		return p.traversal(x)
	}
	return pretty.Text("")
}

// list renders delimited, comma separated items.
func (p *printer) list(open string, items []ast.Node, close string, closeAt int) pretty.Doc {
	docs := make([]pretty.Doc, len(items))
	for i, it := range items {
		docs[i] = p.node(it)
	}
	var body pretty.Doc
	if len(docs) > 0 {
		body = pretty.Join(pretty.Concat(pretty.Text(","), pretty.Line), docs)
	}
	return p.enclose(open, body, close, closeAt)
}

// enclose wraps body in delimiters. Comments left before the closing
// delimiter go on their own lines after body.
func (p *printer) enclose(open string, body pretty.Doc, close string, closeAt int) pretty.Doc {
	tail := p.takeBefore(closeAt)
	if body == nil && len(tail) == 0 {
		return pretty.Text(open + close)
	}
	inner := []pretty.Doc{pretty.SoftLine, body}
	for i, c := range tail {
		if i > 0 || body != nil {
			inner = append(inner, pretty.HardLine)
		}
		inner = append(inner, pretty.Comment(c))
	}
	end := pretty.SoftLine
	if len(tail) > 0 {
		end = pretty.HardLine
	}
	return pretty.Group(
		pretty.Text(open),
		pretty.Indent(inner...),
		end,
		pretty.Text(close),
	)
}

func isRange(op lexer.Kind) bool {
	return op == lexer.DotDot || op == lexer.Ellipsis
}

// chains reports whether a left operand with operator inner continues a
// left-associative chain of outer.
func chains(inner, outer lexer.Kind) bool {
	if outer == lexer.StarStar || outer == lexer.FatArrow {
		return false
	}
	return parser.Precedence(inner) == parser.Precedence(outer)
}

func (p *printer) binary(x *ast.Binary) pretty.Doc {
	if isRange(x.Op) {
		left := p.node(x.X)
		return pretty.Concat(left, pretty.Text(x.Op.String()), p.node(x.Y))
	}

	// Flatten `a && b && c` so that the whole chain breaks as one group.
	var links []*ast.Binary
	cur := x
	for {
		links = append(links, cur)
		inner, ok := cur.X.(*ast.Binary)
		if !ok || !chains(inner.Op, cur.Op) {
			break
		}
		cur = inner
	}

	first := p.node(cur.X)
	rest := make([]pretty.Doc, 0, 3*len(links))
	for i := len(links) - 1; i >= 0; i-- {
		b := links[i]
		rest = append(rest, pretty.Text(" "+b.Op.String()), pretty.Line, p.node(b.Y))
	}
	return pretty.Group(first, pretty.Indent(rest...))
}

// base returns the operand a traversal or pipe applies to, or nil.
func base(n ast.Node) ast.Node {
	switch x := n.(type) {
	case *ast.Attribute:
		return x.X
	case *ast.Deref:
		return x.X
	case *ast.Traverse:
		return x.X
	case *ast.Element:
		return x.X
	case *ast.Slice:
		return x.X
	case *ast.Filter:
		return x.X
	case *ast.Projection:
		return x.X
	case *ast.Pipe:
		return x.X
	}
	return nil
}

// traversal renders a chain such as `*[...] | order(x)[0...10]{...}`.
// Pipe stages break onto their own lines, and traversals that follow the
// last stage stay attached to it inside the same indentation.
func (p *printer) traversal(n ast.Node) pretty.Doc {
	var chain []ast.Node
	head := n
	for b := base(head); b != nil; b = base(head) {
		chain = append(chain, head)
		head = b
	}

	parts := []pretty.Doc{p.node(head)}
	var stages []pretty.Doc
	for i := len(chain) - 1; i >= 0; i-- {
		d := p.suffix(chain[i])
		if _, ok := chain[i].(*ast.Pipe); ok {
			stages = append(stages, pretty.Line, pretty.Text("| "), d)
			continue
		}
		if stages != nil {
			stages = append(stages, d)
		} else {
			parts = append(parts, d)
		}
	}
	if stages == nil {
		return pretty.Concat(parts...)
	}
	return pretty.Group(pretty.Concat(parts...), pretty.Indent(stages...))
}

// suffix renders what a traversal adds to its operand.
func (p *printer) suffix(n ast.Node) pretty.Doc {
	switch x := n.(type) {
	case *ast.Pipe:
		return p.node(x.Call)
	case *ast.Attribute:
		return pretty.Text("." + x.Name)
	case *ast.Deref:
		return pretty.Text("->" + x.Attr)
	case *ast.Traverse:
		return pretty.Text("[]")
	case *ast.Element:
		return p.enclose("[", p.node(x.Index), "]", x.Pos.End-1)
	case *ast.Slice:
		return p.enclose("[", p.node(x.Range), "]", x.Pos.End-1)
	case *ast.Filter:
		return p.enclose("[", p.node(x.Constraint), "]", x.Pos.End-1)
	case *ast.Projection:
		return p.node(x.Object)
	}
	return nil
}

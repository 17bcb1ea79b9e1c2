package ast

import (
	"strconv"
	"strings"
)

// Sexp renders n as an S-expression without spans. Two trees with equal Sexp
// output are structurally equal.
func Sexp(n Node) string {
	var b strings.Builder
	writeSexp(&b, n)
	return b.String()
}

func writeSexp(b *strings.Builder, n Node) {
	if n == nil {
		b.WriteString("nil")
		return
	}
	open := func(tag string, attrs ...string) {
		b.WriteByte('(')
		b.WriteString(tag)
		for _, a := range attrs {
			b.WriteByte(' ')
			b.WriteString(a)
		}
	}
	children := func(nodes ...Node) {
		for _, c := range nodes {
			b.WriteByte(' ')
			writeSexp(b, c)
		}
		b.WriteByte(')')
	}

	switch x := n.(type) {
	case *Query:
		open("query")
		children(x.Expr)
	case *Everything:
		b.WriteString("*")
	case *This:
		b.WriteString("@")
	case *Parent:
		b.WriteString(strings.Repeat("^", x.Levels))
	case *Param:
		b.WriteString("$" + x.Name)
	case *Ident:
		b.WriteString(x.Name)
	case *Literal:
		switch x.Kind {
		case StringLit:
			b.WriteString(strconv.Quote(x.Str))
		case NumberLit:
			b.WriteString(strconv.FormatFloat(x.Num, 'g', -1, 64))
		case BoolLit:
			b.WriteString(strconv.FormatBool(x.Bool))
		default:
			b.WriteString("null")
		}
	case *Array:
		open("array")
		children(x.Elems...)
	case *Object:
		open("object")
		children(x.Entries...)
	case *ObjectEntry:
		open("entry", strconv.Quote(x.Key))
		children(x.Value)
	case *Spread:
		open("spread")
		if x.X == nil {
			b.WriteByte(')')
			return
		}
		children(x.X)
	case *Group:
		open("group")
		children(x.X)
	case *Unary:
		open(x.Op.String())
		children(x.X)
	case *Binary:
		open(x.Op.String())
		children(x.X, x.Y)
	case *Pipe:
		open("pipe")
		children(x.X, x.Call)
	case *FuncCall:
		open("call", x.QualifiedName())
		children(x.Args...)
	case *Ordering:
		dir := "asc"
		if x.Desc {
			dir = "desc"
		}
		open(dir)
		children(x.X)
	case *Attribute:
		open("attr", x.Name)
		children(x.X)
	case *Element:
		open("elem")
		children(x.X, x.Index)
	case *Slice:
		open("slice")
		children(x.X, x.Range)
	case *Filter:
		open("filter")
		children(x.X, x.Constraint)
	case *Traverse:
		open("traverse")
		children(x.X)
	case *Deref:
		if x.Attr == "" {
			open("deref")
		} else {
			open("deref", x.Attr)
		}
		children(x.X)
	case *Projection:
		open("project")
		children(x.X, x.Object)
	default:
		b.WriteString("?")
	}
}

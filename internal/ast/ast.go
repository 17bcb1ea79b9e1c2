// Package ast declares the types used to represent GROQ syntax trees.
//
// Every node records the byte span it was parsed from. Nodes own their
// children; there are no parent pointers. Traversals that need ancestors keep
// an explicit stack (see Walk and Inspect).
package ast

import (
	"github.com/gnolang/groqlint/internal/lexer"
	"github.com/gnolang/groqlint/internal/types"
)

// Node is implemented by every syntax tree node.
type Node interface {
	Span() types.Span
	node()
}

// Query is the root of a parsed query.
type Query struct {
	Expr     Node
	Comments []lexer.Comment
	Source   string
	Pos      types.Span
}

// Everything is `*`.
type Everything struct{ Pos types.Span }

// This is `@`.
type This struct{ Pos types.Span }

// Parent is `^`, `^.^`, ...; Levels counts the carets.
type Parent struct {
	Levels int
	Pos    types.Span
}

// Param is a `$name` reference. Name excludes the dollar sign.
type Param struct {
	Name string
	Pos  types.Span
}

// Ident is a bare attribute name resolved against `@`.
type Ident struct {
	Name string
	Pos  types.Span
}

// LiteralKind distinguishes literal values.
type LiteralKind uint8

const (
	StringLit LiteralKind = iota
	NumberLit
	BoolLit
	NullLit
)

// Literal is a string, number, boolean or null constant.
// Raw keeps the source spelling; the typed fields hold the decoded value.
type Literal struct {
	Kind LiteralKind
	Raw  string
	Str  string
	Num  float64
	Bool bool
	Pos  types.Span
}

// Array is `[a, b, ...c]`.
type Array struct {
	Elems []Node
	Pos   types.Span
}

// Object is `{...}`. Entries are *ObjectEntry, *Spread or plain expressions
// (shorthand attributes and conditional `cond => {...}` entries).
type Object struct {
	Entries []Node
	Pos     types.Span
}

// ObjectEntry is `"key": value`.
type ObjectEntry struct {
	Key    string
	KeyRaw string
	KeyPos types.Span
	Value  Node
	Pos    types.Span
}

// Spread is `...expr` or a bare `...` (X is nil).
type Spread struct {
	X   Node
	Pos types.Span
}

// Group is a parenthesized expression.
type Group struct {
	X   Node
	Pos types.Span
}

// Unary is a prefix operator expression (`!`, `-`, `+`).
type Unary struct {
	Op  lexer.Kind
	X   Node
	Pos types.Span
}

// Binary is an infix operator expression, including ranges and `=>` pairs.
type Binary struct {
	Op    lexer.Kind
	X     Node
	Y     Node
	OpPos types.Span
	Pos   types.Span
}

// Pipe is `x | fn(...)`.
type Pipe struct {
	X    Node
	Call *FuncCall
	Pos  types.Span
}

// FuncCall is `name(args)` or `ns::name(args)`.
type FuncCall struct {
	Namespace string
	Name      string
	NamePos   types.Span
	Args      []Node
	Pos       types.Span
}

// Ordering is an `asc`/`desc` suffix on a function argument.
type Ordering struct {
	X    Node
	Desc bool
	Pos  types.Span
}

// Attribute is `x.name`.
type Attribute struct {
	X    Node
	Name string
	Pos  types.Span
}

// Element is `x[index]` where index is a number or string constant.
type Element struct {
	X     Node
	Index Node
	Pos   types.Span
}

// Slice is `x[a..b]` or `x[a...b]`; Range is the range Binary.
type Slice struct {
	X     Node
	Range *Binary
	Pos   types.Span
}

// Filter is `x[constraint]`.
type Filter struct {
	X          Node
	Constraint Node
	Pos        types.Span
}

// Traverse is `x[]`.
type Traverse struct {
	X   Node
	Pos types.Span
}

// Deref is `x->` or `x->name` (Attr is empty for the bare form).
type Deref struct {
	X    Node
	Attr string
	Pos  types.Span
}

// Projection is `x{...}`.
type Projection struct {
	X      Node
	Object *Object
	Pos    types.Span
}

func (n *Query) Span() types.Span       { return n.Pos }
func (n *Everything) Span() types.Span  { return n.Pos }
func (n *This) Span() types.Span        { return n.Pos }
func (n *Parent) Span() types.Span      { return n.Pos }
func (n *Param) Span() types.Span       { return n.Pos }
func (n *Ident) Span() types.Span       { return n.Pos }
func (n *Literal) Span() types.Span     { return n.Pos }
func (n *Array) Span() types.Span       { return n.Pos }
func (n *Object) Span() types.Span      { return n.Pos }
func (n *ObjectEntry) Span() types.Span { return n.Pos }
func (n *Spread) Span() types.Span      { return n.Pos }
func (n *Group) Span() types.Span       { return n.Pos }
func (n *Unary) Span() types.Span       { return n.Pos }
func (n *Binary) Span() types.Span      { return n.Pos }
func (n *Pipe) Span() types.Span        { return n.Pos }
func (n *FuncCall) Span() types.Span    { return n.Pos }
func (n *Ordering) Span() types.Span    { return n.Pos }
func (n *Attribute) Span() types.Span   { return n.Pos }
func (n *Element) Span() types.Span     { return n.Pos }
func (n *Slice) Span() types.Span       { return n.Pos }
func (n *Filter) Span() types.Span      { return n.Pos }
func (n *Traverse) Span() types.Span    { return n.Pos }
func (n *Deref) Span() types.Span       { return n.Pos }
func (n *Projection) Span() types.Span  { return n.Pos }

func (*Query) node()       {}
func (*Everything) node()  {}
func (*This) node()        {}
func (*Parent) node()      {}
func (*Param) node()       {}
func (*Ident) node()       {}
func (*Literal) node()     {}
func (*Array) node()       {}
func (*Object) node()      {}
func (*ObjectEntry) node() {}
func (*Spread) node()      {}
func (*Group) node()       {}
func (*Unary) node()       {}
func (*Binary) node()      {}
func (*Pipe) node()        {}
func (*FuncCall) node()    {}
func (*Ordering) node()    {}
func (*Attribute) node()   {}
func (*Element) node()     {}
func (*Slice) node()       {}
func (*Filter) node()      {}
func (*Traverse) node()    {}
func (*Deref) node()       {}
func (*Projection) node()  {}

// QualifiedName returns "ns::name" or "name".
func (n *FuncCall) QualifiedName() string {
	if n.Namespace == "" {
		return n.Name
	}
	return n.Namespace + "::" + n.Name
}

// IsConstant reports whether n is a literal, possibly negated or
// parenthesized.
func IsConstant(n Node) bool {
	switch x := n.(type) {
	case *Literal:
		return true
	case *Unary:
		return (x.Op == lexer.Minus || x.Op == lexer.Plus) && IsConstant(x.X)
	case *Group:
		return IsConstant(x.X)
	}
	return false
}

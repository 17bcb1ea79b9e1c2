package ast

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	switch x := n.(type) {
	case *Query:
		return []Node{x.Expr}
	case *Array:
		return x.Elems
	case *Object:
		return x.Entries
	case *ObjectEntry:
		return []Node{x.Value}
	case *Spread:
		if x.X == nil {
			return nil
		}
		return []Node{x.X}
	case *Group:
		return []Node{x.X}
	case *Unary:
		return []Node{x.X}
	case *Binary:
		return []Node{x.X, x.Y}
	case *Pipe:
		return []Node{x.X, x.Call}
	case *FuncCall:
		return x.Args
	case *Ordering:
		return []Node{x.X}
	case *Attribute:
		return []Node{x.X}
	case *Element:
		return []Node{x.X, x.Index}
	case *Slice:
		return []Node{x.X, x.Range}
	case *Filter:
		return []Node{x.X, x.Constraint}
	case *Traverse:
		return []Node{x.X}
	case *Deref:
		return []Node{x.X}
	case *Projection:
		return []Node{x.X, x.Object}
	}
	return nil
}

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// of node with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range Children(node) {
		Walk(v, child)
	}
	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses an AST in depth-first order, calling f for each node and
// finally f(nil) after the children of a node were visited.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Count returns the number of nodes in the subtree for which pred holds.
func Count(node Node, pred func(Node) bool) int {
	n := 0
	Inspect(node, func(x Node) bool {
		if x != nil && pred(x) {
			n++
		}
		return true
	})
	return n
}

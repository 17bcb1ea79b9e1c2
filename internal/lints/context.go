package lints

import (
	"github.com/gnolang/groqlint/internal/ast"
)

// Context describes the position of the node being linted. The engine pushes
// each node before dispatching it and pops it after its subtree is done, so
// detectors see the full path from the root.
type Context struct {
	Source string
	Query  *ast.Query
	stack  []ast.Node
}

// NewContext returns a context for linting q.
func NewContext(q *ast.Query) *Context {
	return &Context{Source: q.Source, Query: q}
}

// Push enters n.
func (c *Context) Push(n ast.Node) { c.stack = append(c.stack, n) }

// Pop leaves the current node.
func (c *Context) Pop() { c.stack = c.stack[:len(c.stack)-1] }

// Depth is the number of nodes on the path, including the current one.
func (c *Context) Depth() int { return len(c.stack) }

// Node returns the node being visited.
func (c *Context) Node() ast.Node {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

// Ancestors returns the enclosing nodes, outermost first.
func (c *Context) Ancestors() []ast.Node {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[:len(c.stack)-1]
}

// Parent returns the direct parent of the current node, or nil at the root.
func (c *Context) Parent() ast.Node {
	if len(c.stack) < 2 {
		return nil
	}
	return c.stack[len(c.stack)-2]
}

// EnclosingFilter returns the nearest filter whose constraint contains the
// current node.
func (c *Context) EnclosingFilter() *ast.Filter {
	for i := len(c.stack) - 2; i >= 0; i-- {
		f, ok := c.stack[i].(*ast.Filter)
		if ok && c.stack[i+1] == f.Constraint {
			return f
		}
	}
	return nil
}

// InFilterConstraint reports whether the current node is part of a filter
// constraint such as the `a == b` in `*[a == b]`.
func (c *Context) InFilterConstraint() bool {
	return c.EnclosingFilter() != nil
}

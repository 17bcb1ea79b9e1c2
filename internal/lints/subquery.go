package lints

import (
	"github.com/gnolang/groqlint/internal/ast"
	tt "github.com/gnolang/groqlint/internal/types"
)

// DetectCountInCorrelatedSubquery reports `count(*[... ^ ...])`. The
// subquery refers to the enclosing document, so it runs once per result.
func DetectCountInCorrelatedSubquery(_ *Context, node ast.Node) []tt.Finding {
	call, ok := isCall(node, "count", "global::count")
	if !ok || len(call.Args) != 1 {
		return nil
	}
	correlated := false
	ast.Inspect(call.Args[0], func(n ast.Node) bool {
		if correlated {
			return false
		}
		f, ok := n.(*ast.Filter)
		if !ok {
			return true
		}
		if _, ok := rootOf(f.X).(*ast.Everything); !ok {
			return true
		}
		refs := ast.Count(f.Constraint, func(n ast.Node) bool {
			_, ok := n.(*ast.Parent)
			return ok
		})
		correlated = refs > 0
		return !correlated
	})
	if !correlated {
		return nil
	}
	return []tt.Finding{finding(RuleCountInCorrelatedSubquery,
		"count() over a correlated subquery runs once per result; consider a reverse reference or precomputed count",
		call.Pos)}
}

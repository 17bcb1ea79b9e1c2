package lints

import (
	"fmt"

	"github.com/gnolang/groqlint/internal/ast"
	tt "github.com/gnolang/groqlint/internal/types"
)

// ManyJoinsThreshold is the number of dereferences a query may perform before
// many-joins reports it.
const ManyJoinsThreshold = 10

// DetectJoinInFilter reports dereferences evaluated inside a filter
// constraint. Each one joins against every candidate document.
func DetectJoinInFilter(ctx *Context, node ast.Node) []tt.Finding {
	deref, ok := node.(*ast.Deref)
	if !ok || !ctx.InFilterConstraint() {
		return nil
	}
	return []tt.Finding{finding(RuleJoinInFilter,
		"join (->) inside a filter constraint is evaluated for every document; compare the reference (_ref) instead",
		deref.Pos)}
}

// DetectJoinToGetID reports `x->_id`, which fetches the referenced document
// only to read the id already stored in `x._ref`.
func DetectJoinToGetID(_ *Context, node ast.Node) []tt.Finding {
	switch x := node.(type) {
	case *ast.Deref:
		if x.Attr == "_id" {
			return []tt.Finding{finding(RuleJoinToGetID,
				"join to read _id is unnecessary; use _ref on the reference instead", x.Pos)}
		}
	case *ast.Attribute:
		if d, ok := x.X.(*ast.Deref); ok && d.Attr == "" && x.Name == "_id" {
			return []tt.Finding{finding(RuleJoinToGetID,
				"join to read _id is unnecessary; use _ref on the reference instead", x.Pos)}
		}
	}
	return nil
}

// DetectManyJoins counts the dereferences of the whole query once, at the root.
func DetectManyJoins(_ *Context, node ast.Node) []tt.Finding {
	q, ok := node.(*ast.Query)
	if !ok {
		return nil
	}
	n := ast.Count(q.Expr, func(n ast.Node) bool {
		_, ok := n.(*ast.Deref)
		return ok
	})
	if n <= ManyJoinsThreshold {
		return nil
	}
	return []tt.Finding{finding(RuleManyJoins,
		fmt.Sprintf("query performs %d joins (more than %d); each join is a separate lookup", n, ManyJoinsThreshold),
		q.Expr.Span())}
}

// DetectRepeatedDereference reports a reference that is dereferenced more
// than once within the same projection. Nested projections are their own
// scope.
func DetectRepeatedDereference(_ *Context, node ast.Node) []tt.Finding {
	proj, ok := node.(*ast.Projection)
	if !ok {
		return nil
	}

	var (
		order  []string
		counts = make(map[string]int)
		second = make(map[string]*ast.Deref)
	)
	var collect func(n ast.Node)
	collect = func(n ast.Node) {
		switch x := n.(type) {
		case *ast.Projection:
			collect(x.X)
			return
		case *ast.Deref:
			key := ast.Sexp(x.X)
			counts[key]++
			switch counts[key] {
			case 1:
				order = append(order, key)
			case 2:
				second[key] = x
			}
		}
		for _, c := range ast.Children(n) {
			collect(c)
		}
	}
	for _, entry := range proj.Object.Entries {
		collect(entry)
	}

	var findings []tt.Finding
	for _, key := range order {
		if counts[key] < 2 {
			continue
		}
		d := second[key]
		findings = append(findings, finding(RuleRepeatedDereference,
			fmt.Sprintf("reference is dereferenced %d times in this projection; join once and project the fields together", counts[key]),
			d.Pos))
	}
	return findings
}

package lints

import (
	"github.com/gnolang/groqlint/internal/ast"
	"github.com/gnolang/groqlint/internal/lexer"
	tt "github.com/gnolang/groqlint/internal/types"
)

// Rule identifiers.
const (
	RuleJoinInFilter              = "join-in-filter"
	RuleJoinToGetID               = "join-to-get-id"
	RuleComputedValueInFilter     = "computed-value-in-filter"
	RuleNonLiteralComparison      = "non-literal-comparison"
	RuleMatchOnID                 = "match-on-id"
	RuleOrderOnExpr               = "order-on-expr"
	RuleDeepPagination            = "deep-pagination"
	RuleDeepPaginationParam       = "deep-pagination-param"
	RuleLargePages                = "large-pages"
	RuleCountInCorrelatedSubquery = "count-in-correlated-subquery"
	RuleRepeatedDereference       = "repeated-dereference"
	RuleManyJoins                 = "many-joins"
	RuleVeryLargeQuery            = "very-large-query"
	RuleExtremelyLargeQuery       = "extremely-large-query"
)

func finding(rule, msg string, span tt.Span) tt.Finding {
	return tt.Finding{RuleID: rule, Message: msg, Span: span}
}

func isArithmetic(op lexer.Kind) bool {
	switch op {
	case lexer.Plus, lexer.Minus, lexer.Star, lexer.Slash, lexer.Percent, lexer.StarStar:
		return true
	}
	return false
}

func isComparison(op lexer.Kind) bool {
	switch op {
	case lexer.Eq, lexer.NotEq, lexer.Lt, lexer.LtEq, lexer.Gt, lexer.GtEq:
		return true
	}
	return false
}

// isLiteralOrParam reports whether n is known before the query runs.
func isLiteralOrParam(n ast.Node) bool {
	if g, ok := n.(*ast.Group); ok {
		return isLiteralOrParam(g.X)
	}
	if _, ok := n.(*ast.Param); ok {
		return true
	}
	return ast.IsConstant(n)
}

// isAttributePath reports whether n is a plain path such as `a`, `a.b.c` or
// `@.a`.
func isAttributePath(n ast.Node) bool {
	switch x := n.(type) {
	case *ast.Ident:
		return true
	case *ast.Attribute:
		switch x.X.(type) {
		case *ast.This, *ast.Parent:
			return true
		}
		return isAttributePath(x.X)
	}
	return false
}

// attrName returns the final attribute name of a path, or "".
func attrName(n ast.Node) string {
	switch x := n.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.Attribute:
		return x.Name
	}
	return ""
}

func isCall(n ast.Node, names ...string) (*ast.FuncCall, bool) {
	call, ok := n.(*ast.FuncCall)
	if !ok {
		return nil, false
	}
	qn := call.QualifiedName()
	for _, name := range names {
		if qn == name {
			return call, true
		}
	}
	return nil, false
}

// rootOf follows traversals down to the expression they start from.
func rootOf(n ast.Node) ast.Node {
	for {
		switch x := n.(type) {
		case *ast.Attribute:
			n = x.X
		case *ast.Element:
			n = x.X
		case *ast.Slice:
			n = x.X
		case *ast.Filter:
			n = x.X
		case *ast.Traverse:
			n = x.X
		case *ast.Deref:
			n = x.X
		case *ast.Projection:
			n = x.X
		case *ast.Pipe:
			n = x.X
		case *ast.Group:
			n = x.X
		default:
			return n
		}
	}
}

package lints

import (
	"fmt"

	"github.com/gnolang/groqlint/internal/ast"
	tt "github.com/gnolang/groqlint/internal/types"
)

const (
	// VeryLargeQueryBytes is the size above which very-large-query reports.
	VeryLargeQueryBytes = 10 * 1024
	// ExtremelyLargeQueryBytes is the size above which extremely-large-query
	// reports instead.
	ExtremelyLargeQueryBytes = 100 * 1024
)

// DetectVeryLargeQuery reports query text between 10 KB and 100 KB.
func DetectVeryLargeQuery(ctx *Context, node ast.Node) []tt.Finding {
	q, ok := node.(*ast.Query)
	if !ok {
		return nil
	}
	n := len(ctx.Source)
	if n <= VeryLargeQueryBytes || n > ExtremelyLargeQueryBytes {
		return nil
	}
	return []tt.Finding{finding(RuleVeryLargeQuery,
		fmt.Sprintf("query is %d bytes; large queries are slow to parse and plan", n), q.Pos)}
}

// DetectExtremelyLargeQuery reports query text over 100 KB.
func DetectExtremelyLargeQuery(ctx *Context, node ast.Node) []tt.Finding {
	q, ok := node.(*ast.Query)
	if !ok {
		return nil
	}
	n := len(ctx.Source)
	if n <= ExtremelyLargeQueryBytes {
		return nil
	}
	return []tt.Finding{finding(RuleExtremelyLargeQuery,
		fmt.Sprintf("query is %d bytes; queries over %d bytes may be rejected", n, ExtremelyLargeQueryBytes), q.Pos)}
}

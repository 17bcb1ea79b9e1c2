package lints

import (
	"github.com/gnolang/groqlint/internal/ast"
	tt "github.com/gnolang/groqlint/internal/types"
)

// DetectOrderOnExpr reports order() arguments that are not plain attributes.
func DetectOrderOnExpr(_ *Context, node ast.Node) []tt.Finding {
	call, ok := isCall(node, "order", "global::order")
	if !ok {
		return nil
	}
	var findings []tt.Finding
	for _, arg := range call.Args {
		x := arg
		if ord, ok := arg.(*ast.Ordering); ok {
			x = ord.X
		}
		if isAttributePath(x) {
			continue
		}
		findings = append(findings, finding(RuleOrderOnExpr,
			"ordering on a computed expression cannot use an index; order on an attribute",
			arg.Span()))
	}
	return findings
}

package lints

import (
	"github.com/gnolang/groqlint/internal/ast"
	"github.com/gnolang/groqlint/internal/lexer"
	tt "github.com/gnolang/groqlint/internal/types"
)

// DetectComputedValueInFilter reports arithmetic over document values inside
// a filter constraint. Only the outermost arithmetic expression is reported.
func DetectComputedValueInFilter(ctx *Context, node ast.Node) []tt.Finding {
	bin, ok := node.(*ast.Binary)
	if !ok || !isArithmetic(bin.Op) || !ctx.InFilterConstraint() {
		return nil
	}
	if parent, ok := ctx.Parent().(*ast.Binary); ok && isArithmetic(parent.Op) {
		return nil
	}
	if isLiteralOrParam(bin.X) && isLiteralOrParam(bin.Y) {
		return nil
	}
	return []tt.Finding{finding(RuleComputedValueInFilter,
		"computed value in a filter cannot use an index; store the value or compare the attribute directly",
		bin.Pos)}
}

// DetectNonLiteralComparison reports comparisons in a filter where neither
// operand is a literal or a parameter.
func DetectNonLiteralComparison(ctx *Context, node ast.Node) []tt.Finding {
	bin, ok := node.(*ast.Binary)
	if !ok || !isComparison(bin.Op) || !ctx.InFilterConstraint() {
		return nil
	}
	if isLiteralOrParam(bin.X) || isLiteralOrParam(bin.Y) {
		return nil
	}
	return []tt.Finding{finding(RuleNonLiteralComparison,
		"comparison between two non-literal values in a filter cannot use an index",
		bin.Pos)}
}

// DetectMatchOnID reports `_id match ...`.
func DetectMatchOnID(_ *Context, node ast.Node) []tt.Finding {
	bin, ok := node.(*ast.Binary)
	if !ok || bin.Op != lexer.Match {
		return nil
	}
	if !isAttributePath(bin.X) || attrName(bin.X) != "_id" {
		return nil
	}
	return []tt.Finding{finding(RuleMatchOnID,
		"match on _id tokenizes the id; use string::startsWith(_id, ...) or _id in path(...)",
		bin.Pos)}
}

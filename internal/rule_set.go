package internal

import (
	"github.com/gnolang/groqlint/internal/ast"
	"github.com/gnolang/groqlint/internal/lints"
	tt "github.com/gnolang/groqlint/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check inspects a single node and returns the findings for it.
	Check(ctx *lints.Context, node ast.Node) []tt.Finding

	// Name returns the name of the lint rule.
	Name() string

	// Severity returns the severity of the lint rule.
	Severity() tt.Severity

	// SetSeverity sets the severity of the lint rule.
	SetSeverity(tt.Severity)
}

type severityHolder struct {
	severity tt.Severity
}

func (h *severityHolder) Severity() tt.Severity { return h.severity }
func (h *severityHolder) SetSeverity(s tt.Severity) { h.severity = s }

type JoinInFilterRule struct{ severityHolder }

func NewJoinInFilterRule() LintRule {
	return &JoinInFilterRule{severityHolder{tt.SeverityError}}
}

func (r *JoinInFilterRule) Check(ctx *lints.Context, node ast.Node) []tt.Finding {
	return lints.DetectJoinInFilter(ctx, node)
}

func (r *JoinInFilterRule) Name() string {
	return lints.RuleJoinInFilter
}

type JoinToGetIDRule struct{ severityHolder }

func NewJoinToGetIDRule() LintRule {
	return &JoinToGetIDRule{severityHolder{tt.SeverityWarning}}
}

func (r *JoinToGetIDRule) Check(ctx *lints.Context, node ast.Node) []tt.Finding {
	return lints.DetectJoinToGetID(ctx, node)
}

func (r *JoinToGetIDRule) Name() string {
	return lints.RuleJoinToGetID
}

type ComputedValueInFilterRule struct{ severityHolder }

func NewComputedValueInFilterRule() LintRule {
	return &ComputedValueInFilterRule{severityHolder{tt.SeverityError}}
}

func (r *ComputedValueInFilterRule) Check(ctx *lints.Context, node ast.Node) []tt.Finding {
	return lints.DetectComputedValueInFilter(ctx, node)
}

func (r *ComputedValueInFilterRule) Name() string {
	return lints.RuleComputedValueInFilter
}

type NonLiteralComparisonRule struct{ severityHolder }

func NewNonLiteralComparisonRule() LintRule {
	return &NonLiteralComparisonRule{severityHolder{tt.SeverityError}}
}

func (r *NonLiteralComparisonRule) Check(ctx *lints.Context, node ast.Node) []tt.Finding {
	return lints.DetectNonLiteralComparison(ctx, node)
}

func (r *NonLiteralComparisonRule) Name() string {
	return lints.RuleNonLiteralComparison
}

type MatchOnIDRule struct{ severityHolder }

func NewMatchOnIDRule() LintRule {
	return &MatchOnIDRule{severityHolder{tt.SeverityInfo}}
}

func (r *MatchOnIDRule) Check(ctx *lints.Context, node ast.Node) []tt.Finding {
	return lints.DetectMatchOnID(ctx, node)
}

func (r *MatchOnIDRule) Name() string {
	return lints.RuleMatchOnID
}

type OrderOnExprRule struct{ severityHolder }

func NewOrderOnExprRule() LintRule {
	return &OrderOnExprRule{severityHolder{tt.SeverityWarning}}
}

func (r *OrderOnExprRule) Check(ctx *lints.Context, node ast.Node) []tt.Finding {
	return lints.DetectOrderOnExpr(ctx, node)
}

func (r *OrderOnExprRule) Name() string {
	return lints.RuleOrderOnExpr
}

// -----------------------------------------------------------------------------

type DeepPaginationRule struct{ severityHolder }

func NewDeepPaginationRule() LintRule {
	return &DeepPaginationRule{severityHolder{tt.SeverityWarning}}
}

func (r *DeepPaginationRule) Check(ctx *lints.Context, node ast.Node) []tt.Finding {
	return lints.DetectDeepPagination(ctx, node)
}

func (r *DeepPaginationRule) Name() string {
	return lints.RuleDeepPagination
}

type DeepPaginationParamRule struct{ severityHolder }

func NewDeepPaginationParamRule() LintRule {
	return &DeepPaginationParamRule{severityHolder{tt.SeverityInfo}}
}

func (r *DeepPaginationParamRule) Check(ctx *lints.Context, node ast.Node) []tt.Finding {
	return lints.DetectDeepPaginationParam(ctx, node)
}

func (r *DeepPaginationParamRule) Name() string {
	return lints.RuleDeepPaginationParam
}

type LargePagesRule struct{ severityHolder }

func NewLargePagesRule() LintRule {
	return &LargePagesRule{severityHolder{tt.SeverityWarning}}
}

func (r *LargePagesRule) Check(ctx *lints.Context, node ast.Node) []tt.Finding {
	return lints.DetectLargePages(ctx, node)
}

func (r *LargePagesRule) Name() string {
	return lints.RuleLargePages
}

// -----------------------------------------------------------------------------

type CountInCorrelatedSubqueryRule struct{ severityHolder }

func NewCountInCorrelatedSubqueryRule() LintRule {
	return &CountInCorrelatedSubqueryRule{severityHolder{tt.SeverityInfo}}
}

func (r *CountInCorrelatedSubqueryRule) Check(ctx *lints.Context, node ast.Node) []tt.Finding {
	return lints.DetectCountInCorrelatedSubquery(ctx, node)
}

func (r *CountInCorrelatedSubqueryRule) Name() string {
	return lints.RuleCountInCorrelatedSubquery
}

type RepeatedDereferenceRule struct{ severityHolder }

func NewRepeatedDereferenceRule() LintRule {
	return &RepeatedDereferenceRule{severityHolder{tt.SeverityInfo}}
}

func (r *RepeatedDereferenceRule) Check(ctx *lints.Context, node ast.Node) []tt.Finding {
	return lints.DetectRepeatedDereference(ctx, node)
}

func (r *RepeatedDereferenceRule) Name() string {
	return lints.RuleRepeatedDereference
}

type ManyJoinsRule struct{ severityHolder }

func NewManyJoinsRule() LintRule {
	return &ManyJoinsRule{severityHolder{tt.SeverityWarning}}
}

func (r *ManyJoinsRule) Check(ctx *lints.Context, node ast.Node) []tt.Finding {
	return lints.DetectManyJoins(ctx, node)
}

func (r *ManyJoinsRule) Name() string {
	return lints.RuleManyJoins
}

// -----------------------------------------------------------------------------

// VeryLargeQueryRule and ExtremelyLargeQueryRule look at the raw query text.
type VeryLargeQueryRule struct{ severityHolder }

func NewVeryLargeQueryRule() LintRule {
	return &VeryLargeQueryRule{severityHolder{tt.SeverityWarning}}
}

func (r *VeryLargeQueryRule) Check(ctx *lints.Context, node ast.Node) []tt.Finding {
	return lints.DetectVeryLargeQuery(ctx, node)
}

func (r *VeryLargeQueryRule) Name() string {
	return lints.RuleVeryLargeQuery
}

type ExtremelyLargeQueryRule struct{ severityHolder }

func NewExtremelyLargeQueryRule() LintRule {
	return &ExtremelyLargeQueryRule{severityHolder{tt.SeverityError}}
}

func (r *ExtremelyLargeQueryRule) Check(ctx *lints.Context, node ast.Node) []tt.Finding {
	return lints.DetectExtremelyLargeQuery(ctx, node)
}

func (r *ExtremelyLargeQueryRule) Name() string {
	return lints.RuleExtremelyLargeQuery
}

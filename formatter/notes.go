package formatter

import "github.com/gnolang/groqlint/internal/lints"

// ruleNotes holds the remediation hint printed under each issue.
var ruleNotes = map[string]string{
	lints.RuleJoinInFilter:              "compare the reference itself, e.g. `author._ref == $id`, instead of dereferencing inside the filter",
	lints.RuleJoinToGetID:               "`ref->_id` is the same as `ref._ref` and needs no join",
	lints.RuleComputedValueInFilter:     "filters on computed values cannot use an index; compare a stored attribute instead",
	lints.RuleNonLiteralComparison:      "compare the attribute with a literal or a parameter",
	lints.RuleMatchOnID:                 "use `_id in path(\"drafts.**\")` to select ids by prefix",
	lints.RuleOrderOnExpr:               "order by a stored attribute so the sort can use an index",
	lints.RuleDeepPagination:            "paginate by filtering on the last seen value instead of a large offset",
	lints.RuleDeepPaginationParam:       "a large offset parameter makes the query scan every skipped document",
	lints.RuleLargePages:                "fetch fewer documents per page",
	lints.RuleCountInCorrelatedSubquery: "the subquery is evaluated once per outer document",
	lints.RuleRepeatedDereference:       "dereference once and project the fields you need: `ref->{a, b}`",
	lints.RuleManyJoins:                 "every dereference is a separate lookup",
	lints.RuleVeryLargeQuery:            "pass large values as parameters instead of inlining them",
	lints.RuleExtremelyLargeQuery:       "pass large values as parameters instead of inlining them",
}

package internal

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gnolang/groqlint/internal/ast"
	"github.com/gnolang/groqlint/internal/lints"
	"github.com/gnolang/groqlint/internal/nolint"
	"github.com/gnolang/groqlint/internal/parser"
	tt "github.com/gnolang/groqlint/internal/types"
)

// Engine manages the linting process.
type Engine struct {
	ignoredRules map[string]bool
	logger       *zap.Logger
	rules        []LintRule
	maxDepth     int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used to report recovered rule failures.
func WithLogger(logger *zap.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxDepth bounds the nesting depth accepted by RunSource.
func WithMaxDepth(n int) EngineOption {
	return func(e *Engine) { e.maxDepth = n }
}

// NewEngine creates a new lint engine. rules overrides the default severity
// of the named rules; unknown names are ignored.
func NewEngine(rules map[string]tt.ConfigRule, opts ...EngineOption) *Engine {
	engine := &Engine{logger: zap.NewNop(), maxDepth: parser.DefaultMaxDepth}
	for _, opt := range opts {
		opt(engine)
	}
	engine.applyRules(rules)
	return engine
}

// Define the ruleConstructor type
type ruleConstructor func() LintRule

// allRuleConstructors lists every rule in registration order. The order
// breaks ties between findings that start at the same offset.
var allRuleConstructors = []ruleConstructor{
	NewJoinInFilterRule,
	NewJoinToGetIDRule,
	NewComputedValueInFilterRule,
	NewNonLiteralComparisonRule,
	NewMatchOnIDRule,
	NewOrderOnExprRule,
	NewDeepPaginationRule,
	NewDeepPaginationParamRule,
	NewLargePagesRule,
	NewCountInCorrelatedSubqueryRule,
	NewRepeatedDereferenceRule,
	NewManyJoinsRule,
	NewVeryLargeQueryRule,
	NewExtremelyLargeQueryRule,
}

// DefaultRules returns a fresh instance of every registered rule.
func DefaultRules() []LintRule {
	rules := make([]LintRule, len(allRuleConstructors))
	for i, newRule := range allRuleConstructors {
		rules[i] = newRule()
	}
	return rules
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.registerDefaultRules()

	// Iterate over the rules and apply severity
	for key, rule := range rules {
		r := e.findRule(key)
		if r == nil {
			// Unknown rule, continue to the next one
			continue
		}
		if rule.Severity == tt.SeverityOff {
			e.IgnoreRule(key)
			continue
		}
		r.SetSeverity(rule.Severity)
	}
}

func (e *Engine) registerDefaultRules() {
	e.rules = e.rules[:0]
	for _, r := range DefaultRules() {
		if r.Severity() != tt.SeverityOff {
			e.rules = append(e.rules, r)
		}
	}
}

func (e *Engine) findRule(name string) LintRule {
	for _, r := range e.rules {
		if r.Name() == name {
			return r
		}
	}
	return nil
}

// Rules returns the active rules in registration order.
func (e *Engine) Rules() []LintRule {
	active := make([]LintRule, 0, len(e.rules))
	for _, r := range e.rules {
		if !e.ignoredRules[r.Name()] {
			active = append(active, r)
		}
	}
	return active
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// RunSource parses source and lints the resulting query.
func (e *Engine) RunSource(source string) ([]tt.Finding, error) {
	q, err := parser.Parse(source, parser.WithMaxDepth(e.maxDepth))
	if err != nil {
		return nil, err
	}
	return e.Run(q)
}

// Run applies all active rules to q in a single pre-order traversal and
// returns the findings sorted by span start, then rule registration order.
func (e *Engine) Run(q *ast.Query) ([]tt.Finding, error) {
	w := walker{
		engine: e,
		rules:  e.Rules(),
		ctx:    lints.NewContext(q),
		size:   len(q.Source),
	}
	if err := w.visit(q); err != nil {
		return nil, err
	}

	sort.SliceStable(w.found, func(i, j int) bool {
		a, b := w.found[i], w.found[j]
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		return a.order < b.order
	})

	return e.filterNolintFindings(q, w.found), nil
}

type rankedFinding struct {
	tt.Finding
	order int
}

type walker struct {
	engine *Engine
	rules  []LintRule
	ctx    *lints.Context
	size   int
	found  []rankedFinding
}

func (w *walker) visit(n ast.Node) error {
	span := n.Span()
	if !span.Valid(w.size) {
		return &tt.RuleInternalFault{Pos: span, Msg: fmt.Sprintf("%T has span outside the source", n)}
	}
	if parent := w.ctx.Node(); parent != nil && !parent.Span().Contains(span) {
		return &tt.RuleInternalFault{
			Pos: span,
			Msg: fmt.Sprintf("%T span %s is not within %T span %s", n, span, parent, parent.Span()),
		}
	}

	w.ctx.Push(n)
	defer w.ctx.Pop()

	for i, r := range w.rules {
		for _, f := range w.engine.check(r, w.ctx, n) {
			if !f.Span.Valid(w.size) {
				return &tt.RuleInternalFault{
					Pos:  f.Span,
					Rule: r.Name(),
					Msg:  "finding span lies outside the source",
				}
			}
			if f.RuleID == "" {
				f.RuleID = r.Name()
			}
			f.Severity = r.Severity()
			w.found = append(w.found, rankedFinding{Finding: f, order: i})
		}
	}

	for _, child := range ast.Children(n) {
		if err := w.visit(child); err != nil {
			return err
		}
	}
	return nil
}

// check runs a single rule on a node. A rule that panics produces no
// findings for that node.
func (e *Engine) check(r LintRule, ctx *lints.Context, n ast.Node) (findings []tt.Finding) {
	defer func() {
		if p := recover(); p != nil {
			e.logger.Debug("lint rule panicked",
				zap.String("rule", r.Name()),
				zap.Stringer("span", n.Span()),
				zap.Any("panic", p),
			)
			findings = nil
		}
	}()
	return r.Check(ctx, n)
}

// filterNolintFindings filters findings based on nolint comments.
func (e *Engine) filterNolintFindings(q *ast.Query, found []rankedFinding) []tt.Finding {
	if len(found) == 0 {
		return []tt.Finding{}
	}
	nolintMgr := nolint.ParseComments(q)
	filtered := make([]tt.Finding, 0, len(found))
	for _, f := range found {
		if !nolintMgr.IsNolint(f.Span.Start, f.RuleID) {
			filtered = append(filtered, f.Finding)
		}
	}
	return filtered
}

// SyntaxErrorRule is the rule name of issues reported for files that do
// not parse.
const SyntaxErrorRule = "syntax-error"

// RunFile lints a query file and returns its findings as issues. A file
// that fails to parse yields a single SyntaxErrorRule issue.
func (e *Engine) RunFile(filename string) ([]tt.Issue, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	src := string(content)
	findings, err := e.RunSource(src)
	if err == nil {
		return tt.NewIssues(filename, src, findings), nil
	}

	var fault *tt.RuleInternalFault
	var spanned tt.Spanned
	if errors.As(err, &fault) || !errors.As(err, &spanned) {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	issue := tt.NewIssue(filename, src, tt.Finding{
		RuleID:   SyntaxErrorRule,
		Message:  err.Error(),
		Severity: tt.SeverityError,
		Span:     spanned.Span(),
	})
	return []tt.Issue{issue}, nil
}

// IsQueryFile reports whether name looks like a GROQ query file.
func IsQueryFile(name string) bool {
	return strings.HasSuffix(name, ".groq")
}

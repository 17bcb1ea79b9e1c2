package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"

	"github.com/gnolang/groqlint/internal/ast"
	"github.com/gnolang/groqlint/internal/format"
	"github.com/gnolang/groqlint/internal/lints"
	"github.com/gnolang/groqlint/internal/parser"
	tt "github.com/gnolang/groqlint/internal/types"
)

type panicRule struct{ severityHolder }

func (r *panicRule) Check(*lints.Context, ast.Node) []tt.Finding { panic("boom") }
func (r *panicRule) Name() string { return "panics" }

type badSpanRule struct{ severityHolder }

func (r *badSpanRule) Check(_ *lints.Context, n ast.Node) []tt.Finding {
	if _, ok := n.(*ast.Query); !ok {
		return nil
	}
	return []tt.Finding{{Message: "out of range", Span: tt.NewSpan(0, 1<<20)}}
}
func (r *badSpanRule) Name() string { return "bad-span" }

func ruleIDs(findings []tt.Finding) []string {
	ids := make([]string, len(findings))
	for i, f := range findings {
		ids[i] = f.RuleID
	}
	return ids
}

func TestNewEngine(t *testing.T) {
	t.Parallel()
	engine := NewEngine(nil)
	require.Len(t, engine.Rules(), len(allRuleConstructors))
	assert.Equal(t, lints.RuleJoinInFilter, engine.Rules()[0].Name())
	assert.Equal(t, lints.RuleExtremelyLargeQuery, engine.Rules()[len(allRuleConstructors)-1].Name())
}

func TestEngine_IgnoreRule(t *testing.T) {
	t.Parallel()
	engine := NewEngine(nil)
	engine.IgnoreRule(lints.RuleMatchOnID)

	assert.True(t, engine.ignoredRules[lints.RuleMatchOnID])
	for _, r := range engine.Rules() {
		assert.NotEqual(t, lints.RuleMatchOnID, r.Name())
	}
}

func TestEngine_ApplyRules(t *testing.T) {
	t.Parallel()
	engine := NewEngine(map[string]tt.ConfigRule{
		lints.RuleMatchOnID:            {Severity: tt.SeverityError},
		lints.RuleNonLiteralComparison: {Severity: tt.SeverityOff},
		"no-such-rule":                 {Severity: tt.SeverityError},
	})

	findings, err := engine.RunSource(`*[_id match "a*" && a == b]`)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, lints.RuleMatchOnID, findings[0].RuleID)
	assert.Equal(t, tt.SeverityError, findings[0].Severity)
}

func TestEngine_Run(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"clean query", `*[_type == "post"]`, nil},
		{
			"sorted by start then registration",
			`*[a == b && author->_id == "x"]`,
			[]string{lints.RuleNonLiteralComparison, lints.RuleJoinInFilter, lints.RuleJoinToGetID},
		},
		{
			"inline nolint",
			"*[a == b] //nolint:non-literal-comparison",
			nil,
		},
		{
			"nolint for another rule",
			"*[a == b] //nolint:large-pages",
			[]string{lints.RuleNonLiteralComparison},
		},
		{
			"pagination",
			`*[_type == "post"] | order(_createdAt desc) [1000...1200]`,
			[]string{lints.RuleDeepPagination, lints.RuleLargePages},
		},
	}

	engine := NewEngine(nil)
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			findings, err := engine.RunSource(tc.query)
			require.NoError(t, err)
			if tc.expected == nil {
				assert.Empty(t, findings)
				return
			}
			assert.Equal(t, tc.expected, ruleIDs(findings))
		})
	}
}

func TestEngine_Deterministic(t *testing.T) {
	t.Parallel()
	src := `*[_type == "post" && a == b]{"a": author->name, "b": author->bio, "c": count(*[ref._ref == ^._id])}[0...500]`
	engine := NewEngine(nil)

	first, err := engine.RunSource(src)
	require.NoError(t, err)
	require.NotEmpty(t, first)
	for i := 0; i < 5; i++ {
		again, err := engine.RunSource(src)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	for i := 1; i < len(first); i++ {
		assert.LessOrEqual(t, first[i-1].Span.Start, first[i].Span.Start)
	}
}

func TestEngine_RecoversRulePanic(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	engine := NewEngine(nil, WithLogger(zap.New(core)))
	engine.rules = append([]LintRule{&panicRule{}}, engine.rules...)

	findings, err := engine.RunSource(`*[a == b]`)
	require.NoError(t, err)
	assert.Equal(t, []string{lints.RuleNonLiteralComparison}, ruleIDs(findings))
	assert.NotZero(t, logs.FilterMessage("lint rule panicked").Len())
}

func TestEngine_RuleInternalFault(t *testing.T) {
	t.Parallel()

	t.Run("finding outside source", func(t *testing.T) {
		t.Parallel()
		engine := NewEngine(nil)
		engine.rules = append(engine.rules, &badSpanRule{})
		findings, err := engine.RunSource(`*[a == b]`)
		assert.Nil(t, findings)
		var fault *tt.RuleInternalFault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, "bad-span", fault.Rule)
	})

	t.Run("child escapes parent", func(t *testing.T) {
		t.Parallel()
		q := &ast.Query{
			Source: "abcdefghij",
			Pos:    tt.NewSpan(0, 10),
			Expr: &ast.Group{
				Pos: tt.NewSpan(0, 3),
				X:   &ast.Ident{Name: "a", Pos: tt.NewSpan(4, 6)},
			},
		}
		findings, err := NewEngine(nil).Run(q)
		assert.Nil(t, findings)
		var fault *tt.RuleInternalFault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, tt.NewSpan(4, 6), fault.Span())
	})
}

func TestEngine_ParseErrors(t *testing.T) {
	t.Parallel()
	_, err := NewEngine(nil).RunSource(`*[_type==`)
	var syn *tt.SyntaxError
	require.ErrorAs(t, err, &syn)
	assert.Equal(t, tt.NewSpan(9, 9), syn.Span())

	_, err = NewEngine(nil, WithMaxDepth(4)).RunSource(`((((((1))))))`)
	var limit *tt.ResourceLimitError
	require.ErrorAs(t, err, &limit)
	assert.Equal(t, 4, limit.Limit)
	assert.NotEqual(t, parser.DefaultMaxDepth, limit.Limit)
}

func TestEngine_RunFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	good := filepath.Join(dir, "good.groq")
	bad := filepath.Join(dir, "bad.groq")
	require.NoError(t, os.WriteFile(good, []byte("*[_type == \"post\"]\n{title, \"n\": count(tags)}[0...200]"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("*[_type ==\n"), 0o644))

	engine := NewEngine(nil)

	issues, err := engine.RunFile(good)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, lints.RuleLargePages, issues[0].Rule)
	assert.Equal(t, good, issues[0].Filename)
	assert.Equal(t, 2, issues[0].Start.Line)

	issues, err = engine.RunFile(bad)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, SyntaxErrorRule, issues[0].Rule)
	assert.Equal(t, tt.SeverityError, issues[0].Severity)
	assert.Equal(t, 2, issues[0].Start.Line)
	assert.Equal(t, 1, issues[0].Start.Column)

	_, err = engine.RunFile(filepath.Join(dir, "missing.groq"))
	assert.Error(t, err)
}

// Lint and format only read the tree, so they may share one parse.
func TestEngine_SharedQueryConcurrently(t *testing.T) {
	t.Parallel()
	src := `// posts
*[_type == "post" && author->name == "x"] | order(publishedAt desc)[0...200]{
  title, "a": author->name, "b": author->bio //nolint:repeated-dereference
}`
	q, err := parser.Parse(src)
	require.NoError(t, err)

	engine := NewEngine(nil)
	wantFindings, err := engine.Run(q)
	require.NoError(t, err)
	wantText := format.Format(q, format.WithWidth(40))
	wantSexp := ast.Sexp(q)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			findings, err := engine.Run(q)
			if err != nil {
				return err
			}
			assert.Equal(t, wantFindings, findings)
			return nil
		})
		g.Go(func() error {
			assert.Equal(t, wantText, format.Format(q, format.WithWidth(40)))
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, wantSexp, ast.Sexp(q))
}

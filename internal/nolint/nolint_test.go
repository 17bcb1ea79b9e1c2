package nolint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/groqlint/internal/parser"
	tt "github.com/gnolang/groqlint/internal/types"
)

func TestParseNolintRules(t *testing.T) {
	t.Parallel()
	result := parseIgnoreRuleNames("rule1, rule2,rule3,")
	assert.Len(t, result, 3)
	for _, rule := range []string{"rule1", "rule2", "rule3"} {
		assert.Contains(t, result, rule)
	}
	assert.Empty(t, parseIgnoreRuleNames(""))
}

func TestParseComments(t *testing.T) {
	t.Parallel()
	src := strings.Join([]string{
		`*[_type == "post"]{`,
		`  "a": author->name, //nolint:join-in-filter`,
		`  //nolint`,
		`  "b": author->bio,`,
		`  "c": c->d`,
		`}`,
	}, "\n")
	q, err := parser.Parse(src)
	require.NoError(t, err)

	m := ParseComments(q)
	line := tt.NewLineIndex(src).LineStart

	assert.True(t, m.IsNolint(line(2)+2, "join-in-filter"))
	assert.False(t, m.IsNolint(line(2)+2, "repeated-dereference"))
	assert.True(t, m.IsNolint(line(4)+2, "repeated-dereference"))
	assert.True(t, m.IsNolint(line(3)+2, "anything"))
	assert.False(t, m.IsNolint(line(5)+2, "join-in-filter"))
	assert.False(t, m.IsNolint(line(1), "join-in-filter"))
}

func TestLeadingCommentCoversQuery(t *testing.T) {
	t.Parallel()
	src := "//nolint:large-pages\n*[0...500]\n{\n  title\n}"
	q, err := parser.Parse(src)
	require.NoError(t, err)

	m := ParseComments(q)
	assert.True(t, m.IsNolint(len(src)-1, "large-pages"))
	assert.True(t, m.IsNolint(0, "large-pages"))
	assert.False(t, m.IsNolint(len(src)-1, "deep-pagination"))
}

func TestInvalidNolintComments(t *testing.T) {
	t.Parallel()
	for _, src := range []string{
		"*[a] //nolintfoo",
		"*[a] //nolint:",
		"*[a] // nolint",
		"*[a] // regular comment",
	} {
		q, err := parser.Parse(src)
		require.NoError(t, err)
		m := ParseComments(q)
		assert.False(t, m.IsNolint(0, "non-literal-comparison"), src)
	}
}

package lint

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/groqlint/internal/lints"
	tt "github.com/gnolang/groqlint/internal/types"
)

func TestLint(t *testing.T) {
	t.Parallel()

	findings, err := Lint(`*[_type == "post"][0...200]`)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, lints.RuleLargePages, findings[0].RuleID)
	assert.Equal(t, tt.SeverityWarning, findings[0].Severity)
	assert.Equal(t, tt.NewSpan(19, 26), findings[0].Span)

	findings, err = Lint(`*[_type == "post"]{title}`)
	require.NoError(t, err)
	assert.Empty(t, findings)

	_, err = Lint(`*[_type ==`)
	var syn *tt.SyntaxError
	assert.ErrorAs(t, err, &syn)
}

func TestFormat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		query    string
		width    int
		expected string
	}{
		{"default width", `*[_type=="post"]{title}`, 0, `*[_type == "post"]{title}`},
		{"explicit width", `*{title, body, slug}`, 8, "*{\n  title,\n  body,\n  slug\n}"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := Format(tt.query, tt.width)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}

	_, err := Format(`*`, -1)
	assert.ErrorIs(t, err, ErrInvalidWidth)

	_, err = Format(`*[`, 80)
	var syn *tt.SyntaxError
	assert.ErrorAs(t, err, &syn)
}

func TestLongOrChain(t *testing.T) {
	t.Parallel()

	query := "*[" + strings.TrimSuffix(strings.Repeat("a == 1 || ", 1000), " || ") + "]"

	findings, err := Lint(query)
	require.NoError(t, err)
	assert.Empty(t, findings)

	out, err := Format(query, 80)
	require.NoError(t, err)
	assert.Equal(t, 1002, strings.Count(out, "\n")+1, "one term per line plus the brackets")

	again, err := Format(out, 80)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestLintJSON(t *testing.T) {
	t.Parallel()

	out, err := LintJSON(`*[_type == "post"]`)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)

	out, err = LintJSON(`*[author->name == "x"][0...200]`)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, lints.RuleJoinInFilter, got[0]["ruleId"])
	assert.Equal(t, "error", got[0]["severity"])
	assert.Equal(t, lints.RuleLargePages, got[1]["ruleId"])
	assert.Equal(t, "warning", got[1]["severity"])
	assert.EqualValues(t, 23, got[1]["start"])
	assert.EqualValues(t, 30, got[1]["end"])
	assert.NotEmpty(t, got[1]["message"])

	_, err = LintJSON(`*[title == "abc]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Lint error: ")
	var lexErr *tt.LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, tt.NewSpan(11, 16), lexErr.Span())
}

func TestFormatQuery(t *testing.T) {
	t.Parallel()

	out, err := FormatQuery(`*[_type=="post"]`, nil)
	require.NoError(t, err)
	assert.Equal(t, `*[_type == "post"]`, out)

	width := 8
	out, err = FormatQuery(`[1, 2, 3, 4]`, &width)
	require.NoError(t, err)
	assert.Equal(t, "[\n  1,\n  2,\n  3,\n  4\n]", out)

	width = -1
	_, err = FormatQuery(`*`, &width)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Format error: ")
	assert.True(t, errors.Is(err, ErrInvalidWidth))

	_, err = FormatQuery(`*[a] b`, nil)
	var syn *tt.SyntaxError
	require.ErrorAs(t, err, &syn)
	assert.Equal(t, tt.NewSpan(5, 6), syn.Span())
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, ".groqlint.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`name: test
rules:
  large-pages:
    severity: error
  join-in-filter:
    severity: "off"
format:
  width: 60
`), 0o644))

	tomlPath := filepath.Join(dir, ".groqlint.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`name = "test"

[rules.large-pages]
severity = "error"

[rules.join-in-filter]
severity = "off"

[format]
width = 60
`), 0o644))

	for _, path := range []string{yamlPath, tomlPath} {
		config, err := LoadConfig(path)
		require.NoError(t, err, path)
		assert.Equal(t, "test", config.Name)
		assert.Equal(t, 60, config.Format.Width)
		assert.Equal(t, tt.SeverityError, config.Rules[lints.RuleLargePages].Severity)
		assert.Equal(t, tt.SeverityOff, config.Rules[lints.RuleJoinInFilter].Severity)

		engine, err := New(path)
		require.NoError(t, err)
		findings, err := engine.RunSource(`*[author->name == "x"][0...200]`)
		require.NoError(t, err)
		require.Len(t, findings, 1, path)
		assert.Equal(t, lints.RuleLargePages, findings[0].RuleID)
		assert.Equal(t, tt.SeverityError, findings[0].Severity)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	badSeverity := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badSeverity, []byte("rules:\n  large-pages:\n    severity: loud\n"), 0o644))
	_, err = LoadConfig(badSeverity)
	assert.Error(t, err)

	badWidth := filepath.Join(dir, "width.yaml")
	require.NoError(t, os.WriteFile(badWidth, []byte("format:\n  width: -3\n"), 0o644))
	_, err = LoadConfig(badWidth)
	assert.ErrorIs(t, err, ErrInvalidWidth)

	_, err = New(badSeverity)
	assert.Error(t, err)
}

func TestDefaultConfigRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)

	config := DefaultConfig()
	assert.Len(t, config.Rules, 14)
	assert.Equal(t, tt.SeverityInfo, config.Rules[lints.RuleMatchOnID].Severity)

	require.NoError(t, WriteConfig(path, config))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

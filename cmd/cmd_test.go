package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/groqlint/internal/lints"
	tt "github.com/gnolang/groqlint/internal/types"
	"github.com/gnolang/groqlint/lint"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	lint.ProgressOutput = io.Discard
	os.Exit(m.Run())
}

// The commands share package level flag variables, so these tests run
// sequentially and reset the flags before each invocation.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgFile, verbose = "", false
	ignoreRules, lintJsonOutput, outPath, useCache = "", false, "", false
	fmtWidth, fmtWrite, fmtList = 0, false, false
	forceInit = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeQuery(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestLintCommand(t *testing.T) {
	dir := t.TempDir()
	posts := writeQuery(t, dir, "posts.groq", `*[_type == "post"][0...200]`)
	writeQuery(t, dir, "clean.groq", `*[_type == "post"]{title}`)

	out, err := execute(t, "", "lint", dir)
	assert.ErrorIs(t, err, errIssuesFound)
	assert.Contains(t, out, "warning: large-pages")
	assert.Contains(t, out, posts+":1:20")
	assert.NotContains(t, out, "clean.groq")

	out, err = execute(t, "", posts)
	assert.ErrorIs(t, err, errIssuesFound, "paths without a subcommand are linted")
	assert.Contains(t, out, "large-pages")

	out, err = execute(t, "", "lint", "--ignore", lints.RuleLargePages, dir)
	assert.NoError(t, err)
	assert.Empty(t, out)

	_, err = execute(t, "", "lint")
	assert.Error(t, err)
}

func TestLintCommandJSON(t *testing.T) {
	dir := t.TempDir()
	posts := writeQuery(t, dir, "posts.groq", "*[author->name == $name]")

	out, err := execute(t, "", "lint", "--json", posts)
	assert.ErrorIs(t, err, errIssuesFound)

	var got map[string][]tt.Issue
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got[posts], 1)
	assert.Equal(t, lints.RuleJoinInFilter, got[posts][0].Rule)
	assert.Equal(t, tt.SeverityError, got[posts][0].Severity)

	report := filepath.Join(dir, "report.json")
	out, err = execute(t, "", "lint", "--json", "-o", report, posts)
	assert.ErrorIs(t, err, errIssuesFound)
	assert.Empty(t, out)
	assert.FileExists(t, report)
}

func TestLintCommandSyntaxError(t *testing.T) {
	dir := t.TempDir()
	writeQuery(t, dir, "broken.groq", "*[_type ==")

	out, err := execute(t, "", "lint", dir)
	assert.ErrorIs(t, err, errIssuesFound)
	assert.Contains(t, out, "error: syntax-error")
	assert.Contains(t, out, "^ ")
}

func TestLintCommandConfigAndCache(t *testing.T) {
	dir := t.TempDir()
	posts := writeQuery(t, dir, "posts.groq", `*[_type == "post"][0...200]`)
	config := writeQuery(t, dir, "groqlint.toml", "[rules.large-pages]\nseverity = \"off\"\n")
	cache := filepath.Join(dir, "cache")

	out, err := execute(t, "", "--config", config, "lint", posts)
	assert.NoError(t, err)
	assert.Empty(t, out)

	for i := 0; i < 2; i++ {
		_, err = execute(t, "", "lint", "--cache", "--cache-dir", cache, posts)
		assert.ErrorIs(t, err, errIssuesFound)
	}
	assert.FileExists(t, filepath.Join(cache, "lint_cache.gob"))

	out, err = execute(t, "", "lint", "--cache", "--cache-dir", cache, "--ignore", "large-pages", posts)
	assert.NoError(t, err, "ignored rules must not be served from the cache")
	assert.Empty(t, out)

	_, err = execute(t, "", "lint", "--cache", "--cache-dir", cache, posts)
	assert.ErrorIs(t, err, errIssuesFound)
}

func TestIgnoredRuleNames(t *testing.T) {
	assert.Nil(t, ignoredRuleNames(""))
	assert.Equal(t, []string{"large-pages", "match-on-id"}, ignoredRuleNames(" large-pages, ,match-on-id,"))
}

func TestFmtCommand(t *testing.T) {
	dir := t.TempDir()
	messy := writeQuery(t, dir, "messy.groq", `*[_type=="post"]{title}`)
	tidy := writeQuery(t, dir, "tidy.groq", "*[_type == \"post\"]{title}\n")

	out, err := execute(t, "", "fmt", messy)
	require.NoError(t, err)
	assert.Equal(t, "*[_type == \"post\"]{title}\n", out)

	out, err = execute(t, "", "fmt", "-l", dir)
	require.NoError(t, err)
	assert.Equal(t, messy+"\n", out)

	out, err = execute(t, "", "fmt", "-w", dir)
	require.NoError(t, err)
	assert.Empty(t, out)
	got, err := os.ReadFile(messy)
	require.NoError(t, err)
	assert.Equal(t, "*[_type == \"post\"]{title}\n", string(got))
	got, err = os.ReadFile(tidy)
	require.NoError(t, err)
	assert.Equal(t, "*[_type == \"post\"]{title}\n", string(got))

	out, err = execute(t, "", "fmt", "-l", dir)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFmtCommandStdin(t *testing.T) {
	out, err := execute(t, "*{title, body, slug}", "fmt", "--width", "8")
	require.NoError(t, err)
	assert.Equal(t, "*{\n  title,\n  body,\n  slug\n}\n", out)

	_, err = execute(t, "*[", "fmt")
	var syn *tt.SyntaxError
	assert.ErrorAs(t, err, &syn)

	_, err = execute(t, "*", "fmt", "--width", "-2")
	assert.ErrorIs(t, err, lint.ErrInvalidWidth)
}

func TestFmtCommandWidthFromConfig(t *testing.T) {
	dir := t.TempDir()
	config := writeQuery(t, dir, "groqlint.yaml", "format:\n  width: 8\n")

	out, err := execute(t, "[1, 2, 3]", "--config", config, "fmt")
	require.NoError(t, err)
	assert.Equal(t, "[\n  1,\n  2,\n  3\n]\n", out)
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), lint.DefaultConfigFile)

	out, err := execute(t, "", "--config", path, "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	config, err := lint.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, lint.DefaultConfig(), config)

	_, err = execute(t, "", "--config", path, "init")
	assert.Error(t, err)

	_, err = execute(t, "", "--config", path, "init", "--force")
	assert.NoError(t, err)
}

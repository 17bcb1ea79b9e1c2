package lint

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/groqlint/internal"
	tt "github.com/gnolang/groqlint/internal/types"
)

func TestMain(m *testing.M) {
	ProgressOutput = io.Discard
	os.Exit(m.Run())
}

type mockLintEngine struct {
	mock.Mock
}

func (m *mockLintEngine) RunFile(filePath string) ([]tt.Issue, error) {
	args := m.Called(filePath)
	issues, _ := args.Get(0).([]tt.Issue)
	return issues, args.Error(1)
}

func (m *mockLintEngine) RunSource(source string) ([]tt.Finding, error) {
	args := m.Called(source)
	findings, _ := args.Get(0).([]tt.Finding)
	return findings, args.Error(1)
}

func (m *mockLintEngine) IgnoreRule(rule string) {
	m.Called(rule)
}

func createTempFiles(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(paths[i]), 0o755))
		require.NoError(t, os.WriteFile(paths[i], []byte("*[_type == \"post\"]"), 0o644))
	}
	return paths
}

func issueFor(path, rule string) tt.Issue {
	return tt.Issue{
		Rule:     rule,
		Filename: path,
		Message:  "Test issue",
		Start:    tt.Position{Filename: path, Offset: 0, Line: 1, Column: 1},
		End:      tt.Position{Filename: path, Offset: 10, Line: 1, Column: 11},
	}
}

func TestProcessFile(t *testing.T) {
	t.Parallel()
	expected := []tt.Issue{issueFor("test.groq", "test-rule")}
	engine := new(mockLintEngine)
	engine.On("RunFile", "test.groq").Return(expected, nil)

	issues, err := ProcessFile(engine, "test.groq")

	assert.NoError(t, err)
	assert.Equal(t, expected, issues)
	engine.AssertExpectations(t)
}

func TestProcessSource(t *testing.T) {
	t.Parallel()
	source := "*\n[a == b]"
	engine := new(mockLintEngine)
	engine.On("RunSource", source).Return([]tt.Finding{
		{RuleID: "test-rule", Message: "Test issue", Severity: tt.SeverityWarning, Span: tt.NewSpan(3, 9)},
	}, nil)

	issues, err := ProcessSource(engine, []byte(source))

	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "test-rule", issues[0].Rule)
	assert.Equal(t, tt.Position{Offset: 3, Line: 2, Column: 2}, issues[0].Start)
	assert.Equal(t, tt.Position{Offset: 9, Line: 2, Column: 8}, issues[0].End)
	engine.AssertExpectations(t)

	engine = new(mockLintEngine)
	engine.On("RunSource", "*[").Return(nil, errors.New("broken"))
	_, err = ProcessSource(engine, []byte("*["))
	assert.EqualError(t, err, "broken")
}

func TestProcessPath(t *testing.T) {
	t.Parallel()
	logger, _ := zap.NewDevelopment()
	dir := t.TempDir()

	paths := createTempFiles(t, dir, "b.groq", "a.groq", "nested/c.groq", "notes.txt")
	a, b, c := paths[1], paths[0], paths[2]

	engine := new(mockLintEngine)
	engine.On("RunFile", a).Return([]tt.Issue{issueFor(a, "rule1")}, nil)
	engine.On("RunFile", b).Return([]tt.Issue{issueFor(b, "rule2")}, nil)
	engine.On("RunFile", c).Return(nil, errors.New("unreadable"))

	issues, err := ProcessPath(context.Background(), logger, engine, dir, ProcessFile)

	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, a, issues[0].Filename)
	assert.Equal(t, b, issues[1].Filename)
	engine.AssertExpectations(t)
	engine.AssertNotCalled(t, "RunFile", paths[3])
}

func TestProcessPathSingleFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	paths := createTempFiles(t, dir, "q.groq", "readme.md")

	engine := new(mockLintEngine)
	engine.On("RunFile", paths[0]).Return([]tt.Issue{issueFor(paths[0], "rule1")}, nil)

	issues, err := ProcessPath(context.Background(), nil, engine, paths[0], ProcessFile)
	require.NoError(t, err)
	assert.Len(t, issues, 1)

	issues, err = ProcessPath(context.Background(), nil, engine, paths[1], ProcessFile)
	require.NoError(t, err)
	assert.Empty(t, issues)

	_, err = ProcessPath(context.Background(), nil, engine, filepath.Join(dir, "missing"), ProcessFile)
	assert.Error(t, err)
	engine.AssertExpectations(t)
}

func TestProcessPathContextCancellation(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	createTempFiles(t, dir, "a.groq", "b.groq", "c.groq")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := new(mockLintEngine)
	issues, err := ProcessPath(ctx, nil, engine, dir, ProcessFile)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, issues)
	engine.AssertNotCalled(t, "RunFile", mock.Anything)
}

func TestProcessFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	paths := createTempFiles(t, dir, "one/a.groq", "two/b.groq")

	engine := new(mockLintEngine)
	engine.On("RunFile", paths[0]).Return([]tt.Issue{issueFor(paths[0], "rule1")}, nil)
	engine.On("RunFile", paths[1]).Return([]tt.Issue{issueFor(paths[1], "rule2")}, nil)

	issues, err := ProcessFiles(context.Background(), nil, engine,
		[]string{filepath.Join(dir, "two"), filepath.Join(dir, "one")}, ProcessFile)

	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "rule2", issues[0].Rule)
	assert.Equal(t, "rule1", issues[1].Rule)

	_, err = ProcessFiles(context.Background(), zap.NewNop(), engine,
		[]string{filepath.Join(dir, "missing")}, ProcessFile)
	assert.Error(t, err)
}

func TestCachedProcessor(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	paths := createTempFiles(t, dir, "q.groq")

	cache, err := internal.NewCache(filepath.Join(dir, ".cache"), "")
	require.NoError(t, err)

	var calls atomic.Int32
	counting := func(engine LintEngine, path string) ([]tt.Issue, error) {
		calls.Add(1)
		return ProcessFile(engine, path)
	}
	process := CachedProcessor(cache, counting)
	engine := internal.NewEngine(nil)

	first, err := process(engine, paths[0])
	require.NoError(t, err)
	second, err := process(engine, paths[0])
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, calls.Load())

	require.NoError(t, os.WriteFile(paths[0], []byte("*[0...500]"), 0o644))
	third, err := process(engine, paths[0])
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
	assert.NotEmpty(t, third)

	_, err = process(engine, filepath.Join(dir, "missing.groq"))
	assert.Error(t, err)
}

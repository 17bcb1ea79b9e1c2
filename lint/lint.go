// Package lint is the public entry point of groqlint: linting and formatting
// of single queries, the JSON boundary used by embedders, and concurrent
// processing of query files.
package lint

import (
	"errors"
	"fmt"

	"github.com/gnolang/groqlint/internal"
	"github.com/gnolang/groqlint/internal/format"
	"github.com/gnolang/groqlint/internal/parser"
	tt "github.com/gnolang/groqlint/internal/types"
)

// ErrInvalidWidth is returned by Format for a negative line width.
var ErrInvalidWidth = errors.New("invalid width")

type LintEngine interface {
	RunFile(filename string) ([]tt.Issue, error)
	RunSource(source string) ([]tt.Finding, error)
	IgnoreRule(rule string)
}

// New creates an engine configured from the file at configurationPath.
// An empty path yields the default rule set.
func New(configurationPath string, opts ...internal.EngineOption) (*internal.Engine, error) {
	if configurationPath == "" {
		return internal.NewEngine(nil, opts...), nil
	}
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}
	return internal.NewEngine(config.Rules, opts...), nil
}

// Lint parses query and runs the default rule set over it. Findings are
// ordered by span start, then rule registration order.
func Lint(query string) ([]tt.Finding, error) {
	return internal.NewEngine(nil).RunSource(query)
}

// Format parses query and renders it in canonical form. A width of zero
// selects format.DefaultWidth.
func Format(query string, width int) (string, error) {
	if width < 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	q, err := parser.Parse(query)
	if err != nil {
		return "", err
	}
	return format.Format(q, format.WithWidth(width)), nil
}

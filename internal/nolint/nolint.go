package nolint

import (
	"fmt"
	"strings"

	"github.com/gnolang/groqlint/internal/ast"
	"github.com/gnolang/groqlint/internal/lexer"
	tt "github.com/gnolang/groqlint/internal/types"
)

const nolintPrefix = "//nolint"

// Manager manages nolint scopes and checks if a position is nolinted.
type Manager struct {
	scopes []nolintScope
	lines  *tt.LineIndex
}

// nolintScope represents a range of lines where nolint applies.
type nolintScope struct {
	rules map[string]struct{}
	start int
	end   int
}

// ParseComments parses nolint comments of the given query and returns a Manager.
func ParseComments(q *ast.Query) *Manager {
	manager := Manager{
		scopes: make([]nolintScope, 0, len(q.Comments)),
		lines:  tt.NewLineIndex(q.Source),
	}
	firstToken := q.Expr.Span().Start
	lastLine := manager.lines.Line(len(q.Source))

	for _, comment := range q.Comments {
		ns, err := manager.parseComment(comment, q.Source, firstToken, lastLine)
		if err != nil {
			// ignore invalid nolint comments
			continue
		}
		manager.scopes = append(manager.scopes, ns)
	}
	return &manager
}

// parseComment parses a single nolint comment and determines its scope.
func (m *Manager) parseComment(comment lexer.Comment, src string, firstToken, lastLine int) (nolintScope, error) {
	var ns nolintScope
	text := strings.TrimRight(comment.Text, " \t")

	if !strings.HasPrefix(text, nolintPrefix) {
		return ns, fmt.Errorf("invalid nolint comment")
	}
	rest := text[len(nolintPrefix):]

	// A nolint comment can either have a list of rules after a colon (:)
	// or if no rules are specified, it applies to all rules
	if len(rest) > 0 && rest[0] != ':' {
		return ns, fmt.Errorf("invalid nolint comment format")
	}
	if len(rest) > 0 {
		rest = strings.TrimSpace(rest[1:])
		if rest == "" {
			return ns, fmt.Errorf("invalid nolint comment: no rules specified after colon")
		}
	}
	ns.rules = parseIgnoreRuleNames(rest)

	line := m.lines.Line(comment.Span.Start)

	// If the comment appears before the query, apply it to the entire query
	if comment.Span.End <= firstToken {
		ns.start, ns.end = 1, lastLine
		return ns, nil
	}

	// Inline comments apply to their own line
	if isInlineComment(src, comment, m.lines.LineStart(line)) {
		ns.start, ns.end = line, line
		return ns, nil
	}

	// Standalone comments apply to the following line
	ns.start, ns.end = line, line+1
	return ns, nil
}

// parseIgnoreRuleNames parses the rule list from the nolint comment.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if text == "" {
		return rulesMap
	}
	for _, rule := range strings.Split(text, ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// isInlineComment reports whether code precedes the comment on its line.
func isInlineComment(src string, comment lexer.Comment, lineStart int) bool {
	return strings.TrimSpace(src[lineStart:comment.Span.Start]) != ""
}

// IsNolint checks if a finding starting at offset is nolinted for ruleName.
func (m *Manager) IsNolint(offset int, ruleName string) bool {
	line := m.lines.Line(offset)
	for _, ns := range m.scopes {
		if line < ns.start || line > ns.end {
			continue
		}
		// If the rules list is empty, nolint applies to all rules
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[ruleName]; exists {
			return true
		}
	}
	return false
}

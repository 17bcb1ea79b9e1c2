package types

import (
	"fmt"
	"strings"
)

// LexError reports a malformed token.
type LexError struct {
	Pos Span
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %s: %s", e.Pos, e.Msg)
}

func (e *LexError) Span() Span { return e.Pos }

// SyntaxError reports a token the parser could not accept.
// Expected lists the token kinds (or constructs) that would have been valid.
type SyntaxError struct {
	Pos      Span
	Expected []string
	Msg      string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error at %s: %s", e.Pos, e.Msg)
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, " (expected %s)", strings.Join(e.Expected, ", "))
	}
	return b.String()
}

func (e *SyntaxError) Span() Span { return e.Pos }

// ExpectedAny reports whether any of kinds is in the expected set.
func (e *SyntaxError) ExpectedAny(kinds ...string) bool {
	for _, want := range kinds {
		for _, got := range e.Expected {
			if got == want {
				return true
			}
		}
	}
	return false
}

// ResourceLimitError reports that a nesting or size guard tripped.
type ResourceLimitError struct {
	Pos   Span
	Limit int
	What  string
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("resource limit exceeded at %s: %s deeper than %d", e.Pos, e.What, e.Limit)
}

func (e *ResourceLimitError) Span() Span { return e.Pos }

// RuleInternalFault reports an inconsistency in the lint traversal itself,
// as opposed to a rule declining to judge a node.
type RuleInternalFault struct {
	Pos  Span
	Rule string
	Msg  string
}

func (e *RuleInternalFault) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("internal lint fault at %s: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("internal lint fault at %s (rule %s): %s", e.Pos, e.Rule, e.Msg)
}

func (e *RuleInternalFault) Span() Span { return e.Pos }

// Spanned is implemented by every error produced by the core.
type Spanned interface {
	error
	Span() Span
}

package types

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) into the query source.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewSpan returns the span covering [start, end).
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

func (s Span) Len() int { return s.End - s.Start }

func (s Span) Empty() bool { return s.Start == s.End }

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Valid reports whether the span is well formed for a source of length n.
func (s Span) Valid(n int) bool {
	return 0 <= s.Start && s.Start <= s.End && s.End <= n
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Finding represents a single lint diagnostic produced by a rule.
type Finding struct {
	RuleID   string
	Message  string
	Severity Severity
	Span     Span
}

// Position is a human readable location in a source file.
// Line and Column are 1-based; Column counts bytes.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Issue represents a lint finding located in a file.
type Issue struct {
	Rule     string
	Filename string
	Message  string
	Severity Severity
	Start    Position
	End      Position
}

// NewIssue resolves the finding's span against src.
func NewIssue(filename, src string, f Finding) Issue {
	return newIssue(filename, NewLineIndex(src), f)
}

// NewIssues resolves every finding against src.
func NewIssues(filename, src string, findings []Finding) []Issue {
	idx := NewLineIndex(src)
	issues := make([]Issue, len(findings))
	for i, f := range findings {
		issues[i] = newIssue(filename, idx, f)
	}
	return issues
}

func newIssue(filename string, idx *LineIndex, f Finding) Issue {
	start := idx.Position(f.Span.Start)
	end := idx.Position(f.Span.End)
	start.Filename = filename
	end.Filename = filename
	return Issue{
		Rule:     f.RuleID,
		Filename: filename,
		Message:  f.Message,
		Severity: f.Severity,
		Start:    start,
		End:      end,
	}
}

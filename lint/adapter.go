package lint

import (
	"encoding/json"
	"fmt"

	tt "github.com/gnolang/groqlint/internal/types"
)

// jsonFinding is the wire form of a finding at the embedding boundary.
type jsonFinding struct {
	RuleID   string `json:"ruleId"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// LintJSON lints query and encodes the findings as a JSON array. Errors,
// including internal panics, are returned as "Lint error: ..." and keep the
// underlying error reachable through errors.As.
func LintJSON(query string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("Lint error: panic: %v", r)
		}
	}()

	findings, err := Lint(query)
	if err != nil {
		return "", fmt.Errorf("Lint error: %w", err)
	}
	wire := make([]jsonFinding, len(findings))
	for i, f := range findings {
		wire[i] = toJSONFinding(f)
	}
	d, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("Lint error: %w", err)
	}
	return string(d), nil
}

// FormatQuery formats query at *width, or at the default width when width
// is nil. Errors are returned as "Format error: ...".
func FormatQuery(query string, width *int) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("Format error: panic: %v", r)
		}
	}()

	w := 0
	if width != nil {
		w = *width
	}
	out, err = Format(query, w)
	if err != nil {
		return "", fmt.Errorf("Format error: %w", err)
	}
	return out, nil
}

func toJSONFinding(f tt.Finding) jsonFinding {
	return jsonFinding{
		RuleID:   f.RuleID,
		Message:  f.Message,
		Severity: f.Severity.Label(),
		Start:    f.Span.Start,
		End:      f.Span.End,
	}
}

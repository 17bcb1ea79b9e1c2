package formatter

// SyntaxErrorFormatter points at the offending position of a query that
// does not parse.
type SyntaxErrorFormatter struct{}

func (f *SyntaxErrorFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .StartLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{caretAndMessage .Message .Padding .StartLine .StartColumn .SnippetLines .CommonIndent}}
`
}

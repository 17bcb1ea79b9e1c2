// Package internal provides the lint engine for GROQ queries.
//
// Key components:
//
// Engine: The main linting engine. It parses a query, walks the syntax tree
// once in pre-order and hands every node to every registered rule, in
// registration order. Findings are sorted by span start, then by rule
// registration order, and filtered through //nolint comments.
//
// LintRule: An interface that defines the contract for all lint rules.
// Each rule wraps a detector from the lints package and carries a
// configurable severity.
//
// Cache: Persists per-file results keyed by content hash so unchanged files
// are not linted again.
//
// Watcher: Re-lints query files when they change on disk.
//
// A rule that panics is treated as having no findings for that node. Only an
// inconsistency in the traversal itself, such as a child span outside its
// parent, fails the run with a RuleInternalFault; partial findings are never
// returned.
//
// Usage:
//
//	engine := internal.NewEngine(nil)
//	findings, err := engine.RunSource(`*[_type == "post"]{title}`)
//	if err != nil {
//	    // handle error
//	}
package internal

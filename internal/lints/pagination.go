package lints

import (
	"fmt"

	"github.com/gnolang/groqlint/internal/ast"
	"github.com/gnolang/groqlint/internal/lexer"
	tt "github.com/gnolang/groqlint/internal/types"
)

const (
	// DeepPaginationOffset is the smallest slice start deep-pagination reports.
	DeepPaginationOffset = 1000
	// LargePageSize is the largest page large-pages accepts.
	LargePageSize = 100
)

func sliceBounds(s *ast.Slice) (start, end *ast.Literal) {
	start, _ = s.Range.X.(*ast.Literal)
	end, _ = s.Range.Y.(*ast.Literal)
	if start != nil && start.Kind != ast.NumberLit {
		start = nil
	}
	if end != nil && end.Kind != ast.NumberLit {
		end = nil
	}
	return start, end
}

// DetectDeepPagination reports slices that skip many documents.
func DetectDeepPagination(_ *Context, node ast.Node) []tt.Finding {
	s, ok := node.(*ast.Slice)
	if !ok {
		return nil
	}
	start, _ := sliceBounds(s)
	if start == nil || start.Num < DeepPaginationOffset {
		return nil
	}
	return []tt.Finding{finding(RuleDeepPagination,
		fmt.Sprintf("slice starts at offset %s; deep pagination scans every skipped document, filter on a sort key instead", start.Raw),
		s.Range.Pos)}
}

// DetectDeepPaginationParam reports slices whose start is a parameter, which
// may grow without bound.
func DetectDeepPaginationParam(_ *Context, node ast.Node) []tt.Finding {
	s, ok := node.(*ast.Slice)
	if !ok {
		return nil
	}
	p, ok := s.Range.X.(*ast.Param)
	if !ok {
		return nil
	}
	return []tt.Finding{finding(RuleDeepPaginationParam,
		fmt.Sprintf("slice offset $%s may lead to deep pagination; consider filtering on a sort key", p.Name),
		s.Range.Pos)}
}

// DetectLargePages reports slices returning more than LargePageSize documents.
func DetectLargePages(_ *Context, node ast.Node) []tt.Finding {
	s, ok := node.(*ast.Slice)
	if !ok {
		return nil
	}
	start, end := sliceBounds(s)
	if start == nil || end == nil {
		return nil
	}
	size := end.Num - start.Num
	if s.Range.Op == lexer.DotDot {
		size++
	}
	if size <= LargePageSize {
		return nil
	}
	return []tt.Finding{finding(RuleLargePages,
		fmt.Sprintf("slice fetches %g documents per page (more than %d)", size, LargePageSize),
		s.Range.Pos)}
}

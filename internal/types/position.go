package types

import "sort"

// LineIndex maps byte offsets to line/column positions.
type LineIndex struct {
	lineStarts []int
	size       int
}

// NewLineIndex records the start offset of each line in src.
func NewLineIndex(src string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{lineStarts: starts, size: len(src)}
}

// Line returns the 1-based line containing offset.
func (idx *LineIndex) Line(offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > idx.size {
		offset = idx.size
	}
	return sort.Search(len(idx.lineStarts), func(i int) bool {
		return idx.lineStarts[i] > offset
	})
}

// Position converts a byte offset into a Position without filename.
func (idx *LineIndex) Position(offset int) Position {
	line := idx.Line(offset)
	if offset > idx.size {
		offset = idx.size
	}
	return Position{
		Offset: offset,
		Line:   line,
		Column: offset - idx.lineStarts[line-1] + 1,
	}
}

// LineStart returns the offset of the first byte of the 1-based line.
func (idx *LineIndex) LineStart(line int) int {
	if line < 1 || line > len(idx.lineStarts) {
		return -1
	}
	return idx.lineStarts[line-1]
}

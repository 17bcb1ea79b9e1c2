package formatter

import (
	"fmt"
	"os"
	"strings"
)

// SourceCode holds the lines of a query file, without line terminators.
type SourceCode struct {
	Lines []string
}

func NewSourceCode(src string) *SourceCode {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	return &SourceCode{Lines: strings.Split(src, "\n")}
}

func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return NewSourceCode(string(content)), nil
}

package parser

import (
	"fmt"
	"strings"
)

// SyntaxError reports malformed configuration text.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
	Context string // the offending source line
}

// Error formats the error with the source line and a caret under the column.
func (e *SyntaxError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, e.Message)
	}
	pointer := strings.Repeat(" ", max(e.Column-1, 0)) + "^"
	return fmt.Sprintf("line %d:%d: %s\n%s\n%s", e.Line, e.Column, e.Message, e.Context, pointer)
}

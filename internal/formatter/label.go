// Package formatter renders a compiled menu tree for people: an indented
// text tree and a Mermaid flowchart.
package formatter

import (
	"github.com/oakwood-commons/dotree/internal/expr"
	"github.com/oakwood-commons/dotree/internal/tree"
)

// SubmenuSuffix marks menus in text output.
const SubmenuSuffix = "/"

// ResolvedOrSource resolves e, falling back to its source form so one broken
// snippet does not hide the rest of the tree.
func ResolvedOrSource(e expr.Expression, table expr.Table) string {
	s, err := expr.Resolve(e, table)
	if err != nil {
		return e.String()
	}
	return s
}

// CommandLabel is the command's title, or its resolved body.
func CommandLabel(c *tree.Command, table expr.Table) string {
	if c.Title != "" {
		return c.Title
	}
	return ResolvedOrSource(c.Body, table)
}

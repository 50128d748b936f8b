package parser

import (
	"fmt"

	"github.com/oakwood-commons/dotree/internal/expr"
	"github.com/oakwood-commons/dotree/internal/tree"
)

// Pos is a 1-based source position.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// File is the raw result of parsing a configuration: settings plus the
// unresolved menu and snippet declarations, in source order.
type File struct {
	Settings tree.Settings
	Menus    []*MenuDecl
	Snippets []*SnippetDecl
}

// MenuDecl is a `menu ["title"] name { ... }` block.
type MenuDecl struct {
	Name    string
	Title   string
	Entries []*EntryDecl
	Pos     Pos
}

// EntryDecl is a `keys: target` line. Exactly one of Submenu and Command is set.
type EntryDecl struct {
	Keys    string
	Submenu string
	Command *tree.Command
	Pos     Pos
}

// SnippetDecl is a `snippet name = expr` declaration.
type SnippetDecl struct {
	Name string
	Expr expr.Expression
	Pos  Pos
}

// Package compiler turns parsed declarations into a resolved menu tree.
//
// Only menus reachable from "root" are materialized, so an unused menu that
// refers to an unknown symbol is never reported. Expressions are kept
// unresolved; they are evaluated at invocation time.
package compiler

import (
	"fmt"
	"os"
	"slices"

	"github.com/oakwood-commons/dotree/internal/expr"
	"github.com/oakwood-commons/dotree/internal/parser"
	"github.com/oakwood-commons/dotree/internal/tree"
)

// RootMenu is the name of the menu navigation starts from.
const RootMenu = "root"

// CompileFile reads and compiles the config at path.
func CompileFile(path string) (*tree.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	t, err := Compile(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Compile parses and compiles configuration text.
func Compile(src string) (*tree.Tree, error) {
	f, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return Build(f)
}

// Build compiles an already parsed file.
func Build(f *parser.File) (*tree.Tree, error) {
	c := &compiler{menus: make(map[string]*parser.MenuDecl, len(f.Menus))}
	for _, m := range f.Menus {
		if prev, ok := c.menus[m.Name]; ok {
			return nil, &DuplicateMenuError{Name: m.Name, First: prev.Pos, Second: m.Pos}
		}
		c.menus[m.Name] = m
	}

	snippets, err := snippetTable(f.Snippets)
	if err != nil {
		return nil, err
	}

	decl, ok := c.menus[RootMenu]
	if !ok {
		return nil, ErrMissingRoot
	}
	root, err := c.materialize(decl, nil)
	if err != nil {
		return nil, err
	}
	return &tree.Tree{Root: root, Settings: f.Settings, Snippets: snippets}, nil
}

func snippetTable(decls []*parser.SnippetDecl) (expr.Table, error) {
	table := make(expr.Table, len(decls))
	seen := make(map[string]parser.Pos, len(decls))
	for _, s := range decls {
		if first, ok := seen[s.Name]; ok {
			return nil, &DuplicateSnippetError{Name: s.Name, First: first, Second: s.Pos}
		}
		seen[s.Name] = s.Pos
		table[s.Name] = s.Expr
	}
	return table, nil
}

type compiler struct {
	menus map[string]*parser.MenuDecl
}

// materialize builds the menu for decl. parents holds the menu names on the
// current expansion path and is never mutated.
func (c *compiler) materialize(decl *parser.MenuDecl, parents []string) (*tree.Menu, error) {
	chain := append(parents[:len(parents):len(parents)], decl.Name)
	if slices.Contains(parents, decl.Name) {
		return nil, &MenuCycleError{Chain: chain}
	}

	m := &tree.Menu{Name: decl.Name, Title: decl.Title, Entries: make([]tree.Entry, 0, len(decl.Entries))}
	seen := make(map[string]parser.Pos, len(decl.Entries))
	for _, e := range decl.Entries {
		if first, ok := seen[e.Keys]; ok {
			return nil, &DuplicateKeyPathError{Keys: e.Keys, Chain: chain, First: first, Second: e.Pos}
		}
		seen[e.Keys] = e.Pos

		var node tree.Node
		if e.Command != nil {
			cmd := *e.Command
			node = &cmd
		} else {
			sub, ok := c.menus[e.Submenu]
			if !ok {
				return nil, &UndefinedSymbolError{Name: e.Submenu, Chain: chain, Pos: e.Pos}
			}
			child, err := c.materialize(sub, chain)
			if err != nil {
				return nil, err
			}
			node = child
		}
		m.Entries = append(m.Entries, tree.Entry{Keys: []rune(e.Keys), Node: node})
	}
	return m, nil
}

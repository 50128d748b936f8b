package formatter

import (
	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/dotree/internal/tree"
)

// TreeOptions controls text tree output.
type TreeOptions struct {
	// MaxDepth limits menu depth (0 = unlimited).
	MaxDepth int
}

// FormatAsTree renders t as an indented tree with each entry's key path in
// brackets.
func FormatAsTree(t *tree.Tree, opts TreeOptions) string {
	root := treeprint.NewWithRoot(t.Root.DisplayName())
	buildTree(root, t, t.Root, opts, 0)
	return root.String()
}

func buildTree(branch treeprint.Tree, t *tree.Tree, m *tree.Menu, opts TreeOptions, depth int) {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		branch.AddNode("...")
		return
	}
	for _, e := range m.Entries {
		keys := string(e.Keys)
		switch n := e.Node.(type) {
		case *tree.Menu:
			sub := branch.AddMetaBranch(keys, n.DisplayName()+SubmenuSuffix)
			buildTree(sub, t, n, opts, depth+1)
		case *tree.Command:
			branch.AddMetaNode(keys, CommandLabel(n, t.Snippets))
		}
	}
}

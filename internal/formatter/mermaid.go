package formatter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/oakwood-commons/dotree/internal/tree"
)

// ValidDirections are the flowchart directions Mermaid accepts.
var ValidDirections = []string{"TD", "LR", "BT", "RL"}

// ValidateDirection returns an error if dir is not a Mermaid direction.
func ValidateDirection(dir string) error {
	if dir == "" || slices.Contains(ValidDirections, dir) {
		return nil
	}
	return fmt.Errorf("invalid mermaid direction %q: valid values are %s", dir, strings.Join(ValidDirections, ", "))
}

// MermaidOptions controls Mermaid output.
type MermaidOptions struct {
	// Direction defaults to TD.
	Direction string
	MaxDepth  int
}

type mermaidBuilder struct {
	lines  []string
	nodeID int
	tree   *tree.Tree
	opts   MermaidOptions
}

// FormatAsMermaid renders t as a flowchart. Menus are boxes, commands are
// rounded, and each edge is labelled with its key path.
func FormatAsMermaid(t *tree.Tree, opts MermaidOptions) string {
	if opts.Direction == "" {
		opts.Direction = "TD"
	}
	b := &mermaidBuilder{
		lines: []string{"graph " + opts.Direction},
		tree:  t,
		opts:  opts,
	}
	rootID := b.nextID()
	b.addMenu(rootID, t.Root.DisplayName())
	b.build(rootID, t.Root, 0)
	return strings.Join(b.lines, "\n") + "\n"
}

func (b *mermaidBuilder) nextID() string {
	id := fmt.Sprintf("n%d", b.nodeID)
	b.nodeID++
	return id
}

func (b *mermaidBuilder) addMenu(id, label string) {
	b.lines = append(b.lines, fmt.Sprintf("    %s[\"%s\"]", id, escapeLabel(label)))
}

func (b *mermaidBuilder) addCommand(id, label string) {
	b.lines = append(b.lines, fmt.Sprintf("    %s(\"%s\")", id, escapeLabel(label)))
}

func (b *mermaidBuilder) addEdge(from, to, keys string) {
	if keys == "" {
		b.lines = append(b.lines, fmt.Sprintf("    %s --> %s", from, to))
		return
	}
	b.lines = append(b.lines, fmt.Sprintf("    %s -->|\"%s\"| %s", from, escapeLabel(keys), to))
}

func (b *mermaidBuilder) build(parentID string, m *tree.Menu, depth int) {
	if b.opts.MaxDepth > 0 && depth >= b.opts.MaxDepth {
		id := b.nextID()
		b.addMenu(id, "...")
		b.addEdge(parentID, id, "")
		return
	}
	for _, e := range m.Entries {
		id := b.nextID()
		switch n := e.Node.(type) {
		case *tree.Menu:
			b.addMenu(id, n.DisplayName())
			b.addEdge(parentID, id, string(e.Keys))
			b.build(id, n, depth+1)
		case *tree.Command:
			b.addCommand(id, CommandLabel(n, b.tree.Snippets))
			b.addEdge(parentID, id, string(e.Keys))
		}
	}
}

// escapeLabel makes text safe inside a quoted Mermaid label.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `"`, `'`)
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", "")
}

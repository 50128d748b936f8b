// Package navigator resolves typed key sequences against a menu tree.
//
// Every entry of a menu is matched in parallel, one rune at a time. An entry
// drops out as soon as a rune disagrees with its key path or arrives after
// its key path is complete, and it never comes back. A selection is made
// only once a single entry remains and it has been typed in full.
package navigator

import (
	"github.com/oakwood-commons/dotree/internal/tree"
)

// StepKind is the outcome of a single Advance.
type StepKind int

const (
	// Incomplete means the input ran out while entries were still alive.
	Incomplete StepKind = iota
	// Exact means one entry was selected.
	Exact
	// None means no entry matches the input.
	None
)

func (k StepKind) String() string {
	switch k {
	case Exact:
		return "exact"
	case None:
		return "none"
	default:
		return "incomplete"
	}
}

// Step is the result of Advance. For Exact, Node is the selected child and
// Offset the index just past the consumed keys. Otherwise Offset is unchanged.
type Step struct {
	Kind   StepKind
	Node   tree.Node
	Offset int
}

// Advance consumes buf[offset:] against node. A command consumes nothing and
// is returned as Exact.
func Advance(node tree.Node, buf []rune, offset int) Step {
	m, ok := node.(*tree.Menu)
	if !ok {
		return Step{Kind: Exact, Node: node, Offset: offset}
	}

	cursors := make([]int, len(m.Entries))
	alive := len(m.Entries)
	for i := offset; i < len(buf); i++ {
		alive = feed(m.Entries, cursors, alive, buf[i])
		switch alive {
		case 0:
			return Step{Kind: None, Offset: offset}
		case 1:
			for j, e := range m.Entries {
				if cursors[j] == len(e.Keys) {
					return Step{Kind: Exact, Node: e.Node, Offset: i + 1}
				}
			}
		}
	}
	return Step{Kind: Incomplete, Node: m, Offset: offset}
}

// feed advances every alive cursor by r and returns the new alive count.
// A cursor of -1 marks an eliminated entry.
func feed(entries []tree.Entry, cursors []int, alive int, r rune) int {
	for j, e := range entries {
		c := cursors[j]
		if c < 0 {
			continue
		}
		if c == len(e.Keys) || e.Keys[c] != r {
			cursors[j] = -1
			alive--
			continue
		}
		cursors[j] = c + 1
	}
	return alive
}

// EntryMatch describes how far pending input has progressed along one entry.
type EntryMatch struct {
	Keys    []rune
	Node    tree.Node
	Matched int // runes of Keys already typed; 0 when not Alive
	Alive   bool
}

// Matches reports per-entry progress of input against menu, in entry order.
func Matches(menu *tree.Menu, input []rune) []EntryMatch {
	cursors := make([]int, len(menu.Entries))
	alive := len(menu.Entries)
	for _, r := range input {
		if alive = feed(menu.Entries, cursors, alive, r); alive == 0 {
			break
		}
	}
	out := make([]EntryMatch, len(menu.Entries))
	for j, e := range menu.Entries {
		out[j] = EntryMatch{Keys: e.Keys, Node: e.Node, Alive: cursors[j] >= 0}
		if out[j].Alive {
			out[j].Matched = cursors[j]
		}
	}
	return out
}

// Status is the outcome of FollowPath.
type Status int

const (
	// StatusPending means more input is needed; Menu is the menu to display.
	StatusPending Status = iota
	// StatusInvalid means the input matches nothing and should be discarded.
	StatusInvalid
	// StatusCommand means a command was selected.
	StatusCommand
)

func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusCommand:
		return "command"
	default:
		return "pending"
	}
}

// Result is the outcome of walking a buffer from the root.
type Result struct {
	Status  Status
	Menu    *tree.Menu    // deepest menu reached
	Command *tree.Command // set for StatusCommand
	// Offset is the number of runes committed to descending into Menu, or
	// for a command the number of runes used to select it.
	Offset int
	// Remaining counts runes left over after a command was selected.
	Remaining int
	Chain     []*tree.Menu // menus from the root down to Menu
}

// Breadcrumbs returns the display names along Chain.
func (r Result) Breadcrumbs() []string {
	out := make([]string, len(r.Chain))
	for i, m := range r.Chain {
		out[i] = m.DisplayName()
	}
	return out
}

// FollowPath walks buf from root, descending through exact matches.
func FollowPath(root *tree.Menu, buf []rune) Result {
	menu, offset := root, 0
	chain := []*tree.Menu{root}
	for {
		step := Advance(menu, buf, offset)
		switch step.Kind {
		case None:
			return Result{Status: StatusInvalid, Menu: menu, Offset: offset, Chain: chain}
		case Incomplete:
			return Result{Status: StatusPending, Menu: menu, Offset: offset, Chain: chain}
		}
		switch n := step.Node.(type) {
		case *tree.Command:
			return Result{
				Status:    StatusCommand,
				Menu:      menu,
				Command:   n,
				Offset:    step.Offset,
				Remaining: len(buf) - step.Offset,
				Chain:     chain,
			}
		case *tree.Menu:
			menu, offset = n, step.Offset
			chain = append(chain, n)
		}
	}
}

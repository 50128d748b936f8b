// Package tree holds the compiled, immutable menu/command tree.
package tree

import (
	"runtime"
	"strings"

	"github.com/oakwood-commons/dotree/internal/expr"
)

// Node is either a *Menu or a *Command.
type Node interface {
	// DisplayName is the label shown next to the node's key path.
	DisplayName() string
	node()
}

// Entry binds a key path to a child node.
type Entry struct {
	Keys []rune
	Node Node
}

// Menu is a named set of entries.
type Menu struct {
	Name    string
	Title   string
	Entries []Entry
}

func (*Menu) node() {}

// DisplayName returns the title when set, otherwise the internal name.
func (m *Menu) DisplayName() string {
	if m.Title != "" {
		return m.Title
	}
	return m.Name
}

// Lookup returns the child bound to exactly keys.
func (m *Menu) Lookup(keys string) (Node, bool) {
	for _, e := range m.Entries {
		if string(e.Keys) == keys {
			return e.Node, true
		}
	}
	return nil, false
}

// CommandSetting is a flag set on a command.
type CommandSetting uint8

const (
	// Repeat returns to the menu after the command runs instead of replacing the process.
	Repeat CommandSetting = 1 << iota
	// IgnoreResult treats a non-zero exit status as success.
	IgnoreResult
)

// ParseCommandSetting maps a config name to its flag.
func ParseCommandSetting(name string) (CommandSetting, bool) {
	switch name {
	case "repeat":
		return Repeat, true
	case "ignore_result":
		return IgnoreResult, true
	}
	return 0, false
}

// Names lists the setting names in declaration order.
func (s CommandSetting) Names() []string {
	var out []string
	if s&Repeat != 0 {
		out = append(out, "repeat")
	}
	if s&IgnoreResult != 0 {
		out = append(out, "ignore_result")
	}
	return out
}

// ShellDef is a shell program with a fixed argument prefix. The command text
// is appended as the final argument.
type ShellDef struct {
	Program string
	Args    []string
}

// DefaultShell returns the platform default shell.
func DefaultShell() ShellDef {
	if runtime.GOOS == "windows" {
		return ShellDef{Program: "cmd", Args: []string{"/c"}}
	}
	return ShellDef{Program: "bash", Args: []string{"-euo", "pipefail", "-c"}}
}

// ArgsWith returns the argument prefix followed by text.
func (s ShellDef) ArgsWith(text string) []string {
	out := make([]string, 0, len(s.Args)+1)
	out = append(out, s.Args...)
	return append(out, text)
}

func (s ShellDef) String() string {
	return strings.Join(append([]string{s.Program}, s.Args...), " ")
}

// VarDef declares a variable a command needs before it runs.
type VarDef struct {
	Name    string
	Default expr.Expression // nil when no default is declared
}

// Command is a leaf that runs shell text.
type Command struct {
	Body       expr.Expression
	Title      string
	Settings   CommandSetting
	Shell      *ShellDef
	Vars       []VarDef
	ToggleEcho bool
}

func (*Command) node() {}

// DisplayName returns the title when set, otherwise the body's source form.
func (c *Command) DisplayName() string {
	if c.Title != "" {
		return c.Title
	}
	if len(c.Body) == 1 && c.Body[0].Kind == expr.Literal {
		return c.Body[0].Value
	}
	return c.Body.String()
}

// Has reports whether setting s is enabled.
func (c *Command) Has(s CommandSetting) bool { return c.Settings&s != 0 }

// Settings are process-wide defaults taken from the leading settings block.
type Settings struct {
	Shell *ShellDef // nil selects DefaultShell
	Echo  bool
}

// DefaultSettings returns the settings used when the config declares none.
func DefaultSettings() Settings {
	return Settings{Echo: true}
}

// ShellFor picks the shell for c: its own override, the configured default,
// or the platform default.
func (s Settings) ShellFor(c *Command) ShellDef {
	switch {
	case c != nil && c.Shell != nil:
		return *c.Shell
	case s.Shell != nil:
		return *s.Shell
	}
	return DefaultShell()
}

// EchoFor reports whether the invocation of c should be echoed.
func (s Settings) EchoFor(c *Command) bool {
	return s.Echo != c.ToggleEcho
}

// Tree is the output of compilation.
type Tree struct {
	Root     *Menu
	Settings Settings
	Snippets expr.Table
}

// Walk visits every node reachable from m depth-first in entry order. chain
// holds the menu names from the root down to the visited node's parent.
func Walk(m *Menu, fn func(chain []string, keys []rune, n Node) error) error {
	return walk(m, []string{m.Name}, fn)
}

func walk(m *Menu, chain []string, fn func([]string, []rune, Node) error) error {
	for _, e := range m.Entries {
		if err := fn(chain, e.Keys, e.Node); err != nil {
			return err
		}
		if sub, ok := e.Node.(*Menu); ok {
			if err := walk(sub, append(chain[:len(chain):len(chain)], sub.Name), fn); err != nil {
				return err
			}
		}
	}
	return nil
}

package tree

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/dotree/internal/expr"
)

func TestDisplayNames(t *testing.T) {
	assert.Equal(t, "git", (&Menu{Name: "git"}).DisplayName())
	assert.Equal(t, "Git tools", (&Menu{Name: "git", Title: "Git tools"}).DisplayName())

	assert.Equal(t, "git status", (&Command{Body: expr.Text("git status")}).DisplayName())
	assert.Equal(t, "status", (&Command{Body: expr.Text("git status"), Title: "status"}).DisplayName())
	assert.Equal(t, `$git + " log"`, (&Command{Body: expr.Of(expr.Sym("git"), expr.Lit(" log"))}).DisplayName())
}

func TestParseCommandSetting(t *testing.T) {
	s, ok := ParseCommandSetting("repeat")
	require.True(t, ok)
	assert.Equal(t, Repeat, s)

	s, ok = ParseCommandSetting("ignore_result")
	require.True(t, ok)
	assert.Equal(t, IgnoreResult, s)

	_, ok = ParseCommandSetting("sometimes")
	assert.False(t, ok)

	assert.Equal(t, []string{"repeat", "ignore_result"}, (Repeat | IgnoreResult).Names())
}

func TestShellFor(t *testing.T) {
	zsh := &ShellDef{Program: "zsh", Args: []string{"-c"}}
	sh := &ShellDef{Program: "sh", Args: []string{"-c"}}

	assert.Equal(t, *zsh, Settings{}.ShellFor(&Command{Shell: zsh}))
	assert.Equal(t, *zsh, Settings{Shell: sh}.ShellFor(&Command{Shell: zsh}))
	assert.Equal(t, *sh, Settings{Shell: sh}.ShellFor(&Command{}))

	def := Settings{}.ShellFor(&Command{})
	if runtime.GOOS == "windows" {
		assert.Equal(t, "cmd /c", def.String())
	} else {
		assert.Equal(t, "bash -euo pipefail -c", def.String())
		assert.Equal(t, []string{"-euo", "pipefail", "-c", "ls"}, def.ArgsWith("ls"))
	}
}

func TestEchoFor(t *testing.T) {
	on := Settings{Echo: true}
	off := Settings{Echo: false}
	assert.True(t, on.EchoFor(&Command{}))
	assert.False(t, on.EchoFor(&Command{ToggleEcho: true}))
	assert.False(t, off.EchoFor(&Command{}))
	assert.True(t, off.EchoFor(&Command{ToggleEcho: true}))
}

func TestWalkVisitsInEntryOrder(t *testing.T) {
	status := &Command{Body: expr.Text("git status")}
	git := &Menu{Name: "git", Entries: []Entry{{Keys: []rune("s"), Node: status}}}
	ls := &Command{Body: expr.Text("ls")}
	root := &Menu{Name: "root", Entries: []Entry{
		{Keys: []rune("g"), Node: git},
		{Keys: []rune("l"), Node: ls},
	}}

	var visited []string
	err := Walk(root, func(chain []string, keys []rune, n Node) error {
		visited = append(visited, joinChain(chain)+":"+string(keys)+"="+n.DisplayName())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"root:g=git",
		"root>git:s=git status",
		"root:l=ls",
	}, visited)

	n, ok := root.Lookup("l")
	require.True(t, ok)
	assert.Same(t, ls, n)
}

func joinChain(chain []string) string {
	out := ""
	for i, c := range chain {
		if i > 0 {
			out += ">"
		}
		out += c
	}
	return out
}

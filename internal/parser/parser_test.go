package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/dotree/internal/expr"
	"github.com/oakwood-commons/dotree/internal/tree"
)

func TestParseMinimalMenu(t *testing.T) {
	f, err := Parse(`menu root {
	g: git
	l: "ls -la"
}

menu git {
	s: "git status"
}`)
	require.NoError(t, err)
	require.Len(t, f.Menus, 2)

	root := f.Menus[0]
	assert.Equal(t, "root", root.Name)
	require.Len(t, root.Entries, 2)
	assert.Equal(t, "g", root.Entries[0].Keys)
	assert.Equal(t, "git", root.Entries[0].Submenu)
	assert.Nil(t, root.Entries[0].Command)
	assert.Equal(t, "l", root.Entries[1].Keys)
	require.NotNil(t, root.Entries[1].Command)
	assert.Equal(t, expr.Text("ls -la"), root.Entries[1].Command.Body)

	assert.Equal(t, tree.DefaultSettings(), f.Settings)
	assert.Equal(t, Pos{Line: 6, Column: 1}, f.Menus[1].Pos)
}

func TestParseMenuTitle(t *testing.T) {
	f, err := Parse(`menu "Git stuff" git { s: "git status" }`)
	require.NoError(t, err)
	assert.Equal(t, "Git stuff", f.Menus[0].Title)
	assert.Equal(t, "git", f.Menus[0].Name)
}

func TestParseQuickCommandForms(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		want  tree.Command
	}{
		{
			name:  "plain",
			entry: `x: "echo hi"`,
			want:  tree.Command{Body: expr.Text("echo hi")},
		},
		{
			name:  "named",
			entry: `x: "say hi" - "echo hi"`,
			want:  tree.Command{Title: "say hi", Body: expr.Text("echo hi")},
		},
		{
			name:  "toggled echo",
			entry: `x: @"echo hi"`,
			want:  tree.Command{Body: expr.Text("echo hi"), ToggleEcho: true},
		},
		{
			name:  "delimited string keeps quotes",
			entry: `x: !q"echo "quoted""q!`,
			want:  tree.Command{Body: expr.Text(`echo "quoted"`)},
		},
		{
			name:  "concatenation",
			entry: `x: "git " + $opts + " log"`,
			want:  tree.Command{Body: expr.Of(expr.Lit("git "), expr.Sym("opts"), expr.Lit(" log"))},
		},
		{
			name:  "starts with a snippet",
			entry: `x: $base + " --all"`,
			want:  tree.Command{Body: expr.Of(expr.Sym("base"), expr.Lit(" --all"))},
		},
		{
			name:  "plus continues on next line",
			entry: "x: \"a\" +\n   \"b\"",
			want:  tree.Command{Body: expr.Of(expr.Lit("a"), expr.Lit("b"))},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse("menu root {\n" + tt.entry + "\n}")
			require.NoError(t, err)
			require.Len(t, f.Menus[0].Entries, 1)
			got := f.Menus[0].Entries[0].Command
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseBlockCommand(t *testing.T) {
	f, err := Parse(`menu root {
	c: cmd {
		vars msg, branch = "main" + $suffix
		set repeat, ignore_result
		shell zsh -c
		"Commit" - !"git commit -m "$msg""!
	}
}`)
	require.NoError(t, err)
	cmd := f.Menus[0].Entries[0].Command
	require.NotNil(t, cmd)

	assert.Equal(t, []tree.VarDef{
		{Name: "msg"},
		{Name: "branch", Default: expr.Of(expr.Lit("main"), expr.Sym("suffix"))},
	}, cmd.Vars)
	assert.True(t, cmd.Has(tree.Repeat))
	assert.True(t, cmd.Has(tree.IgnoreResult))
	require.NotNil(t, cmd.Shell)
	assert.Equal(t, tree.ShellDef{Program: "zsh", Args: []string{"-c"}}, *cmd.Shell)
	assert.Equal(t, "Commit", cmd.Title)
}

func TestParseBlockCommandLaterClauseWins(t *testing.T) {
	f, err := Parse(`menu root {
	c: cmd {
		set repeat
		set ignore_result
		"true"
	}
}`)
	require.NoError(t, err)
	cmd := f.Menus[0].Entries[0].Command
	assert.False(t, cmd.Has(tree.Repeat))
	assert.True(t, cmd.Has(tree.IgnoreResult))
}

func TestParseSubmenuNamedCmd(t *testing.T) {
	f, err := Parse(`menu root { c: cmd }`)
	require.NoError(t, err)
	assert.Equal(t, "cmd", f.Menus[0].Entries[0].Submenu)
}

func TestParseSettings(t *testing.T) {
	f, err := Parse(`# global settings
shell sh -c
echo off

menu root { a: "true" }`)
	require.NoError(t, err)
	require.NotNil(t, f.Settings.Shell)
	assert.Equal(t, "sh", f.Settings.Shell.Program)
	assert.Equal(t, []string{"-c"}, f.Settings.Shell.Args)
	assert.False(t, f.Settings.Echo)
}

func TestParseSnippets(t *testing.T) {
	f, err := Parse(`snippet opts = "--oneline" + " " + $extra
snippet extra = "-n 5"
menu root { l: "git log " + $opts }`)
	require.NoError(t, err)
	require.Len(t, f.Snippets, 2)
	assert.Equal(t, "opts", f.Snippets[0].Name)
	assert.Equal(t, expr.Of(expr.Lit("--oneline"), expr.Lit(" "), expr.Sym("extra")), f.Snippets[0].Expr)
	assert.Equal(t, expr.Text("-n 5"), f.Snippets[1].Expr)
}

func TestParseComments(t *testing.T) {
	f, err := Parse(`menu root { # the root
	# a comment line
	a: "one" # trailing
	b: "two"
}`)
	require.NoError(t, err)
	require.Len(t, f.Menus[0].Entries, 2)
	assert.Equal(t, "b", f.Menus[0].Entries[1].Keys)
}

func TestParseMultiRuneKeys(t *testing.T) {
	f, err := Parse(`menu root { ab: "x" äö: "y" }`)
	require.NoError(t, err)
	assert.Equal(t, "ab", f.Menus[0].Entries[0].Keys)
	assert.Equal(t, "äö", f.Menus[0].Entries[1].Keys)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		line    int
		message string
	}{
		{"unclosed menu", "menu root {\n a: \"x\"\n", 1, "never closed"},
		{"unterminated string", "menu root {\n a: \"x\n}", 2, "unterminated string"},
		{"missing colon", "menu root {\n a \"x\"\n}", 2, "expected ':'"},
		{"unknown setting", "menu root { a: cmd { set forever \"x\" } }", 1, "unknown command setting"},
		{"duplicate var", "menu root { a: cmd { vars x, x \"x\" } }", 1, "declared twice"},
		{"missing body", "menu root { a: cmd { set repeat } }", 1, "needs a body"},
		{"setting after menu", "menu root { a: \"x\" }\necho off", 2, "must come before"},
		{"bad echo", "echo maybe\nmenu root {}", 1, "'on' or 'off'"},
		{"garbage at top", "foo", 1, "expected 'menu'"},
		{"dangling plus", "menu root { a: \"x\" + }", 1, "expected a string or $snippet"},
		{"unknown clause", "menu root { a: cmd { run \"x\" } }", 1, "unknown command clause"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			var se *SyntaxError
			require.True(t, errors.As(err, &se), "want *SyntaxError, got %T", err)
			assert.Equal(t, tt.line, se.Line)
			assert.Contains(t, se.Message, tt.message)
		})
	}
}

func TestSyntaxErrorCaret(t *testing.T) {
	_, err := Parse("menu root {\n  a \"x\"\n}")
	require.Error(t, err)
	assert.Equal(t, "line 2:5: expected ':' after key path a, found '\"'\n  a \"x\"\n    ^", err.Error())
}

func TestParseShellDef(t *testing.T) {
	def, err := ParseShellDef("shell bash -euo pipefail -c")
	require.NoError(t, err)
	assert.Equal(t, tree.ShellDef{Program: "bash", Args: []string{"-euo", "pipefail", "-c"}}, def)

	def, err = ParseShellDef(`python3 "-c"`)
	require.NoError(t, err)
	assert.Equal(t, tree.ShellDef{Program: "python3", Args: []string{"-c"}}, def)

	_, err = ParseShellDef("  ")
	assert.Error(t, err)
}

func TestParseExpression(t *testing.T) {
	e, err := ParseExpression(`$a + "b"`)
	require.NoError(t, err)
	assert.Equal(t, expr.Of(expr.Sym("a"), expr.Lit("b")), e)

	_, err = ParseExpression(`"a" "b"`)
	assert.Error(t, err)
}

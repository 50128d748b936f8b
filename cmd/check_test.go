package cmd

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/dotree/internal/compiler"
	"github.com/oakwood-commons/dotree/internal/expr"
)

func TestCheckTreeClean(t *testing.T) {
	tr, err := compiler.Compile(treeConfig)
	require.NoError(t, err)

	r := checkTree(tr)
	assert.Empty(t, r.Problems)
	assert.Equal(t, 3, r.Commands)
	assert.Equal(t, 1, r.Snippets)
}

func TestCheckTreeReportsEveryProblem(t *testing.T) {
	tr, err := compiler.Compile(`
snippet a = $b
snippet b = $a

menu root {
	x: "run " + $missing
	g: git
}

menu git {
	c: cmd {
		vars who = $nobody
		"echo"
	}
}`)
	require.NoError(t, err)

	r := checkTree(tr)
	require.Len(t, r.Problems, 4)

	var cycle *expr.CycleError
	assert.ErrorAs(t, r.Problems[0], &cycle)
	assert.ErrorAs(t, r.Problems[1], &cycle)

	var undefined *expr.UndefinedSnippetError
	require.ErrorAs(t, r.Problems[2], &undefined)
	assert.Equal(t, "missing", undefined.Name)
	assert.Contains(t, r.Problems[2].Error(), "root [x]")

	require.ErrorAs(t, r.Problems[3], &undefined)
	assert.Equal(t, "nobody", undefined.Name)
	assert.Contains(t, r.Problems[3].Error(), "root > git [c]: default for who")
}

func TestReportCheck(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	good, err := compiler.Compile(`menu root { a: "echo a" }`)
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, reportCheck(&out, "menu.dt", good))
	assert.Contains(t, out.String(), "menu.dt: 1 commands, 0 snippets")

	bad, err := compiler.Compile(`menu root { a: $nope }`)
	require.NoError(t, err)
	out.Reset()
	err = reportCheck(&out, "menu.dt", bad)

	var ee *ExitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 1, ee.Code)
	assert.Contains(t, ee.Error(), "1 problem(s)")
	assert.Contains(t, out.String(), "undefined snippet: nope")
}

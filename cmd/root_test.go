package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/dotree/pkg/settings"
)

// execute runs the root command with args and captures stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		confPath, localConf, settingsPath, shellFlag = "", false, "", ""
		debug, noColor = false, false
		treeOutput, treeDepth, treeDirection = "text", 0, "TD"
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, settings.CliBinaryName+" "+settings.VersionInformation.BuildVersion)
}

func TestTreeCommand(t *testing.T) {
	conf := writeFile(t, filepath.Join(t.TempDir(), "menu.dt"), `menu root { a: "echo a" }`)

	out, err := execute(t, "tree", "-c", conf, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"run": "echo a"`)

	run := runSettings(rootCtx)
	assert.Equal(t, conf, run.ConfigPath)
}

func TestCheckCommand(t *testing.T) {
	conf := writeFile(t, filepath.Join(t.TempDir(), "menu.dt"), `menu root { a: $nope }`)

	_, err := execute(t, "check", "--no-color", "--conf", conf)
	assert.Equal(t, 1, ExitCode(err))
}

func TestSeedFlagsAreCommandArgs(t *testing.T) {
	require.NoError(t, rootCmd.ParseFlags([]string{"--debug", "gc", "--amend", "-c"}))
	t.Cleanup(func() { debug = false })
	assert.True(t, debug)
	assert.Equal(t, []string{"gc", "--amend", "-c"}, rootCmd.Flags().Args())
	assert.Empty(t, confPath)
}

func TestConfAndLocalExclusive(t *testing.T) {
	_, err := execute(t, "-c", "x.dt", "-l")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 130, ExitCode(&ExitError{Code: 130}))
}

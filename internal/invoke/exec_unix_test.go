//go:build !windows

package invoke

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceProcessLooksUpProgram(t *testing.T) {
	orig := execFunc
	t.Cleanup(func() { execFunc = orig })

	var gotPath string
	var gotArgv, gotEnv []string
	execFunc = func(path string, argv []string, envv []string) error {
		gotPath, gotArgv, gotEnv = path, argv, envv
		return nil
	}

	t.Setenv("DOTREE_TEST_VAR", "1")
	require.NoError(t, ReplaceProcess(ExecSpec{Program: "sh", Args: []string{"-c", "true"}}))
	assert.NotEmpty(t, gotPath)
	assert.Equal(t, []string{"sh", "-c", "true"}, gotArgv)
	assert.Contains(t, gotEnv, "DOTREE_TEST_VAR=1")
}

func TestReplaceProcessUnknownProgram(t *testing.T) {
	err := ReplaceProcess(ExecSpec{Program: "dotree-no-such-program"})
	assert.Error(t, err)
}

func TestRunChildExitCode(t *testing.T) {
	stdio := Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	code, err := RunChild(context.Background(), ExecSpec{Program: "sh", Args: []string{"-c", "exit 4"}}, stdio)
	require.NoError(t, err)
	assert.Equal(t, 4, code)

	code, err = RunChild(context.Background(), ExecSpec{Program: "sh", Args: []string{"-c", "true"}, Dir: t.TempDir()}, stdio)
	require.NoError(t, err)
	assert.Zero(t, code)
}

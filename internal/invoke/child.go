package invoke

import (
	"context"
	"errors"
	"os/exec"
)

// RunChild runs spec as a subprocess wired to stdio and waits for it.
func RunChild(ctx context.Context, spec ExecSpec, stdio Stdio) (int, error) {
	c := exec.CommandContext(ctx, spec.Program, spec.Args...)
	c.Dir = spec.Dir
	c.Stdin = stdio.In
	c.Stdout = stdio.Out
	c.Stderr = stdio.Err
	err := c.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}

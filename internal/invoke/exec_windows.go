//go:build windows

package invoke

import (
	"context"
	"os"
)

// ReplaceProcess emulates exec on Windows: the command runs as a child and
// the current process exits with its status.
func ReplaceProcess(spec ExecSpec) error {
	code, err := RunChild(context.Background(), spec, Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
	if err != nil {
		return err
	}
	os.Exit(code)
	return nil
}

//go:build !windows

package invoke

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

var execFunc = syscall.Exec

// ReplaceProcess replaces the running program with spec. Variables exported
// with os.Setenv are inherited through os.Environ.
func ReplaceProcess(spec ExecSpec) error {
	path, err := exec.LookPath(spec.Program)
	if err != nil {
		return err
	}
	if spec.Dir != "" {
		if err := os.Chdir(spec.Dir); err != nil {
			return fmt.Errorf("changing directory: %w", err)
		}
	}
	return execFunc(path, spec.Argv(), os.Environ())
}

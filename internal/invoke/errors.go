package invoke

import "fmt"

// TooManyArgumentsError is returned when more positional arguments are given
// than the command declares variables.
type TooManyArgumentsError struct {
	Given    int
	Declared int
}

func (e *TooManyArgumentsError) Error() string {
	return fmt.Sprintf("too many arguments: got %d, command takes %d", e.Given, e.Declared)
}

// CommandFailedError reports a repeat command that exited non-zero.
type CommandFailedError struct {
	Command  string
	ExitCode int
}

func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("command %q failed with exit status %d", e.Command, e.ExitCode)
}

package ui

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalDeviceNames(t *testing.T) {
	in, out := terminalDeviceNames("windows")
	assert.Equal(t, "CONIN$", in)
	assert.Equal(t, "CONOUT$", out)

	in, out = terminalDeviceNames("linux")
	assert.Equal(t, "/dev/tty", in)
	assert.Equal(t, "/dev/tty", out)
}

func TestProgramOptionsWithoutTTY(t *testing.T) {
	orig := openTerminalIOFn
	t.Cleanup(func() { openTerminalIOFn = orig })
	openTerminalIOFn = func() (*os.File, *os.File, error) { return nil, nil, errors.New("no tty") }

	opts, cleanup := ProgramOptions(context.Background())
	assert.NotEmpty(t, opts)
	assert.NotPanics(t, cleanup)
}

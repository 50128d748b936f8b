package ui

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/x/ansi"
)

// ExitInterrupted is the status used when the user cancels.
const ExitInterrupted = 130

var exitFn = os.Exit

// InstallCursorGuard makes an interrupt restore cursor visibility on out and
// exit with ExitInterrupted. It touches no other state. Call stop to remove
// the handler.
func InstallCursorGuard(out io.Writer) (stop func()) {
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-ch:
			_, _ = io.WriteString(out, ansi.ShowCursor)
			exitFn(ExitInterrupted)
		case <-done:
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}

package ui

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/dotree/internal/invoke"
	"github.com/oakwood-commons/dotree/internal/tree"
	"github.com/oakwood-commons/dotree/pkg/logger"
)

// ErrCancelled is returned when the user leaves a menu or prompt with Esc or Ctrl-C.
var ErrCancelled = errors.New("cancelled")

// Selection is the outcome of a menu session.
type Selection struct {
	Command  *tree.Command
	Leftover int
	Resets   int
}

// RunMenu shows root until a command is picked. seed is typed first.
func RunMenu(ctx context.Context, root *tree.Menu, seed string, opts MenuOptions, progOpts ...tea.ProgramOption) (Selection, error) {
	m := NewMenuModel(root, opts)
	ApplyStartupKeys(m, seed)
	if m.Selected == nil && !m.Cancelled {
		final, err := tea.NewProgram(m, progOpts...).Run()
		if err != nil {
			return Selection{}, fmt.Errorf("menu: %w", err)
		}
		if fm, ok := final.(*MenuModel); ok {
			m = fm
		}
	}
	if m.Cancelled || m.Selected == nil {
		return Selection{}, ErrCancelled
	}
	logger.FromContext(ctx).V(1).Info("command selected",
		"command", m.Selected.DisplayName(), "leftover", m.Leftover, "resets", m.Resets)
	return Selection{Command: m.Selected, Leftover: m.Leftover, Resets: m.Resets}, nil
}

// TerminalPrompter asks for variables with an inline bubbletea prompt.
type TerminalPrompter struct {
	Options     PromptOptions
	ProgramOpts []tea.ProgramOption
}

// Prompt implements invoke.Prompter.
func (p *TerminalPrompter) Prompt(_ context.Context, req invoke.PromptRequest) (string, error) {
	m := NewPromptModel(req.Name, req.Default, req.History, p.Options)
	final, err := tea.NewProgram(m, p.ProgramOpts...).Run()
	if err != nil {
		return "", fmt.Errorf("prompt %s: %w", req.Name, err)
	}
	if fm, ok := final.(*PromptModel); ok {
		m = fm
	}
	if m.Cancelled {
		return "", ErrCancelled
	}
	return m.Value, nil
}

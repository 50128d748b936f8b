package cmd

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dotree/internal/history"
	"github.com/oakwood-commons/dotree/internal/invoke"
	"github.com/oakwood-commons/dotree/internal/navigator"
	"github.com/oakwood-commons/dotree/internal/tree"
	"github.com/oakwood-commons/dotree/internal/ui"
	"github.com/oakwood-commons/dotree/pkg/logger"
)

// selectFunc shows the menu rooted at root until a command is picked.
type selectFunc func(ctx context.Context, root *tree.Menu, seed string, opts ui.MenuOptions) (ui.Selection, error)

// launcher alternates between picking a command and invoking it until a
// command replaces the process or the user cancels.
type launcher struct {
	tree     *tree.Tree
	invoker  *invoke.Invoker
	menu     ui.MenuOptions
	selectFn selectFunc
}

func runLauncher(ctx context.Context, cmd *cobra.Command, seed string, args []string) error {
	env, err := loadEnvironment(ctx, flagOptions())
	if err != nil {
		return err
	}
	run := runSettings(ctx)
	lgr := logger.FromContext(ctx)

	store, err := history.Open(run.HistoryPath, run.MaxHistory)
	if err != nil {
		return err
	}
	lgr.V(1).Info("history loaded", "path", store.Path(), "entries", store.Len())

	stop := ui.InstallCursorGuard(cmd.OutOrStdout())
	defer stop()

	progOpts, cleanup := ui.ProgramOptions(ctx)
	defer cleanup()

	theme := ui.ThemeFromConfig(env.Config.Theme)
	l := &launcher{
		tree: env.Tree,
		menu: ui.MenuOptions{
			Theme:           theme,
			NoColor:         run.NoColor,
			ShowBreadcrumbs: env.Config.UI.ShowBreadcrumbs,
			ShowInput:       env.Config.UI.ShowInput,
		},
		invoker: &invoke.Invoker{
			Settings: env.Tree.Settings,
			Snippets: env.Tree.Snippets,
			Prompter: &ui.TerminalPrompter{
				Options:     ui.PromptOptions{Theme: theme, NoColor: run.NoColor},
				ProgramOpts: progOpts,
			},
			History: store,
			Dir:     env.Location.Dir,
		},
		selectFn: terminalSelect(progOpts),
	}
	return l.run(ctx, seed, args)
}

func terminalSelect(progOpts []tea.ProgramOption) selectFunc {
	return func(ctx context.Context, root *tree.Menu, seed string, opts ui.MenuOptions) (ui.Selection, error) {
		return ui.RunMenu(ctx, root, seed, opts, progOpts...)
	}
}

// run drives the select/invoke loop. args bind only to the first command.
func (l *launcher) run(ctx context.Context, seed string, args []string) error {
	lgr := logger.FromContext(ctx)
	first := true
	for {
		sel, err := l.choose(ctx, seed)
		if err != nil {
			return exitFor(err)
		}
		var callArgs []string
		if first {
			callArgs = args
		}
		out, err := l.invoker.Invoke(ctx, sel.Command, callArgs)
		if err != nil {
			return exitFor(err)
		}
		if !out.Repeat {
			return nil
		}
		lgr.V(1).Info("repeat command finished", logger.CommandKey, sel.Command.DisplayName(), "exit_code", out.ExitCode)
		first, seed = false, ""
	}
}

// choose feeds seed through the tree once. A seed that names a command
// skips the menu; an invalid one is dropped with a notice.
func (l *launcher) choose(ctx context.Context, seed string) (ui.Selection, error) {
	opts := l.menu
	if seed != "" {
		res := navigator.FollowPath(l.tree.Root, []rune(seed))
		switch res.Status {
		case navigator.StatusCommand:
			if res.Remaining > 0 {
				logger.FromContext(ctx).V(1).Info("ignoring input after command", "remaining", res.Remaining)
			}
			return ui.Selection{Command: res.Command, Leftover: res.Remaining}, nil
		case navigator.StatusInvalid:
			logger.FromContext(ctx).V(1).Info("invalid seed", "seed", seed)
			opts.Notice = fmt.Sprintf("input argument %q was invalid", seed)
			seed = ""
		}
	}
	return l.selectFn(ctx, l.tree.Root, seed, opts)
}

func exitFor(err error) error {
	var failed *invoke.CommandFailedError
	switch {
	case errors.Is(err, ui.ErrCancelled):
		return &ExitError{Code: ui.ExitInterrupted}
	case errors.As(err, &failed):
		return &ExitError{Code: 1, Err: err}
	}
	return err
}

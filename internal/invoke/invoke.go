// Package invoke runs a selected command: it binds the command's variables,
// exports them to the environment, resolves the body and hands it to a shell.
package invoke

import (
	"context"
	"fmt"
	"io"
	"os"

	"al.essio.dev/pkg/shellescape"

	"github.com/oakwood-commons/dotree/internal/expr"
	"github.com/oakwood-commons/dotree/internal/history"
	"github.com/oakwood-commons/dotree/internal/tree"
	"github.com/oakwood-commons/dotree/pkg/logger"
)

// PromptRequest describes a variable the user must supply.
type PromptRequest struct {
	Name    string
	Default string   // pre-filled, editable
	History []string // oldest first
}

// Prompter asks the user for a variable value.
type Prompter interface {
	Prompt(ctx context.Context, req PromptRequest) (string, error)
}

// ExecSpec is a fully prepared shell invocation.
type ExecSpec struct {
	Program      string
	Args         []string // arguments after the program name
	Dir          string
	Repeat       bool
	IgnoreResult bool
	Echo         bool
	Title        string
}

// Argv returns the program followed by its arguments.
func (s ExecSpec) Argv() []string {
	return append([]string{s.Program}, s.Args...)
}

// String renders the invocation quoted for a POSIX shell.
func (s ExecSpec) String() string {
	return shellescape.QuoteCommand(s.Argv())
}

// Outcome tells the caller what to do after Invoke returns.
type Outcome struct {
	// Repeat is set when the command ran as a child and the menu should be
	// shown again.
	Repeat bool
	// ExitCode is the child's exit status for repeat commands.
	ExitCode int
}

// ExecFunc replaces the current process. It returns only on failure.
type ExecFunc func(spec ExecSpec) error

// RunFunc runs spec as a child process and returns its exit status. An error
// means the child could not be started.
type RunFunc func(ctx context.Context, spec ExecSpec, stdio Stdio) (int, error)

// Stdio is the set of streams handed to a child process.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Invoker prepares and runs commands against one compiled tree.
type Invoker struct {
	Settings tree.Settings
	Snippets expr.Table
	Prompter Prompter
	History  *history.Store // optional

	// Dir is the working directory for commands; empty keeps the current one.
	Dir string

	Setenv func(key, value string) error
	Exec   ExecFunc
	Run    RunFunc
	Stdio  Stdio
}

func (iv *Invoker) setenv(k, v string) error {
	if iv.Setenv != nil {
		return iv.Setenv(k, v)
	}
	return os.Setenv(k, v)
}

func (iv *Invoker) stdio() Stdio {
	s := iv.Stdio
	if s.In == nil {
		s.In = os.Stdin
	}
	if s.Out == nil {
		s.Out = os.Stdout
	}
	if s.Err == nil {
		s.Err = os.Stderr
	}
	return s
}

// Prepare binds variables, exports them and builds the shell invocation.
// Positional args bind to variables in declaration order; the remaining
// variables are prompted for.
func (iv *Invoker) Prepare(ctx context.Context, cmd *tree.Command, args []string) (ExecSpec, error) {
	if len(args) > len(cmd.Vars) {
		return ExecSpec{}, &TooManyArgumentsError{Given: len(args), Declared: len(cmd.Vars)}
	}
	log := logger.FromContext(ctx)

	prompted := false
	for i, v := range cmd.Vars {
		var value string
		if i < len(args) {
			value = args[i]
		} else {
			val, err := iv.prompt(ctx, v)
			if err != nil {
				return ExecSpec{}, err
			}
			value = val
			prompted = true
		}
		if err := iv.setenv(v.Name, value); err != nil {
			return ExecSpec{}, fmt.Errorf("exporting %s: %w", v.Name, err)
		}
		log.V(1).Info("bound variable", "name", v.Name, "from_args", i < len(args))
	}
	if prompted && iv.History != nil {
		if err := iv.History.Save(); err != nil {
			return ExecSpec{}, err
		}
	}

	text, err := expr.Resolve(cmd.Body, iv.Snippets)
	if err != nil {
		return ExecSpec{}, fmt.Errorf("resolving command body: %w", err)
	}
	shell := iv.Settings.ShellFor(cmd)
	return ExecSpec{
		Program:      shell.Program,
		Args:         shell.ArgsWith(text),
		Dir:          iv.Dir,
		Repeat:       cmd.Has(tree.Repeat),
		IgnoreResult: cmd.Has(tree.IgnoreResult),
		Echo:         iv.Settings.EchoFor(cmd),
		Title:        cmd.DisplayName(),
	}, nil
}

func (iv *Invoker) prompt(ctx context.Context, v tree.VarDef) (string, error) {
	req := PromptRequest{Name: v.Name}
	if v.Default != nil {
		def, err := expr.Resolve(v.Default, iv.Snippets)
		if err != nil {
			return "", fmt.Errorf("resolving default for %s: %w", v.Name, err)
		}
		req.Default = def
	}
	if iv.History != nil {
		req.History = iv.History.Entries()
	}
	if iv.Prompter == nil {
		return "", fmt.Errorf("no value given for %s", v.Name)
	}
	value, err := iv.Prompter.Prompt(ctx, req)
	if err != nil {
		return "", err
	}
	if iv.History != nil {
		iv.History.Add(value)
	}
	return value, nil
}

// Invoke prepares cmd and runs it. A repeat command runs as a child and
// Invoke returns once it exits; any other command replaces the process, so
// Invoke only returns if that fails.
func (iv *Invoker) Invoke(ctx context.Context, cmd *tree.Command, args []string) (Outcome, error) {
	spec, err := iv.Prepare(ctx, cmd, args)
	if err != nil {
		return Outcome{}, err
	}
	log := logger.FromContext(ctx)
	log.V(1).Info("invoking command", "program", spec.Program, "repeat", spec.Repeat, "dir", spec.Dir)

	stdio := iv.stdio()
	if spec.Echo {
		fmt.Fprintln(stdio.Err, spec.String())
	}

	if !spec.Repeat {
		exec := iv.Exec
		if exec == nil {
			exec = ReplaceProcess
		}
		if err := exec(spec); err != nil {
			return Outcome{}, fmt.Errorf("exec %s: %w", spec.Program, err)
		}
		return Outcome{}, nil
	}

	run := iv.Run
	if run == nil {
		run = RunChild
	}
	code, err := run(ctx, spec, stdio)
	if err != nil {
		return Outcome{Repeat: true}, fmt.Errorf("running %s: %w", spec.Program, err)
	}
	out := Outcome{Repeat: true, ExitCode: code}
	if code != 0 && !spec.IgnoreResult {
		return out, &CommandFailedError{Command: spec.Title, ExitCode: code}
	}
	return out, nil
}

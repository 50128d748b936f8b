package cmd

import (
	"fmt"
	"io"
	"slices"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dotree/internal/compiler"
	"github.com/oakwood-commons/dotree/internal/expr"
	"github.com/oakwood-commons/dotree/internal/tree"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compile the config and resolve every command",
	Long: `Compile the menu config and resolve every reachable command body,
variable default and snippet. All problems are reported, not just the
first one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := loadEnvironment(rootCtx, flagOptions())
		if err != nil {
			return err
		}
		return reportCheck(cmd.OutOrStdout(), env.Location.Path, env.Tree)
	},
}

// checkReport is the result of resolving a whole tree.
type checkReport struct {
	Commands int
	Snippets int
	Problems []error
}

func checkTree(t *tree.Tree) checkReport {
	var r checkReport
	names := make([]string, 0, len(t.Snippets))
	for name := range t.Snippets {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		r.Snippets++
		if _, err := expr.Resolve(expr.Of(expr.Sym(name)), t.Snippets); err != nil {
			r.Problems = append(r.Problems, fmt.Errorf("snippet %s: %w", name, err))
		}
	}

	_ = tree.Walk(t.Root, func(chain []string, keys []rune, n tree.Node) error {
		c, ok := n.(*tree.Command)
		if !ok {
			return nil
		}
		r.Commands++
		where := fmt.Sprintf("%s [%s]", compiler.FormatChain(chain), string(keys))
		if _, err := expr.Resolve(c.Body, t.Snippets); err != nil {
			r.Problems = append(r.Problems, fmt.Errorf("%s: %w", where, err))
		}
		for _, v := range c.Vars {
			if v.Default == nil {
				continue
			}
			if _, err := expr.Resolve(v.Default, t.Snippets); err != nil {
				r.Problems = append(r.Problems, fmt.Errorf("%s: default for %s: %w", where, v.Name, err))
			}
		}
		return nil
	})
	return r
}

func reportCheck(w io.Writer, path string, t *tree.Tree) error {
	r := checkTree(t)
	for _, p := range r.Problems {
		pterm.Error.WithWriter(w).Println(p)
	}
	if len(r.Problems) > 0 {
		return &ExitError{Code: 1, Err: fmt.Errorf("%s: %d problem(s) found", path, len(r.Problems))}
	}
	pterm.Success.WithWriter(w).Printfln("%s: %d commands, %d snippets", path, r.Commands, r.Snippets)
	return nil
}

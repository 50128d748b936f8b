package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/dotree/internal/formatter"
	"github.com/oakwood-commons/dotree/internal/tree"
)

var (
	treeOutput    string
	treeDepth     int
	treeDirection string
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the compiled menu tree",
	Long: `Print the menu tree as dt sees it after compilation: shared submenus are
expanded in place and command bodies have their snippets resolved.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := loadEnvironment(rootCtx, flagOptions())
		if err != nil {
			return err
		}
		return writeTree(cmd.OutOrStdout(), env.Tree, treeOutput)
	},
}

func init() {
	treeCmd.Flags().StringVarP(&treeOutput, "output", "o", "text", "output format: text|yaml|json|toml|mermaid")
	treeCmd.Flags().IntVar(&treeDepth, "depth", 0, "limit menu depth for text and mermaid output (0 = unlimited)")
	treeCmd.Flags().StringVar(&treeDirection, "direction", "TD", "mermaid direction: TD, LR, BT, RL")
}

type treeDoc struct {
	Settings settingsDoc       `json:"settings" yaml:"settings" toml:"settings"`
	Snippets map[string]string `json:"snippets,omitempty" yaml:"snippets,omitempty" toml:"snippets,omitempty"`
	Root     menuDoc           `json:"root" yaml:"root" toml:"root"`
}

type settingsDoc struct {
	Shell string `json:"shell" yaml:"shell" toml:"shell"`
	Echo  bool   `json:"echo" yaml:"echo" toml:"echo"`
}

type menuDoc struct {
	Name    string     `json:"name" yaml:"name" toml:"name"`
	Title   string     `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Entries []entryDoc `json:"entries,omitempty" yaml:"entries,omitempty" toml:"entries,omitempty"`
}

type entryDoc struct {
	Keys    string      `json:"keys" yaml:"keys" toml:"keys"`
	Menu    *menuDoc    `json:"menu,omitempty" yaml:"menu,omitempty" toml:"menu,omitempty"`
	Command *commandDoc `json:"command,omitempty" yaml:"command,omitempty" toml:"command,omitempty"`
}

type commandDoc struct {
	Title    string   `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Run      string   `json:"run" yaml:"run" toml:"run"`
	Vars     []varDoc `json:"vars,omitempty" yaml:"vars,omitempty" toml:"vars,omitempty"`
	Settings []string `json:"settings,omitempty" yaml:"settings,omitempty" toml:"settings,omitempty"`
	Shell    string   `json:"shell,omitempty" yaml:"shell,omitempty" toml:"shell,omitempty"`
	Echo     bool     `json:"echo" yaml:"echo" toml:"echo"`
}

type varDoc struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Default string `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
}

func newTreeDoc(t *tree.Tree) treeDoc {
	doc := treeDoc{
		Settings: settingsDoc{Shell: t.Settings.ShellFor(nil).String(), Echo: t.Settings.Echo},
		Root:     newMenuDoc(t, t.Root),
	}
	if len(t.Snippets) > 0 {
		doc.Snippets = make(map[string]string, len(t.Snippets))
		for name, e := range t.Snippets {
			doc.Snippets[name] = formatter.ResolvedOrSource(e, t.Snippets)
		}
	}
	return doc
}

func newMenuDoc(t *tree.Tree, m *tree.Menu) menuDoc {
	doc := menuDoc{Name: m.Name, Title: m.Title}
	for _, e := range m.Entries {
		ed := entryDoc{Keys: string(e.Keys)}
		switch n := e.Node.(type) {
		case *tree.Menu:
			sub := newMenuDoc(t, n)
			ed.Menu = &sub
		case *tree.Command:
			ed.Command = newCommandDoc(t, n)
		}
		doc.Entries = append(doc.Entries, ed)
	}
	return doc
}

func newCommandDoc(t *tree.Tree, c *tree.Command) *commandDoc {
	doc := &commandDoc{
		Title:    c.Title,
		Run:      formatter.ResolvedOrSource(c.Body, t.Snippets),
		Settings: c.Settings.Names(),
		Echo:     t.Settings.EchoFor(c),
	}
	if c.Shell != nil {
		doc.Shell = c.Shell.String()
	}
	for _, v := range c.Vars {
		vd := varDoc{Name: v.Name}
		if v.Default != nil {
			vd.Default = formatter.ResolvedOrSource(v.Default, t.Snippets)
		}
		doc.Vars = append(doc.Vars, vd)
	}
	return doc
}

func writeTree(w io.Writer, t *tree.Tree, format string) error {
	switch format {
	case "text", "":
		_, err := io.WriteString(w, formatter.FormatAsTree(t, formatter.TreeOptions{MaxDepth: treeDepth}))
		return err
	case "mermaid":
		if err := formatter.ValidateDirection(treeDirection); err != nil {
			return err
		}
		_, err := io.WriteString(w, formatter.FormatAsMermaid(t, formatter.MermaidOptions{Direction: treeDirection, MaxDepth: treeDepth}))
		return err
	}

	doc := newTreeDoc(t)
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "toml":
		return toml.NewEncoder(w).Encode(doc)
	}
	return fmt.Errorf("unknown output format %q (want text, yaml, json, toml or mermaid)", format)
}

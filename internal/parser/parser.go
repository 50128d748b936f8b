// Package parser turns dotree configuration text into raw declarations.
//
// The grammar is line-aware in two places only: a shell definition runs to
// the end of its line, and the '+' and '-' operators of a command must sit on
// the same line as the element before them. Everywhere else newlines are
// ordinary whitespace and '#' starts a comment.
package parser

import (
	"github.com/oakwood-commons/dotree/internal/expr"
	"github.com/oakwood-commons/dotree/internal/tree"
)

type parser struct {
	s *scanner
}

// Parse parses a whole configuration file.
func Parse(src string) (*File, error) {
	p := &parser{s: newScanner(src)}
	return p.file()
}

// ParseShellDef parses a shell definition such as `zsh -c` or
// `shell bash -euo pipefail -c`. The leading `shell` keyword is optional.
func ParseShellDef(src string) (tree.ShellDef, error) {
	p := &parser{s: newScanner(src)}
	p.s.skipSpace()
	if p.s.peekIdent() == "shell" {
		p.s.ident()
	}
	def, err := p.shellArgs()
	if err != nil {
		return tree.ShellDef{}, err
	}
	p.s.skipSpace()
	if p.s.peek() != eof {
		return tree.ShellDef{}, p.s.errorf("unexpected %s after shell definition", describe(p.s.peek()))
	}
	return def, nil
}

// ParseExpression parses a standalone string expression like `$git + " log"`.
func ParseExpression(src string) (expr.Expression, error) {
	p := &parser{s: newScanner(src)}
	p.s.skipSpace()
	e, err := p.stringExpr()
	if err != nil {
		return nil, err
	}
	p.s.skipSpace()
	if p.s.peek() != eof {
		return nil, p.s.errorf("unexpected %s after expression", describe(p.s.peek()))
	}
	return e, nil
}

func (p *parser) file() (*File, error) {
	f := &File{Settings: tree.DefaultSettings()}
	settingsOpen := true
	for {
		p.s.skipSpace()
		if p.s.peek() == eof {
			return f, nil
		}
		start := p.s.pos()
		switch kw := p.s.peekIdent(); kw {
		case "shell", "echo":
			if !settingsOpen {
				return nil, p.s.errorAt(start, "setting %q must come before any menu or snippet", kw)
			}
			if err := p.setting(&f.Settings); err != nil {
				return nil, err
			}
		case "menu":
			settingsOpen = false
			m, err := p.menu()
			if err != nil {
				return nil, err
			}
			f.Menus = append(f.Menus, m)
		case "snippet":
			settingsOpen = false
			sn, err := p.snippet()
			if err != nil {
				return nil, err
			}
			f.Snippets = append(f.Snippets, sn)
		default:
			return nil, p.s.errorAt(start, "expected 'menu', 'snippet' or a setting, found %s", p.found())
		}
	}
}

func (p *parser) found() string {
	if id := p.s.peekIdent(); id != "" {
		return "'" + id + "'"
	}
	return describe(p.s.peek())
}

func (p *parser) setting(st *tree.Settings) error {
	switch p.s.ident() {
	case "shell":
		def, err := p.shellArgs()
		if err != nil {
			return err
		}
		st.Shell = &def
	case "echo":
		p.s.skipInlineSpace()
		at := p.s.pos()
		switch v := p.s.ident(); v {
		case "on":
			st.Echo = true
		case "off":
			st.Echo = false
		default:
			return p.s.errorAt(at, "echo setting must be 'on' or 'off'")
		}
	}
	return nil
}

// shellArgs reads the program and arguments of a shell definition up to the
// end of the line.
func (p *parser) shellArgs() (tree.ShellDef, error) {
	var parts []string
	for {
		p.s.skipInlineSpace()
		r := p.s.peek()
		if r == '\n' || r == eof {
			break
		}
		if isStringStart(r) {
			text, err := p.s.str()
			if err != nil {
				return tree.ShellDef{}, err
			}
			parts = append(parts, text)
			continue
		}
		parts = append(parts, p.s.word())
	}
	if len(parts) == 0 {
		return tree.ShellDef{}, p.s.errorf("shell definition needs a program")
	}
	return tree.ShellDef{Program: parts[0], Args: parts[1:]}, nil
}

func (p *parser) menu() (*MenuDecl, error) {
	m := &MenuDecl{Pos: p.s.pos()}
	p.s.ident() // menu
	p.s.skipSpace()
	if isStringStart(p.s.peek()) {
		title, err := p.s.str()
		if err != nil {
			return nil, err
		}
		m.Title = title
		p.s.skipSpace()
	}
	if m.Name = p.s.ident(); m.Name == "" {
		return nil, p.s.errorf("expected menu name, found %s", describe(p.s.peek()))
	}
	p.s.skipSpace()
	if err := p.s.expect('{', "to open menu "+m.Name); err != nil {
		return nil, err
	}
	for {
		p.s.skipSpace()
		switch p.s.peek() {
		case '}':
			p.s.next()
			return m, nil
		case eof:
			return nil, p.s.errorAt(m.Pos, "menu %s is never closed", m.Name)
		}
		e, err := p.entry()
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, e)
	}
}

func (p *parser) entry() (*EntryDecl, error) {
	e := &EntryDecl{Pos: p.s.pos()}
	if e.Keys = p.s.keys(); e.Keys == "" {
		return nil, p.s.errorf("expected key path, found %s", describe(p.s.peek()))
	}
	p.s.skipInlineSpace()
	if err := p.s.expect(':', "after key path "+e.Keys); err != nil {
		return nil, err
	}
	p.s.skipSpace()

	r := p.s.peek()
	switch {
	case isStringStart(r) || r == '@' || r == '$':
		cmd, err := p.quickCommand()
		if err != nil {
			return nil, err
		}
		e.Command = cmd
		return e, nil
	case isIdentStart(r):
		at := p.s.save()
		name := p.s.ident()
		if name == "cmd" {
			p.s.skipSpace()
			if p.s.peek() == '{' {
				cmd, err := p.blockCommand()
				if err != nil {
					return nil, err
				}
				e.Command = cmd
				return e, nil
			}
			p.s.restore(at)
			p.s.ident()
		}
		e.Submenu = name
		return e, nil
	}
	return nil, p.s.errorf("expected a menu name or a command after %q, found %s", e.Keys+":", describe(r))
}

// quickCommand parses `@? ("title" -)? expr`.
func (p *parser) quickCommand() (*tree.Command, error) {
	cmd := &tree.Command{}
	if p.s.peek() == '@' {
		p.s.next()
		cmd.ToggleEcho = true
		p.s.skipInlineSpace()
	}
	if !isStringStart(p.s.peek()) {
		body, err := p.stringExpr()
		if err != nil {
			return nil, err
		}
		cmd.Body = body
		return cmd, nil
	}

	first, err := p.s.str()
	if err != nil {
		return nil, err
	}
	m := p.s.save()
	p.s.skipInlineSpace()
	if p.s.peek() == '-' {
		p.s.next()
		p.s.skipSpace()
		cmd.Title = first
		body, err := p.stringExpr()
		if err != nil {
			return nil, err
		}
		cmd.Body = body
		return cmd, nil
	}
	p.s.restore(m)
	rest, err := p.exprTail(expr.Expression{expr.Lit(first)})
	if err != nil {
		return nil, err
	}
	cmd.Body = rest
	return cmd, nil
}

// blockCommand parses `cmd { clause* body }` with the cursor on '{'.
// Repeated clauses of one kind replace earlier ones.
func (p *parser) blockCommand() (*tree.Command, error) {
	open := p.s.pos()
	p.s.next() // {
	var (
		vars     []tree.VarDef
		settings tree.CommandSetting
		shell    *tree.ShellDef
	)
	for {
		p.s.skipSpace()
		r := p.s.peek()
		switch {
		case r == eof:
			return nil, p.s.errorAt(open, "command block is never closed")
		case r == '}':
			return nil, p.s.errorf("command block needs a body string")
		case isStringStart(r) || r == '@' || r == '$':
			cmd, err := p.quickCommand()
			if err != nil {
				return nil, err
			}
			p.s.skipSpace()
			if err := p.s.expect('}', "after command body"); err != nil {
				return nil, err
			}
			cmd.Vars = vars
			cmd.Settings = settings
			cmd.Shell = shell
			return cmd, nil
		}

		at := p.s.pos()
		switch kw := p.s.ident(); kw {
		case "vars":
			v, err := p.varList()
			if err != nil {
				return nil, err
			}
			vars = v
		case "set":
			st, err := p.settingList()
			if err != nil {
				return nil, err
			}
			settings = st
		case "shell":
			def, err := p.shellArgs()
			if err != nil {
				return nil, err
			}
			shell = &def
		case "":
			return nil, p.s.errorf("expected a clause or the command body, found %s", describe(r))
		default:
			return nil, p.s.errorAt(at, "unknown command clause %q (want vars, set or shell)", kw)
		}
	}
}

func (p *parser) varList() ([]tree.VarDef, error) {
	var vars []tree.VarDef
	seen := map[string]bool{}
	for {
		p.s.skipSpace()
		at := p.s.pos()
		name := p.s.ident()
		if name == "" {
			return nil, p.s.errorf("expected variable name, found %s", describe(p.s.peek()))
		}
		if seen[name] {
			return nil, p.s.errorAt(at, "variable %q declared twice", name)
		}
		seen[name] = true
		v := tree.VarDef{Name: name}

		m := p.s.save()
		p.s.skipInlineSpace()
		if p.s.peek() == '=' {
			p.s.next()
			p.s.skipSpace()
			def, err := p.stringExpr()
			if err != nil {
				return nil, err
			}
			v.Default = def
			m = p.s.save()
			p.s.skipInlineSpace()
		}
		vars = append(vars, v)
		if p.s.peek() != ',' {
			p.s.restore(m)
			return vars, nil
		}
		p.s.next()
	}
}

func (p *parser) settingList() (tree.CommandSetting, error) {
	var out tree.CommandSetting
	for {
		p.s.skipInlineSpace()
		at := p.s.pos()
		name := p.s.ident()
		st, ok := tree.ParseCommandSetting(name)
		if !ok {
			if name == "" {
				return 0, p.s.errorf("expected a command setting, found %s", describe(p.s.peek()))
			}
			return 0, p.s.errorAt(at, "unknown command setting %q (want repeat or ignore_result)", name)
		}
		out |= st
		m := p.s.save()
		p.s.skipInlineSpace()
		if p.s.peek() != ',' {
			p.s.restore(m)
			return out, nil
		}
		p.s.next()
		p.s.skipSpace()
	}
}

func (p *parser) snippet() (*SnippetDecl, error) {
	sn := &SnippetDecl{Pos: p.s.pos()}
	p.s.ident() // snippet
	p.s.skipSpace()
	if sn.Name = p.s.ident(); sn.Name == "" {
		return nil, p.s.errorf("expected snippet name, found %s", describe(p.s.peek()))
	}
	p.s.skipSpace()
	if err := p.s.expect('=', "after snippet "+sn.Name); err != nil {
		return nil, err
	}
	p.s.skipSpace()
	e, err := p.stringExpr()
	if err != nil {
		return nil, err
	}
	sn.Expr = e
	return sn, nil
}

func (p *parser) stringExpr() (expr.Expression, error) {
	el, err := p.exprElem()
	if err != nil {
		return nil, err
	}
	return p.exprTail(expr.Expression{el})
}

// exprTail consumes `+ elem` continuations; '+' must be on the current line.
func (p *parser) exprTail(e expr.Expression) (expr.Expression, error) {
	for {
		m := p.s.save()
		p.s.skipInlineSpace()
		if p.s.peek() != '+' {
			p.s.restore(m)
			return e, nil
		}
		p.s.next()
		p.s.skipSpace()
		el, err := p.exprElem()
		if err != nil {
			return nil, err
		}
		e = append(e, el)
	}
}

func (p *parser) exprElem() (expr.Elem, error) {
	switch r := p.s.peek(); {
	case r == '$':
		p.s.next()
		name := p.s.ident()
		if name == "" {
			return expr.Elem{}, p.s.errorf("expected snippet name after '$'")
		}
		return expr.Sym(name), nil
	case isStringStart(r):
		text, err := p.s.str()
		if err != nil {
			return expr.Elem{}, err
		}
		return expr.Lit(text), nil
	default:
		return expr.Elem{}, p.s.errorf("expected a string or $snippet, found %s", describe(r))
	}
}

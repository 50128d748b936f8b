package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/dotree/internal/navigator"
	"github.com/oakwood-commons/dotree/internal/tree"
)

// MenuOptions configures a MenuModel.
type MenuOptions struct {
	Theme           Theme
	NoColor         bool
	ShowBreadcrumbs bool
	ShowInput       bool
	// Notice is shown until the first keystroke, e.g. a warning about an
	// invalid seed.
	Notice string
}

// MenuModel reads keys until a command is selected or the user cancels.
type MenuModel struct {
	root   *tree.Menu
	buf    *navigator.Buffer
	result navigator.Result
	opts   MenuOptions
	styles styles

	warning  string
	quitting bool

	// Selected is set once a command has been chosen.
	Selected *tree.Command
	// Leftover counts typed runes that followed the selecting keys.
	Leftover int
	// Cancelled is set when the user pressed Esc or Ctrl-C.
	Cancelled bool
	// Resets counts how often invalid input sent the menu back to the root.
	Resets int
}

// NewMenuModel returns a model positioned at root with an empty buffer.
func NewMenuModel(root *tree.Menu, opts MenuOptions) *MenuModel {
	m := &MenuModel{
		root:    root,
		buf:     navigator.NewBuffer(""),
		opts:    opts,
		styles:  newStyles(opts.Theme, opts.NoColor),
		warning: opts.Notice,
	}
	m.result = navigator.FollowPath(root, nil)
	return m
}

func (m *MenuModel) Init() tea.Cmd { return nil }

// Current returns the latest navigation result.
func (m *MenuModel) Current() navigator.Result { return m.result }

// Input returns the buffered runes.
func (m *MenuModel) Input() string { return string(m.buf.Runes()) }

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || m.quitting {
		return m, nil
	}
	switch key.String() {
	case "esc", "ctrl+c":
		m.Cancelled = true
		m.quitting = true
		return m, tea.Quit
	case "backspace":
		if m.buf.Backspace() {
			m.warning = ""
			m.refresh()
		}
		return m, nil
	}
	if key.Text == "" {
		return m, nil
	}
	for _, r := range key.Text {
		m.buf.Push(r)
		if m.refresh() {
			return m, tea.Quit
		}
	}
	return m, nil
}

// refresh re-walks the buffer from the root and reports whether a command
// was selected.
func (m *MenuModel) refresh() bool {
	res := navigator.FollowPath(m.root, m.buf.Runes())
	switch res.Status {
	case navigator.StatusInvalid:
		m.warning = fmt.Sprintf("no entry matches %q", string(m.buf.Runes()))
		m.Resets++
		m.buf.Reset()
		m.result = navigator.FollowPath(m.root, nil)
	case navigator.StatusCommand:
		m.Selected = res.Command
		m.Leftover = res.Remaining
		m.result = res
		m.quitting = true
		return true
	default:
		m.warning = ""
		m.buf.Commit(res.Offset)
		m.result = res
	}
	return false
}

func (m *MenuModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	return tea.NewView(m.render())
}

func (m *MenuModel) render() string {
	var b strings.Builder
	menu := m.result.Menu

	if m.opts.ShowBreadcrumbs {
		b.WriteString(m.styles.breadcrumb.Render(strings.Join(m.result.Breadcrumbs(), " > ")))
		b.WriteByte('\n')
	}

	matches := navigator.Matches(menu, m.buf.Pending())
	width := 0
	for _, e := range matches {
		if e.Alive {
			width = max(width, runewidth.StringWidth(string(e.Keys)))
		}
	}
	for _, e := range matches {
		if !e.Alive {
			continue
		}
		keys := string(e.Keys)
		typed, rest := string(e.Keys[:e.Matched]), string(e.Keys[e.Matched:])
		b.WriteString(m.styles.matched.Render(typed))
		b.WriteString(m.styles.key.Render(rest))
		b.WriteString(strings.Repeat(" ", width-runewidth.StringWidth(keys)))
		b.WriteString("  ")
		if _, sub := e.Node.(*tree.Menu); sub {
			b.WriteString(m.styles.submenu.Render(e.Node.DisplayName() + "/"))
		} else {
			b.WriteString(m.styles.label.Render(e.Node.DisplayName()))
		}
		b.WriteByte('\n')
	}

	if m.warning != "" {
		b.WriteString(m.styles.warning.Render(m.warning))
		b.WriteByte('\n')
	}
	if pending := m.buf.Pending(); m.opts.ShowInput && len(pending) > 0 {
		b.WriteString(m.styles.key.Render("> " + string(pending)))
		b.WriteByte('\n')
	}
	return b.String()
}

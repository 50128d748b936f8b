package ui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// PromptModel edits a single line with a pre-filled default and
// up/down recall of earlier values.
type PromptModel struct {
	input   textinput.Model
	label   string
	history []string
	histIdx int    // len(history) while editing the draft
	draft   string // text typed before browsing history
	styles  styles
	done    bool

	// Value is the committed line.
	Value string
	// Cancelled is set when the user pressed Esc or Ctrl-C.
	Cancelled bool
}

// PromptOptions configures a PromptModel.
type PromptOptions struct {
	Theme   Theme
	NoColor bool
	Width   int
}

// NewPromptModel returns a focused prompt for name with def pre-filled.
// history is ordered oldest first.
func NewPromptModel(name, def string, history []string, opts PromptOptions) *PromptModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 4096
	ti.SetWidth(max(opts.Width, 40))
	ti.SetValue(def)
	ti.SetCursor(len([]rune(def)))
	ti.Focus()

	return &PromptModel{
		input:   ti,
		label:   name,
		history: history,
		histIdx: len(history),
		styles:  newStyles(opts.Theme, opts.NoColor),
	}
}

func (m *PromptModel) Init() tea.Cmd { return textinput.Blink }

func (m *PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			m.Value = m.input.Value()
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.Cancelled = true
			m.done = true
			return m, tea.Quit
		case "up":
			m.recall(-1)
			return m, nil
		case "down":
			m.recall(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *PromptModel) recall(delta int) {
	next := m.histIdx + delta
	if next < 0 || next > len(m.history) {
		return
	}
	if m.histIdx == len(m.history) {
		m.draft = m.input.Value()
	}
	m.histIdx = next
	text := m.draft
	if next < len(m.history) {
		text = m.history[next]
	}
	m.input.SetValue(text)
	m.input.SetCursor(len([]rune(text)))
}

// Text returns the current line.
func (m *PromptModel) Text() string { return m.input.Value() }

func (m *PromptModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(m.render())
}

func (m *PromptModel) render() string {
	var b strings.Builder
	b.WriteString(m.styles.prompt.Render("Value for " + m.label + ":"))
	b.WriteByte(' ')
	b.WriteString(m.input.View())
	return b.String()
}

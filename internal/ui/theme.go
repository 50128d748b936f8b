package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/dotree/internal/config"
)

// Theme defines the colors used by the menu and the prompt.
type Theme struct {
	Key        color.Color // unmatched part of a key path
	Matched    color.Color // already typed part of a key path
	Label      color.Color // command labels
	Submenu    color.Color // submenu labels
	Breadcrumb color.Color // menu chain header
	Warning    color.Color // invalid input notice
	Prompt     color.Color // variable prompt label
}

// DefaultTheme is the palette used when no settings are loaded.
func DefaultTheme() Theme {
	return Theme{
		Key:        lipgloss.Color("81"),
		Matched:    lipgloss.Color("214"),
		Label:      lipgloss.Color("252"),
		Submenu:    lipgloss.Color("141"),
		Breadcrumb: lipgloss.Color("246"),
		Warning:    lipgloss.Color("203"),
		Prompt:     lipgloss.Color("81"),
	}
}

// ThemeFromConfig builds a theme from settings; empty values keep the default.
func ThemeFromConfig(c config.ThemeConfig) Theme {
	t := DefaultTheme()
	set := func(dst *color.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&t.Key, c.Key)
	set(&t.Matched, c.Matched)
	set(&t.Label, c.Label)
	set(&t.Submenu, c.Submenu)
	set(&t.Breadcrumb, c.Breadcrumb)
	set(&t.Warning, c.Warning)
	set(&t.Prompt, c.Prompt)
	return t
}

type styles struct {
	key        lipgloss.Style
	matched    lipgloss.Style
	label      lipgloss.Style
	submenu    lipgloss.Style
	breadcrumb lipgloss.Style
	warning    lipgloss.Style
	prompt     lipgloss.Style
}

func newStyles(t Theme, noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			key:        plain,
			matched:    plain,
			label:      plain,
			submenu:    plain,
			breadcrumb: plain,
			warning:    plain,
			prompt:     plain,
		}
	}
	return styles{
		key:        lipgloss.NewStyle().Foreground(t.Key),
		matched:    lipgloss.NewStyle().Foreground(t.Matched).Bold(true).Underline(true),
		label:      lipgloss.NewStyle().Foreground(t.Label),
		submenu:    lipgloss.NewStyle().Foreground(t.Submenu).Bold(true),
		breadcrumb: lipgloss.NewStyle().Foreground(t.Breadcrumb),
		warning:    lipgloss.NewStyle().Foreground(t.Warning),
		prompt:     lipgloss.NewStyle().Foreground(t.Prompt).Bold(true),
	}
}

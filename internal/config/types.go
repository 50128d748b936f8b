package config

// Config holds application settings. Menu trees live in .dt files; this is
// everything else: colors, history and display toggles.
type Config struct {
	Theme   ThemeConfig   `mapstructure:"theme" yaml:"theme"`
	History HistoryConfig `mapstructure:"history" yaml:"history"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
}

// ThemeConfig names colors as lipgloss color strings ("81", "#ff8800").
type ThemeConfig struct {
	Key        string `mapstructure:"key" yaml:"key"`
	Matched    string `mapstructure:"matched" yaml:"matched"`
	Label      string `mapstructure:"label" yaml:"label"`
	Submenu    string `mapstructure:"submenu" yaml:"submenu"`
	Breadcrumb string `mapstructure:"breadcrumb" yaml:"breadcrumb"`
	Warning    string `mapstructure:"warning" yaml:"warning"`
	Prompt     string `mapstructure:"prompt" yaml:"prompt"`
}

// HistoryConfig controls the prompt history file.
type HistoryConfig struct {
	File       string `mapstructure:"file" yaml:"file"` // empty selects the XDG state path
	MaxEntries int    `mapstructure:"max_entries" yaml:"max_entries"`
}

// UIConfig toggles parts of the menu display.
type UIConfig struct {
	ShowBreadcrumbs bool `mapstructure:"show_breadcrumbs" yaml:"show_breadcrumbs"`
	ShowInput       bool `mapstructure:"show_input" yaml:"show_input"`
}

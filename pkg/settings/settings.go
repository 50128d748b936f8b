// Package settings holds build metadata and the per-run options of the dt
// CLI, and carries them through a context.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "dt"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo describes the running binary.
type VersionInfo struct {
	Commit       string `json:"commit" yaml:"commit"`
	BuildVersion string `json:"version" yaml:"version"`
	BuildTime    string `json:"build_time" yaml:"build_time"`
}

// Run holds options for a single invocation of dt.
type Run struct {
	MinLogLevel int8
	// ConfigPath is the menu file in use.
	ConfigPath string
	// WorkDir is where commands run; empty keeps the caller's directory.
	WorkDir string
	// SettingsPath is the application settings file.
	SettingsPath string
	HistoryPath  string
	MaxHistory   int
	NoColor      bool
}

// NewCliParams returns the defaults used before flags are applied.
func NewCliParams() *Run {
	return &Run{MinLogLevel: 0}
}

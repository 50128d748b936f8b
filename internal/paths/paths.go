// Package paths locates configuration and state files.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	AppName          = "dotree"
	ConfigFileName   = "dotree.dt"
	SettingsFileName = "settings.yaml"
	HistoryFileName  = "history"
)

// ErrLocalConfigNotFound is returned when no config file exists in the
// starting directory or any of its parents.
var ErrLocalConfigNotFound = errors.New("no " + ConfigFileName + " found in this directory or any parent")

// ConfigDir is the per-user config directory.
func ConfigDir() string { return filepath.Join(xdg.ConfigHome, AppName) }

// StateDir is the per-user state directory.
func StateDir() string { return filepath.Join(xdg.StateHome, AppName) }

// DefaultConfig is the menu file used when neither --conf nor --local is given.
func DefaultConfig() string { return filepath.Join(ConfigDir(), ConfigFileName) }

// SettingsFile is the default application settings file.
func SettingsFile() string { return filepath.Join(ConfigDir(), SettingsFileName) }

// HistoryFile is the default prompt history file.
func HistoryFile() string { return filepath.Join(StateDir(), HistoryFileName) }

// FindLocal walks from start towards the filesystem root and returns the
// first config file found.
func FindLocal(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, nil
		case err != nil && !errors.Is(err, os.ErrNotExist):
			return "", fmt.Errorf("checking %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrLocalConfigNotFound
		}
		dir = parent
	}
}

// Options selects how the config file is found.
type Options struct {
	Conf  string // explicit path, wins over everything else
	Local bool   // search upward from Cwd
	Cwd   string
}

// Location is a resolved config file. Dir is set for local configs and is
// the directory commands run in.
type Location struct {
	Path string
	Dir  string
}

// Resolve picks the config file for opts.
func Resolve(opts Options) (Location, error) {
	switch {
	case opts.Conf != "":
		return Location{Path: opts.Conf}, nil
	case opts.Local:
		cwd := opts.Cwd
		if cwd == "" {
			wd, err := os.Getwd()
			if err != nil {
				return Location{}, err
			}
			cwd = wd
		}
		p, err := FindLocal(cwd)
		if err != nil {
			return Location{}, err
		}
		return Location{Path: p, Dir: filepath.Dir(p)}, nil
	}
	return Location{Path: DefaultConfig()}, nil
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/oakwood-commons/dotree/internal/compiler"
	"github.com/oakwood-commons/dotree/internal/config"
	"github.com/oakwood-commons/dotree/internal/parser"
	"github.com/oakwood-commons/dotree/internal/paths"
	"github.com/oakwood-commons/dotree/internal/tree"
	"github.com/oakwood-commons/dotree/pkg/logger"
)

// envOptions are the flag values that decide what gets loaded.
type envOptions struct {
	Conf     string
	Local    bool
	Settings string
	Shell    string
	Cwd      string
}

// environment is everything a subcommand needs before it can act.
type environment struct {
	Config   config.Config
	Location paths.Location
	Tree     *tree.Tree
}

// loadEnvironment loads settings, finds the menu config and compiles it. The
// resolved paths are recorded in the run settings carried by ctx.
func loadEnvironment(ctx context.Context, opts envOptions) (*environment, error) {
	lgr := logger.FromContext(ctx)
	run := runSettings(ctx)

	settingsFile := opts.Settings
	if settingsFile == "" {
		settingsFile = paths.SettingsFile()
	}
	cfg, err := config.Load(settingsFile, opts.Settings == "")
	if err != nil {
		return nil, err
	}
	run.SettingsPath = settingsFile

	loc, err := paths.Resolve(paths.Options{Conf: opts.Conf, Local: opts.Local, Cwd: opts.Cwd})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	t, err := compiler.CompileFile(loc.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && opts.Conf == "" && !opts.Local {
			return nil, fmt.Errorf("%w (create it or pass --conf)", err)
		}
		return nil, err
	}
	lgr.V(1).Info("compiled menu tree", logger.ConfigKey, loc.Path, logger.DurationKey, time.Since(start).String())

	if opts.Shell != "" {
		sh, err := parser.ParseShellDef(opts.Shell)
		if err != nil {
			return nil, fmt.Errorf("--shell: %w", err)
		}
		t.Settings.Shell = &sh
	}

	run.ConfigPath = loc.Path
	run.WorkDir = loc.Dir
	run.HistoryPath = cfg.History.File
	if run.HistoryPath == "" {
		run.HistoryPath = paths.HistoryFile()
	}
	run.MaxHistory = cfg.History.MaxEntries

	return &environment{Config: cfg, Location: loc, Tree: t}, nil
}

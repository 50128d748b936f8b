// Package cmd is the dt command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dotree/internal/paths"
	"github.com/oakwood-commons/dotree/pkg/logger"
	"github.com/oakwood-commons/dotree/pkg/settings"
)

var (
	confPath     string
	localConf    bool
	settingsPath string
	shellFlag    string
	debug        bool
	noColor      bool
)

// rootCtx carries the logger and run settings set up in PersistentPreRunE.
var rootCtx = context.Background()

var rootCmd = &cobra.Command{
	Use:   "dt [seed] [args...]",
	Short: "Run shell commands from a keystroke-driven menu tree",
	Long: `dt reads a tree of menus and commands from a config file and lets you
pick a command by typing its key path. Menus nest, so "gs" can mean
git > status.

An optional seed is typed before the menu opens. Arguments after the seed
fill the selected command's variables in order; the rest are prompted for.`,
	Example: "  dt\n  dt gs\n  dt gc 'fix typo'\n  dt -l b\n  dt -c ./ops.dt d\n",
	Args:    cobra.ArbitraryArgs,
	// errors are printed once by main
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		var seed string
		if len(args) > 0 {
			seed, args = args[0], args[1:]
		}
		return runLauncher(rootCtx, cmd, seed, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&confPath, "conf", "c", "", "path to a menu config file (default "+paths.DefaultConfig()+")")
	rootCmd.PersistentFlags().BoolVarP(&localConf, "local", "l", false, "search upward from the working directory for "+paths.ConfigFileName+" and run commands there")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "path to a settings YAML file (default "+paths.SettingsFile()+")")
	rootCmd.PersistentFlags().StringVar(&shellFlag, "shell", "", `default shell, e.g. "zsh -c"`)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug logs to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.MarkFlagsMutuallyExclusive("conf", "local")
	// everything after the seed belongs to the command
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd, treeCmd, checkCmd)
}

func setupRun(cmd *cobra.Command, _ []string) error {
	level := logger.LevelFor(debug)
	lgr := logger.Get(level)
	lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

	run := settings.NewCliParams()
	run.MinLogLevel = level
	run.NoColor = noColor || os.Getenv("NO_COLOR") != ""
	run.SettingsPath = settingsPath
	if run.NoColor {
		pterm.DisableColor()
	}
	rootCtx = settings.IntoContext(logger.WithLogger(context.Background(), lgr), run)
	return nil
}

// runSettings returns the run settings in ctx, or defaults.
func runSettings(ctx context.Context) *settings.Run {
	if run, ok := settings.FromContext(ctx); ok {
		return run
	}
	return settings.NewCliParams()
}

func flagOptions() envOptions {
	return envOptions{
		Conf:     confPath,
		Local:    localConf,
		Settings: settingsPath,
		Shell:    shellFlag,
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// PrintError writes err for the user. ExitErrors without a cause print
// nothing.
func PrintError(err error) {
	var ee *ExitError
	if errors.As(err, &ee) && ee.Err == nil {
		return
	}
	pterm.Error.WithWriter(os.Stderr).Println(err)
}

// ExitCode maps an Execute error to a process status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return 1
}

func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s)", settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime)
}

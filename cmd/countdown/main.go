package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/countdown/internal/chime"
	"github.com/ensigniasec/countdown/internal/config"
	"github.com/ensigniasec/countdown/internal/countdown"
	"github.com/ensigniasec/countdown/internal/storage"
	"github.com/ensigniasec/countdown/internal/theme"
	"github.com/ensigniasec/countdown/internal/tui"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	verbose     bool
	configFile  string
	storageFile string
	tuiDuration string
	runInterval string
	runChime    bool

	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "countdown",
		Short: "A countdown timer for the terminal with a persisted light/dark theme.",
		Long: `Set hours, minutes and seconds, then start, pause, resume or reset the countdown.
The remaining time is shaded by how much of the countdown is left, and the light/dark
theme choice is remembered between runs.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			c, err := config.LoadConfig(configFile)
			if err != nil {
				logrus.Fatalf("Unable to load config: %v", err)
			}
			cfg = c
		},
		Run: func(cmd *cobra.Command, args []string) {
			runTUI(cmd)
		},
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr so stdout carries only command output.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().
		StringVar(&configFile, "config", "", "Path to a YAML or TOML config file (default ~/.config/countdown/config.yaml)")
	rootCmd.PersistentFlags().
		StringVar(&storageFile, "store-file", "", "Path to the preference store (default ~/.config/countdown/preferences.json)")

	tuiCmd.Flags().StringVarP(&tuiDuration, "duration", "d", "", "Preload the selectors, e.g. 25m, 1:30:00 or 90")
	runCmd.Flags().StringVar(&runInterval, "interval", "", "Tick interval override, e.g. 1s or 10ms")
	runCmd.Flags().BoolVar(&runChime, "chime", false, "Play a tone when the countdown completes")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(formatCmd)

	themeCmd.AddCommand(themeShowCmd)
	themeCmd.AddCommand(themeToggleCmd)
	themeCmd.AddCommand(themeSetCmd)
	themeCmd.AddCommand(themeResetCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func main() {
	Execute()
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive countdown timer [default]",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI(cmd)
	},
}

func runTUI(cmd *cobra.Command) {
	interval, err := cfg.TickInterval()
	if err != nil {
		logrus.Fatal(err)
	}

	durationArg := cfg.Timer.DefaultDuration
	if tuiDuration != "" {
		durationArg = tuiDuration
	}
	var initial countdown.Duration
	if durationArg != "" {
		if initial, err = countdown.ParseDuration(durationArg); err != nil {
			logrus.Fatal(err)
		}
	}

	st := openStorage()
	// Query the system before the program owns the terminal.
	pref := theme.NewPreference(st, theme.SystemDetector())
	pref.Initialize()

	opts := tui.RunOptions{
		Model: tui.Options{
			Interval:   interval,
			Initial:    initial,
			Preference: pref,
			ShowHelp:   cfg.TUI.ShowHelp,
		},
		Storage:   st,
		AltScreen: cfg.TUI.AltScreen,
	}
	if cfg.Chime.Enabled {
		c, err := newChime(cfg)
		if err != nil {
			logrus.Fatal(err)
		}
		defer c.Close()
		opts.Model.Chime = c
	}

	if err := tui.Run(cmd.Context(), opts); err != nil {
		logrus.Fatalf("TUI failed: %v", err)
	}
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var formatCmd = &cobra.Command{
	Use:   "format SECONDS...",
	Short: "Format second counts as HH:MM:SS",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil {
				logrus.Fatalf("Invalid seconds value %q: expected a whole number", a)
			}
			fmt.Fprintln(cmd.OutOrStdout(), countdown.FormatTime(n))
		}
	},
}

// openStorage resolves the store path from the flag, then the config, then the default.
func openStorage() *storage.Storage {
	path := storageFile
	if path == "" {
		path = cfg.Storage.File
	}
	st, err := storage.NewStorage(path)
	if err != nil {
		logrus.Fatalf("Unable to open preference store: %v", err)
	}
	return st
}

func newChime(c *config.Config) (*chime.Chime, error) {
	length, err := c.ChimeLength()
	if err != nil {
		return nil, err
	}
	return chime.New(c.Chime.Frequency, length), nil
}

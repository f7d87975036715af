package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/countdown/internal/storage"
	"github.com/ensigniasec/countdown/internal/theme"
)

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the persisted light/dark theme",
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active theme and where it came from",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		st, pref := loadPreference()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", pref.Mode(), pref.Source())
		if updated := st.UpdatedAt(); !updated.IsZero() {
			fmt.Fprintf(out, "updated %s\n", humanize.Time(updated))
		}
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip between dark and light and save the choice",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_, pref := loadPreference()
		if _, err := pref.Toggle(); err != nil {
			logrus.Fatalf("Unable to save theme: %v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), pref.Mode())
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var themeSetCmd = &cobra.Command{
	Use:       "set dark|light",
	Short:     "Set and save the theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"dark", "light"},
	Run: func(cmd *cobra.Command, args []string) {
		dark, err := theme.ParseMode(args[0])
		if err != nil {
			logrus.Fatal(err)
		}
		_, pref := loadPreference()
		if err := pref.Set(dark); err != nil {
			logrus.Fatalf("Unable to save theme: %v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), pref.Mode())
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var themeResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the saved theme and follow the system setting again",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		st := openStorage()
		if err := st.Delete(theme.Key); err != nil {
			logrus.Fatalf("Unable to reset theme: %v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Theme reset to system default")
	},
}

// loadPreference opens the store and initializes the theme preference from it.
func loadPreference() (*storage.Storage, *theme.Preference) {
	st := openStorage()
	pref := theme.NewPreference(st, theme.SystemDetector(), theme.ApplierFunc(func(dark bool) {
		logrus.Debugf("theme applied: dark=%t", dark)
	}))
	pref.Initialize()
	return st, pref
}

// SPDX-License-Identifier: MPL-2.0

// Command modresolve runs the bundler module resolution algorithm against a
// real filesystem from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/modresolve/modresolve/internal/config"
	"github.com/modresolve/modresolve/internal/issue"
	"github.com/modresolve/modresolve/pkg/types"
)

// exitFailure is the process exit code returned when a command fails.
const exitFailure types.ExitCode = 1

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug-level resolver tracing.
	verbose bool
	// cfgFile allows specifying a custom config file.
	cfgFile string

	// log is the colorized console logger wrapping the resolver's slog
	// debug stream; its level is raised to Debug only when --verbose is set.
	log = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:  charmlog.InfoLevel,
		Prefix: "modresolve",
	})

	rootCmd = &cobra.Command{
		Use:   "modresolve",
		Short: "A bundler-style node_modules resolver",
		Long: TitleStyle.Render("modresolve") + SubtitleStyle.Render(" - a bundler-style node_modules resolver") + `

modresolve implements the module resolution algorithm a web/asset bundler
runs against import/require specifiers: classification, node_modules
walking, multi-extension probing, and manifest-driven alias rewriting.

` + SubtitleStyle.Render("Examples:") + `
  modresolve resolve "./util" --from ./src/index.js
  modresolve resolve "/lib/util" --from ./src/index.js --root-dir /proj
  modresolve config show`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(charmlog.DebugLevel)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose resolver tracing")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the platform config dir's config.cue)")

	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newConfigCommand())
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var ae *issue.ActionableError
		if errors.As(err, &ae) {
			fmt.Fprintln(os.Stderr, ae.Format(verbose))
		}
		os.Exit(int(exitFailure))
	}
}

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// loadConfig loads effective configuration honoring --config when set.
func loadConfig(ctx context.Context) (*config.Config, error) {
	return config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
}

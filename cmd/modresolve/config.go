// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/modresolve/modresolve/internal/config"
)

// newConfigCommand creates the `modresolve config` command tree.
func newConfigCommand() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage modresolve configuration",
		Long: `Manage modresolve configuration.

Configuration is stored in:
  - Linux: ~/.config/modresolve/config.cue
  - macOS: ~/Library/Application Support/modresolve/config.cue
  - Windows: %APPDATA%\modresolve\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return wrapConfigError(err)
			}
			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return wrapConfigError(err)
	}

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	cfgDir, dirErr := config.ConfigDir()
	cfgPath := cfgDir + "/config.cue"
	if dirErr == nil && fileExistsCheck(cfgPath) {
		fmt.Printf("%s: %s\n", KeyStyle.Render("config file"), cfgPath)
	} else {
		fmt.Printf("%s: %s\n", KeyStyle.Render("config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	rootDir := cfg.RootDir.String()
	if rootDir == "" {
		rootDir = SubtitleStyle.Render("(unset)")
	} else {
		rootDir = SuccessStyle.Render(rootDir)
	}
	fmt.Printf("%s: %s\n", KeyStyle.Render("root_dir"), rootDir)

	fmt.Println()
	fmt.Printf("%s:\n", KeyStyle.Render("extensions"))
	if len(cfg.Extensions) == 0 {
		fmt.Printf("  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, ext := range cfg.Extensions {
			fmt.Printf("  - %s\n", SuccessStyle.Render(ext.String()))
		}
	}

	fmt.Println()
	fmt.Printf("%s:\n", KeyStyle.Render("builtins"))
	if len(cfg.Builtins) == 0 {
		fmt.Printf("  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		names := make([]string, 0, len(cfg.Builtins))
		for name := range cfg.Builtins {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  - %s -> %s\n", SuccessStyle.Render(name), SuccessStyle.Render(cfg.Builtins[name].String()))
		}
	}

	fmt.Println()
	emptyShim := cfg.EmptyShim.String()
	if emptyShim == "" {
		emptyShim = SubtitleStyle.Render("(unset)")
	} else {
		emptyShim = SuccessStyle.Render(emptyShim)
	}
	fmt.Printf("%s: %s\n", KeyStyle.Render("empty_shim"), emptyShim)

	return nil
}

func initConfig() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return wrapConfigError(err)
	}

	if err := config.CreateDefaultConfig(); err != nil {
		return wrapConfigError(err)
	}

	fmt.Printf("%s Created default configuration at %s/config.cue\n", SuccessStyle.Render("\u2713"), cfgDir)
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return wrapConfigError(err)
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s/config.cue\n", cfgDir)
	return nil
}

func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

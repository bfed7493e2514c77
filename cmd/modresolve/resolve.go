// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/modresolve/modresolve/internal/issue"
	"github.com/modresolve/modresolve/pkg/resolve"
	"github.com/modresolve/modresolve/pkg/types"
)

func newResolveCommand() *cobra.Command {
	var (
		from    string
		rootDir string
	)

	resolveCmd := &cobra.Command{
		Use:   "resolve <specifier>",
		Short: "Resolve a module specifier from an issuing file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args[0], from, rootDir)
		},
	}

	resolveCmd.Flags().StringVar(&from, "from", "", "the file the specifier was requested from")
	resolveCmd.Flags().StringVar(&rootDir, "root-dir", "", "override the configured root directory")

	return resolveCmd
}

func runResolve(cmd *cobra.Command, specifier, from, rootDirFlag string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return wrapConfigError(err)
	}

	root := cfg.RootDir.String()
	if rootDirFlag != "" {
		abs, err := filepath.Abs(rootDirFlag)
		if err != nil {
			return fmt.Errorf("resolving --root-dir: %w", err)
		}
		root = abs
	}

	var parent types.FilesystemPath
	if from != "" {
		abs, err := filepath.Abs(from)
		if err != nil {
			return fmt.Errorf("resolving --from: %w", err)
		}
		parent = types.FilesystemPath(abs)
	}

	extensions := make([]string, len(cfg.Extensions))
	for i, e := range cfg.Extensions {
		extensions[i] = string(e)
	}

	builtins := make(map[string]types.FilesystemPath, len(cfg.Builtins))
	for name, shim := range cfg.Builtins {
		builtins[name] = types.FilesystemPath(shim)
	}

	resolver := resolve.New(resolve.Config{
		RootDir:       types.FilesystemPath(root),
		Extensions:    types.NewExtensionSet(extensions...),
		Builtins:      builtins,
		EmptyShimPath: types.FilesystemPath(cfg.EmptyShim),
	}, resolve.WithLogger(resolverLogger()))

	result, err := resolver.Resolve(types.ModuleSpecifier(specifier), parent)
	if err != nil {
		return wrapResolveError(err, specifier, from)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", PathStyle.Render(string(result.Path)))
	if result.Glob {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", KeyStyle.Render("kind"), "unexpanded glob")
	}
	if result.Pkg != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", KeyStyle.Render("package"), result.Pkg.Name)
	}

	return nil
}

func wrapConfigError(err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithSuggestion("Run 'modresolve config show' to inspect the effective configuration").
		Wrap(err).
		BuildError()
}

func wrapResolveError(err error, specifier, from string) error {
	resource := specifier
	if from != "" {
		resource = specifier + " from " + from
	}

	ctx := issue.NewErrorContext().
		WithOperation("resolve module specifier").
		WithResource(resource)

	if os.IsPermission(err) {
		return ctx.
			WithSuggestion("Check read permissions on the directory tree being resolved").
			Wrap(err).
			BuildError()
	}

	return ctx.
		WithSuggestion("Run with --verbose to see every candidate path that was probed").
		WithSuggestion("Confirm the package is installed under node_modules").
		Wrap(err).
		BuildError()
}

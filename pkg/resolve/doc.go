// SPDX-License-Identifier: MPL-2.0

// Package resolve implements the bundler module resolution algorithm: given a
// request string as it appears in an import/require directive and the file
// that issued it, it locates the absolute path of the module to load (or an
// explicit empty-shim path), along with the manifest of the package owning
// that file, if any.
//
// It extends Node.js's node_modules resolution with bundler-specific
// additions: multi-extension probing, glob specifiers, root-absolute and
// tilde-prefixed paths, package-manifest entry-point selection tuned for
// source delivery, and an alias-rewriting subsystem sourced from both
// per-package and project-root manifests.
//
// The pieces, leaves first:
//
//   - [Classify]: determines the kind of a request (absolute, tilde,
//     relative, bare, glob) — see classify.go.
//   - splitModule: splits a bare-module request into package name and
//     subpath, honoring scoped packages — see modulepath.go.
//   - manifestCache: locates, reads, and memoizes package manifests,
//     including the source-field symlink rule and entry-point selection —
//     see manifest.go.
//   - resolveAliases: rewrites a filename through per-package and
//     root-package alias tables, including glob aliases and the
//     alias:false empty-shim convention — see alias.go.
//   - walkNodeModules: locates the package directory for a bare-module
//     name by walking ancestor directories — see nodemodules.go.
//   - expandFile / loadAsFile / loadDirectory / loadRelative /
//     loadNodeModules: candidate enumeration and file/directory probing —
//     see candidates.go.
//   - [Resolver]: orchestrates all of the above, owns the result cache, and
//     raises [ErrModuleNotFound] — see resolver.go.
package resolve

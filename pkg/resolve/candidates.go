// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"github.com/modresolve/modresolve/pkg/fspath"
	"github.com/modresolve/modresolve/pkg/types"
)

// Result is a successful resolution: either a file on disk (Path set,
// Pkg optionally set) or an unexpanded glob specifier (Path set, Pkg nil,
// Glob true).
type Result struct {
	Path types.FilesystemPath
	Pkg  *PackageManifest
	Glob bool
}

// activeExtensions implements 4.6's "active extension list": start from
// the configured set, move the parent's own extension to the front when a
// parent is known, then prepend the empty string so the base filename
// itself is tried first.
func activeExtensions(configured types.ExtensionSet, parent types.FilesystemPath) types.ExtensionSet {
	set := configured
	if parent != "" {
		if ext := extOf(parent); ext != "" {
			set = set.WithFront(ext)
		}
	}
	return set.WithLeadingEmpty()
}

func extOf(p types.FilesystemPath) string {
	base := fspath.Base(p)
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[i:]
		}
		if base[i] == '/' {
			break
		}
	}
	return ""
}

// expandFile implements 4.6's expandFile(file, exts, pkg, expandAliases):
// for each extension in active order, it emits file+ext; when
// expandAliases is set and resolving aliases on file+ext produces a
// different name, the alias target's own (non-recursive) candidate list is
// emitted before the literal file+ext.
func (r *Resolver) expandFile(file types.FilesystemPath, exts types.ExtensionSet, pkg *PackageManifest, expandAliases bool) []types.FilesystemPath {
	var out []types.FilesystemPath
	for _, ext := range exts.Slice() {
		literal := file + types.FilesystemPath(ext)

		if expandAliases {
			aliased, _ := r.resolveAliases(string(literal), pkg)
			if aliased != string(literal) {
				out = append(out, r.expandFile(types.FilesystemPath(aliased), exts, pkg, false)...)
			}
		}

		out = append(out, literal)
	}
	return out
}

// loadAsFile implements 4.6's loadAsFile: the first expandFile candidate
// that stats as a regular file or named pipe wins.
func (r *Resolver) loadAsFile(file types.FilesystemPath, exts types.ExtensionSet, pkg *PackageManifest) (Result, bool) {
	for _, candidate := range r.expandFile(file, exts, pkg, true) {
		st, err := r.fs.Stat(candidate)
		if err != nil {
			r.log.Debug("resolve: probe miss", "candidate", candidate)
			continue // ProbeMiss: recovered, try the next candidate
		}
		if st.IsFile || st.IsFIFO {
			r.log.Debug("resolve: probe hit", "candidate", candidate)
			return Result{Path: candidate, Pkg: pkg}, true
		}
	}
	return Result{}, false
}

// loadDirectory implements 4.6's loadDirectory: a manifest at dir selects
// an entry point (falling back to the manifest's own main-as-directory);
// absent a manifest, "index" is tried directly in dir.
func (r *Resolver) loadDirectory(dir types.FilesystemPath, exts types.ExtensionSet, visited map[types.FilesystemPath]bool) (Result, bool) {
	if visited == nil {
		visited = make(map[types.FilesystemPath]bool)
	}
	// Guard against a manifest's main pointing back into its own directory
	// (design note on bounding loadDirectory recursion).
	if visited[dir] {
		return Result{}, false
	}
	visited[dir] = true

	pkg := r.manifests.findPackageAt(dir)
	if pkg != nil {
		main := getPackageMain(pkg)
		if res, ok := r.loadAsFile(main, exts, pkg); ok {
			return res, true
		}
		if res, ok := r.loadDirectory(main, exts, visited); ok {
			return res, true
		}
		return Result{}, false
	}

	return r.loadAsFile(fspath.JoinStr(dir, "index"), exts, nil)
}

// loadRelative implements 4.6's loadRelative: locate the owning package
// via findPackage(dirname(file)), then try the file candidates before
// falling back to directory interpretation.
func (r *Resolver) loadRelative(file types.FilesystemPath, exts types.ExtensionSet) (Result, bool) {
	pkg := r.manifests.findPackage(fspath.Dir(file))
	if res, ok := r.loadAsFile(file, exts, pkg); ok {
		return res, true
	}
	return r.loadDirectory(file, exts, nil)
}

// loadNodeModules implements 4.6's loadNodeModules.
func (r *Resolver) loadNodeModules(module ModuleLookup, exts types.ExtensionSet) (Result, bool) {
	if module.SubPath != "" {
		pkg, err := r.manifests.read(module.ModuleDir)
		if err != nil {
			pkg = nil
		}
		return r.loadAsFile(module.FilePath, exts, pkg)
	}
	return r.loadDirectory(module.FilePath, exts, nil)
}

// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"log/slog"
	"os"
	"sync"

	"github.com/modresolve/modresolve/pkg/fspath"
	"github.com/modresolve/modresolve/pkg/types"
)

// Config holds a [Resolver]'s constructor configuration (spec's §6 table).
type Config struct {
	// RootDir anchors `/`-prefixed inputs and findPackage when loading the
	// root manifest. Required if any resolved input may be root-absolute.
	RootDir types.FilesystemPath

	// Extensions is the active extension candidate list. Order matters:
	// see 4.6's active extension list construction.
	Extensions types.ExtensionSet

	// Builtins maps a bare-module name to an absolute shim path, consulted
	// at the start of the node_modules walk (C5 step 1).
	Builtins map[string]types.FilesystemPath

	// EmptyShimPath is returned whenever an alias value is the literal
	// false (4.5's alias:false convention).
	EmptyShimPath types.FilesystemPath

	// FS is the filesystem collaborator. Defaults to [NewOSFS] when nil.
	FS FS

	// Logger receives debug-level cache-hit/miss and alias-rewrite events.
	// Defaults to slog.Default() when nil.
	Logger *slog.Logger
}

// Resolver orchestrates C1-C7, owns the top-level result cache, and raises
// [NotFoundError] (C8).
type Resolver struct {
	rootDir       types.FilesystemPath
	extensions    types.ExtensionSet
	builtins      map[string]types.FilesystemPath
	emptyShimPath types.FilesystemPath

	fs        FS
	manifests *manifestCache
	log       *slog.Logger

	resultMu sync.Mutex
	results  map[string]Result

	rootPkgOnce sync.Once
	rootPkg     *PackageManifest
}

// Option customizes a Resolver beyond its Config at construction time.
type Option func(*Resolver)

// WithLogger attaches log as the resolver's debug-event sink, overriding
// both Config.Logger and the slog.Default() fallback. Takes precedence
// because it is applied after Config is processed in New.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// New constructs a Resolver from cfg, applying any opts afterward.
func New(cfg Config, opts ...Option) *Resolver {
	fs := cfg.FS
	if fs == nil {
		fs = NewOSFS()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	r := &Resolver{
		rootDir:       cfg.RootDir,
		extensions:    cfg.Extensions,
		builtins:      cfg.Builtins,
		emptyShimPath: cfg.EmptyShimPath,
		fs:            fs,
		manifests:     newManifestCache(fs),
		log:           log,
		results:       make(map[string]Result),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// rootPackage lazily loads and memoizes the project-root manifest. Under
// cooperative concurrency, concurrent first-use races store equal values
// (design note); sync.Once gives a one-shot initializer regardless.
func (r *Resolver) rootPackage() *PackageManifest {
	r.rootPkgOnce.Do(func() {
		if r.rootDir == "" {
			return
		}
		r.rootPkg = r.manifests.findPackage(r.rootDir)
	})
	return r.rootPkg
}

// Resolve implements C8: resolve(input, parent).
func (r *Resolver) Resolve(input types.ModuleSpecifier, parent types.FilesystemPath) (Result, error) {
	raw := string(input)

	dir := parent
	if dir != "" {
		dir = fspath.Dir(parent)
	}
	key := string(dir) + ":" + raw
	if dir == "" {
		if wd, wdErr := os.Getwd(); wdErr == nil {
			dir = types.FilesystemPath(wd)
		}
	}

	r.resultMu.Lock()
	if cached, ok := r.results[key]; ok {
		r.resultMu.Unlock()
		r.log.Debug("resolve: cache hit", "input", raw, "dir", dir)
		return cached, nil
	}
	r.resultMu.Unlock()
	r.log.Debug("resolve: cache miss", "input", raw, "dir", dir)

	if IsGlob(raw) {
		res := Result{Path: fspath.Join(dir, types.FilesystemPath(raw)), Glob: true}
		r.store(key, res)
		return res, nil
	}

	exts := activeExtensions(r.extensions, parent)

	lookup, isRelative, absPath, err := r.resolveModule(raw, dir)
	if err != nil {
		return Result{}, err
	}

	var (
		res Result
		ok  bool
	)
	switch {
	case isRelative:
		res, ok = r.loadRelative(absPath, exts)
	case lookup.IsBuiltin:
		res, ok = Result{Path: lookup.FilePath}, true
	case lookup.ModuleDir != "":
		res, ok = r.loadNodeModules(lookup, exts)
	default:
		ok = false
	}

	if !ok {
		failDir := string(dir)
		if failDir == "" {
			if wd, wdErr := os.Getwd(); wdErr == nil {
				failDir = wd
			}
		}
		return Result{}, &NotFoundError{Input: raw, Dir: failDir}
	}

	r.store(key, res)
	return res, nil
}

func (r *Resolver) store(key string, res Result) {
	r.resultMu.Lock()
	r.results[key] = res
	r.resultMu.Unlock()
}

// resolveModule runs C1, the load-time alias pass, and C5. It returns
// either an absolute candidate path for relative/absolute/tilde kinds
// (isRelative true), or a [ModuleLookup] for bare-module kinds.
func (r *Resolver) resolveModule(input string, dir types.FilesystemPath) (lookup ModuleLookup, isRelative bool, absPath types.FilesystemPath, err error) {
	owner := r.manifests.findPackage(dir)
	rewritten, aliasResolved := r.resolveAliases(input, owner)
	if rewritten != input {
		r.log.Debug("resolve: alias rewrite", "input", input, "rewritten", rewritten)
	}

	// An alias value that is already an absolute filesystem path (the
	// empty-shim convention, or a "."-prefixed value resolved against a
	// pkgdir) must not be re-classified: Classify's `/` branch re-roots its
	// input under rootDir, which would double-join an already-absolute path.
	if aliasResolved {
		return ModuleLookup{}, true, types.FilesystemPath(rewritten), nil
	}

	classified, err := Classify(types.ModuleSpecifier(rewritten), dir, r.rootDir)
	if err != nil {
		return ModuleLookup{}, false, "", err
	}

	switch classified.Kind {
	case KindBare:
		return walkNodeModules(r.fs, classified.Raw, dir, r.builtins), false, "", nil
	default:
		return ModuleLookup{}, true, classified.Path, nil
	}
}

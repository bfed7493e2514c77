// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/modresolve/modresolve/pkg/fspath"
	"github.com/modresolve/modresolve/pkg/types"
)

// Kind tags the shape of a classified request.
type Kind int

const (
	// KindAbsolute is a `/`-prefixed request, anchored at the project root.
	KindAbsolute Kind = iota
	// KindTilde is a `~`-prefixed request, anchored at the nearest package boundary.
	KindTilde
	// KindRelative is a `.`-prefixed request, resolved against the issuing directory.
	KindRelative
	// KindBare is a node_modules package name, possibly with a subpath.
	KindBare
	// KindGlob is a glob specifier, returned unexpanded without filesystem probing.
	KindGlob
)

// Classification is the tagged result of [Classify]: C1's ModuleKind.
type Classification struct {
	Kind Kind

	// Path holds the absolute candidate path for KindAbsolute, KindTilde and
	// KindRelative, and the resolved (but unexpanded) pattern path for
	// KindGlob.
	Path types.FilesystemPath

	// Raw holds the original, normalized request text for KindBare; C2
	// splits it into package name and subpath.
	Raw string
}

// globMetaChars are the characters whose presence makes a request a
// candidate glob specifier (spec glossary: "Glob pattern").
const globMetaChars = "*+{}"

// IsGlob reports whether input contains glob metacharacters and is a
// syntactically valid pattern for the resolver's glob engine. This is the
// short-circuit test applied by [Classify] before any other branch, and
// again at the top of the resolution driver after the cache lookup.
func IsGlob(input string) bool {
	if !strings.ContainsAny(input, globMetaChars) {
		return false
	}
	_, err := doublestar.Match(input, "")
	return err == nil
}

// Classify implements C1: it determines the kind of a request and, for all
// kinds but KindBare, computes its absolute candidate path. dir is
// dirname(parent) when a parent file is known, or the process working
// directory otherwise; rootDir anchors KindAbsolute requests and tilde's
// package-boundary walk.
//
// Glob detection happens first and takes priority over every other branch,
// matching the "before any other step" rule from the component design.
func Classify(input types.ModuleSpecifier, dir, rootDir types.FilesystemPath) (Classification, error) {
	raw := string(input)

	if IsGlob(raw) {
		return Classification{
			Kind: KindGlob,
			Path: fspath.Join(dir, types.FilesystemPath(raw)),
		}, nil
	}

	if raw == "" {
		return Classification{Kind: KindBare, Raw: raw}, nil
	}

	switch raw[0] {
	case '/':
		if rootDir == "" {
			return Classification{}, ErrRootDirRequired
		}
		return Classification{
			Kind: KindAbsolute,
			Path: fspath.Join(rootDir, types.FilesystemPath(raw[1:])),
		}, nil

	case '~':
		boundary := packageBoundary(dir, rootDir)
		return Classification{
			Kind: KindTilde,
			Path: fspath.Join(boundary, types.FilesystemPath(raw[1:])),
		}, nil

	case '.':
		return Classification{
			Kind: KindRelative,
			Path: fspath.Clean(fspath.Join(dir, types.FilesystemPath(raw))),
		}, nil

	default:
		return Classification{
			Kind: KindBare,
			Raw:  string(fspath.FromSlash(types.FilesystemPath(raw))),
		}, nil
	}
}

// packageBoundary walks up from dir while the parent directory's basename
// is not "node_modules" and dir is not rootDir, anchoring tilde resolution
// at the nearest package boundary (glossary: "Package boundary").
func packageBoundary(dir, rootDir types.FilesystemPath) types.FilesystemPath {
	cur := dir
	for {
		if cur == rootDir {
			return cur
		}
		parent := fspath.Dir(cur)
		if fspath.Base(parent) == "node_modules" {
			return cur
		}
		if parent == cur {
			return cur
		}
		cur = parent
	}
}

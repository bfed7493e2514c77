// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/modresolve/modresolve/pkg/fspath"
	"github.com/modresolve/modresolve/pkg/types"
)

// isGlobKey reports whether an alias table key must be matched as a glob
// rather than a literal string.
func isGlobKey(key string) bool {
	return strings.ContainsAny(key, globMetaChars)
}

// compileGlobKey turns an alias table glob key into a capturing regular
// expression: `*`/`+` become capture groups over non-slash runs, and
// `{a,b,c}` becomes a non-capturing alternation. Used only once a
// doublestar.Match already confirmed the key matches and its replacement
// needs $1-style substitution — doublestar itself exposes only Match, not
// capturing submatches (see DESIGN.md).
func compileGlobKey(key string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteByte('^')

	for i := 0; i < len(key); {
		switch key[i] {
		case '*':
			sb.WriteString(`([^/]*)`)
			i++
		case '+':
			sb.WriteString(`([^/]+)`)
			i++
		case '{':
			end := strings.IndexByte(key[i:], '}')
			if end == -1 {
				sb.WriteString(regexp.QuoteMeta(key[i:]))
				i = len(key)
				continue
			}
			alts := strings.Split(key[i+1:i+end], ",")
			for j, a := range alts {
				alts[j] = regexp.QuoteMeta(a)
			}
			sb.WriteString("(?:" + strings.Join(alts, "|") + ")")
			i += end + 1
		default:
			sb.WriteString(regexp.QuoteMeta(string(key[i])))
			i++
		}
	}
	sb.WriteByte('$')

	return regexp.Compile(sb.String())
}

// substituteCaptures replaces $1, $2, ... placeholders in a glob alias's
// replacement value with the corresponding captured submatch.
func substituteCaptures(replacement string, submatches []string) string {
	var out strings.Builder
	for i := 0; i < len(replacement); i++ {
		if replacement[i] == '$' && i+1 < len(replacement) && replacement[i+1] >= '1' && replacement[i+1] <= '9' {
			idx := int(replacement[i+1] - '0')
			if idx < len(submatches) {
				out.WriteString(submatches[idx])
				i++
				continue
			}
		}
		out.WriteByte(replacement[i])
	}
	return out.String()
}

// matchResult is the outcome of matching a key against an [AliasTable].
type matchResult struct {
	matched bool
	isFalse bool
	value   string
}

// matchTable implements getAlias's literal-then-glob lookup: an exact,
// non-glob key match wins outright; otherwise every glob key is tested
// against key in manifest declaration order, and the first hit wins, with
// its replacement produced by substituting captured groups.
func matchTable(key string, table AliasTable) matchResult {
	for _, entry := range table {
		if !isGlobKey(entry.Key) && entry.Key == key {
			return matchResult{matched: true, isFalse: entry.False, value: entry.Value}
		}
	}
	for _, entry := range table {
		if !isGlobKey(entry.Key) {
			continue
		}
		// doublestar.Match is the glob engine everywhere else in the
		// resolver (C1's glob classification); reuse it as the cheap
		// match test here and only pay for a regexp compile when a
		// replacement actually needs captured submatches.
		if ok, err := doublestar.Match(entry.Key, key); err != nil || !ok {
			continue
		}
		if entry.False {
			return matchResult{matched: true, isFalse: true}
		}
		if !strings.Contains(entry.Value, "$") {
			return matchResult{matched: true, value: entry.Value}
		}
		re, err := compileGlobKey(entry.Key)
		if err != nil {
			return matchResult{matched: true, value: entry.Value}
		}
		submatches := re.FindStringSubmatch(key)
		if submatches == nil {
			return matchResult{matched: true, value: entry.Value}
		}
		return matchResult{matched: true, value: substituteCaptures(entry.Value, submatches)}
	}
	return matchResult{}
}

// getAlias implements C4's getAlias(filename, pkgdir, table).
func getAlias(filename string, pkgdir types.FilesystemPath, table AliasTable) matchResult {
	fp := types.FilesystemPath(filename)
	if fspath.IsAbs(fp) {
		rel, err := fspath.Rel(pkgdir, fp)
		if err != nil {
			return matchResult{}
		}
		key := string(rel)
		if !strings.HasPrefix(key, ".") {
			key = "./" + key
		}
		return matchTable(key, table)
	}

	if res := matchTable(filename, table); res.matched {
		return res
	}

	pkgName, sub := splitModule(filename)
	res := matchTable(pkgName, table)
	if !res.matched || res.isFalse {
		return res
	}
	return matchResult{matched: true, value: joinSubpath(res.value, sub)}
}

func joinSubpath(base, sub string) string {
	if sub == "" {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + sub
}

// resolvePackageAliases consults one package's source/alias/browser
// tables, in that order, for a match on filename; the first field whose
// table produces a match wins (4.5's "first match wins"). A matched string
// value starting with "." is resolved against pkgdir and returned as an
// already-absolute filesystem path (isResolved true); any other matched
// string is returned unchanged, still a specifier for the caller to
// re-enter resolution (Classify) with.
func resolvePackageAliases(filename string, pkg *PackageManifest) (value string, isEmpty, isResolved, matched bool) {
	for _, table := range pkg.aliasTables() {
		res := getAlias(filename, pkg.PkgDir, table)
		if !res.matched {
			continue
		}
		if res.isFalse {
			return "", true, false, true
		}
		v := res.value
		if strings.HasPrefix(v, ".") {
			v = string(fspath.Clean(fspath.Join(pkg.PkgDir, types.FilesystemPath(v))))
			return v, false, true, true
		}
		return v, false, false, true
	}
	return filename, false, false, false
}

// resolveAliases implements C4's resolveAliases(filename, pkg): per-package
// aliases apply first, then root-package aliases, composing left to right
// (a root alias may rewrite a package alias's output, never the reverse).
//
// The second return value reports whether the returned string is already an
// absolute filesystem path (the empty-shim convention, or a "."-prefixed
// alias value resolved against a pkgdir) rather than a specifier that still
// needs classifying. A later alias pass can turn a resolved path back into a
// bare specifier (post-processing is independent per step), so callers must
// use this flag as returned rather than assume it only ever becomes true.
func (r *Resolver) resolveAliases(filename string, pkg *PackageManifest) (string, bool) {
	cur := filename
	absolute := false

	if pkg != nil {
		if v, isEmpty, isResolved, matched := resolvePackageAliases(cur, pkg); matched {
			if isEmpty {
				return string(r.emptyShimPath), true
			}
			cur = v
			absolute = isResolved
		}
	}

	root := r.rootPackage()
	if root != nil && root != pkg {
		if v, isEmpty, isResolved, matched := resolvePackageAliases(cur, root); matched {
			if isEmpty {
				return string(r.emptyShimPath), true
			}
			cur = v
			absolute = isResolved
		}
	}

	return cur, absolute
}

// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"bytes"
	"fmt"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/modresolve/modresolve/pkg/fspath"
	"github.com/modresolve/modresolve/pkg/types"
)

const manifestFileName = "package.json"

// AliasEntry is one key/value pair from an honored manifest field that
// counts as an alias table (source, alias, or browser — when the field's
// value is an object). Entries are kept in manifest declaration order so
// glob matching tests them in the order the spec requires.
type AliasEntry struct {
	Key   string
	False bool   // alias === false: map to the empty shim
	Value string // the replacement, when not False
}

// AliasTable is an ordered list of [AliasEntry]. Lookups are linear by
// design: these tables hold a handful of entries, and linear scanning is
// what lets glob entries be tried in declaration order without a second
// ordered-index structure.
type AliasTable []AliasEntry

// fieldVariant models one of the manifest's string|mapping|absent fields
// (design note: "reject shapes silently" for any other JSON shape).
type fieldVariant struct {
	present  bool
	isString bool
	str      string
	isTable  bool
	table    AliasTable
}

// PackageManifest is the in-memory representation of a package.json,
// augmented with the synthesized pkgfile/pkgdir fields.
type PackageManifest struct {
	Name string

	// HasSource/Source hold the package's "source" field as a string entry
	// point, after the source-field symlink rule (see parse) has
	// possibly dropped it.
	HasSource bool
	Source    string

	Module string
	Main   string

	browser fieldVariant
	alias   fieldVariant
	source  fieldVariant // the raw "source" field, consulted as an alias table too

	PkgFile types.FilesystemPath
	PkgDir  types.FilesystemPath
}

// aliasTables returns this manifest's alias tables in the lookup order the
// alias engine consults them: source, alias, browser (4.5). Only fields
// whose value is an object count.
func (p *PackageManifest) aliasTables() []AliasTable {
	var tables []AliasTable
	if p.source.isTable {
		tables = append(tables, p.source.table)
	}
	if p.alias.isTable {
		tables = append(tables, p.alias.table)
	}
	if p.browser.isTable {
		tables = append(tables, p.browser.table)
	}
	return tables
}

// manifestCache locates, reads, and memoizes package manifests, keyed by
// pkgfile, for the lifetime of a [Resolver].
type manifestCache struct {
	fs FS

	mu   sync.Mutex
	byID map[types.FilesystemPath]*PackageManifest
}

func newManifestCache(fs FS) *manifestCache {
	return &manifestCache{fs: fs, byID: make(map[types.FilesystemPath]*PackageManifest)}
}

// read implements C3's read(dir): it reads dir/package.json, parses it,
// attaches pkgfile/pkgdir, and caches the result by pkgfile. Absent or
// malformed manifests return an error; callers treat that as "not a
// package directory" (ManifestRead, recovered — see the error taxonomy)
// and never surface it further.
func (c *manifestCache) read(dir types.FilesystemPath) (*PackageManifest, error) {
	pkgfile := fspath.JoinStr(dir, manifestFileName)

	c.mu.Lock()
	if cached, ok := c.byID[pkgfile]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	data, err := c.fs.ReadFile(pkgfile)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", pkgfile, err)
	}

	pm, err := c.parse(data, pkgfile, dir)
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", pkgfile, err)
	}

	c.mu.Lock()
	// Concurrent first reads of the same pkgfile may both parse; the
	// stored value is equal either way, so last writer wins with no harm.
	c.byID[pkgfile] = pm
	c.mu.Unlock()

	return pm, nil
}

// findPackageAt attempts to read a manifest directly at dir, without
// walking ancestors, returning nil on any read failure (ManifestRead,
// recovered).
func (c *manifestCache) findPackageAt(dir types.FilesystemPath) *PackageManifest {
	pm, err := c.read(dir)
	if err != nil {
		return nil
	}
	return pm
}

// findPackage implements C3's findPackage(dir): walk from dir upward until
// the parent is the filesystem root or the current directory's basename
// is "node_modules", returning the first manifest that reads successfully.
func (c *manifestCache) findPackage(dir types.FilesystemPath) *PackageManifest {
	cur := dir
	for {
		if pm, err := c.read(cur); err == nil {
			return pm
		}
		if fspath.Base(cur) == "node_modules" {
			return nil
		}
		parent := fspath.Dir(cur)
		if parent == cur {
			return nil
		}
		cur = parent
	}
}

type rawManifest struct {
	Name    string          `json:"name"`
	Main    string          `json:"main"`
	Module  string          `json:"module"`
	Source  json.RawMessage `json:"source"`
	Browser json.RawMessage `json:"browser"`
	Alias   json.RawMessage `json:"alias"`
}

func (c *manifestCache) parse(data []byte, pkgfile, pkgdir types.FilesystemPath) (*PackageManifest, error) {
	var raw rawManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	pm := &PackageManifest{
		Name:    raw.Name,
		Main:    raw.Main,
		Module:  raw.Module,
		PkgFile: pkgfile,
		PkgDir:  pkgdir,
	}

	var err error
	if pm.browser, err = decodeFieldVariant(raw.Browser); err != nil {
		return nil, fmt.Errorf("decode browser field: %w", err)
	}
	if pm.alias, err = decodeFieldVariant(raw.Alias); err != nil {
		return nil, fmt.Errorf("decode alias field: %w", err)
	}
	if pm.source, err = decodeFieldVariant(raw.Source); err != nil {
		return nil, fmt.Errorf("decode source field: %w", err)
	}

	if pm.source.present && pm.source.isString {
		pm.HasSource = true
		pm.Source = pm.source.str
	}

	// Source-field symlink rule: only respect "source" for locally-linked
	// packages. A manifest file whose realpath equals its literal path is
	// not a symlink target, so the field is dropped.
	if pm.HasSource {
		real, err := c.fs.Realpath(pkgfile)
		if err == nil && real == pkgfile {
			pm.HasSource = false
			pm.Source = ""
			pm.source = fieldVariant{}
		}
	}

	return pm, nil
}

// decodeFieldVariant classifies a possibly-absent JSON field as a narrow
// string|mapping|absent variant, rejecting any other shape silently
// (design note: model each honored field this way and ignore the rest).
func decodeFieldVariant(raw json.RawMessage) (fieldVariant, error) {
	if len(raw) == 0 {
		return fieldVariant{}, nil
	}

	switch firstNonSpace(raw) {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fieldVariant{}, nil //nolint:nilerr // malformed string: treat as absent
		}
		return fieldVariant{present: true, isString: true, str: s}, nil

	case '{':
		table, err := decodeOrderedTable(raw)
		if err != nil {
			return fieldVariant{}, nil //nolint:nilerr // malformed object: treat as absent
		}
		return fieldVariant{present: true, isTable: true, table: table}, nil

	default:
		// number, bool, array, null: not an honored shape for these fields.
		return fieldVariant{}, nil
	}
}

func firstNonSpace(raw []byte) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b
		}
	}
	return 0
}

// decodeOrderedTable walks an object's tokens in declaration order,
// preserving the insertion order the spec's ordered-maps design note
// requires for glob alias matching. Only string and `false` values are
// honored per key; any other value shape is skipped for that key.
func decodeOrderedTable(raw []byte) (AliasTable, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	if _, err := dec.Token(); err != nil { // consume opening '{'
		return nil, err
	}

	var table AliasTable
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected non-string object key token %v", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}

		switch v := value.(type) {
		case bool:
			if !v {
				table = append(table, AliasEntry{Key: key, False: true})
			}
			// alias === true carries no meaning in this subsystem; skip.
		case string:
			table = append(table, AliasEntry{Key: key, Value: v})
		default:
			// objects, arrays, numbers, null: not an honored alias value shape.
		}
	}

	if _, err := dec.Token(); err != nil { // consume closing '}'
		return nil, err
	}

	return table, nil
}

// getPackageMain implements C3's getPackageMain(pkg): it selects the
// package's entry point (source ≻ module ≻ browser-as-string ≻ main,
// falling back to "index"), resolving the result against pkg.PkgDir.
func getPackageMain(pkg *PackageManifest) types.FilesystemPath {
	browser, hasBrowser := resolveBrowserEntry(pkg)

	var main string
	switch {
	case pkg.HasSource && pkg.Source != "":
		main = pkg.Source
	case pkg.Module != "":
		main = pkg.Module
	case hasBrowser:
		main = browser
	case pkg.Main != "":
		main = pkg.Main
	}

	if main == "" || main == "." || main == "./" {
		main = "index"
	}

	return fspath.Clean(fspath.Join(pkg.PkgDir, types.FilesystemPath(main)))
}

// resolveBrowserEntry implements getPackageMain step 1: a package may
// re-export itself under its own name via a browser alias table.
func resolveBrowserEntry(pkg *PackageManifest) (value string, ok bool) {
	if !pkg.browser.present {
		return "", false
	}
	if pkg.browser.isString {
		return pkg.browser.str, true
	}
	for _, entry := range pkg.browser.table {
		if entry.Key == pkg.Name && !entry.False {
			return entry.Value, true
		}
	}
	return "", false
}

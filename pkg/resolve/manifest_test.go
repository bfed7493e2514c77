// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/modresolve/modresolve/pkg/types"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll(%s) error = %v", dir, err)
	}
	path := filepath.Join(dir, "package.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}

func TestManifestCache_Read(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, `{"name": "p", "main": "./lib/index.js"}`)

	cache := newManifestCache(NewOSFS())
	pm, err := cache.read(types.FilesystemPath(dir))
	if err != nil {
		t.Fatalf("read() error = %v", err)
	}
	if pm.Name != "p" || pm.Main != "./lib/index.js" {
		t.Errorf("pm = %+v, want name=p main=./lib/index.js", pm)
	}
}

func TestManifestCache_ReadIsCached(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, `{"name": "p"}`)

	cache := newManifestCache(NewOSFS())
	first, err := cache.read(types.FilesystemPath(dir))
	if err != nil {
		t.Fatalf("read() error = %v", err)
	}
	second, err := cache.read(types.FilesystemPath(dir))
	if err != nil {
		t.Fatalf("read() error = %v", err)
	}
	if first != second {
		t.Errorf("expected cached read to return the identical *PackageManifest")
	}
}

func TestManifestCache_FindPackage_WalksAncestors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeManifest(t, root, `{"name": "root-pkg"}`)
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	cache := newManifestCache(NewOSFS())
	pm := cache.findPackage(types.FilesystemPath(nested))
	if pm == nil || pm.Name != "root-pkg" {
		t.Errorf("findPackage() = %+v, want root-pkg", pm)
	}
}

func TestManifestCache_FindPackage_StopsAtNodeModules(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nm := filepath.Join(root, "node_modules")
	pkgDir := filepath.Join(nm, "some-pkg")
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	// Deliberately no package.json anywhere, including at the module root,
	// so the walk must terminate at the node_modules boundary rather than
	// escaping into a sibling tree.
	cache := newManifestCache(NewOSFS())
	pm := cache.findPackage(types.FilesystemPath(pkgDir))
	if pm != nil {
		t.Errorf("findPackage() = %+v, want nil (stopped at node_modules)", pm)
	}
}

func TestGetPackageMain_Priority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pm   *PackageManifest
		want string
	}{
		{
			name: "source wins",
			pm:   &PackageManifest{PkgDir: "/p", HasSource: true, Source: "./src/index.ts", Module: "./dist/esm.js", Main: "./dist/cjs.js"},
			want: "/p/src/index.ts",
		},
		{
			name: "module wins over main",
			pm:   &PackageManifest{PkgDir: "/p", Module: "./dist/esm.js", Main: "./dist/cjs.js"},
			want: "/p/dist/esm.js",
		},
		{
			name: "main as last resort",
			pm:   &PackageManifest{PkgDir: "/p", Main: "./dist/cjs.js"},
			want: "/p/dist/cjs.js",
		},
		{
			name: "falls back to index",
			pm:   &PackageManifest{PkgDir: "/p"},
			want: "/p/index",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := getPackageMain(tt.pm); string(got) != tt.want {
				t.Errorf("getPackageMain() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetPackageMain_BrowserSelfReexport(t *testing.T) {
	t.Parallel()

	pm := &PackageManifest{
		PkgDir: "/p",
		Name:   "p",
		Main:   "./dist/cjs.js",
		browser: fieldVariant{present: true, isTable: true, table: AliasTable{
			{Key: "p", Value: "./dist/browser.js"},
		}},
	}

	if got := getPackageMain(pm); string(got) != "/p/dist/browser.js" {
		t.Errorf("getPackageMain() = %q, want browser re-export", got)
	}
}

func TestDecodeOrderedTable_PreservesDeclarationOrder(t *testing.T) {
	t.Parallel()

	table, err := decodeOrderedTable([]byte(`{"./b": "1", "./a": "2", "./c": false}`))
	if err != nil {
		t.Fatalf("decodeOrderedTable() error = %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("len(table) = %d, want 3", len(table))
	}
	if table[0].Key != "./b" || table[1].Key != "./a" || table[2].Key != "./c" {
		t.Errorf("table order = %v, want declaration order b,a,c", table)
	}
	if !table[2].False {
		t.Errorf("table[2].False = false, want true for alias:false entry")
	}
}

func TestSourceFieldSymlinkRule(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, `{"name": "p", "source": "./src/index.ts"}`)

	cache := newManifestCache(NewOSFS())
	pm, err := cache.read(types.FilesystemPath(dir))
	if err != nil {
		t.Fatalf("read() error = %v", err)
	}
	// package.json was read directly, not through a symlink, so its
	// realpath equals its literal path and the source field is dropped.
	if pm.HasSource {
		t.Errorf("HasSource = true, want false (non-symlinked manifest)")
	}
}

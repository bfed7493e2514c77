// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"github.com/modresolve/modresolve/pkg/fspath"
	"github.com/modresolve/modresolve/pkg/types"
)

const nodeModulesDirName = "node_modules"

// ModuleLookup is the outcome of walking node_modules for a bare module
// name (C5). ModuleDir is empty when the walk never found a real
// node_modules/<pkg> directory; C7 fails the resolution in that case.
// IsBuiltin signals an immediate hit in the builtin-shim table, which
// short-circuits past C6/C7 entirely.
type ModuleLookup struct {
	ModuleName string
	SubPath    string
	ModuleDir  types.FilesystemPath
	FilePath   types.FilesystemPath
	IsBuiltin  bool
}

// walkNodeModules implements C5: given a bare module name and starting
// directory, it consults the builtin-shim table first, then walks
// ancestor directories probing node_modules/<pkg>.
func walkNodeModules(fs FS, name string, dir types.FilesystemPath, builtins map[string]types.FilesystemPath) ModuleLookup {
	if shimPath, ok := builtins[name]; ok {
		return ModuleLookup{ModuleName: name, FilePath: shimPath, IsBuiltin: true}
	}

	pkg, sub := splitModule(name)

	cur := dir
	for {
		if fspath.Base(cur) == nodeModulesDirName {
			cur = fspath.Dir(cur)
		}

		candidate := fspath.JoinStr(cur, nodeModulesDirName, pkg)
		if st, err := fs.Stat(candidate); err == nil && st.IsDirectory {
			filePath := fspath.JoinStr(cur, nodeModulesDirName, name)
			return ModuleLookup{
				ModuleName: pkg,
				SubPath:    sub,
				ModuleDir:  candidate,
				FilePath:   filePath,
			}
		}

		parent := fspath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}

	return ModuleLookup{ModuleName: pkg, SubPath: sub}
}

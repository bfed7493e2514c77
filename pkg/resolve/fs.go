// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"os"
	"path/filepath"

	"github.com/modresolve/modresolve/pkg/types"
)

// Stat describes the kind of filesystem entry found at a path.
type Stat struct {
	IsFile      bool
	IsDirectory bool
	IsFIFO      bool
}

// FS is the filesystem collaborator the resolver consults exclusively
// through stat, read_file, and realpath. All three may fail; a failure is
// treated by callers as "not present" and never surfaces past the resolver
// boundary (see ProbeMiss / ManifestRead in the package's error taxonomy).
type FS interface {
	Stat(path types.FilesystemPath) (Stat, error)
	ReadFile(path types.FilesystemPath) ([]byte, error)
	Realpath(path types.FilesystemPath) (types.FilesystemPath, error)
}

// osFS is the default FS backed by the host operating system.
type osFS struct{}

// NewOSFS returns the default FS collaborator, backed by os and
// path/filepath. Most callers outside of tests should use this.
func NewOSFS() FS { return osFS{} }

func (osFS) Stat(path types.FilesystemPath) (Stat, error) {
	info, err := os.Stat(string(path))
	if err != nil {
		return Stat{}, err
	}
	mode := info.Mode()
	return Stat{
		IsFile:      mode.IsRegular(),
		IsDirectory: info.IsDir(),
		IsFIFO:      mode&os.ModeNamedPipe != 0,
	}, nil
}

func (osFS) ReadFile(path types.FilesystemPath) ([]byte, error) {
	return os.ReadFile(string(path))
}

func (osFS) Realpath(path types.FilesystemPath) (types.FilesystemPath, error) {
	real, err := filepath.EvalSymlinks(string(path))
	if err != nil {
		return "", err
	}
	return types.FilesystemPath(real), nil
}

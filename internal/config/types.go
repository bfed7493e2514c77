// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidRootDir is returned when RootDir is set but not an absolute path.
	ErrInvalidRootDir = errors.New("invalid root dir")
	// ErrInvalidExtension is the sentinel error wrapped by InvalidExtensionError.
	ErrInvalidExtension = errors.New("invalid extension")
	// ErrInvalidBuiltin is the sentinel error wrapped by InvalidBuiltinError.
	ErrInvalidBuiltin = errors.New("invalid builtin")
	// ErrInvalidShimPath is returned when a shim path is set but not absolute.
	ErrInvalidShimPath = errors.New("invalid shim path")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// RootDirPath is an absolute filesystem path anchoring root-absolute and
	// tilde specifiers. The zero value ("") is valid and means "resolution
	// of root-absolute specifiers is unsupported until configured".
	RootDirPath string

	// InvalidRootDirError is returned when a non-empty RootDirPath is not
	// an absolute path. It wraps ErrInvalidRootDir for errors.Is().
	InvalidRootDirError struct {
		Value RootDirPath
	}

	// ExtensionEntry is one candidate extension (e.g. ".js") from the
	// active extension list. A valid entry starts with "." followed by at
	// least one more character.
	ExtensionEntry string

	// InvalidExtensionError is returned when an ExtensionEntry does not
	// start with "." or is "." alone. It wraps ErrInvalidExtension for errors.Is().
	InvalidExtensionError struct {
		Value ExtensionEntry
	}

	// ShimPath is an absolute filesystem path to a shim file (a builtin
	// shim or the empty shim). The zero value ("") is valid.
	ShimPath string

	// InvalidShimPathError is returned when a non-empty ShimPath is not an
	// absolute path. It wraps ErrInvalidShimPath for errors.Is().
	InvalidShimPathError struct {
		Value ShimPath
	}

	// InvalidBuiltinError is returned when a builtin table entry has an
	// invalid name or shim path. It wraps ErrInvalidBuiltin for
	// errors.Is() and collects field-level validation errors.
	InvalidBuiltinError struct {
		Name        string
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields. It
	// wraps ErrInvalidConfig for errors.Is() and collects field-level
	// validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the resolver's construction parameters.
	Config struct {
		// RootDir anchors "/"-prefixed and "~"-prefixed specifiers.
		RootDir RootDirPath `json:"root_dir" mapstructure:"root_dir"`
		// Extensions is the ordered candidate extension list probed when a
		// specifier names a file without one.
		Extensions []ExtensionEntry `json:"extensions" mapstructure:"extensions"`
		// Builtins maps a bare module name to an absolute shim path,
		// consulted before any node_modules walk.
		Builtins map[string]ShimPath `json:"builtins" mapstructure:"builtins"`
		// EmptyShim is returned whenever an alias/browser table maps a name
		// to the literal false.
		EmptyShim ShimPath `json:"empty_shim" mapstructure:"empty_shim"`
	}
)

// String returns the string representation of the RootDirPath.
func (p RootDirPath) String() string { return string(p) }

// IsValid returns whether the RootDirPath is valid. The zero value is
// valid; a non-empty value must be an absolute path.
func (p RootDirPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if !filepath.IsAbs(string(p)) {
		return false, []error{&InvalidRootDirError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidRootDirError.
func (e *InvalidRootDirError) Error() string {
	return fmt.Sprintf("invalid root dir %q: must be an absolute path", e.Value)
}

// Unwrap returns ErrInvalidRootDir for errors.Is() compatibility.
func (e *InvalidRootDirError) Unwrap() error { return ErrInvalidRootDir }

// String returns the string representation of the ExtensionEntry.
func (e ExtensionEntry) String() string { return string(e) }

// IsValid returns whether the ExtensionEntry is valid: leading with "."
// and followed by at least one more character.
func (e ExtensionEntry) IsValid() (bool, []error) {
	if !strings.HasPrefix(string(e), ".") || len(e) < 2 {
		return false, []error{&InvalidExtensionError{Value: e}}
	}
	return true, nil
}

// Error implements the error interface for InvalidExtensionError.
func (e *InvalidExtensionError) Error() string {
	return fmt.Sprintf("invalid extension %q: must start with \".\" followed by at least one character", e.Value)
}

// Unwrap returns ErrInvalidExtension for errors.Is() compatibility.
func (e *InvalidExtensionError) Unwrap() error { return ErrInvalidExtension }

// String returns the string representation of the ShimPath.
func (p ShimPath) String() string { return string(p) }

// IsValid returns whether the ShimPath is valid. The zero value is valid
// (no shim configured); a non-empty value must be an absolute path.
func (p ShimPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if !filepath.IsAbs(string(p)) {
		return false, []error{&InvalidShimPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidShimPathError.
func (e *InvalidShimPathError) Error() string {
	return fmt.Sprintf("invalid shim path %q: must be an absolute path", e.Value)
}

// Unwrap returns ErrInvalidShimPath for errors.Is() compatibility.
func (e *InvalidShimPathError) Unwrap() error { return ErrInvalidShimPath }

// Error implements the error interface for InvalidBuiltinError.
func (e *InvalidBuiltinError) Error() string {
	return fmt.Sprintf("invalid builtin %q: %d field error(s)", e.Name, len(e.FieldErrors))
}

// Unwrap returns ErrInvalidBuiltin for errors.Is() compatibility.
func (e *InvalidBuiltinError) Unwrap() error { return ErrInvalidBuiltin }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// IsValid returns whether the Config has valid fields. It delegates to
// RootDir.IsValid(), each Extensions entry's IsValid(), each Builtins
// entry's name and ShimPath.IsValid(), and EmptyShim.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error

	if valid, fieldErrs := c.RootDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, ext := range c.Extensions {
		if valid, fieldErrs := ext.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	for name, shim := range c.Builtins {
		var fieldErrs []error
		if strings.TrimSpace(name) == "" {
			fieldErrs = append(fieldErrs, fmt.Errorf("builtin name must not be empty"))
		}
		if valid, shimErrs := shim.IsValid(); !valid {
			fieldErrs = append(fieldErrs, shimErrs...)
		}
		if len(fieldErrs) > 0 {
			errs = append(errs, &InvalidBuiltinError{Name: name, FieldErrors: fieldErrs})
		}
	}
	if valid, fieldErrs := c.EmptyShim.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}

	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// DefaultConfig returns the default configuration: no root directory (root-
// absolute specifiers are rejected until one is configured), the common
// JavaScript/JSON extension candidates, and no builtins or empty shim.
func DefaultConfig() *Config {
	return &Config{
		RootDir:    "",
		Extensions: []ExtensionEntry{".js", ".json"},
		Builtins:   map[string]ShimPath{},
		EmptyShim:  "",
	}
}

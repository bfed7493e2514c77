// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"fmt"
)

// ErrModuleNotFound is the sentinel wrapped by every *NotFoundError, for
// errors.Is checks by callers that don't need the request detail.
var ErrModuleNotFound = errors.New("module not found")

// NotFoundError is the one user-visible failure the resolver raises (see
// C8 step 6). It is never produced for a recoverable manifest-read or
// filesystem-probe failure; those are swallowed at their call sites.
type NotFoundError struct {
	// Input is the original, unmodified request string.
	Input string

	// Dir is the directory the request was issued from: dirname(parent), or
	// the working directory when no parent file was given.
	Dir string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("module not found: %q from %s", e.Input, e.Dir)
}

func (e *NotFoundError) Unwrap() error { return ErrModuleNotFound }

// ErrRootDirRequired is the configuration-time failure raised when a
// root-absolute (`/`-prefixed) input is classified but no rootDir was
// configured (see spec's Configuration error class in the error taxonomy).
var ErrRootDirRequired = errors.New("resolve: rootDir is required to resolve a root-absolute specifier")

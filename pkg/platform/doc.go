// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility helpers.
//
// This package holds operating-system name constants for comparison with
// runtime.GOOS.
package platform

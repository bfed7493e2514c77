// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared helpers for CUE-backed configuration
// loading: an OOM guard for oversized input and CUE-path-prefixed error
// formatting.
//
// # Usage
//
//	data, err := os.ReadFile(path)
//	if err != nil {
//	    return err
//	}
//	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
//	    return err
//	}
//	ctx := cuecontext.New()
//	schema := ctx.CompileBytes(schemaBytes)
//	value := ctx.CompileBytes(data, cue.Filename(path))
//	if value.Err() != nil {
//	    return cueutil.FormatError(value.Err(), path)
//	}
//	unified := schema.Unify(value)
//	if err := unified.Validate(); err != nil {
//	    return cueutil.FormatError(err, path)
//	}
package cueutil

// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstdgo

import (
	"errors"
	"fmt"

	"github.com/cosnicolaou/zstdgo/internal/zstd"
)

// DecodeError wraps a structural error produced while decoding a frame,
// preserving errors.Is/errors.As access to the underlying *zstd.StructuralError
// sentinel (mirroring a Rust enum-with-source, the idiomatic Go way).
type DecodeError struct {
	Kind string
	Err  error
}

func (d *DecodeError) Error() string {
	return fmt.Sprintf("zstdgo: %s", d.Err)
}

func (d *DecodeError) Unwrap() error { return d.Err }

// wrapDecodeError adapts an internal/zstd error into a *DecodeError,
// preserving its Kind for callers that want to classify failures without
// string matching. Non-structural errors (e.g. io errors bubbling up from
// NewReader) pass through unchanged.
func wrapDecodeError(err error) error {
	if err == nil {
		return nil
	}
	var se *zstd.StructuralError
	if errors.As(err, &se) {
		return &DecodeError{Kind: se.Kind, Err: err}
	}
	return err
}

// ErrChecksumMismatch is returned alongside fully decoded data when a
// frame's trailing content checksum does not match its decompressed
// content.
var ErrChecksumMismatch = zstd.ErrBadChecksum

// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd

import "github.com/zeebo/xxh3"

// contentHash incrementally computes the XXH3-64 checksum zstd frames
// store to validate the fully reconstructed content (RFC 8878 §3.1.1).
type contentHash struct {
	h *xxh3.Hasher
}

func newContentHash() *contentHash {
	return &contentHash{h: xxh3.New()}
}

func (c *contentHash) update(buf []byte) {
	c.h.Write(buf) //nolint:errcheck // xxh3.Hasher.Write never errors
}

// sum32 returns the lower 32 bits of the running XXH3-64 digest, which is
// the form stored in a frame's Content_Checksum field.
func (c *contentHash) sum32() uint32 {
	return uint32(c.h.Sum64())
}

// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func blockHeader(last bool, blockType uint32, size uint32) []byte {
	raw := size<<3 | blockType<<1
	if last {
		raw |= 1
	}
	return []byte{byte(raw), byte(raw >> 8), byte(raw >> 16)}
}

func TestDecodeBlockRaw(t *testing.T) {
	data := append(blockHeader(true, blockTypeRaw, 3), []byte("abc")...)
	ctx := newDecodingContext(false)
	last, err := decodeBlock(newForwardByteParser(data), ctx)
	require.NoError(t, err)
	require.True(t, last)
	require.Equal(t, []byte("abc"), ctx.window)
}

func TestDecodeBlockRLE(t *testing.T) {
	data := append(blockHeader(false, blockTypeRLE, 4), 'z')
	ctx := newDecodingContext(false)
	last, err := decodeBlock(newForwardByteParser(data), ctx)
	require.NoError(t, err)
	require.False(t, last)
	require.Equal(t, []byte("zzzz"), ctx.window)
}

func TestDecodeBlockReservedTypeErrors(t *testing.T) {
	data := blockHeader(true, blockTypeReserved, 0)
	ctx := newDecodingContext(false)
	_, err := decodeBlock(newForwardByteParser(data), ctx)
	require.Error(t, err)
}

func TestDecodeBlockRejectsOversizedBlock(t *testing.T) {
	data := blockHeader(true, blockTypeRaw, maxBlockSize+1)
	ctx := newDecodingContext(false)
	_, err := decodeBlock(newForwardByteParser(data), ctx)
	require.Error(t, err)
}

// TestDecodeBlockCompressed exercises blockTypeCompressed end to end: a
// Huffman-coded literals section (2 symbols, 1-bit codes) paired with a
// zero-sequence Sequences section, decoded through decodeBlock.
//
// Literals section bytes, hand-derived per RFC 8878 §3.1.1.3.1:
//
//	0x22       literals header: type=Compressed, size_format=0 (1 stream)
//	0xC0, 0x00 extra header bits: Regenerated_Size=2, Compressed_Size=3
//	0x80, 0x10 Huffman_Tree_Description: 1 explicit weight (value 1),
//	           giving symbols {0,1} a 1-bit code each
//	0x06       Huffman-coded stream, decodes to bytes {0x00, 0x01}
//
// Sequences section: a single 0x00 byte (Number_of_Sequences == 0), which
// leaves the literals as-is with no match copies.
func TestDecodeBlockCompressed(t *testing.T) {
	body := []byte{0x22, 0xC0, 0x00, 0x80, 0x10, 0x06, 0x00}
	data := append(blockHeader(true, blockTypeCompressed, uint32(len(body))), body...)
	ctx := newDecodingContext(false)
	last, err := decodeBlock(newForwardByteParser(data), ctx)
	require.NoError(t, err)
	require.True(t, last)
	require.Equal(t, []byte{0x00, 0x01}, ctx.window)
}

func TestDecodeBlockUpdatesChecksum(t *testing.T) {
	data := append(blockHeader(true, blockTypeRaw, 3), []byte("abc")...)
	ctx := newDecodingContext(true)
	_, err := decodeBlock(newForwardByteParser(data), ctx)
	require.NoError(t, err)
	require.NotZero(t, ctx.hash.sum32())
}

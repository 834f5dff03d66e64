// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLiteralsSectionRaw(t *testing.T) {
	// header: type=0 (raw), size_format=0 -> regen size in top 5 bits of
	// the header byte. 3 bytes of payload -> header = 3<<3 = 0x18.
	data := append([]byte{0x18}, []byte("abc")...)
	bp := newForwardByteParser(data)
	var tree *huffmanTree
	out, err := parseLiteralsSection(bp, &tree)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), out)
}

func TestParseLiteralsSectionRLE(t *testing.T) {
	// type=1 (rle), size_format=0, regen size 4 -> header = 1 | (4<<3) = 0x21.
	data := []byte{0x21, 'z'}
	bp := newForwardByteParser(data)
	var tree *huffmanTree
	out, err := parseLiteralsSection(bp, &tree)
	require.NoError(t, err)
	require.Equal(t, []byte("zzzz"), out)
}

func TestParseLiteralsSectionTreelessRequiresPriorTree(t *testing.T) {
	// type=3 (treeless), size_format=0 -> 1 stream, small sizes.
	data := []byte{0x03, 0x00, 0x00, 0x00}
	bp := newForwardByteParser(data)
	var tree *huffmanTree
	_, err := parseLiteralsSection(bp, &tree)
	require.Error(t, err)
}

func TestParseLiteralsHeaderRawSizeFormats(t *testing.T) {
	// size_format=1 (12-bit size): header bits4-7 | next byte << 4.
	bp := newForwardByteParser([]byte{0x04 | 0x00, 0x01})
	typ, regen, _, n, err := parseLiteralsHeader(bp)
	require.NoError(t, err)
	require.Equal(t, literalsRaw, typ)
	require.Equal(t, 1, n)
	require.Equal(t, uint32(0x10), regen)
}

// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFrameHeaderWindowDescriptorMinimum(t *testing.T) {
	// descriptor: fcsFlag=0, singleSegment=0, checksum=0, dictID=0 -> 0x00.
	// window descriptor: exponent=0, mantissa=0 -> windowBase = 1<<10 = 1KiB.
	bp := newForwardByteParser([]byte{0x00, 0x00})
	h, err := parseFrameHeader(bp, DefaultMaxWindowSize)
	require.NoError(t, err)
	require.Equal(t, uint64(1024), h.WindowSize)
	require.False(t, h.HasContentSize)
	require.False(t, h.HasChecksum)
}

func TestParseFrameHeaderSingleSegmentUsesContentSizeAsWindow(t *testing.T) {
	// descriptor: fcsFlag=0, singleSegment=1 (bit5) -> 0x20. fcsFieldSize
	// becomes 1 because single-segment forces a content size field.
	bp := newForwardByteParser([]byte{0x20, 0x2A})
	h, err := parseFrameHeader(bp, DefaultMaxWindowSize)
	require.NoError(t, err)
	require.True(t, h.HasContentSize)
	require.Equal(t, uint64(0x2A), h.ContentSize)
	require.Equal(t, uint64(0x2A), h.WindowSize)
}

func TestParseFrameHeaderRejectsOversizedWindow(t *testing.T) {
	// exponent=31 -> windowBase = 1<<41, far past any sane ceiling.
	bp := newForwardByteParser([]byte{0x00, 0xF8})
	_, err := parseFrameHeader(bp, DefaultMaxWindowSize)
	require.Error(t, err)
}

func TestParseFrameHeaderRejectsNonzeroDictionaryID(t *testing.T) {
	// dictIDFlag=1 (1 byte) -> descriptor 0x01; window descriptor 0x00; dict id byte 0x05.
	bp := newForwardByteParser([]byte{0x01, 0x00, 0x05})
	_, err := parseFrameHeader(bp, DefaultMaxWindowSize)
	require.Error(t, err)
}

func TestParseFrameHeaderRejectsReservedBit(t *testing.T) {
	bp := newForwardByteParser([]byte{0x08, 0x00})
	_, err := parseFrameHeader(bp, DefaultMaxWindowSize)
	require.Error(t, err)
}

func TestParseFrameHeaderChecksumFlag(t *testing.T) {
	bp := newForwardByteParser([]byte{0x04, 0x00})
	h, err := parseFrameHeader(bp, DefaultMaxWindowSize)
	require.NoError(t, err)
	require.True(t, h.HasChecksum)
}

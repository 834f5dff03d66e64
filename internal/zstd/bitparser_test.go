// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForwardBitParserTakeSplitEqualsCombined(t *testing.T) {
	data := []byte{0b10110010, 0b01011101}
	combined := newForwardBitParser(data)
	want, err := combined.take(11)
	require.NoError(t, err)

	split := newForwardBitParser(data)
	lo, err := split.take(4)
	require.NoError(t, err)
	hi, err := split.take(7)
	require.NoError(t, err)
	got := lo | (hi << 4)
	require.Equal(t, want, got)
}

func TestForwardBitParserPeekDoesNotAdvance(t *testing.T) {
	p := newForwardBitParser([]byte{0xff})
	v1, err := p.peek(4)
	require.NoError(t, err)
	v2, err := p.peek(4)
	require.NoError(t, err)
	require.Equal(t, v1, v2)
	require.Equal(t, 8, p.lenBits())
}

func TestForwardBitParserTooManyBits(t *testing.T) {
	p := newForwardBitParser([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0})
	_, err := p.take(65)
	require.Error(t, err)
}

func TestForwardBitParserNotEnoughBits(t *testing.T) {
	p := newForwardBitParser([]byte{0xff})
	_, err := p.take(9)
	require.Error(t, err)
}

func TestBackwardBitParserRejectsEmpty(t *testing.T) {
	_, err := newBackwardBitParser(nil)
	require.Error(t, err)
}

func TestBackwardBitParserRejectsZeroLastByte(t *testing.T) {
	_, err := newBackwardBitParser([]byte{0x01, 0x00})
	require.Error(t, err)
}

// Every bit position of the last byte must be exercised as the marker.
func TestBackwardBitParserEveryMarkerPosition(t *testing.T) {
	for bit := 0; bit < 8; bit++ {
		last := byte(1) << uint(bit)
		p, err := newBackwardBitParser([]byte{0xAA, last})
		require.NoErrorf(t, err, "bit %d", bit)
		require.Equal(t, bit+8, p.totalBits)
	}
}

func TestBackwardBitParserZeroLengthTake(t *testing.T) {
	p, err := newBackwardBitParser([]byte{0x80})
	require.NoError(t, err)
	v, err := p.take(0)
	require.NoError(t, err)
	require.Equal(t, uint64(0), v)
	require.Equal(t, 0, p.consumed)
}

func TestBackwardBitParserReadsReverseOfForward(t *testing.T) {
	// Encode 0b1011 forward (LSB-first) into a byte with a marker above it,
	// then read it back with the backward parser and see the same 4 bits,
	// assembled MSB-first, come out in forward order reversed appropriately.
	// byte: marker at bit 4 (0b1_0000), payload bits 3..0 = 1011
	b := byte(0b10000) | 0b1011
	p, err := newBackwardBitParser([]byte{b})
	require.NoError(t, err)
	v, err := p.take(4)
	require.NoError(t, err)
	require.Equal(t, uint64(0b1011), v)
}

func TestBackwardBitParserMultiByte(t *testing.T) {
	// last byte: marker at bit 7 (0x80) -> no usable bits in last byte.
	// previous byte fully usable, read MSB first.
	p, err := newBackwardBitParser([]byte{0b11001010, 0x80})
	require.NoError(t, err)
	v, err := p.take(8)
	require.NoError(t, err)
	require.Equal(t, uint64(0b11001010), v)
}

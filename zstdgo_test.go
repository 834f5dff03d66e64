// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstdgo

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func leMagic(magic uint32) []byte {
	return []byte{byte(magic), byte(magic >> 8), byte(magic >> 16), byte(magic >> 24)}
}

func blockHeader(last bool, blockType uint32, size uint32) []byte {
	raw := size<<3 | blockType<<1
	if last {
		raw |= 1
	}
	return []byte{byte(raw), byte(raw >> 8), byte(raw >> 16)}
}

func rawFrame(payload []byte) []byte {
	var data []byte
	data = append(data, leMagic(0xFD2FB528)...)
	data = append(data, 0x00, 0x00)
	data = append(data, blockHeader(true, 0, uint32(len(payload)))...)
	data = append(data, payload...)
	return data
}

func TestDecodeAllReturnsConcatenatedContent(t *testing.T) {
	data := append(rawFrame([]byte("foo")), rawFrame([]byte("bar"))...)
	out, err := DecodeAll(data)
	require.NoError(t, err)
	require.Equal(t, []byte("foobar"), out)
}

func TestDecodeAllSkipsSkippablePayloadsByDefault(t *testing.T) {
	var data []byte
	data = append(data, leMagic(0x184D2A50)...)
	data = append(data, 0x02, 0x00, 0x00, 0x00)
	data = append(data, []byte("hi")...)
	data = append(data, rawFrame([]byte("x"))...)

	out, err := DecodeAll(data)
	require.NoError(t, err)
	require.Equal(t, []byte("x"), out)

	out, err = DecodeAll(data, WithIncludeSkippablePayloads(true))
	require.NoError(t, err)
	require.Equal(t, []byte("hix"), out)
}

func TestIteratorWalksFramesOneAtATime(t *testing.T) {
	data := append(rawFrame([]byte("a")), rawFrame([]byte("b"))...)
	it := NewIterator(data)

	f1, err := it.Next()
	require.NoError(t, err)
	require.NotNil(t, f1)
	d1, err := f1.Decode()
	require.NoError(t, err)
	require.Equal(t, []byte("a"), d1)
	h1, ok := f1.Header()
	require.True(t, ok)
	require.False(t, h1.ContentChecksumFlag)

	f2, err := it.Next()
	require.NoError(t, err)
	require.NotNil(t, f2)

	f3, err := it.Next()
	require.NoError(t, err)
	require.Nil(t, f3)
}

func TestNewReaderAdaptsDecodedOutput(t *testing.T) {
	data := rawFrame([]byte("hello"))
	r := NewReader(bytes.NewReader(data))
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), out)
}

func TestDecodeAllRejectsUnrecognizedMagic(t *testing.T) {
	_, err := DecodeAll(leMagic(0x12345678))
	require.Error(t, err)
}

func TestWithMaxWindowSizeRejectsOversizedFrame(t *testing.T) {
	var data []byte
	data = append(data, leMagic(0xFD2FB528)...)
	data = append(data, 0x00, 0xF8) // exponent=31 -> enormous window
	_, err := DecodeAll(data, WithMaxWindowSize(1024))
	require.Error(t, err)
}

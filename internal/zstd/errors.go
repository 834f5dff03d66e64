// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package zstd implements decoding of the Zstandard compressed stream
// format described in RFC 8878. It is single-threaded and synchronous:
// every exported entry point either returns a fully decoded frame or an
// error, there is no push/pull streaming and no dictionary support.
package zstd

import "fmt"

// StructuralError is returned when the input is syntactically invalid
// Zstandard data: a reserved field is set, a size field overruns its
// container, a checksum doesn't match, and so on.
type StructuralError struct {
	Kind    string
	Message string
}

func (s *StructuralError) Error() string {
	return fmt.Sprintf("zstd: %s: %s", s.Kind, s.Message)
}

func structErr(kind, format string, args ...interface{}) *StructuralError {
	return &StructuralError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Parsing errors.
func errNotEnoughBytes(requested, available int) error {
	return structErr("not-enough-bytes", "requested %d bytes, %d available", requested, available)
}

func errNotEnoughBits(requested, available int) error {
	return structErr("not-enough-bits", "requested %d bits, %d available", requested, available)
}

func errTooManyBits(n int) error {
	return structErr("too-many-bits-requested", "%d bits requested, maximum is 64", n)
}

var errEmptyInput = structErr("empty-input", "input is empty")

var errBackwardStreamZero = structErr("backward-stream-null-byte", "last byte of backward bitstream is zero")

// Frame errors.
func errUnrecognizedMagic(magic uint32) error {
	return structErr("unrecognized-magic", "magic number %#08x is neither the zstd frame magic nor a skippable frame magic", magic)
}

func errReservedBitSet(where string) error {
	return structErr("reserved-bit-set", "reserved bit set in %s", where)
}

var errMissingChecksum = structErr("missing-checksum", "frame header set the content checksum flag but the trailing checksum is missing")

// ErrBadChecksum is a non-fatal warning: the frame decoded successfully
// but its trailing content checksum does not match the computed hash.
// Callers receive both the decoded bytes and this error.
var ErrBadChecksum = structErr("bad-checksum", "decoded content does not match the frame's trailing checksum")

func errWindowTooBig(max, got uint64) error {
	return structErr("window-size-too-big", "window size %d exceeds configured maximum %d", got, max)
}

func errUnregisteredDictionary(id uint64) error {
	return structErr("unregistered-reserved-dictionary-id", "dictionary id %d is reserved but no dictionary is registered", id)
}

// Block errors.
var errReservedBlockType = structErr("reserved-block-type", "block type field is the reserved value 3")

func errBlockTooLarge(size, max int) error {
	return structErr("large-block-size", "block size %d exceeds maximum block size %d", size, max)
}

// Literals errors.
var errHuffmanDecoderMissing = structErr("missing-huffman-decoder", "treeless literals block with no previously parsed Huffman tree")

func errCorruptedStreamSizes(total, used int) error {
	return structErr("corrupted-stream-sizes", "jump table streams sum to %d bytes, only %d available", used, total)
}

// FSE errors.
func errAccuracyLogTooLarge(al int) error {
	return structErr("accuracy-log-too-large", "accuracy log %d exceeds maximum of 9", al)
}

var errCorruptedTable = structErr("corrupted-table", "normalized distribution does not sum to the table size")

// Sequences errors.
var errReservedModeBits = structErr("reserved-mode-bits-set", "reserved bits of the compression modes byte are set")

func errNoPreviousDecoder(codeType string) error {
	return structErr("no-previous-decoder-for-repeat", "repeat mode requested for %s with no previous decoder", codeType)
}

func errImpossibleSequence(format string, args ...interface{}) error {
	return structErr("impossible-sequence-value", format, args...)
}

// Decoding errors.
var errNullOffset = structErr("null-offset", "decoded offset code is zero")

// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package zstdgo decodes Zstandard-compressed data (RFC 8878). It
// decodes whole frames at a time into memory; there is no incremental
// streaming decoder and no dictionary support.
package zstdgo

import (
	"bytes"
	"io"

	"github.com/cosnicolaou/zstdgo/internal/zstd"
)

// DefaultMaxWindowSize is the window-size ceiling applied when
// WithMaxWindowSize isn't passed.
const DefaultMaxWindowSize = zstd.DefaultMaxWindowSize

type config struct {
	maxWindowSize            uint64
	includeSkippablePayloads bool
}

// Option configures an Iterator, DecodeAll or NewReader call.
type Option func(*config)

// WithMaxWindowSize overrides the default 8 MiB window-size ceiling. A
// frame whose header demands a larger window is rejected rather than
// allocated.
func WithMaxWindowSize(n uint64) Option {
	return func(c *config) { c.maxWindowSize = n }
}

// WithIncludeSkippablePayloads causes DecodeAll and NewReader to append
// skippable frame payloads to the decoded output, in the position they
// occurred in the input stream.
func WithIncludeSkippablePayloads(b bool) Option {
	return func(c *config) { c.includeSkippablePayloads = b }
}

func newConfig(opts ...Option) *config {
	c := &config{maxWindowSize: zstd.DefaultMaxWindowSize}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

// FrameHeader is the user-facing view of a decoded frame's header
// fields (RFC 8878 §3.1.1.1.1).
type FrameHeader struct {
	ContentChecksumFlag bool
	WindowSize          uint64
	DictionaryID        *uint64
	ContentSize         *uint64
}

// Frame is one frame out of a concatenated Zstandard stream: either a
// real zstd frame (Header returns ok=true) or a skippable frame whose
// payload is opaque to this decoder (Header returns ok=false).
type Frame interface {
	// Decode returns the frame's payload: the decompressed content for
	// a zstd frame, the raw bytes for a skippable frame.
	Decode() ([]byte, error)
	// Header returns the frame header and true for a zstd frame; for a
	// skippable frame it returns the zero value and false.
	Header() (FrameHeader, bool)
}

type zstdFrame struct {
	header zstd.FrameHeader
	data   []byte
	err    error
}

func (f *zstdFrame) Decode() ([]byte, error) { return f.data, f.err }

func (f *zstdFrame) Header() (FrameHeader, bool) {
	h := FrameHeader{
		ContentChecksumFlag: f.header.HasChecksum,
		WindowSize:          f.header.WindowSize,
	}
	if f.header.HasContentSize {
		size := f.header.ContentSize
		h.ContentSize = &size
	}
	if f.header.DictionaryID != 0 {
		id := f.header.DictionaryID
		h.DictionaryID = &id
	}
	return h, true
}

type skippableFrame struct {
	payload []byte
}

func (f *skippableFrame) Decode() ([]byte, error)     { return f.payload, nil }
func (f *skippableFrame) Header() (FrameHeader, bool) { return FrameHeader{}, false }

// Iterator walks a concatenated stream of zstd and skippable frames one
// frame at a time, without decoding the whole input up front.
type Iterator struct {
	bp  *zstd.ForwardByteParser
	cfg *config
}

// NewIterator returns an Iterator over data.
func NewIterator(data []byte, opts ...Option) *Iterator {
	return &Iterator{bp: zstd.NewForwardByteParser(data), cfg: newConfig(opts...)}
}

// Next returns the next frame in the stream. At end of stream it
// returns (nil, nil) rather than io.EOF, since a nil Frame is itself a
// clear sentinel.
func (it *Iterator) Next() (Frame, error) {
	if it.bp.Empty() {
		return nil, nil
	}
	magic, err := it.bp.LeU32()
	if err != nil {
		return nil, wrapDecodeError(err)
	}
	if zstd.IsSkippableMagic(magic) {
		sf, err := zstd.DecodeSkippableFrame(it.bp, magic)
		if err != nil {
			return nil, wrapDecodeError(err)
		}
		return &skippableFrame{payload: sf.Payload}, nil
	}
	if magic != zstd.FrameMagic {
		return nil, wrapDecodeError(zstd.ErrUnrecognizedMagic(magic))
	}
	frame, err := zstd.DecodeFrame(it.bp, it.cfg.maxWindowSize)
	if err != nil && err != zstd.ErrBadChecksum {
		return nil, wrapDecodeError(err)
	}
	return &zstdFrame{header: frame.Header, data: frame.Data, err: err}, nil
}

// DecodeAll decodes every zstd frame in data and returns their
// concatenated content. Skippable frame payloads are included only
// when WithIncludeSkippablePayloads is set. A checksum mismatch is
// returned alongside the fully decoded bytes, not in place of them.
func DecodeAll(data []byte, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts...)
	it := NewIterator(data, opts...)
	var out []byte
	var warn error
	for {
		frame, err := it.Next()
		if err != nil {
			return out, err
		}
		if frame == nil {
			break
		}
		payload, err := frame.Decode()
		if _, ok := frame.Header(); ok {
			out = append(out, payload...)
			if err != nil {
				warn = err
			}
		} else if cfg.includeSkippablePayloads {
			out = append(out, payload...)
		}
	}
	return out, warn
}

// NewReader decodes every frame from r (via io.ReadAll) and returns an
// io.Reader over the concatenated result. This is an in-memory
// adaptation, not an incremental streaming decoder.
func NewReader(r io.Reader, opts ...Option) io.Reader {
	data, err := io.ReadAll(r)
	if err != nil {
		return &errReader{err: err}
	}
	decoded, err := DecodeAll(data, opts...)
	if err != nil && err != zstd.ErrBadChecksum {
		return &errReader{err: err}
	}
	return bytes.NewReader(decoded)
}

type errReader struct{ err error }

func (r *errReader) Read([]byte) (int, error) { return 0, r.err }

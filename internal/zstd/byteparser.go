// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd

import "encoding/binary"

// forwardByteParser is a cursor over an immutable byte slice. It only ever
// advances; every read either succeeds or returns errNotEnoughBytes and
// leaves the cursor untouched.
type forwardByteParser struct {
	data []byte
}

func newForwardByteParser(data []byte) *forwardByteParser {
	return &forwardByteParser{data: data}
}

func (p *forwardByteParser) Len() int {
	return len(p.data)
}

func (p *forwardByteParser) Empty() bool {
	return len(p.data) == 0
}

// u8 consumes and returns a single byte.
func (p *forwardByteParser) u8() (byte, error) {
	if len(p.data) < 1 {
		return 0, errNotEnoughBytes(1, len(p.data))
	}
	b := p.data[0]
	p.data = p.data[1:]
	return b, nil
}

// slice consumes and returns the next n bytes. n == 0 is permitted and
// returns an empty, non-nil slice without advancing.
func (p *forwardByteParser) slice(n int) ([]byte, error) {
	if n < 0 || n > len(p.data) {
		return nil, errNotEnoughBytes(n, len(p.data))
	}
	s := p.data[:n:n]
	p.data = p.data[n:]
	return s, nil
}

// leU16 reads two bytes, little-endian.
func (p *forwardByteParser) leU16() (uint16, error) {
	s, err := p.slice(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(s), nil
}

// leU32 reads four bytes, little-endian; byte 0 is the low byte.
func (p *forwardByteParser) leU32() (uint32, error) {
	s, err := p.slice(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(s), nil
}

// leUint reads n little-endian bytes (n in [0,8]) into a uint64.
func (p *forwardByteParser) leUint(n int) (uint64, error) {
	s, err := p.slice(n)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i, b := range s {
		v |= uint64(b) << (8 * uint(i))
	}
	return v, nil
}

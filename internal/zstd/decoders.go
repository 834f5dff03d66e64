// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd

// bitDecoder produces one symbol per call from a backward bit parser,
// updating whatever internal state it needs to produce the next one. RLE,
// FSE, and alternating decoders all satisfy it, letting the sequences and
// Huffman-weight decoders stay agnostic to which compression mode backs a
// given stream.
type bitDecoder interface {
	decode(p *backwardBitParser) (uint16, error)
}

// rleDecoder always yields the same symbol; the stream carries no further
// bits for it.
type rleDecoder struct {
	symbol uint16
}

func (d rleDecoder) decode(p *backwardBitParser) (uint16, error) {
	return d.symbol, nil
}

// fseDecoder walks a single FSE state machine. Constructing one consumes
// table.al initialization bits; every decode call reads the current
// state's entry, advances to the next state, and returns the entry's
// output symbol.
type fseDecoder struct {
	table *fseTable
	state uint16
}

func newFSEDecoder(table *fseTable, p *backwardBitParser) (*fseDecoder, error) {
	v, err := p.take(int(table.al))
	if err != nil {
		return nil, err
	}
	return &fseDecoder{table: table, state: uint16(v)}, nil
}

func (d *fseDecoder) decode(p *backwardBitParser) (uint16, error) {
	e := d.table.entries[d.state]
	bits, err := p.take(int(e.bitsToRead))
	if err != nil {
		return 0, err
	}
	d.state = e.baseline + uint16(bits)
	return e.output, nil
}

// decodePadded is decode's exhaustion-tolerant counterpart, used when a
// format defines its stream length implicitly by running a decoder until
// the bitstream runs dry (e.g. Huffman weight decoding). It reports
// whether this call ran past the available bits, in which case the
// caller should treat this as the final symbol.
func (d *fseDecoder) decodePadded(p *backwardBitParser) (uint16, bool, error) {
	e := d.table.entries[d.state]
	n := int(e.bitsToRead)
	exhausted := p.lenBits() < n
	v, err := p.takePadded(n)
	if err != nil {
		return 0, false, err
	}
	d.state = e.baseline + uint16(v)
	return e.output, exhausted, nil
}

// alternatingDecoder interleaves two FSE states over one bitstream,
// toggling which one advances on each call. This is how a single
// FSE-compressed Huffman weight stream is encoded: two states sharing the
// bits packs tighter than either alone.
type alternatingDecoder struct {
	a, b *fseDecoder
	odd  bool
}

func newAlternatingDecoder(table *fseTable, p *backwardBitParser) (*alternatingDecoder, error) {
	a, err := newFSEDecoder(table, p)
	if err != nil {
		return nil, err
	}
	b, err := newFSEDecoder(table, p)
	if err != nil {
		return nil, err
	}
	return &alternatingDecoder{a: a, b: b}, nil
}

func (d *alternatingDecoder) decode(p *backwardBitParser) (uint16, error) {
	dec := d.a
	if d.odd {
		dec = d.b
	}
	d.odd = !d.odd
	return dec.decode(p)
}

func (d *alternatingDecoder) decodePadded(p *backwardBitParser) (uint16, bool, error) {
	dec := d.a
	if d.odd {
		dec = d.b
	}
	d.odd = !d.odd
	return dec.decodePadded(p)
}

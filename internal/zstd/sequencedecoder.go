// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd

// compositeSequenceDecoder decodes one (literals length, match length,
// offset) tuple per call from the three interleaved code streams of a
// sequences section.
//
// The three FSE states share a single backward bitstream, so the order in
// which they are touched is part of the format, not an implementation
// choice: states transition match-length, offset, literals-length (the
// reverse of how the section's tables are listed), then the raw extra
// bits for the decoded value are read literals-length, match-length,
// offset (forward order).
type compositeSequenceDecoder struct {
	ll, of, ml bitDecoder
}

// sequence is one decoded (literals length, match length, offset) tuple.
// offset is the raw reconstructed value (RFC 8878 §3.1.1.3.2.1.2); the
// repeat-offset and -3 adjustment rules live in the decoding context, not
// here.
type sequence struct {
	literalsLength uint32
	matchLength    uint32
	offset         uint32
}

func (d *compositeSequenceDecoder) decode(p *backwardBitParser) (sequence, error) {
	mlCode, err := d.ml.decode(p)
	if err != nil {
		return sequence{}, err
	}
	ofCode, err := d.of.decode(p)
	if err != nil {
		return sequence{}, err
	}
	llCode, err := d.ll.decode(p)
	if err != nil {
		return sequence{}, err
	}

	if int(llCode) >= len(literalsLengthCodes) {
		return sequence{}, errImpossibleSequence("literals length code %d out of range", llCode)
	}
	if int(mlCode) >= len(matchLengthCodes) {
		return sequence{}, errImpossibleSequence("match length code %d out of range", mlCode)
	}
	if ofCode >= 32 {
		return sequence{}, errImpossibleSequence("offset code %d out of range", ofCode)
	}

	llCV := literalsLengthCodes[llCode]
	llExtra, err := p.take(int(llCV.extraBits))
	if err != nil {
		return sequence{}, err
	}
	litLen := llCV.baseline + uint32(llExtra)

	mlCV := matchLengthCodes[mlCode]
	mlExtra, err := p.take(int(mlCV.extraBits))
	if err != nil {
		return sequence{}, err
	}
	matchLen := mlCV.baseline + uint32(mlExtra)

	ofCV := offsetCodeValue(uint8(ofCode))
	ofExtra, err := p.take(int(ofCV.extraBits))
	if err != nil {
		return sequence{}, err
	}
	offset := ofCV.baseline + uint32(ofExtra)

	return sequence{literalsLength: litLen, matchLength: matchLen, offset: offset}, nil
}

// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd

// decoderMode captures how one of the three sequence code streams
// (literals length, offset, match length) is compressed in a block, in a
// form that can be replayed verbatim by a later block's Repeat_Mode.
type decoderMode struct {
	isRLE     bool
	rleSymbol uint16
	table     *fseTable
}

func (m decoderMode) newDecoder(p *backwardBitParser) (bitDecoder, error) {
	if m.isRLE {
		return rleDecoder{symbol: m.rleSymbol}, nil
	}
	return newFSEDecoder(m.table, p)
}

// sequencesDecoderState persists each code stream's most recently used
// mode across blocks, since Repeat_Mode has nothing else to go on.
type sequencesDecoderState struct {
	ll, of, ml          decoderMode
	hasLL, hasOF, hasML bool
}

const (
	compressionModePredefined = 0
	compressionModeRLE        = 1
	compressionModeFSE        = 2
	compressionModeRepeat     = 3
)

func (s *sequencesDecoderState) resolve(bp *forwardByteParser, modeBits byte, predefined func() (*fseTable, error), prev *decoderMode, hasPrev *bool, codeType string) (decoderMode, error) {
	var mode decoderMode
	switch modeBits {
	case compressionModePredefined:
		t, err := predefined()
		if err != nil {
			return decoderMode{}, err
		}
		mode = decoderMode{table: t}

	case compressionModeRLE:
		b, err := bp.u8()
		if err != nil {
			return decoderMode{}, err
		}
		mode = decoderMode{isRLE: true, rleSymbol: uint16(b)}

	case compressionModeFSE:
		fp := newForwardBitParser(bp.data)
		al, dist, err := parseNormalizedDistribution(fp)
		if err != nil {
			return decoderMode{}, err
		}
		table, err := buildFSETable(al, dist)
		if err != nil {
			return decoderMode{}, err
		}
		if _, err := bp.slice(fp.bytesRead()); err != nil {
			return decoderMode{}, err
		}
		mode = decoderMode{table: table}

	case compressionModeRepeat:
		if !*hasPrev {
			return decoderMode{}, errNoPreviousDecoder(codeType)
		}
		mode = *prev

	default:
		return decoderMode{}, errReservedModeBits
	}

	*prev = mode
	*hasPrev = true
	return mode, nil
}

// parseSequencesSection reads a Sequences_Section (RFC 8878 §3.1.1.3.2)
// in full and returns its decoded (literals length, match length, offset)
// tuples in execution order.
//
// The section's own code-stream tables are read forward, in
// Literals_Length, Offset, Match_Length order, but the tuples themselves
// are packed into a single bitstream read from its end backward, which
// means they come out of the decoder in the reverse of execution order;
// this function undoes that reversal before returning.
func (s *sequencesDecoderState) parseSequencesSection(bp *forwardByteParser) ([]sequence, error) {
	b0, err := bp.u8()
	if err != nil {
		return nil, err
	}

	var nbSeq int
	switch {
	case b0 == 0:
		return nil, nil
	case b0 < 128:
		nbSeq = int(b0)
	case b0 < 255:
		b1, err := bp.u8()
		if err != nil {
			return nil, err
		}
		nbSeq = (int(b0-128) << 8) + int(b1)
	default:
		b1, err := bp.u8()
		if err != nil {
			return nil, err
		}
		b2, err := bp.u8()
		if err != nil {
			return nil, err
		}
		nbSeq = int(b1) + (int(b2) << 8) + 0x7F00
	}

	modesByte, err := bp.u8()
	if err != nil {
		return nil, err
	}
	if modesByte&0x3 != 0 {
		return nil, errReservedModeBits
	}
	llBits := (modesByte >> 6) & 0x3
	ofBits := (modesByte >> 4) & 0x3
	mlBits := (modesByte >> 2) & 0x3

	llMode, err := s.resolve(bp, llBits, predefinedLiteralsLengthTable, &s.ll, &s.hasLL, "literals length")
	if err != nil {
		return nil, err
	}
	ofMode, err := s.resolve(bp, ofBits, predefinedOffsetTable, &s.of, &s.hasOF, "offset")
	if err != nil {
		return nil, err
	}
	mlMode, err := s.resolve(bp, mlBits, predefinedMatchLengthTable, &s.ml, &s.hasML, "match length")
	if err != nil {
		return nil, err
	}

	remaining, err := bp.slice(bp.Len())
	if err != nil {
		return nil, err
	}
	bwp, err := newBackwardBitParser(remaining)
	if err != nil {
		return nil, err
	}

	llDec, err := llMode.newDecoder(bwp)
	if err != nil {
		return nil, err
	}
	ofDec, err := ofMode.newDecoder(bwp)
	if err != nil {
		return nil, err
	}
	mlDec, err := mlMode.newDecoder(bwp)
	if err != nil {
		return nil, err
	}

	comp := &compositeSequenceDecoder{ll: llDec, of: ofDec, ml: mlDec}
	seqs := make([]sequence, nbSeq)
	for i := 0; i < nbSeq; i++ {
		seq, err := comp.decode(bwp)
		if err != nil {
			return nil, err
		}
		seqs[nbSeq-1-i] = seq
	}
	return seqs, nil
}

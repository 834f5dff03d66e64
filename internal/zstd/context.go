// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd

// decodingContext accumulates one frame's decompressed output and carries
// the state that must survive from one block to the next: the three
// repeat offsets, the last Huffman tree built for literals, the last FSE
// table chosen per sequence code stream, and (when the frame asked for
// one) a running content checksum.
type decodingContext struct {
	window      []byte
	offsets     [3]uint32
	huffmanTree *huffmanTree
	seqState    sequencesDecoderState
	hash        *contentHash
}

func newDecodingContext(withChecksum bool) *decodingContext {
	ctx := &decodingContext{offsets: [3]uint32{1, 4, 8}}
	if withChecksum {
		ctx.hash = newContentHash()
	}
	return ctx
}

// resolveOffset turns a decoded sequence's raw offset value into an
// actual back-reference distance and updates the repeat-offset history
// (RFC 8878 §3.1.1.3.2.1.2, "Repeat Offsets"). litLen==0 redirects the
// 1/2/3 codes to skip the first repeat offset, since it was just used by
// the previous sequence's literals-free continuation.
func (ctx *decodingContext) resolveOffset(offsetValue, litLen uint32) (uint32, error) {
	o := ctx.offsets
	var actual uint32
	var next [3]uint32

	switch {
	case litLen == 0 && offsetValue == 1:
		actual, next = o[1], [3]uint32{o[1], o[0], o[2]}
	case litLen == 0 && offsetValue == 2:
		actual, next = o[2], [3]uint32{o[2], o[0], o[1]}
	case litLen == 0 && offsetValue == 3:
		if o[0] == 0 {
			return 0, errNullOffset
		}
		actual = o[0] - 1
		if actual == 0 {
			return 0, errNullOffset
		}
		next = [3]uint32{actual, o[0], o[1]}
	case offsetValue >= 4:
		actual = offsetValue - 3
		next = [3]uint32{actual, o[0], o[1]}
	case offsetValue == 1:
		actual, next = o[0], o
	case offsetValue == 2:
		actual, next = o[1], [3]uint32{o[1], o[0], o[2]}
	case offsetValue == 3:
		actual, next = o[2], [3]uint32{o[2], o[0], o[1]}
	default:
		return 0, errImpossibleSequence("offset value %d with literals length %d", offsetValue, litLen)
	}

	ctx.offsets = next
	return actual, nil
}

// executeSequences replays a block's decoded literals against its
// sequences, appending the result to the context's output window.
func (ctx *decodingContext) executeSequences(literals []byte, seqs []sequence) error {
	litPos := 0
	for _, seq := range seqs {
		end := litPos + int(seq.literalsLength)
		if end > len(literals) {
			return errImpossibleSequence("literals length %d exceeds %d remaining literal bytes", seq.literalsLength, len(literals)-litPos)
		}
		ctx.window = append(ctx.window, literals[litPos:end]...)
		litPos = end

		if seq.matchLength == 0 && seq.offset == 0 {
			continue
		}

		offset, err := ctx.resolveOffset(seq.offset, seq.literalsLength)
		if err != nil {
			return err
		}
		if seq.matchLength == 0 {
			continue
		}
		if offset == 0 {
			return errNullOffset
		}
		if int(offset) > len(ctx.window) {
			return errImpossibleSequence("offset %d exceeds %d bytes of output", offset, len(ctx.window))
		}
		start := len(ctx.window) - int(offset)
		for i := 0; i < int(seq.matchLength); i++ {
			ctx.window = append(ctx.window, ctx.window[start+i])
		}
	}
	if litPos < len(literals) {
		ctx.window = append(ctx.window, literals[litPos:]...)
	}
	return nil
}

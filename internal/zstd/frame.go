// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd

const (
	zstdFrameMagic        = 0xFD2FB528
	skippableFrameMagicLo = 0x184D2A50
	skippableFrameMagicHi = 0x184D2A5F
)

// SkippableFrame is a skippable frame (RFC 8878 §3.1.2) carried alongside
// real zstd frames in a concatenated stream. Decoders must be able to
// walk past one without understanding its payload.
type SkippableFrame struct {
	Magic   uint32
	Payload []byte
}

// Frame is one fully decoded Zstandard frame: its header and the
// concatenation of every block's decompressed output.
type Frame struct {
	Header FrameHeader
	Data   []byte
}

// decodeFrame consumes one zstd frame (magic number already stripped by
// the caller) from bp and returns its header and decompressed content.
// ErrBadChecksum is returned alongside a fully populated Frame when the
// frame decodes cleanly but its trailing checksum doesn't match.
func decodeFrame(bp *forwardByteParser, maxWindowSize uint64) (Frame, error) {
	header, err := parseFrameHeader(bp, maxWindowSize)
	if err != nil {
		return Frame{}, err
	}

	ctx := newDecodingContext(header.HasChecksum)
	for {
		last, err := decodeBlock(bp, ctx)
		if err != nil {
			return Frame{}, err
		}
		if last {
			break
		}
	}

	frame := Frame{Header: header, Data: ctx.window}

	if header.HasChecksum {
		if bp.Len() < 4 {
			return frame, errMissingChecksum
		}
		stored, err := bp.leU32()
		if err != nil {
			return frame, err
		}
		if stored != ctx.hash.sum32() {
			return frame, ErrBadChecksum
		}
	}

	return frame, nil
}

// decodeSkippableFrame consumes one skippable frame (magic number already
// stripped by the caller) from bp.
func decodeSkippableFrame(bp *forwardByteParser, magic uint32) (SkippableFrame, error) {
	size, err := bp.leU32()
	if err != nil {
		return SkippableFrame{}, err
	}
	payload, err := bp.slice(int(size))
	if err != nil {
		return SkippableFrame{}, err
	}
	return SkippableFrame{Magic: magic, Payload: payload}, nil
}

func isSkippableMagic(magic uint32) bool {
	return magic >= skippableFrameMagicLo && magic <= skippableFrameMagicHi
}

// DecodeAll walks an entire concatenated stream of zstd and skippable
// frames, decoding every zstd frame and returning their concatenated
// content plus the skippable frames encountered along the way, in the
// order they appeared.
func DecodeAll(data []byte, maxWindowSize uint64) ([]byte, []SkippableFrame, error) {
	bp := newForwardByteParser(data)
	var out []byte
	var skipped []SkippableFrame
	var warn error

	for !bp.Empty() {
		magic, err := bp.leU32()
		if err != nil {
			return nil, nil, err
		}
		switch {
		case magic == zstdFrameMagic:
			frame, err := decodeFrame(bp, maxWindowSize)
			if err != nil && err != ErrBadChecksum {
				return nil, nil, err
			}
			out = append(out, frame.Data...)
			if err == ErrBadChecksum {
				warn = ErrBadChecksum
			}
		case isSkippableMagic(magic):
			sf, err := decodeSkippableFrame(bp, magic)
			if err != nil {
				return nil, nil, err
			}
			skipped = append(skipped, sf)
		default:
			return nil, nil, errUnrecognizedMagic(magic)
		}
	}

	return out, skipped, warn
}

// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd

// literalsBlockType identifies how a literals section's bytes were
// produced (RFC 8878 §3.1.1.3.1.1).
type literalsBlockType uint8

const (
	literalsRaw literalsBlockType = iota
	literalsRLE
	literalsCompressed
	literalsTreeless
)

// parseLiteralsHeader reads the Literals_Section_Header and returns the
// block type, regenerated (decompressed) size, compressed size (0 for
// Raw/RLE), and stream count (1 for Raw/RLE and for compressed/treeless
// size format 0, otherwise 4).
func parseLiteralsHeader(bp *forwardByteParser) (literalsBlockType, uint32, uint32, int, error) {
	header, err := bp.u8()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	litType := literalsBlockType(header & 0x3)
	sizeFormat := (header >> 2) & 0x3

	if litType == literalsRaw || litType == literalsRLE {
		var regen uint32
		switch sizeFormat {
		case 0, 2:
			regen = uint32(header) >> 3
		case 1:
			b2, err := bp.u8()
			if err != nil {
				return 0, 0, 0, 0, err
			}
			regen = (uint32(header) >> 4) | (uint32(b2) << 4)
		case 3:
			b2, err := bp.u8()
			if err != nil {
				return 0, 0, 0, 0, err
			}
			b3, err := bp.u8()
			if err != nil {
				return 0, 0, 0, 0, err
			}
			regen = (uint32(header) >> 4) | (uint32(b2) << 4) | (uint32(b3) << 12)
		}
		return litType, regen, 0, 1, nil
	}

	var extraBytes, totalWidth int
	nStreams := 4
	switch sizeFormat {
	case 0:
		extraBytes, totalWidth, nStreams = 2, 10, 1
	case 1:
		extraBytes, totalWidth = 2, 10
	case 2:
		extraBytes, totalWidth = 3, 14
	case 3:
		extraBytes, totalWidth = 4, 18
	}
	extra, err := bp.slice(extraBytes)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	fp := newForwardBitParser(extra)
	regenExtra, err := fp.take(totalWidth - 4)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	compressed, err := fp.take(totalWidth)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	regen := (uint32(header) >> 4) | (uint32(regenExtra) << 4)
	return litType, regen, uint32(compressed), nStreams, nil
}

// parseLiteralsSection decodes a full Literals_Section into its
// regenerated byte stream. prevTree carries the last Huffman tree built
// by a Compressed literals block across calls, since a Treeless block
// reuses it instead of describing a new one.
func parseLiteralsSection(bp *forwardByteParser, prevTree **huffmanTree) ([]byte, error) {
	blockType, regenSize, compressedSize, nStreams, err := parseLiteralsHeader(bp)
	if err != nil {
		return nil, err
	}

	switch blockType {
	case literalsRaw:
		return bp.slice(int(regenSize))

	case literalsRLE:
		b, err := bp.u8()
		if err != nil {
			return nil, err
		}
		out := make([]byte, regenSize)
		for i := range out {
			out[i] = b
		}
		return out, nil

	case literalsCompressed, literalsTreeless:
		raw, err := bp.slice(int(compressedSize))
		if err != nil {
			return nil, err
		}
		streamsBP := newForwardByteParser(raw)
		if blockType == literalsCompressed {
			lengths, err := parseHuffmanWeights(streamsBP)
			if err != nil {
				return nil, err
			}
			tree, err := newHuffmanTree(lengths)
			if err != nil {
				return nil, err
			}
			*prevTree = tree
		}
		if *prevTree == nil {
			return nil, errHuffmanDecoderMissing
		}
		return decodeHuffmanStreams(streamsBP, *prevTree, int(regenSize), nStreams)

	default:
		return nil, errCorruptedTable
	}
}

func decodeHuffmanStreams(bp *forwardByteParser, tree *huffmanTree, regenSize, nStreams int) ([]byte, error) {
	if nStreams == 1 {
		raw, err := bp.slice(bp.Len())
		if err != nil {
			return nil, err
		}
		return decodeOneHuffmanStream(raw, tree, regenSize)
	}

	var jumpSizes [3]int
	for i := range jumpSizes {
		v, err := bp.leU16()
		if err != nil {
			return nil, err
		}
		jumpSizes[i] = int(v)
	}
	used := jumpSizes[0] + jumpSizes[1] + jumpSizes[2]
	lastSize := bp.Len() - used
	if lastSize < 0 {
		return nil, errCorruptedStreamSizes(bp.Len(), used)
	}

	perStream := (regenSize + 3) / 4
	lastCount := regenSize - 3*perStream
	streamSizes := [4]int{jumpSizes[0], jumpSizes[1], jumpSizes[2], lastSize}
	counts := [4]int{perStream, perStream, perStream, lastCount}

	out := make([]byte, 0, regenSize)
	for i := 0; i < 4; i++ {
		raw, err := bp.slice(streamSizes[i])
		if err != nil {
			return nil, err
		}
		chunk, err := decodeOneHuffmanStream(raw, tree, counts[i])
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

func decodeOneHuffmanStream(raw []byte, tree *huffmanTree, count int) ([]byte, error) {
	if count == 0 {
		return []byte{}, nil
	}
	p, err := newBackwardBitParser(raw)
	if err != nil {
		return nil, err
	}
	out := make([]byte, count)
	for i := 0; i < count; i++ {
		b, err := tree.decode(p)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

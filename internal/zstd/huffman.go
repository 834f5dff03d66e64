// Copyright 2024 The zstdgo Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd

import (
	"math/bits"
	"sort"
)

const maxHuffmanSymbols = 256

// huffmanTree is a binary tree navigated bit by bit, read from a backward
// bit parser, to recover a literal byte.
type huffmanTree struct {
	nodes    []huffmanNode
	nextNode int
}

// huffmanNode holds, for each of the two possible next bits, either the
// index of a child node or (if invalid) the symbol value for that bit.
type huffmanNode struct {
	child      [2]uint16
	childValue [2]uint16
}

const invalidHuffmanNode = 0xffff

func (t *huffmanTree) decode(p *backwardBitParser) (byte, error) {
	nodeIndex := uint16(0)
	for {
		node := &t.nodes[nodeIndex]
		bit, err := p.take(1)
		if err != nil {
			return 0, err
		}
		if bit == 1 {
			if t := node.child[1]; t != invalidHuffmanNode {
				nodeIndex = t
				continue
			}
			return byte(node.childValue[1]), nil
		}
		if t := node.child[0]; t != invalidHuffmanNode {
			nodeIndex = t
			continue
		}
		return byte(node.childValue[0]), nil
	}
}

type huffmanSymbolLength struct {
	value  uint16
	length uint8
}

type huffmanCode struct {
	code    uint32
	codeLen uint8
	value   uint16
}

// newHuffmanTree builds a canonical Huffman tree from per-symbol code
// lengths; lengths[i] == 0 means symbol i does not appear in the
// alphabet. Codes are assigned longest-to-shortest and packed MSB-first,
// then the tree is built top-down from the sorted codes.
func newHuffmanTree(lengths []uint8) (*huffmanTree, error) {
	var pairs []huffmanSymbolLength
	for i, l := range lengths {
		if l > 0 {
			pairs = append(pairs, huffmanSymbolLength{value: uint16(i), length: l})
		}
	}
	if len(pairs) < 1 {
		return nil, errCorruptedTable
	}
	if len(pairs) == 1 {
		t := &huffmanTree{nodes: make([]huffmanNode, 1)}
		t.nodes[0] = huffmanNode{
			child:      [2]uint16{invalidHuffmanNode, invalidHuffmanNode},
			childValue: [2]uint16{pairs[0].value, pairs[0].value},
		}
		return t, nil
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].length != pairs[j].length {
			return pairs[i].length < pairs[j].length
		}
		return pairs[i].value < pairs[j].value
	})

	codes := make([]huffmanCode, len(pairs))
	code := uint32(0)
	length := uint8(32)
	for i := len(pairs) - 1; i >= 0; i-- {
		if length > pairs[i].length {
			length = pairs[i].length
		}
		codes[i] = huffmanCode{code: code, codeLen: length, value: pairs[i].value}
		code += 1 << (32 - length)
	}

	sort.Slice(codes, func(i, j int) bool { return codes[i].code < codes[j].code })

	t := &huffmanTree{}
	_, err := buildHuffmanNode(t, codes, 0)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func buildHuffmanNode(t *huffmanTree, codes []huffmanCode, level uint32) (uint16, error) {
	if level > 31 {
		return 0, errCorruptedTable
	}
	test := uint32(1) << (31 - level)

	firstOneIndex := len(codes)
	for i, c := range codes {
		if c.code&test != 0 {
			firstOneIndex = i
			break
		}
	}
	zeros, ones := codes[:firstOneIndex], codes[firstOneIndex:]

	if len(zeros) == 0 {
		return buildHuffmanNode(t, ones, level+1)
	}
	if len(ones) == 0 {
		return buildHuffmanNode(t, zeros, level+1)
	}

	t.nodes = append(t.nodes, huffmanNode{})
	nodeIndex := uint16(t.nextNode)
	t.nextNode++

	node := huffmanNode{}
	if len(zeros) == 1 {
		node.child[0] = invalidHuffmanNode
		node.childValue[0] = zeros[0].value
	} else {
		idx, err := buildHuffmanNode(t, zeros, level+1)
		if err != nil {
			return 0, err
		}
		node.child[0] = idx
	}
	if len(ones) == 1 {
		node.child[1] = invalidHuffmanNode
		node.childValue[1] = ones[0].value
	} else {
		idx, err := buildHuffmanNode(t, ones, level+1)
		if err != nil {
			return 0, err
		}
		node.child[1] = idx
	}
	t.nodes[nodeIndex] = node
	return nodeIndex, nil
}

// weightsToCodeLengths applies RFC 8878 §4.2.1: the last symbol's weight
// is implied by completing the sum of 2^(weight-1) to the next power of
// two, which also fixes Max_Number_of_Bits for the whole table.
func weightsToCodeLengths(explicitWeights []uint8) ([]uint8, error) {
	var weightSum uint32
	for _, w := range explicitWeights {
		if w > 0 {
			weightSum += uint32(1) << (w - 1)
		}
	}
	if weightSum == 0 {
		return nil, errCorruptedTable
	}
	maxBits := bits.Len32(weightSum)
	remaining := (uint32(1) << maxBits) - weightSum
	if remaining == 0 || remaining&(remaining-1) != 0 {
		return nil, errCorruptedTable
	}
	lastWeight := uint8(bits.Len32(remaining))

	weights := make([]uint8, len(explicitWeights)+1)
	copy(weights, explicitWeights)
	weights[len(explicitWeights)] = lastWeight

	lengths := make([]uint8, len(weights))
	for i, w := range weights {
		if w == 0 {
			continue
		}
		lengths[i] = uint8(maxBits) - w + 1
	}
	return lengths, nil
}

// parseHuffmanWeights reads a Huffman_Tree_Description (RFC 8878 §4.2.1):
// a header byte selects direct 4-bit-packed weights or an FSE-compressed
// alternating-state stream, and the final weight is always implied.
func parseHuffmanWeights(bp *forwardByteParser) ([]uint8, error) {
	header, err := bp.u8()
	if err != nil {
		return nil, err
	}

	var explicit []uint8
	if header >= 128 {
		count := int(header) - 127
		nbBytes := (count + 1) / 2
		raw, err := bp.slice(nbBytes)
		if err != nil {
			return nil, err
		}
		explicit = make([]uint8, count)
		for i := 0; i < count; i++ {
			b := raw[i/2]
			if i%2 == 0 {
				explicit[i] = b >> 4
			} else {
				explicit[i] = b & 0x0f
			}
		}
	} else {
		compressedSize := int(header)
		raw, err := bp.slice(compressedSize)
		if err != nil {
			return nil, err
		}
		fwd := newForwardBitParser(raw)
		al, dist, err := parseNormalizedDistribution(fwd)
		if err != nil {
			return nil, err
		}
		table, err := buildFSETable(al, dist)
		if err != nil {
			return nil, err
		}

		bwp, err := newBackwardBitParser(raw[fwd.bytesRead():])
		if err != nil {
			return nil, err
		}
		alt, err := newAlternatingDecoder(table, bwp)
		if err != nil {
			return nil, err
		}
		for i := 0; i < maxHuffmanSymbols && !bwp.empty(); i++ {
			w, exhausted, err := alt.decodePadded(bwp)
			if err != nil {
				return nil, err
			}
			explicit = append(explicit, uint8(w))
			if exhausted {
				break
			}
		}
	}

	return weightsToCodeLengths(explicit)
}
